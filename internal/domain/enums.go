package domain

// TopicAction records which mutation produced a TopicVersion.
type TopicAction string

const (
	TopicActionCreate TopicAction = "CREATE"
	TopicActionUpdate TopicAction = "UPDATE"
	TopicActionDelete TopicAction = "DELETE"
)

func (a TopicAction) String() string { return string(a) }

func (a TopicAction) IsValid() bool {
	switch a {
	case TopicActionCreate, TopicActionUpdate, TopicActionDelete:
		return true
	}
	return false
}

// ResourceType classifies a learning resource attached to a topic.
type ResourceType string

const (
	ResourceTypeVideo   ResourceType = "video"
	ResourceTypeArticle ResourceType = "article"
	ResourceTypePDF     ResourceType = "pdf"
	ResourceTypeLink    ResourceType = "link"
)

func (t ResourceType) String() string { return string(t) }

func (t ResourceType) IsValid() bool {
	switch t {
	case ResourceTypeVideo, ResourceTypeArticle, ResourceTypePDF, ResourceTypeLink:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleEditor UserRole = "EDITOR"
	UserRoleViewer UserRole = "VIEWER"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleEditor, UserRoleViewer:
		return true
	}
	return false
}

// Permission is a single action a caller may be allowed to perform.
type Permission int

const (
	PermTopicCreate Permission = iota + 1
	PermTopicRead
	PermTopicUpdate
	PermTopicDelete
	PermResourceCreate
	PermResourceRead
	PermResourceUpdate
	PermResourceDelete
)

// AllPermissions lists every Permission in declaration order.
var AllPermissions = []Permission{
	PermTopicCreate, PermTopicRead, PermTopicUpdate, PermTopicDelete,
	PermResourceCreate, PermResourceRead, PermResourceUpdate, PermResourceDelete,
}

func (p Permission) String() string {
	switch p {
	case PermTopicCreate:
		return "topic:create"
	case PermTopicRead:
		return "topic:read"
	case PermTopicUpdate:
		return "topic:update"
	case PermTopicDelete:
		return "topic:delete"
	case PermResourceCreate:
		return "resource:create"
	case PermResourceRead:
		return "resource:read"
	case PermResourceUpdate:
		return "resource:update"
	case PermResourceDelete:
		return "resource:delete"
	}
	return "unknown"
}

// IsRead reports whether the permission only observes state.
func (p Permission) IsRead() bool {
	return p == PermTopicRead || p == PermResourceRead
}

// IsDelete reports whether the permission removes state.
func (p Permission) IsDelete() bool {
	return p == PermTopicDelete || p == PermResourceDelete
}
