package auth

import "github.com/heartmarshall/knowledge-base/internal/domain"

// Policy decides which role may perform which operation.
// The zero value is ready to use.
type Policy struct{}

// Can reports whether role is allowed to perform p.
// Unknown roles and unknown permissions are always denied.
func (Policy) Can(role domain.UserRole, p domain.Permission) bool {
	switch role {
	case domain.UserRoleAdmin:
		return adminCan(p)
	case domain.UserRoleEditor:
		return editorCan(p)
	case domain.UserRoleViewer:
		return viewerCan(p)
	default:
		return false
	}
}

func adminCan(p domain.Permission) bool {
	switch p {
	case domain.PermTopicCreate, domain.PermTopicRead, domain.PermTopicUpdate, domain.PermTopicDelete,
		domain.PermResourceCreate, domain.PermResourceRead, domain.PermResourceUpdate, domain.PermResourceDelete:
		return true
	}
	return false
}

func editorCan(p domain.Permission) bool {
	switch p {
	case domain.PermTopicCreate, domain.PermTopicRead, domain.PermTopicUpdate,
		domain.PermResourceCreate, domain.PermResourceRead, domain.PermResourceUpdate:
		return true
	case domain.PermTopicDelete, domain.PermResourceDelete:
		return false
	}
	return false
}

func viewerCan(p domain.Permission) bool {
	switch p {
	case domain.PermTopicRead, domain.PermResourceRead:
		return true
	case domain.PermTopicCreate, domain.PermTopicUpdate, domain.PermTopicDelete,
		domain.PermResourceCreate, domain.PermResourceUpdate, domain.PermResourceDelete:
		return false
	}
	return false
}
