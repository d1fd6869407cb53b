package domain

import (
	"time"

	"github.com/google/uuid"
)

// Resource is a learning material attached to a topic. Not versioned.
type Resource struct {
	ID          uuid.UUID
	TopicID     uuid.UUID
	URL         string
	Description string
	Type        ResourceType
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// IsDeleted returns true if the resource has been soft-deleted.
func (r *Resource) IsDeleted() bool {
	return r.DeletedAt != nil
}
