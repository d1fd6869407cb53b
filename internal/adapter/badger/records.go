package badger

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

type versionRecord struct {
	ID            uuid.UUID  `json:"id"`
	TopicID       uuid.UUID  `json:"topic_id"`
	Version       int        `json:"version"`
	Name          string     `json:"name"`
	Content       string     `json:"content"`
	ParentTopicID *uuid.UUID `json:"parent_topic_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Action        string     `json:"action"`
	PerformedBy   uuid.UUID  `json:"performed_by"`
}

func toVersionRecord(v *domain.TopicVersion) versionRecord {
	return versionRecord{
		ID:            v.ID,
		TopicID:       v.TopicID,
		Version:       v.Version,
		Name:          v.Name,
		Content:       v.Content,
		ParentTopicID: v.ParentTopicID,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
		Action:        string(v.Action),
		PerformedBy:   v.PerformedBy,
	}
}

func (r versionRecord) toDomain() domain.TopicVersion {
	return domain.TopicVersion{
		ID:            r.ID,
		TopicID:       r.TopicID,
		Version:       r.Version,
		Name:          r.Name,
		Content:       r.Content,
		ParentTopicID: r.ParentTopicID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		Action:        domain.TopicAction(r.Action),
		PerformedBy:   r.PerformedBy,
	}
}

type headRecord struct {
	TopicID       uuid.UUID  `json:"topic_id"`
	LatestVersion int        `json:"latest_version"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

func (r headRecord) toDomain() domain.TopicHead {
	return domain.TopicHead{TopicID: r.TopicID, LatestVersion: r.LatestVersion, DeletedAt: r.DeletedAt}
}

type resourceRecord struct {
	ID          uuid.UUID  `json:"id"`
	TopicID     uuid.UUID  `json:"topic_id"`
	URL         string     `json:"url"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

func toResourceRecord(r *domain.Resource) resourceRecord {
	return resourceRecord{
		ID:          r.ID,
		TopicID:     r.TopicID,
		URL:         r.URL,
		Description: r.Description,
		Type:        string(r.Type),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeletedAt:   r.DeletedAt,
	}
}

func (r resourceRecord) toDomain() domain.Resource {
	return domain.Resource{
		ID:          r.ID,
		TopicID:     r.TopicID,
		URL:         r.URL,
		Description: r.Description,
		Type:        domain.ResourceType(r.Type),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeletedAt:   r.DeletedAt,
	}
}

type userRecord struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (r userRecord) toDomain() domain.User {
	return domain.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Role:      domain.UserRole(r.Role),
		CreatedAt: r.CreatedAt,
	}
}
