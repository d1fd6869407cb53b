package redis

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// Redis hashes are string maps. Times are RFC 3339 with nanoseconds,
// optional values are stored as empty strings.

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseOptionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatOptionalID(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func parseOptionalID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func versionToHash(v *domain.TopicVersion) map[string]any {
	return map[string]any{
		"id":              v.ID.String(),
		"topic_id":        v.TopicID.String(),
		"version":         v.Version,
		"name":            v.Name,
		"content":         v.Content,
		"parent_topic_id": formatOptionalID(v.ParentTopicID),
		"created_at":      formatTime(v.CreatedAt),
		"updated_at":      formatTime(v.UpdatedAt),
		"action":          string(v.Action),
		"performed_by":    v.PerformedBy.String(),
	}
}

func hashToVersion(h map[string]string) (domain.TopicVersion, error) {
	var (
		v   domain.TopicVersion
		err error
	)

	if v.ID, err = uuid.Parse(h["id"]); err != nil {
		return v, fmt.Errorf("invalid id field: %w", err)
	}
	if v.TopicID, err = uuid.Parse(h["topic_id"]); err != nil {
		return v, fmt.Errorf("invalid topic_id field: %w", err)
	}
	if v.Version, err = strconv.Atoi(h["version"]); err != nil {
		return v, fmt.Errorf("invalid version field: %w", err)
	}
	if v.ParentTopicID, err = parseOptionalID(h["parent_topic_id"]); err != nil {
		return v, fmt.Errorf("invalid parent_topic_id field: %w", err)
	}
	if v.CreatedAt, err = time.Parse(time.RFC3339Nano, h["created_at"]); err != nil {
		return v, fmt.Errorf("invalid created_at field: %w", err)
	}
	if v.UpdatedAt, err = time.Parse(time.RFC3339Nano, h["updated_at"]); err != nil {
		return v, fmt.Errorf("invalid updated_at field: %w", err)
	}
	if v.PerformedBy, err = uuid.Parse(h["performed_by"]); err != nil {
		return v, fmt.Errorf("invalid performed_by field: %w", err)
	}
	v.Name = h["name"]
	v.Content = h["content"]
	v.Action = domain.TopicAction(h["action"])

	return v, nil
}

func headToHash(head domain.TopicHead) map[string]any {
	return map[string]any{
		"topic_id":       head.TopicID.String(),
		"latest_version": head.LatestVersion,
		"deleted_at":     formatOptionalTime(head.DeletedAt),
	}
}

func hashToHead(h map[string]string) (domain.TopicHead, error) {
	var (
		head domain.TopicHead
		err  error
	)

	if head.TopicID, err = uuid.Parse(h["topic_id"]); err != nil {
		return head, fmt.Errorf("invalid topic_id field: %w", err)
	}
	if head.LatestVersion, err = strconv.Atoi(h["latest_version"]); err != nil {
		return head, fmt.Errorf("invalid latest_version field: %w", err)
	}
	if head.DeletedAt, err = parseOptionalTime(h["deleted_at"]); err != nil {
		return head, fmt.Errorf("invalid deleted_at field: %w", err)
	}

	return head, nil
}

func resourceToHash(r *domain.Resource) map[string]any {
	return map[string]any{
		"id":          r.ID.String(),
		"topic_id":    r.TopicID.String(),
		"url":         r.URL,
		"description": r.Description,
		"type":        string(r.Type),
		"created_at":  formatTime(r.CreatedAt),
		"updated_at":  formatTime(r.UpdatedAt),
		"deleted_at":  formatOptionalTime(r.DeletedAt),
	}
}

func hashToResource(h map[string]string) (domain.Resource, error) {
	var (
		r   domain.Resource
		err error
	)

	if r.ID, err = uuid.Parse(h["id"]); err != nil {
		return r, fmt.Errorf("invalid id field: %w", err)
	}
	if r.TopicID, err = uuid.Parse(h["topic_id"]); err != nil {
		return r, fmt.Errorf("invalid topic_id field: %w", err)
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, h["created_at"]); err != nil {
		return r, fmt.Errorf("invalid created_at field: %w", err)
	}
	if r.UpdatedAt, err = time.Parse(time.RFC3339Nano, h["updated_at"]); err != nil {
		return r, fmt.Errorf("invalid updated_at field: %w", err)
	}
	if r.DeletedAt, err = parseOptionalTime(h["deleted_at"]); err != nil {
		return r, fmt.Errorf("invalid deleted_at field: %w", err)
	}
	r.URL = h["url"]
	r.Description = h["description"]
	r.Type = domain.ResourceType(h["type"])

	return r, nil
}

func userToHash(u *domain.User) map[string]any {
	return map[string]any{
		"id":         u.ID.String(),
		"name":       u.Name,
		"email":      u.Email,
		"role":       string(u.Role),
		"created_at": formatTime(u.CreatedAt),
	}
}

func hashToUser(h map[string]string) (domain.User, error) {
	var (
		u   domain.User
		err error
	)

	if u.ID, err = uuid.Parse(h["id"]); err != nil {
		return u, fmt.Errorf("invalid id field: %w", err)
	}
	if u.CreatedAt, err = time.Parse(time.RFC3339Nano, h["created_at"]); err != nil {
		return u, fmt.Errorf("invalid created_at field: %w", err)
	}
	u.Name = h["name"]
	u.Email = h["email"]
	u.Role = domain.UserRole(h["role"])

	return u, nil
}
