package topic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// CreateTopicInput holds the parameters for creating a topic.
type CreateTopicInput struct {
	Name          string
	Content       string
	ParentTopicID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i CreateTopicInput) Validate() error {
	var errs []domain.FieldError

	errs = validateName(errs, i.Name)
	if i.Content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if i.ParentTopicID != nil && *i.ParentTopicID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "parentTopicId", Message: "must be a valid id"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateTopicInput holds the parameters for updating a topic.
// Absent fields keep their previous value.
type UpdateTopicInput struct {
	TopicID       uuid.UUID
	Name          *string
	Content       *string
	ParentTopicID domain.Patch[uuid.UUID] // Clear() detaches the topic
}

// Validate checks all fields and collects all errors.
func (i UpdateTopicInput) Validate() error {
	var errs []domain.FieldError

	if i.TopicID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "topic_id", Message: "required"})
	}
	if i.Name != nil {
		errs = validateName(errs, *i.Name)
	}
	if i.Content != nil && *i.Content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "must not be empty"})
	}
	if p := i.ParentTopicID.Value; p != nil && *p == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "parentTopicId", Message: "must be a valid id"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// GetTopicInput selects a topic and optionally one of its historical versions.
type GetTopicInput struct {
	TopicID uuid.UUID
	Version *int // nil = latest live version
}

// DeleteTopicInput holds the parameters for deleting a topic subtree.
type DeleteTopicInput struct {
	TopicID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeleteTopicInput) Validate() error {
	if i.TopicID == uuid.Nil {
		return domain.NewValidationError("topic_id", "required")
	}
	return nil
}

// ShortestPathInput names the two endpoints of a path query.
type ShortestPathInput struct {
	From uuid.UUID
	To   uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i ShortestPathInput) Validate() error {
	var errs []domain.FieldError
	if i.From == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "from", Message: "required"})
	}
	if i.To == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "to", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ParseVersion converts a caller-supplied version string. An empty string
// means no explicit version.
func ParseVersion(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("version %q is not a number: %w", raw, domain.ErrBadRequest)
	}
	if n < 1 {
		return nil, fmt.Errorf("version %d must be positive: %w", n, domain.ErrBadRequest)
	}
	return &n, nil
}

func validateName(errs []domain.FieldError, name string) []domain.FieldError {
	if name == "" {
		return append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	return errs
}
