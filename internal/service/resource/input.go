package resource

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

const maxDescriptionLength = 2000

// CreateResourceInput holds the parameters for attaching a resource.
type CreateResourceInput struct {
	TopicID     uuid.UUID
	URL         string
	Description string
	Type        domain.ResourceType
}

// Validate checks all fields and collects all errors.
func (i CreateResourceInput) Validate() error {
	var errs []domain.FieldError

	if i.TopicID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "topicId", Message: "required"})
	}
	errs = validateURL(errs, i.URL)
	errs = validateDescription(errs, i.Description)
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be one of video, article, pdf, link"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateResourceInput holds the parameters for updating a resource.
// Nil fields keep their current value.
type UpdateResourceInput struct {
	ID          uuid.UUID
	URL         *string
	Description *string
	Type        *domain.ResourceType
}

// Validate checks all fields and collects all errors.
func (i UpdateResourceInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.URL != nil {
		errs = validateURL(errs, *i.URL)
	}
	if i.Description != nil {
		errs = validateDescription(errs, *i.Description)
	}
	if i.Type != nil && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be one of video, article, pdf, link"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateURL(errs []domain.FieldError, raw string) []domain.FieldError {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return append(errs, domain.FieldError{Field: "url", Message: "must be an absolute http(s) URL"})
	}
	return errs
}

func validateDescription(errs []domain.FieldError, d string) []domain.FieldError {
	d = strings.TrimSpace(d)
	if d == "" {
		return append(errs, domain.FieldError{Field: "description", Message: "required"})
	}
	if utf8.RuneCountInString(d) > maxDescriptionLength {
		return append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}
	return errs
}
