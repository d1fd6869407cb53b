package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
	"github.com/heartmarshall/knowledge-base/internal/service/resource"
)

type resourceService interface {
	CreateResource(ctx context.Context, input resource.CreateResourceInput) (*domain.Resource, error)
	UpdateResource(ctx context.Context, input resource.UpdateResourceInput) (*domain.Resource, error)
	GetResource(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	DeleteResource(ctx context.Context, id uuid.UUID) error
	ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.Resource, error)
}

// ResourceHandler serves the resource endpoints.
type ResourceHandler struct {
	svc resourceService
	log *slog.Logger
}

// NewResourceHandler creates a ResourceHandler.
func NewResourceHandler(svc resourceService, logger *slog.Logger) *ResourceHandler {
	return &ResourceHandler{svc: svc, log: logger.With("handler", "resource")}
}

type createResourceRequest struct {
	TopicID     uuid.UUID `json:"topicId"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
}

type updateResourceRequest struct {
	URL         *string `json:"url"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
}

type resourceResponse struct {
	ID          string    `json:"id"`
	TopicID     string    `json:"topicId"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Create handles POST /resources.
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createResourceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	res, err := h.svc.CreateResource(r.Context(), resource.CreateResourceInput{
		TopicID:     req.TopicID,
		URL:         req.URL,
		Description: req.Description,
		Type:        domain.ResourceType(req.Type),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResourceResponse(res))
}

// Get handles GET /resources/{id}.
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	res, err := h.svc.GetResource(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toResourceResponse(res))
}

// Update handles PUT /resources/{id}.
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req updateResourceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	input := resource.UpdateResourceInput{ID: id, URL: req.URL, Description: req.Description}
	if req.Type != nil {
		t := domain.ResourceType(*req.Type)
		input.Type = &t
	}

	res, err := h.svc.UpdateResource(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toResourceResponse(res))
}

// Delete handles DELETE /resources/{id}.
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteResource(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListByTopic handles GET /topics/{id}/resources.
func (h *ResourceHandler) ListByTopic(w http.ResponseWriter, r *http.Request) {
	topicID, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	list, err := h.svc.ListByTopic(r.Context(), topicID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]resourceResponse, len(list))
	for i := range list {
		resp[i] = toResourceResponse(&list[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

func toResourceResponse(r *domain.Resource) resourceResponse {
	return resourceResponse{
		ID:          r.ID.String(),
		TopicID:     r.TopicID.String(),
		URL:         r.URL,
		Description: r.Description,
		Type:        r.Type.String(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
