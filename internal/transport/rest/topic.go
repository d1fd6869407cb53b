package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
	"github.com/heartmarshall/knowledge-base/internal/service/topic"
)

type topicService interface {
	CreateTopic(ctx context.Context, input topic.CreateTopicInput) (*domain.TopicVersion, error)
	UpdateTopic(ctx context.Context, input topic.UpdateTopicInput) (*domain.TopicVersion, error)
	GetTopic(ctx context.Context, input topic.GetTopicInput) (*domain.TopicVersion, error)
	History(ctx context.Context, topicID uuid.UUID) ([]domain.TopicVersion, error)
	DeleteTopic(ctx context.Context, input topic.DeleteTopicInput) error
	ShortestPath(ctx context.Context, input topic.ShortestPathInput) ([]domain.TopicRef, error)
	Tree(ctx context.Context, rootID uuid.UUID) (*domain.TopicTree, error)
}

// TopicHandler serves the topic endpoints.
type TopicHandler struct {
	svc topicService
	log *slog.Logger
}

// NewTopicHandler creates a TopicHandler.
func NewTopicHandler(svc topicService, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{svc: svc, log: logger.With("handler", "topic")}
}

type createTopicRequest struct {
	Name          string     `json:"name"`
	Content       string     `json:"content"`
	ParentTopicID *uuid.UUID `json:"parentTopicId"`
}

type updateTopicRequest struct {
	Name          *string      `json:"name"`
	Content       *string      `json:"content"`
	ParentTopicID nullableUUID `json:"parentTopicId"`
}

// nullableUUID tells an absent field apart from an explicit null.
type nullableUUID struct {
	set   bool
	value *uuid.UUID
}

func (n *nullableUUID) UnmarshalJSON(b []byte) error {
	n.set = true
	if string(b) == "null" {
		n.value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	n.value = &id
	return nil
}

func (n nullableUUID) patch() domain.Patch[uuid.UUID] {
	switch {
	case !n.set:
		return domain.Keep[uuid.UUID]()
	case n.value == nil:
		return domain.Clear[uuid.UUID]()
	default:
		return domain.Set(*n.value)
	}
}

type topicVersionResponse struct {
	ID            string    `json:"id"`
	TopicID       string    `json:"topicId"`
	Version       int       `json:"version"`
	Name          string    `json:"name"`
	Content       string    `json:"content"`
	ParentTopicID *string   `json:"parentTopicId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Action        string    `json:"action"`
	PerformedBy   string    `json:"performedBy"`
}

type topicRefResponse struct {
	TopicID string `json:"topicId"`
	Name    string `json:"name"`
}

type pathResponse struct {
	Path []topicRefResponse `json:"path"`
}

type treeResponse struct {
	TopicID  string         `json:"topicId"`
	Name     string         `json:"name"`
	Children []treeResponse `json:"children"`
}

// Create handles POST /topics.
func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTopicRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	v, err := h.svc.CreateTopic(r.Context(), topic.CreateTopicInput{
		Name:          req.Name,
		Content:       req.Content,
		ParentTopicID: req.ParentTopicID,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTopicVersionResponse(v))
}

// Get handles GET /topics/{id}?version=N.
func (h *TopicHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	version, err := topic.ParseVersion(r.URL.Query().Get("version"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	v, err := h.svc.GetTopic(r.Context(), topic.GetTopicInput{TopicID: id, Version: version})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTopicVersionResponse(v))
}

// History handles GET /topics/{id}/history.
func (h *TopicHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	versions, err := h.svc.History(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]topicVersionResponse, len(versions))
	for i := range versions {
		resp[i] = toTopicVersionResponse(&versions[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update handles PUT /topics/{id}.
func (h *TopicHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req updateTopicRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	v, err := h.svc.UpdateTopic(r.Context(), topic.UpdateTopicInput{
		TopicID:       id,
		Name:          req.Name,
		Content:       req.Content,
		ParentTopicID: req.ParentTopicID.patch(),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTopicVersionResponse(v))
}

// Delete handles DELETE /topics/{id}.
func (h *TopicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteTopic(r.Context(), topic.DeleteTopicInput{TopicID: id}); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ShortestPath handles GET /topics/shortest_path?from=&to=.
func (h *TopicHandler) ShortestPath(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var fieldErrs []domain.FieldError
	from, err := uuid.Parse(q.Get("from"))
	if err != nil {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "from", Message: "must be a valid UUID"})
	}
	to, err := uuid.Parse(q.Get("to"))
	if err != nil {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "to", Message: "must be a valid UUID"})
	}
	if len(fieldErrs) > 0 {
		handleError(w, r, h.log, domain.NewValidationErrors(fieldErrs))
		return
	}

	path, err := h.svc.ShortestPath(r.Context(), topic.ShortestPathInput{From: from, To: to})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := pathResponse{Path: make([]topicRefResponse, len(path))}
	for i, ref := range path {
		resp.Path[i] = topicRefResponse{TopicID: ref.TopicID.String(), Name: ref.Name}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Tree handles GET /topics/{id}/tree.
func (h *TopicHandler) Tree(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	tree, err := h.svc.Tree(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTreeResponse(tree))
}

func toTopicVersionResponse(v *domain.TopicVersion) topicVersionResponse {
	resp := topicVersionResponse{
		ID:          v.ID.String(),
		TopicID:     v.TopicID.String(),
		Version:     v.Version,
		Name:        v.Name,
		Content:     v.Content,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
		Action:      v.Action.String(),
		PerformedBy: v.PerformedBy.String(),
	}
	if v.ParentTopicID != nil {
		p := v.ParentTopicID.String()
		resp.ParentTopicID = &p
	}
	return resp
}

func toTreeResponse(t *domain.TopicTree) treeResponse {
	resp := treeResponse{
		TopicID:  t.TopicID.String(),
		Name:     t.Name,
		Children: make([]treeResponse, len(t.Children)),
	}
	for i, c := range t.Children {
		resp.Children[i] = toTreeResponse(c)
	}
	return resp
}
