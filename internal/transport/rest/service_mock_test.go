package rest

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
	"github.com/heartmarshall/knowledge-base/internal/service/resource"
	"github.com/heartmarshall/knowledge-base/internal/service/topic"
)

var _ topicService = &topicServiceMock{}

type topicServiceMock struct {
	CreateTopicFunc  func(ctx context.Context, input topic.CreateTopicInput) (*domain.TopicVersion, error)
	UpdateTopicFunc  func(ctx context.Context, input topic.UpdateTopicInput) (*domain.TopicVersion, error)
	GetTopicFunc     func(ctx context.Context, input topic.GetTopicInput) (*domain.TopicVersion, error)
	HistoryFunc      func(ctx context.Context, topicID uuid.UUID) ([]domain.TopicVersion, error)
	DeleteTopicFunc  func(ctx context.Context, input topic.DeleteTopicInput) error
	ShortestPathFunc func(ctx context.Context, input topic.ShortestPathInput) ([]domain.TopicRef, error)
	TreeFunc         func(ctx context.Context, rootID uuid.UUID) (*domain.TopicTree, error)
}

func (m *topicServiceMock) CreateTopic(ctx context.Context, input topic.CreateTopicInput) (*domain.TopicVersion, error) {
	if m.CreateTopicFunc == nil {
		panic("topicServiceMock.CreateTopicFunc: method is nil but topicService.CreateTopic was just called")
	}
	return m.CreateTopicFunc(ctx, input)
}

func (m *topicServiceMock) UpdateTopic(ctx context.Context, input topic.UpdateTopicInput) (*domain.TopicVersion, error) {
	if m.UpdateTopicFunc == nil {
		panic("topicServiceMock.UpdateTopicFunc: method is nil but topicService.UpdateTopic was just called")
	}
	return m.UpdateTopicFunc(ctx, input)
}

func (m *topicServiceMock) GetTopic(ctx context.Context, input topic.GetTopicInput) (*domain.TopicVersion, error) {
	if m.GetTopicFunc == nil {
		panic("topicServiceMock.GetTopicFunc: method is nil but topicService.GetTopic was just called")
	}
	return m.GetTopicFunc(ctx, input)
}

func (m *topicServiceMock) History(ctx context.Context, topicID uuid.UUID) ([]domain.TopicVersion, error) {
	if m.HistoryFunc == nil {
		panic("topicServiceMock.HistoryFunc: method is nil but topicService.History was just called")
	}
	return m.HistoryFunc(ctx, topicID)
}

func (m *topicServiceMock) DeleteTopic(ctx context.Context, input topic.DeleteTopicInput) error {
	if m.DeleteTopicFunc == nil {
		panic("topicServiceMock.DeleteTopicFunc: method is nil but topicService.DeleteTopic was just called")
	}
	return m.DeleteTopicFunc(ctx, input)
}

func (m *topicServiceMock) ShortestPath(ctx context.Context, input topic.ShortestPathInput) ([]domain.TopicRef, error) {
	if m.ShortestPathFunc == nil {
		panic("topicServiceMock.ShortestPathFunc: method is nil but topicService.ShortestPath was just called")
	}
	return m.ShortestPathFunc(ctx, input)
}

func (m *topicServiceMock) Tree(ctx context.Context, rootID uuid.UUID) (*domain.TopicTree, error) {
	if m.TreeFunc == nil {
		panic("topicServiceMock.TreeFunc: method is nil but topicService.Tree was just called")
	}
	return m.TreeFunc(ctx, rootID)
}

var _ resourceService = &resourceServiceMock{}

type resourceServiceMock struct {
	CreateResourceFunc func(ctx context.Context, input resource.CreateResourceInput) (*domain.Resource, error)
	UpdateResourceFunc func(ctx context.Context, input resource.UpdateResourceInput) (*domain.Resource, error)
	GetResourceFunc    func(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	DeleteResourceFunc func(ctx context.Context, id uuid.UUID) error
	ListByTopicFunc    func(ctx context.Context, topicID uuid.UUID) ([]domain.Resource, error)
}

func (m *resourceServiceMock) CreateResource(ctx context.Context, input resource.CreateResourceInput) (*domain.Resource, error) {
	if m.CreateResourceFunc == nil {
		panic("resourceServiceMock.CreateResourceFunc: method is nil but resourceService.CreateResource was just called")
	}
	return m.CreateResourceFunc(ctx, input)
}

func (m *resourceServiceMock) UpdateResource(ctx context.Context, input resource.UpdateResourceInput) (*domain.Resource, error) {
	if m.UpdateResourceFunc == nil {
		panic("resourceServiceMock.UpdateResourceFunc: method is nil but resourceService.UpdateResource was just called")
	}
	return m.UpdateResourceFunc(ctx, input)
}

func (m *resourceServiceMock) GetResource(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	if m.GetResourceFunc == nil {
		panic("resourceServiceMock.GetResourceFunc: method is nil but resourceService.GetResource was just called")
	}
	return m.GetResourceFunc(ctx, id)
}

func (m *resourceServiceMock) DeleteResource(ctx context.Context, id uuid.UUID) error {
	if m.DeleteResourceFunc == nil {
		panic("resourceServiceMock.DeleteResourceFunc: method is nil but resourceService.DeleteResource was just called")
	}
	return m.DeleteResourceFunc(ctx, id)
}

func (m *resourceServiceMock) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.Resource, error) {
	if m.ListByTopicFunc == nil {
		panic("resourceServiceMock.ListByTopicFunc: method is nil but resourceService.ListByTopic was just called")
	}
	return m.ListByTopicFunc(ctx, topicID)
}
