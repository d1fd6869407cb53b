package resource

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

var _ topicHeads = &topicHeadsMock{}

type topicHeadsMock struct {
	GetFunc func(ctx context.Context, topicID uuid.UUID) (*domain.TopicHead, error)

	calls struct {
		Get []struct {
			Ctx     context.Context
			TopicID uuid.UUID
		}
	}
	lockGet sync.RWMutex
}

func (mock *topicHeadsMock) Get(ctx context.Context, topicID uuid.UUID) (*domain.TopicHead, error) {
	if mock.GetFunc == nil {
		panic("topicHeadsMock.GetFunc: method is nil but topicHeads.Get was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TopicID uuid.UUID
	}{Ctx: ctx, TopicID: topicID}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, topicID)
}

func (mock *topicHeadsMock) GetCalls() []struct {
	Ctx     context.Context
	TopicID uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}
