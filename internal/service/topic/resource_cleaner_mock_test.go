package topic

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ resourceCleaner = &resourceCleanerMock{}

type resourceCleanerMock struct {
	DeleteByTopicFunc func(ctx context.Context, topicID uuid.UUID) (int, error)

	calls struct {
		DeleteByTopic []struct {
			Ctx     context.Context
			TopicID uuid.UUID
		}
	}
	lockDeleteByTopic sync.RWMutex
}

func (mock *resourceCleanerMock) DeleteByTopic(ctx context.Context, topicID uuid.UUID) (int, error) {
	if mock.DeleteByTopicFunc == nil {
		panic("resourceCleanerMock.DeleteByTopicFunc: method is nil but resourceCleaner.DeleteByTopic was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TopicID uuid.UUID
	}{Ctx: ctx, TopicID: topicID}
	mock.lockDeleteByTopic.Lock()
	mock.calls.DeleteByTopic = append(mock.calls.DeleteByTopic, callInfo)
	mock.lockDeleteByTopic.Unlock()
	return mock.DeleteByTopicFunc(ctx, topicID)
}

func (mock *resourceCleanerMock) DeleteByTopicCalls() []struct {
	Ctx     context.Context
	TopicID uuid.UUID
} {
	mock.lockDeleteByTopic.RLock()
	calls := mock.calls.DeleteByTopic
	mock.lockDeleteByTopic.RUnlock()
	return calls
}
