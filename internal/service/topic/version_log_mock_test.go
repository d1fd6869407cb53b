package topic

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

var _ versionLog = &versionLogMock{}

type versionLogMock struct {
	AppendFunc               func(ctx context.Context, v *domain.TopicVersion) error
	GetByTopicAndVersionFunc func(ctx context.Context, topicID uuid.UUID, version int) (*domain.TopicVersion, error)
	ListAllFunc              func(ctx context.Context) ([]domain.TopicVersion, error)
	ListByTopicFunc          func(ctx context.Context, topicID uuid.UUID) ([]domain.TopicVersion, error)

	calls struct {
		Append []struct {
			Ctx context.Context
			V   *domain.TopicVersion
		}
		GetByTopicAndVersion []struct {
			Ctx     context.Context
			TopicID uuid.UUID
			Version int
		}
		ListAll []struct {
			Ctx context.Context
		}
		ListByTopic []struct {
			Ctx     context.Context
			TopicID uuid.UUID
		}
	}
	lockAppend               sync.RWMutex
	lockGetByTopicAndVersion sync.RWMutex
	lockListAll              sync.RWMutex
	lockListByTopic          sync.RWMutex
}

func (mock *versionLogMock) Append(ctx context.Context, v *domain.TopicVersion) error {
	if mock.AppendFunc == nil {
		panic("versionLogMock.AppendFunc: method is nil but versionLog.Append was just called")
	}
	callInfo := struct {
		Ctx context.Context
		V   *domain.TopicVersion
	}{Ctx: ctx, V: v}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, v)
}

func (mock *versionLogMock) AppendCalls() []struct {
	Ctx context.Context
	V   *domain.TopicVersion
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *versionLogMock) GetByTopicAndVersion(ctx context.Context, topicID uuid.UUID, version int) (*domain.TopicVersion, error) {
	if mock.GetByTopicAndVersionFunc == nil {
		panic("versionLogMock.GetByTopicAndVersionFunc: method is nil but versionLog.GetByTopicAndVersion was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TopicID uuid.UUID
		Version int
	}{Ctx: ctx, TopicID: topicID, Version: version}
	mock.lockGetByTopicAndVersion.Lock()
	mock.calls.GetByTopicAndVersion = append(mock.calls.GetByTopicAndVersion, callInfo)
	mock.lockGetByTopicAndVersion.Unlock()
	return mock.GetByTopicAndVersionFunc(ctx, topicID, version)
}

func (mock *versionLogMock) GetByTopicAndVersionCalls() []struct {
	Ctx     context.Context
	TopicID uuid.UUID
	Version int
} {
	mock.lockGetByTopicAndVersion.RLock()
	calls := mock.calls.GetByTopicAndVersion
	mock.lockGetByTopicAndVersion.RUnlock()
	return calls
}

func (mock *versionLogMock) ListAll(ctx context.Context) ([]domain.TopicVersion, error) {
	if mock.ListAllFunc == nil {
		panic("versionLogMock.ListAllFunc: method is nil but versionLog.ListAll was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListAll.Lock()
	mock.calls.ListAll = append(mock.calls.ListAll, callInfo)
	mock.lockListAll.Unlock()
	return mock.ListAllFunc(ctx)
}

func (mock *versionLogMock) ListAllCalls() []struct {
	Ctx context.Context
} {
	mock.lockListAll.RLock()
	calls := mock.calls.ListAll
	mock.lockListAll.RUnlock()
	return calls
}

func (mock *versionLogMock) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.TopicVersion, error) {
	if mock.ListByTopicFunc == nil {
		panic("versionLogMock.ListByTopicFunc: method is nil but versionLog.ListByTopic was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TopicID uuid.UUID
	}{Ctx: ctx, TopicID: topicID}
	mock.lockListByTopic.Lock()
	mock.calls.ListByTopic = append(mock.calls.ListByTopic, callInfo)
	mock.lockListByTopic.Unlock()
	return mock.ListByTopicFunc(ctx, topicID)
}

func (mock *versionLogMock) ListByTopicCalls() []struct {
	Ctx     context.Context
	TopicID uuid.UUID
} {
	mock.lockListByTopic.RLock()
	calls := mock.calls.ListByTopic
	mock.lockListByTopic.RUnlock()
	return calls
}
