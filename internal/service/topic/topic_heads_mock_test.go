package topic

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

var _ topicHeads = &topicHeadsMock{}

type topicHeadsMock struct {
	UpsertFunc       func(ctx context.Context, head domain.TopicHead) error
	GetFunc          func(ctx context.Context, topicID uuid.UUID) (*domain.TopicHead, error)
	ListAllFunc      func(ctx context.Context) ([]domain.TopicHead, error)
	FindChildrenFunc func(ctx context.Context, topicID uuid.UUID) ([]domain.TopicHead, error)

	calls struct {
		Upsert []struct {
			Ctx  context.Context
			Head domain.TopicHead
		}
		Get []struct {
			Ctx     context.Context
			TopicID uuid.UUID
		}
		ListAll []struct {
			Ctx context.Context
		}
		FindChildren []struct {
			Ctx     context.Context
			TopicID uuid.UUID
		}
	}
	lockUpsert       sync.RWMutex
	lockGet          sync.RWMutex
	lockListAll      sync.RWMutex
	lockFindChildren sync.RWMutex
}

func (mock *topicHeadsMock) Upsert(ctx context.Context, head domain.TopicHead) error {
	if mock.UpsertFunc == nil {
		panic("topicHeadsMock.UpsertFunc: method is nil but topicHeads.Upsert was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Head domain.TopicHead
	}{Ctx: ctx, Head: head}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, head)
}

func (mock *topicHeadsMock) UpsertCalls() []struct {
	Ctx  context.Context
	Head domain.TopicHead
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
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

func (mock *topicHeadsMock) ListAll(ctx context.Context) ([]domain.TopicHead, error) {
	if mock.ListAllFunc == nil {
		panic("topicHeadsMock.ListAllFunc: method is nil but topicHeads.ListAll was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListAll.Lock()
	mock.calls.ListAll = append(mock.calls.ListAll, callInfo)
	mock.lockListAll.Unlock()
	return mock.ListAllFunc(ctx)
}

func (mock *topicHeadsMock) ListAllCalls() []struct {
	Ctx context.Context
} {
	mock.lockListAll.RLock()
	calls := mock.calls.ListAll
	mock.lockListAll.RUnlock()
	return calls
}

func (mock *topicHeadsMock) FindChildren(ctx context.Context, topicID uuid.UUID) ([]domain.TopicHead, error) {
	if mock.FindChildrenFunc == nil {
		panic("topicHeadsMock.FindChildrenFunc: method is nil but topicHeads.FindChildren was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TopicID uuid.UUID
	}{Ctx: ctx, TopicID: topicID}
	mock.lockFindChildren.Lock()
	mock.calls.FindChildren = append(mock.calls.FindChildren, callInfo)
	mock.lockFindChildren.Unlock()
	return mock.FindChildrenFunc(ctx, topicID)
}

func (mock *topicHeadsMock) FindChildrenCalls() []struct {
	Ctx     context.Context
	TopicID uuid.UUID
} {
	mock.lockFindChildren.RLock()
	calls := mock.calls.FindChildren
	mock.lockFindChildren.RUnlock()
	return calls
}
