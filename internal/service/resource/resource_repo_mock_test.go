package resource

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

var _ resourceRepo = &resourceRepoMock{}

type resourceRepoMock struct {
	CreateFunc      func(ctx context.Context, r *domain.Resource) error
	UpdateFunc      func(ctx context.Context, r *domain.Resource) error
	GetFunc         func(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	SoftDeleteFunc  func(ctx context.Context, id uuid.UUID) error
	ListByTopicFunc func(ctx context.Context, topicID uuid.UUID) ([]domain.Resource, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			R   *domain.Resource
		}
		Update []struct {
			Ctx context.Context
			R   *domain.Resource
		}
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		SoftDelete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListByTopic []struct {
			Ctx     context.Context
			TopicID uuid.UUID
		}
	}
	lockCreate      sync.RWMutex
	lockUpdate      sync.RWMutex
	lockGet         sync.RWMutex
	lockSoftDelete  sync.RWMutex
	lockListByTopic sync.RWMutex
}

func (mock *resourceRepoMock) Create(ctx context.Context, r *domain.Resource) error {
	if mock.CreateFunc == nil {
		panic("resourceRepoMock.CreateFunc: method is nil but resourceRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		R   *domain.Resource
	}{Ctx: ctx, R: r}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, r)
}

func (mock *resourceRepoMock) CreateCalls() []struct {
	Ctx context.Context
	R   *domain.Resource
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *resourceRepoMock) Update(ctx context.Context, r *domain.Resource) error {
	if mock.UpdateFunc == nil {
		panic("resourceRepoMock.UpdateFunc: method is nil but resourceRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		R   *domain.Resource
	}{Ctx: ctx, R: r}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, r)
}

func (mock *resourceRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	R   *domain.Resource
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *resourceRepoMock) Get(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	if mock.GetFunc == nil {
		panic("resourceRepoMock.GetFunc: method is nil but resourceRepo.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *resourceRepoMock) GetCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *resourceRepoMock) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if mock.SoftDeleteFunc == nil {
		panic("resourceRepoMock.SoftDeleteFunc: method is nil but resourceRepo.SoftDelete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockSoftDelete.Lock()
	mock.calls.SoftDelete = append(mock.calls.SoftDelete, callInfo)
	mock.lockSoftDelete.Unlock()
	return mock.SoftDeleteFunc(ctx, id)
}

func (mock *resourceRepoMock) SoftDeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockSoftDelete.RLock()
	calls := mock.calls.SoftDelete
	mock.lockSoftDelete.RUnlock()
	return calls
}

func (mock *resourceRepoMock) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.Resource, error) {
	if mock.ListByTopicFunc == nil {
		panic("resourceRepoMock.ListByTopicFunc: method is nil but resourceRepo.ListByTopic was just called")
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

func (mock *resourceRepoMock) ListByTopicCalls() []struct {
	Ctx     context.Context
	TopicID uuid.UUID
} {
	mock.lockListByTopic.RLock()
	calls := mock.calls.ListByTopic
	mock.lockListByTopic.RUnlock()
	return calls
}
