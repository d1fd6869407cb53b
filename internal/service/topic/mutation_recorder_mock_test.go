package topic

import (
	"sync"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

var _ mutationRecorder = &mutationRecorderMock{}

type mutationRecorderMock struct {
	RecordTopicMutationFunc func(action domain.TopicAction)

	calls struct {
		RecordTopicMutation []struct {
			Action domain.TopicAction
		}
	}
	lockRecordTopicMutation sync.RWMutex
}

func (mock *mutationRecorderMock) RecordTopicMutation(action domain.TopicAction) {
	if mock.RecordTopicMutationFunc == nil {
		panic("mutationRecorderMock.RecordTopicMutationFunc: method is nil but mutationRecorder.RecordTopicMutation was just called")
	}
	callInfo := struct {
		Action domain.TopicAction
	}{Action: action}
	mock.lockRecordTopicMutation.Lock()
	mock.calls.RecordTopicMutation = append(mock.calls.RecordTopicMutation, callInfo)
	mock.lockRecordTopicMutation.Unlock()
	mock.RecordTopicMutationFunc(action)
}

func (mock *mutationRecorderMock) RecordTopicMutationCalls() []struct {
	Action domain.TopicAction
} {
	mock.lockRecordTopicMutation.RLock()
	calls := mock.calls.RecordTopicMutation
	mock.lockRecordTopicMutation.RUnlock()
	return calls
}
