package topic

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// versionFromCreate builds version 1 of a new topic.
func versionFromCreate(topicID uuid.UUID, in CreateTopicInput, now time.Time, actor uuid.UUID) *domain.TopicVersion {
	return &domain.TopicVersion{
		ID:            uuid.New(),
		TopicID:       topicID,
		Version:       1,
		Name:          in.Name,
		Content:       in.Content,
		ParentTopicID: copyID(in.ParentTopicID),
		CreatedAt:     now,
		UpdatedAt:     now,
		Action:        domain.TopicActionCreate,
		PerformedBy:   actor,
	}
}

// versionFromUpdate derives the next version from prev, overlaying only the
// fields present in the input.
func versionFromUpdate(next int, prev *domain.TopicVersion, in UpdateTopicInput, now time.Time, actor uuid.UUID) *domain.TopicVersion {
	v := derive(next, prev, now, actor, domain.TopicActionUpdate)
	if in.Name != nil {
		v.Name = *in.Name
	}
	if in.Content != nil {
		v.Content = *in.Content
	}
	v.ParentTopicID = copyID(in.ParentTopicID.Apply(prev.ParentTopicID))
	return v
}

// versionFromDelete derives a tombstone carrying prev's payload.
func versionFromDelete(next int, prev *domain.TopicVersion, now time.Time, actor uuid.UUID) *domain.TopicVersion {
	return derive(next, prev, now, actor, domain.TopicActionDelete)
}

func derive(next int, prev *domain.TopicVersion, now time.Time, actor uuid.UUID, action domain.TopicAction) *domain.TopicVersion {
	return &domain.TopicVersion{
		ID:            uuid.New(),
		TopicID:       prev.TopicID,
		Version:       next,
		Name:          prev.Name,
		Content:       prev.Content,
		ParentTopicID: copyID(prev.ParentTopicID),
		CreatedAt:     prev.CreatedAt,
		UpdatedAt:     now,
		Action:        action,
		PerformedBy:   actor,
	}
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
