package domain

import (
	"time"

	"github.com/google/uuid"
)

// TopicVersion is one immutable entry of a topic's version log.
type TopicVersion struct {
	ID            uuid.UUID
	TopicID       uuid.UUID
	Version       int
	Name          string
	Content       string
	ParentTopicID *uuid.UUID
	CreatedAt     time.Time // first version of the topic, carried forward
	UpdatedAt     time.Time // when this version was written
	Action        TopicAction
	PerformedBy   uuid.UUID
}

// IsTombstone reports whether the version marks the topic as deleted.
func (v *TopicVersion) IsTombstone() bool {
	return v.Action == TopicActionDelete
}

// TopicHead is the current pointer for a topic.
type TopicHead struct {
	TopicID       uuid.UUID
	LatestVersion int
	DeletedAt     *time.Time
}

// IsAlive returns true if the head has not been soft-deleted.
func (h TopicHead) IsAlive() bool {
	return h.DeletedAt == nil
}

// TopicRef is a topic identified together with its current name.
type TopicRef struct {
	TopicID uuid.UUID
	Name    string
}

// TopicTree is a topic with its live descendants.
type TopicTree struct {
	TopicID  uuid.UUID
	Name     string
	Children []*TopicTree
}

// LatestVersions reduces a version log to the highest version per topic.
func LatestVersions(versions []TopicVersion) map[uuid.UUID]TopicVersion {
	latest := make(map[uuid.UUID]TopicVersion, len(versions))
	for _, v := range versions {
		if cur, ok := latest[v.TopicID]; !ok || v.Version > cur.Version {
			latest[v.TopicID] = v
		}
	}
	return latest
}
