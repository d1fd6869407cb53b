package topic

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// ShortestPath returns the fewest-hop route between two live topics over
// the undirected parent/child graph, endpoints included.
func (s *Service) ShortestPath(ctx context.Context, input ShortestPathInput) ([]domain.TopicRef, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	fromHead, err := s.liveHead(ctx, input.From)
	if err != nil {
		return nil, fmt.Errorf("shortest path: from: %w", err)
	}

	if input.From == input.To {
		v, err := s.currentVersion(ctx, fromHead)
		if err != nil {
			return nil, fmt.Errorf("shortest path: %w", err)
		}
		return []domain.TopicRef{{TopicID: v.TopicID, Name: v.Name}}, nil
	}

	if _, err := s.liveHead(ctx, input.To); err != nil {
		return nil, fmt.Errorf("shortest path: to: %w", err)
	}

	g, err := s.loadGraph(ctx)
	if err != nil {
		return nil, fmt.Errorf("shortest path: %w", err)
	}
	for _, id := range []uuid.UUID{input.From, input.To} {
		if !g.has(id) {
			return nil, fmt.Errorf("shortest path: topic %s: %w", id, domain.ErrNotFound)
		}
	}

	ids, err := bfsPath(g, input.From, input.To)
	if err != nil {
		return nil, fmt.Errorf("shortest path: %w", err)
	}

	path := make([]domain.TopicRef, len(ids))
	for i, id := range ids {
		path[i] = g.ref(id)
	}
	return path, nil
}

// bfsPath runs an unweighted BFS from "from", recording the first
// predecessor of each vertex, and stops once "to" is dequeued.
func bfsPath(g *topicGraph, from, to uuid.UUID) ([]uuid.UUID, error) {
	prev := make(map[uuid.UUID]uuid.UUID)
	visited := map[uuid.UUID]bool{from: true}
	queue := []uuid.UUID{from}

	reached := false
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			reached = true
			break
		}
		for _, next := range g.adjacency[cur] {
			if visited[next] || !g.has(next) {
				continue
			}
			visited[next] = true
			prev[next] = cur
			queue = append(queue, next)
		}
	}
	if !reached {
		return nil, fmt.Errorf("%s to %s: %w", from, to, domain.ErrPathNotFound)
	}

	path := []uuid.UUID{to}
	for cur := to; cur != from; {
		p, ok := prev[cur]
		if !ok {
			break
		}
		path = append(path, p)
		cur = p
	}
	slices.Reverse(path)

	if path[0] != from {
		return nil, fmt.Errorf("%s to %s: broken predecessor chain: %w", from, to, domain.ErrPathNotFound)
	}
	return path, nil
}
