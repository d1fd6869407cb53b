package topic

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// topicGraph is the live topic hierarchy reconstructed from the version log.
type topicGraph struct {
	// vertices holds the latest version of every live topic.
	vertices map[uuid.UUID]domain.TopicVersion
	// adjacency links each topic with its parent in both directions.
	// Neighbours may lie outside vertices.
	adjacency map[uuid.UUID][]uuid.UUID
	// children maps a parent id to its live children.
	children map[uuid.UUID][]uuid.UUID
}

func (g *topicGraph) has(id uuid.UUID) bool {
	_, ok := g.vertices[id]
	return ok
}

func (g *topicGraph) ref(id uuid.UUID) domain.TopicRef {
	return domain.TopicRef{TopicID: id, Name: g.vertices[id].Name}
}

// loadGraph takes a fresh snapshot of versions and heads and builds the
// graph. The two reads are not isolated from concurrent writers.
func (s *Service) loadGraph(ctx context.Context) (*topicGraph, error) {
	var (
		versions []domain.TopicVersion
		heads    []domain.TopicHead
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		versions, err = s.versions.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("list versions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		heads, err = s.heads.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("list heads: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildGraph(versions, heads), nil
}

// buildGraph intersects the latest version per topic with the live heads.
// Vertices are ordered by creation time, then id, so neighbour order is
// stable across calls.
func buildGraph(versions []domain.TopicVersion, heads []domain.TopicHead) *topicGraph {
	latest := domain.LatestVersions(versions)

	alive := make([]domain.TopicVersion, 0, len(heads))
	for _, h := range heads {
		if !h.IsAlive() {
			continue
		}
		if v, ok := latest[h.TopicID]; ok {
			alive = append(alive, v)
		}
	}
	slices.SortFunc(alive, func(a, b domain.TopicVersion) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.TopicID.String(), b.TopicID.String())
	})

	g := &topicGraph{
		vertices:  make(map[uuid.UUID]domain.TopicVersion, len(alive)),
		adjacency: make(map[uuid.UUID][]uuid.UUID, len(alive)),
		children:  make(map[uuid.UUID][]uuid.UUID),
	}
	for _, v := range alive {
		g.vertices[v.TopicID] = v
		if _, ok := g.adjacency[v.TopicID]; !ok {
			g.adjacency[v.TopicID] = nil
		}
		if v.ParentTopicID == nil {
			continue
		}
		p := *v.ParentTopicID
		g.adjacency[v.TopicID] = append(g.adjacency[v.TopicID], p)
		g.adjacency[p] = append(g.adjacency[p], v.TopicID)
		g.children[p] = append(g.children[p], v.TopicID)
	}
	return g
}
