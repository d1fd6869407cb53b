package topic

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// Tree returns the live subtree rooted at rootID.
func (s *Service) Tree(ctx context.Context, rootID uuid.UUID) (*domain.TopicTree, error) {
	if rootID == uuid.Nil {
		return nil, domain.NewValidationError("topic_id", "required")
	}

	if _, err := s.liveHead(ctx, rootID); err != nil {
		return nil, fmt.Errorf("topic tree: %w", err)
	}

	g, err := s.loadGraph(ctx)
	if err != nil {
		return nil, fmt.Errorf("topic tree: %w", err)
	}
	if !g.has(rootID) {
		return nil, fmt.Errorf("topic tree: topic %s: %w", rootID, domain.ErrNotFound)
	}

	return expandTree(g, rootID), nil
}

// expandTree walks the children index depth-first with an explicit stack.
// A topic is attached at most once.
func expandTree(g *topicGraph, rootID uuid.UUID) *domain.TopicTree {
	root := newTreeNode(g, rootID)
	visited := map[uuid.UUID]bool{rootID: true}
	stack := []*domain.TopicTree{root}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, childID := range g.children[node.TopicID] {
			if visited[childID] {
				continue
			}
			visited[childID] = true
			child := newTreeNode(g, childID)
			node.Children = append(node.Children, child)
			stack = append(stack, child)
		}
	}
	return root
}

func newTreeNode(g *topicGraph, id uuid.UUID) *domain.TopicTree {
	ref := g.ref(id)
	return &domain.TopicTree{TopicID: ref.TopicID, Name: ref.Name, Children: []*domain.TopicTree{}}
}
