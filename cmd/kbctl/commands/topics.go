package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/knowledge-base/internal/app"
	"github.com/heartmarshall/knowledge-base/internal/config"
	"github.com/heartmarshall/knowledge-base/internal/domain"
	"github.com/heartmarshall/knowledge-base/internal/metrics"
	"github.com/heartmarshall/knowledge-base/internal/service/topic"
)

var treeCmd = &cobra.Command{
	Use:   "tree TOPIC_ID",
	Short: "Print a topic and its live descendants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTopicID(args[0])
		if err != nil {
			return err
		}

		return withTopics(cmd, func(svc *topic.Service) error {
			tree, err := svc.Tree(cmd.Context(), id)
			if err != nil {
				return failure("Cannot build tree", err)
			}
			printTree(out, tree, "")
			return nil
		})
	},
}

var pathCmd = &cobra.Command{
	Use:   "path FROM_ID TO_ID",
	Short: "Print the shortest path between two topics",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseTopicID(args[0])
		if err != nil {
			return err
		}
		to, err := parseTopicID(args[1])
		if err != nil {
			return err
		}

		return withTopics(cmd, func(svc *topic.Service) error {
			path, err := svc.ShortestPath(cmd.Context(), topic.ShortestPathInput{From: from, To: to})
			if err != nil {
				return failure("Cannot find path", err)
			}
			names := make([]string, len(path))
			for i, ref := range path {
				names[i] = ref.Name
			}
			fmt.Fprintln(out, strings.Join(names, " → "))
			return nil
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history TOPIC_ID",
	Short: "Print every version of a topic, tombstones included",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTopicID(args[0])
		if err != nil {
			return err
		}

		return withTopics(cmd, func(svc *topic.Service) error {
			versions, err := svc.History(cmd.Context(), id)
			if err != nil {
				return failure("Cannot load history", err)
			}
			printHistory(out, versions)
			return nil
		})
	},
}

func withTopics(cmd *cobra.Command, fn func(svc *topic.Service) error) error {
	return withStorage(cmd.Context(), func(_ *config.Config, store *app.Storage, log *slog.Logger) error {
		return fn(topic.NewService(log, store.Versions, store.Heads, store.Resources, store.Tx, metrics.Nop{}))
	})
}

func parseTopicID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, failure("Invalid topic id", err)
	}
	return id, nil
}

func printTree(w io.Writer, t *domain.TopicTree, indent string) {
	fmt.Fprintf(w, "%s%s ", indent, t.Name)
	faint.Fprintf(w, "%s\n", t.TopicID) //nolint:errcheck
	for _, child := range t.Children {
		printTree(w, child, indent+"  ")
	}
}

func printHistory(w io.Writer, versions []domain.TopicVersion) {
	for _, v := range versions {
		action := cyan
		if v.IsTombstone() {
			action = red
		}
		fmt.Fprintf(w, "v%-3d ", v.Version)
		action.Fprintf(w, "%-6s ", v.Action) //nolint:errcheck
		fmt.Fprintf(w, "%s  %q", v.UpdatedAt.Format(time.RFC3339), v.Name)
		if v.ParentTopicID != nil {
			faint.Fprintf(w, "  parent=%s", v.ParentTopicID) //nolint:errcheck
		}
		fmt.Fprintln(w)
	}
}
