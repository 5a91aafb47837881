package graph

import (
	"context"
	"fmt"

	"insightgraph/internal/model"
)

type ExportStats struct {
	Nodes   int
	Links   int
	Removed int64
}

type writer interface {
	EnsureIndexes(ctx context.Context) error
	UpsertNode(ctx context.Context, node model.InformationNode) error
	UpsertLink(ctx context.Context, link model.NodeLink) error
	RemoveStaleNodes(ctx context.Context, keep []string) (int64, error)
}

// Export writes nodes then links, and prunes nodes that are no longer part
// of the snapshot. It stops at the first failed write.
func (c *Client) Export(ctx context.Context, nodes []model.InformationNode, links []model.NodeLink) (ExportStats, error) {
	return export(ctx, c, nodes, links)
}

func export(ctx context.Context, w writer, nodes []model.InformationNode, links []model.NodeLink) (ExportStats, error) {
	var stats ExportStats

	if err := w.EnsureIndexes(ctx); err != nil {
		return stats, err
	}

	keep := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := w.UpsertNode(ctx, node); err != nil {
			return stats, err
		}
		keep = append(keep, node.NodeID)
		stats.Nodes++
	}

	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := w.UpsertLink(ctx, link); err != nil {
			return stats, err
		}
		stats.Links++
	}

	removed, err := w.RemoveStaleNodes(ctx, keep)
	if err != nil {
		return stats, fmt.Errorf("export: %w", err)
	}
	stats.Removed = removed
	return stats, nil
}
