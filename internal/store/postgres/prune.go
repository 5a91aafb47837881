package postgres

import (
	"context"
	"fmt"
	"time"
)

// PruneRecords deletes archived insights and injections recorded before
// cutoff and returns how many rows went.
func (c *Client) PruneRecords(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insights, err := tx.Exec(ctx, `DELETE FROM insight_records WHERE recorded_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning insight records: %w", err)
	}
	injections, err := tx.Exec(ctx, `DELETE FROM injection_records WHERE recorded_at::timestamptz < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning injection records: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing prune: %w", err)
	}
	return insights.RowsAffected() + injections.RowsAffected(), nil
}
