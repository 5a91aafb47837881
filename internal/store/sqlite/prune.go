package sqlite

import (
	"context"
	"fmt"
	"time"
)

// PruneRecords deletes archived insights and injections recorded before
// cutoff and returns how many rows went. Timestamps are compared through
// julianday since the two tables store different ISO-8601 layouts.
func (c *Client) PruneRecords(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	bound := cutoff.UTC().Format(time.RFC3339Nano)
	var total int64
	for _, table := range []string{"insight_records", "injection_records"} {
		res, err := tx.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE julianday(recorded_at) < julianday(?)`, table), bound)
		if err != nil {
			return 0, fmt.Errorf("pruning %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("counting pruned %s: %w", table, err)
		}
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing prune: %w", err)
	}
	return total, nil
}
