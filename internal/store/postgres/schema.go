package postgres

import (
	"context"
	"fmt"
)

// EnsureSchema is idempotent; both tables are append-only.
func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS insight_records (
    id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    insight_id   TEXT NOT NULL,
    scenario_key TEXT NOT NULL DEFAULT '',
    payload      JSONB NOT NULL,
    recorded_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS injection_records (
    id                BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    injection_id      TEXT NOT NULL,
    node_id           TEXT NOT NULL,
    summary_id        TEXT NOT NULL,
    target_insight_id TEXT NOT NULL DEFAULT '',
    recorded_at       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_insight_records_insight ON insight_records (insight_id);
CREATE INDEX IF NOT EXISTS idx_insight_records_recorded ON insight_records (recorded_at DESC);
CREATE INDEX IF NOT EXISTS idx_injection_records_target ON injection_records (target_insight_id);
`
	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
