package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"insightgraph/internal/model"
	"insightgraph/internal/store"
)

func (c *Client) RecordInsight(ctx context.Context, block model.InsightBlock, at time.Time) error {
	payload, err := json.Marshal(block)
	if err != nil {
		return fmt.Errorf("marshaling insight: %w", err)
	}
	_, err = c.pool.Exec(ctx, `
INSERT INTO insight_records (insight_id, scenario_key, payload, recorded_at)
VALUES ($1, $2, $3, $4)
`, block.InsightID, block.ModelMeta.ScenarioKey, payload, at)
	if err != nil {
		return fmt.Errorf("recording insight %s: %w", block.InsightID, err)
	}
	return nil
}

func (c *Client) RecordInjection(ctx context.Context, injection model.Injection) error {
	_, err := c.pool.Exec(ctx, `
INSERT INTO injection_records (injection_id, node_id, summary_id, target_insight_id, recorded_at)
VALUES ($1, $2, $3, $4, $5)
`, injection.InjectionID, injection.NodeID, injection.SummaryID, injection.TargetInsightID, injection.Timestamp)
	if err != nil {
		return fmt.Errorf("recording injection %s: %w", injection.InjectionID, err)
	}
	return nil
}

// ListInsightRecords returns up to limit archived insight versions, newest
// first.
func (c *Client) ListInsightRecords(ctx context.Context, limit int) ([]store.InsightRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := c.pool.Query(ctx, `
SELECT insight_id, scenario_key, payload, recorded_at
FROM insight_records
ORDER BY id DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing insight records: %w", err)
	}
	defer rows.Close()

	records := make([]store.InsightRecord, 0)
	for rows.Next() {
		var (
			rec     store.InsightRecord
			payload []byte
		)
		if err := rows.Scan(&rec.InsightID, &rec.ScenarioKey, &payload, &rec.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning insight record: %w", err)
		}
		if err := json.Unmarshal(payload, &rec.Insight); err != nil {
			return nil, fmt.Errorf("decoding insight %s: %w", rec.InsightID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating insight records: %w", err)
	}
	return records, nil
}
