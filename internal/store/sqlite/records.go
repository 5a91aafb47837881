package sqlite

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
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO insight_records (insight_id, scenario_key, payload, recorded_at) VALUES (?, ?, ?, ?)`,
		block.InsightID, block.ModelMeta.ScenarioKey, string(payload), at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording insight %s: %w", block.InsightID, err)
	}
	return nil
}

func (c *Client) RecordInjection(ctx context.Context, injection model.Injection) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO injection_records (injection_id, node_id, summary_id, target_insight_id, recorded_at) VALUES (?, ?, ?, ?, ?)`,
		injection.InjectionID, injection.NodeID, injection.SummaryID, injection.TargetInsightID, injection.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("recording injection %s: %w", injection.InjectionID, err)
	}
	return nil
}

func (c *Client) ListInsightRecords(ctx context.Context, limit int) ([]store.InsightRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := c.db.QueryContext(ctx,
		`SELECT insight_id, scenario_key, payload, recorded_at FROM insight_records ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing insight records: %w", err)
	}
	defer rows.Close()

	records := make([]store.InsightRecord, 0)
	for rows.Next() {
		var (
			rec        store.InsightRecord
			payload    string
			recordedAt string
		)
		if err := rows.Scan(&rec.InsightID, &rec.ScenarioKey, &payload, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning insight record: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &rec.Insight); err != nil {
			return nil, fmt.Errorf("decoding insight %s: %w", rec.InsightID, err)
		}
		rec.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing recorded_at for %s: %w", rec.InsightID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating insight records: %w", err)
	}
	return records, nil
}
