package sqlite

import (
	"context"
	"fmt"
	"strings"
)

const ddl = `
CREATE TABLE IF NOT EXISTS insight_records (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	insight_id   TEXT NOT NULL,
	scenario_key TEXT NOT NULL DEFAULT '',
	payload      TEXT NOT NULL,
	recorded_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS injection_records (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	injection_id      TEXT NOT NULL,
	node_id           TEXT NOT NULL,
	summary_id        TEXT NOT NULL,
	target_insight_id TEXT NOT NULL DEFAULT '',
	recorded_at       TEXT NOT NULL
);

-- lookups by insight for the history command
CREATE INDEX IF NOT EXISTS idx_insight_records_insight ON insight_records (insight_id);
CREATE INDEX IF NOT EXISTS idx_injection_records_target ON injection_records (target_insight_id);
`

func (c *Client) EnsureSchema(ctx context.Context) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}
	return nil
}

// splitStatements splits on lines ending in ';' and drops "--" comment lines.
func splitStatements(script string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(script, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}
	if strings.TrimSpace(current.String()) != "" {
		statements = append(statements, current.String())
	}
	return statements
}
