package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"insightgraph/internal/model"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

func TestParseDSN(t *testing.T) {
	tests := []struct {
		dsn     string
		want    string
		wantErr bool
	}{
		{dsn: "sqlite://:memory:", want: ":memory:"},
		{dsn: "sqlite:///var/lib/insightgraph.db", want: "/var/lib/insightgraph.db"},
		{dsn: "sqlite://./archive.db", want: "./archive.db"},
		{dsn: "sqlite://archive.db", want: "./archive.db"},
		{dsn: "sqlite://my%20archive.db?_pragma=foreign_keys(1)", want: "./my archive.db?_pragma=foreign_keys(1)"},
		{dsn: "postgres://localhost/db", wantErr: true},
		{dsn: "sqlite://", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseDSN(tt.dsn)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDSN(%q) expected error", tt.dsn)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDSN(%q) unexpected error: %v", tt.dsn, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDSN(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements(ddl)
	if len(stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d: %q", len(stmts), stmts)
	}
}

func TestEnsureSchema(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS insight_records").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS injection_records").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_insight_records_insight").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_injection_records_target").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	c := &Client{db: db}
	if err := c.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
}

func TestEnsureSchemaRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS insight_records").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	c := &Client{db: db}
	if err := c.EnsureSchema(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRecordInsight(t *testing.T) {
	db, mock := newMockDB(t)
	at := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO insight_records").
		WithArgs("ins_0001", "cost_spike", sqlmock.AnyArg(), "2024-04-01T00:00:00Z").
		WillReturnResult(sqlmock.NewResult(1, 1))

	c := &Client{db: db}
	block := model.InsightBlock{InsightID: "ins_0001", ModelMeta: model.ModelMeta{ScenarioKey: "cost_spike"}}
	if err := c.RecordInsight(context.Background(), block, at); err != nil {
		t.Fatalf("RecordInsight: %v", err)
	}
}

func TestRecordInjection(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO injection_records").
		WithArgs("inj_0001", "node_0004", "sum_0004", "ins_0001", "2024-04-01T00:00:00.000Z").
		WillReturnError(errors.New("locked"))

	c := &Client{db: db}
	err := c.RecordInjection(context.Background(), model.Injection{
		InjectionID: "inj_0001", NodeID: "node_0004", SummaryID: "sum_0004",
		TargetInsightID: "ins_0001", Timestamp: "2024-04-01T00:00:00.000Z",
	})
	if err == nil {
		t.Fatal("expected error to propagate")
	}
}

func TestListInsightRecords(t *testing.T) {
	db, mock := newMockDB(t)
	payload, _ := json.Marshal(model.InsightBlock{InsightID: "ins_0002", ScenarioPrompt: "cost spike"})
	rows := sqlmock.NewRows([]string{"insight_id", "scenario_key", "payload", "recorded_at"}).
		AddRow("ins_0002", "cost_spike", string(payload), "2024-04-01T00:00:00Z")
	mock.ExpectQuery("SELECT insight_id, scenario_key, payload, recorded_at FROM insight_records").
		WithArgs(5).
		WillReturnRows(rows)

	c := &Client{db: db}
	records, err := c.ListInsightRecords(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListInsightRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Insight.ScenarioPrompt != "cost spike" {
		t.Fatalf("payload not decoded: %+v", records[0])
	}
	if !records[0].RecordedAt.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected recorded_at %v", records[0].RecordedAt)
	}
}

func TestListInsightRecordsDefaultLimit(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .+ FROM insight_records").
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{"insight_id", "scenario_key", "payload", "recorded_at"}))

	c := &Client{db: db}
	records, err := c.ListInsightRecords(context.Background(), 0)
	if err != nil || len(records) != 0 {
		t.Fatalf("expected empty records, got %v, %v", records, err)
	}
}

func TestInMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := New(ctx, "sqlite://:memory:")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close(ctx)

	if err := c.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	at := time.Date(2024, 4, 1, 12, 30, 0, 0, time.UTC)
	for _, id := range []string{"ins_0001", "ins_0002", "ins_0003"} {
		if err := c.RecordInsight(ctx, model.InsightBlock{InsightID: id}, at); err != nil {
			t.Fatalf("RecordInsight(%s): %v", id, err)
		}
	}
	if err := c.RecordInjection(ctx, model.Injection{InjectionID: "inj_0001", NodeID: "node_0004", SummaryID: "sum_0004"}); err != nil {
		t.Fatalf("RecordInjection: %v", err)
	}

	records, err := c.ListInsightRecords(ctx, 2)
	if err != nil {
		t.Fatalf("ListInsightRecords: %v", err)
	}
	if len(records) != 2 || records[0].InsightID != "ins_0003" || records[1].InsightID != "ins_0002" {
		t.Fatalf("expected newest two records, got %+v", records)
	}
}

func TestPruneRecords(t *testing.T) {
	db, mock := newMockDB(t)
	cutoff := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM insight_records").WithArgs("2024-04-01T00:00:00Z").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM injection_records").WithArgs("2024-04-01T00:00:00Z").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c := &Client{db: db}
	n, err := c.PruneRecords(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("PruneRecords: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 pruned rows, got %d", n)
	}
}

func TestPruneRecordsRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM insight_records").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM injection_records").WillReturnError(errors.New("locked"))
	mock.ExpectRollback()

	c := &Client{db: db}
	if _, err := c.PruneRecords(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error")
	}
}

func TestInMemoryPrune(t *testing.T) {
	ctx := context.Background()
	c, err := New(ctx, "sqlite://:memory:")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close(ctx)
	if err := c.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	if err := c.RecordInsight(ctx, model.InsightBlock{InsightID: "ins_0001"}, old); err != nil {
		t.Fatalf("RecordInsight: %v", err)
	}
	if err := c.RecordInsight(ctx, model.InsightBlock{InsightID: "ins_0002"}, recent); err != nil {
		t.Fatalf("RecordInsight: %v", err)
	}
	if err := c.RecordInjection(ctx, model.Injection{InjectionID: "inj_0001", NodeID: "node_0004", SummaryID: "sum_0004", Timestamp: "2024-01-02T00:00:00.000Z"}); err != nil {
		t.Fatalf("RecordInjection: %v", err)
	}

	n, err := c.PruneRecords(ctx, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("PruneRecords: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 pruned rows, got %d", n)
	}
	records, err := c.ListInsightRecords(ctx, 10)
	if err != nil {
		t.Fatalf("ListInsightRecords: %v", err)
	}
	if len(records) != 1 || records[0].InsightID != "ins_0002" {
		t.Fatalf("expected only ins_0002 to survive, got %+v", records)
	}
}
