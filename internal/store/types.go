package store

import (
	"time"

	"insightgraph/internal/model"
)

const (
	DefaultSummaryLimit = 50
	DefaultNodeLimit    = 100
)

type Counts struct {
	Summaries        int `json:"summaries"`
	InformationNodes int `json:"information_nodes"`
	NodeLinks        int `json:"node_links"`
	InsightBlocks    int `json:"insight_blocks"`
	BriefingCards    int `json:"briefing_cards"`
	Injections       int `json:"injections"`
}

type Overview struct {
	Meta           model.Meta `json:"meta"`
	Counts         Counts     `json:"counts"`
	LatestUpdateAt *string    `json:"latest_update_at"`
}

// SummaryQuery filters summaries. Zero values mean no filter; Limit <= 0
// means DefaultSummaryLimit.
type SummaryQuery struct {
	Limit      int
	Source     string
	Importance string
}

// NodeQuery filters nodes. Limit <= 0 means DefaultNodeLimit.
type NodeQuery struct {
	Limit  int
	Tag    string
	Entity string
}

type CreateInsightInput struct {
	ScenarioPrompt  string   `json:"scenario_prompt"`
	SelectedNodeIDs []string `json:"selected_node_ids"`
}

type InjectionResult struct {
	Injection      model.Injection       `json:"injection"`
	Summary        model.Summary         `json:"summary"`
	Node           model.InformationNode `json:"node"`
	UpdatedInsight *model.InsightBlock   `json:"updated_insight"`
}

// InsightRecord is one archived version of an insight.
type InsightRecord struct {
	InsightID   string             `json:"insight_id"`
	ScenarioKey string             `json:"scenario_key"`
	Insight     model.InsightBlock `json:"insight"`
	RecordedAt  time.Time          `json:"recorded_at"`
}

// Snapshot is a point-in-time copy of the derived collections.
type Snapshot struct {
	Meta             model.Meta              `json:"meta"`
	Summaries        []model.Summary         `json:"summaries"`
	InformationNodes []model.InformationNode `json:"information_nodes"`
	NodeLinks        []model.NodeLink        `json:"node_links"`
	InsightBlocks    []model.InsightBlock    `json:"insight_blocks"`
	BriefingCards    []model.BriefingCard    `json:"briefing_cards"`
	Injections       []model.Injection       `json:"injections"`
}
