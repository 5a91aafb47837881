package mcp

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"insightgraph/internal/evidence"
	"insightgraph/internal/model"
	"insightgraph/internal/store"
)

type GetOverviewInput struct{}

type ListSummariesInput struct {
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of summaries, default 50"`
	Source     string `json:"source,omitempty" jsonschema:"restrict to a source system"`
	Importance string `json:"importance,omitempty" jsonschema:"low, medium, or high"`
}

type ListNodesInput struct {
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of nodes, default 100"`
	Tag    string `json:"tag,omitempty" jsonschema:"tag filter, matched exactly or by slug"`
	Entity string `json:"entity,omitempty" jsonschema:"entity filter, matched exactly or by slug"`
}

type ListLinksInput struct {
	NodeID string `json:"node_id,omitempty" jsonschema:"only links touching this node"`
}

type GetBriefingInput struct{}

type CreateInsightInput struct {
	ScenarioPrompt  string   `json:"scenario_prompt,omitempty" jsonschema:"the what-if scenario to analyze"`
	SelectedNodeIDs []string `json:"selected_node_ids,omitempty" jsonschema:"explicit context nodes; overrides prompt matching"`
}

type GetInsightInput struct {
	InsightID string `json:"insight_id" jsonschema:"insight identifier such as ins_0001"`
}

type InjectEvidenceInput struct {
	Title           string `json:"title" jsonschema:"short evidence title"`
	Source          string `json:"source,omitempty" jsonschema:"where the evidence came from"`
	ContentText     string `json:"content_text,omitempty" jsonschema:"evidence body used for tags and re-weighting; defaults to the title"`
	TargetInsightID string `json:"target_insight_id,omitempty" jsonschema:"insight to re-weight"`
}

type ListSummariesOutput struct {
	Summaries []model.Summary `json:"summaries"`
}

type ListNodesOutput struct {
	Nodes []model.InformationNode `json:"information_nodes"`
}

type ListLinksOutput struct {
	Links []model.NodeLink `json:"node_links"`
}

type BriefingOutput struct {
	Cards []model.BriefingCard `json:"briefing_cards"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_overview",
		Description: "Dataset meta, collection counts and the latest update time",
	}, s.handleGetOverview)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_summaries",
		Description: "List event summaries, newest first, with optional filters",
	}, s.handleListSummaries)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_nodes",
		Description: "List information nodes, newest first, with optional filters",
	}, s.handleListNodes)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_links",
		Description: "List links between information nodes",
	}, s.handleListLinks)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_briefing",
		Description: "One briefing card per domain",
	}, s.handleGetBriefing)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "create_insight",
		Description: "Generate beliefs, outcomes and a reality tree for a scenario",
	}, s.handleCreateInsight)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_insight",
		Description: "Retrieve a previously generated insight",
	}, s.handleGetInsight)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "inject_evidence",
		Description: "Add evidence to the graph and optionally re-weight an insight",
	}, s.handleInjectEvidence)
}

func (s *Server) handleGetOverview(ctx context.Context, req *sdk.CallToolRequest, input GetOverviewInput) (*sdk.CallToolResult, store.Overview, error) {
	overview, err := s.db.GetOverview()
	if err != nil {
		return nil, store.Overview{}, err
	}
	return nil, *overview, nil
}

func (s *Server) handleListSummaries(ctx context.Context, req *sdk.CallToolRequest, input ListSummariesInput) (*sdk.CallToolResult, ListSummariesOutput, error) {
	summaries, err := s.db.GetSummaries(store.SummaryQuery{Limit: input.Limit, Source: input.Source, Importance: input.Importance})
	if err != nil {
		return nil, ListSummariesOutput{}, err
	}
	return nil, ListSummariesOutput{Summaries: summaries}, nil
}

func (s *Server) handleListNodes(ctx context.Context, req *sdk.CallToolRequest, input ListNodesInput) (*sdk.CallToolResult, ListNodesOutput, error) {
	nodes, err := s.db.GetNodes(store.NodeQuery{Limit: input.Limit, Tag: input.Tag, Entity: input.Entity})
	if err != nil {
		return nil, ListNodesOutput{}, err
	}
	return nil, ListNodesOutput{Nodes: nodes}, nil
}

func (s *Server) handleListLinks(ctx context.Context, req *sdk.CallToolRequest, input ListLinksInput) (*sdk.CallToolResult, ListLinksOutput, error) {
	links, err := s.db.GetLinks(input.NodeID)
	if err != nil {
		return nil, ListLinksOutput{}, err
	}
	return nil, ListLinksOutput{Links: links}, nil
}

func (s *Server) handleGetBriefing(ctx context.Context, req *sdk.CallToolRequest, input GetBriefingInput) (*sdk.CallToolResult, BriefingOutput, error) {
	cards, err := s.db.GetBriefing()
	if err != nil {
		return nil, BriefingOutput{}, err
	}
	return nil, BriefingOutput{Cards: cards}, nil
}

func (s *Server) handleCreateInsight(ctx context.Context, req *sdk.CallToolRequest, input CreateInsightInput) (*sdk.CallToolResult, model.InsightBlock, error) {
	if strings.TrimSpace(input.ScenarioPrompt) == "" && len(input.SelectedNodeIDs) == 0 {
		return nil, model.InsightBlock{}, fmt.Errorf("scenario_prompt or selected_node_ids is required")
	}
	block, err := s.db.CreateInsight(ctx, store.CreateInsightInput{
		ScenarioPrompt:  input.ScenarioPrompt,
		SelectedNodeIDs: input.SelectedNodeIDs,
	})
	if err != nil {
		return nil, model.InsightBlock{}, err
	}
	return nil, *block, nil
}

func (s *Server) handleGetInsight(ctx context.Context, req *sdk.CallToolRequest, input GetInsightInput) (*sdk.CallToolResult, model.InsightBlock, error) {
	if input.InsightID == "" {
		return nil, model.InsightBlock{}, fmt.Errorf("insight_id is required")
	}
	block, err := s.db.GetInsight(input.InsightID)
	if err != nil {
		return nil, model.InsightBlock{}, err
	}
	if block == nil {
		return nil, model.InsightBlock{}, fmt.Errorf("insight %s not found", input.InsightID)
	}
	return nil, *block, nil
}

func (s *Server) handleInjectEvidence(ctx context.Context, req *sdk.CallToolRequest, input InjectEvidenceInput) (*sdk.CallToolResult, store.InjectionResult, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, store.InjectionResult{}, fmt.Errorf("title is required")
	}
	res, err := s.db.InjectEvidence(ctx, evidence.Input{
		Title:           input.Title,
		Source:          input.Source,
		ContentText:     input.ContentText,
		TargetInsightID: input.TargetInsightID,
	})
	if err != nil {
		return nil, store.InjectionResult{}, err
	}
	return nil, *res, nil
}
