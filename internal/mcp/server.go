// Package mcp exposes the information graph and insight engine as MCP
// tools over stdio.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"insightgraph/internal/evidence"
	"insightgraph/internal/model"
	"insightgraph/internal/store"
)

// Querier is the store surface the tools call.
type Querier interface {
	GetOverview() (*store.Overview, error)
	GetSummaries(q store.SummaryQuery) ([]model.Summary, error)
	GetNodes(q store.NodeQuery) ([]model.InformationNode, error)
	GetLinks(nodeID string) ([]model.NodeLink, error)
	GetBriefing() ([]model.BriefingCard, error)
	GetInsight(id string) (*model.InsightBlock, error)
	CreateInsight(ctx context.Context, in store.CreateInsightInput) (*model.InsightBlock, error)
	InjectEvidence(ctx context.Context, in evidence.Input) (*store.InjectionResult, error)
}

var _ Querier = (*store.Store)(nil)

type Server struct {
	db  Querier
	mcp *sdk.Server
}

func NewServer(db Querier, version string) *Server {
	s := &Server{
		db: db,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "insightgraph",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
