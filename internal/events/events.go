// Package events publishes domain events about insights and evidence.
package events

import (
	"context"

	"insightgraph/internal/model"
)

const (
	TopicInsightCreated   = "insightgraph.insight.created"
	TopicInsightUpdated   = "insightgraph.insight.updated"
	TopicEvidenceInjected = "insightgraph.evidence.injected"
)

type InsightCreated struct {
	Insight *model.InsightBlock `json:"insight"`
}

type InsightUpdated struct {
	Insight     *model.InsightBlock `json:"insight"`
	InjectionID string              `json:"injection_id"`
}

type EvidenceInjected struct {
	Injection model.Injection       `json:"injection"`
	Node      model.InformationNode `json:"node"`
	LinkCount int                   `json:"link_count"`
}

// Publisher emits events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
