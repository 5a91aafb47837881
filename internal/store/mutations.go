package store

import (
	"context"

	"insightgraph/internal/events"
	"insightgraph/internal/evidence"
	"insightgraph/internal/insight"
	"insightgraph/internal/model"
	"insightgraph/internal/normalize"
)

// CreateInsight generates an insight over the current nodes and prepends it.
func (s *Store) CreateInsight(ctx context.Context, in CreateInsightInput) (*model.InsightBlock, error) {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return nil, ErrNotReady
	}
	now := s.now()
	s.seq.insight++
	block := insight.Generate(insight.Request{
		ScenarioPrompt:  in.ScenarioPrompt,
		SelectedNodeIDs: in.SelectedNodeIDs,
		AllNodes:        s.nodes,
		InsightID:       model.FormatID(model.PrefixInsight, s.seq.insight),
		GeneratedAt:     normalize.FormatTime(now),
	})
	s.insights = prepend(s.insights, block)
	s.mu.Unlock()

	s.log.Info("insight created",
		"insight_id", block.InsightID,
		"scenario_key", block.ModelMeta.ScenarioKey,
		"context_nodes", len(block.ContextNodeIDs),
	)

	created := block.Clone()
	if s.archive != nil {
		if err := s.archive.RecordInsight(ctx, *created, now); err != nil {
			s.log.Warn("archiving insight failed", "insight_id", block.InsightID, "error", err)
		}
	}
	s.publish(ctx, events.TopicInsightCreated, events.InsightCreated{Insight: created})
	return block.Clone(), nil
}

// InjectEvidence records evidence as a new summary and node, links it to
// the nodes just before it and, when the target insight exists, re-weights
// that insight's outcomes.
func (s *Store) InjectEvidence(ctx context.Context, in evidence.Input) (*InjectionResult, error) {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return nil, ErrNotReady
	}
	now := s.now()
	stamp := normalize.FormatTime(now)

	s.seq.injection++
	s.seq.summary++
	s.seq.node++
	ids := evidence.IDs{
		InjectionID: model.FormatID(model.PrefixInjection, s.seq.injection),
		SummaryID:   model.FormatID(model.PrefixSummary, s.seq.summary),
		NodeID:      model.FormatID(model.PrefixNode, s.seq.node),
	}
	summary, node := evidence.Synthesize(in, ids, stamp)
	s.summaries = prepend(s.summaries, summary)
	s.nodes = prepend(s.nodes, node)

	links := evidence.WindowLinks(s.nodes, s.seq.link+1, stamp)
	s.seq.link += len(links)
	s.links = append(s.links, links...)

	var updated *model.InsightBlock
	if in.TargetInsightID != "" {
		for i := range s.insights {
			if s.insights[i].InsightID != in.TargetInsightID {
				continue
			}
			updated = insight.ApplyEvidence(&s.insights[i], summary.Title, summary.Summary, stamp)
			s.insights[i] = *updated
			break
		}
	}

	injection := model.Injection{
		InjectionID:     ids.InjectionID,
		Timestamp:       stamp,
		SummaryID:       ids.SummaryID,
		NodeID:          ids.NodeID,
		TargetInsightID: in.TargetInsightID,
	}
	s.injections = prepend(s.injections, injection)
	s.mu.Unlock()

	s.log.Info("evidence injected",
		"injection_id", injection.InjectionID,
		"node_id", node.NodeID,
		"tags", len(node.Tags),
		"links", len(links),
		"target_insight_id", in.TargetInsightID,
		"insight_updated", updated != nil,
	)

	if s.archive != nil {
		if err := s.archive.RecordInjection(ctx, injection); err != nil {
			s.log.Warn("archiving injection failed", "injection_id", injection.InjectionID, "error", err)
		}
		if updated != nil {
			if err := s.archive.RecordInsight(ctx, *updated.Clone(), now); err != nil {
				s.log.Warn("archiving updated insight failed", "insight_id", updated.InsightID, "error", err)
			}
		}
	}
	s.publish(ctx, events.TopicEvidenceInjected, events.EvidenceInjected{Injection: injection, Node: node.Clone(), LinkCount: len(links)})
	if updated != nil {
		s.publish(ctx, events.TopicInsightUpdated, events.InsightUpdated{Insight: updated.Clone(), InjectionID: injection.InjectionID})
	}

	return &InjectionResult{
		Injection:      injection,
		Summary:        summary.Clone(),
		Node:           node.Clone(),
		UpdatedInsight: updated.Clone(),
	}, nil
}

// ListInsightHistory reads archived insight versions, newest first.
func (s *Store) ListInsightHistory(ctx context.Context, limit int) ([]InsightRecord, error) {
	if s.archive == nil {
		return []InsightRecord{}, nil
	}
	return s.archive.ListInsightRecords(ctx, limit)
}

func (s *Store) publish(ctx context.Context, topic string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.log.Warn("publishing event failed", "topic", topic, "error", err)
	}
}
