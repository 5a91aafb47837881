package store

import (
	"slices"

	"insightgraph/internal/model"
	"insightgraph/internal/normalize"
)

func (s *Store) GetOverview() (*Overview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return nil, ErrNotReady
	}

	out := &Overview{
		Meta: s.meta,
		Counts: Counts{
			Summaries:        len(s.summaries),
			InformationNodes: len(s.nodes),
			NodeLinks:        len(s.links),
			InsightBlocks:    len(s.insights),
			BriefingCards:    len(s.cards),
			Injections:       len(s.injections),
		},
	}
	if len(s.summaries) > 0 {
		latest := s.summaries[0].CreatedAt
		out.LatestUpdateAt = &latest
	}
	return out, nil
}

func (s *Store) GetSummaries(q SummaryQuery) ([]model.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return nil, ErrNotReady
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultSummaryLimit
	}
	out := make([]model.Summary, 0, min(limit, len(s.summaries)))
	for _, summary := range s.summaries {
		if len(out) == limit {
			break
		}
		if q.Source != "" && !matches(summary.Source, q.Source) {
			continue
		}
		if q.Importance != "" && !matches(string(summary.Importance), q.Importance) {
			continue
		}
		out = append(out, summary.Clone())
	}
	return out, nil
}

func (s *Store) GetNodes(q NodeQuery) ([]model.InformationNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return nil, ErrNotReady
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultNodeLimit
	}
	out := make([]model.InformationNode, 0, min(limit, len(s.nodes)))
	for _, node := range s.nodes {
		if len(out) == limit {
			break
		}
		if q.Tag != "" && !containsMatch(node.Tags, q.Tag) {
			continue
		}
		if q.Entity != "" && !containsMatch(node.Entities, q.Entity) {
			continue
		}
		out = append(out, node.Clone())
	}
	return out, nil
}

// GetLinks returns every link, or only those touching nodeID when set.
func (s *Store) GetLinks(nodeID string) ([]model.NodeLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return nil, ErrNotReady
	}

	if nodeID == "" {
		return cloneAll(s.links, model.NodeLink.Clone), nil
	}
	out := make([]model.NodeLink, 0)
	for _, link := range s.links {
		if link.FromNodeID == nodeID || link.ToNodeID == nodeID {
			out = append(out, link.Clone())
		}
	}
	return out, nil
}

func (s *Store) GetBriefing() ([]model.BriefingCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return nil, ErrNotReady
	}
	return slices.Clone(s.cards), nil
}

// GetInsight returns nil without an error when id is unknown.
func (s *Store) GetInsight(id string) (*model.InsightBlock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return nil, ErrNotReady
	}
	for i := range s.insights {
		if s.insights[i].InsightID == id {
			return s.insights[i].Clone(), nil
		}
	}
	return nil, nil
}

func (s *Store) GetAllInsights() ([]model.InsightBlock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return nil, ErrNotReady
	}
	out := make([]model.InsightBlock, 0, len(s.insights))
	for i := range s.insights {
		out = append(out, *s.insights[i].Clone())
	}
	return out, nil
}

func (s *Store) GetInjections() ([]model.Injection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return nil, ErrNotReady
	}
	return slices.Clone(s.injections), nil
}

// Snapshot returns a deep copy of every collection.
func (s *Store) Snapshot() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return nil, ErrNotReady
	}
	insights := make([]model.InsightBlock, 0, len(s.insights))
	for i := range s.insights {
		insights = append(insights, *s.insights[i].Clone())
	}
	return &Snapshot{
		Meta:             s.meta,
		Summaries:        cloneAll(s.summaries, model.Summary.Clone),
		InformationNodes: cloneAll(s.nodes, model.InformationNode.Clone),
		NodeLinks:        cloneAll(s.links, model.NodeLink.Clone),
		InsightBlocks:    insights,
		BriefingCards:    slices.Clone(s.cards),
		Injections:       slices.Clone(s.injections),
	}, nil
}

// matches compares exactly, then by slug, so "North Hub" finds "north_hub".
func matches(value, want string) bool {
	return value == want || normalize.Slug(value) == normalize.Slug(want)
}

func containsMatch(values []string, want string) bool {
	slug := normalize.Slug(want)
	for _, v := range values {
		if v == want || v == slug {
			return true
		}
	}
	return false
}

func cloneAll[T any](items []T, clone func(T) T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = clone(item)
	}
	return out
}
