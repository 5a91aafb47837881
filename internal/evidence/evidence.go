// Package evidence turns analyst-supplied evidence into a summary, an
// information node and links to the nodes recorded just before it.
package evidence

import (
	"strings"

	"insightgraph/internal/insight"
	"insightgraph/internal/model"
	"insightgraph/internal/normalize"
)

const (
	maxTags = 8

	// LinkWindow is the number of prior nodes considered when linking a new
	// evidence node.
	LinkWindow = 29

	defaultSource = "manual"
)

// Input is the evidence as submitted by a caller.
type Input struct {
	Title           string `json:"title"`
	Source          string `json:"source"`
	ContentText     string `json:"content_text"`
	TargetInsightID string `json:"target_insight_id"`
}

// IDs carries the identifiers minted by the store for one injection.
type IDs struct {
	InjectionID string
	SummaryID   string
	NodeID      string
}

// DeriveTags lower-cases content, splits it on non-alphanumerics and keeps
// the first eight distinct tokens longer than three characters.
func DeriveTags(content string) []string {
	var tags []string
	for _, token := range insight.Tokenize(content) {
		if len(token) > 3 {
			tags = append(tags, token)
		}
	}
	tags = normalize.Dedupe(tags)
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	return tags
}

// Confidence grows with the number of derived tags.
func Confidence(tagCount int) float64 {
	return normalize.Round2(normalize.Clamp(0.55+float64(tagCount)*0.04, 0.45, 0.93))
}

// Synthesize builds the summary and node recorded for an injection.
func Synthesize(in Input, ids IDs, now string) (model.Summary, model.InformationNode) {
	tags := DeriveTags(in.ContentText)
	confidence := Confidence(len(tags))

	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = defaultSource
	}
	text := strings.TrimSpace(in.ContentText)
	if text == "" {
		text = in.Title
	}

	summary := model.Summary{
		SummaryID:  ids.SummaryID,
		UpdateID:   ids.InjectionID,
		Source:     source,
		Title:      in.Title,
		Summary:    text,
		Entities:   []string{},
		Tags:       tags,
		Importance: model.ImportanceHigh,
		Confidence: confidence,
		CreatedAt:  now,
	}
	node := model.InformationNode{
		NodeID:     ids.NodeID,
		SummaryID:  ids.SummaryID,
		EventID:    ids.InjectionID,
		EventType:  model.EventEvidenceInjected,
		EventText:  text,
		Domain:     model.DomainOperations,
		Entities:   []string{},
		Tags:       append([]string{}, tags...),
		Importance: model.ImportanceHigh,
		Confidence: confidence,
		Timestamp:  now,
		SourceRefs: model.SourceRef{RawID: ids.InjectionID, PayloadRef: "evidence:" + normalize.Slug(source)},
	}
	return summary, node
}

// WindowLinks links nodes[0], the freshly prepended evidence node, to each
// of the following LinkWindow nodes that shares at least one tag. Link IDs
// are numbered from firstSeq.
func WindowLinks(nodes []model.InformationNode, firstSeq int, createdAt string) []model.NodeLink {
	links := make([]model.NodeLink, 0)
	if len(nodes) == 0 {
		return links
	}
	head := nodes[0]
	end := min(len(nodes), LinkWindow+1)
	for j := 1; j < end; j++ {
		shared := normalize.Intersect(head.Tags, nodes[j].Tags)
		if len(shared) == 0 {
			continue
		}
		links = append(links, model.NodeLink{
			LinkID:     model.FormatID(model.PrefixLink, firstSeq+len(links)),
			FromNodeID: head.NodeID,
			ToNodeID:   nodes[j].NodeID,
			LinkType:   model.LinkTypeSharedEntityOrTag,
			SharedKeys: shared,
			Strength:   normalize.Round2(normalize.Clamp(float64(len(shared))/3, 0.22, 0.88)),
			CreatedAt:  createdAt,
		})
	}
	return links
}
