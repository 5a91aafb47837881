package transform

import (
	"slices"

	"insightgraph/internal/model"
	"insightgraph/internal/normalize"
)

// BuildNodeLinks links every pair of nodes (i < j) that share a tag or
// entity slug. Candidate pairs come from an inverted index over the keys, so
// only nodes sharing at least one posting list are compared. Links are
// emitted in (i, j) order, the same order an all-pairs scan would produce.
func BuildNodeLinks(nodes []model.InformationNode, createdAt string) []model.NodeLink {
	keySets := make([][]string, len(nodes))
	postings := make(map[string][]int)
	for i, node := range nodes {
		keys := nodeKeys(node)
		keySets[i] = keys
		for _, key := range keys {
			postings[key] = append(postings[key], i)
		}
	}

	links := make([]model.NodeLink, 0)
	for i := range nodes {
		seen := make(map[int]struct{})
		var candidates []int
		for _, key := range keySets[i] {
			for _, j := range postings[key] {
				if j <= i {
					continue
				}
				if _, ok := seen[j]; ok {
					continue
				}
				seen[j] = struct{}{}
				candidates = append(candidates, j)
			}
		}
		slices.Sort(candidates)

		for _, j := range candidates {
			shared := normalize.Intersect(keySets[i], keySets[j])
			if len(shared) == 0 {
				continue
			}
			denominator := max(1, min(len(keySets[i]), len(keySets[j])))
			strength := normalize.Round2(normalize.Clamp(float64(len(shared))/float64(denominator), 0.1, 0.95))
			links = append(links, model.NodeLink{
				LinkID:     model.FormatID(model.PrefixLink, len(links)+1),
				FromNodeID: nodes[i].NodeID,
				ToNodeID:   nodes[j].NodeID,
				LinkType:   model.LinkTypeSharedEntityOrTag,
				SharedKeys: shared,
				Strength:   strength,
				CreatedAt:  createdAt,
			})
		}
	}
	return links
}

func nodeKeys(node model.InformationNode) []string {
	keys := make([]string, 0, len(node.Tags)+len(node.Entities))
	keys = append(keys, node.Tags...)
	keys = append(keys, node.Entities...)
	return normalize.Dedupe(keys)
}

// MakeBriefingCards emits one card per domain, taken from the first node of
// that domain in nodes (callers pass nodes newest first).
func MakeBriefingCards(nodes []model.InformationNode, summaries []model.Summary) []model.BriefingCard {
	titles := make(map[string]string, len(summaries))
	for _, summary := range summaries {
		titles[summary.SummaryID] = summary.Title
	}

	seen := make(map[string]struct{})
	cards := make([]model.BriefingCard, 0)
	for _, node := range nodes {
		if _, ok := seen[node.Domain]; ok {
			continue
		}
		seen[node.Domain] = struct{}{}
		title := titles[node.SummaryID]
		if title == "" {
			title = HumanizeEventType(node.EventType)
		}
		cards = append(cards, model.BriefingCard{
			CardID:            model.FormatID(model.PrefixCard, len(cards)+1),
			Domain:            node.Domain,
			Title:             title,
			Summary:           node.EventText,
			Importance:        node.Importance,
			Confidence:        node.Confidence,
			Timestamp:         node.Timestamp,
			InvestigateNodeID: node.NodeID,
		})
	}
	return cards
}
