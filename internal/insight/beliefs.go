package insight

import (
	"fmt"
	"slices"
	"strings"

	"insightgraph/internal/model"
	"insightgraph/internal/normalize"
)

var rankBase = []float64{0.52, 0.30, 0.18}

// BuildBeliefs ranks the context domains by node count (first seen wins
// ties) and turns the top three into beliefs whose probabilities sum to
// roughly one.
func BuildBeliefs(nodes []model.InformationNode) []model.Belief {
	type domainCount struct {
		domain string
		count  int
	}
	var counts []domainCount
	index := make(map[string]int)
	for _, node := range nodes {
		if i, ok := index[node.Domain]; ok {
			counts[i].count++
			continue
		}
		index[node.Domain] = len(counts)
		counts = append(counts, domainCount{domain: node.Domain, count: 1})
	}
	slices.SortStableFunc(counts, func(a, b domainCount) int { return b.count - a.count })
	if len(counts) > maxBeliefs {
		counts = counts[:maxBeliefs]
	}

	beliefs := make([]model.Belief, 0, len(counts))
	raw := make([]float64, 0, len(counts))
	for rank, entry := range counts {
		var support []string
		confidenceSum := 0.0
		for _, node := range nodes {
			if node.Domain != entry.domain {
				continue
			}
			support = append(support, node.NodeID)
			confidenceSum += node.Confidence
			if len(support) == maxSupportingNodes {
				break
			}
		}
		avg := 0.0
		if len(support) > 0 {
			avg = confidenceSum / float64(len(support))
		}
		raw = append(raw, normalize.Round2(normalize.Clamp(rankBase[rank]+avg*0.15, 0.1, 0.85)))
		beliefs = append(beliefs, model.Belief{
			BeliefID:        fmt.Sprintf("b%d", rank+1),
			Domain:          entry.domain,
			Statement:       fmt.Sprintf("%s signals are a primary driver of current state shifts.", strings.ReplaceAll(entry.domain, "_", " ")),
			EvidenceNodeIDs: support,
		})
	}

	for i, p := range normalizeProbabilities(raw) {
		beliefs[i].Probability = p
	}
	return beliefs
}
