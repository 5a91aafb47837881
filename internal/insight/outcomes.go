package insight

import (
	"strings"

	"insightgraph/internal/model"
	"insightgraph/internal/normalize"
)

// BuildOutcomes returns the three fixed outcome slots. Labels depend on the
// context tags; a prompt mentioning cost shifts weight from o1 to o2.
func BuildOutcomes(prompt string, nodes []model.InformationNode) []model.Outcome {
	var tags []string
	for _, node := range nodes {
		tags = append(tags, node.Tags...)
	}

	o1 := "Operating conditions stay broadly stable over the next two weeks."
	if anyTagContains(tags, "operations", "inventory") {
		o1 = "Inventory pressure tightens operations within two weeks."
	}
	o2 := "Demand signals hold flat through the coming week."
	if anyTagContains(tags, "customer_behavior", "purchase") {
		o2 = "Customers shift purchases toward lower-cost alternatives within a week."
	}
	o3 := "A slower behavioral shift emerges as new evidence accumulates."
	if anyTagContains(tags, "survey") {
		o3 = "Survey-reported habits converge on a new baseline within three weeks."
	}

	p1, p2, p3 := 0.44, 0.36, 0.20
	if strings.Contains(strings.ToLower(prompt), "cost") {
		p2 += 0.08
		p1 -= 0.05
	}
	probs := normalizeProbabilities([]float64{normalize.Round2(p1), normalize.Round2(p2), normalize.Round2(p3)})

	return []model.Outcome{
		{ID: "o1", Label: o1, Probability: probs[0], HorizonDays: 14},
		{ID: "o2", Label: o2, Probability: probs[1], HorizonDays: 7},
		{ID: "o3", Label: o3, Probability: probs[2], HorizonDays: 21},
	}
}

func anyTagContains(tags []string, needles ...string) bool {
	for _, tag := range tags {
		for _, needle := range needles {
			if strings.Contains(tag, needle) {
				return true
			}
		}
	}
	return false
}

// ApplyEvidence re-weights a copy of block in light of new evidence.
// Evidence describing a rollback, restoration or improvement boosts o2 by
// 0.15; anything else boosts o1 by 0.12. Outcomes are renormalized, then
// clamped to [0.05, 0.9] and rounded, so the sum can drift from 1.00.
func ApplyEvidence(block *model.InsightBlock, title, summary, now string) *model.InsightBlock {
	out := block.Clone()
	if out == nil {
		return nil
	}

	text := strings.ToLower(title + " " + summary)
	target, boost := "o1", 0.12
	if strings.Contains(text, "rollback") || strings.Contains(text, "restor") || strings.Contains(text, "improv") {
		target, boost = "o2", 0.15
	}

	if len(out.Outcomes) > 0 {
		idx := 0
		for i, outcome := range out.Outcomes {
			if outcome.ID == target {
				idx = i
				break
			}
		}
		out.Outcomes[idx].Probability += boost

		total := 0.0
		for _, outcome := range out.Outcomes {
			total += outcome.Probability
		}
		for i := range out.Outcomes {
			share := 0.0
			if total > 0 {
				share = out.Outcomes[i].Probability / total
			}
			out.Outcomes[i].Probability = normalize.Round2(normalize.Clamp(share, 0.05, 0.9))
		}
	}

	out.RealityTree = BuildRealityTree(out.Outcomes)
	out.ModelMeta.LastEvidenceUpdateAt = now
	return out
}
