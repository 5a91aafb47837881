// Package insight turns a scenario prompt and the information graph into a
// scored insight block: beliefs, outcomes and a two-level reality tree.
package insight

import (
	"slices"
	"strings"

	"insightgraph/internal/model"
	"insightgraph/internal/normalize"
)

const (
	maxContextNodes     = 6
	fallbackContextSize = 4
	maxBeliefs          = 3
	maxSupportingNodes  = 3
	maxRationaleTags    = 12
)

// Council names the placeholder reviewers recorded on every insight.
var Council = []string{"scenario-analyst", "risk-skeptic", "ops-realist", "consensus-synthesizer"}

type Request struct {
	ScenarioPrompt  string
	SelectedNodeIDs []string
	AllNodes        []model.InformationNode
	InsightID       string
	GeneratedAt     string
}

// Generate builds an insight block for the request.
func Generate(req Request) model.InsightBlock {
	contextNodes := ChooseRelevantNodes(req.ScenarioPrompt, req.SelectedNodeIDs, req.AllNodes)

	contextIDs := make([]string, 0, len(contextNodes))
	var tags []string
	for _, node := range contextNodes {
		contextIDs = append(contextIDs, node.NodeID)
		tags = append(tags, node.Tags...)
	}
	rationale := normalize.Dedupe(tags)
	if len(rationale) > maxRationaleTags {
		rationale = rationale[:maxRationaleTags]
	}

	outcomes := BuildOutcomes(req.ScenarioPrompt, contextNodes)
	return model.InsightBlock{
		InsightID:      req.InsightID,
		ScenarioPrompt: req.ScenarioPrompt,
		ContextNodeIDs: contextIDs,
		Beliefs:        BuildBeliefs(contextNodes),
		Outcomes:       outcomes,
		RealityTree:    BuildRealityTree(outcomes),
		ModelMeta: model.ModelMeta{
			Council:       append([]string{}, Council...),
			GeneratedAt:   req.GeneratedAt,
			RationaleTags: rationale,
			ScenarioKey:   normalize.Slug(req.ScenarioPrompt),
		},
	}
}

// ChooseRelevantNodes picks at most six context nodes. An explicit selection
// wins over the prompt; otherwise nodes are ranked by how many prompt tokens
// occur in their text, tags and entities. With no match the four newest
// nodes are used.
func ChooseRelevantNodes(prompt string, selected []string, all []model.InformationNode) []model.InformationNode {
	if len(selected) > 0 {
		wanted := make(map[string]struct{}, len(selected))
		for _, id := range selected {
			wanted[id] = struct{}{}
		}
		var picked []model.InformationNode
		for _, node := range all {
			if _, ok := wanted[node.NodeID]; ok {
				picked = append(picked, node)
			}
		}
		if len(picked) > 0 {
			picked = newestFirst(picked)
			return picked[:min(len(picked), maxContextNodes)]
		}
	}

	tokens := normalize.Dedupe(Tokenize(prompt))
	type scored struct {
		node  model.InformationNode
		score int
	}
	ranked := make([]scored, 0, len(all))
	for _, node := range all {
		ranked = append(ranked, scored{node: node, score: scoreNode(node, tokens)})
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		if a.score != b.score {
			return b.score - a.score
		}
		return normalize.ParseTime(b.node.Timestamp).Compare(normalize.ParseTime(a.node.Timestamp))
	})

	var picked []model.InformationNode
	for _, item := range ranked {
		if item.score <= 0 || len(picked) == maxContextNodes {
			break
		}
		picked = append(picked, item.node)
	}
	if len(picked) > 0 {
		return picked
	}

	recent := newestFirst(all)
	return recent[:min(len(recent), fallbackContextSize)]
}

// Tokenize lower-cases text and splits it on runs of non-alphanumerics.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})
}

func scoreNode(node model.InformationNode, tokens []string) int {
	if len(tokens) == 0 {
		return 0
	}
	parts := []string{node.EventType, node.EventText}
	parts = append(parts, node.Tags...)
	parts = append(parts, node.Entities...)
	parts = append(parts, node.Domain)
	haystack := strings.ToLower(strings.Join(parts, " "))

	score := 0
	for _, token := range tokens {
		if strings.Contains(haystack, token) {
			score++
		}
	}
	return score
}

func newestFirst(nodes []model.InformationNode) []model.InformationNode {
	return normalize.SortByTimeDesc(nodes, func(n model.InformationNode) string { return n.Timestamp })
}

// BuildRealityTree mirrors the outcomes as predicted branches under a
// single root.
func BuildRealityTree(outcomes []model.Outcome) model.RealityTree {
	branches := make([]model.TreeBranch, 0, len(outcomes))
	for _, outcome := range outcomes {
		branches = append(branches, model.TreeBranch{
			ID:          outcome.ID,
			Label:       outcome.Label,
			Probability: outcome.Probability,
			HorizonDays: outcome.HorizonDays,
			Status:      "predicted",
		})
	}
	return model.RealityTree{
		Root:     model.TreeRoot{ID: "root", Label: "Current state", Probability: 1},
		Branches: branches,
	}
}

// normalizeProbabilities divides by the total and rounds each share to two
// decimals. The rounded shares may drift from 1.00 by a cent or two.
func normalizeProbabilities(values []float64) []float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	out := make([]float64, len(values))
	if total == 0 {
		return out
	}
	for i, v := range values {
		out[i] = normalize.Round2(v / total)
	}
	return out
}
