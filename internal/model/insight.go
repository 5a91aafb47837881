package model

type Belief struct {
	BeliefID        string   `json:"belief_id"`
	Domain          string   `json:"domain"`
	Statement       string   `json:"statement"`
	Probability     float64  `json:"probability"`
	EvidenceNodeIDs []string `json:"evidence_node_ids"`
}

type Outcome struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
	HorizonDays int     `json:"horizon_days"`
}

type TreeRoot struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

type TreeBranch struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
	HorizonDays int     `json:"horizon_days"`
	Status      string  `json:"status"`
}

type RealityTree struct {
	Root     TreeRoot     `json:"root"`
	Branches []TreeBranch `json:"branches"`
}

type ModelMeta struct {
	Council              []string `json:"council"`
	GeneratedAt          string   `json:"generated_at"`
	RationaleTags        []string `json:"rationale_tags"`
	ScenarioKey          string   `json:"scenario_key"`
	LastEvidenceUpdateAt string   `json:"last_evidence_update_at,omitempty"`
}

type InsightBlock struct {
	InsightID      string      `json:"insight_id"`
	ScenarioPrompt string      `json:"scenario_prompt"`
	ContextNodeIDs []string    `json:"context_node_ids"`
	Beliefs        []Belief    `json:"beliefs"`
	Outcomes       []Outcome   `json:"outcomes"`
	RealityTree    RealityTree `json:"reality_tree"`
	ModelMeta      ModelMeta   `json:"model_meta"`
}

// Clone returns a deep copy so callers never share slices with the store.
func (b *InsightBlock) Clone() *InsightBlock {
	if b == nil {
		return nil
	}
	out := *b
	out.ContextNodeIDs = append([]string{}, b.ContextNodeIDs...)
	out.Beliefs = make([]Belief, len(b.Beliefs))
	for i, belief := range b.Beliefs {
		belief.EvidenceNodeIDs = append([]string{}, belief.EvidenceNodeIDs...)
		out.Beliefs[i] = belief
	}
	out.Outcomes = append([]Outcome{}, b.Outcomes...)
	out.RealityTree.Branches = append([]TreeBranch{}, b.RealityTree.Branches...)
	out.ModelMeta.Council = append([]string{}, b.ModelMeta.Council...)
	out.ModelMeta.RationaleTags = append([]string{}, b.ModelMeta.RationaleTags...)
	return &out
}
