package model

import "slices"

type Importance string

const (
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

const (
	DomainWorkforce   = "workforce"
	DomainSupplyChain = "supply_chain"
	DomainProduct     = "product"
	DomainStrategy    = "strategy"
	DomainOperations  = "operations"
)

const LinkTypeSharedEntityOrTag = "shared_entity_or_tag"

type Summary struct {
	SummaryID  string     `json:"summary_id"`
	UpdateID   string     `json:"update_id"`
	Source     string     `json:"source"`
	Title      string     `json:"title"`
	Summary    string     `json:"summary"`
	Entities   []string   `json:"entities"`
	Tags       []string   `json:"tags"`
	Importance Importance `json:"importance"`
	Confidence float64    `json:"confidence"`
	CreatedAt  string     `json:"created_at"`
}

// Clone returns a copy that shares no slices with s.
func (s Summary) Clone() Summary {
	s.Entities = slices.Clone(s.Entities)
	s.Tags = slices.Clone(s.Tags)
	return s
}

type SourceRef struct {
	RawID      string `json:"raw_id"`
	PayloadRef string `json:"payload_ref"`
}

type InformationNode struct {
	NodeID     string     `json:"node_id"`
	SummaryID  string     `json:"summary_id"`
	EventID    string     `json:"event_id"`
	EventType  string     `json:"event_type"`
	EventText  string     `json:"event_text"`
	Domain     string     `json:"domain"`
	Entities   []string   `json:"entities"`
	Tags       []string   `json:"tags"`
	Importance Importance `json:"importance"`
	Confidence float64    `json:"confidence"`
	Timestamp  string     `json:"timestamp"`
	SourceRefs SourceRef  `json:"source_refs"`
}

func (n InformationNode) Clone() InformationNode {
	n.Entities = slices.Clone(n.Entities)
	n.Tags = slices.Clone(n.Tags)
	return n
}

type NodeLink struct {
	LinkID     string   `json:"link_id"`
	FromNodeID string   `json:"from_node_id"`
	ToNodeID   string   `json:"to_node_id"`
	LinkType   string   `json:"link_type"`
	SharedKeys []string `json:"shared_keys"`
	Strength   float64  `json:"strength"`
	CreatedAt  string   `json:"created_at"`
}

func (l NodeLink) Clone() NodeLink {
	l.SharedKeys = slices.Clone(l.SharedKeys)
	return l
}

type BriefingCard struct {
	CardID            string     `json:"card_id"`
	Domain            string     `json:"domain"`
	Title             string     `json:"title"`
	Summary           string     `json:"summary"`
	Importance        Importance `json:"importance"`
	Confidence        float64    `json:"confidence"`
	Timestamp         string     `json:"timestamp"`
	InvestigateNodeID string     `json:"investigate_node_id"`
}

type Injection struct {
	InjectionID     string `json:"injection_id"`
	Timestamp       string `json:"timestamp"`
	SummaryID       string `json:"summary_id"`
	NodeID          string `json:"node_id"`
	TargetInsightID string `json:"target_insight_id"`
}
