// Package transform derives summaries, information nodes, links and
// briefing cards from a loaded dataset.
package transform

import (
	"strings"
	"time"

	"insightgraph/internal/model"
	"insightgraph/internal/normalize"
)

// Result is the derived state handed to the store.
type Result struct {
	Meta             model.Meta
	Summaries        []model.Summary
	InformationNodes []model.InformationNode
	NodeLinks        []model.NodeLink
	InsightBlocks    []model.InsightBlock
	BriefingCards    []model.BriefingCard
}

var importanceWeights = map[string]float64{
	model.EventPurchaseObserved:          0.62,
	model.EventInventorySnapshotObserved: 0.78,
	model.EventBaselineBehaviorObserved:  0.48,
}

const (
	defaultImportanceWeight = 0.5
	defaultConfidenceWeight = 0.55
)

// Dataset runs the full transform. now stamps the fallback meta and the
// generated links.
func Dataset(ds *model.Dataset, now time.Time) *Result {
	entities := make(map[string]model.Entity, len(ds.Entities))
	for _, entity := range ds.Entities {
		entities[entity.EntityID] = entity
	}
	raws := make(map[string]model.RawRecord, len(ds.RawRecords))
	for _, record := range ds.RawRecords {
		raws[record.RawID] = record
	}

	summaries := make([]model.Summary, 0, len(ds.Events))
	nodes := make([]model.InformationNode, 0, len(ds.Events))
	for _, event := range ds.Events {
		entity, hasEntity := entities[event.EntityID]
		rawID := strings.TrimPrefix(event.EvidenceRefs, "raw:")
		raw, hasRaw := raws[rawID]

		var entityPtr *model.Entity
		if hasEntity {
			entityPtr = &entity
		}

		text := SummarizeEvent(event, entityPtr)
		importance := ScoreImportance(event.EventType)
		tags := ExtractTags(event)
		entitySlugs := normalize.Dedupe([]string{normalize.Slug(event.EntityID), normalize.Slug(entity.Name)})
		confidence := eventConfidence(event.EventType)

		source := "unknown"
		refs := model.SourceRef{RawID: rawID}
		if hasRaw {
			source = raw.Source
			refs = model.SourceRef{RawID: raw.RawID, PayloadRef: raw.PayloadRef}
		}

		summaryID := model.FormatID(model.PrefixSummary, len(summaries)+1)
		summaries = append(summaries, model.Summary{
			SummaryID:  summaryID,
			UpdateID:   event.EventID,
			Source:     source,
			Title:      eventTitle(event, entityPtr),
			Summary:    text,
			Entities:   entitySlugs,
			Tags:       tags,
			Importance: importance,
			Confidence: confidence,
			CreatedAt:  event.Time,
		})
		nodes = append(nodes, model.InformationNode{
			NodeID:     model.FormatID(model.PrefixNode, len(nodes)+1),
			SummaryID:  summaryID,
			EventID:    event.EventID,
			EventType:  event.EventType,
			EventText:  text,
			Domain:     ClassifyDomain(entity.Type, event.EventType),
			Entities:   append([]string{}, entitySlugs...),
			Tags:       append([]string{}, tags...),
			Importance: importance,
			Confidence: confidence,
			Timestamp:  event.Time,
			SourceRefs: refs,
		})
	}

	createdAt := normalize.FormatTime(now)
	links := BuildNodeLinks(nodes, createdAt)

	sortedSummaries := normalize.SortByTimeDesc(summaries, func(s model.Summary) string { return s.CreatedAt })
	sortedNodes := normalize.SortByTimeDesc(nodes, func(n model.InformationNode) string { return n.Timestamp })

	meta := model.Meta{Tenant: "unknown", AsOf: createdAt}
	if ds.Meta != nil {
		meta = *ds.Meta
	}

	return &Result{
		Meta:             meta,
		Summaries:        sortedSummaries,
		InformationNodes: sortedNodes,
		NodeLinks:        links,
		InsightBlocks:    []model.InsightBlock{},
		BriefingCards:    MakeBriefingCards(sortedNodes, sortedSummaries),
	}
}

// ScoreImportance buckets the event type weight: below 0.55 is low, below
// 0.75 medium, otherwise high.
func ScoreImportance(eventType string) model.Importance {
	weight, ok := importanceWeights[eventType]
	if !ok {
		weight = defaultImportanceWeight
	}
	switch {
	case weight >= 0.75:
		return model.ImportanceHigh
	case weight >= 0.55:
		return model.ImportanceMedium
	default:
		return model.ImportanceLow
	}
}

func eventConfidence(eventType string) float64 {
	weight, ok := importanceWeights[eventType]
	if !ok {
		weight = defaultConfidenceWeight
	}
	return normalize.Round2(normalize.Clamp(weight+0.15, 0.35, 0.97))
}

// ClassifyDomain maps an entity type and event type onto a briefing domain.
func ClassifyDomain(entityType, eventType string) string {
	switch entityType {
	case "person":
		return model.DomainWorkforce
	case "item":
		if strings.Contains(eventType, "INVENTORY") {
			return model.DomainSupplyChain
		}
		return model.DomainProduct
	case "company":
		return model.DomainStrategy
	default:
		return model.DomainOperations
	}
}

// ExtractTags slugs the event type, payload keys and entity id, then adds
// the domain tags implied by the event type.
func ExtractTags(event model.Event) []string {
	payload := event.Payload
	if payload == nil {
		payload = model.DecodePayload(event.EventType, event.RawPayload)
	}
	sku, warehouse, category := model.PayloadKeys(payload)

	tags := []string{
		normalize.Slug(event.EventType),
		normalize.Slug(sku),
		normalize.Slug(warehouse),
		normalize.Slug(event.EntityID),
		normalize.Slug(category),
	}
	if strings.Contains(event.EventType, "INVENTORY") {
		tags = append(tags, "operations")
	}
	if strings.Contains(event.EventType, "PURCHASE") {
		tags = append(tags, "customer_behavior")
	}
	if strings.Contains(event.EventType, "BASELINE") {
		tags = append(tags, "survey")
	}
	return normalize.Dedupe(tags)
}
