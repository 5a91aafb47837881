package transform

import (
	"fmt"
	"strings"

	"insightgraph/internal/model"
)

// SummarizeEvent renders the one-sentence description of an event.
func SummarizeEvent(event model.Event, entity *model.Entity) string {
	name := entityName(event, entity)
	payload := event.Payload
	if payload == nil {
		payload = model.DecodePayload(event.EventType, event.RawPayload)
	}

	switch p := payload.(type) {
	case model.PurchaseObserved:
		return fmt.Sprintf("%s purchased %sx %s.", name, model.FormatNumber(p.Qty), orUnknown(p.SKU, "an unknown item"))
	case model.InventorySnapshotObserved:
		return fmt.Sprintf("%s at %s has %s units on hand.", name, orUnknown(p.Warehouse, "an unknown warehouse"), model.FormatNumber(p.StockOnHand))
	case model.BaselineBehaviorObserved:
		return fmt.Sprintf("%s reports a baseline of %s plastic bottles per day.", name, model.FormatNumber(p.PlasticBottlesPerDay))
	default:
		return fmt.Sprintf("%s observed for %s.", event.EventType, name)
	}
}

func eventTitle(event model.Event, entity *model.Entity) string {
	return fmt.Sprintf("%s: %s", HumanizeEventType(event.EventType), entityName(event, entity))
}

// HumanizeEventType turns PURCHASE_OBSERVED into "Purchase observed".
func HumanizeEventType(eventType string) string {
	words := strings.Fields(strings.ToLower(strings.ReplaceAll(eventType, "_", " ")))
	if len(words) == 0 {
		return "Event"
	}
	text := strings.Join(words, " ")
	return strings.ToUpper(text[:1]) + text[1:]
}

func entityName(event model.Event, entity *model.Entity) string {
	if entity != nil && strings.TrimSpace(entity.Name) != "" {
		return entity.Name
	}
	if event.EntityID != "" {
		return event.EntityID
	}
	return "unknown entity"
}

func orUnknown(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
