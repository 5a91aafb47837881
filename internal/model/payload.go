package model

import (
	"strconv"
	"strings"
)

const (
	EventPurchaseObserved          = "PURCHASE_OBSERVED"
	EventInventorySnapshotObserved = "INVENTORY_SNAPSHOT_OBSERVED"
	EventBaselineBehaviorObserved  = "BASELINE_BEHAVIOR_OBSERVED"
	EventEvidenceInjected          = "EVIDENCE_INJECTED"
)

// Payload is the closed set of event payload shapes. Switch on the concrete
// type; OtherPayload covers event types without a dedicated shape.
type Payload interface {
	payloadKind() string
}

type PurchaseObserved struct {
	SKU      string
	Qty      *float64
	Category string
}

type InventorySnapshotObserved struct {
	SKU         string
	Warehouse   string
	StockOnHand *float64
	Category    string
}

type BaselineBehaviorObserved struct {
	PlasticBottlesPerDay *float64
	Category             string
}

type OtherPayload struct {
	Raw map[string]any
}

func (PurchaseObserved) payloadKind() string          { return EventPurchaseObserved }
func (InventorySnapshotObserved) payloadKind() string { return EventInventorySnapshotObserved }
func (BaselineBehaviorObserved) payloadKind() string  { return EventBaselineBehaviorObserved }
func (OtherPayload) payloadKind() string              { return "OTHER" }

// DecodePayload maps a raw payload object onto the shape for eventType.
func DecodePayload(eventType string, raw map[string]any) Payload {
	switch eventType {
	case EventPurchaseObserved:
		return PurchaseObserved{
			SKU:      stringField(raw, "sku"),
			Qty:      numberField(raw, "qty"),
			Category: stringField(raw, "category"),
		}
	case EventInventorySnapshotObserved:
		return InventorySnapshotObserved{
			SKU:         stringField(raw, "sku"),
			Warehouse:   stringField(raw, "warehouse"),
			StockOnHand: numberField(raw, "stock_on_hand"),
			Category:    stringField(raw, "category"),
		}
	case EventBaselineBehaviorObserved:
		return BaselineBehaviorObserved{
			PlasticBottlesPerDay: numberField(raw, "plastic_bottles_per_day"),
			Category:             stringField(raw, "category"),
		}
	default:
		return OtherPayload{Raw: raw}
	}
}

// PayloadKeys returns the sku, warehouse and category carried by a payload,
// empty when the shape has none.
func PayloadKeys(p Payload) (sku, warehouse, category string) {
	switch v := p.(type) {
	case PurchaseObserved:
		return v.SKU, "", v.Category
	case InventorySnapshotObserved:
		return v.SKU, v.Warehouse, v.Category
	case BaselineBehaviorObserved:
		return "", "", v.Category
	case OtherPayload:
		return stringField(v.Raw, "sku"), stringField(v.Raw, "warehouse"), stringField(v.Raw, "category")
	default:
		return "", "", ""
	}
}

func stringField(raw map[string]any, key string) string {
	value, ok := raw[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func numberField(raw map[string]any, key string) *float64 {
	value, ok := raw[key]
	if !ok || value == nil {
		return nil
	}
	switch v := value.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// FormatNumber renders an optional payload number, "?" when absent.
func FormatNumber(v *float64) string {
	if v == nil {
		return "?"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
