package model

import (
	"encoding/json"
	"fmt"
)

type Entity struct {
	EntityID string `json:"entity_id"`
	Type     string `json:"type"`
	Name     string `json:"name"`
}

type RawRecord struct {
	RawID      string `json:"raw_id"`
	Source     string `json:"source"`
	PayloadRef string `json:"payload_ref"`
}

// Event is one observation from the dataset. Payload is decoded from the
// raw payload object according to EventType.
type Event struct {
	EventID      string         `json:"event_id"`
	EntityID     string         `json:"entity_id"`
	EventType    string         `json:"event_type"`
	Time         string         `json:"time"`
	RawPayload   map[string]any `json:"payload,omitempty"`
	EvidenceRefs string         `json:"evidence_refs,omitempty"`

	Payload Payload `json:"-"`
}

func (e *Event) UnmarshalJSON(data []byte) error {
	type alias Event
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("decoding event: %w", err)
	}
	*e = Event(decoded)
	e.Payload = DecodePayload(e.EventType, e.RawPayload)
	return nil
}

type Meta struct {
	Tenant string `json:"tenant"`
	AsOf   string `json:"as_of"`
}

// Dataset is the fully loaded input: the dataset document, the hot layer
// meta (nil when absent) and the merged raw records.
type Dataset struct {
	Meta       *Meta
	Entities   []Entity
	Events     []Event
	RawRecords []RawRecord
}
