package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"insightgraph/internal/model"
)

var (
	ErrEmptyDocument = errors.New("document is empty")
	ErrInvalidJSON   = errors.New("invalid JSON document")
)

// Document is the primary dataset: entities, events and the raw records
// they cite.
type Document struct {
	Entities   []model.Entity    `json:"entities"`
	Events     []model.Event     `json:"events"`
	RawRecords []model.RawRecord `json:"raw_records"`
}

type HotLayer struct {
	Meta *model.Meta `json:"meta"`
}

func ParseDataset(content []byte) (*Document, error) {
	var doc Document
	if err := decode(content, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func ParseHotLayer(content []byte) (*HotLayer, error) {
	var layer HotLayer
	if err := decode(content, &layer); err != nil {
		return nil, err
	}
	return &layer, nil
}

// ParseRawRecords accepts either {"raw_records": [...]} or a bare array.
func ParseRawRecords(content []byte) ([]model.RawRecord, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []model.RawRecord
		if err := decode(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	}
	var wrapped struct {
		RawRecords []model.RawRecord `json:"raw_records"`
	}
	if err := decode(trimmed, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.RawRecords, nil
}

// Assemble merges the three documents. Raw records from the dataset come
// first; later duplicates of a raw_id are dropped.
func Assemble(doc *Document, hot *HotLayer, raw []model.RawRecord) *model.Dataset {
	out := &model.Dataset{}
	if hot != nil {
		out.Meta = hot.Meta
	}
	if doc != nil {
		out.Entities = doc.Entities
		out.Events = doc.Events
	}

	seen := make(map[string]struct{})
	var merged []model.RawRecord
	var sources [][]model.RawRecord
	if doc != nil {
		sources = append(sources, doc.RawRecords)
	}
	sources = append(sources, raw)
	for _, records := range sources {
		for _, record := range records {
			if _, ok := seen[record.RawID]; ok {
				continue
			}
			seen[record.RawID] = struct{}{}
			merged = append(merged, record)
		}
	}
	out.RawRecords = merged
	return out
}

func decode(content []byte, v any) error {
	trimmed := bytes.TrimLeft(content, "\ufeff\n\r\t ")
	if len(trimmed) == 0 {
		return ErrEmptyDocument
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}
