// Package validate reports data-quality issues in a loaded dataset.
package validate

import (
	"fmt"
	"strings"

	"insightgraph/internal/model"
	"insightgraph/internal/normalize"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	CodeEventEntityMissing    = "event_entity_missing"
	CodeEvidenceRefUnresolved = "evidence_ref_unresolved"
	CodeDuplicateEventID      = "duplicate_event_id"
	CodeDuplicateEntityID     = "duplicate_entity_id"
	CodeUnknownEventType      = "unknown_event_type"
	CodeUnparsableTime        = "unparsable_time"
)

var knownEventTypes = map[string]bool{
	model.EventPurchaseObserved:          true,
	model.EventInventorySnapshotObserved: true,
	model.EventBaselineBehaviorObserved:  true,
}

type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Ref      string   `json:"ref"`
}

type Report struct {
	Issues []Issue `json:"issues"`
}

func (r *Report) Errors() []Issue { return r.filter(SeverityError) }

func (r *Report) Warnings() []Issue { return r.filter(SeverityWarn) }

func (r *Report) filter(severity Severity) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

// Run checks ds and returns every issue found, in dataset order. Issues
// never stop the transform; they describe records it will degrade.
func Run(ds *model.Dataset) *Report {
	report := &Report{Issues: make([]Issue, 0)}
	if ds == nil {
		return report
	}

	entities := make(map[string]bool, len(ds.Entities))
	for _, entity := range ds.Entities {
		if entities[entity.EntityID] {
			report.add(SeverityError, CodeDuplicateEntityID, entity.EntityID, "duplicate entity id")
			continue
		}
		entities[entity.EntityID] = true
	}

	raws := make(map[string]bool, len(ds.RawRecords))
	for _, raw := range ds.RawRecords {
		raws[raw.RawID] = true
	}

	events := make(map[string]bool, len(ds.Events))
	for _, event := range ds.Events {
		if events[event.EventID] {
			report.add(SeverityError, CodeDuplicateEventID, event.EventID, "duplicate event id")
		}
		events[event.EventID] = true

		if !entities[event.EntityID] {
			report.add(SeverityWarn, CodeEventEntityMissing, event.EventID,
				fmt.Sprintf("entity %q not found", event.EntityID))
		}
		if event.EvidenceRefs != "" {
			rawID := strings.TrimPrefix(event.EvidenceRefs, "raw:")
			if !raws[rawID] {
				report.add(SeverityWarn, CodeEvidenceRefUnresolved, event.EventID,
					fmt.Sprintf("raw record %q not found", rawID))
			}
		}
		if !knownEventTypes[event.EventType] {
			report.add(SeverityWarn, CodeUnknownEventType, event.EventID,
				fmt.Sprintf("unknown event type %q", event.EventType))
		}
		if !normalize.ValidTime(event.Time) {
			report.add(SeverityWarn, CodeUnparsableTime, event.EventID,
				fmt.Sprintf("unparsable time %q", event.Time))
		}
	}

	return report
}

func (r *Report) add(severity Severity, code, ref, message string) {
	r.Issues = append(r.Issues, Issue{Severity: severity, Code: code, Message: message, Ref: ref})
}
