package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"insightgraph/internal/model"
)

const upsertNodeQuery = `
MERGE (n:InformationNode {node_id: $node_id})
SET n.summary_id = $summary_id,
    n.event_id = $event_id,
    n.event_type = $event_type,
    n.event_text = $event_text,
    n.domain = $domain,
    n.entities = $entities,
    n.tags = $tags,
    n.tags_text = $tags_text,
    n.importance = $importance,
    n.confidence = $confidence,
    n.timestamp = $timestamp,
    n.raw_id = $raw_id,
    n.payload_ref = $payload_ref,
    n.last_exported = datetime()
`

func (c *Client) UpsertNode(ctx context.Context, node model.InformationNode) error {
	if strings.TrimSpace(node.NodeID) == "" {
		return fmt.Errorf("node id is required")
	}

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	if err := c.write(ctx, session, upsertNodeQuery, nodeParams(node)); err != nil {
		return fmt.Errorf("upserting node %s: %w", node.NodeID, err)
	}
	return nil
}

func nodeParams(node model.InformationNode) map[string]any {
	return map[string]any{
		"node_id":     node.NodeID,
		"summary_id":  node.SummaryID,
		"event_id":    node.EventID,
		"event_type":  node.EventType,
		"event_text":  node.EventText,
		"domain":      node.Domain,
		"entities":    nonNil(node.Entities),
		"tags":        nonNil(node.Tags),
		"tags_text":   strings.Join(node.Tags, " "),
		"importance":  string(node.Importance),
		"confidence":  node.Confidence,
		"timestamp":   node.Timestamp,
		"raw_id":      node.SourceRefs.RawID,
		"payload_ref": node.SourceRefs.PayloadRef,
	}
}

// The driver rejects nil lists as property values.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
