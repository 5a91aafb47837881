package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"insightgraph/internal/model"
)

// Endpoints are matched, not merged: a link whose nodes were never exported
// writes nothing.
const upsertLinkQuery = `
MATCH (a:InformationNode {node_id: $from_node_id})
MATCH (b:InformationNode {node_id: $to_node_id})
MERGE (a)-[r:SHARED_ENTITY_OR_TAG {link_id: $link_id}]->(b)
SET r.shared_keys = $shared_keys,
    r.strength = $strength,
    r.created_at = $created_at
`

func (c *Client) UpsertLink(ctx context.Context, link model.NodeLink) error {
	if strings.TrimSpace(link.LinkID) == "" {
		return fmt.Errorf("link id is required")
	}

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	if err := c.write(ctx, session, upsertLinkQuery, linkParams(link)); err != nil {
		return fmt.Errorf("upserting link %s: %w", link.LinkID, err)
	}
	return nil
}

func linkParams(link model.NodeLink) map[string]any {
	return map[string]any{
		"link_id":      link.LinkID,
		"from_node_id": link.FromNodeID,
		"to_node_id":   link.ToNodeID,
		"shared_keys":  nonNil(link.SharedKeys),
		"strength":     link.Strength,
		"created_at":   link.CreatedAt,
	}
}

// RemoveStaleNodes deletes exported nodes whose id is not in keep, along
// with their relationships.
func (c *Client) RemoveStaleNodes(ctx context.Context, keep []string) (int64, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	query := `
MATCH (n:InformationNode)
WHERE NOT n.node_id IN $keep
DETACH DELETE n
RETURN count(n) AS deleted
`

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"keep": nonNil(keep)})
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			value, _ := res.Record().Get("deleted")
			if count, ok := value.(int64); ok {
				return count, nil
			}
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return int64(0), nil
	})
	if err != nil {
		return 0, fmt.Errorf("removing stale nodes: %w", err)
	}

	return result.(int64), nil
}
