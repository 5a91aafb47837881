//go:build integration

package graph

import (
	"context"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"insightgraph/internal/model"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()
	client, err := NewClient(ctx, "bolt://localhost:7687", "neo4j", "changeme", "neo4j")
	if err != nil {
		t.Fatalf("connecting to test neo4j: %v", err)
	}
	t.Cleanup(func() {
		_, _ = client.RemoveStaleNodes(ctx, nil)
		_ = client.Close(ctx)
	})
	return client
}

func TestNewClient_BadCredentials(t *testing.T) {
	ctx := context.Background()
	client, err := NewClient(ctx, "bolt://localhost:7687", "neo4j", "wrong", "neo4j")
	if err == nil {
		_ = client.Close(ctx)
		t.Fatalf("expected error")
	}
}

func TestEnsureIndexes(t *testing.T) {
	ctx := context.Background()
	client := testClient(t)

	if err := client.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	if err := client.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes (idempotent): %v", err)
	}

	session := client.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: client.database})
	defer session.Close(ctx)

	names := readStrings(t, ctx, session, "SHOW INDEXES YIELD name RETURN name AS value")
	for _, want := range []string{"information_node_fulltext", "information_node_domain"} {
		if !contains(names, want) {
			t.Fatalf("expected index %s", want)
		}
	}
}

func TestExport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client := testClient(t)

	nodes := []model.InformationNode{
		{NodeID: "node_0001", Domain: "product", Tags: []string{"x1"}, Importance: model.ImportanceHigh},
		{NodeID: "node_0002", Domain: "supply_chain", Tags: []string{"x1"}, Importance: model.ImportanceMedium},
	}
	links := []model.NodeLink{
		{LinkID: "link_0001", FromNodeID: "node_0001", ToNodeID: "node_0002", SharedKeys: []string{"x1"}, Strength: 0.33},
	}

	stats, err := client.Export(ctx, nodes, links)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if stats.Nodes != 2 || stats.Links != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	session := client.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: client.database})
	defer session.Close(ctx)

	got := readStrings(t, ctx, session, "MATCH ()-[r:SHARED_ENTITY_OR_TAG]->() RETURN r.link_id AS value")
	if len(got) != 1 || got[0] != "link_0001" {
		t.Fatalf("unexpected links: %v", got)
	}

	stats, err = client.Export(ctx, nodes[:1], nil)
	if err != nil {
		t.Fatalf("second export: %v", err)
	}
	if stats.Removed != 1 {
		t.Fatalf("expected one stale node removed, got %+v", stats)
	}
}

func readStrings(t *testing.T, ctx context.Context, session neo4j.SessionWithContext, query string) []string {
	t.Helper()
	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		var values []string
		for res.Next(ctx) {
			value, _ := res.Record().Get("value")
			if s, ok := value.(string); ok {
				values = append(values, s)
			}
		}
		return values, res.Err()
	})
	if err != nil {
		t.Fatalf("query %q: %v", query, err)
	}
	return result.([]string)
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
