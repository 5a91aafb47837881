// Package graph mirrors information nodes and their links into Neo4j.
package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const (
	NodeLabel = "InformationNode"
	LinkType  = "SHARED_ENTITY_OR_TAG"
)

type Client struct {
	driver   neo4j.DriverWithContext
	database string
}

func NewClient(ctx context.Context, uri, username, password, database string) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("creating neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verifying neo4j connectivity: %w", err)
	}

	return &Client{driver: driver, database: database}, nil
}

func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.driver == nil {
		return nil
	}
	return c.driver.Close(ctx)
}

func (c *Client) EnsureIndexes(ctx context.Context) error {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	statements := []string{
		`CREATE CONSTRAINT information_node_id IF NOT EXISTS
FOR (n:InformationNode) REQUIRE n.node_id IS UNIQUE`,
		`CREATE FULLTEXT INDEX information_node_fulltext IF NOT EXISTS
FOR (n:InformationNode) ON EACH [n.event_text, n.tags_text]`,
		`CREATE INDEX information_node_domain IF NOT EXISTS FOR (n:InformationNode) ON (n.domain)`,
	}

	for _, stmt := range statements {
		if err := c.write(ctx, session, stmt, nil); err != nil {
			return fmt.Errorf("ensuring indexes: %w", err)
		}
	}

	return nil
}

func (c *Client) write(ctx context.Context, session neo4j.SessionWithContext, query string, params map[string]any) error {
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, query, params)
		return nil, err
	})
	return err
}
