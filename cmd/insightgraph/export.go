package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"insightgraph/internal/graph"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export information nodes and links to Neo4j",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	neo := a.cfg.Neo4j
	if neo.URI == "" {
		return fmt.Errorf("neo4j.uri is not configured")
	}

	client, err := graph.NewClient(ctx, neo.URI, neo.Username, neo.Password, neo.Database)
	if err != nil {
		return err
	}
	defer client.Close(ctx)

	snapshot, err := a.store.Snapshot()
	if err != nil {
		return err
	}

	stats, err := client.Export(ctx, snapshot.InformationNodes, snapshot.NodeLinks)
	if err != nil {
		return err
	}
	a.log.Info("graph exported", "nodes", stats.Nodes, "links", stats.Links, "removed", stats.Removed)
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d nodes and %d links (%d stale nodes removed)\n", stats.Nodes, stats.Links, stats.Removed)
	return nil
}
