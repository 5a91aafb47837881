package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"insightgraph/internal/store"
)

func nodesCmd() *cobra.Command {
	var query store.NodeQuery
	var withLinks bool
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "List information nodes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			nodes, err := a.store.GetNodes(query)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, nodes)
			}
			if len(nodes) == 0 {
				fmt.Fprintln(out, "No nodes found.")
				return nil
			}

			for _, node := range nodes {
				fmt.Fprintf(out, "%s  %-12s %-6s %.2f  %s\n", node.NodeID, node.Domain, node.Importance, node.Confidence, node.EventText)
				fmt.Fprintf(out, "    tags: %s\n", strings.Join(node.Tags, ", "))
				if !withLinks {
					continue
				}
				links, err := a.store.GetLinks(node.NodeID)
				if err != nil {
					return err
				}
				for _, link := range links {
					other := link.ToNodeID
					if other == node.NodeID {
						other = link.FromNodeID
					}
					fmt.Fprintf(out, "    -> %s (%.2f) [%s]\n", other, link.Strength, strings.Join(link.SharedKeys, ", "))
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&query.Limit, "limit", store.DefaultNodeLimit, "Maximum number of nodes")
	cmd.Flags().StringVar(&query.Tag, "tag", "", "Tag to filter")
	cmd.Flags().StringVar(&query.Entity, "entity", "", "Entity to filter")
	cmd.Flags().BoolVar(&withLinks, "links", false, "Show links for each node")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
