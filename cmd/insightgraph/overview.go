package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func overviewCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show dataset meta and collection counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			overview, err := a.store.GetOverview()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, overview)
			}

			latest := "n/a"
			if overview.LatestUpdateAt != nil {
				latest = *overview.LatestUpdateAt
			}
			fmt.Fprintf(out, "Tenant:     %s\n", overview.Meta.Tenant)
			fmt.Fprintf(out, "As of:      %s\n", overview.Meta.AsOf)
			fmt.Fprintf(out, "Latest:     %s\n", latest)
			fmt.Fprintf(out, "Summaries:  %d\n", overview.Counts.Summaries)
			fmt.Fprintf(out, "Nodes:      %d\n", overview.Counts.InformationNodes)
			fmt.Fprintf(out, "Links:      %d\n", overview.Counts.NodeLinks)
			fmt.Fprintf(out, "Cards:      %d\n", overview.Counts.BriefingCards)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
