package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"insightgraph/internal/evidence"
)

func injectCmd() *cobra.Command {
	var in evidence.Input
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inject",
		Short: "Inject evidence into the information graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.ContentText) == "" {
				return fmt.Errorf("--title and --content are required")
			}

			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			res, err := a.store.InjectEvidence(ctx, in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, res)
			}
			fmt.Fprintf(out, "%s: summary %s, node %s\n", res.Injection.InjectionID, res.Summary.SummaryID, res.Node.NodeID)
			fmt.Fprintf(out, "tags: %s (confidence %.2f)\n", strings.Join(res.Node.Tags, ", "), res.Node.Confidence)
			links, err := a.store.GetLinks(res.Node.NodeID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "links: %d\n", len(links))
			if in.TargetInsightID != "" && res.UpdatedInsight == nil {
				fmt.Fprintf(out, "insight %s not found; nothing re-weighted\n", in.TargetInsightID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "Evidence title")
	cmd.Flags().StringVar(&in.Source, "source", "", "Evidence source (default manual)")
	cmd.Flags().StringVar(&in.ContentText, "content", "", "Evidence text")
	cmd.Flags().StringVar(&in.TargetInsightID, "target", "", "Insight to re-weight")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
