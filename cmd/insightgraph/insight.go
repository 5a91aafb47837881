package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"insightgraph/internal/evidence"
	"insightgraph/internal/model"
	"insightgraph/internal/store"
)

func insightCmd() *cobra.Command {
	var nodeIDs []string
	var evidenceTitle string
	var evidenceText string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "insight [scenario prompt]",
		Short: "Generate an insight for a what-if scenario",
		Long: "Generate beliefs, outcomes and a reality tree for a scenario. With --evidence,\n" +
			"the evidence is injected against the new insight and the re-weighted result is shown.\n" +
			"The prompt may be omitted when context nodes are given with --node.",
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			if strings.TrimSpace(prompt) == "" && len(nodeIDs) == 0 {
				return fmt.Errorf("a scenario prompt or at least one --node is required")
			}

			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			block, err := a.store.CreateInsight(ctx, store.CreateInsightInput{
				ScenarioPrompt:  prompt,
				SelectedNodeIDs: nodeIDs,
			})
			if err != nil {
				return err
			}

			if evidenceText != "" {
				title := evidenceTitle
				if title == "" {
					title = "CLI evidence"
				}
				res, err := a.store.InjectEvidence(ctx, evidence.Input{
					Title:           title,
					Source:          "cli",
					ContentText:     evidenceText,
					TargetInsightID: block.InsightID,
				})
				if err != nil {
					return err
				}
				if res.UpdatedInsight != nil {
					block = res.UpdatedInsight
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, block)
			}
			printInsight(out, block)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&nodeIDs, "node", nil, "Context node id (repeatable)")
	cmd.Flags().StringVar(&evidenceTitle, "evidence-title", "", "Title for --evidence")
	cmd.Flags().StringVar(&evidenceText, "evidence", "", "Evidence text to inject against the new insight")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func printInsight(out io.Writer, block *model.InsightBlock) {
	fmt.Fprintf(out, "%s: %s\n", block.InsightID, block.ScenarioPrompt)
	fmt.Fprintf(out, "Context: %s\n", strings.Join(block.ContextNodeIDs, ", "))
	if block.ModelMeta.LastEvidenceUpdateAt != "" {
		fmt.Fprintf(out, "Re-weighted at %s\n", block.ModelMeta.LastEvidenceUpdateAt)
	}

	fmt.Fprintln(out, "\nBeliefs:")
	if len(block.Beliefs) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for _, belief := range block.Beliefs {
		fmt.Fprintf(out, "  [%.2f] %s (%s)\n", belief.Probability, belief.Statement, belief.Domain)
	}

	fmt.Fprintln(out, "\nOutcomes:")
	for _, outcome := range block.Outcomes {
		fmt.Fprintf(out, "  %s [%.2f] %s, %dd\n", outcome.ID, outcome.Probability, outcome.Label, outcome.HorizonDays)
	}
}
