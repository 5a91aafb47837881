package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"insightgraph/internal/normalize"
)

func historyCmd() *cobra.Command {
	var limit int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived insight versions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			if a.cfg.Archive.DSN == "" {
				return fmt.Errorf("archive.dsn is not configured")
			}

			records, err := a.store.ListInsightHistory(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, records)
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No archived insights.")
				return nil
			}
			for _, record := range records {
				fmt.Fprintf(out, "%s  %s  %s  %s\n",
					normalize.FormatTime(record.RecordedAt), record.InsightID, record.ScenarioKey, record.Insight.ScenarioPrompt)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	cmd.AddCommand(historyPruneCmd())
	return cmd
}

type pruner interface {
	PruneRecords(ctx context.Context, cutoff time.Time) (int64, error)
}

func historyPruneCmd() *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete archived records older than --older-than",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive")
			}
			ctx := context.Background()
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer log.Sync()

			archive, err := openArchive(ctx, cfg.Archive.DSN)
			if err != nil {
				return err
			}
			if archive == nil {
				return fmt.Errorf("archive.dsn is not configured")
			}
			defer archive.Close(ctx)

			p, ok := archive.(pruner)
			if !ok {
				return fmt.Errorf("archive does not support pruning")
			}
			cutoff := time.Now().Add(-olderThan)
			n, err := p.PruneRecords(ctx, cutoff)
			if err != nil {
				return err
			}
			log.Info("archive pruned", "cutoff", normalize.FormatTime(cutoff), "rows", n)
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d records\n", n)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 90*24*time.Hour, "Age of records to delete")
	return cmd
}
