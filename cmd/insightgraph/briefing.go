package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"insightgraph/internal/mail"
)

func briefingCmd() *cobra.Command {
	var to string
	var name string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "briefing",
		Short: "Show the per-domain briefing cards, or email them with --email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			cards, err := a.store.GetBriefing()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if to != "" {
				mailer, err := openMailer(a.cfg, a.log)
				if err != nil {
					return err
				}
				if mailer == nil {
					return errMailNotConfigured
				}
				overview, err := a.store.GetOverview()
				if err != nil {
					return err
				}
				res, err := mail.SendBriefing(ctx, mailer, mail.EmailAddress{Email: to, Name: name}, overview.Meta, cards)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Sent %d cards to %s (message %s)\n", len(cards), to, res.MessageID)
				return nil
			}

			if asJSON {
				return printJSON(out, cards)
			}
			for _, card := range cards {
				fmt.Fprintf(out, "[%s] %s (%s, %.2f)\n", card.Domain, card.Title, card.Importance, card.Confidence)
				fmt.Fprintf(out, "    %s\n    investigate: %s\n", card.Summary, card.InvestigateNodeID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "email", "", "Send the briefing to this address")
	cmd.Flags().StringVar(&name, "name", "", "Recipient name for --email")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
