package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"insightgraph/internal/httpapi"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}

func runServe(addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	mailer, err := openMailer(a.cfg, a.log)
	if err != nil {
		return err
	}

	routerCfg := httpapi.RouterConfig{
		Service:     a.store,
		Log:         a.log,
		CORSOrigins: a.cfg.Server.CORSOrigins,
	}
	// A nil *mail.Client must not become a non-nil Sender.
	if mailer != nil {
		routerCfg.Mailer = mailer
	}

	if addr == "" {
		addr = a.cfg.Server.Addr
	}
	return httpapi.NewServer(routerCfg).Run(ctx, addr)
}
