package main

import (
	"os"

	"github.com/spf13/cobra"

	"insightgraph/internal/config"
)

var configPath string

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "insightgraph",
		Short:        "Information graph and scenario insight engine",
		SilenceUsage: true,
	}
	root.Version = buildVersion()
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the project config")
	root.AddCommand(initCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(mcpCmd())
	root.AddCommand(overviewCmd())
	root.AddCommand(nodesCmd())
	root.AddCommand(insightCmd())
	root.AddCommand(injectCmd())
	root.AddCommand(briefingCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(historyCmd())
	root.AddCommand(versionCmd())
	return root
}
