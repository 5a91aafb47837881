package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

//go:embed scaffold/*.json
var scaffoldFS embed.FS

var scaffoldFiles = []string{"dataset.json", "hot_layer.json", "raw_records.json"}

func initCmd() *cobra.Command {
	var projectName string
	var dir string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new insightgraph project with sample data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			if err := runInit(dir, projectName); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", filepath.Join(dir, "insightgraph.yaml"))
			return nil
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to scaffold into")
	return cmd
}

func runInit(dir, projectName string) error {
	configPath := filepath.Join(dir, "insightgraph.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}

	dataDir := filepath.Join(dir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dataDir, err)
	}
	for _, name := range scaffoldFiles {
		target := filepath.Join(dataDir, name)
		if _, err := os.Stat(target); err == nil {
			continue
		}
		contents, err := scaffoldFS.ReadFile("scaffold/" + name)
		if err != nil {
			return fmt.Errorf("reading scaffold %s: %w", name, err)
		}
		if err := os.WriteFile(target, contents, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}
	}

	configContents := fmt.Sprintf("project: %s\nversion: 1\n\ndata:\n  dataset: ./data/dataset.json\n  hot_layer: ./data/hot_layer.json\n  raw_records: ./data/raw_records.json\n\nserver:\n  addr: \":8080\"\n  cors_origins:\n    - http://localhost:3000\n\nlog:\n  mode: development\n\narchive:\n  dsn: sqlite://./data/archive.db\n\nevents:\n  nats_url: \"\"\n\nneo4j:\n  uri: \"\"\n  username: neo4j\n  database: neo4j\n\nmail:\n  from_email: \"\"\n  from_name: Insight Graph\n", projectName)
	if err := os.WriteFile(configPath, []byte(configContents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	return nil
}
