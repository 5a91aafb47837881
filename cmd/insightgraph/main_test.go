package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"insightgraph/internal/config"
	"insightgraph/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func scaffoldProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	if _, err := execute(t, "init", "--name", "demo"); err != nil {
		t.Fatalf("init: %v", err)
	}
	return dir
}

func TestInit(t *testing.T) {
	dir := scaffoldProject(t)

	cfg, err := config.LoadProjectConfig(filepath.Join(dir, "insightgraph.yaml"))
	if err != nil {
		t.Fatalf("loading scaffolded config: %v", err)
	}
	if cfg.Project != "demo" || cfg.Archive.DSN == "" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	for _, name := range scaffoldFiles {
		if _, err := os.Stat(filepath.Join(dir, "data", name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}

	if _, err := execute(t, "init", "--name", "demo"); err == nil {
		t.Fatalf("expected error when config already exists")
	}
	if _, err := execute(t, "init"); err == nil {
		t.Fatalf("expected error without --name")
	}
}

func TestValidateScaffold(t *testing.T) {
	scaffoldProject(t)

	out, err := execute(t, "validate")
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No issues found.") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestOverviewJSON(t *testing.T) {
	scaffoldProject(t)

	out, err := execute(t, "overview", "--json")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	var overview store.Overview
	if err := json.Unmarshal([]byte(out), &overview); err != nil {
		t.Fatalf("decoding overview: %v\n%s", err, out)
	}
	if overview.Meta.Tenant != "demo-retail" || overview.Counts.InformationNodes != 3 {
		t.Fatalf("unexpected overview: %+v", overview)
	}
}

func TestInsightWithEvidenceAndHistory(t *testing.T) {
	scaffoldProject(t)

	out, err := execute(t, "insight", "What if X1 purchases double?", "--evidence", "pricing rollback announced for X1")
	if err != nil {
		t.Fatalf("insight: %v", err)
	}
	if !strings.Contains(out, "ins_0001") || !strings.Contains(out, "Re-weighted at") {
		t.Fatalf("unexpected insight output: %s", out)
	}

	out, err = execute(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if strings.Count(out, "ins_0001") != 2 {
		t.Fatalf("expected the original and re-weighted versions, got:\n%s", out)
	}
}

func TestInsightFromSelectionOnly(t *testing.T) {
	scaffoldProject(t)

	if _, err := execute(t, "insight"); err == nil {
		t.Fatalf("expected error without prompt or --node")
	}

	out, err := execute(t, "insight", "--node", "node_0001")
	if err != nil {
		t.Fatalf("insight --node: %v", err)
	}
	if !strings.Contains(out, "ins_0001") || !strings.Contains(out, "Context: node_0001") {
		t.Fatalf("unexpected insight output: %s", out)
	}
}

func TestBriefingEmailWithoutKey(t *testing.T) {
	scaffoldProject(t)
	t.Setenv(config.EnvSendGridKey, "")

	if _, err := execute(t, "briefing", "--email", "dana@example.com"); err == nil {
		t.Fatalf("expected error without an api key")
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != "dev" {
		t.Fatalf("unexpected version output: %q", out)
	}

	out, err = execute(t, "version", "--long")
	if err != nil {
		t.Fatalf("version --long: %v", err)
	}
	if !strings.Contains(out, "version:  dev") || !strings.Contains(out, "go:       go") {
		t.Fatalf("unexpected long version output: %q", out)
	}
}

func TestBuildVersionPrefersLinkerValue(t *testing.T) {
	old := version
	t.Cleanup(func() { version = old })

	version = "v1.4.0"
	if got := buildVersion(); got != "v1.4.0" {
		t.Fatalf("buildVersion() = %q, want v1.4.0", got)
	}
}

func TestHistoryPrune(t *testing.T) {
	scaffoldProject(t)

	if _, err := execute(t, "insight", "What if the warehouse closes?"); err != nil {
		t.Fatalf("insight: %v", err)
	}
	out, err := execute(t, "history", "prune", "--older-than", "1h")
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if !strings.Contains(out, "Pruned 0 records") {
		t.Fatalf("unexpected prune output: %s", out)
	}
	if _, err := execute(t, "history", "prune", "--older-than", "0s"); err == nil {
		t.Fatalf("expected error for a zero duration")
	}
}
