package config

import (
	"os"
	"path/filepath"
	"testing"
)

const minimalConfig = "project: test\nversion: 1\ndata:\n  dataset: d.json\n  hot_layer: h.json\n  raw_records: r.json\n"

func TestLoadProjectConfig(t *testing.T) {
	t.Run("valid config loads", func(t *testing.T) {
		cfg, err := LoadProjectConfig(filepath.Join("testdata", "valid_config.yaml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Project != "test-project" {
			t.Fatalf("expected project name, got %q", cfg.Project)
		}
		if cfg.Server.Addr != ":9090" || len(cfg.Server.CORSOrigins) != 1 {
			t.Fatalf("unexpected server config %+v", cfg.Server)
		}
		if cfg.Neo4j.Database != "neo4j" || cfg.Mail.FromName != "Insight Graph" {
			t.Fatalf("defaults not applied: %+v %+v", cfg.Neo4j, cfg.Mail)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadProjectConfig(writeTempConfig(t, minimalConfig))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Server.Addr != ":8080" || cfg.Log.Mode != "development" {
			t.Fatalf("unexpected defaults %+v %+v", cfg.Server, cfg.Log)
		}
	})

	t.Run("missing project name", func(t *testing.T) {
		path := writeTempConfig(t, "version: 1\ndata:\n  dataset: d.json\n  hot_layer: h.json\n  raw_records: r.json\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 2\ndata:\n  dataset: d.json\n  hot_layer: h.json\n  raw_records: r.json\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing data path", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\ndata:\n  dataset: d.json\n  hot_layer: h.json\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bad archive scheme", func(t *testing.T) {
		path := writeTempConfig(t, minimalConfig+"archive:\n  dsn: mysql://localhost/db\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bad log mode", func(t *testing.T) {
		path := writeTempConfig(t, minimalConfig+"log:\n  mode: chatty\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("file not found", func(t *testing.T) {
		if _, err := LoadProjectConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeTempConfig(t, "project: [\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvHTTPAddr, ":7000")
	t.Setenv(EnvArchiveDSN, "postgres://localhost/insights")
	t.Setenv(EnvSendGridKey, "SG.test")

	cfg, err := LoadProjectConfig(writeTempConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Fatalf("expected addr override, got %q", cfg.Server.Addr)
	}
	if cfg.Archive.DSN != "postgres://localhost/insights" {
		t.Fatalf("expected dsn override, got %q", cfg.Archive.DSN)
	}
	if cfg.Mail.APIKey != "SG.test" {
		t.Fatalf("expected api key from env, got %q", cfg.Mail.APIKey)
	}
}

func TestResolvePath(t *testing.T) {
	cfg, err := LoadProjectConfig(filepath.Join("testdata", "valid_config.yaml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got, want := cfg.ResolvePath(cfg.Data.Dataset), filepath.Join("testdata", "data", "dataset.json"); got != want {
		t.Errorf("ResolvePath(%q) = %q, want %q", cfg.Data.Dataset, got, want)
	}
	if got := cfg.ResolvePath(cfg.Data.RawRecords); got != "/srv/data/raw_records.json" {
		t.Errorf("absolute path rewritten to %q", got)
	}
}

func TestArchiveDriver(t *testing.T) {
	tests := []struct {
		dsn     string
		want    string
		wantErr bool
	}{
		{dsn: "postgres://u@h/db", want: "postgres"},
		{dsn: "postgresql://u@h/db", want: "postgres"},
		{dsn: "sqlite://archive.db", want: "sqlite"},
		{dsn: "archive.db", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ArchiveDriver(tt.dsn)
		if (err != nil) != tt.wantErr {
			t.Errorf("ArchiveDriver(%q) error = %v, wantErr %v", tt.dsn, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ArchiveDriver(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}
