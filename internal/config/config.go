package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "insightgraph.yaml"

// Environment variables that override the file.
const (
	EnvHTTPAddr      = "INSIGHTGRAPH_HTTP_ADDR"
	EnvArchiveDSN    = "INSIGHTGRAPH_ARCHIVE_DSN"
	EnvNATSURL       = "INSIGHTGRAPH_NATS_URL"
	EnvNeo4jPassword = "INSIGHTGRAPH_NEO4J_PASSWORD"
	EnvSendGridKey   = "SENDGRID_API_KEY"
)

const (
	defaultAddr     = ":8080"
	defaultLogMode  = "development"
	defaultNeo4jDB  = "neo4j"
	defaultFromName = "Insight Graph"
)

type ProjectConfig struct {
	Project string        `yaml:"project"`
	Version int           `yaml:"version"`
	Data    DataConfig    `yaml:"data"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Archive ArchiveConfig `yaml:"archive"`
	Events  EventsConfig  `yaml:"events"`
	Neo4j   Neo4jConfig   `yaml:"neo4j"`
	Mail    MailConfig    `yaml:"mail"`

	// baseDir anchors relative data paths at the config file's directory.
	baseDir string
}

type DataConfig struct {
	Dataset    string `yaml:"dataset"`
	HotLayer   string `yaml:"hot_layer"`
	RawRecords string `yaml:"raw_records"`
}

type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type LogConfig struct {
	Mode string `yaml:"mode"`
}

type ArchiveConfig struct {
	DSN string `yaml:"dsn"`
}

type EventsConfig struct {
	NATSURL string `yaml:"nats_url"`
}

type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type MailConfig struct {
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
	APIKey    string `yaml:"-"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}
	cfg.baseDir = filepath.Dir(path)

	applyDefaults(&cfg)
	applyEnv(&cfg, os.LookupEnv)

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

// ResolvePath returns p unchanged when absolute, otherwise relative to the
// directory the config was loaded from.
func (c *ProjectConfig) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

func applyDefaults(cfg *ProjectConfig) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultAddr
	}
	if cfg.Log.Mode == "" {
		cfg.Log.Mode = defaultLogMode
	}
	if cfg.Neo4j.Database == "" {
		cfg.Neo4j.Database = defaultNeo4jDB
	}
	if cfg.Mail.FromName == "" {
		cfg.Mail.FromName = defaultFromName
	}
}

func applyEnv(cfg *ProjectConfig, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvHTTPAddr); ok && strings.TrimSpace(v) != "" {
		cfg.Server.Addr = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvArchiveDSN); ok {
		cfg.Archive.DSN = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvNATSURL); ok {
		cfg.Events.NATSURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvNeo4jPassword); ok {
		cfg.Neo4j.Password = v
	}
	if v, ok := lookup(EnvSendGridKey); ok {
		cfg.Mail.APIKey = strings.TrimSpace(v)
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}

	required := []struct {
		key, value string
	}{
		{"data.dataset", cfg.Data.Dataset},
		{"data.hot_layer", cfg.Data.HotLayer},
		{"data.raw_records", cfg.Data.RawRecords},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s is required", r.key)
		}
	}

	if dsn := cfg.Archive.DSN; dsn != "" {
		if _, err := ArchiveDriver(dsn); err != nil {
			return err
		}
	}

	switch strings.ToLower(cfg.Log.Mode) {
	case "development", "dev", "production", "prod":
	default:
		return fmt.Errorf("unsupported log mode: %s", cfg.Log.Mode)
	}

	return nil
}

// ArchiveDriver names the archive backend a DSN selects: "postgres" or
// "sqlite".
func ArchiveDriver(dsn string) (string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres", nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported archive dsn scheme: %q", dsn)
	}
}
