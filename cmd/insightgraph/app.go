package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"insightgraph/internal/config"
	"insightgraph/internal/dataset"
	"insightgraph/internal/events"
	"insightgraph/internal/logger"
	"insightgraph/internal/mail"
	"insightgraph/internal/store"
	"insightgraph/internal/store/postgres"
	"insightgraph/internal/store/sqlite"
)

// app is the wired runtime shared by the commands that need a store.
type app struct {
	cfg   *config.ProjectConfig
	log   *logger.Logger
	store *store.Store
}

func loadConfig() (*config.ProjectConfig, *logger.Logger, error) {
	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func dataSource(cfg *config.ProjectConfig) dataset.FileSource {
	return dataset.FileSource{Paths: dataset.Paths{
		Dataset:    cfg.ResolvePath(cfg.Data.Dataset),
		HotLayer:   cfg.ResolvePath(cfg.Data.HotLayer),
		RawRecords: cfg.ResolvePath(cfg.Data.RawRecords),
	}}
}

func openApp(ctx context.Context) (*app, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}

	opts := []store.Option{store.WithLogger(log)}

	archive, err := openArchive(ctx, cfg.Archive.DSN)
	if err != nil {
		log.Sync()
		return nil, err
	}
	if archive != nil {
		opts = append(opts, store.WithArchive(archive))
	}

	if cfg.Events.NATSURL != "" {
		publisher, err := events.NewNATSPublisher(cfg.Events.NATSURL)
		if err != nil {
			if archive != nil {
				_ = archive.Close(ctx)
			}
			log.Sync()
			return nil, err
		}
		opts = append(opts, store.WithPublisher(publisher))
	}

	s := store.New(dataSource(cfg), opts...)
	if err := s.Initialize(ctx); err != nil {
		_ = s.Close(ctx)
		log.Sync()
		return nil, err
	}

	return &app{cfg: cfg, log: log, store: s}, nil
}

func (a *app) Close(ctx context.Context) error {
	err := a.store.Close(ctx)
	a.log.Sync()
	return err
}

func openArchive(ctx context.Context, dsn string) (store.Archive, error) {
	if dsn == "" {
		return nil, nil
	}
	driver, err := config.ArchiveDriver(dsn)
	if err != nil {
		return nil, err
	}

	var archive store.Archive
	switch driver {
	case "postgres":
		archive, err = postgres.New(ctx, dsn)
	case "sqlite":
		archive, err = sqlite.New(ctx, dsn)
	}
	if err != nil {
		return nil, err
	}
	if err := archive.EnsureSchema(ctx); err != nil {
		_ = archive.Close(ctx)
		return nil, err
	}
	return archive, nil
}

var errMailNotConfigured = errors.New("mail is not configured: set " + config.EnvSendGridKey)

// openMailer returns nil, nil when no API key is configured.
func openMailer(cfg *config.ProjectConfig, log *logger.Logger) (*mail.Client, error) {
	if cfg.Mail.APIKey == "" {
		return nil, nil
	}
	return mail.New(log, mail.Config{
		APIKey:           cfg.Mail.APIKey,
		DefaultFromEmail: cfg.Mail.FromEmail,
		DefaultFromName:  cfg.Mail.FromName,
		MaxRetries:       3,
	})
}

func printJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
