package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/deoxyribo/limeblog/internal/auth"
	"github.com/deoxyribo/limeblog/internal/backup"
	"github.com/deoxyribo/limeblog/internal/config"
	"github.com/deoxyribo/limeblog/internal/store"
)

func main() {
	cfg := config.Load()

	setupLogging(cfg.LogFormat)

	fs := afero.NewOsFs()
	for _, dir := range []string{cfg.DataDir, cfg.UploadsDir} {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			slog.Error("failed to create directory", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	secret, err := auth.LoadOrCreateSecret(fs, cfg.DataDir)
	if err != nil {
		slog.Error("failed to load secret key", "error", err)
		os.Exit(1)
	}

	posts := store.NewPostStore(fs, cfg.DataDir, cfg.UploadsDir)
	users := store.NewUserStore(fs, cfg.DataDir)
	authorizer := auth.NewAuthorizer(users, secret, time.Duration(cfg.SessionExpireHours)*time.Hour)

	if cfg.BackupSchedule != "" {
		runner, err := backup.New(fs, cfg.DataDir, cfg.BackupSchedule)
		if err != nil {
			slog.Error("invalid backup schedule", "error", err)
			os.Exit(1)
		}
		runner.Start()
		defer runner.Stop()
		slog.Info("backups enabled", "schedule", cfg.BackupSchedule)
	}

	r := newRouter(cfg, fs, posts, users, authorizer)

	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting server with TLS", "addr", addr)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r)
	} else {
		slog.Info("starting server", "addr", addr)
		err = http.ListenAndServe(addr, r)
	}
	if err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogging(format string) {
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}
