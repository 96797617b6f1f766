package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "techstartups/internal/adapters/http"
	mongostore "techstartups/internal/adapters/mongodb"
	pg "techstartups/internal/adapters/postgres"
	"techstartups/internal/assets"
	"techstartups/internal/badge"
	"techstartups/internal/config"
	"techstartups/internal/ports"
	badgesvc "techstartups/internal/services/badges"
	dirsvc "techstartups/internal/services/directory"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, cfgErr := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	if cfgErr != nil {
		return fmt.Errorf("load config: %w", cfgErr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	files := assets.FS(cfg.AssetsDir)
	directory := dirsvc.New(store, logger)
	badges := badgesvc.New(directory, badge.NewRenderer(files), cfg.BaseURL)
	srv, err := httpadapter.New(directory, badges, store, httpadapter.Options{
		BaseURL:        cfg.BaseURL,
		DiscordURL:     cfg.DiscordURL,
		Assets:         files,
		RequestTimeout: cfg.RequestTimeout,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("build http server: %w", err)
	}

	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      srv.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()
	logger.Info("listening", "addr", cfg.ListenAddr, "env", cfg.Env, "base_url", cfg.BaseURL)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return httpServer.Shutdown(shutdownCtx)
}

// openStore picks the adapter from the DATABASE_URL scheme. The returned
// pool is shared by every request until closeStore runs.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.Store, func(), error) {
	u, err := url.Parse(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	switch u.Scheme {
	case "mongodb", "mongodb+srv":
		db, err := mongostore.Connect(ctx, cfg.DatabaseURL, cfg.MongoDatabase, cfg.MaxConns, cfg.MinConns)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("connected to mongodb", "database", cfg.MongoDatabase)
		return db, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.Close(ctx); err != nil {
				logger.Warn("mongodb disconnect", "error", err)
			}
		}, nil
	case "postgres", "postgresql":
		db, err := pg.Connect(ctx, cfg.DatabaseURL, cfg.MaxConns, cfg.MinConns)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Migrate {
			if err := db.Migrate(ctx); err != nil {
				db.Close()
				return nil, nil, err
			}
			logger.Info("postgres migrations applied")
		}
		logger.Info("connected to postgres")
		return db, db.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported DATABASE_URL scheme %q", u.Scheme)
}

var (
	_ ports.Store = (*mongostore.DB)(nil)
	_ ports.Store = (*pg.DB)(nil)
)
