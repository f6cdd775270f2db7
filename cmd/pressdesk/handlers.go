package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"pressdesk/internal/config"
	"pressdesk/internal/scheduler"
	"pressdesk/internal/service"
	"pressdesk/internal/session"
	"pressdesk/internal/store"
	"pressdesk/pkg/feed"
	"pressdesk/pkg/server"
	"pressdesk/pkg/wordpress"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}

func buildRemote(cfg *config.Config, logger *slog.Logger) *wordpress.Client {
	return wordpress.New(wordpress.Config{
		BaseURL:  cfg.WordPress.URL,
		Username: cfg.WordPress.Username,
		Password: cfg.WordPress.Password,
		Timeout:  cfg.WordPress.Timeout,
	}, logger)
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := setupLogger(cfg.LogLevel)

	overrides, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer overrides.Close()

	remote := buildRemote(cfg, logger)
	sessions := session.NewStore()

	authSvc := service.NewAuthService(remote, sessions, logger)
	postSvc := service.NewPostService(remote, overrides, logger)
	feedFetcher := feed.New(cfg.WordPress.URL)

	if port == 0 {
		port = cfg.Server.Port
	}
	srv := server.New(authSvc, postSvc, feedFetcher, sessions, logger, port)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	if cfg.Reconcile.Enabled {
		sched := scheduler.New(postSvc, cfg.Reconcile.ParseInterval(), logger)
		g.Go(func() error {
			if err := sched.Run(gctx); err != nil && err != context.Canceled {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

func runCheck() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := setupLogger(cfg.LogLevel)
	remote := buildRemote(cfg, logger)

	ctx := context.Background()
	if !remote.Probe(ctx) {
		return fmt.Errorf("cannot reach %s with the configured service credentials", cfg.WordPress.URL)
	}

	user, err := remote.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("connected, but service account lookup failed: %w", err)
	}

	fmt.Printf("connected to %s as %s (id %d)\n", cfg.WordPress.URL, user.Name, user.ID)
	return nil
}

func runReconcile() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := setupLogger(cfg.LogLevel)

	overrides, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer overrides.Close()

	postSvc := service.NewPostService(buildRemote(cfg, logger), overrides, logger)

	stats, err := postSvc.Reconcile(context.Background())
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	fmt.Printf("checked %d overrides, removed %d orphans, skipped %d\n",
		stats.Checked, stats.Removed, stats.Skipped)
	return nil
}

func runFeed(limit int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fetcher := feed.New(cfg.WordPress.URL)
	title, items, err := fetcher.Fetch(context.Background())
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}

	fmt.Printf("%s (%s)\n", title, fetcher.FeedURL())
	for i, item := range items {
		if limit > 0 && i >= limit {
			break
		}
		fmt.Printf("  %s  %s\n", item.Published.Format("2006-01-02"), item.Title)
	}
	return nil
}
