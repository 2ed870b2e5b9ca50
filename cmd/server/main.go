package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/hartline-properties/leasegate/internal/api"
	"github.com/hartline-properties/leasegate/internal/config"
	"github.com/hartline-properties/leasegate/internal/database"
	"github.com/hartline-properties/leasegate/internal/docstore"
	"github.com/hartline-properties/leasegate/internal/logger"
	"github.com/hartline-properties/leasegate/internal/ratelimit"
	"github.com/hartline-properties/leasegate/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	zlog := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("connect database", zap.Error(err))
	}
	defer pool.Close()
	if err := database.EnsureSchema(ctx, pool); err != nil {
		zlog.Fatal("ensure schema", zap.Error(err))
	}

	store, err := docstore.New(cfg, zlog)
	if err != nil {
		zlog.Fatal("init document storage", zap.Error(err))
	}
	if err := store.EnsureBucket(ctx); err != nil {
		zlog.Fatal("ensure bucket", zap.Error(err))
	}

	repo := repository.NewApplicationRepository(pool)
	limiter := ratelimit.New(cfg.RateLimitWindow, cfg.RateLimitMax)

	srv := api.New(cfg, repo, store, limiter, zlog)
	if err := srv.Run(ctx); err != nil {
		zlog.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
