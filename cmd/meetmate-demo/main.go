package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/johnquangdev/meetmate/internal/adapter/handler"
	"github.com/johnquangdev/meetmate/internal/infrastructure/memdb"
	"github.com/johnquangdev/meetmate/pkg/config"
	"github.com/johnquangdev/meetmate/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	store := memdb.New()
	if cfg.Demo.Seed {
		memdb.Seed(store)
		zl.Info("demo.seeded",
			zap.String("pre_meeting_id", memdb.SeedPreMeetingID),
			zap.String("in_meeting_id", memdb.SeedInMeetingID),
			zap.String("post_meeting_id", memdb.SeedPostMeetingID),
		)
	}

	e := handler.NewServer(store, cfg.Demo.Token, zl)

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
		Output: os.Stderr,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	// Start server
	g.Go(func() error {
		addr := cfg.DemoAddr()
		zl.Info("demo.server.starting",
			zap.String("addr", addr),
			zap.String("base_url", "http://"+addr+handler.APIPrefix),
			zap.Bool("auth", cfg.Demo.Token != ""),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		zl.Info("demo.server.stopping")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Demo.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zl.Error("demo.server.failed", zap.Error(err))
		os.Exit(1)
	}
	zl.Info("demo.server.stopped")
}
