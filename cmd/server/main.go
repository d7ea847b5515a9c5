package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/fyyur/internal/app"
	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/service"
)

func main() {
	_ = godotenv.Load() // a missing .env is fine; the environment wins

	cfg := config.Load()
	logger := app.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	if cfg.DBMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Error("migrate database", "err", err)
			os.Exit(1)
		}
	}

	opts := app.Options{
		Redis:     config.NewRedisClient(ctx),
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
	}
	if opts.Redis == nil {
		logger.Warn("redis unavailable; response cache and rate limiting disabled")
	}

	consumerDone := make(chan struct{})
	if cfg.EventsEnabled {
		opts.Events = service.NewPublisher(cfg.AMQPURL, logger)
		consumer := &queue.Consumer{URL: cfg.AMQPURL, Dir: cfg.ListingLogDir, Logger: logger}
		go func() {
			defer close(consumerDone)
			_ = consumer.Run(ctx)
		}()
	} else {
		opts.Events = service.Discard{}
		close(consumerDone)
	}

	a := app.New(cfg, db, logger, opts)
	go func() {
		logger.Info("listening", "port", cfg.Port, "env", cfg.Env)
		if err := a.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	<-consumerDone
	logger.Info("bye")
}
