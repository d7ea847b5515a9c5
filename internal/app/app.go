// Package app wires configuration, the store and the optional Redis and
// RabbitMQ collaborators into one explicit application context.
package app

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/router"
)

// App is the running application.
type App struct {
	Config  config.Config
	DB      *sql.DB
	Redis   *redis.Client // nil when Redis is unavailable
	Logger  *slog.Logger
	Echo    *echo.Echo
	Handler *handler.Handler
}

// Options carries the collaborators that are optional or swapped in tests.
type Options struct {
	Redis     *redis.Client
	Events    handler.Publisher
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
}

// New builds the echo server with its middleware and routes.
func New(cfg config.Config, db *sql.DB, logger *slog.Logger, opts Options) *App {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Debug
	e.HTTPErrorHandler = router.ErrorHandler(logger)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.RequestLoggerWithConfig(requestLogger(logger)))

	h := handler.New(db, cfg.SecretKey, logger)
	h.Events = opts.Events
	if opts.Redis != nil && opts.Cache.Enabled {
		h.Cache = middleware.CacheInvalidator{Client: opts.Redis, Prefix: opts.Cache.Prefix}
	}

	router.RegisterRoutes(e, h, router.Middlewares{
		Cache:     middleware.NewRedisCache(opts.Cache, opts.Redis),
		RateLimit: middleware.NewTokenBucket(opts.RateLimit, opts.Redis, logger),
	})

	return &App{
		Config:  cfg,
		DB:      db,
		Redis:   opts.Redis,
		Logger:  logger,
		Echo:    e,
		Handler: h,
	}
}

// Start serves HTTP on the configured port until Shutdown is called.
func (a *App) Start() error {
	return a.Echo.Start(":" + a.Config.Port)
}

// Shutdown stops accepting requests, waits for in-flight ones and
// releases the database and Redis connections.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if cerr := a.DB.Close(); err == nil {
		err = cerr
	}
	return err
}

// NewLogger returns a text logger for development and a JSON logger
// otherwise.
func NewLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Debug || cfg.Env == "dev" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func requestLogger(logger *slog.Logger) echomw.RequestLoggerConfig {
	return echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.Error("request", append(attrs, "err", v.Error)...)
				return nil
			}
			logger.Info("request", attrs...)
			return nil
		},
	}
}
