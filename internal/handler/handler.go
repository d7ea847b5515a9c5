// Package handler exposes the HTTP handlers of the listing site.  Every
// handler turns failures into a JSON response itself: validation errors
// become 400 with per-field reasons, missing ids 404, and store failures
// a logged 500 with a message naming the entity.
package handler

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/flash"
	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
)

// Publisher delivers listing events to the broker.
type Publisher interface {
	Publish(ctx context.Context, ev queue.ListingEvent) error
}

// Invalidator drops cached responses after a write.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Handler bundles the repositories and collaborators the handlers need.
type Handler struct {
	DB      *sql.DB
	Venues  *repository.VenueRepo
	Artists *repository.ArtistRepo
	Shows   *repository.ShowRepo

	Events Publisher   // optional
	Cache  Invalidator // optional
	Secret string      // signs flash cookies
	Logger *slog.Logger
	Now    func() time.Time
}

// New constructs a Handler over db and panics if db is nil.
func New(db *sql.DB, secret string, logger *slog.Logger) *Handler {
	if db == nil {
		panic("nil db passed to handler.New")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		DB:      db,
		Venues:  repository.NewVenueRepo(db),
		Artists: repository.NewArtistRepo(db),
		Shows:   repository.NewShowRepo(db),
		Secret:  secret,
		Logger:  logger,
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now().UTC()
	}
	return h.Now()
}

// parseID reads the :id path parameter.  Ids that are not positive
// integers cannot match a row, so callers answer them with 404.
func parseID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

func notFound(c echo.Context, entity string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": entity + " not found"})
}

// fail answers a failed write.  Validation errors list the failing
// fields; anything else is logged and reported as a 500.
func (h *Handler) fail(c echo.Context, msg string, err error) error {
	h.flash(c, flash.Error, msg)
	var ve *form.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg, "fields": ve.Fields})
	}
	h.Logger.Error(msg, "err", err, "path", c.Request().URL.Path)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
}

// readFailure answers a failed read.
func (h *Handler) readFailure(c echo.Context, entity string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, entity)
	}
	h.Logger.Error("read failed", "entity", entity, "err", err, "path", c.Request().URL.Path)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load " + entity})
}

func (h *Handler) flash(c echo.Context, category, msg string) {
	if err := flash.Set(c, h.Secret, category, msg); err != nil {
		h.Logger.Warn("set flash failed", "err", err)
	}
}

// written runs the best-effort side effects of a successful write:
// cached listings are dropped and a listing event is published.
func (h *Handler) written(c echo.Context, ev queue.ListingEvent) {
	ctx := c.Request().Context()
	if h.Cache != nil {
		if err := h.Cache.Invalidate(ctx); err != nil {
			h.Logger.Warn("cache invalidation failed", "err", err)
		}
	}
	if h.Events != nil {
		if err := h.Events.Publish(ctx, ev); err != nil {
			h.Logger.Warn("publish listing event failed", "err", err, "entity", ev.Entity, "id", ev.ID)
		}
	}
}

func bindFailure(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
}
