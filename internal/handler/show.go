package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/flash"
	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/view"
)

const showFailed = "An error occurred. Show could not be listed."

// ListShows handles GET /shows.
func (h *Handler) ListShows(c echo.Context) error {
	listings, err := h.Shows.ListListings(c.Request().Context())
	if err != nil {
		return h.readFailure(c, "show", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": view.Shows(listings)})
}

// NewShowForm handles GET /shows/create.  The start time defaults to now
// and the artists and venues to pick from are listed alongside.
func (h *Handler) NewShowForm(c echo.Context) error {
	ctx := c.Request().Context()
	artists, err := h.Artists.ListAll(ctx)
	if err != nil {
		return h.readFailure(c, "artist", err)
	}
	venues, err := h.Venues.ListAll(ctx)
	if err != nil {
		return h.readFailure(c, "venue", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"form":    form.NewShowForm(h.now()),
		"artists": view.ArtistList(artists),
		"venues":  view.VenueList(venues),
	})
}

// CreateShow handles POST /shows/create.  A show naming an artist or
// venue that does not exist is rejected as a field error.
func (h *Handler) CreateShow(c echo.Context) error {
	var f form.ShowForm
	if err := c.Bind(&f); err != nil {
		return bindFailure(c)
	}
	s, err := f.Show()
	if err != nil {
		return h.fail(c, showFailed, err)
	}
	if err := h.Shows.Create(c.Request().Context(), s); err != nil {
		switch {
		case errors.Is(err, repository.ErrArtistNotFound):
			err = &form.ValidationError{Fields: map[string]string{"artist_id": "artist does not exist"}}
		case errors.Is(err, repository.ErrVenueNotFound):
			err = &form.ValidationError{Fields: map[string]string{"venue_id": "venue does not exist"}}
		}
		return h.fail(c, showFailed, err)
	}
	msg := "Show was successfully listed!"
	h.flash(c, flash.Info, msg)
	h.written(c, queue.NewListingEvent(queue.ActionCreated, queue.EntityShow, s.ID, view.FormatTime(s.StartTime)))
	return c.JSON(http.StatusCreated, echo.Map{"message": msg, "id": s.ID})
}
