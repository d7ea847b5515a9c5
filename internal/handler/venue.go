package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/flash"
	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/view"
)

// ListVenues handles GET /venues and groups every venue under its city.
func (h *Handler) ListVenues(c echo.Context) error {
	ctx := c.Request().Context()
	locations, err := h.Venues.ListLocations(ctx)
	if err != nil {
		return h.readFailure(c, "venue", err)
	}
	shows, err := h.Shows.ListAll(ctx)
	if err != nil {
		return h.readFailure(c, "show", err)
	}
	upcoming := view.UpcomingByVenue(shows, h.now())

	areas := make([]view.AreaView, 0, len(locations))
	for _, loc := range locations {
		venues, err := h.Venues.ListByLocation(ctx, loc)
		if err != nil {
			return h.readFailure(c, "venue", err)
		}
		areas = append(areas, view.Area(loc, venues, upcoming))
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

// SearchVenues handles POST /venues/search.  The search_term form field
// is matched, ignoring case, against name, city and state.
func (h *Handler) SearchVenues(c echo.Context) error {
	ctx := c.Request().Context()
	term := strings.TrimSpace(c.FormValue("search_term"))
	venues, err := h.Venues.Search(ctx, term)
	if err != nil {
		return h.readFailure(c, "venue", err)
	}
	shows, err := h.Shows.ListAll(ctx)
	if err != nil {
		return h.readFailure(c, "show", err)
	}
	return c.JSON(http.StatusOK, view.VenueSearch(term, venues, view.UpcomingByVenue(shows, h.now())))
}

// ShowVenue handles GET /venues/:id.
func (h *Handler) ShowVenue(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, "venue")
	}
	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return h.readFailure(c, "venue", err)
	}
	listings, err := h.Shows.ListByVenue(ctx, id)
	if err != nil {
		return h.readFailure(c, "show", err)
	}
	return c.JSON(http.StatusOK, view.VenueDetail(v, listings, h.now()))
}

// NewVenueForm handles GET /venues/create.
func (h *Handler) NewVenueForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"form":    form.VenueForm{Genres: []string{}},
		"choices": view.FormChoices(),
	})
}

// CreateVenue handles POST /venues/create.
func (h *Handler) CreateVenue(c echo.Context) error {
	var f form.VenueForm
	if err := c.Bind(&f); err != nil {
		return bindFailure(c)
	}
	failed := "An error occurred. Venue " + strings.TrimSpace(f.Name) + " could not be listed."
	v, err := f.Venue()
	if err != nil {
		return h.fail(c, failed, err)
	}
	if err := h.Venues.Create(c.Request().Context(), v); err != nil {
		return h.fail(c, failed, err)
	}
	msg := "Venue " + v.Name + " was successfully listed!"
	h.flash(c, flash.Info, msg)
	h.written(c, queue.NewListingEvent(queue.ActionCreated, queue.EntityVenue, v.ID, v.Name))
	return c.JSON(http.StatusCreated, echo.Map{"message": msg, "id": v.ID})
}

// EditVenueForm handles GET /venues/:id/edit and prefills the form with
// the stored venue.
func (h *Handler) EditVenueForm(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, "venue")
	}
	v, err := h.Venues.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.readFailure(c, "venue", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":      v.ID,
		"form":    form.VenueFormFrom(v),
		"choices": view.FormChoices(),
	})
}

// UpdateVenue handles POST /venues/:id/edit.  The submitted values are
// validated with the same rules as a new venue.
func (h *Handler) UpdateVenue(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, "venue")
	}
	ctx := c.Request().Context()
	existing, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return h.readFailure(c, "venue", err)
	}
	var f form.VenueForm
	if err := c.Bind(&f); err != nil {
		return bindFailure(c)
	}
	failed := "An error occurred. Venue " + existing.Name + " could not be updated."
	v, err := f.Venue()
	if err != nil {
		return h.fail(c, failed, err)
	}
	v.ID = id
	if err := h.Venues.Update(ctx, v); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "venue")
		}
		return h.fail(c, failed, err)
	}
	msg := "Venue " + v.Name + " was successfully updated!"
	h.flash(c, flash.Info, msg)
	h.written(c, queue.NewListingEvent(queue.ActionUpdated, queue.EntityVenue, v.ID, v.Name))
	return c.JSON(http.StatusOK, echo.Map{"message": msg, "id": v.ID})
}

// DeleteVenue handles DELETE /venues/:id.  The venue's shows go with it.
// On success the client is redirected home, where the flash is shown.
func (h *Handler) DeleteVenue(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, "venue")
	}
	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return h.readFailure(c, "venue", err)
	}
	if err := h.Venues.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "venue")
		}
		return h.fail(c, "An error occurred. Venue "+v.Name+" could not be deleted.", err)
	}
	h.flash(c, flash.Info, "Venue "+v.Name+" was successfully deleted!")
	h.written(c, queue.NewListingEvent(queue.ActionDeleted, queue.EntityVenue, v.ID, v.Name))
	return c.Redirect(http.StatusSeeOther, "/")
}
