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

// ListArtists handles GET /artists.
func (h *Handler) ListArtists(c echo.Context) error {
	artists, err := h.Artists.ListAll(c.Request().Context())
	if err != nil {
		return h.readFailure(c, "artist", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"artists": view.ArtistList(artists)})
}

// SearchArtists handles POST /artists/search.  Only names are matched.
func (h *Handler) SearchArtists(c echo.Context) error {
	ctx := c.Request().Context()
	term := strings.TrimSpace(c.FormValue("search_term"))
	artists, err := h.Artists.Search(ctx, term)
	if err != nil {
		return h.readFailure(c, "artist", err)
	}
	shows, err := h.Shows.ListAll(ctx)
	if err != nil {
		return h.readFailure(c, "show", err)
	}
	return c.JSON(http.StatusOK, view.ArtistSearch(term, artists, view.UpcomingByArtist(shows, h.now())))
}

// ShowArtist handles GET /artists/:id.
func (h *Handler) ShowArtist(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, "artist")
	}
	ctx := c.Request().Context()
	a, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		return h.readFailure(c, "artist", err)
	}
	listings, err := h.Shows.ListByArtist(ctx, id)
	if err != nil {
		return h.readFailure(c, "show", err)
	}
	return c.JSON(http.StatusOK, view.ArtistDetail(a, listings, h.now()))
}

// NewArtistForm handles GET /artists/create.
func (h *Handler) NewArtistForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"form":    form.ArtistForm{Genres: []string{}},
		"choices": view.FormChoices(),
	})
}

// CreateArtist handles POST /artists/create.
func (h *Handler) CreateArtist(c echo.Context) error {
	var f form.ArtistForm
	if err := c.Bind(&f); err != nil {
		return bindFailure(c)
	}
	failed := "An error occurred. Artist " + strings.TrimSpace(f.Name) + " could not be listed."
	a, err := f.Artist()
	if err != nil {
		return h.fail(c, failed, err)
	}
	if err := h.Artists.Create(c.Request().Context(), a); err != nil {
		return h.fail(c, failed, err)
	}
	msg := "Artist " + a.Name + " was successfully listed!"
	h.flash(c, flash.Info, msg)
	h.written(c, queue.NewListingEvent(queue.ActionCreated, queue.EntityArtist, a.ID, a.Name))
	return c.JSON(http.StatusCreated, echo.Map{"message": msg, "id": a.ID})
}

// EditArtistForm handles GET /artists/:id/edit.
func (h *Handler) EditArtistForm(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, "artist")
	}
	a, err := h.Artists.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.readFailure(c, "artist", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":      a.ID,
		"form":    form.ArtistFormFrom(a),
		"choices": view.FormChoices(),
	})
}

// UpdateArtist handles POST /artists/:id/edit.
func (h *Handler) UpdateArtist(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, "artist")
	}
	ctx := c.Request().Context()
	existing, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		return h.readFailure(c, "artist", err)
	}
	var f form.ArtistForm
	if err := c.Bind(&f); err != nil {
		return bindFailure(c)
	}
	failed := "An error occurred. Artist " + existing.Name + " could not be updated."
	a, err := f.Artist()
	if err != nil {
		return h.fail(c, failed, err)
	}
	a.ID = id
	if err := h.Artists.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "artist")
		}
		return h.fail(c, failed, err)
	}
	msg := "Artist " + a.Name + " was successfully updated!"
	h.flash(c, flash.Info, msg)
	h.written(c, queue.NewListingEvent(queue.ActionUpdated, queue.EntityArtist, a.ID, a.Name))
	return c.JSON(http.StatusOK, echo.Map{"message": msg, "id": a.ID})
}

// DeleteArtist handles DELETE /artists/:id, removing the artist's shows
// as well.
func (h *Handler) DeleteArtist(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, "artist")
	}
	ctx := c.Request().Context()
	a, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		return h.readFailure(c, "artist", err)
	}
	if err := h.Artists.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "artist")
		}
		return h.fail(c, "An error occurred. Artist "+a.Name+" could not be deleted.", err)
	}
	h.flash(c, flash.Info, "Artist "+a.Name+" was successfully deleted!")
	h.written(c, queue.NewListingEvent(queue.ActionDeleted, queue.EntityArtist, a.ID, a.Name))
	return c.Redirect(http.StatusSeeOther, "/")
}
