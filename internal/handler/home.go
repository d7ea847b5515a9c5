package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/flash"
	"github.com/iliyamo/fyyur/internal/view"
)

// Home handles GET / and lists the most recently created artists and
// venues together with any pending flash messages.
func (h *Handler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	artists, err := h.Artists.ListRecent(ctx, view.HomeLimit)
	if err != nil {
		return h.readFailure(c, "artist", err)
	}
	venues, err := h.Venues.ListRecent(ctx, view.HomeLimit)
	if err != nil {
		return h.readFailure(c, "venue", err)
	}
	home := view.Home(artists, venues)
	return c.JSON(http.StatusOK, echo.Map{
		"artists":  home.Artists,
		"venues":   home.Venues,
		"messages": flash.Pop(c, h.Secret),
	})
}
