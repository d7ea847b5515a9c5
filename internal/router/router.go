package router // package router defines how HTTP routes are registered

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/handler"
)

// Middlewares are applied to groups of routes.  Nil entries are skipped.
type Middlewares struct {
	Cache     echo.MiddlewareFunc // pages that do not depend on the clock
	RateLimit echo.MiddlewareFunc // form submissions and deletes
}

func (m Middlewares) reads() []echo.MiddlewareFunc {
	if m.Cache == nil {
		return nil
	}
	return []echo.MiddlewareFunc{m.Cache}
}

func (m Middlewares) writes() []echo.MiddlewareFunc {
	if m.RateLimit == nil {
		return nil
	}
	return []echo.MiddlewareFunc{m.RateLimit}
}

// RegisterRoutes maps every page and form of the site onto h.  Pages
// that count or split shows into past and upcoming are built fresh on
// every request and never go through the cache.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, mw Middlewares) {
	reads, writes := mw.reads(), mw.writes()

	e.GET("/healthz", h.Health)
	e.GET("/", h.Home)

	venues := e.Group("/venues")
	venues.GET("", h.ListVenues)
	venues.POST("/search", h.SearchVenues)
	venues.GET("/create", h.NewVenueForm)
	venues.POST("/create", h.CreateVenue, writes...)
	venues.GET("/:id", h.ShowVenue)
	venues.DELETE("/:id", h.DeleteVenue, writes...)
	venues.GET("/:id/edit", h.EditVenueForm)
	venues.POST("/:id/edit", h.UpdateVenue, writes...)

	artists := e.Group("/artists")
	artists.GET("", h.ListArtists, reads...)
	artists.POST("/search", h.SearchArtists)
	artists.GET("/create", h.NewArtistForm)
	artists.POST("/create", h.CreateArtist, writes...)
	artists.GET("/:id", h.ShowArtist)
	artists.DELETE("/:id", h.DeleteArtist, writes...)
	artists.GET("/:id/edit", h.EditArtistForm)
	artists.POST("/:id/edit", h.UpdateArtist, writes...)

	shows := e.Group("/shows")
	shows.GET("", h.ListShows, reads...)
	shows.GET("/create", h.NewShowForm)
	shows.POST("/create", h.CreateShow, writes...)
}

// ErrorHandler renders every error that escapes a handler, unmatched
// routes included, as a small JSON document.  Server errors are logged
// and never expose their cause.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		msg := "internal server error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			switch code {
			case http.StatusNotFound:
				msg = "not found"
			case http.StatusMethodNotAllowed:
				msg = "method not allowed"
			default:
				if code < http.StatusInternalServerError {
					msg = http.StatusText(code)
					if m, ok := he.Message.(string); ok && m != "" {
						msg = m
					}
				}
			}
		}
		if code >= http.StatusInternalServerError {
			logger.Error("unhandled error", "err", err, "method", c.Request().Method, "path", c.Request().URL.Path)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, echo.Map{"error": msg})
		}
		if werr != nil {
			logger.Error("write error response failed", "err", werr)
		}
	}
}
