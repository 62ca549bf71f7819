package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cse-motors/dealership/internal/api/handler"
	"github.com/cse-motors/dealership/internal/core/domain"
)

type errorPage struct {
	Message string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders the
// site's HTML error pages: a 404 page for missing resources and a generic
// crash page for everything else. Unexpected errors are logged server-side
// with method and path; raw error detail never reaches the client.
func NewHTTPErrorHandler(pages *handler.PageBuilder, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, message := resolveError(err, log, c)

		name := "errors/500"
		title := "Server Error"
		if code == http.StatusNotFound {
			name = "errors/404"
			title = "404 Not Found"
		}

		page := pages.Bare(c, title, errorPage{Message: message})
		if rerr := c.Render(code, name, page); rerr != nil {
			// Rendering the error page failed too; fall back to plain text.
			log.Error().Err(rerr).Msg("render error page")
			_ = c.String(code, message)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (router 404/405, bind failures).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusNotFound {
			return http.StatusNotFound, "Sorry, we appear to have lost that page."
		}
		return he.Code, http.StatusText(he.Code)
	}

	// Known domain errors with a user-facing page.
	switch {
	case errors.Is(err, domain.ErrVehicleNotFound):
		return http.StatusNotFound, "Sorry, that vehicle could not be found."
	case errors.Is(err, domain.ErrClassificationNotFound):
		return http.StatusNotFound, "Sorry, that classification could not be found."
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "Sorry, that account could not be found."
	}

	// Unexpected error: log the real cause, show the generic crash page.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Oh no! There was a crash. Maybe try a different route?"
}
