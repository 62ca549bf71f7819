package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// BaseHandler serves the home page and the deliberate-failure route.
type BaseHandler struct {
	pages *PageBuilder
}

func NewBaseHandler(pages *PageBuilder) *BaseHandler {
	return &BaseHandler{pages: pages}
}

func (h *BaseHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home", h.pages.Build(c, "Home", nil))
}

// TriggerError fails on purpose so the crash page and the central error
// handler stay exercised end to end.
func (h *BaseHandler) TriggerError(echo.Context) error {
	return errors.New("intentional server error")
}
