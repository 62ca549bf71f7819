package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cse-motors/dealership/internal/core/domain"
	"github.com/cse-motors/dealership/internal/core/ports"
)

type ReportsHandler struct {
	inventory ports.InventoryService
	pages     *PageBuilder
	log       zerolog.Logger
}

func NewReportsHandler(inventory ports.InventoryService, pages *PageBuilder, log zerolog.Logger) *ReportsHandler {
	return &ReportsHandler{inventory: inventory, pages: pages, log: log}
}

type reportsPage struct {
	Summary *domain.ReportSummary
}

// Dashboard renders the aggregate report view. A summary failure degrades to
// an on-page notice rather than the crash page.
func (h *ReportsHandler) Dashboard(c echo.Context) error {
	summary, err := h.inventory.Summary(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("load report summary")
		summary = nil
	}
	return c.Render(http.StatusOK, "reports/dashboard", h.pages.Build(c, "Reports Dashboard", reportsPage{Summary: summary}))
}
