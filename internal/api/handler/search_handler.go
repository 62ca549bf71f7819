package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cse-motors/dealership/internal/core/domain"
	"github.com/cse-motors/dealership/internal/core/ports"
)

type SearchHandler struct {
	inventory ports.InventoryService
	pages     *PageBuilder
}

func NewSearchHandler(inventory ports.InventoryService, pages *PageBuilder) *SearchHandler {
	return &SearchHandler{inventory: inventory, pages: pages}
}

type searchPage struct {
	searchForm
	Searched bool
	Results  []domain.Vehicle
}

// BuildSearch renders the empty search form.
func (h *SearchHandler) BuildSearch(c echo.Context) error {
	return c.Render(http.StatusOK, "search/search", h.pages.Build(c, "Inventory Search", searchPage{}))
}

// Search runs the posted criteria. A submission with no filters re-renders
// the form with a notice instead of listing the whole inventory.
func (h *SearchHandler) Search(c echo.Context) error {
	var form searchForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	filter := form.filter()
	if filter.Empty() {
		page := h.pages.Build(c, "Inventory Search", searchPage{searchForm: form})
		page.Errors = []string{"Please select at least one search filter."}
		return c.Render(http.StatusBadRequest, "search/search", page)
	}

	results, err := h.inventory.Search(c.Request().Context(), filter)
	if err != nil {
		return fmt.Errorf("search inventory: %w", err)
	}

	content := searchPage{searchForm: form, Searched: true, Results: results}
	return c.Render(http.StatusOK, "search/search", h.pages.Build(c, "Search Results", content))
}
