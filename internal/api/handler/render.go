package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cse-motors/dealership/internal/api/middleware"
	"github.com/cse-motors/dealership/internal/api/view"
	"github.com/cse-motors/dealership/internal/core/ports"
)

// PageBuilder assembles the shared view context (navigation, identity, flash
// notices) for every rendered page.
type PageBuilder struct {
	inventory ports.InventoryService
	log       zerolog.Logger
}

func NewPageBuilder(inventory ports.InventoryService, log zerolog.Logger) *PageBuilder {
	return &PageBuilder{inventory: inventory, log: log}
}

// Build returns a Page for the current request, consuming any queued flash
// notices. Navigation failures degrade to an empty nav rather than failing
// the page.
func (b *PageBuilder) Build(c echo.Context, title string, content any) view.Page {
	page := b.Bare(c, title, content)
	page.Identity = middleware.GetIdentity(c)
	page.Messages = middleware.GetSession(c).PopFlashes()
	return page
}

// Bare returns a Page without touching session or identity state. Used by
// the error handler, which can run before either middleware has populated
// the request.
func (b *PageBuilder) Bare(c echo.Context, title string, content any) view.Page {
	nav, err := b.inventory.Classifications(c.Request().Context())
	if err != nil {
		b.log.Error().Err(err).Msg("build navigation")
		nav = nil
	}
	return view.Page{
		Title:   title,
		Nav:     nav,
		Content: content,
	}
}
