package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cse-motors/dealership/internal/api/handler"
	"github.com/cse-motors/dealership/internal/api/view"
	"github.com/cse-motors/dealership/internal/core/domain"
)

// navOnlyInventory satisfies ports.InventoryService for the page builder;
// only Classifications is exercised by the error pages.
type navOnlyInventory struct{}

func (navOnlyInventory) Classifications(context.Context) ([]domain.Classification, error) {
	return []domain.Classification{{ID: "cls_1", Name: "SUV"}}, nil
}
func (navOnlyInventory) AddClassification(context.Context, string) (*domain.Classification, error) {
	return nil, errors.New("not implemented")
}
func (navOnlyInventory) VehicleByID(context.Context, string) (*domain.Vehicle, error) {
	return nil, domain.ErrVehicleNotFound
}
func (navOnlyInventory) VehiclesByClassification(context.Context, string) ([]domain.Vehicle, error) {
	return nil, nil
}
func (navOnlyInventory) AddVehicle(context.Context, *domain.Vehicle) (*domain.Vehicle, error) {
	return nil, errors.New("not implemented")
}
func (navOnlyInventory) UpdateVehicle(context.Context, *domain.Vehicle) (*domain.Vehicle, error) {
	return nil, errors.New("not implemented")
}
func (navOnlyInventory) DeleteVehicle(context.Context, string) error {
	return errors.New("not implemented")
}
func (navOnlyInventory) Search(context.Context, domain.SearchFilter) ([]domain.Vehicle, error) {
	return nil, nil
}
func (navOnlyInventory) Summary(context.Context) (*domain.ReportSummary, error) {
	return nil, errors.New("not implemented")
}

func newErrorTestContext(t *testing.T) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("build renderer: %v", err)
	}
	e.Renderer = renderer

	req := httptest.NewRequest(http.MethodGet, "/some/path", nil)
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

func TestHTTPErrorHandler_NotFoundRoute(t *testing.T) {
	_, c, rec := newErrorTestContext(t)
	pages := handler.NewPageBuilder(navOnlyInventory{}, zerolog.Nop())

	NewHTTPErrorHandler(pages, zerolog.Nop())(echo.ErrNotFound, c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Sorry, we appear to have lost that page.") {
		t.Fatalf("404 message missing: %s", body)
	}
	// The error page still carries the site navigation.
	if !strings.Contains(body, "SUV") {
		t.Fatalf("navigation missing from error page")
	}
}

func TestHTTPErrorHandler_MissingVehicle(t *testing.T) {
	_, c, rec := newErrorTestContext(t)
	pages := handler.NewPageBuilder(navOnlyInventory{}, zerolog.Nop())

	NewHTTPErrorHandler(pages, zerolog.Nop())(domain.ErrVehicleNotFound, c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sorry, that vehicle could not be found.") {
		t.Fatalf("vehicle message missing: %s", rec.Body.String())
	}
}

// Internal detail must never reach the client; the crash page is generic.
func TestHTTPErrorHandler_InternalError(t *testing.T) {
	_, c, rec := newErrorTestContext(t)
	pages := handler.NewPageBuilder(navOnlyInventory{}, zerolog.Nop())

	NewHTTPErrorHandler(pages, zerolog.Nop())(errors.New("pq: connection refused at 10.0.0.7"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Oh no! There was a crash.") {
		t.Fatalf("crash message missing: %s", body)
	}
	if strings.Contains(body, "10.0.0.7") || strings.Contains(body, "connection refused") {
		t.Fatalf("internal detail leaked to the client: %s", body)
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	_, c, rec := newErrorTestContext(t)
	pages := handler.NewPageBuilder(navOnlyInventory{}, zerolog.Nop())

	if err := c.NoContent(http.StatusOK); err != nil {
		t.Fatalf("commit response: %v", err)
	}
	NewHTTPErrorHandler(pages, zerolog.Nop())(errors.New("late failure"), c)

	if rec.Code != http.StatusOK {
		t.Fatalf("committed response rewritten: %d", rec.Code)
	}
}
