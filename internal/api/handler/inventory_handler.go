package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cse-motors/dealership/internal/api/metrics"
	"github.com/cse-motors/dealership/internal/api/middleware"
	"github.com/cse-motors/dealership/internal/core/domain"
	"github.com/cse-motors/dealership/internal/core/ports"
)

type InventoryHandler struct {
	inventory ports.InventoryService
	pages     *PageBuilder
	validate  *FormValidator
	log       zerolog.Logger
}

func NewInventoryHandler(inventory ports.InventoryService, pages *PageBuilder, validate *FormValidator, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, pages: pages, validate: validate, log: log}
}

type classificationPage struct {
	Vehicles []domain.Vehicle
}

// ByClassification renders the public browse-by-category view.
func (h *InventoryHandler) ByClassification(c echo.Context) error {
	classificationID := c.Param("classification_id")

	name, err := h.classificationName(c, classificationID)
	if err != nil {
		return err
	}

	vehicles, err := h.inventory.VehiclesByClassification(c.Request().Context(), classificationID)
	if err != nil {
		return fmt.Errorf("browse classification: %w", err)
	}

	content := classificationPage{Vehicles: vehicles}
	return c.Render(http.StatusOK, "inventory/classification", h.pages.Build(c, name+" vehicles", content))
}

type detailPage struct {
	Vehicle *domain.Vehicle
}

// Detail renders the public vehicle detail view. An unknown id surfaces as
// the site's 404 page.
func (h *InventoryHandler) Detail(c echo.Context) error {
	vehicle, err := h.inventory.VehicleByID(c.Request().Context(), c.Param("inv_id"))
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s %s", vehicle.Make, vehicle.Model)
	return c.Render(http.StatusOK, "inventory/detail", h.pages.Build(c, title, detailPage{Vehicle: vehicle}))
}

// InventoryJSON returns the vehicles of a classification as JSON. The
// management dashboard's table is populated from this endpoint.
func (h *InventoryHandler) InventoryJSON(c echo.Context) error {
	vehicles, err := h.inventory.VehiclesByClassification(c.Request().Context(), c.Param("classification_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vehicles)
}

type inventoryManagementPage struct {
	Classifications []domain.Classification
	Vehicles        []domain.Vehicle
}

// Management renders the back-office dashboard.
func (h *InventoryHandler) Management(c echo.Context) error {
	classifications, err := h.inventory.Classifications(c.Request().Context())
	if err != nil {
		return fmt.Errorf("inventory management: %w", err)
	}

	content := inventoryManagementPage{Classifications: classifications}
	return c.Render(http.StatusOK, "inventory/management", h.pages.Build(c, "Inventory Management", content))
}

// BuildAddClassification renders the add-classification form.
func (h *InventoryHandler) BuildAddClassification(c echo.Context) error {
	return c.Render(http.StatusOK, "inventory/add-classification",
		h.pages.Build(c, "Add Classification", classificationForm{}))
}

// AddClassification creates a classification; duplicates surface as a field
// error on the re-rendered form.
func (h *InventoryHandler) AddClassification(c echo.Context) error {
	var form classificationForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if fieldErrs := h.validate.Validate(&form); fieldErrs != nil {
		page := h.pages.Build(c, "Add Classification", form)
		page.FieldErrors = fieldErrs
		return c.Render(http.StatusBadRequest, "inventory/add-classification", page)
	}

	created, err := h.inventory.AddClassification(c.Request().Context(), form.Name)
	if err != nil {
		if errors.Is(err, domain.ErrClassificationExists) {
			page := h.pages.Build(c, "Add Classification", form)
			page.FieldErrors = map[string]string{"classification_name": "That classification already exists."}
			return c.Render(http.StatusBadRequest, "inventory/add-classification", page)
		}
		return fmt.Errorf("add classification: %w", err)
	}

	metrics.InventoryMutationsTotal.WithLabelValues("add_classification").Inc()
	sess := middleware.GetSession(c)
	sess.Flash(fmt.Sprintf("The %s classification was added.", created.Name))
	if err := sess.Save(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

// BuildAddInventory renders the add-vehicle form.
func (h *InventoryHandler) BuildAddInventory(c echo.Context) error {
	page, err := h.vehicleFormView(c, "Add Vehicle", vehicleForm{}, nil)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "inventory/vehicle-form", page)
}

// AddInventory creates a vehicle record.
func (h *InventoryHandler) AddInventory(c echo.Context) error {
	var form vehicleForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if fieldErrs := h.validate.Validate(&form); fieldErrs != nil {
		page, err := h.vehicleFormView(c, "Add Vehicle", form, fieldErrs)
		if err != nil {
			return err
		}
		return c.Render(http.StatusBadRequest, "inventory/vehicle-form", page)
	}

	created, err := h.inventory.AddVehicle(c.Request().Context(), form.toDomain())
	if err != nil {
		return fmt.Errorf("add vehicle: %w", err)
	}

	metrics.InventoryMutationsTotal.WithLabelValues("add_vehicle").Inc()
	sess := middleware.GetSession(c)
	sess.Flash(fmt.Sprintf("The %s %s was added to inventory.", created.Make, created.Model))
	if err := sess.Save(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

// BuildEdit renders the edit form pre-filled from the stored record.
func (h *InventoryHandler) BuildEdit(c echo.Context) error {
	vehicle, err := h.inventory.VehicleByID(c.Request().Context(), c.Param("inv_id"))
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Edit %s %s", vehicle.Make, vehicle.Model)
	page, err := h.vehicleFormView(c, title, vehicleFormFrom(vehicle), nil)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "inventory/vehicle-form", page)
}

// Update applies an edit to an existing vehicle.
func (h *InventoryHandler) Update(c echo.Context) error {
	var form vehicleForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if fieldErrs := h.validate.Validate(&form); fieldErrs != nil {
		page, err := h.vehicleFormView(c, "Edit Vehicle", form, fieldErrs)
		if err != nil {
			return err
		}
		return c.Render(http.StatusBadRequest, "inventory/vehicle-form", page)
	}

	updated, err := h.inventory.UpdateVehicle(c.Request().Context(), form.toDomain())
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}

	metrics.InventoryMutationsTotal.WithLabelValues("update_vehicle").Inc()
	sess := middleware.GetSession(c)
	sess.Flash(fmt.Sprintf("The %s %s was updated.", updated.Make, updated.Model))
	if err := sess.Save(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

// BuildDelete renders the delete confirmation view.
func (h *InventoryHandler) BuildDelete(c echo.Context) error {
	vehicle, err := h.inventory.VehicleByID(c.Request().Context(), c.Param("inv_id"))
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Delete %s %s", vehicle.Make, vehicle.Model)
	return c.Render(http.StatusOK, "inventory/delete-confirm", h.pages.Build(c, title, detailPage{Vehicle: vehicle}))
}

// Delete removes a vehicle. Deleting a record that no longer exists reports
// failure with a notice instead of crashing.
func (h *InventoryHandler) Delete(c echo.Context) error {
	invID := c.FormValue("inv_id")
	sess := middleware.GetSession(c)

	if err := h.inventory.DeleteVehicle(c.Request().Context(), invID); err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			sess.Flash("Sorry, the delete failed.")
			if err := sess.Save(c.Request().Context()); err != nil {
				return err
			}
			return c.Redirect(http.StatusSeeOther, "/inv/")
		}
		return fmt.Errorf("delete vehicle: %w", err)
	}

	metrics.InventoryMutationsTotal.WithLabelValues("delete_vehicle").Inc()
	sess.Flash("The vehicle was deleted.")
	if err := sess.Save(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

func (h *InventoryHandler) vehicleFormView(c echo.Context, title string, form vehicleForm, fieldErrs map[string]string) (any, error) {
	classifications, err := h.inventory.Classifications(c.Request().Context())
	if err != nil {
		return nil, fmt.Errorf("load classifications: %w", err)
	}

	action, submit := "/inv/add-inventory", "Add vehicle"
	if form.ID != "" {
		action, submit = "/inv/update", "Update vehicle"
	}

	content := vehicleFormPage{
		vehicleForm:     form,
		Classifications: classifications,
		Action:          action,
		Submit:          submit,
	}
	page := h.pages.Build(c, title, content)
	page.FieldErrors = fieldErrs
	return page, nil
}

func (h *InventoryHandler) classificationName(c echo.Context, id string) (string, error) {
	classifications, err := h.inventory.Classifications(c.Request().Context())
	if err != nil {
		return "", fmt.Errorf("load classifications: %w", err)
	}
	for _, cl := range classifications {
		if cl.ID == id {
			return cl.Name, nil
		}
	}
	return "", domain.ErrClassificationNotFound
}
