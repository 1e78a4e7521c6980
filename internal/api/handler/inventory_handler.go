package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/metrics"
	"github.com/csemotors/dealership/internal/api/render"
	"github.com/csemotors/dealership/internal/api/session"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

type InventoryHandler struct {
	inventory ports.InventoryService
	nav       *render.NavProvider
	log       zerolog.Logger
}

func NewInventoryHandler(inventory ports.InventoryService, nav *render.NavProvider, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, nav: nav, log: log}
}

// ByClassification delivers the vehicle grid for one classification.
func (h *InventoryHandler) ByClassification(c echo.Context) error {
	page, err := h.inventory.ByClassification(c.Request().Context(), c.Param("classificationId"))
	if err != nil {
		return err
	}

	metrics.InventoryViewsTotal.WithLabelValues("classification").Inc()
	data := pageData(c, h.nav, page.Classification.Name+" vehicles")
	data.Page = page
	return c.Render(http.StatusOK, "inventory/classification", data)
}

// Detail delivers a single vehicle page. An unknown id sends the visitor
// back home with a notice instead of a bare 404.
func (h *InventoryHandler) Detail(c echo.Context) error {
	vehicle, err := h.inventory.VehicleByID(c.Request().Context(), c.Param("invId"))
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			session.SetFlash(c, "Sorry, that vehicle was not found.")
			return c.Redirect(http.StatusFound, "/")
		}
		return err
	}

	metrics.InventoryViewsTotal.WithLabelValues("detail").Inc()
	title := fmt.Sprintf("%d %s %s", vehicle.Year, vehicle.Make, vehicle.Model)
	data := pageData(c, h.nav, title)
	data.Page = vehicle
	return c.Render(http.StatusOK, "inventory/detail", data)
}

// Manage delivers the staff-only inventory management view. Access control
// is enforced by the RequireAuth and RBAC middleware on the route.
func (h *InventoryHandler) Manage(c echo.Context) error {
	data := pageData(c, h.nav, "Inventory Management")
	return c.Render(http.StatusOK, "inventory/management", data)
}

// TriggerError fails on purpose so the rendered 500 page can be verified in
// a running deployment.
func (h *InventoryHandler) TriggerError(c echo.Context) error {
	return errors.New("intentional error raised from /inv/trigger-error")
}
