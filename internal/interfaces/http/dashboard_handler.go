package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/astillero-mes/yacht-mes/internal/application/analytics"
)

// DashboardHandler maneja el panel de control. Todos los datos se recalculan
// en cada llamada.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats devuelve los contadores operativos del astillero.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	resp, err := h.uc.Stats(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// ProjectProgress devuelve el avance medio de los proyectos en curso.
func (h *DashboardHandler) ProjectProgress(c *fiber.Ctx) error {
	resp, err := h.uc.ProjectProgress(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// TaskDistribution devuelve el conteo de tareas por estado.
func (h *DashboardHandler) TaskDistribution(c *fiber.Ctx) error {
	resp, err := h.uc.TaskDistribution(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}
