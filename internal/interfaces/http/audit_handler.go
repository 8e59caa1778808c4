package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/astillero-mes/yacht-mes/internal/application/audit"
	"github.com/astillero-mes/yacht-mes/internal/application/dto"
)

// AuditHandler maneja las consultas del log de auditoría (solo admin).
type AuditHandler struct {
	svc *audit.Service
}

// NewAuditHandler construye el handler.
func NewAuditHandler(svc *audit.Service) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// List devuelve registros de auditoría con filtros.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var q dto.AuditListQuery
	if err := c.QueryParser(&q); err != nil {
		return badParam(c, "query")
	}
	resp, err := h.svc.List(c.Context(), q)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Stats devuelve agregados del log en una ventana de días (query days, default 7).
func (h *AuditHandler) Stats(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	resp, err := h.svc.Stats(c.Context(), days)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// MyActivity resume la actividad del usuario autenticado (query days, default 30).
func (h *AuditHandler) MyActivity(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	resp, err := h.svc.UserActivity(c.Context(), GetUserID(c), days)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// UserActivity resume la actividad de un usuario (query days, default 30).
func (h *AuditHandler) UserActivity(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badParam(c, "id")
	}
	days := c.QueryInt("days", 30)
	resp, err := h.svc.UserActivity(c.Context(), int64(id), days)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}
