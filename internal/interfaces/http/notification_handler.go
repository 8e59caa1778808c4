package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/application/notification"
)

// NotificationHandler maneja las notificaciones del usuario autenticado.
type NotificationHandler struct {
	svc *notification.Service
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(svc *notification.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List devuelve las notificaciones propias, opcionalmente solo las no leídas.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	var q dto.NotificationListQuery
	if err := c.QueryParser(&q); err != nil {
		return badParam(c, "query")
	}
	resp, err := h.svc.List(c.Context(), GetUserID(c), q)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// UnreadCount devuelve el conteo de no leídas (cacheado en Redis).
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	resp, err := h.svc.UnreadCount(c.Context(), GetUserID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// MarkRead marca una notificación propia como leída.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badParam(c, "id")
	}
	if err := h.svc.MarkRead(c.Context(), int64(id), GetUserID(c)); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "notificación leída"})
}

// MarkAllRead marca todas las notificaciones propias como leídas.
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.svc.MarkAllRead(c.Context(), GetUserID(c)); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "todas marcadas como leídas"})
}

// Delete elimina una notificación propia.
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badParam(c, "id")
	}
	if err := h.svc.Delete(c.Context(), int64(id), GetUserID(c)); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "notificación eliminada"})
}
