package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/application/usecase"
)

// ProcurementHandler maneja las órdenes de compra y su circuito de aprobación.
type ProcurementHandler struct {
	uc *usecase.ProcurementUseCase
}

// NewProcurementHandler construye el handler.
func NewProcurementHandler(uc *usecase.ProcurementUseCase) *ProcurementHandler {
	return &ProcurementHandler{uc: uc}
}

// Create da de alta una orden en estado pending_approval.
func (h *ProcurementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProcurementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List devuelve órdenes con filtros.
func (h *ProcurementHandler) List(c *fiber.Ctx) error {
	var q dto.ProcurementListQuery
	if err := c.QueryParser(&q); err != nil {
		return badParam(c, "query")
	}
	resp, err := h.uc.List(c.Context(), q)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Get obtiene una orden por ID.
func (h *ProcurementHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badParam(c, "id")
	}
	resp, err := h.uc.GetByID(c.Context(), int64(id))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Update aplica un patch parcial de orden.
func (h *ProcurementHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badParam(c, "id")
	}
	var in dto.UpdateProcurementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Update(c.Context(), int64(id), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Approve resuelve la aprobación de una orden pendiente.
func (h *ProcurementHandler) Approve(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badParam(c, "id")
	}
	var in dto.ApproveProcurementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Approve(c.Context(), int64(id), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}
