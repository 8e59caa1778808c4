package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/application/usecase"
)

// MaterialHandler maneja las peticiones HTTP del catálogo de materiales.
type MaterialHandler struct {
	uc *usecase.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// Create da de alta un material.
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List devuelve materiales con su stock agregado.
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	var q dto.MaterialListQuery
	if err := c.QueryParser(&q); err != nil {
		return badParam(c, "query")
	}
	resp, err := h.uc.List(c.Context(), q)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Categories devuelve las categorías del catálogo.
func (h *MaterialHandler) Categories(c *fiber.Ctx) error {
	resp, err := h.uc.ListCategories(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Get obtiene un material por ID.
func (h *MaterialHandler) Get(c *fiber.Ctx) error {
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

// Update aplica un patch parcial de material.
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badParam(c, "id")
	}
	var in dto.UpdateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Update(c.Context(), int64(id), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Delete elimina un material.
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badParam(c, "id")
	}
	if err := h.uc.Delete(c.Context(), int64(id)); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "material eliminado"})
}
