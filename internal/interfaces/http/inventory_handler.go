package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/application/inventory"
)

// InventoryHandler maneja movimientos de inventario, existencias, historial y alertas.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ApplyMovement registra un movimiento (in/out/adjust/transfer) de forma atómica.
// Responde 409 INSUFFICIENT_STOCK si una salida dejaría el saldo en negativo.
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	op := inventory.Operator{ID: GetUserID(c), Name: GetUsername(c)}
	resp, err := h.uc.ApplyMovement(c.Context(), op, in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListStock devuelve los registros de existencias.
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	var q dto.StockListQuery
	if err := c.QueryParser(&q); err != nil {
		return badParam(c, "query")
	}
	resp, err := h.uc.ListStock(c.Context(), q)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// ListLedger devuelve el historial de movimientos.
func (h *InventoryHandler) ListLedger(c *fiber.Ctx) error {
	var q dto.LedgerListQuery
	if err := c.QueryParser(&q); err != nil {
		return badParam(c, "query")
	}
	resp, err := h.uc.ListLedger(c.Context(), q)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// ListAlerts devuelve los materiales bajo stock mínimo con su faltante.
func (h *InventoryHandler) ListAlerts(c *fiber.Ctx) error {
	resp, err := h.uc.ListAlerts(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}
