package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/infrastructure/excel"
)

// ImportHandler maneja la importación masiva desde un libro Excel (solo admin).
type ImportHandler struct {
	importer *excel.Importer
}

// NewImportHandler construye el handler.
func NewImportHandler(importer *excel.Importer) *ImportHandler {
	return &ImportHandler{importer: importer}
}

// Import recibe el archivo .xlsx en el campo multipart "file" y procesa las
// hojas reconocidas. Las filas con error se saltan y se informan en la respuesta.
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo 'file' requerido"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()

	resp, err := h.importer.Import(c.Context(), f)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}
