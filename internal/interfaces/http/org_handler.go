package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/astillero-mes/yacht-mes/internal/application/usecase"
)

// OrgHandler maneja las consultas de departamentos y equipos.
type OrgHandler struct {
	uc *usecase.OrgUseCase
}

// NewOrgHandler construye el handler.
func NewOrgHandler(uc *usecase.OrgUseCase) *OrgHandler {
	return &OrgHandler{uc: uc}
}

// ListDepartments devuelve todos los departamentos.
func (h *OrgHandler) ListDepartments(c *fiber.Ctx) error {
	depts, err := h.uc.ListDepartments(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(depts)
}

// ListTeams devuelve todos los equipos.
func (h *OrgHandler) ListTeams(c *fiber.Ctx) error {
	teams, err := h.uc.ListTeams(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(teams)
}
