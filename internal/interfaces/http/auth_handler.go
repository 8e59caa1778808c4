package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/astillero-mes/yacht-mes/internal/application/auth"
	"github.com/astillero-mes/yacht-mes/internal/application/dto"
)

// AuthHandler maneja login, refresh, logout y perfil propio.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login autentica username/password y devuelve el token con el perfil.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Login(c.Context(), in, clientInfo(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Refresh emite un token nuevo para el usuario autenticado.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	resp, err := h.uc.Refresh(c.Context(), GetUserID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Logout deja rastro en auditoría; el token expira solo.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.uc.Logout(c.Context(), GetUserID(c), GetUsername(c), clientInfo(c))
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Me devuelve el perfil del usuario autenticado.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	resp, err := h.uc.Me(c.Context(), GetUserID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

func clientInfo(c *fiber.Ctx) auth.ClientInfo {
	return auth.ClientInfo{IP: c.IP(), UserAgent: c.Get("User-Agent")}
}
