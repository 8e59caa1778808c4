package http

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/astillero-mes/yacht-mes/internal/application/audit"
	"github.com/astillero-mes/yacht-mes/internal/domain/entity"
)

// AuditMiddleware registra las operaciones de escritura (POST/PUT/PATCH/DELETE)
// que respondieron con éxito. La escritura del registro es fire-and-forget.
func AuditMiddleware(svc *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		action := auditAction(c.Method())
		if action == "" {
			return c.Next()
		}
		// El body se captura antes de Next: Fiber lo recicla tras la respuesta.
		var after json.RawMessage
		if body := c.Body(); len(body) > 0 && json.Valid(body) {
			after = append(json.RawMessage(nil), body...)
		}

		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() >= fiber.StatusBadRequest {
			return nil
		}

		entry := &entity.AuditLog{
			Username:     GetUsername(c),
			Action:       action,
			ResourceType: resourceFromPath(c.Path()),
			AfterData:    after,
			IPAddress:    c.IP(),
			UserAgent:    c.Get("User-Agent"),
		}
		if uid := GetUserID(c); uid != 0 {
			entry.UserID = &uid
		}
		if idStr := c.Params("id"); idStr != "" {
			if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
				entry.ResourceID = &id
			}
		}
		svc.Record(entry)
		return nil
	}
}

func auditAction(method string) string {
	switch method {
	case fiber.MethodPost:
		return entity.AuditActionCreate
	case fiber.MethodPut, fiber.MethodPatch:
		return entity.AuditActionUpdate
	case fiber.MethodDelete:
		return entity.AuditActionDelete
	}
	return ""
}

// resourceFromPath extrae el recurso del path: /api/v1/tasks/3/report-work -> tasks.
func resourceFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, "/api/v1/")
	if i := strings.IndexByte(trimmed, '/'); i > 0 {
		trimmed = trimmed[:i]
	}
	return trimmed
}
