package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/dto"
)

// moduleChecker es el contrato mínimo que necesita el middleware para verificar módulos.
// Lo implementa *usecase.ModuleService.
type moduleChecker interface {
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}

// RequireModule devuelve un middleware Fiber que verifica si la empresa del token JWT
// tiene el módulo activo. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalCompanyID).
//
// Comportamiento:
//   - 403 Forbidden  → módulo no contratado o vencido.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
//   - Si no hay company_id en el contexto, responde 401 (el AuthMiddleware debería haberlo puesto).
func RequireModule(moduleName string, checker moduleChecker) fiber.Handler {
	return requireModule(moduleName, checker, GetCompanyID)
}

// RequireModuleForParam igual que RequireModule pero toma la empresa del parámetro de ruta
// (formularios públicos, sin token). Módulo inactivo o empresa inexistente → 404, sin revelar cuál.
func RequireModuleForParam(moduleName, param string, checker moduleChecker) fiber.Handler {
	notFound := dto.ErrorResponse{Code: "NOT_FOUND", Message: "formulario no disponible"}
	return func(c *fiber.Ctx) error {
		companyID := c.Params(param)
		if _, err := uuid.Parse(companyID); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(notFound)
		}
		active, err := checker.HasActiveModule(c.Context(), companyID, moduleName)
		if err != nil {
			c.Locals(LocalError, err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "no se pudo verificar el módulo, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusNotFound).JSON(notFound)
		}
		return c.Next()
	}
}

func requireModule(moduleName string, checker moduleChecker, companyOf func(*fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := companyOf(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}

		active, err := checker.HasActiveModule(c.Context(), companyID, moduleName)
		if err != nil {
			c.Locals(LocalError, err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "no se pudo verificar el módulo, intente más tarde",
			})
		}

		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "el módulo '" + moduleName + "' no está activo para esta empresa",
			})
		}

		return c.Next()
	}
}
