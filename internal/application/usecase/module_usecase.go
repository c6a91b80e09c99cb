package usecase

import (
	"context"
	"fmt"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/repository"
)

// Modules son los módulos que una agencia puede contratar:
// quotes (formulario público + pipeline) y billing (clientes + facturas).
var Modules = []string{entity.ModuleQuotes, entity.ModuleBilling}

// ModuleService responde si una agencia tiene contratado un módulo.
// Lo consultan los middlewares de rutas protegidas y del formulario público.
type ModuleService struct {
	companyRepo repository.CompanyRepository
}

// NewModuleService construye el servicio.
func NewModuleService(companyRepo repository.CompanyRepository) *ModuleService {
	return &ModuleService{companyRepo: companyRepo}
}

// HasActiveModule informa si la agencia tiene el módulo activo y sin vencer.
// Un nombre de módulo fuera de Modules es un error de programación y se devuelve como
// domain.ErrInvalidInput; los demás errores son de infraestructura.
func (s *ModuleService) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	if !IsKnownModule(moduleName) {
		return false, fmt.Errorf("%w: módulo desconocido %q", domain.ErrInvalidInput, moduleName)
	}
	if companyID == "" {
		return false, nil
	}
	return s.companyRepo.HasActiveModule(ctx, companyID, moduleName)
}

// IsKnownModule informa si name es uno de Modules.
func IsKnownModule(name string) bool {
	for _, m := range Modules {
		if m == name {
			return true
		}
	}
	return false
}
