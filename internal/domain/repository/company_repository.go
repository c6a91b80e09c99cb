package repository

import (
	"context"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetBySlug(slug string) (*entity.Company, error)
	Update(company *entity.Company) error
	List(limit, offset int) ([]*entity.Company, error)
	// ActivateModule crea o reactiva la suscripción de la empresa al módulo.
	ActivateModule(ctx context.Context, m *entity.CompanyModule) error
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}
