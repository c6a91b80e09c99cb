package repository

import (
	"context"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client (facturación).
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByCompanyAndEmail(ctx context.Context, companyID, email string) (*entity.Client, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Client, error)
}
