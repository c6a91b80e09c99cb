package repository

import (
	"context"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
)

// QuoteFilter filtros opcionales para listar cotizaciones. Los campos vacíos no filtran.
type QuoteFilter struct {
	Status  entity.QuoteStatus
	Quality entity.LeadQuality
}

// QuoteRepository define el puerto de persistencia para QuoteRequest.
// GetByID devuelve (nil, nil) si no existe. La bitácora se carga aparte con ActivityRepository.
type QuoteRepository interface {
	Create(ctx context.Context, q *entity.QuoteRequest) error
	GetByID(ctx context.Context, id string) (*entity.QuoteRequest, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.QuoteRequest, error)
	ListByCompany(ctx context.Context, companyID string, f QuoteFilter, limit, offset int) ([]*entity.QuoteRequest, error)
	// Update persiste status, notes, estimated_amount y updated_at.
	Update(ctx context.Context, q *entity.QuoteRequest) error
}

// ActivityRepository bitácora append-only de cotizaciones.
type ActivityRepository interface {
	Append(ctx context.Context, e *entity.ActivityEntry) error
	ListByQuote(ctx context.Context, quoteID string) ([]entity.ActivityEntry, error)
}
