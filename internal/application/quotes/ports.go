package quotes

import (
	"context"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/repository"
)

// QuoteTxRunner ejecuta fn dentro de una transacción con los repos de cotizaciones atados a ella.
type QuoteTxRunner interface {
	RunQuotes(ctx context.Context, fn func(
		quoteRepo repository.QuoteRepository,
		activityRepo repository.ActivityRepository,
	) error) error
}

// QuoteNotifier recibe los eventos del pipeline después del commit.
// Las implementaciones registran sus propios fallos; nunca revierten la operación.
type QuoteNotifier interface {
	QuoteSubmitted(ctx context.Context, q entity.QuoteRequest)
	StatusChanged(ctx context.Context, q entity.QuoteRequest, from entity.QuoteStatus)
}
