// Package notify implementaciones de quotes.QuoteNotifier.
package notify

import (
	"context"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/quotes"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/pinkbeambot/pinkbeam-sub001/pkg/logger"
)

var (
	_ quotes.QuoteNotifier = (*LogNotifier)(nil)
	_ quotes.QuoteNotifier = Multi(nil)
)

// LogNotifier deja constancia de los eventos del pipeline en el log estructurado.
// Ocupa el lugar del envío de correos, que este servicio no hace.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Component("notify")}
}

// QuoteSubmitted registra una nueva solicitud. El email del prospecto no se escribe en el log.
func (n *LogNotifier) QuoteSubmitted(_ context.Context, q entity.QuoteRequest) {
	n.log.Info().
		Str("event", "quote_submitted").
		Str("quote_id", q.ID).
		Str("company_id", q.CompanyID).
		Int("lead_score", q.LeadScore).
		Str("lead_quality", string(q.LeadQuality)).
		Msg("nueva solicitud de cotización")
}

// StatusChanged registra un cambio de estado.
func (n *LogNotifier) StatusChanged(_ context.Context, q entity.QuoteRequest, from entity.QuoteStatus) {
	n.log.Info().
		Str("event", "quote_status_changed").
		Str("quote_id", q.ID).
		Str("company_id", q.CompanyID).
		Str("from", string(from)).
		Str("to", string(q.Status)).
		Msg("cotización cambió de estado")
}

// Multi reparte cada evento a todos los notificadores, en orden.
type Multi []quotes.QuoteNotifier

// QuoteSubmitted implementa quotes.QuoteNotifier.
func (m Multi) QuoteSubmitted(ctx context.Context, q entity.QuoteRequest) {
	for _, n := range m {
		n.QuoteSubmitted(ctx, q)
	}
}

// StatusChanged implementa quotes.QuoteNotifier.
func (m Multi) StatusChanged(ctx context.Context, q entity.QuoteRequest, from entity.QuoteStatus) {
	for _, n := range m {
		n.StatusChanged(ctx, q, from)
	}
}
