package postgres

import (
	"context"
	"fmt"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo bitácora append-only de cotizaciones. No expone UPDATE ni DELETE.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Append inserta una entrada; metadata se guarda como jsonb.
func (r *ActivityRepo) Append(ctx context.Context, e *entity.ActivityEntry) error {
	metadata := e.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	query := `
		INSERT INTO quote_activity (id, quote_id, action, metadata, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, e.ID, e.QuoteID, string(e.Action), metadata, nullIfEmpty(e.ActorID), e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert quote activity: %w", err)
	}
	return nil
}

// ListByQuote devuelve la bitácora en orden cronológico.
func (r *ActivityRepo) ListByQuote(ctx context.Context, quoteID string) ([]entity.ActivityEntry, error) {
	query := `
		SELECT id, quote_id, action, metadata, actor_id, created_at
		FROM quote_activity
		WHERE quote_id = $1
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote activity: %w", err)
	}
	defer rows.Close()
	var list []entity.ActivityEntry
	for rows.Next() {
		var e entity.ActivityEntry
		var action string
		var actor *string
		if err := rows.Scan(&e.ID, &e.QuoteID, &action, &e.Metadata, &actor, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quote activity: %w", err)
		}
		e.Action = entity.ActivityAction(action)
		e.ActorID = derefStr(actor)
		list = append(list, e)
	}
	return list, rows.Err()
}
