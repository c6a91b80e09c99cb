package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

const quoteColumns = `
	id, company_id, contact_name, contact_email, COALESCE(contact_phone, ''), COALESCE(company_name, ''),
	COALESCE(website, ''), project_type, services, budget_range, timeline, description,
	status, notes, estimated_amount, lead_score, lead_quality, created_at, updated_at`

// QuoteRepo implementación de QuoteRepository (usable con pool o tx).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

// Create persiste una solicitud nueva (sin bitácora: nace vacía).
func (r *QuoteRepo) Create(ctx context.Context, q *entity.QuoteRequest) error {
	query := `
		INSERT INTO quote_requests (
			id, company_id, contact_name, contact_email, contact_phone, company_name,
			website, project_type, services, budget_range, timeline, description,
			status, notes, estimated_amount, lead_score, lead_quality, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	services := q.Services
	if services == nil {
		services = []string{}
	}
	_, err := r.q.Exec(ctx, query,
		q.ID, q.CompanyID, q.ContactName, q.ContactEmail, nullIfEmpty(q.ContactPhone), nullIfEmpty(q.CompanyName),
		nullIfEmpty(q.Website), q.ProjectType, services, q.BudgetRange, q.Timeline, q.Description,
		string(q.Status), q.Notes, q.EstimatedAmount, q.LeadScore, string(q.LeadQuality), q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quote request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID (sin bitácora).
func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*entity.QuoteRequest, error) {
	return r.getOne(ctx, `SELECT `+quoteColumns+` FROM quote_requests WHERE id = $1`, id)
}

// GetByIDForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
func (r *QuoteRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.QuoteRequest, error) {
	return r.getOne(ctx, `SELECT `+quoteColumns+` FROM quote_requests WHERE id = $1 FOR UPDATE`, id)
}

func (r *QuoteRepo) getOne(ctx context.Context, query, id string) (*entity.QuoteRequest, error) {
	q, err := scanQuote(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote request: %w", err)
	}
	return q, nil
}

// ListByCompany lista solicitudes de la empresa, más recientes primero.
func (r *QuoteRepo) ListByCompany(ctx context.Context, companyID string, f repository.QuoteFilter, limit, offset int) ([]*entity.QuoteRequest, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM quote_requests
		WHERE company_id = $1
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR lead_quality = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, companyID, string(f.Status), string(f.Quality), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quote requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuoteRequest
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote request: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// Update persiste los campos mutables: estado, notas y monto estimado.
// El lead score no se toca después de crear.
func (r *QuoteRepo) Update(ctx context.Context, q *entity.QuoteRequest) error {
	query := `
		UPDATE quote_requests
		   SET status = $2, notes = $3, estimated_amount = $4, updated_at = $5
		 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, q.ID, string(q.Status), q.Notes, q.EstimatedAmount, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update quote request: %w", err)
	}
	return nil
}

func scanQuote(row pgx.Row) (*entity.QuoteRequest, error) {
	var q entity.QuoteRequest
	var status, quality string
	err := row.Scan(
		&q.ID, &q.CompanyID, &q.ContactName, &q.ContactEmail, &q.ContactPhone, &q.CompanyName,
		&q.Website, &q.ProjectType, &q.Services, &q.BudgetRange, &q.Timeline, &q.Description,
		&status, &q.Notes, &q.EstimatedAmount, &q.LeadScore, &quality, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	q.Status = entity.QuoteStatus(status)
	q.LeadQuality = entity.LeadQuality(quality)
	return &q, nil
}
