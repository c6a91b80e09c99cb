package postgres

import (
	"context"
	"fmt"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/repository"
)

var _ repository.TimeEntryRepository = (*TimeEntryRepo)(nil)

// TimeEntryRepo acceso a las horas registradas por el módulo de proyectos.
type TimeEntryRepo struct {
	q Querier
}

// NewTimeEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTimeEntryRepository(q Querier) *TimeEntryRepo {
	return &TimeEntryRepo{q: q}
}

// ListUnbilled devuelve horas facturables sin factura de la empresa, filtradas por
// proyecto y/o IDs. Bloquea las filas para que otra factura no las importe a la vez.
func (r *TimeEntryRepo) ListUnbilled(ctx context.Context, companyID, projectID string, ids []string) ([]entity.TimeEntry, error) {
	if ids == nil {
		ids = []string{}
	}
	query := `
		SELECT te.id, te.company_id, te.project_id, p.title, COALESCE(t.title, ''),
		       COALESCE(te.description, ''), te.hours, te.hourly_rate, te.amount,
		       te.billable, te.date
		FROM time_entries te
		JOIN projects p ON p.id = te.project_id
		LEFT JOIN tasks t ON t.id = te.task_id
		WHERE te.company_id = $1
		  AND te.billable
		  AND te.invoice_id IS NULL
		  AND ($2 = '' OR te.project_id::text = $2)
		  AND (cardinality($3::text[]) = 0 OR te.id::text = ANY($3::text[]))
		ORDER BY te.date, te.id
		FOR UPDATE OF te`
	rows, err := r.q.Query(ctx, query, companyID, projectID, ids)
	if err != nil {
		return nil, fmt.Errorf("list unbilled time entries: %w", err)
	}
	defer rows.Close()
	var list []entity.TimeEntry
	for rows.Next() {
		var e entity.TimeEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.ProjectID, &e.ProjectTitle, &e.TaskTitle,
			&e.Description, &e.Hours, &e.HourlyRate, &e.Amount, &e.Billable, &e.Date); err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// MarkInvoiced asocia las entradas a la factura. Falla con ErrConflict si alguna ya estaba facturada.
func (r *TimeEntryRepo) MarkInvoiced(ctx context.Context, invoiceID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE time_entries SET invoice_id = $1 WHERE id::text = ANY($2::text[]) AND invoice_id IS NULL`,
		invoiceID, ids)
	if err != nil {
		return fmt.Errorf("mark time entries invoiced: %w", err)
	}
	if cmd.RowsAffected() != int64(len(ids)) {
		return fmt.Errorf("%w: %d de %d entradas ya estaban facturadas", domain.ErrConflict, int64(len(ids))-cmd.RowsAffected(), len(ids))
	}
	return nil
}

// Release desasocia las entradas de su factura para que puedan importarse de nuevo.
func (r *TimeEntryRepo) Release(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx, `UPDATE time_entries SET invoice_id = NULL WHERE id::text = ANY($1::text[])`, ids); err != nil {
		return fmt.Errorf("release time entries: %w", err)
	}
	return nil
}
