package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `
	id, company_id, client_id, project_id, invoice_number, status, tax_rate,
	subtotal, tax_amount, total, amount_paid, amount_due, due_date,
	COALESCE(notes, ''), COALESCE(terms, ''), sent_at, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera y las líneas de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (
			id, company_id, client_id, project_id, invoice_number, status, tax_rate,
			subtotal, tax_amount, total, amount_paid, amount_due, due_date,
			notes, terms, sent_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CompanyID, inv.ClientID, nullIfEmpty(inv.ProjectID), inv.InvoiceNumber, string(inv.Status), inv.TaxRate,
		inv.Subtotal, inv.TaxAmount, inv.Total, inv.AmountPaid, inv.AmountDue, inv.DueDate,
		nullIfEmpty(inv.Notes), nullIfEmpty(inv.Terms), inv.SentAt, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de factura %s", domain.ErrDuplicate, inv.InvoiceNumber)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return r.insertLineItems(ctx, inv.ID, inv.LineItems)
}

// GetByID obtiene la factura con sus líneas ordenadas por posición.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
}

// GetByIDForUpdate igual que GetByID pero bloquea la cabecera hasta el fin de la transacción.
// Las líneas solo se modifican con la cabecera bloqueada, así que no necesitan lock propio.
func (r *InvoiceRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id)
}

func (r *InvoiceRepo) getOne(ctx context.Context, query, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	items, err := r.lineItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.LineItems = items
	return inv, nil
}

// ListByCompany lista cabeceras (sin líneas) de la empresa, más recientes primero.
func (r *InvoiceRepo) ListByCompany(ctx context.Context, companyID string, status entity.InvoiceStatus, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Update persiste cabecera, estado y totales ya recalculados.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		   SET status      = $2,
		       tax_rate    = $3,
		       subtotal    = $4,
		       tax_amount  = $5,
		       total       = $6,
		       amount_paid = $7,
		       amount_due  = $8,
		       due_date    = $9,
		       notes       = $10,
		       terms       = $11,
		       sent_at     = $12,
		       updated_at  = $13
		 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		inv.ID, string(inv.Status), inv.TaxRate,
		inv.Subtotal, inv.TaxAmount, inv.Total, inv.AmountPaid, inv.AmountDue, inv.DueDate,
		nullIfEmpty(inv.Notes), nullIfEmpty(inv.Terms), inv.SentAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceLineItems reemplaza todas las líneas de la factura por items (en ese orden).
func (r *InvoiceRepo) ReplaceLineItems(ctx context.Context, invoiceID string, items []entity.LineItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_line_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice line items: %w", err)
	}
	return r.insertLineItems(ctx, invoiceID, items)
}

// NextNumber reserva el siguiente consecutivo de la empresa para el prefijo (ej. INV-0007).
// El UPSERT bloquea la fila del contador hasta el commit, así dos facturas no comparten número.
func (r *InvoiceRepo) NextNumber(ctx context.Context, companyID, prefix string) (string, error) {
	const query = `
		INSERT INTO invoice_sequences (company_id, prefix, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, prefix) DO UPDATE
		   SET last_value = invoice_sequences.last_value + 1
		RETURNING last_value`
	var n int64
	if err := r.q.QueryRow(ctx, query, companyID, prefix).Scan(&n); err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	return fmt.Sprintf("%s-%04d", prefix, n), nil
}

func (r *InvoiceRepo) insertLineItems(ctx context.Context, invoiceID string, items []entity.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	const query = `
		INSERT INTO invoice_line_items (id, invoice_id, description, quantity, unit_price, total, time_entry_id, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	batch := &pgx.Batch{}
	for i, li := range items {
		batch.Queue(query, li.ID, invoiceID, li.Description, li.Quantity, li.UnitPrice, li.Total, nullIfEmpty(li.TimeEntryID), i)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert invoice line item: %w", err)
		}
	}
	return nil
}

func (r *InvoiceRepo) lineItems(ctx context.Context, invoiceID string) ([]entity.LineItem, error) {
	query := `
		SELECT id, invoice_id, description, quantity, unit_price, total, time_entry_id, position
		FROM invoice_line_items WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice line items: %w", err)
	}
	defer rows.Close()
	list := []entity.LineItem{}
	for rows.Next() {
		var li entity.LineItem
		var timeEntryID *string
		if err := rows.Scan(&li.ID, &li.InvoiceID, &li.Description, &li.Quantity, &li.UnitPrice, &li.Total, &timeEntryID, &li.Position); err != nil {
			return nil, fmt.Errorf("scan invoice line item: %w", err)
		}
		li.TimeEntryID = derefStr(timeEntryID)
		list = append(list, li)
	}
	return list, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var projectID *string
	var status string
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.ClientID, &projectID, &inv.InvoiceNumber, &status, &inv.TaxRate,
		&inv.Subtotal, &inv.TaxAmount, &inv.Total, &inv.AmountPaid, &inv.AmountDue, &inv.DueDate,
		&inv.Notes, &inv.Terms, &inv.SentAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.ProjectID = derefStr(projectID)
	inv.Status = entity.InvoiceStatus(status)
	return &inv, nil
}
