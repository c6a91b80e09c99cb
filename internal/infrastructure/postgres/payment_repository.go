package postgres

import (
	"context"
	"fmt"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo lectura de pagos registrados por el procesador de pagos.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// ListByInvoice devuelve los pagos de la factura en orden cronológico.
func (r *PaymentRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]entity.Payment, error) {
	query := `
		SELECT id, invoice_id, amount, method, COALESCE(reference, ''), COALESCE(notes, ''), paid_at
		FROM payments WHERE invoice_id = $1 ORDER BY paid_at, id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Method, &p.Reference, &p.Notes, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
