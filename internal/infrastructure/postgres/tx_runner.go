package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/billing"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/quotes"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/repository"
)

// Ensure TxRunner implements quotes.QuoteTxRunner and billing.BillingTxRunner.
var _ quotes.QuoteTxRunner = (*TxRunner)(nil)
var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunQuotes inicia una transacción con los repos de cotizaciones y su bitácora.
func (r *TxRunner) RunQuotes(ctx context.Context, fn func(
	quoteRepo repository.QuoteRepository,
	activityRepo repository.ActivityRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewQuoteRepository(tx), NewActivityRepository(tx))
	})
}

// RunBilling inicia una transacción con los repos de facturación.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	timeEntryRepo repository.TimeEntryRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewInvoiceRepository(tx), NewTimeEntryRepository(tx), NewPaymentRepository(tx))
	})
}

// run hace Begin, ejecuta fn y Commit; cualquier error deja la transacción en Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
