package billing

import (
	"context"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con los repos de facturación.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		timeEntryRepo repository.TimeEntryRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// InvoicePDFGenerator genera la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}

// InvoiceDocument datos que necesita el generador de PDF, ya cargados y validados.
type InvoiceDocument struct {
	Invoice  entity.Invoice
	Company  entity.Company
	Client   entity.Client
	Payments []entity.Payment
}
