package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus estado del ciclo de vida de una factura.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"     // editable
	InvoiceStatusSent      InvoiceStatus = "SENT"      // enviada al cliente
	InvoiceStatusViewed    InvoiceStatus = "VIEWED"    // abierta por el cliente en el portal
	InvoiceStatusPartial   InvoiceStatus = "PARTIAL"   // con abonos, saldo pendiente
	InvoiceStatusPaid      InvoiceStatus = "PAID"      // saldada
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"   // vencida sin pago completo
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED" // anulada
)

// IsValid informa si el estado pertenece al enum cerrado.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusViewed, InvoiceStatusPartial,
		InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// LineItemTempPrefix prefijo de los IDs locales de líneas aún no persistidas.
const LineItemTempPrefix = "temp-"

// Invoice cabecera de factura con sus líneas.
// Subtotal, TaxAmount, Total y AmountDue son derivados: se recalculan con
// invoicing.RecalculateTotals después de cada cambio.
type Invoice struct {
	ID            string
	CompanyID     string
	ClientID      string
	ProjectID     string // opcional
	InvoiceNumber string
	Status        InvoiceStatus
	LineItems     []LineItem
	TaxRate       *decimal.Decimal // porcentaje (ej. 19 = 19%); nil = sin impuesto
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
	AmountPaid    decimal.Decimal // suma de Payment.Amount
	AmountDue     decimal.Decimal
	DueDate       time.Time
	Notes         string
	Terms         string
	SentAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LineItem línea de detalle de una factura (manual o importada de una TimeEntry).
type LineItem struct {
	ID          string
	InvoiceID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	TimeEntryID string // referencia (no propiedad) a la TimeEntry importada
	Position    int
}

// IsTemporary informa si la línea todavía tiene un ID local.
func (li LineItem) IsTemporary() bool {
	return strings.HasPrefix(li.ID, LineItemTempPrefix)
}

// Payment abono registrado por el procesador de pagos (solo lectura en el core).
type Payment struct {
	ID        string
	InvoiceID string
	Amount    decimal.Decimal
	Method    string // card, transfer, cash...
	Reference string
	Notes     string
	PaidAt    time.Time
}
