package invoicing

import (
	"fmt"
	"strings"
	"time"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AllowedTransitions estados destino válidos de una factura.
//
//	DRAFT     -> SENT, CANCELLED
//	SENT      -> VIEWED, PARTIAL, PAID, OVERDUE, CANCELLED
//	VIEWED    -> PARTIAL, PAID, OVERDUE, CANCELLED
//	PARTIAL   -> PAID, OVERDUE
//	OVERDUE   -> PARTIAL, PAID, CANCELLED
//	PAID, CANCELLED -> (terminales)
func AllowedTransitions(from entity.InvoiceStatus) []entity.InvoiceStatus {
	switch from {
	case entity.InvoiceStatusDraft:
		return []entity.InvoiceStatus{entity.InvoiceStatusSent, entity.InvoiceStatusCancelled}
	case entity.InvoiceStatusSent:
		return []entity.InvoiceStatus{entity.InvoiceStatusViewed, entity.InvoiceStatusPartial,
			entity.InvoiceStatusPaid, entity.InvoiceStatusOverdue, entity.InvoiceStatusCancelled}
	case entity.InvoiceStatusViewed:
		return []entity.InvoiceStatus{entity.InvoiceStatusPartial, entity.InvoiceStatusPaid,
			entity.InvoiceStatusOverdue, entity.InvoiceStatusCancelled}
	case entity.InvoiceStatusPartial:
		return []entity.InvoiceStatus{entity.InvoiceStatusPaid, entity.InvoiceStatusOverdue}
	case entity.InvoiceStatusOverdue:
		return []entity.InvoiceStatus{entity.InvoiceStatusPartial, entity.InvoiceStatusPaid,
			entity.InvoiceStatusCancelled}
	}
	return nil
}

// CanTransition informa si from -> to es válida.
func CanTransition(from, to entity.InvoiceStatus) bool {
	for _, s := range AllowedTransitions(from) {
		if s == to {
			return true
		}
	}
	return false
}

// Transition cambia el estado si la arista existe.
func Transition(inv entity.Invoice, target entity.InvoiceStatus, at time.Time) (entity.Invoice, error) {
	if !CanTransition(inv.Status, target) {
		return inv, fmt.Errorf("%w: factura %s -> %s", domain.ErrInvalidTransition, inv.Status, target)
	}
	out := inv
	out.Status = target
	out.UpdatedAt = at
	return out, nil
}

// Send valida que la factura sea facturable y la pasa de DRAFT a SENT.
func Send(inv entity.Invoice, at time.Time) (entity.Invoice, error) {
	if inv.Status != entity.InvoiceStatusDraft {
		return inv, fmt.Errorf("%w: factura %s -> %s", domain.ErrInvalidTransition, inv.Status, entity.InvoiceStatusSent)
	}
	calc := RecalculateTotals(inv)
	if err := validateForSend(calc); err != nil {
		return inv, err
	}
	out, err := Transition(calc, entity.InvoiceStatusSent, at)
	if err != nil {
		return inv, err
	}
	sentAt := at
	out.SentAt = &sentAt
	return out, nil
}

func validateForSend(inv entity.Invoice) error {
	var problems []string
	if len(inv.LineItems) == 0 {
		problems = append(problems, "la factura no tiene líneas")
	}
	for _, li := range inv.LineItems {
		if strings.TrimSpace(li.Description) == "" {
			problems = append(problems, fmt.Sprintf("línea %d sin descripción", li.Position+1))
		}
		if !li.Quantity.IsPositive() {
			problems = append(problems, fmt.Sprintf("línea %d con cantidad no positiva", li.Position+1))
		}
	}
	if !inv.Total.IsPositive() {
		problems = append(problems, "el total debe ser mayor que cero")
	}
	if inv.ClientID == "" {
		problems = append(problems, "cliente requerido")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

// ApplyPayments fija AmountPaid como la suma de los pagos y recalcula el saldo.
// Una factura enviada queda PAID si el saldo llega a cero, o PARTIAL si hay abonos.
// DRAFT y CANCELLED solo actualizan totales; PAID es terminal.
func ApplyPayments(inv entity.Invoice, payments []entity.Payment, at time.Time) entity.Invoice {
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	out := inv
	out.AmountPaid = paid
	out = RecalculateTotals(out)

	var target entity.InvoiceStatus
	switch {
	case !out.AmountDue.IsPositive() && out.Total.IsPositive():
		target = entity.InvoiceStatusPaid
	case paid.IsPositive():
		target = entity.InvoiceStatusPartial
	default:
		return out
	}
	if out.Status != target && CanTransition(out.Status, target) {
		out.Status = target
		out.UpdatedAt = at
	}
	return out
}
