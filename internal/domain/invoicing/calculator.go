// Package invoicing contiene las reglas financieras de una factura: totales,
// edición de líneas mientras está en DRAFT, importación de horas y ciclo de estados.
//
// Las funciones reciben la factura por valor y devuelven una copia recalculada.
// Ante cualquier error devuelven la factura de entrada intacta.
package invoicing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// newTempID genera IDs locales "temp-<uuid>" para líneas no persistidas.
var newTempID = func() string {
	return entity.LineItemTempPrefix + uuid.New().String()
}

// LineItemField campo editable de una línea.
type LineItemField string

const (
	FieldDescription LineItemField = "description"
	FieldQuantity    LineItemField = "quantity"
	FieldUnitPrice   LineItemField = "unitPrice"
)

// CanEdit es el único predicado de editabilidad: true solo en DRAFT.
func CanEdit(inv entity.Invoice) bool {
	return inv.Status == entity.InvoiceStatusDraft
}

// RecalculateTotals deriva total de cada línea, subtotal, impuesto, total y saldo.
//
//	subtotal  = Σ quantity × unitPrice
//	taxAmount = subtotal × taxRate / 100   (0 sin taxRate)
//	total     = subtotal + taxAmount
//	amountDue = total − amountPaid
func RecalculateTotals(inv entity.Invoice) entity.Invoice {
	items := cloneItems(inv.LineItems)
	subtotal := decimal.Zero
	for i := range items {
		items[i].Total = items[i].Quantity.Mul(items[i].UnitPrice)
		subtotal = subtotal.Add(items[i].Total)
	}
	tax := decimal.Zero
	if inv.TaxRate != nil {
		tax = subtotal.Mul(*inv.TaxRate).Div(hundred)
	}
	out := inv
	out.LineItems = items
	out.Subtotal = subtotal
	out.TaxAmount = tax
	out.Total = subtotal.Add(tax)
	out.AmountDue = out.Total.Sub(inv.AmountPaid)
	return out
}

// AddLineItem agrega una línea vacía (cantidad 1, precio 0) con ID temporal.
func AddLineItem(inv entity.Invoice) (entity.Invoice, entity.LineItem, error) {
	if !CanEdit(inv) {
		return inv, entity.LineItem{}, locked(inv)
	}
	item := entity.LineItem{
		ID:        newTempID(),
		InvoiceID: inv.ID,
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.Zero,
		Total:     decimal.Zero,
		Position:  len(inv.LineItems),
	}
	out := inv
	out.LineItems = append(cloneItems(inv.LineItems), item)
	return RecalculateTotals(out), item, nil
}

// UpdateLineItem cambia un campo de la línea id. Si el campo es quantity o
// unitPrice, el total de la línea se recalcula en la misma operación.
func UpdateLineItem(inv entity.Invoice, id string, field LineItemField, value string) (entity.Invoice, error) {
	if !CanEdit(inv) {
		return inv, locked(inv)
	}
	idx := indexOfItem(inv.LineItems, id)
	if idx < 0 {
		return inv, fmt.Errorf("%w: línea %s", domain.ErrNotFound, id)
	}
	items := cloneItems(inv.LineItems)
	item := &items[idx]
	switch field {
	case FieldDescription:
		item.Description = strings.TrimSpace(value)
	case FieldQuantity, FieldUnitPrice:
		n, err := parseAmount(string(field), value)
		if err != nil {
			return inv, err
		}
		if field == FieldQuantity {
			item.Quantity = n
		} else {
			item.UnitPrice = n
		}
		item.Total = item.Quantity.Mul(item.UnitPrice)
	default:
		return inv, fmt.Errorf("%w: campo desconocido %q", domain.ErrInvalidInput, field)
	}
	out := inv
	out.LineItems = items
	return RecalculateTotals(out), nil
}

// RemoveLineItem elimina la línea id y renumera las posiciones.
func RemoveLineItem(inv entity.Invoice, id string) (entity.Invoice, error) {
	if !CanEdit(inv) {
		return inv, locked(inv)
	}
	idx := indexOfItem(inv.LineItems, id)
	if idx < 0 {
		return inv, fmt.Errorf("%w: línea %s", domain.ErrNotFound, id)
	}
	items := make([]entity.LineItem, 0, len(inv.LineItems)-1)
	items = append(items, inv.LineItems[:idx]...)
	items = append(items, inv.LineItems[idx+1:]...)
	for i := range items {
		items[i].Position = i
	}
	out := inv
	out.LineItems = items
	return RecalculateTotals(out), nil
}

// DraftChanges cambios de cabecera permitidos mientras la factura está en DRAFT.
// Los punteros nil no modifican el campo.
type DraftChanges struct {
	TaxRate      *decimal.Decimal
	ClearTaxRate bool
	DueDate      *time.Time
	Notes        *string
	Terms        *string
}

// UpdateDetails aplica cambios de impuesto, vencimiento, notas y términos.
func UpdateDetails(inv entity.Invoice, ch DraftChanges) (entity.Invoice, error) {
	if !CanEdit(inv) {
		return inv, locked(inv)
	}
	if ch.TaxRate != nil && (ch.TaxRate.IsNegative() || ch.TaxRate.GreaterThan(hundred)) {
		return inv, fmt.Errorf("%w: la tasa de impuesto debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	out := inv
	switch {
	case ch.ClearTaxRate:
		out.TaxRate = nil
	case ch.TaxRate != nil:
		rate := *ch.TaxRate
		out.TaxRate = &rate
	}
	if ch.DueDate != nil {
		out.DueDate = *ch.DueDate
	}
	if ch.Notes != nil {
		out.Notes = *ch.Notes
	}
	if ch.Terms != nil {
		out.Terms = *ch.Terms
	}
	return RecalculateTotals(out), nil
}

func locked(inv entity.Invoice) error {
	return fmt.Errorf("%w: factura %s en estado %s", domain.ErrInvoiceLocked, inv.InvoiceNumber, inv.Status)
}

func parseAmount(field, value string) (decimal.Decimal, error) {
	n, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s no es numérico", domain.ErrInvalidInput, field)
	}
	if n.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s no puede ser negativo", domain.ErrInvalidInput, field)
	}
	return n, nil
}

func indexOfItem(items []entity.LineItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(items []entity.LineItem) []entity.LineItem {
	if items == nil {
		return nil
	}
	out := make([]entity.LineItem, len(items))
	copy(out, items)
	return out
}
