package invoicing

import (
	"fmt"
	"strings"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
)

// ImportTimeEntries crea una línea por cada TimeEntry y recalcula totales.
//
// El total de la línea es hours × hourlyRate; TimeEntry.Amount no se usa
// (ver AmountMismatch). Excluir entradas ya facturadas en otras facturas es
// responsabilidad de la consulta que arma la lista; aquí solo se rechazan
// duplicados dentro de la misma factura.
func ImportTimeEntries(inv entity.Invoice, entries []entity.TimeEntry) (entity.Invoice, []entity.LineItem, error) {
	if !CanEdit(inv) {
		return inv, nil, locked(inv)
	}
	imported := make(map[string]struct{}, len(inv.LineItems)+len(entries))
	for _, li := range inv.LineItems {
		if li.TimeEntryID != "" {
			imported[li.TimeEntryID] = struct{}{}
		}
	}

	items := cloneItems(inv.LineItems)
	added := make([]entity.LineItem, 0, len(entries))
	for _, e := range entries {
		if _, dup := imported[e.ID]; dup {
			return inv, nil, fmt.Errorf("%w: la entrada de tiempo %s ya está en la factura", domain.ErrDuplicate, e.ID)
		}
		if e.Hours.IsNegative() || e.HourlyRate.IsNegative() {
			return inv, nil, fmt.Errorf("%w: entrada de tiempo %s con horas o tarifa negativa", domain.ErrInvalidInput, e.ID)
		}
		imported[e.ID] = struct{}{}
		item := entity.LineItem{
			ID:          newTempID(),
			InvoiceID:   inv.ID,
			Description: TimeEntryDescription(e),
			Quantity:    e.Hours,
			UnitPrice:   e.HourlyRate,
			Total:       e.Hours.Mul(e.HourlyRate),
			TimeEntryID: e.ID,
			Position:    len(items),
		}
		items = append(items, item)
		added = append(added, item)
	}

	out := inv
	out.LineItems = items
	return RecalculateTotals(out), added, nil
}

// TimeEntryDescription arma "Proyecto - descripción (3h)". Si la entrada no
// tiene descripción se usa el título de la tarea.
func TimeEntryDescription(e entity.TimeEntry) string {
	detail := strings.TrimSpace(e.Description)
	if detail == "" {
		detail = strings.TrimSpace(e.TaskTitle)
	}
	parts := make([]string, 0, 2)
	if p := strings.TrimSpace(e.ProjectTitle); p != "" {
		parts = append(parts, p)
	}
	if detail != "" {
		parts = append(parts, detail)
	}
	return fmt.Sprintf("%s (%sh)", strings.Join(parts, " - "), e.Hours.String())
}

// AmountMismatch informa si el monto almacenado difiere de hours × hourlyRate.
func AmountMismatch(e entity.TimeEntry) bool {
	return !e.Amount.Equal(e.Hours.Mul(e.HourlyRate))
}
