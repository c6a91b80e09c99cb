package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/dto"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/invoicing"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/repository"
	"github.com/pinkbeambot/pinkbeam-sub001/pkg/logger"
	"github.com/shopspring/decimal"
)

// InvoiceConfig valores por defecto de las facturas nuevas.
type InvoiceConfig struct {
	NumberPrefix string // ej. "INV"
	DueDays      int    // vencimiento = creación + DueDays
	DefaultTerms string
}

// InvoiceUseCase casos de uso de facturación: borradores, edición de líneas,
// importación de horas, envío, anulación y conciliación de pagos.
//
// Toda mutación bloquea la factura (SELECT ... FOR UPDATE), aplica la regla de
// dominio sobre esa instantánea y persiste el resultado en la misma transacción.
type InvoiceUseCase struct {
	txRunner    BillingTxRunner
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	clientRepo  repository.ClientRepository
	cfg         InvoiceConfig
	log         *logger.Logger
	now         func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	clientRepo repository.ClientRepository,
	cfg InvoiceConfig,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		clientRepo:  clientRepo,
		cfg:         cfg,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateDraft crea una factura vacía en DRAFT para un cliente de la empresa.
func (uc *InvoiceUseCase) CreateDraft(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, fmt.Errorf("billing: obtener cliente: %w", err)
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	now := uc.now()
	draft := entity.Invoice{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		ClientID:  in.ClientID,
		ProjectID: in.ProjectID,
		Status:    entity.InvoiceStatusDraft,
		DueDate:   now.AddDate(0, 0, uc.cfg.DueDays),
		Terms:     uc.cfg.DefaultTerms,
		CreatedAt: now,
		UpdatedAt: now,
	}
	changes := invoicing.DraftChanges{TaxRate: in.TaxRate, DueDate: in.DueDate}
	if in.Notes != "" {
		changes.Notes = &in.Notes
	}
	if in.Terms != "" {
		changes.Terms = &in.Terms
	}
	inv, err := invoicing.UpdateDetails(draft, changes)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.TimeEntryRepository, _ repository.PaymentRepository) error {
		number, err := invoiceRepo.NextNumber(ctx, companyID, uc.cfg.NumberPrefix)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = number
		return invoiceRepo.Create(ctx, &inv)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("invoice_id", inv.ID).Str("invoice_number", inv.InvoiceNumber).Msg("factura creada en borrador")
	resp := toInvoiceResponse(inv)
	return &resp, nil
}

// Get devuelve la factura con AmountPaid tomado de los pagos registrados.
// No cambia el estado; para eso está SyncPayments.
func (uc *InvoiceUseCase) Get(ctx context.Context, companyID, invoiceID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(inv, companyID); err != nil {
		return nil, err
	}
	payments, err := uc.paymentRepo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("billing: obtener pagos: %w", err)
	}
	inv.AmountPaid = sumPayments(payments)
	resp := toInvoiceResponse(invoicing.RecalculateTotals(*inv))
	return &resp, nil
}

// List lista facturas de la empresa, opcionalmente por estado.
func (uc *InvoiceUseCase) List(ctx context.Context, companyID string, in dto.InvoiceListQuery) (*dto.InvoiceListResponse, error) {
	in.DefaultPage()
	list, err := uc.invoiceRepo.ListByCompany(ctx, companyID, entity.InvoiceStatus(in.Status), in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, toInvoiceResponse(*inv))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  in.PageRequest.Response(len(items)),
	}, nil
}

// UpdateDetails cambia impuesto, vencimiento, notas o términos de un borrador.
func (uc *InvoiceUseCase) UpdateDetails(ctx context.Context, companyID, invoiceID string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	return uc.respond(uc.mutate(ctx, companyID, invoiceID, "update_details", false,
		func(inv entity.Invoice, _ billingRepos) (entity.Invoice, error) {
			return invoicing.UpdateDetails(inv, invoicing.DraftChanges{
				TaxRate:      in.TaxRate,
				ClearTaxRate: in.ClearTaxRate,
				DueDate:      in.DueDate,
				Notes:        in.Notes,
				Terms:        in.Terms,
			})
		}))
}

// AddLineItem agrega una línea vacía al borrador.
func (uc *InvoiceUseCase) AddLineItem(ctx context.Context, companyID, invoiceID string) (*dto.InvoiceResponse, error) {
	return uc.respond(uc.mutate(ctx, companyID, invoiceID, "add_line_item", true,
		func(inv entity.Invoice, _ billingRepos) (entity.Invoice, error) {
			out, _, err := invoicing.AddLineItem(inv)
			return out, err
		}))
}

// UpdateLineItem cambia descripción, cantidad o precio unitario de una línea.
func (uc *InvoiceUseCase) UpdateLineItem(ctx context.Context, companyID, invoiceID, itemID string, in dto.UpdateLineItemRequest) (*dto.InvoiceResponse, error) {
	return uc.respond(uc.mutate(ctx, companyID, invoiceID, "update_line_item", true,
		func(inv entity.Invoice, _ billingRepos) (entity.Invoice, error) {
			return invoicing.UpdateLineItem(inv, itemID, invoicing.LineItemField(in.Field), in.Value)
		}))
}

// RemoveLineItem elimina una línea; si venía de una entrada de tiempo, la libera.
func (uc *InvoiceUseCase) RemoveLineItem(ctx context.Context, companyID, invoiceID, itemID string) (*dto.InvoiceResponse, error) {
	return uc.respond(uc.mutate(ctx, companyID, invoiceID, "remove_line_item", true,
		func(inv entity.Invoice, r billingRepos) (entity.Invoice, error) {
			var timeEntryID string
			for _, li := range inv.LineItems {
				if li.ID == itemID {
					timeEntryID = li.TimeEntryID
				}
			}
			out, err := invoicing.RemoveLineItem(inv, itemID)
			if err != nil {
				return inv, err
			}
			if timeEntryID != "" {
				if err := r.timeEntries.Release(ctx, []string{timeEntryID}); err != nil {
					return inv, err
				}
			}
			return out, nil
		}))
}

// ImportTimeEntries convierte horas pendientes en líneas del borrador y las marca como facturadas.
func (uc *InvoiceUseCase) ImportTimeEntries(ctx context.Context, companyID, invoiceID string, in dto.ImportTimeEntriesRequest) (*dto.InvoiceResponse, error) {
	if in.ProjectID == "" && len(in.TimeEntryIDs) == 0 {
		return nil, fmt.Errorf("%w: indique project_id o time_entry_ids", domain.ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(in.TimeEntryIDs))
	for _, id := range in.TimeEntryIDs {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: la entrada de tiempo %s está repetida", domain.ErrDuplicate, id)
		}
		seen[id] = struct{}{}
	}

	return uc.respond(uc.mutate(ctx, companyID, invoiceID, "import_time_entries", true,
		func(inv entity.Invoice, r billingRepos) (entity.Invoice, error) {
			if !invoicing.CanEdit(inv) {
				// rechaza con ErrInvoiceLocked antes de consultar horas
				out, _, err := invoicing.ImportTimeEntries(inv, nil)
				return out, err
			}
			entries, err := r.timeEntries.ListUnbilled(ctx, companyID, in.ProjectID, in.TimeEntryIDs)
			if err != nil {
				return inv, err
			}
			if len(in.TimeEntryIDs) > 0 && len(entries) != len(in.TimeEntryIDs) {
				return inv, fmt.Errorf("%w: algunas entradas no existen, no son facturables o ya fueron facturadas", domain.ErrInvalidInput)
			}
			if len(entries) == 0 {
				return inv, fmt.Errorf("%w: no hay horas pendientes de facturar", domain.ErrInvalidInput)
			}

			out, added, err := invoicing.ImportTimeEntries(inv, entries)
			if err != nil {
				return inv, err
			}
			ids := make([]string, 0, len(added))
			for _, e := range entries {
				ids = append(ids, e.ID)
				if invoicing.AmountMismatch(e) {
					uc.log.Warn().
						Str("invoice_id", inv.ID).
						Str("time_entry_id", e.ID).
						Str("stored_amount", e.Amount.String()).
						Str("computed_amount", e.Hours.Mul(e.HourlyRate).String()).
						Msg("monto de la entrada de tiempo no coincide con horas × tarifa; se usa el calculado")
				}
			}
			if err := r.timeEntries.MarkInvoiced(ctx, inv.ID, ids); err != nil {
				return inv, err
			}
			return out, nil
		}))
}

// Send valida el borrador y lo pasa a SENT. Desde aquí la factura queda bloqueada.
func (uc *InvoiceUseCase) Send(ctx context.Context, companyID, invoiceID string) (*dto.InvoiceResponse, error) {
	return uc.respond(uc.mutate(ctx, companyID, invoiceID, "send", false,
		func(inv entity.Invoice, _ billingRepos) (entity.Invoice, error) {
			return invoicing.Send(inv, uc.now())
		}))
}

// Cancel anula la factura y libera las entradas de tiempo que tenía importadas.
func (uc *InvoiceUseCase) Cancel(ctx context.Context, companyID, invoiceID string) (*dto.InvoiceResponse, error) {
	return uc.respond(uc.mutate(ctx, companyID, invoiceID, "cancel", false,
		func(inv entity.Invoice, r billingRepos) (entity.Invoice, error) {
			out, err := invoicing.Transition(inv, entity.InvoiceStatusCancelled, uc.now())
			if err != nil {
				return inv, err
			}
			var ids []string
			for _, li := range inv.LineItems {
				if li.TimeEntryID != "" {
					ids = append(ids, li.TimeEntryID)
				}
			}
			if len(ids) > 0 {
				if err := r.timeEntries.Release(ctx, ids); err != nil {
					return inv, err
				}
			}
			return out, nil
		}))
}

// SyncPayments recalcula AmountPaid con los pagos registrados y ajusta el estado (PARTIAL/PAID).
func (uc *InvoiceUseCase) SyncPayments(ctx context.Context, companyID, invoiceID string) (*dto.InvoiceResponse, error) {
	return uc.respond(uc.mutate(ctx, companyID, invoiceID, "sync_payments", false,
		func(inv entity.Invoice, r billingRepos) (entity.Invoice, error) {
			payments, err := r.payments.ListByInvoice(ctx, inv.ID)
			if err != nil {
				return inv, err
			}
			return invoicing.ApplyPayments(inv, payments, uc.now()), nil
		}))
}

type billingRepos struct {
	timeEntries repository.TimeEntryRepository
	payments    repository.PaymentRepository
}

type invoiceMutation func(inv entity.Invoice, r billingRepos) (entity.Invoice, error)

// mutate carga la factura con bloqueo, aplica fn y persiste cabecera (y líneas si
// linesChanged). Si fn falla no se escribe nada y la transacción se revierte.
func (uc *InvoiceUseCase) mutate(ctx context.Context, companyID, invoiceID, op string, linesChanged bool, fn invoiceMutation) (entity.Invoice, error) {
	var result entity.Invoice
	err := uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, timeEntryRepo repository.TimeEntryRepository, paymentRepo repository.PaymentRepository) error {
		current, err := invoiceRepo.GetByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if err := checkOwnership(current, companyID); err != nil {
			return err
		}
		out, err := fn(*current, billingRepos{timeEntries: timeEntryRepo, payments: paymentRepo})
		if err != nil {
			return err
		}
		out.UpdatedAt = uc.now()
		if linesChanged {
			out.LineItems = assignPersistentIDs(out.ID, out.LineItems)
			if err := invoiceRepo.ReplaceLineItems(ctx, out.ID, out.LineItems); err != nil {
				return err
			}
		}
		if err := invoiceRepo.Update(ctx, &out); err != nil {
			return err
		}
		result = out
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceLocked) || errors.Is(err, domain.ErrInvalidTransition) {
			uc.log.Warn().Str("invoice_id", invoiceID).Str("op", op).Err(err).Msg("operación rechazada")
		}
		return entity.Invoice{}, err
	}
	uc.log.Info().
		Str("invoice_id", invoiceID).
		Str("op", op).
		Str("status", string(result.Status)).
		Str("total", result.Total.String()).
		Msg("factura actualizada")
	return result, nil
}

func (uc *InvoiceUseCase) respond(inv entity.Invoice, err error) (*dto.InvoiceResponse, error) {
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(inv)
	return &resp, nil
}

// assignPersistentIDs reemplaza los IDs "temp-" por UUIDs antes de guardar.
func assignPersistentIDs(invoiceID string, items []entity.LineItem) []entity.LineItem {
	out := make([]entity.LineItem, len(items))
	for i, li := range items {
		if li.IsTemporary() || li.ID == "" {
			li.ID = uuid.New().String()
		}
		li.InvoiceID = invoiceID
		out[i] = li
	}
	return out
}

func checkOwnership(inv *entity.Invoice, companyID string) error {
	if inv == nil {
		return domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}

func sumPayments(payments []entity.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

func toInvoiceResponse(inv entity.Invoice) dto.InvoiceResponse {
	items := make([]dto.LineItemResponse, 0, len(inv.LineItems))
	for _, li := range inv.LineItems {
		items = append(items, dto.LineItemResponse{
			ID:          li.ID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Total:       li.Total,
			TimeEntryID: li.TimeEntryID,
			Position:    li.Position,
		})
	}
	return dto.InvoiceResponse{
		ID:            inv.ID,
		CompanyID:     inv.CompanyID,
		ClientID:      inv.ClientID,
		ProjectID:     inv.ProjectID,
		InvoiceNumber: inv.InvoiceNumber,
		Status:        string(inv.Status),
		Editable:      invoicing.CanEdit(inv),
		LineItems:     items,
		TaxRate:       inv.TaxRate,
		Subtotal:      inv.Subtotal,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		AmountPaid:    inv.AmountPaid,
		AmountDue:     inv.AmountDue,
		DueDate:       inv.DueDate,
		Notes:         inv.Notes,
		Terms:         inv.Terms,
		SentAt:        inv.SentAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}
