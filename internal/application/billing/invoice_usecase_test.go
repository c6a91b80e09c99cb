package billing_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/billing"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/dto"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/pinkbeambot/pinkbeam-sub001/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyID = "c-1"
	invoiceID = "inv-1"
)

type fixture struct {
	uc          *billing.InvoiceUseCase
	invoices    *invoiceRepoMock
	timeEntries *timeEntryRepoMock
	payments    *paymentRepoMock
	clients     *clientRepoMock
}

func newFixture() *fixture {
	f := &fixture{
		invoices:    &invoiceRepoMock{},
		timeEntries: &timeEntryRepoMock{},
		payments:    &paymentRepoMock{},
		clients:     &clientRepoMock{},
	}
	f.uc = billing.NewInvoiceUseCase(
		&txRunnerFake{invoices: f.invoices, timeEntries: f.timeEntries, payments: f.payments},
		f.invoices, f.payments, f.clients,
		billing.InvoiceConfig{NumberPrefix: "INV", DueDays: 30, DefaultTerms: "Pago a 30 días"},
		logger.Nop(),
	)
	return f
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func stored(status entity.InvoiceStatus) *entity.Invoice {
	rate := d("10")
	return &entity.Invoice{
		ID:            invoiceID,
		CompanyID:     companyID,
		ClientID:      "cli-1",
		InvoiceNumber: "INV-0001",
		Status:        status,
		TaxRate:       &rate,
		LineItems: []entity.LineItem{
			{ID: "li-1", InvoiceID: invoiceID, Description: "Diseño", Quantity: d("2"), UnitPrice: d("50"), Total: d("100"), Position: 0},
			{ID: "li-2", InvoiceID: invoiceID, Description: "Soporte (1h)", Quantity: d("1"), UnitPrice: d("25"), Total: d("25"), TimeEntryID: "te-9", Position: 1},
		},
	}
}

func (f *fixture) expectLoad(inv *entity.Invoice) {
	f.invoices.On("GetByIDForUpdate", mock.Anything, invoiceID).Return(inv, nil)
}

func (f *fixture) expectSave() {
	f.invoices.On("ReplaceLineItems", mock.Anything, invoiceID, mock.Anything).Return(nil).Maybe()
	f.invoices.On("Update", mock.Anything, mock.Anything).Return(nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bloqueo
// ──────────────────────────────────────────────────────────────────────────────

func TestMutaciones_FacturaEnviadaNoSePersisten(t *testing.T) {
	ctx := context.Background()
	ops := map[string]func(f *fixture) error{
		"add": func(f *fixture) error {
			_, err := f.uc.AddLineItem(ctx, companyID, invoiceID)
			return err
		},
		"update": func(f *fixture) error {
			_, err := f.uc.UpdateLineItem(ctx, companyID, invoiceID, "li-1", dto.UpdateLineItemRequest{Field: "quantity", Value: "5"})
			return err
		},
		"remove": func(f *fixture) error {
			_, err := f.uc.RemoveLineItem(ctx, companyID, invoiceID, "li-2")
			return err
		},
		"import": func(f *fixture) error {
			_, err := f.uc.ImportTimeEntries(ctx, companyID, invoiceID, dto.ImportTimeEntriesRequest{TimeEntryIDs: []string{"te-1"}})
			return err
		},
		"details": func(f *fixture) error {
			_, err := f.uc.UpdateDetails(ctx, companyID, invoiceID, dto.UpdateInvoiceRequest{ClearTaxRate: true})
			return err
		},
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			f.expectLoad(stored(entity.InvoiceStatusSent))

			err := op(f)

			assert.ErrorIs(t, err, domain.ErrInvoiceLocked)
			f.invoices.AssertNotCalled(t, "ReplaceLineItems", mock.Anything, mock.Anything, mock.Anything)
			f.invoices.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			f.timeEntries.AssertNotCalled(t, "ListUnbilled", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			f.timeEntries.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
		})
	}
}

func TestMutaciones_OtraEmpresa(t *testing.T) {
	f := newFixture()
	f.expectLoad(stored(entity.InvoiceStatusDraft))

	_, err := f.uc.AddLineItem(context.Background(), "otra", invoiceID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición de líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestAddLineItem_AsignaIDPersistente(t *testing.T) {
	f := newFixture()
	f.expectLoad(stored(entity.InvoiceStatusDraft))
	f.invoices.On("ReplaceLineItems", mock.Anything, invoiceID, mock.MatchedBy(func(items []entity.LineItem) bool {
		if len(items) != 3 {
			return false
		}
		for _, li := range items {
			if li.IsTemporary() || li.InvoiceID != invoiceID {
				return false
			}
		}
		return true
	})).Return(nil)
	f.invoices.On("Update", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.uc.AddLineItem(context.Background(), companyID, invoiceID)
	require.NoError(t, err)

	require.Len(t, resp.LineItems, 3)
	assert.False(t, strings.HasPrefix(resp.LineItems[2].ID, entity.LineItemTempPrefix))
	assert.True(t, resp.Editable)
	f.invoices.AssertExpectations(t)
}

func TestUpdateLineItem_RecalculaTotales(t *testing.T) {
	f := newFixture()
	f.expectLoad(stored(entity.InvoiceStatusDraft))
	f.expectSave()

	resp, err := f.uc.UpdateLineItem(context.Background(), companyID, invoiceID, "li-1",
		dto.UpdateLineItemRequest{Field: "unitPrice", Value: "75"})
	require.NoError(t, err)

	assert.True(t, d("150").Equal(resp.LineItems[0].Total))
	assert.True(t, d("175").Equal(resp.Subtotal))
	assert.True(t, d("192.5").Equal(resp.Total))
}

func TestRemoveLineItem_LiberaEntradaDeTiempo(t *testing.T) {
	f := newFixture()
	f.expectLoad(stored(entity.InvoiceStatusDraft))
	f.expectSave()
	f.timeEntries.On("Release", mock.Anything, []string{"te-9"}).Return(nil)

	resp, err := f.uc.RemoveLineItem(context.Background(), companyID, invoiceID, "li-2")
	require.NoError(t, err)

	assert.Len(t, resp.LineItems, 1)
	assert.True(t, d("110").Equal(resp.Total))
	f.timeEntries.AssertExpectations(t)
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación de horas
// ──────────────────────────────────────────────────────────────────────────────

func TestImportTimeEntries_MarcaFacturadas(t *testing.T) {
	f := newFixture()
	inv := stored(entity.InvoiceStatusDraft)
	inv.LineItems = nil
	inv.TaxRate = nil
	f.expectLoad(inv)
	f.expectSave()
	ids := []string{"te-1", "te-2"}
	f.timeEntries.On("ListUnbilled", mock.Anything, companyID, "", ids).Return([]entity.TimeEntry{
		{ID: "te-1", ProjectTitle: "Portal", Description: "Maquetación", Hours: d("3"), HourlyRate: d("100"), Amount: d("300")},
		{ID: "te-2", ProjectTitle: "Portal", TaskTitle: "QA", Hours: d("1.5"), HourlyRate: d("80"), Amount: d("100")},
	}, nil)
	f.timeEntries.On("MarkInvoiced", mock.Anything, invoiceID, ids).Return(nil)

	resp, err := f.uc.ImportTimeEntries(context.Background(), companyID, invoiceID, dto.ImportTimeEntriesRequest{TimeEntryIDs: ids})
	require.NoError(t, err)

	require.Len(t, resp.LineItems, 2)
	assert.Equal(t, "te-1", resp.LineItems[0].TimeEntryID)
	assert.True(t, d("420").Equal(resp.Subtotal))
	assert.True(t, d("420").Equal(resp.Total))
	f.timeEntries.AssertExpectations(t)
}

func TestImportTimeEntries_IDsRepetidos(t *testing.T) {
	f := newFixture()

	_, err := f.uc.ImportTimeEntries(context.Background(), companyID, invoiceID,
		dto.ImportTimeEntriesRequest{TimeEntryIDs: []string{"te-1", "te-1"}})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	f.invoices.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
}

func TestImportTimeEntries_SinFiltroEsInvalido(t *testing.T) {
	f := newFixture()
	_, err := f.uc.ImportTimeEntries(context.Background(), companyID, invoiceID, dto.ImportTimeEntriesRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportTimeEntries_EntradaYaFacturada(t *testing.T) {
	f := newFixture()
	f.expectLoad(stored(entity.InvoiceStatusDraft))
	ids := []string{"te-1", "te-2"}
	f.timeEntries.On("ListUnbilled", mock.Anything, companyID, "", ids).Return([]entity.TimeEntry{
		{ID: "te-1", Hours: d("1"), HourlyRate: d("10")},
	}, nil)

	_, err := f.uc.ImportTimeEntries(context.Background(), companyID, invoiceID, dto.ImportTimeEntriesRequest{TimeEntryIDs: ids})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	f.timeEntries.AssertNotCalled(t, "MarkInvoiced", mock.Anything, mock.Anything, mock.Anything)
	f.invoices.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estados y pagos
// ──────────────────────────────────────────────────────────────────────────────

func TestSend_BloqueaLaFactura(t *testing.T) {
	f := newFixture()
	f.expectLoad(stored(entity.InvoiceStatusDraft))
	f.invoices.On("Update", mock.Anything, mock.MatchedBy(func(inv *entity.Invoice) bool {
		return inv.Status == entity.InvoiceStatusSent && inv.SentAt != nil
	})).Return(nil)

	resp, err := f.uc.Send(context.Background(), companyID, invoiceID)
	require.NoError(t, err)

	assert.Equal(t, "SENT", resp.Status)
	assert.False(t, resp.Editable)
	f.invoices.AssertNotCalled(t, "ReplaceLineItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancel_LiberaHoras(t *testing.T) {
	f := newFixture()
	f.expectLoad(stored(entity.InvoiceStatusSent))
	f.expectSave()
	f.timeEntries.On("Release", mock.Anything, []string{"te-9"}).Return(nil)

	resp, err := f.uc.Cancel(context.Background(), companyID, invoiceID)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
	f.timeEntries.AssertExpectations(t)
}

func TestCancel_PagadaEsTransicionInvalida(t *testing.T) {
	f := newFixture()
	f.expectLoad(stored(entity.InvoiceStatusPaid))

	_, err := f.uc.Cancel(context.Background(), companyID, invoiceID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	f.timeEntries.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestSyncPayments_AbonoParcial(t *testing.T) {
	f := newFixture()
	f.expectLoad(stored(entity.InvoiceStatusSent))
	f.expectSave()
	f.payments.On("ListByInvoice", mock.Anything, invoiceID).Return([]entity.Payment{{Amount: d("50")}}, nil)

	resp, err := f.uc.SyncPayments(context.Background(), companyID, invoiceID)
	require.NoError(t, err)

	assert.Equal(t, "PARTIAL", resp.Status)
	assert.True(t, d("87.5").Equal(resp.AmountDue))
}

func TestGet_UsaPagosRegistrados(t *testing.T) {
	f := newFixture()
	f.invoices.On("GetByID", mock.Anything, invoiceID).Return(stored(entity.InvoiceStatusSent), nil)
	f.payments.On("ListByInvoice", mock.Anything, invoiceID).Return([]entity.Payment{{Amount: d("37.5")}}, nil)

	resp, err := f.uc.Get(context.Background(), companyID, invoiceID)
	require.NoError(t, err)

	assert.True(t, d("137.5").Equal(resp.Total))
	assert.True(t, d("37.5").Equal(resp.AmountPaid))
	assert.True(t, d("100").Equal(resp.AmountDue))
	assert.Equal(t, "SENT", resp.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateDraft(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.clients.On("GetByID", ctx, "cli-1").Return(&entity.Client{ID: "cli-1", CompanyID: companyID}, nil)
	f.invoices.On("NextNumber", ctx, companyID, "INV").Return("INV-0007", nil)
	f.invoices.On("Create", ctx, mock.MatchedBy(func(inv *entity.Invoice) bool {
		return inv.Status == entity.InvoiceStatusDraft && inv.InvoiceNumber == "INV-0007" && inv.Terms == "Pago a 30 días"
	})).Return(nil)
	rate := d("19")

	resp, err := f.uc.CreateDraft(ctx, companyID, dto.CreateInvoiceRequest{ClientID: "cli-1", TaxRate: &rate})
	require.NoError(t, err)

	assert.Equal(t, "DRAFT", resp.Status)
	assert.Empty(t, resp.LineItems)
	assert.True(t, resp.Total.IsZero())
	require.NotNil(t, resp.TaxRate)
	assert.True(t, rate.Equal(*resp.TaxRate))
	f.invoices.AssertExpectations(t)
}

func TestCreateDraft_ClienteDeOtraEmpresa(t *testing.T) {
	f := newFixture()
	f.clients.On("GetByID", mock.Anything, "cli-1").Return(&entity.Client{ID: "cli-1", CompanyID: "otra"}, nil)

	_, err := f.uc.CreateDraft(context.Background(), companyID, dto.CreateInvoiceRequest{ClientID: "cli-1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	f.invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateDraft_TasaFueraDeRango(t *testing.T) {
	f := newFixture()
	f.clients.On("GetByID", mock.Anything, "cli-1").Return(&entity.Client{ID: "cli-1", CompanyID: companyID}, nil)
	rate := d("150")

	_, err := f.uc.CreateDraft(context.Background(), companyID, dto.CreateInvoiceRequest{ClientID: "cli-1", TaxRate: &rate})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
