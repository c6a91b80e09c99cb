package invoicing_test

import (
	"testing"
	"time"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/invoicing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sentAt = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestSend_DraftValida(t *testing.T) {
	in := scenarioInvoice(entity.InvoiceStatusDraft)

	out, err := invoicing.Send(in, sentAt)
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusSent, out.Status)
	require.NotNil(t, out.SentAt)
	assert.Equal(t, sentAt, *out.SentAt)
	assertDec(t, "137.5", out.Total)
	assert.False(t, invoicing.CanEdit(out))
}

func TestSend_Rechazos(t *testing.T) {
	t.Run("sin líneas", func(t *testing.T) {
		in := entity.Invoice{Status: entity.InvoiceStatusDraft, ClientID: "cli-1"}
		out, err := invoicing.Send(in, sentAt)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, in, out)
	})

	t.Run("línea sin descripción", func(t *testing.T) {
		in := scenarioInvoice(entity.InvoiceStatusDraft)
		in.LineItems[0].Description = " "
		_, err := invoicing.Send(in, sentAt)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("sin cliente", func(t *testing.T) {
		in := scenarioInvoice(entity.InvoiceStatusDraft)
		in.ClientID = ""
		_, err := invoicing.Send(in, sentAt)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("ya enviada", func(t *testing.T) {
		in := scenarioInvoice(entity.InvoiceStatusSent)
		out, err := invoicing.Send(in, sentAt)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Equal(t, in, out)
	})
}

func TestTransition_Grafo(t *testing.T) {
	cases := []struct {
		from, to entity.InvoiceStatus
		ok       bool
	}{
		{entity.InvoiceStatusDraft, entity.InvoiceStatusCancelled, true},
		{entity.InvoiceStatusDraft, entity.InvoiceStatusPaid, false},
		{entity.InvoiceStatusSent, entity.InvoiceStatusViewed, true},
		{entity.InvoiceStatusPartial, entity.InvoiceStatusCancelled, false},
		{entity.InvoiceStatusOverdue, entity.InvoiceStatusPaid, true},
		{entity.InvoiceStatusPaid, entity.InvoiceStatusDraft, false},
		{entity.InvoiceStatusCancelled, entity.InvoiceStatusDraft, false},
	}
	for _, tc := range cases {
		in := entity.Invoice{Status: tc.from}
		out, err := invoicing.Transition(in, tc.to, sentAt)
		if tc.ok {
			require.NoError(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.to, out.Status)
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
		assert.Equal(t, in, out)
	}
}

func TestApplyPayments(t *testing.T) {
	sent := invoicing.RecalculateTotals(scenarioInvoice(entity.InvoiceStatusSent))
	sent.AmountPaid = dec("0")

	t.Run("abono parcial", func(t *testing.T) {
		out := invoicing.ApplyPayments(sent, []entity.Payment{{Amount: dec("37.5")}}, sentAt)
		assert.Equal(t, entity.InvoiceStatusPartial, out.Status)
		assertDec(t, "37.5", out.AmountPaid)
		assertDec(t, "100", out.AmountDue)
	})

	t.Run("pago total", func(t *testing.T) {
		out := invoicing.ApplyPayments(sent, []entity.Payment{{Amount: dec("100")}, {Amount: dec("37.5")}}, sentAt)
		assert.Equal(t, entity.InvoiceStatusPaid, out.Status)
		assert.True(t, out.AmountDue.IsZero())
	})

	t.Run("sin pagos no cambia estado", func(t *testing.T) {
		out := invoicing.ApplyPayments(sent, nil, sentAt)
		assert.Equal(t, entity.InvoiceStatusSent, out.Status)
		assertDec(t, "137.5", out.AmountDue)
	})

	t.Run("draft solo actualiza saldo", func(t *testing.T) {
		draft := scenarioInvoice(entity.InvoiceStatusDraft)
		out := invoicing.ApplyPayments(draft, []entity.Payment{{Amount: dec("200")}}, sentAt)
		assert.Equal(t, entity.InvoiceStatusDraft, out.Status)
		assertDec(t, "-62.5", out.AmountDue)
	})
}
