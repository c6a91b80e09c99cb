package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/pinkbeambot/pinkbeam-sub001/internal/application/billing"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00",
		"25000":     "25.000,00",
		"1000000":   "1.000.000,00",
		"137.5":     "137,50",
		"-1234.5":   "-1.234,50",
		"999.999":   "1.000,00",
		"123456.78": "123.456,78",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestPaymentReference(t *testing.T) {
	inv := entity.Invoice{InvoiceNumber: "INV-0003", AmountDue: decimal.RequireFromString("87.5")}
	assert.Equal(t, "INV-0003|87.50", paymentReference(inv))
}

func TestGenerateInvoicePDF(t *testing.T) {
	rate := decimal.NewFromInt(10)
	sent := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := appbilling.InvoiceDocument{
		Invoice: entity.Invoice{
			InvoiceNumber: "INV-0001",
			Status:        entity.InvoiceStatusPartial,
			TaxRate:       &rate,
			LineItems: []entity.LineItem{
				{Description: "Diseño de marca", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50), Total: decimal.NewFromInt(100)},
				{Description: "Portal - QA (1.5h)", Quantity: decimal.RequireFromString("1.5"), UnitPrice: decimal.NewFromInt(80), Total: decimal.NewFromInt(120)},
			},
			Subtotal:   decimal.NewFromInt(220),
			TaxAmount:  decimal.NewFromInt(22),
			Total:      decimal.NewFromInt(242),
			AmountPaid: decimal.NewFromInt(100),
			AmountDue:  decimal.NewFromInt(142),
			DueDate:    sent.AddDate(0, 0, 30),
			Notes:      "Gracias por confiar en nosotros.",
			Terms:      "Pago a 30 días.\nTransferencia bancaria.",
			SentAt:     &sent,
		},
		Company:  entity.Company{Name: "Pinkbeam Studio", Email: "hola@pinkbeam.io"},
		Client:   entity.Client{Name: "Acme", Email: "pagos@acme.io"},
		Payments: []entity.Payment{{Amount: decimal.NewFromInt(100), Method: "transfer", Reference: "TX-1", PaidAt: sent}},
	}

	out, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
