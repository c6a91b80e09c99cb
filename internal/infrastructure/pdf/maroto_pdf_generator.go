// Package pdf genera la representación imprimible de las facturas de la agencia.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Agencia              │  N° Factura + Fechas         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email                             │
//	│  CLIENTE: Nombre + contacto                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Cant | P.Unit | Total                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuesto / Total / Pagado / Saldo       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Pagos + Notas + Términos + QR de referencia         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/pinkbeambot/pinkbeam-sub001/internal/application/billing"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 214, Green: 51, Blue: 132}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, doc appbilling.InvoiceDocument) ([]byte, error) {
	inv := doc.Invoice
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+inv.InvoiceNumber, true).
		WithAuthor(doc.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv, doc.Company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(doc.Company))
	m.AddRows(clientRow(doc.Client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(inv.LineItems)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(inv, doc.Payments)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: agencia (izq) y N° factura + emisión + vencimiento (der).
func headerRow(inv entity.Invoice, company entity.Company) core.Row {
	issued := inv.CreatedAt
	if inv.SentAt != nil {
		issued = *inv.SentAt
	}
	return row.New(20).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Emitida: "+issued.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Vence: "+inv.DueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

// emisorRow: datos de contacto de la agencia.
func emisorRow(company entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
				nonEmpty(company.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// clientRow: datos del cliente facturado.
func clientRow(client entity.Client) core.Row {
	contact := fmt.Sprintf("Email: %s   |   Tel: %s", nonEmpty(client.Email, "—"), nonEmpty(client.Phone, "—"))
	if client.TaxID != "" {
		contact = "ID fiscal: " + client.TaxID + "   |   " + contact
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PARA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(client.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Descripción", 6, align.Left),
		h("Cant.", 2, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableDetailRows: una fila por línea de la factura.
func tableDetailRows(items []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, li := range items {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				li.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				li.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(li.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(li.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(inv entity.Invoice) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: top,
		})
	}

	taxLabel := "Impuesto:"
	if inv.TaxRate != nil {
		taxLabel = fmt.Sprintf("Impuesto (%s%%):", inv.TaxRate.String())
	}
	return row.New(30).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 0),
			label(taxLabel, 5),
			label("Total:", 10),
			label("Pagado:", 15),
			grand("SALDO:", 21),
		),
		col.New(3).Add(
			value("$"+formatMoney(inv.Subtotal), 0),
			value("$"+formatMoney(inv.TaxAmount), 5),
			value("$"+formatMoney(inv.Total), 10),
			value("$"+formatMoney(inv.AmountPaid), 15),
			grand("$"+formatMoney(inv.AmountDue), 21),
		),
	)
}

// footerRows: pagos recibidos, notas, términos y QR con la referencia de pago.
func footerRows(inv entity.Invoice, payments []entity.Payment) []core.Row {
	var rows []core.Row
	section := func(title string) core.Row {
		return row.New(6).Add(col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		))
	}
	paragraph := func(s string) core.Row {
		lines := strings.Count(s, "\n") + 1
		return row.New(float64(4*lines + 2)).Add(col.New(12).Add(
			text.New(s, props.Text{Size: 8, Color: colorGray, Top: 1}),
		))
	}

	if len(payments) > 0 {
		rows = append(rows, section("PAGOS RECIBIDOS"))
		for _, p := range payments {
			desc := fmt.Sprintf("%s   %s   $%s", p.PaidAt.Format("02/01/2006"), p.Method, formatMoney(p.Amount))
			if p.Reference != "" {
				desc += "   ref. " + p.Reference
			}
			rows = append(rows, row.New(5).Add(col.New(12).Add(
				text.New(desc, props.Text{Size: 8, Top: 0.5, Left: 2}),
			)))
		}
	}
	if inv.Notes != "" {
		rows = append(rows, section("NOTAS"), paragraph(inv.Notes))
	}
	if inv.Terms != "" {
		rows = append(rows, section("TÉRMINOS"), paragraph(inv.Terms))
	}

	rows = append(rows, row.New(3))
	rows = append(rows, row.New(40).Add(
		col.New(3).Add(code.NewQr(paymentReference(inv), props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Referencia de pago", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 6, Left: 3, Color: colorPrimary,
			}),
			text.New(paymentReference(inv), props.Text{
				Size: 8, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// paymentReference texto codificado en el QR: número de factura y saldo.
func paymentReference(inv entity.Invoice) string {
	return fmt.Sprintf("%s|%s", inv.InvoiceNumber, inv.AmountDue.StringFixed(2))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney redondea a 2 decimales con puntos de miles y coma decimal.
// Ej: 25000 → "25.000,00", -1234.5 → "-1.234,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "," + frac
}
