package billing

import (
	"context"
	"fmt"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/invoicing"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
// Solo se permite para facturas ya enviadas: un DRAFT todavía puede cambiar.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	companyRepo repository.CompanyRepository
	clientRepo  repository.ClientRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	companyRepo repository.CompanyRepository,
	clientRepo repository.ClientRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		companyRepo: companyRepo,
		clientRepo:  clientRepo,
		generator:   generator,
	}
}

// DownloadInvoicePDF carga factura, empresa, cliente y pagos, y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
//   - domain.ErrForbidden        si la factura no pertenece a la empresa del token.
//   - domain.ErrInvalidInput     si la factura sigue en DRAFT.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, companyID, invoiceID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar factura ─────────────────────────────────────────────────────
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if err := checkOwnership(inv, companyID); err != nil {
		return nil, "", err
	}
	if invoicing.CanEdit(*inv) {
		return nil, "", fmt.Errorf("%w: la factura %s está en borrador; envíela antes de descargar el PDF",
			domain.ErrInvalidInput, inv.InvoiceNumber)
	}

	// ── 2. Empresa, cliente y pagos en paralelo ───────────────────────────────
	var (
		company  *entity.Company
		client   *entity.Client
		payments []entity.Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := uc.companyRepo.GetByID(companyID)
		if err != nil {
			return fmt.Errorf("pdf: obtener empresa: %w", err)
		}
		if c == nil {
			return fmt.Errorf("pdf: empresa %s: %w", companyID, domain.ErrNotFound)
		}
		company = c
		return nil
	})
	g.Go(func() error {
		c, err := uc.clientRepo.GetByID(gctx, inv.ClientID)
		if err != nil {
			return fmt.Errorf("pdf: obtener cliente: %w", err)
		}
		if c == nil {
			return fmt.Errorf("pdf: cliente %s: %w", inv.ClientID, domain.ErrNotFound)
		}
		client = c
		return nil
	})
	g.Go(func() error {
		p, err := uc.paymentRepo.ListByInvoice(gctx, invoiceID)
		if err != nil {
			return fmt.Errorf("pdf: obtener pagos: %w", err)
		}
		payments = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	// ── 3. Generar PDF ────────────────────────────────────────────────────────
	snapshot := *inv
	snapshot.AmountPaid = sumPayments(payments)
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, InvoiceDocument{
		Invoice:  invoicing.RecalculateTotals(snapshot),
		Company:  *company,
		Client:   *client,
		Payments: payments,
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("factura_%s.pdf", inv.InvoiceNumber)
	return pdfBytes, filename, nil
}
