package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/billing"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/dto"
)

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	uc    *billing.InvoiceUseCase
	pdfUC *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdfUC *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Crear factura en borrador
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateInvoiceRequest  true  "Cliente, proyecto, impuesto"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateDraft(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Estado"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.InvoiceListResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var q dto.InvoiceListQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.Context(), GetCompanyID(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de factura con líneas y totales
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusOK)(h.uc.Get(c.Context(), GetCompanyID(c), id))
}

// UpdateDetails godoc
// @Summary      Editar impuesto, vencimiento, notas o términos (solo DRAFT)
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID de la factura"
// @Param        body  body  dto.UpdateInvoiceRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [patch]
func (h *InvoiceHandler) UpdateDetails(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateInvoiceRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusOK)(h.uc.UpdateDetails(c.Context(), GetCompanyID(c), id, in))
}

// AddLineItem godoc
// @Summary      Agregar línea vacía
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/items [post]
func (h *InvoiceHandler) AddLineItem(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusCreated)(h.uc.AddLineItem(c.Context(), GetCompanyID(c), id))
}

// UpdateLineItem godoc
// @Summary      Editar un campo de una línea
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  string                     true  "ID de la factura"
// @Param        itemId  path  string                     true  "ID de la línea"
// @Param        body    body  dto.UpdateLineItemRequest  true  "Campo y valor"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/items/{itemId} [patch]
func (h *InvoiceHandler) UpdateLineItem(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	itemID, err := uuidParam(c, "itemId")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateLineItemRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusOK)(h.uc.UpdateLineItem(c.Context(), GetCompanyID(c), id, itemID, in))
}

// RemoveLineItem godoc
// @Summary      Eliminar una línea
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  string  true  "ID de la factura"
// @Param        itemId  path  string  true  "ID de la línea"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/items/{itemId} [delete]
func (h *InvoiceHandler) RemoveLineItem(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	itemID, err := uuidParam(c, "itemId")
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusOK)(h.uc.RemoveLineItem(c.Context(), GetCompanyID(c), id, itemID))
}

// ImportTimeEntries godoc
// @Summary      Importar horas no facturadas como líneas
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                        true  "ID de la factura"
// @Param        body  body  dto.ImportTimeEntriesRequest  true  "Proyecto o lista de horas"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/import-time [post]
func (h *InvoiceHandler) ImportTimeEntries(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ImportTimeEntriesRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusOK)(h.uc.ImportTimeEntries(c.Context(), GetCompanyID(c), id, in))
}

// Send godoc
// @Summary      Enviar factura (DRAFT → SENT, asigna vencimiento)
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/send [post]
func (h *InvoiceHandler) Send(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusOK)(h.uc.Send(c.Context(), GetCompanyID(c), id))
}

// Cancel godoc
// @Summary      Anular factura y liberar las horas importadas
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/cancel [post]
func (h *InvoiceHandler) Cancel(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusOK)(h.uc.Cancel(c.Context(), GetCompanyID(c), id))
}

// SyncPayments godoc
// @Summary      Recalcular pagado y estado a partir de los pagos registrados
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/payments/sync [post]
func (h *InvoiceHandler) SyncPayments(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusOK)(h.uc.SyncPayments(c.Context(), GetCompanyID(c), id))
}

// DownloadPDF godoc
// @Summary      Descargar la factura en PDF (no disponible en DRAFT)
// @Tags         invoices
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	pdfBytes, filename, err := h.pdfUC.DownloadInvoicePDF(c.Context(), GetCompanyID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// respond escribe la factura con el status indicado o mapea el error.
func (h *InvoiceHandler) respond(c *fiber.Ctx, status int) func(*dto.InvoiceResponse, error) error {
	return func(out *dto.InvoiceResponse, err error) error {
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(status).JSON(out)
	}
}
