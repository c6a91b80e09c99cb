package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=40"`
	TaxID string `json:"tax_id,omitempty" validate:"omitempty,max=40"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// CreateInvoiceRequest body para POST /api/invoices. La factura nace en DRAFT y sin líneas.
type CreateInvoiceRequest struct {
	ClientID  string           `json:"client_id" validate:"required,uuid"`
	ProjectID string           `json:"project_id,omitempty" validate:"omitempty,uuid"`
	TaxRate   *decimal.Decimal `json:"tax_rate,omitempty" validate:"omitempty,gte=0,lte=100"` // porcentaje; null = sin impuesto
	DueDate   *time.Time       `json:"due_date,omitempty"` // null = hoy + INVOICE_DUE_DAYS
	Notes     string           `json:"notes,omitempty" validate:"max=5000"`
	Terms     string           `json:"terms,omitempty" validate:"max=5000"` // vacío = INVOICE_DEFAULT_TERMS
}

// UpdateInvoiceRequest body para PATCH /api/invoices/:id (solo DRAFT). Campos null no cambian.
type UpdateInvoiceRequest struct {
	TaxRate      *decimal.Decimal `json:"tax_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
	ClearTaxRate bool             `json:"clear_tax_rate,omitempty"`
	DueDate      *time.Time       `json:"due_date,omitempty"`
	Notes        *string          `json:"notes,omitempty" validate:"omitempty,max=5000"`
	Terms        *string          `json:"terms,omitempty" validate:"omitempty,max=5000"`
}

// UpdateLineItemRequest body para PATCH /api/invoices/:id/items/:itemId.
// Value llega como texto, igual que desde el editor de la factura.
type UpdateLineItemRequest struct {
	Field string `json:"field" validate:"required,oneof=description quantity unitPrice"`
	Value string `json:"value" validate:"max=2000"`
}

// ImportTimeEntriesRequest body para POST /api/invoices/:id/import-time.
// Sin TimeEntryIDs se importan todas las horas pendientes del proyecto; uno de los dos es obligatorio.
type ImportTimeEntriesRequest struct {
	ProjectID    string   `json:"project_id,omitempty" validate:"omitempty,uuid"`
	TimeEntryIDs []string `json:"time_entry_ids,omitempty" validate:"max=500,dive,uuid"`
}

// LineItemResponse línea de factura.
type LineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	TimeEntryID string          `json:"time_entry_id,omitempty"`
	Position    int             `json:"position"`
}

// InvoiceResponse factura con líneas y totales para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID            string             `json:"id"`
	CompanyID     string             `json:"company_id"`
	ClientID      string             `json:"client_id"`
	ProjectID     string             `json:"project_id,omitempty"`
	InvoiceNumber string             `json:"invoice_number"`
	Status        string             `json:"status"`
	Editable      bool               `json:"editable"`
	LineItems     []LineItemResponse `json:"line_items"`
	TaxRate       *decimal.Decimal   `json:"tax_rate,omitempty"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TaxAmount     decimal.Decimal    `json:"tax_amount"`
	Total         decimal.Decimal    `json:"total"`
	AmountPaid    decimal.Decimal    `json:"amount_paid"`
	AmountDue     decimal.Decimal    `json:"amount_due"`
	DueDate       time.Time          `json:"due_date"`
	Notes         string             `json:"notes,omitempty"`
	Terms         string             `json:"terms,omitempty"`
	SentAt        *time.Time         `json:"sent_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// InvoiceListResponse lista paginada de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// InvoiceListQuery filtros de GET /api/invoices.
type InvoiceListQuery struct {
	PageRequest
	Status string `query:"status" validate:"omitempty,oneof=DRAFT SENT VIEWED PARTIAL PAID OVERDUE CANCELLED"`
}
