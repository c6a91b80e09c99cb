package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmitQuoteRequest body del formulario público POST /api/public/:companyId/quotes.
type SubmitQuoteRequest struct {
	ContactName  string   `json:"contact_name" validate:"required,max=200"`
	ContactEmail string   `json:"contact_email" validate:"required,email"`
	ContactPhone string   `json:"contact_phone" validate:"omitempty,max=40"`
	CompanyName  string   `json:"company_name" validate:"omitempty,max=200"`
	Website      string   `json:"website" validate:"omitempty,max=300"`
	ProjectType  string   `json:"project_type" validate:"omitempty,max=100"`
	Services     []string `json:"services" validate:"max=20,dive,max=100"`
	BudgetRange  string   `json:"budget_range" validate:"omitempty,oneof=under-5k 5k-10k 10k-25k 25k-50k 50k-plus"`
	Timeline     string   `json:"timeline" validate:"omitempty,oneof=asap 1-month 1-3-months 3-6-months flexible"`
	Description  string   `json:"description" validate:"required,max=10000"`
}

// ChangeQuoteStatusRequest body para PATCH /api/quotes/:id/status.
type ChangeQuoteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=NEW CONTACTED QUALIFIED PROPOSAL ACCEPTED DECLINED"`
}

// UpdateQuoteNotesRequest body para PATCH /api/quotes/:id/notes. Notes vacío borra las notas.
type UpdateQuoteNotesRequest struct {
	Notes string `json:"notes" validate:"max=10000"`
}

// UpdateQuoteEstimateRequest body para PATCH /api/quotes/:id/estimate. Amount null borra el estimado.
type UpdateQuoteEstimateRequest struct {
	Amount *decimal.Decimal `json:"amount" validate:"omitempty,gte=0"`
}

// QuoteListQuery filtros de GET /api/quotes.
type QuoteListQuery struct {
	PageRequest
	Status  string `query:"status" validate:"omitempty,oneof=NEW CONTACTED QUALIFIED PROPOSAL ACCEPTED DECLINED"`
	Quality string `query:"quality" validate:"omitempty,oneof=hot warm cold"`
}

// QuoteResponse cotización en respuestas.
type QuoteResponse struct {
	ID              string             `json:"id"`
	CompanyID       string             `json:"company_id"`
	ContactName     string             `json:"contact_name"`
	ContactEmail    string             `json:"contact_email"`
	ContactPhone    string             `json:"contact_phone,omitempty"`
	CompanyName     string             `json:"company_name,omitempty"`
	Website         string             `json:"website,omitempty"`
	ProjectType     string             `json:"project_type,omitempty"`
	Services        []string           `json:"services"`
	BudgetRange     string             `json:"budget_range,omitempty"`
	Timeline        string             `json:"timeline,omitempty"`
	Description     string             `json:"description"`
	Status          string             `json:"status"`
	StatusLabel     string             `json:"status_label"`
	AllowedNext     []string           `json:"allowed_next"`
	Notes           string             `json:"notes,omitempty"`
	EstimatedAmount *decimal.Decimal   `json:"estimated_amount,omitempty"`
	LeadScore       int                `json:"lead_score"`
	LeadQuality     string             `json:"lead_quality"`
	Activity        []ActivityResponse `json:"activity,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// PublicQuoteResponse acuse de recibo para el formulario público (sin datos internos).
type PublicQuoteResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityResponse entrada de la bitácora.
type ActivityResponse struct {
	ID        string            `json:"id"`
	Action    string            `json:"action"`
	Metadata  map[string]string `json:"metadata"`
	ActorID   string            `json:"actor_id,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// QuoteListResponse lista paginada de cotizaciones.
type QuoteListResponse struct {
	Items []QuoteResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
