package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus estado de una solicitud de cotización en el pipeline comercial.
type QuoteStatus string

const (
	QuoteStatusNew       QuoteStatus = "NEW"
	QuoteStatusContacted QuoteStatus = "CONTACTED"
	QuoteStatusQualified QuoteStatus = "QUALIFIED"
	QuoteStatusProposal  QuoteStatus = "PROPOSAL"
	QuoteStatusAccepted  QuoteStatus = "ACCEPTED"
	QuoteStatusDeclined  QuoteStatus = "DECLINED"
)

// QuoteStatuses lista los estados en orden de pipeline.
var QuoteStatuses = []QuoteStatus{
	QuoteStatusNew,
	QuoteStatusContacted,
	QuoteStatusQualified,
	QuoteStatusProposal,
	QuoteStatusAccepted,
	QuoteStatusDeclined,
}

// IsValid informa si el estado pertenece al enum cerrado.
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusNew, QuoteStatusContacted, QuoteStatusQualified,
		QuoteStatusProposal, QuoteStatusAccepted, QuoteStatusDeclined:
		return true
	}
	return false
}

// Label etiqueta legible para paneles de administración.
func (s QuoteStatus) Label() string {
	switch s {
	case QuoteStatusNew:
		return "Nueva"
	case QuoteStatusContacted:
		return "Contactada"
	case QuoteStatusQualified:
		return "Calificada"
	case QuoteStatusProposal:
		return "Propuesta enviada"
	case QuoteStatusAccepted:
		return "Aceptada"
	case QuoteStatusDeclined:
		return "Rechazada"
	}
	return string(s)
}

// LeadQuality cuantización del lead score.
type LeadQuality string

const (
	LeadQualityHot  LeadQuality = "hot"
	LeadQualityWarm LeadQuality = "warm"
	LeadQualityCold LeadQuality = "cold"
)

// QuoteRequest solicitud de cotización enviada desde el sitio público.
type QuoteRequest struct {
	ID              string
	CompanyID       string
	ContactName     string
	ContactEmail    string
	ContactPhone    string
	CompanyName     string // empresa del prospecto (opcional)
	Website         string
	ProjectType     string
	Services        []string
	BudgetRange     string // clave de la tabla de presupuestos (ver quote.BudgetRanges)
	Timeline        string // clave de la tabla de plazos (ver quote.Timelines)
	Description     string
	Status          QuoteStatus
	Notes           string           // interno, nunca visible al prospecto
	EstimatedAmount *decimal.Decimal // nil = sin estimar
	LeadScore       int              // 0..100, se calcula una sola vez al crear
	LeadQuality     LeadQuality
	Activity        []ActivityEntry // bitácora append-only
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
