package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry registro de horas trabajadas en un proyecto; puede importarse como línea de factura.
type TimeEntry struct {
	ID           string
	CompanyID    string
	ProjectID    string
	ProjectTitle string
	TaskTitle    string
	Description  string
	Hours        decimal.Decimal
	HourlyRate   decimal.Decimal
	Amount       decimal.Decimal // almacenado por el módulo de tiempos; puede diferir de Hours*HourlyRate
	Billable     bool
	InvoiceID    string // vacío = aún no facturada
	Date         time.Time
}
