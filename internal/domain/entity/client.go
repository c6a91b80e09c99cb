package entity

import "time"

// Client cliente facturable de la agencia.
type Client struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	TaxID     string // opcional
	CreatedAt time.Time
	UpdatedAt time.Time
}
