package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name    string   `json:"name" validate:"required,min=1,max=200"`
	Slug    string   `json:"slug" validate:"required,min=3,max=60,lowercase"`
	Address string   `json:"address"`
	Phone   string   `json:"phone"`
	Email   string   `json:"email" validate:"omitempty,email"`
	Modules []string `json:"modules" validate:"omitempty,dive,oneof=quotes billing"` // vacío = todos
}

// CompanyResponse salida de una empresa (sin datos sensibles).
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
