package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"   // dueño de la agencia
	RoleManager = "manager" // gestiona cotizaciones y facturas
	RoleClient  = "client"  // acceso de solo lectura al portal de clientes
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, manager, client
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
