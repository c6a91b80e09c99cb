package repository

import (
	"context"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
// GetByID devuelve (nil, nil) si no existe; la factura vuelve con LineItems ordenadas por posición.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetByIDForUpdate bloquea la cabecera hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	ListByCompany(ctx context.Context, companyID string, status entity.InvoiceStatus, limit, offset int) ([]*entity.Invoice, error)
	// Update persiste cabecera, totales y estado.
	Update(ctx context.Context, inv *entity.Invoice) error
	// ReplaceLineItems sustituye el conjunto de líneas de la factura.
	ReplaceLineItems(ctx context.Context, invoiceID string, items []entity.LineItem) error
	// NextNumber reserva el siguiente consecutivo de la empresa con el prefijo dado.
	NextNumber(ctx context.Context, companyID, prefix string) (string, error)
}

// PaymentRepository lectura de pagos registrados por el procesador de pagos.
type PaymentRepository interface {
	ListByInvoice(ctx context.Context, invoiceID string) ([]entity.Payment, error)
}

// TimeEntryRepository acceso a las horas registradas por el módulo de tiempos.
type TimeEntryRepository interface {
	// ListUnbilled devuelve las entradas facturables de la empresa, sin factura asignada,
	// cuyos IDs estén en ids. Si ids está vacío devuelve todas las pendientes del proyecto.
	ListUnbilled(ctx context.Context, companyID, projectID string, ids []string) ([]entity.TimeEntry, error)
	MarkInvoiced(ctx context.Context, invoiceID string, ids []string) error
	// Release desasocia las entradas de su factura (línea eliminada o factura anulada).
	Release(ctx context.Context, ids []string) error
}
