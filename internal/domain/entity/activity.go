package entity

import "time"

// ActivityAction tipo de mutación registrada en la bitácora de una cotización.
type ActivityAction string

const (
	ActivityStatusChange    ActivityAction = "status_change"
	ActivityNotesUpdated    ActivityAction = "notes_updated"
	ActivityEstimateUpdated ActivityAction = "estimate_updated"
)

// ActivityEntry registro inmutable de una mutación sobre una QuoteRequest.
// Metadata depende de la acción: {from, to} para status_change y estimate_updated,
// vacío para notes_updated (el contenido de las notas no se copia a la bitácora).
type ActivityEntry struct {
	ID        string
	QuoteID   string
	Action    ActivityAction
	Metadata  map[string]string
	ActorID   string // usuario que ejecutó la acción; vacío si fue el sistema
	CreatedAt time.Time
}
