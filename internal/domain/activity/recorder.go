// Package activity construye las entradas de la bitácora de cotizaciones.
// Las entradas son valores inmutables: se crean aquí y nunca se modifican.
package activity

import (
	"time"

	"github.com/google/uuid"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
)

// Recorder genera ActivityEntry con reloj y generador de IDs inyectables.
type Recorder struct {
	now   func() time.Time
	newID func() string
}

// Option configura un Recorder.
type Option func(*Recorder)

// WithClock reemplaza time.Now (útil en tests).
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithIDGenerator reemplaza el generador uuid.
func WithIDGenerator(newID func() string) Option {
	return func(r *Recorder) { r.newID = newID }
}

// NewRecorder construye el recorder con time.Now (UTC) y uuid v4 por defecto.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now devuelve la hora del reloj del recorder.
func (r *Recorder) Now() time.Time { return r.now() }

// StatusChange entrada para un cambio de estado {from, to}.
func (r *Recorder) StatusChange(quoteID string, from, to entity.QuoteStatus) entity.ActivityEntry {
	return r.entry(quoteID, entity.ActivityStatusChange, map[string]string{
		"from": string(from),
		"to":   string(to),
	})
}

// NotesUpdated entrada sin payload: el contenido de las notas es interno.
func (r *Recorder) NotesUpdated(quoteID string) entity.ActivityEntry {
	return r.entry(quoteID, entity.ActivityNotesUpdated, map[string]string{})
}

// EstimateUpdated entrada con el monto anterior y el nuevo ("" = sin estimar).
func (r *Recorder) EstimateUpdated(quoteID, from, to string) entity.ActivityEntry {
	return r.entry(quoteID, entity.ActivityEstimateUpdated, map[string]string{
		"from": from,
		"to":   to,
	})
}

func (r *Recorder) entry(quoteID string, action entity.ActivityAction, metadata map[string]string) entity.ActivityEntry {
	return entity.ActivityEntry{
		ID:        r.newID(),
		QuoteID:   quoteID,
		Action:    action,
		Metadata:  metadata,
		CreatedAt: r.now(),
	}
}

// Append devuelve un nuevo slice con e al final, sin tocar el backing array de log.
func Append(log []entity.ActivityEntry, e entity.ActivityEntry) []entity.ActivityEntry {
	out := make([]entity.ActivityEntry, len(log), len(log)+1)
	copy(out, log)
	return append(out, e)
}
