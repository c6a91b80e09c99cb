// Package quote implementa el ciclo de vida de una solicitud de cotización:
// transiciones de estado, notas internas, monto estimado y lead scoring.
//
// Todas las operaciones reciben la cotización por valor y devuelven una copia
// modificada; si fallan, devuelven la entrada sin cambios.
package quote

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/activity"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
)

// AllowedTransitions devuelve los estados destino válidos desde from.
//
//	NEW       -> CONTACTED, DECLINED
//	CONTACTED -> QUALIFIED, DECLINED
//	QUALIFIED -> PROPOSAL, DECLINED
//	PROPOSAL  -> ACCEPTED, DECLINED, QUALIFIED
//	ACCEPTED  -> (terminal)
//	DECLINED  -> NEW (reapertura)
func AllowedTransitions(from entity.QuoteStatus) []entity.QuoteStatus {
	switch from {
	case entity.QuoteStatusNew:
		return []entity.QuoteStatus{entity.QuoteStatusContacted, entity.QuoteStatusDeclined}
	case entity.QuoteStatusContacted:
		return []entity.QuoteStatus{entity.QuoteStatusQualified, entity.QuoteStatusDeclined}
	case entity.QuoteStatusQualified:
		return []entity.QuoteStatus{entity.QuoteStatusProposal, entity.QuoteStatusDeclined}
	case entity.QuoteStatusProposal:
		return []entity.QuoteStatus{entity.QuoteStatusAccepted, entity.QuoteStatusDeclined, entity.QuoteStatusQualified}
	case entity.QuoteStatusDeclined:
		return []entity.QuoteStatus{entity.QuoteStatusNew}
	}
	return nil
}

// CanTransition informa si from -> to es una arista del grafo.
func CanTransition(from, to entity.QuoteStatus) bool {
	for _, s := range AllowedTransitions(from) {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal informa si el estado no admite más transiciones.
func IsTerminal(s entity.QuoteStatus) bool {
	return s.IsValid() && len(AllowedTransitions(s)) == 0
}

// Submission datos enviados desde el formulario público de cotización.
type Submission struct {
	ContactName  string
	ContactEmail string
	ContactPhone string
	CompanyName  string
	Website      string
	ProjectType  string
	Services     []string
	BudgetRange  string
	Timeline     string
	Description  string
}

// Lifecycle aplica las reglas del pipeline comercial.
type Lifecycle struct {
	policy   ScoringPolicy
	recorder *activity.Recorder
}

// NewLifecycle construye el servicio de dominio. Si recorder es nil usa el reloj real.
func NewLifecycle(policy ScoringPolicy, recorder *activity.Recorder) *Lifecycle {
	if recorder == nil {
		recorder = activity.NewRecorder()
	}
	return &Lifecycle{policy: policy, recorder: recorder}
}

// Policy devuelve la política de scoring en uso.
func (l *Lifecycle) Policy() ScoringPolicy { return l.policy }

// NewQuote valida la solicitud y crea la cotización en NEW con su lead score.
// El score se calcula aquí y no se vuelve a calcular en mutaciones posteriores.
func (l *Lifecycle) NewQuote(id, companyID string, in Submission) (entity.QuoteRequest, error) {
	in = normalize(in)
	if err := validateSubmission(in); err != nil {
		return entity.QuoteRequest{}, err
	}
	now := l.recorder.Now()
	q := entity.QuoteRequest{
		ID:           id,
		CompanyID:    companyID,
		ContactName:  in.ContactName,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		CompanyName:  in.CompanyName,
		Website:      in.Website,
		ProjectType:  in.ProjectType,
		Services:     in.Services,
		BudgetRange:  in.BudgetRange,
		Timeline:     in.Timeline,
		Description:  in.Description,
		Status:       entity.QuoteStatusNew,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	score := ComputeLeadScore(q, l.policy)
	q.LeadScore = score.Score
	q.LeadQuality = score.Quality
	return q, nil
}

// ApplyStatusTransition mueve la cotización a target y registra status_change.
// Devuelve domain.ErrInvalidTransition (y q sin cambios) si la arista no existe.
func (l *Lifecycle) ApplyStatusTransition(q entity.QuoteRequest, target entity.QuoteStatus) (entity.QuoteRequest, *entity.ActivityEntry, error) {
	if !CanTransition(q.Status, target) {
		return q, nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, q.Status, target)
	}
	e := l.recorder.StatusChange(q.ID, q.Status, target)
	out := q
	out.Status = target
	out.Activity = activity.Append(q.Activity, e)
	out.UpdatedAt = e.CreatedAt
	return out, &e, nil
}

// UpdateNotes sobrescribe las notas internas. Si no cambian no registra nada.
func (l *Lifecycle) UpdateNotes(q entity.QuoteRequest, notes string) (entity.QuoteRequest, *entity.ActivityEntry) {
	if notes == q.Notes {
		return q, nil
	}
	e := l.recorder.NotesUpdated(q.ID)
	out := q
	out.Notes = notes
	out.Activity = activity.Append(q.Activity, e)
	out.UpdatedAt = e.CreatedAt
	return out, &e
}

// UpdateEstimate fija (o borra, con nil) el monto estimado y registra estimate_updated.
func (l *Lifecycle) UpdateEstimate(q entity.QuoteRequest, amount *decimal.Decimal) (entity.QuoteRequest, *entity.ActivityEntry, error) {
	if amount != nil && amount.IsNegative() {
		return q, nil, fmt.Errorf("%w: el monto estimado no puede ser negativo", domain.ErrInvalidInput)
	}
	if sameAmount(q.EstimatedAmount, amount) {
		return q, nil, nil
	}
	e := l.recorder.EstimateUpdated(q.ID, formatAmount(q.EstimatedAmount), formatAmount(amount))
	out := q
	if amount != nil {
		v := *amount
		out.EstimatedAmount = &v
	} else {
		out.EstimatedAmount = nil
	}
	out.Activity = activity.Append(q.Activity, e)
	out.UpdatedAt = e.CreatedAt
	return out, &e, nil
}

func sameAmount(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func formatAmount(a *decimal.Decimal) string {
	if a == nil {
		return ""
	}
	return a.StringFixed(2)
}

func normalize(in Submission) Submission {
	in.ContactName = strings.TrimSpace(in.ContactName)
	in.ContactEmail = strings.ToLower(strings.TrimSpace(in.ContactEmail))
	in.ContactPhone = strings.TrimSpace(in.ContactPhone)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.Website = strings.TrimSpace(in.Website)
	in.ProjectType = strings.TrimSpace(in.ProjectType)
	in.BudgetRange = strings.TrimSpace(in.BudgetRange)
	in.Timeline = strings.TrimSpace(in.Timeline)
	in.Description = strings.TrimSpace(in.Description)

	// services es un conjunto: sin vacíos ni duplicados, conservando el orden.
	seen := make(map[string]struct{}, len(in.Services))
	services := make([]string, 0, len(in.Services))
	for _, s := range in.Services {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		services = append(services, s)
	}
	in.Services = services
	return in
}

func validateSubmission(in Submission) error {
	var problems []string
	if in.ContactName == "" {
		problems = append(problems, "nombre requerido")
	}
	if _, err := mail.ParseAddress(in.ContactEmail); err != nil {
		problems = append(problems, "email inválido")
	}
	if in.Description == "" {
		problems = append(problems, "descripción requerida")
	}
	if in.BudgetRange != "" && indexOf(BudgetRanges, in.BudgetRange) < 0 {
		problems = append(problems, "presupuesto desconocido: "+in.BudgetRange)
	}
	if in.Timeline != "" && indexOf(Timelines, in.Timeline) < 0 {
		problems = append(problems, "plazo desconocido: "+in.Timeline)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}
