package quotes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/dto"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/quote"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/repository"
	"github.com/pinkbeambot/pinkbeam-sub001/pkg/logger"
	"github.com/shopspring/decimal"
)

// QuoteUseCase casos de uso del pipeline de cotizaciones: intake público y gestión interna.
// Cada mutación bloquea la cotización, aplica la regla de dominio, persiste el cambio y su
// entrada de bitácora en la misma transacción y notifica después del commit.
type QuoteUseCase struct {
	txRunner     QuoteTxRunner
	quoteRepo    repository.QuoteRepository
	activityRepo repository.ActivityRepository
	companyRepo  repository.CompanyRepository
	lifecycle    *quote.Lifecycle
	notifier     QuoteNotifier
	log          *logger.Logger
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(
	txRunner QuoteTxRunner,
	quoteRepo repository.QuoteRepository,
	activityRepo repository.ActivityRepository,
	companyRepo repository.CompanyRepository,
	lifecycle *quote.Lifecycle,
	notifier QuoteNotifier,
	log *logger.Logger,
) *QuoteUseCase {
	return &QuoteUseCase{
		txRunner:     txRunner,
		quoteRepo:    quoteRepo,
		activityRepo: activityRepo,
		companyRepo:  companyRepo,
		lifecycle:    lifecycle,
		notifier:     notifier,
		log:          log,
	}
}

// Submit registra una solicitud enviada desde el formulario público de la agencia.
// Devuelve domain.ErrNotFound si la empresa no existe, no está activa o no tiene el
// módulo de cotizaciones; el formulario no distingue entre esos casos.
func (uc *QuoteUseCase) Submit(ctx context.Context, companyID string, in dto.SubmitQuoteRequest) (*dto.PublicQuoteResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, fmt.Errorf("quotes: obtener empresa: %w", err)
	}
	if company == nil || company.Status != "active" {
		return nil, domain.ErrNotFound
	}
	active, err := uc.companyRepo.HasActiveModule(ctx, companyID, entity.ModuleQuotes)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, domain.ErrNotFound
	}

	q, err := uc.lifecycle.NewQuote(uuid.New().String(), companyID, quote.Submission{
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
	})
	if err != nil {
		return nil, err
	}
	if err := uc.quoteRepo.Create(ctx, &q); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("quote_id", q.ID).
		Str("company_id", companyID).
		Int("lead_score", q.LeadScore).
		Str("lead_quality", string(q.LeadQuality)).
		Msg("cotización recibida")
	uc.notifier.QuoteSubmitted(ctx, q)

	return &dto.PublicQuoteResponse{ID: q.ID, Status: string(q.Status), CreatedAt: q.CreatedAt}, nil
}

// Get devuelve la cotización con su bitácora completa.
func (uc *QuoteUseCase) Get(ctx context.Context, companyID, quoteID string) (*dto.QuoteResponse, error) {
	q, err := uc.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(q, companyID); err != nil {
		return nil, err
	}
	q.Activity, err = uc.activityRepo.ListByQuote(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("quotes: obtener bitácora: %w", err)
	}
	resp := toQuoteResponse(*q)
	return &resp, nil
}

// List lista cotizaciones de la empresa, opcionalmente filtradas por estado o calidad del lead.
func (uc *QuoteUseCase) List(ctx context.Context, companyID string, in dto.QuoteListQuery) (*dto.QuoteListResponse, error) {
	in.DefaultPage()
	list, err := uc.quoteRepo.ListByCompany(ctx, companyID, repository.QuoteFilter{
		Status:  entity.QuoteStatus(in.Status),
		Quality: entity.LeadQuality(in.Quality),
	}, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		items = append(items, toQuoteResponse(*q))
	}
	return &dto.QuoteListResponse{
		Items: items,
		Page:  in.PageRequest.Response(len(items)),
	}, nil
}

// Activity devuelve solo la bitácora de la cotización, en orden cronológico.
func (uc *QuoteUseCase) Activity(ctx context.Context, companyID, quoteID string) ([]dto.ActivityResponse, error) {
	q, err := uc.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(q, companyID); err != nil {
		return nil, err
	}
	entries, err := uc.activityRepo.ListByQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	resp := toActivityResponses(entries)
	if resp == nil {
		resp = []dto.ActivityResponse{}
	}
	return resp, nil
}

// ChangeStatus mueve la cotización a target. Devuelve domain.ErrInvalidTransition si la
// arista no existe; en ese caso no se persiste nada.
func (uc *QuoteUseCase) ChangeStatus(ctx context.Context, companyID, actorID, quoteID, target string) (*dto.QuoteResponse, error) {
	to := entity.QuoteStatus(target)
	var from entity.QuoteStatus
	updated, _, err := uc.mutate(ctx, companyID, actorID, quoteID, func(q entity.QuoteRequest) (entity.QuoteRequest, *entity.ActivityEntry, error) {
		from = q.Status
		return uc.lifecycle.ApplyStatusTransition(q, to)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			uc.log.Warn().Str("quote_id", quoteID).Str("from", string(from)).Str("to", target).Msg("transición rechazada")
		}
		return nil, err
	}

	uc.log.Info().
		Str("quote_id", quoteID).
		Str("from", string(from)).
		Str("to", target).
		Str("actor_id", actorID).
		Msg("estado de cotización actualizado")
	uc.notifier.StatusChanged(ctx, updated, from)

	resp := toQuoteResponse(updated)
	return &resp, nil
}

// UpdateNotes sobrescribe las notas internas. Repetir el mismo texto no genera actividad.
func (uc *QuoteUseCase) UpdateNotes(ctx context.Context, companyID, actorID, quoteID, notes string) (*dto.QuoteResponse, error) {
	updated, entry, err := uc.mutate(ctx, companyID, actorID, quoteID, func(q entity.QuoteRequest) (entity.QuoteRequest, *entity.ActivityEntry, error) {
		out, e := uc.lifecycle.UpdateNotes(q, notes)
		return out, e, nil
	})
	if err != nil {
		return nil, err
	}
	if entry != nil {
		uc.log.Info().Str("quote_id", quoteID).Str("actor_id", actorID).Msg("notas de cotización actualizadas")
	}
	resp := toQuoteResponse(updated)
	return &resp, nil
}

// UpdateEstimate fija o borra el monto estimado de la propuesta.
func (uc *QuoteUseCase) UpdateEstimate(ctx context.Context, companyID, actorID, quoteID string, amount *decimal.Decimal) (*dto.QuoteResponse, error) {
	updated, entry, err := uc.mutate(ctx, companyID, actorID, quoteID, func(q entity.QuoteRequest) (entity.QuoteRequest, *entity.ActivityEntry, error) {
		return uc.lifecycle.UpdateEstimate(q, amount)
	})
	if err != nil {
		return nil, err
	}
	if entry != nil {
		uc.log.Info().
			Str("quote_id", quoteID).
			Str("from", entry.Metadata["from"]).
			Str("to", entry.Metadata["to"]).
			Msg("monto estimado actualizado")
	}
	resp := toQuoteResponse(updated)
	return &resp, nil
}

type mutation func(q entity.QuoteRequest) (entity.QuoteRequest, *entity.ActivityEntry, error)

// mutate carga la cotización con bloqueo y su bitácora, aplica fn y, si fn registró actividad,
// persiste la cotización y la entrada en la misma transacción.
func (uc *QuoteUseCase) mutate(ctx context.Context, companyID, actorID, quoteID string, fn mutation) (entity.QuoteRequest, *entity.ActivityEntry, error) {
	var (
		updated entity.QuoteRequest
		entry   *entity.ActivityEntry
	)
	err := uc.txRunner.RunQuotes(ctx, func(quoteRepo repository.QuoteRepository, activityRepo repository.ActivityRepository) error {
		current, err := quoteRepo.GetByIDForUpdate(ctx, quoteID)
		if err != nil {
			return err
		}
		if err := checkOwnership(current, companyID); err != nil {
			return err
		}
		// La respuesta lleva la bitácora completa, igual que Get.
		current.Activity, err = activityRepo.ListByQuote(ctx, quoteID)
		if err != nil {
			return fmt.Errorf("quotes: obtener bitácora: %w", err)
		}
		out, e, err := fn(*current)
		if err != nil {
			return err
		}
		updated = out
		if e == nil {
			return nil
		}
		e.ActorID = actorID
		if n := len(out.Activity); n > 0 && out.Activity[n-1].ID == e.ID {
			out.Activity[n-1].ActorID = actorID
		}
		updated = out
		if err := quoteRepo.Update(ctx, &out); err != nil {
			return err
		}
		if err := activityRepo.Append(ctx, e); err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return entity.QuoteRequest{}, nil, err
	}
	return updated, entry, nil
}

func checkOwnership(q *entity.QuoteRequest, companyID string) error {
	if q == nil {
		return domain.ErrNotFound
	}
	if q.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}

func toQuoteResponse(q entity.QuoteRequest) dto.QuoteResponse {
	next := quote.AllowedTransitions(q.Status)
	allowed := make([]string, 0, len(next))
	for _, s := range next {
		allowed = append(allowed, string(s))
	}
	services := q.Services
	if services == nil {
		services = []string{}
	}
	return dto.QuoteResponse{
		ID:              q.ID,
		CompanyID:       q.CompanyID,
		ContactName:     q.ContactName,
		ContactEmail:    q.ContactEmail,
		ContactPhone:    q.ContactPhone,
		CompanyName:     q.CompanyName,
		Website:         q.Website,
		ProjectType:     q.ProjectType,
		Services:        services,
		BudgetRange:     q.BudgetRange,
		Timeline:        q.Timeline,
		Description:     q.Description,
		Status:          string(q.Status),
		StatusLabel:     q.Status.Label(),
		AllowedNext:     allowed,
		Notes:           q.Notes,
		EstimatedAmount: q.EstimatedAmount,
		LeadScore:       q.LeadScore,
		LeadQuality:     string(q.LeadQuality),
		Activity:        toActivityResponses(q.Activity),
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

func toActivityResponses(entries []entity.ActivityEntry) []dto.ActivityResponse {
	if len(entries) == 0 {
		return nil
	}
	out := make([]dto.ActivityResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ActivityResponse{
			ID:        e.ID,
			Action:    string(e.Action),
			Metadata:  e.Metadata,
			ActorID:   e.ActorID,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
