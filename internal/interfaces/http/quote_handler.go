package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/dto"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/quotes"
)

// QuoteHandler maneja el pipeline de cotizaciones: intake público y gestión interna.
type QuoteHandler struct {
	uc *quotes.QuoteUseCase
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(uc *quotes.QuoteUseCase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// Submit godoc
// @Summary      Enviar solicitud de cotización (formulario público)
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        companyId  path  string                  true  "ID de la agencia"
// @Param        body       body  dto.SubmitQuoteRequest  true  "Datos del prospecto"
// @Success      201  {object}  dto.PublicQuoteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/public/{companyId}/quotes [post]
func (h *QuoteHandler) Submit(c *fiber.Ctx) error {
	companyID, err := uuidParam(c, "companyId")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.SubmitQuoteRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Submit(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cotizaciones
// @Tags         quotes
// @Produce      json
// @Security     BearerAuth
// @Param        status   query  string  false  "Estado"
// @Param        quality  query  string  false  "hot | warm | cold"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.QuoteListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/quotes [get]
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	var q dto.QuoteListQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.Context(), GetCompanyID(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de cotización
// @Tags         quotes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id} [get]
func (h *QuoteHandler) Get(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.Context(), GetCompanyID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Activity godoc
// @Summary      Bitácora de la cotización en orden cronológico
// @Tags         quotes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {array}   dto.ActivityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/activity [get]
func (h *QuoteHandler) Activity(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Activity(c.Context(), GetCompanyID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de la cotización
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                        true  "ID de la cotización"
// @Param        body  body  dto.ChangeQuoteStatusRequest  true  "Estado destino"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/status [patch]
func (h *QuoteHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ChangeQuoteStatusRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ChangeStatus(c.Context(), GetCompanyID(c), GetUserID(c), id, in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateNotes godoc
// @Summary      Actualizar notas internas
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                       true  "ID de la cotización"
// @Param        body  body  dto.UpdateQuoteNotesRequest  true  "Notas (vacío las borra)"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/notes [patch]
func (h *QuoteHandler) UpdateNotes(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateQuoteNotesRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateNotes(c.Context(), GetCompanyID(c), GetUserID(c), id, in.Notes)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateEstimate godoc
// @Summary      Fijar o borrar el monto estimado
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                          true  "ID de la cotización"
// @Param        body  body  dto.UpdateQuoteEstimateRequest  true  "Monto (null lo borra)"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/estimate [patch]
func (h *QuoteHandler) UpdateEstimate(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateQuoteEstimateRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateEstimate(c.Context(), GetCompanyID(c), GetUserID(c), id, in.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
