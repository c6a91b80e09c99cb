package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/dto"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain"
)

func respondWith(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return writeError(c, err) })
	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, testErr)
	defer resp.Body.Close()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestWriteError_Mapeo(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
		{domain.ErrInvoiceLocked, http.StatusConflict, "INVOICE_LOCKED"},
		{domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{domain.ErrEmailAlreadyExists, http.StatusConflict, "EMAIL_EXISTS"},
		{domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrUserNotFound, http.StatusUnauthorized, "UNAUTHORIZED"},
		{errors.New("pool cerrado"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.code+"/"+tc.err.Error(), func(t *testing.T) {
			status, body := respondWith(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestWriteError_EnvueltoConservaDetalle(t *testing.T) {
	err := fmt.Errorf("%w: la factura INV-0007 está en SENT", domain.ErrInvoiceLocked)
	status, body := respondWith(t, err)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVOICE_LOCKED", body.Code)
	assert.Contains(t, body.Message, "INV-0007")
}

func TestWriteError_InternoNoFiltraDetalle(t *testing.T) {
	_, body := respondWith(t, errors.New("dial tcp 10.0.0.3:5432: connection refused"))
	assert.Equal(t, "error interno", body.Message)
}

func TestWriteError_CredencialesNoRevelanCausa(t *testing.T) {
	_, body := respondWith(t, fmt.Errorf("login: %w", domain.ErrUserNotFound))
	assert.Equal(t, "credenciales inválidas", body.Message)
}

func TestValidateStruct_MensajeUsaNombreJSON(t *testing.T) {
	err := validateStruct(&dto.ChangeQuoteStatusRequest{Status: "WON"})
	var reqErr *requestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "VALIDATION", reqErr.code)
	assert.Contains(t, reqErr.message, "status debe ser uno de")
}
