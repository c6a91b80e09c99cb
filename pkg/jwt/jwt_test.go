package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinkbeambot/pinkbeam-sub001/pkg/jwt"
)

const secret = "secreto-de-pruebas"

func TestGenerate_RolDesconocido(t *testing.T) {
	_, err := jwt.Generate(secret, "u-1", "c-1", "bodeguero", "pinkbeam", 60)
	assert.ErrorContains(t, err, "rol desconocido")
}

func TestGenerate_CadaTokenTieneJTIPropio(t *testing.T) {
	a, err := jwt.Generate(secret, "u-1", "c-1", "manager", "pinkbeam", 60)
	require.NoError(t, err)
	b, err := jwt.Generate(secret, "u-1", "c-1", "manager", "pinkbeam", 60)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestParse_RechazaOtroAlgoritmo(t *testing.T) {
	claims := jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "u-1",
		CompanyID:        "c-1",
		Role:             "admin",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, tok)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestParse_ExigeExpiracion(t *testing.T) {
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{UserID: "u-1", CompanyID: "c-1"}).
		SignedString([]byte(secret))
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, tok)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestParse_SinAgenciaEsInvalido(t *testing.T) {
	tok, err := jwt.Generate(secret, "u-1", "", "admin", "pinkbeam", 60)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, tok)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}
