package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken envuelve cualquier fallo de validación (firma, expiración, claims).
var ErrInvalidToken = errors.New("jwt: token inválido")

// Roles que puede llevar el token. Vacío se acepta aquí; el middleware lo rechaza con 401.
//
//	admin   → dueño de la agencia: equipo, empresas, todo lo de manager
//	manager → opera cotizaciones, clientes y facturas
//	client  → portal del cliente final (sin acceso a rutas del equipo)
var knownRoles = map[string]bool{"admin": true, "manager": true, "client": true}

// Claims claims estándar más usuario, agencia (tenant) y rol.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

// Generate firma un token HS256 para el usuario de la agencia companyID.
// Cada token lleva un jti propio para poder rastrearlo en los logs.
func Generate(secret, userID, companyID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if role != "" && !knownRoles[role] {
		return "", fmt.Errorf("jwt: rol desconocido %q", role)
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida el token y devuelve userID, companyID y role.
// Solo acepta HS256 con exp presente; los errores de validación se comparan con ErrInvalidToken.
func Parse(secret, tokenString string) (userID, companyID, role string, err error) {
	if secret == "" {
		return "", "", "", fmt.Errorf("jwt: secret vacío")
	}
	claims := &Claims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" || claims.CompanyID == "" {
		return "", "", "", fmt.Errorf("%w: faltan user_id o company_id", ErrInvalidToken)
	}
	return claims.UserID, claims.CompanyID, claims.Role, nil
}
