package auth_test

import (
	"context"
	"testing"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/auth"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/dto"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/pinkbeambot/pinkbeam-sub001/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// userRepoFake repositorio en memoria indexado por email.
type userRepoFake struct {
	byEmail map[string]*entity.User
}

func newUserRepoFake() *userRepoFake { return &userRepoFake{byEmail: map[string]*entity.User{}} }

func (f *userRepoFake) Create(u *entity.User) error {
	f.byEmail[u.Email] = u
	return nil
}

func (f *userRepoFake) GetByID(id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *userRepoFake) GetByEmail(email string) (*entity.User, error) { return f.byEmail[email], nil }

func (f *userRepoFake) ListByCompany(companyID string, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.byEmail {
		if u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *userRepoFake) Update(u *entity.User) error {
	f.byEmail[u.Email] = u
	return nil
}

// companyRepoFake solo resuelve GetByID; el resto no se usa en auth.
type companyRepoFake struct {
	entity.Company
}

func (f *companyRepoFake) GetByID(id string) (*entity.Company, error) {
	if id != f.ID {
		return nil, nil
	}
	c := f.Company
	return &c, nil
}

func (f *companyRepoFake) Create(*entity.Company) error             { return nil }
func (f *companyRepoFake) GetBySlug(string) (*entity.Company, error) { return nil, nil }
func (f *companyRepoFake) Update(*entity.Company) error             { return nil }
func (f *companyRepoFake) List(int, int) ([]*entity.Company, error)  { return nil, nil }

func (f *companyRepoFake) ActivateModule(context.Context, *entity.CompanyModule) error {
	return nil
}

func (f *companyRepoFake) HasActiveModule(context.Context, string, string) (bool, error) {
	return true, nil
}

const secret = "test-secret"

func newAuth() (*auth.AuthUseCase, *userRepoFake) {
	users := newUserRepoFake()
	companies := &companyRepoFake{Company: entity.Company{ID: "11111111-1111-1111-1111-111111111111", Status: "active"}}
	return auth.NewAuthUseCase(users, companies, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "pinkbeam"}), users
}

func TestRegisterUser_RolPorDefectoYHash(t *testing.T) {
	uc, users := newAuth()

	resp, err := uc.RegisterUser(dto.RegisterRequest{
		Email:     "  Ana@Agencia.io ",
		Password:  "supersecreto",
		CompanyID: "11111111-1111-1111-1111-111111111111",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@agencia.io", resp.Email)
	assert.Equal(t, entity.RoleManager, resp.Role)
	stored := users.byEmail["ana@agencia.io"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecreto")))
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := newAuth()
	in := dto.RegisterRequest{Email: "ana@agencia.io", Password: "supersecreto", CompanyID: "11111111-1111-1111-1111-111111111111"}
	_, err := uc.RegisterUser(in)
	require.NoError(t, err)

	_, err = uc.RegisterUser(in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_EmpresaInexistente(t *testing.T) {
	uc, _ := newAuth()
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@b.io", Password: "supersecreto", CompanyID: "otra"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin(t *testing.T) {
	uc, users := newAuth()
	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "ana@agencia.io", Password: "supersecreto",
		CompanyID: "11111111-1111-1111-1111-111111111111", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	t.Run("credenciales válidas", func(t *testing.T) {
		resp, err := uc.Login(dto.LoginRequest{Email: "ANA@agencia.io", Password: "supersecreto"})
		require.NoError(t, err)
		_, companyID, role, err := jwt.Parse(secret, resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "11111111-1111-1111-1111-111111111111", companyID)
		assert.Equal(t, entity.RoleAdmin, role)
	})

	t.Run("password incorrecto", func(t *testing.T) {
		_, err := uc.Login(dto.LoginRequest{Email: "ana@agencia.io", Password: "otra"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("usuario inexistente", func(t *testing.T) {
		_, err := uc.Login(dto.LoginRequest{Email: "nadie@agencia.io", Password: "x"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("usuario suspendido", func(t *testing.T) {
		users.byEmail["ana@agencia.io"].Status = "suspended"
		_, err := uc.Login(dto.LoginRequest{Email: "ana@agencia.io", Password: "supersecreto"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
