package usecase_test

import (
	"context"
	"testing"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/dto"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/usecase"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type companyRepoMock struct{ mock.Mock }

func (m *companyRepoMock) Create(c *entity.Company) error { return m.Called(c).Error(0) }
func (m *companyRepoMock) Update(c *entity.Company) error { return m.Called(c).Error(0) }

func (m *companyRepoMock) GetByID(id string) (*entity.Company, error) {
	args := m.Called(id)
	c, _ := args.Get(0).(*entity.Company)
	return c, args.Error(1)
}

func (m *companyRepoMock) GetBySlug(slug string) (*entity.Company, error) {
	args := m.Called(slug)
	c, _ := args.Get(0).(*entity.Company)
	return c, args.Error(1)
}

func (m *companyRepoMock) List(limit, offset int) ([]*entity.Company, error) {
	args := m.Called(limit, offset)
	list, _ := args.Get(0).([]*entity.Company)
	return list, args.Error(1)
}

func (m *companyRepoMock) ActivateModule(ctx context.Context, cm *entity.CompanyModule) error {
	return m.Called(ctx, cm).Error(0)
}

func (m *companyRepoMock) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	args := m.Called(ctx, companyID, moduleName)
	return args.Bool(0), args.Error(1)
}

func TestCompanyCreate_ActivaTodosLosModulosPorDefecto(t *testing.T) {
	repo := &companyRepoMock{}
	repo.On("GetBySlug", "estudio-rosa").Return(nil, nil)
	repo.On("Create", mock.AnythingOfType("*entity.Company")).Return(nil)
	var activated []string
	repo.On("ActivateModule", mock.Anything, mock.AnythingOfType("*entity.CompanyModule")).
		Run(func(args mock.Arguments) {
			activated = append(activated, args.Get(1).(*entity.CompanyModule).ModuleName)
		}).Return(nil)

	resp, err := usecase.NewCompanyUseCase(repo).Create(context.Background(), dto.CreateCompanyRequest{
		Name: "Estudio Rosa", Slug: " Estudio-Rosa ",
	})
	require.NoError(t, err)

	assert.Equal(t, "estudio-rosa", resp.Slug)
	assert.Equal(t, "active", resp.Status)
	assert.ElementsMatch(t, []string{entity.ModuleQuotes, entity.ModuleBilling}, activated)
}

func TestCompanyCreate_SoloModulosPedidos(t *testing.T) {
	repo := &companyRepoMock{}
	repo.On("GetBySlug", "solo-cotiza").Return(nil, nil)
	repo.On("Create", mock.Anything).Return(nil)
	repo.On("ActivateModule", mock.Anything, mock.MatchedBy(func(m *entity.CompanyModule) bool {
		return m.ModuleName == entity.ModuleQuotes && m.IsActive
	})).Return(nil).Once()

	_, err := usecase.NewCompanyUseCase(repo).Create(context.Background(), dto.CreateCompanyRequest{
		Name: "Solo", Slug: "solo-cotiza", Modules: []string{entity.ModuleQuotes},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCompanyCreate_SlugDuplicado(t *testing.T) {
	repo := &companyRepoMock{}
	repo.On("GetBySlug", "estudio-rosa").Return(&entity.Company{ID: "x"}, nil)

	_, err := usecase.NewCompanyUseCase(repo).Create(context.Background(), dto.CreateCompanyRequest{Name: "E", Slug: "estudio-rosa"})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestModuleService_SinEmpresaNoConsultaLaBase(t *testing.T) {
	repo := &companyRepoMock{}
	ok, err := usecase.NewModuleService(repo).HasActiveModule(context.Background(), "", entity.ModuleBilling)
	require.NoError(t, err)
	assert.False(t, ok)
	repo.AssertNotCalled(t, "HasActiveModule", mock.Anything, mock.Anything, mock.Anything)
}

func TestModuleService_ModuloDesconocido(t *testing.T) {
	repo := &companyRepoMock{}
	_, err := usecase.NewModuleService(repo).HasActiveModule(context.Background(), "c-1", "inventory")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "HasActiveModule", mock.Anything, mock.Anything, mock.Anything)
}

func TestModuleService_DelegaEnRepositorio(t *testing.T) {
	repo := &companyRepoMock{}
	repo.On("HasActiveModule", mock.Anything, "c-1", entity.ModuleBilling).Return(true, nil)

	ok, err := usecase.NewModuleService(repo).HasActiveModule(context.Background(), "c-1", entity.ModuleBilling)
	require.NoError(t, err)
	assert.True(t, ok)
}
