package billing_test

import (
	"context"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/billing"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/repository"
	"github.com/stretchr/testify/mock"
)

type invoiceRepoMock struct{ mock.Mock }

func (m *invoiceRepoMock) Create(ctx context.Context, inv *entity.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *invoiceRepoMock) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	args := m.Called(ctx, id)
	inv, _ := args.Get(0).(*entity.Invoice)
	return inv, args.Error(1)
}

func (m *invoiceRepoMock) GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	args := m.Called(ctx, id)
	inv, _ := args.Get(0).(*entity.Invoice)
	return inv, args.Error(1)
}

func (m *invoiceRepoMock) ListByCompany(ctx context.Context, companyID string, status entity.InvoiceStatus, limit, offset int) ([]*entity.Invoice, error) {
	args := m.Called(ctx, companyID, status, limit, offset)
	list, _ := args.Get(0).([]*entity.Invoice)
	return list, args.Error(1)
}

func (m *invoiceRepoMock) Update(ctx context.Context, inv *entity.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *invoiceRepoMock) ReplaceLineItems(ctx context.Context, invoiceID string, items []entity.LineItem) error {
	return m.Called(ctx, invoiceID, items).Error(0)
}

func (m *invoiceRepoMock) NextNumber(ctx context.Context, companyID, prefix string) (string, error) {
	args := m.Called(ctx, companyID, prefix)
	return args.String(0), args.Error(1)
}

type timeEntryRepoMock struct{ mock.Mock }

func (m *timeEntryRepoMock) ListUnbilled(ctx context.Context, companyID, projectID string, ids []string) ([]entity.TimeEntry, error) {
	args := m.Called(ctx, companyID, projectID, ids)
	list, _ := args.Get(0).([]entity.TimeEntry)
	return list, args.Error(1)
}

func (m *timeEntryRepoMock) MarkInvoiced(ctx context.Context, invoiceID string, ids []string) error {
	return m.Called(ctx, invoiceID, ids).Error(0)
}

func (m *timeEntryRepoMock) Release(ctx context.Context, ids []string) error {
	return m.Called(ctx, ids).Error(0)
}

type paymentRepoMock struct{ mock.Mock }

func (m *paymentRepoMock) ListByInvoice(ctx context.Context, invoiceID string) ([]entity.Payment, error) {
	args := m.Called(ctx, invoiceID)
	list, _ := args.Get(0).([]entity.Payment)
	return list, args.Error(1)
}

type clientRepoMock struct{ mock.Mock }

func (m *clientRepoMock) Create(ctx context.Context, c *entity.Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *clientRepoMock) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Client)
	return c, args.Error(1)
}

func (m *clientRepoMock) GetByCompanyAndEmail(ctx context.Context, companyID, email string) (*entity.Client, error) {
	args := m.Called(ctx, companyID, email)
	c, _ := args.Get(0).(*entity.Client)
	return c, args.Error(1)
}

func (m *clientRepoMock) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Client, error) {
	args := m.Called(ctx, companyID, limit, offset)
	list, _ := args.Get(0).([]*entity.Client)
	return list, args.Error(1)
}

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

type pdfGeneratorMock struct{ mock.Mock }

func (m *pdfGeneratorMock) GenerateInvoicePDF(ctx context.Context, doc billing.InvoiceDocument) ([]byte, error) {
	args := m.Called(ctx, doc)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

// txRunnerFake ejecuta fn con los mocks, sin transacción real.
type txRunnerFake struct {
	invoices    *invoiceRepoMock
	timeEntries *timeEntryRepoMock
	payments    *paymentRepoMock
}

func (f *txRunnerFake) RunBilling(_ context.Context, fn func(repository.InvoiceRepository, repository.TimeEntryRepository, repository.PaymentRepository) error) error {
	return fn(f.invoices, f.timeEntries, f.payments)
}
