package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/invoicemgr/backend/internal/domain/invoicing"
	"github.com/invoicemgr/backend/internal/domain/partner"
	"github.com/invoicemgr/backend/internal/domain/shared"
	"github.com/invoicemgr/backend/internal/domain/workforce"
)

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*invoicing.Invoice, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]invoicing.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]invoicing.Invoice, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByStatus(ctx context.Context, status invoicing.InvoiceStatus, filter shared.Filter) ([]invoicing.Invoice, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]invoicing.Invoice, error) {
	args := m.Called(ctx, from, to, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *invoicing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveWithLock(ctx context.Context, invoice *invoicing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) CountByStatus(ctx context.Context, status invoicing.InvoiceStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) ExistsByNumber(ctx context.Context, invoiceNumber string) (bool, error) {
	args := m.Called(ctx, invoiceNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) StatusSummary(ctx context.Context) ([]invoicing.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoicing.StatusCount), args.Error(1)
}

// MockSequenceRepository is a mock implementation of SequenceRepository
type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) NextSequence(ctx context.Context, year, month int) (*invoicing.InvoiceNumberSequence, int, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*invoicing.InvoiceNumberSequence), args.Int(1), args.Error(2)
}

func (m *MockSequenceRepository) CurrentSequence(ctx context.Context, year, month int) (*invoicing.InvoiceNumberSequence, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.InvoiceNumberSequence), args.Error(1)
}

// MockCompanyRepository is a mock implementation of CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByNPWP(ctx context.Context, npwp string) (*partner.Company, error) {
	args := m.Called(ctx, npwp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Company, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) Search(ctx context.Context, query string, limit int) ([]partner.Company, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, company *partner.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCompanyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyRepository) ExistsByNPWP(ctx context.Context, npwp string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, npwp, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) ExistsByIDTKU(ctx context.Context, idtku string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, idtku, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockJobDescriptionRepository is a mock implementation of JobDescriptionRepository
type MockJobDescriptionRepository struct {
	mock.Mock
}

func (m *MockJobDescriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.JobDescription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.JobDescription), args.Error(1)
}

func (m *MockJobDescriptionRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]workforce.JobDescription, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.JobDescription), args.Error(1)
}

func (m *MockJobDescriptionRepository) Save(ctx context.Context, job *workforce.JobDescription) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobDescriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTkaWorkerRepository is a mock implementation of TkaWorkerRepository
type MockTkaWorkerRepository struct {
	mock.Mock
}

func (m *MockTkaWorkerRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.TkaWorker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.TkaWorker), args.Error(1)
}

func (m *MockTkaWorkerRepository) FindByPassport(ctx context.Context, passport string) (*workforce.TkaWorker, error) {
	args := m.Called(ctx, passport)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.TkaWorker), args.Error(1)
}

func (m *MockTkaWorkerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workforce.TkaWorker, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.TkaWorker), args.Error(1)
}

func (m *MockTkaWorkerRepository) Search(ctx context.Context, query string, limit int) ([]workforce.TkaWorker, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.TkaWorker), args.Error(1)
}

func (m *MockTkaWorkerRepository) Save(ctx context.Context, worker *workforce.TkaWorker) error {
	args := m.Called(ctx, worker)
	return args.Error(0)
}

func (m *MockTkaWorkerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTkaWorkerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTkaWorkerRepository) ExistsByPassport(ctx context.Context, passport string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, passport, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTkaWorkerRepository) FindFamilyMembers(ctx context.Context, workerID uuid.UUID) ([]workforce.TkaFamilyMember, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.TkaFamilyMember), args.Error(1)
}

func (m *MockTkaWorkerRepository) SaveFamilyMember(ctx context.Context, member *workforce.TkaFamilyMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockTkaWorkerRepository) DeleteFamilyMember(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
