package invoicing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/invoicemgr/backend/internal/domain/invoicing"
	"github.com/invoicemgr/backend/internal/domain/partner"
	"github.com/invoicemgr/backend/internal/domain/workforce"
)

type serviceFixture struct {
	invoiceRepo *MockInvoiceRepository
	companyRepo *MockCompanyRepository
	jobRepo     *MockJobDescriptionRepository
	workerRepo  *MockTkaWorkerRepository
	seqRepo     *fakeSequenceRepo
	service     *InvoiceService

	company *partner.Company
	job     *workforce.JobDescription
	worker  *workforce.TkaWorker
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		invoiceRepo: new(MockInvoiceRepository),
		companyRepo: new(MockCompanyRepository),
		jobRepo:     new(MockJobDescriptionRepository),
		workerRepo:  new(MockTkaWorkerRepository),
		seqRepo:     newFakeSequenceRepo(),
	}

	company, err := partner.NewCompany("PT Maju Jaya", "01.234.567.8-901.000", "IDTKU-001", "Jl. Sudirman No. 1, Jakarta")
	require.NoError(t, err)
	f.company = company

	job, err := workforce.NewJobDescription(company.ID, "Welder Supervision", "Monthly supervision services", decimal.NewFromInt(13000000))
	require.NoError(t, err)
	f.job = job

	worker, err := workforce.NewTkaWorker("John Smith", "A1234567", "Engineering", workforce.GenderMale)
	require.NoError(t, err)
	f.worker = worker

	allocator := NewInvoiceNumberAllocator(f.seqRepo, f.invoiceRepo, nil)
	f.service = NewInvoiceService(f.invoiceRepo, f.companyRepo, f.jobRepo, f.workerRepo, allocator, nil, nil)
	return f
}

func (f *serviceFixture) createRequest() CreateInvoiceRequest {
	return CreateInvoiceRequest{
		CompanyID:   f.company.ID,
		InvoiceDate: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
		Lines: []CreateInvoiceLineInput{
			{
				TkaWorkerID:      f.worker.ID,
				JobDescriptionID: f.job.ID,
				Quantity:         1,
			},
		},
	}
}

func TestInvoiceServiceCreate(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.companyRepo.On("FindByID", ctx, f.company.ID).Return(f.company, nil)
	f.jobRepo.On("FindByID", ctx, f.job.ID).Return(f.job, nil)
	f.workerRepo.On("FindByID", ctx, f.worker.ID).Return(f.worker, nil)
	f.invoiceRepo.On("ExistsByNumber", ctx, mock.Anything).Return(false, nil)
	f.invoiceRepo.On("Save", ctx, mock.AnythingOfType("*invoicing.Invoice")).Return(nil)

	resp, err := f.service.Create(ctx, f.createRequest(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, "INV-24-12-001", resp.InvoiceNumber)
	assert.Equal(t, "DRAFT", resp.Status)
	assert.Len(t, resp.Lines, 1)
	assert.True(t, decimal.NewFromInt(13000000).Equal(resp.Subtotal))
	assert.True(t, decimal.NewFromInt(1430000).Equal(resp.VATAmount))
	assert.True(t, decimal.NewFromInt(14430000).Equal(resp.TotalAmount))
	assert.Equal(t, "Rp 14.430.000", resp.TotalFormatted)
	f.invoiceRepo.AssertExpectations(t)
}

func TestInvoiceServiceCreateUsesDefaultVAT(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.companyRepo.On("FindByID", ctx, f.company.ID).Return(f.company, nil)
	f.jobRepo.On("FindByID", ctx, f.job.ID).Return(f.job, nil)
	f.workerRepo.On("FindByID", ctx, f.worker.ID).Return(f.worker, nil)
	f.invoiceRepo.On("ExistsByNumber", ctx, mock.Anything).Return(false, nil)
	f.invoiceRepo.On("Save", ctx, mock.Anything).Return(nil)

	resp, err := f.service.Create(ctx, f.createRequest(), uuid.New())
	require.NoError(t, err)

	expected, _ := decimal.NewFromString("11.00")
	assert.True(t, expected.Equal(resp.VATPercentage))
}

func TestInvoiceServiceCreateExplicitVAT(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.companyRepo.On("FindByID", ctx, f.company.ID).Return(f.company, nil)
	f.jobRepo.On("FindByID", ctx, f.job.ID).Return(f.job, nil)
	f.workerRepo.On("FindByID", ctx, f.worker.ID).Return(f.worker, nil)
	f.invoiceRepo.On("ExistsByNumber", ctx, mock.Anything).Return(false, nil)
	f.invoiceRepo.On("Save", ctx, mock.Anything).Return(nil)

	req := f.createRequest()
	rate := decimal.NewFromInt(12)
	req.VATPercentage = &rate

	resp, err := f.service.Create(ctx, req, uuid.New())
	require.NoError(t, err)
	assert.True(t, rate.Equal(resp.VATPercentage))
	assert.True(t, decimal.NewFromInt(1560000).Equal(resp.VATAmount))
}

func TestInvoiceServiceCreateCompanyNotFound(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.companyRepo.On("FindByID", ctx, f.company.ID).Return(nil, nil)

	_, err := f.service.Create(ctx, f.createRequest(), uuid.New())
	require.Error(t, err)
	f.invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInvoiceServiceCreateInactiveCompany(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.company.Deactivate()
	f.companyRepo.On("FindByID", ctx, f.company.ID).Return(f.company, nil)

	_, err := f.service.Create(ctx, f.createRequest(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactive")
}

func TestInvoiceServiceCreateUnknownJob(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.companyRepo.On("FindByID", ctx, f.company.ID).Return(f.company, nil)
	f.jobRepo.On("FindByID", ctx, f.job.ID).Return(nil, nil)
	f.invoiceRepo.On("ExistsByNumber", ctx, mock.Anything).Return(false, nil)

	_, err := f.service.Create(ctx, f.createRequest(), uuid.New())
	require.Error(t, err)
	f.invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInvoiceServiceAddLine(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	invoice, err := invoicing.NewInvoice("INV-24-12-001", f.company.ID, time.Now(), decimal.NewFromInt(11), uuid.New())
	require.NoError(t, err)

	f.invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
	f.jobRepo.On("FindByID", ctx, f.job.ID).Return(f.job, nil)
	f.workerRepo.On("FindByID", ctx, f.worker.ID).Return(f.worker, nil)
	f.invoiceRepo.On("SaveWithLock", ctx, invoice).Return(nil)

	resp, err := f.service.AddLine(ctx, invoice.ID, AddLineRequest{
		TkaWorkerID:      f.worker.ID,
		JobDescriptionID: f.job.ID,
		Quantity:         2,
	})
	require.NoError(t, err)

	assert.Len(t, resp.Lines, 1)
	assert.True(t, decimal.NewFromInt(26000000).Equal(resp.Subtotal))
}

func TestInvoiceServiceUpdateLine(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	invoice, err := invoicing.NewInvoice("INV-24-12-001", f.company.ID, time.Now(), decimal.NewFromInt(11), uuid.New())
	require.NoError(t, err)
	line, err := invoice.AddLine(f.worker.ID, f.job.ID, f.job.Price, nil, 1, 0)
	require.NoError(t, err)

	f.invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
	f.invoiceRepo.On("SaveWithLock", ctx, invoice).Return(nil)

	quantity := 3
	resp, err := f.service.UpdateLine(ctx, invoice.ID, line.ID, UpdateLineRequest{Quantity: &quantity})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(39000000).Equal(resp.Subtotal))
}

func TestInvoiceServiceRemoveLine(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	invoice, err := invoicing.NewInvoice("INV-24-12-001", f.company.ID, time.Now(), decimal.NewFromInt(11), uuid.New())
	require.NoError(t, err)
	line, err := invoice.AddLine(f.worker.ID, f.job.ID, f.job.Price, nil, 1, 0)
	require.NoError(t, err)

	f.invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
	f.invoiceRepo.On("SaveWithLock", ctx, invoice).Return(nil)

	resp, err := f.service.RemoveLine(ctx, invoice.ID, line.ID)
	require.NoError(t, err)

	assert.Empty(t, resp.Lines)
	assert.True(t, resp.Subtotal.IsZero())
}

func TestInvoiceServiceTransition(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	invoice, err := invoicing.NewInvoice("INV-24-12-001", f.company.ID, time.Now(), decimal.NewFromInt(11), uuid.New())
	require.NoError(t, err)
	_, err = invoice.AddLine(f.worker.ID, f.job.ID, f.job.Price, nil, 1, 0)
	require.NoError(t, err)

	f.invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
	f.invoiceRepo.On("SaveWithLock", ctx, invoice).Return(nil)

	resp, err := f.service.Transition(ctx, invoice.ID, invoicing.InvoiceStatusFinalized)
	require.NoError(t, err)
	assert.Equal(t, "FINALIZED", resp.Status)

	resp, err = f.service.Transition(ctx, invoice.ID, invoicing.InvoiceStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.Status)

	_, err = f.service.Transition(ctx, invoice.ID, invoicing.InvoiceStatusCancelled)
	require.Error(t, err, "paid invoice cannot be cancelled")
}

func TestInvoiceServiceRecordPrint(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	invoice, err := invoicing.NewInvoice("INV-24-12-001", f.company.ID, time.Now(), decimal.NewFromInt(11), uuid.New())
	require.NoError(t, err)

	f.invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
	f.invoiceRepo.On("SaveWithLock", ctx, invoice).Return(nil)

	resp, err := f.service.RecordPrint(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.PrintedCount)
	assert.NotNil(t, resp.LastPrintedAt)
}

func TestInvoiceServiceDelete(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	t.Run("draft can be deleted", func(t *testing.T) {
		invoice, err := invoicing.NewInvoice("INV-24-12-001", f.company.ID, time.Now(), decimal.NewFromInt(11), uuid.New())
		require.NoError(t, err)

		f.invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
		f.invoiceRepo.On("Delete", ctx, invoice.ID).Return(nil)

		require.NoError(t, f.service.Delete(ctx, invoice.ID))
	})

	t.Run("paid cannot be deleted", func(t *testing.T) {
		invoice, err := invoicing.NewInvoice("INV-24-12-002", f.company.ID, time.Now(), decimal.NewFromInt(11), uuid.New())
		require.NoError(t, err)
		_, err = invoice.AddLine(f.worker.ID, f.job.ID, f.job.Price, nil, 1, 0)
		require.NoError(t, err)
		require.NoError(t, invoice.Finalize())
		require.NoError(t, invoice.MarkPaid())

		f.invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)

		err = f.service.Delete(ctx, invoice.ID)
		require.Error(t, err)
		f.invoiceRepo.AssertNotCalled(t, "Delete", ctx, invoice.ID)
	})
}

func TestInvoiceServiceClone(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	source, err := invoicing.NewInvoice("INV-24-11-005", f.company.ID, time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(11), uuid.New())
	require.NoError(t, err)
	custom := decimal.NewFromInt(9000000)
	_, err = source.AddLine(f.worker.ID, f.job.ID, f.job.Price, &custom, 2, 1)
	require.NoError(t, err)

	f.invoiceRepo.On("FindByID", ctx, source.ID).Return(source, nil)
	f.invoiceRepo.On("ExistsByNumber", ctx, mock.Anything).Return(false, nil)

	var saved *invoicing.Invoice
	f.invoiceRepo.On("Save", ctx, mock.AnythingOfType("*invoicing.Invoice")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*invoicing.Invoice)
	}).Return(nil)

	resp, err := f.service.Clone(ctx, source.ID, uuid.New())
	require.NoError(t, err)

	assert.NotEqual(t, source.InvoiceNumber, resp.InvoiceNumber)
	assert.Equal(t, "DRAFT", resp.Status)
	assert.Len(t, resp.Lines, 1)
	assert.True(t, decimal.NewFromInt(18000000).Equal(resp.Subtotal))
	require.NotNil(t, saved)
	assert.NotEqual(t, source.ID, saved.ID)
}

func TestInvoiceServicePreview(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.jobRepo.On("FindByID", ctx, f.job.ID).Return(f.job, nil)

	resp, err := f.service.Preview(ctx, PreviewRequest{
		Lines: []CreateInvoiceLineInput{
			{TkaWorkerID: f.worker.ID, JobDescriptionID: f.job.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(13000000).Equal(resp.Subtotal))
	assert.True(t, decimal.NewFromInt(1430000).Equal(resp.VATAmount))
	assert.True(t, decimal.NewFromInt(14430000).Equal(resp.TotalAmount))
	assert.Equal(t, "Rp 13.000.000", resp.SubtotalFormatted)
	assert.Equal(t, "Rp 1.430.000", resp.VATFormatted)
	assert.Equal(t, "Rp 14.430.000", resp.TotalFormatted)
	f.invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInvoiceServicePreviewCustomPriceSkipsJobLookup(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	custom := decimal.NewFromInt(500000)
	resp, err := f.service.Preview(ctx, PreviewRequest{
		Lines: []CreateInvoiceLineInput{
			{TkaWorkerID: f.worker.ID, JobDescriptionID: f.job.ID, CustomPrice: &custom, Quantity: 4},
		},
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(2000000).Equal(resp.Subtotal))
	f.jobRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestInvoiceServiceStatusSummary(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.invoiceRepo.On("StatusSummary", ctx).Return([]invoicing.StatusCount{
		{Status: invoicing.InvoiceStatusDraft, Count: 2, Total: decimal.NewFromInt(1000)},
		{Status: invoicing.InvoiceStatusPaid, Count: 3, Total: decimal.NewFromInt(5000)},
	}, nil)

	resp, err := f.service.StatusSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.TotalCount)
	assert.True(t, decimal.NewFromInt(6000).Equal(resp.TotalAmount))
	assert.Len(t, resp.ByStatus, 2)
}

func TestInvoiceServiceList(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	invoice, err := invoicing.NewInvoice("INV-24-12-001", f.company.ID, time.Now(), decimal.NewFromInt(11), uuid.New())
	require.NoError(t, err)

	f.invoiceRepo.On("FindAll", ctx, mock.Anything).Return([]invoicing.Invoice{*invoice}, nil)
	f.invoiceRepo.On("Count", ctx, mock.Anything).Return(int64(1), nil)

	page, err := f.service.List(ctx, InvoiceListFilter{})
	require.NoError(t, err)

	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
}

func TestInvoiceServiceListRepoError(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.invoiceRepo.On("FindAll", ctx, mock.Anything).Return(nil, errors.New("db down"))

	_, err := f.service.List(ctx, InvoiceListFilter{})
	require.Error(t, err)
}
