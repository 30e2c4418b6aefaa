package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appsettings "github.com/invoicemgr/backend/internal/application/settings"
	"github.com/invoicemgr/backend/internal/domain/invoicing"
	"github.com/invoicemgr/backend/internal/domain/partner"
	"github.com/invoicemgr/backend/internal/domain/shared"
	"github.com/invoicemgr/backend/internal/domain/workforce"
)

// InvoiceService orchestrates invoice creation, mutation, numbering and
// lifecycle transitions
type InvoiceService struct {
	invoiceRepo invoicing.InvoiceRepository
	companyRepo partner.CompanyRepository
	jobRepo     workforce.JobDescriptionRepository
	workerRepo  workforce.TkaWorkerRepository
	allocator   *InvoiceNumberAllocator
	settings    *appsettings.Service
	logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo invoicing.InvoiceRepository,
	companyRepo partner.CompanyRepository,
	jobRepo workforce.JobDescriptionRepository,
	workerRepo workforce.TkaWorkerRepository,
	allocator *InvoiceNumberAllocator,
	settingsService *appsettings.Service,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		jobRepo:     jobRepo,
		workerRepo:  workerRepo,
		allocator:   allocator,
		settings:    settingsService,
		logger:      logger,
	}
}

// Create creates a new draft invoice, allocating its number and adding
// any lines in the request
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest, createdBy uuid.UUID) (*InvoiceResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, shared.NewDomainError("COMPANY_NOT_FOUND", "Company not found")
	}
	if !company.IsActive {
		return nil, shared.NewDomainError("COMPANY_INACTIVE", "Cannot invoice an inactive company")
	}

	invoiceDate := req.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = time.Now()
	}

	vatRate := s.resolveVATRate(ctx, req.VATPercentage)

	invoiceNumber, err := s.allocator.Allocate(ctx, invoiceDate)
	if err != nil {
		return nil, err
	}

	invoice, err := invoicing.NewInvoice(invoiceNumber, req.CompanyID, invoiceDate, vatRate, createdBy)
	if err != nil {
		return nil, err
	}

	if req.Notes != "" {
		if err := invoice.SetNotes(req.Notes); err != nil {
			return nil, err
		}
	}
	if req.BankAccountID != nil {
		if err := invoice.SetBankAccount(*req.BankAccountID); err != nil {
			return nil, err
		}
	}
	invoice.ImportBatchID = req.ImportBatchID

	for _, input := range req.Lines {
		if err := s.appendLine(ctx, invoice, input); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("invoice created",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("company_id", invoice.CompanyID.String()),
		zap.Int("lines", invoice.LineCount()))

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByNumber retrieves an invoice by its invoice number
func (s *InvoiceService) GetByNumber(ctx context.Context, invoiceNumber string) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, filter InvoiceListFilter) (shared.Paginated[InvoiceListItemResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.CompanyID != nil {
		domainFilter.Filters["company_id"] = *filter.CompanyID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[InvoiceListItemResponse]{}, err
	}
	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[InvoiceListItemResponse]{}, err
	}

	items := ToInvoiceListItemResponses(invoices)
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Update changes invoice header fields (date, VAT rate, notes, bank
// account) on an editable invoice
func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.InvoiceDate != nil {
		if err := invoice.SetInvoiceDate(*req.InvoiceDate); err != nil {
			return nil, err
		}
	}
	if req.VATPercentage != nil {
		if err := invoice.SetVATPercentage(*req.VATPercentage); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		if err := invoice.SetNotes(*req.Notes); err != nil {
			return nil, err
		}
	}
	if req.BankAccountID != nil {
		if err := invoice.SetBankAccount(*req.BankAccountID); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// AddLine adds a line to an existing invoice
func (s *InvoiceService) AddLine(ctx context.Context, invoiceID uuid.UUID, req AddLineRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	input := CreateInvoiceLineInput{
		TkaWorkerID:      req.TkaWorkerID,
		JobDescriptionID: req.JobDescriptionID,
		CustomJobName:    req.CustomJobName,
		CustomJobDesc:    req.CustomJobDesc,
		CustomPrice:      req.CustomPrice,
		Quantity:         req.Quantity,
		Baris:            req.Baris,
	}
	if err := s.appendLine(ctx, invoice, input); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// UpdateLine updates the quantity or price of an existing line
func (s *InvoiceService) UpdateLine(ctx context.Context, invoiceID, lineID uuid.UUID, req UpdateLineRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if req.Quantity != nil {
		if err := invoice.UpdateLineQuantity(lineID, *req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.UnitPrice != nil {
		if err := invoice.UpdateLinePrice(lineID, *req.UnitPrice, true); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// RemoveLine removes a line from an invoice
func (s *InvoiceService) RemoveLine(ctx context.Context, invoiceID, lineID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.RemoveLine(lineID); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Transition moves an invoice to a new lifecycle status
func (s *InvoiceService) Transition(ctx context.Context, id uuid.UUID, target invoicing.InvoiceStatus) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := invoice.Status
	if err := invoice.TransitionTo(target); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("invoice status changed",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("from", previous.String()),
		zap.String("to", invoice.Status.String()))

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// RecordPrint increments the invoice's print counter
func (s *InvoiceService) RecordPrint(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	invoice.RecordPrint()

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Delete removes a draft or finalized invoice. Paid and cancelled
// invoices are kept for the audit trail.
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !invoice.CanDelete() {
		return shared.NewDomainError("INVOICE_LOCKED", "Paid and cancelled invoices cannot be deleted")
	}

	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("invoice deleted",
		zap.String("invoice_number", invoice.InvoiceNumber))
	return nil
}

// Clone copies an invoice into a new draft with a freshly allocated
// number and today's date. Line prices are carried over as-is.
func (s *InvoiceService) Clone(ctx context.Context, id uuid.UUID, createdBy uuid.UUID) (*InvoiceResponse, error) {
	source, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	invoiceDate := time.Now()
	invoiceNumber, err := s.allocator.Allocate(ctx, invoiceDate)
	if err != nil {
		return nil, err
	}

	clone, err := invoicing.NewInvoice(invoiceNumber, source.CompanyID, invoiceDate, source.VATPercentage, createdBy)
	if err != nil {
		return nil, err
	}
	if source.Notes != "" {
		if err := clone.SetNotes(source.Notes); err != nil {
			return nil, err
		}
	}
	if source.BankAccountID != nil {
		if err := clone.SetBankAccount(*source.BankAccountID); err != nil {
			return nil, err
		}
	}

	for idx := range source.Lines {
		src := &source.Lines[idx]
		price := src.UnitPrice
		line, err := clone.AddLine(src.TkaWorkerID, src.JobDescriptionID, price, src.CustomPrice, src.Quantity, src.Baris)
		if err != nil {
			return nil, err
		}
		if src.CustomJobName != nil || src.CustomJobDesc != nil {
			name, desc := "", ""
			if src.CustomJobName != nil {
				name = *src.CustomJobName
			}
			if src.CustomJobDesc != nil {
				desc = *src.CustomJobDesc
			}
			clone.GetLine(line.ID).SetCustomJob(name, desc)
		}
	}

	if err := s.invoiceRepo.Save(ctx, clone); err != nil {
		return nil, err
	}

	s.logger.Info("invoice cloned",
		zap.String("source_number", source.InvoiceNumber),
		zap.String("clone_number", clone.InvoiceNumber))

	response := ToInvoiceResponse(clone)
	return &response, nil
}

// Preview computes totals for a prospective invoice without persisting
// anything or consuming an invoice number
func (s *InvoiceService) Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error) {
	vatRate := s.resolveVATRate(ctx, req.VATPercentage)

	subtotal := decimal.Zero
	for _, input := range req.Lines {
		if input.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
		}
		unitPrice, err := s.resolveLinePrice(ctx, input)
		if err != nil {
			return nil, err
		}
		subtotal = subtotal.Add(invoicing.ComputeLineTotal(input.Quantity, unitPrice))
	}

	vatAmount := invoicing.CalculateVAT(subtotal, vatRate)
	total := subtotal.Add(vatAmount)

	return &PreviewResponse{
		Subtotal:          subtotal,
		VATPercentage:     vatRate,
		VATAmount:         vatAmount,
		TotalAmount:       total,
		SubtotalFormatted: formatIDR(subtotal),
		VATFormatted:      formatIDR(vatAmount),
		TotalFormatted:    formatIDR(total),
		LineCount:         len(req.Lines),
	}, nil
}

// StatusSummary returns invoice counts and amounts grouped by status
func (s *InvoiceService) StatusSummary(ctx context.Context) (*StatusSummaryResponse, error) {
	byStatus, err := s.invoiceRepo.StatusSummary(ctx)
	if err != nil {
		return nil, err
	}

	var totalCount int64
	totalAmount := decimal.Zero
	for _, row := range byStatus {
		totalCount += row.Count
		totalAmount = totalAmount.Add(row.Total)
	}

	return &StatusSummaryResponse{
		ByStatus:    byStatus,
		TotalCount:  totalCount,
		TotalAmount: totalAmount,
	}, nil
}

// appendLine resolves the job price for a line input and adds it to the
// invoice
func (s *InvoiceService) appendLine(ctx context.Context, invoice *invoicing.Invoice, input CreateInvoiceLineInput) error {
	standardPrice, err := s.resolveStandardPrice(ctx, input.JobDescriptionID)
	if err != nil {
		return err
	}

	if s.workerRepo != nil {
		worker, err := s.workerRepo.FindByID(ctx, input.TkaWorkerID)
		if err != nil {
			return err
		}
		if worker == nil {
			return shared.NewDomainError("WORKER_NOT_FOUND", "TKA worker not found")
		}
	}

	line, err := invoice.AddLine(input.TkaWorkerID, input.JobDescriptionID, standardPrice, input.CustomPrice, input.Quantity, input.Baris)
	if err != nil {
		return err
	}
	if input.CustomJobName != "" || input.CustomJobDesc != "" {
		invoice.GetLine(line.ID).SetCustomJob(input.CustomJobName, input.CustomJobDesc)
	}
	return nil
}

// resolveLinePrice returns the effective unit price for a line input
func (s *InvoiceService) resolveLinePrice(ctx context.Context, input CreateInvoiceLineInput) (decimal.Decimal, error) {
	if input.CustomPrice != nil {
		if input.CustomPrice.IsNegative() {
			return decimal.Zero, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
		}
		return *input.CustomPrice, nil
	}
	return s.resolveStandardPrice(ctx, input.JobDescriptionID)
}

func (s *InvoiceService) resolveStandardPrice(ctx context.Context, jobID uuid.UUID) (decimal.Decimal, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return decimal.Zero, err
	}
	if job == nil {
		return decimal.Zero, shared.NewDomainError("JOB_NOT_FOUND", "Job description not found")
	}
	return job.Price, nil
}

// resolveVATRate prefers the explicit rate from the request, otherwise
// the configured default
func (s *InvoiceService) resolveVATRate(ctx context.Context, explicit *decimal.Decimal) decimal.Decimal {
	if explicit != nil {
		return *explicit
	}
	if s.settings != nil {
		return s.settings.DefaultVATPercentage(ctx)
	}
	rate, _ := decimal.NewFromString("11.00")
	return rate
}
