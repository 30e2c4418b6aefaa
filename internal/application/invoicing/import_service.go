package invoicing

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invoicemgr/backend/internal/domain/partner"
	"github.com/invoicemgr/backend/internal/domain/shared"
	"github.com/invoicemgr/backend/internal/domain/workforce"
	csvimport "github.com/invoicemgr/backend/internal/infrastructure/import"
)

const importMaxErrors = 100

// ImportResult reports the outcome of a CSV import or dry run
type ImportResult struct {
	BatchID        string               `json:"batch_id,omitempty"`
	TotalRows      int                  `json:"total_rows"`
	InvoiceCount   int                  `json:"invoice_count"`
	LineCount      int                  `json:"line_count"`
	InvoiceNumbers []string             `json:"invoice_numbers,omitempty"`
	Errors         []csvimport.RowError `json:"errors,omitempty"`
	TotalErrors    int                  `json:"total_errors"`
	Truncated      bool                 `json:"truncated,omitempty"`
	DryRun         bool                 `json:"dry_run"`
}

// Succeeded reports whether the file was imported (or would import)
func (r *ImportResult) Succeeded() bool {
	return r.TotalErrors == 0
}

// ImportService turns invoice CSV files into draft invoices.
// The import is all-or-nothing: any row error aborts the whole file
// before a single invoice is created.
type ImportService struct {
	invoiceService *InvoiceService
	companyRepo    partner.CompanyRepository
	workerRepo     workforce.TkaWorkerRepository
	jobRepo        workforce.JobDescriptionRepository
	logger         *zap.Logger
}

// NewImportService creates a new ImportService
func NewImportService(
	invoiceService *InvoiceService,
	companyRepo partner.CompanyRepository,
	workerRepo workforce.TkaWorkerRepository,
	jobRepo workforce.JobDescriptionRepository,
	logger *zap.Logger,
) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{
		invoiceService: invoiceService,
		companyRepo:    companyRepo,
		workerRepo:     workerRepo,
		jobRepo:        jobRepo,
		logger:         logger,
	}
}

// importGroup is one prospective invoice assembled from consecutive
// rows sharing company and date
type importGroup struct {
	request CreateInvoiceRequest
	rows    int
}

// Validate parses and resolves the file without creating anything
func (s *ImportService) Validate(ctx context.Context, r io.Reader) (*ImportResult, error) {
	result, _, err := s.prepare(ctx, r)
	if err != nil {
		return nil, err
	}
	result.DryRun = true
	return result, nil
}

// Import creates draft invoices from the file, stamping every invoice
// with a fresh batch ID
func (s *ImportService) Import(ctx context.Context, r io.Reader, createdBy uuid.UUID) (*ImportResult, error) {
	result, groups, err := s.prepare(ctx, r)
	if err != nil {
		return nil, err
	}
	if !result.Succeeded() {
		return result, nil
	}

	batchID := csvimport.GenerateBatchID(time.Now())
	result.BatchID = batchID

	for i := range groups {
		groups[i].request.ImportBatchID = &batchID
		resp, err := s.invoiceService.Create(ctx, groups[i].request, createdBy)
		if err != nil {
			// Invoices created before the failure keep the batch ID so
			// the operator can find and remove them
			s.logger.Error("import aborted mid-batch",
				zap.String("batch_id", batchID),
				zap.Int("created", len(result.InvoiceNumbers)),
				zap.Error(err))
			return nil, err
		}
		result.InvoiceNumbers = append(result.InvoiceNumbers, resp.InvoiceNumber)
	}

	s.logger.Info("invoice import completed",
		zap.String("batch_id", batchID),
		zap.Int("invoices", result.InvoiceCount),
		zap.Int("lines", result.LineCount))
	return result, nil
}

// prepare parses the file, resolves all references and groups rows into
// prospective invoices. File-level problems come back as an error; row
// problems are collected in the result.
func (s *ImportService) prepare(ctx context.Context, r io.Reader) (*ImportResult, []importGroup, error) {
	rows, errs, err := csvimport.ParseInvoiceRows(r, importMaxErrors)
	if err != nil {
		return nil, nil, shared.NewDomainError("IMPORT_INVALID_FILE", err.Error())
	}

	result := &ImportResult{TotalRows: len(rows) + errs.Total()}

	companies := make(map[string]*partner.Company)
	workers := make(map[string]*workforce.TkaWorker)
	jobsByCompany := make(map[uuid.UUID]map[string]*workforce.JobDescription)

	var groups []importGroup
	for _, row := range rows {
		company, err := s.resolveCompany(ctx, companies, row.CompanyNPWP)
		if err != nil {
			return nil, nil, err
		}
		if company == nil {
			errs.AddReference(row.Row, csvimport.ColCompanyNPWP, row.CompanyNPWP, "company")
			continue
		}

		worker, err := s.resolveWorker(ctx, workers, row.WorkerPassport)
		if err != nil {
			return nil, nil, err
		}
		if worker == nil {
			errs.AddReference(row.Row, csvimport.ColWorkerPassport, row.WorkerPassport, "worker")
			continue
		}

		job, err := s.resolveJob(ctx, jobsByCompany, company.ID, row.JobName)
		if err != nil {
			return nil, nil, err
		}
		if job == nil {
			errs.AddReference(row.Row, csvimport.ColJobName, row.JobName, "job")
			continue
		}

		line := CreateInvoiceLineInput{
			TkaWorkerID:      worker.ID,
			JobDescriptionID: job.ID,
			CustomPrice:      row.CustomPrice,
			Quantity:         row.Quantity,
			Baris:            row.Baris,
		}

		last := len(groups) - 1
		if last >= 0 &&
			groups[last].request.CompanyID == company.ID &&
			groups[last].request.InvoiceDate.Equal(row.InvoiceDate) {
			groups[last].request.Lines = append(groups[last].request.Lines, line)
			groups[last].rows++
			if groups[last].request.Notes == "" && row.Notes != "" {
				groups[last].request.Notes = row.Notes
			}
		} else {
			groups = append(groups, importGroup{
				request: CreateInvoiceRequest{
					CompanyID:   company.ID,
					InvoiceDate: row.InvoiceDate,
					Notes:       row.Notes,
					Lines:       []CreateInvoiceLineInput{line},
				},
				rows: 1,
			})
		}
		result.LineCount++
	}

	result.InvoiceCount = len(groups)
	result.Errors = errs.Errors()
	result.TotalErrors = errs.Total()
	result.Truncated = errs.Truncated()

	if !result.Succeeded() {
		result.InvoiceCount = 0
		result.LineCount = 0
		return result, nil, nil
	}
	return result, groups, nil
}

func (s *ImportService) resolveCompany(ctx context.Context, cache map[string]*partner.Company, npwp string) (*partner.Company, error) {
	if company, ok := cache[npwp]; ok {
		return company, nil
	}
	company, err := s.companyRepo.FindByNPWP(ctx, npwp)
	if err != nil {
		return nil, err
	}
	if company != nil && !company.IsActive {
		company = nil
	}
	cache[npwp] = company
	return company, nil
}

func (s *ImportService) resolveWorker(ctx context.Context, cache map[string]*workforce.TkaWorker, passport string) (*workforce.TkaWorker, error) {
	if worker, ok := cache[passport]; ok {
		return worker, nil
	}
	worker, err := s.workerRepo.FindByPassport(ctx, passport)
	if err != nil {
		return nil, err
	}
	cache[passport] = worker
	return worker, nil
}

func (s *ImportService) resolveJob(ctx context.Context, cache map[uuid.UUID]map[string]*workforce.JobDescription, companyID uuid.UUID, jobName string) (*workforce.JobDescription, error) {
	byName, ok := cache[companyID]
	if !ok {
		jobs, err := s.jobRepo.FindByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}
		byName = make(map[string]*workforce.JobDescription, len(jobs))
		for i := range jobs {
			byName[strings.ToLower(jobs[i].JobName)] = &jobs[i]
		}
		cache[companyID] = byName
	}
	return byName[strings.ToLower(jobName)], nil
}
