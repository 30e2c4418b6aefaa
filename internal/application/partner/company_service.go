package partner

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invoicemgr/backend/internal/domain/partner"
	"github.com/invoicemgr/backend/internal/domain/shared"
)

// CompanyService handles company master data operations
type CompanyService struct {
	companyRepo partner.CompanyRepository
	logger      *zap.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo partner.CompanyRepository, logger *zap.Logger) *CompanyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompanyService{
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// validateUniqueness collects NPWP and IDTKU duplicate problems into a
// single result so the caller sees all of them at once
func (s *CompanyService) validateUniqueness(ctx context.Context, npwp, idtku string, excludeID uuid.UUID) (*shared.ValidationResult, error) {
	result := &shared.ValidationResult{}

	npwpTaken, err := s.companyRepo.ExistsByNPWP(ctx, npwp, excludeID)
	if err != nil {
		return nil, err
	}
	if npwpTaken {
		result.AddError("npwp", "duplicate_npwp", "NPWP already registered to another company")
	}

	idtkuTaken, err := s.companyRepo.ExistsByIDTKU(ctx, idtku, excludeID)
	if err != nil {
		return nil, err
	}
	if idtkuTaken {
		result.AddError("idtku", "duplicate_idtku", "IDTKU already registered to another company")
	}

	return result, nil
}

// Create creates a new company after checking NPWP and IDTKU uniqueness
func (s *CompanyService) Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, *shared.ValidationResult, error) {
	validation, err := s.validateUniqueness(ctx, req.NPWP, req.IDTKU, uuid.Nil)
	if err != nil {
		return nil, nil, err
	}
	if !validation.IsValid() {
		return nil, validation, nil
	}

	company, err := partner.NewCompany(req.CompanyName, req.NPWP, req.IDTKU, req.Address)
	if err != nil {
		return nil, nil, err
	}

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, nil, err
	}

	s.logger.Info("company created",
		zap.String("company_id", company.ID.String()),
		zap.String("name", company.CompanyName))

	response := ToCompanyResponse(company)
	return &response, validation, nil
}

// Update updates an existing company
func (s *CompanyService) Update(ctx context.Context, id uuid.UUID, req UpdateCompanyRequest) (*CompanyResponse, *shared.ValidationResult, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if company == nil {
		return nil, nil, shared.ErrNotFound
	}

	validation, err := s.validateUniqueness(ctx, req.NPWP, req.IDTKU, id)
	if err != nil {
		return nil, nil, err
	}
	if !validation.IsValid() {
		return nil, validation, nil
	}

	if err := company.Update(req.CompanyName, req.NPWP, req.IDTKU, req.Address); err != nil {
		return nil, nil, err
	}
	if req.IsActive != nil {
		if *req.IsActive {
			company.Activate()
		} else {
			company.Deactivate()
		}
	}

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, nil, err
	}

	response := ToCompanyResponse(company)
	return &response, validation, nil
}

// GetByID retrieves a company by ID
func (s *CompanyService) GetByID(ctx context.Context, id uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, shared.ErrNotFound
	}
	response := ToCompanyResponse(company)
	return &response, nil
}

// List retrieves companies with pagination
func (s *CompanyService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[CompanyResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	companies, err := s.companyRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[CompanyResponse]{}, err
	}
	total, err := s.companyRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[CompanyResponse]{}, err
	}

	responses := make([]CompanyResponse, 0, len(companies))
	for idx := range companies {
		responses = append(responses, ToCompanyResponse(&companies[idx]))
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

// Search finds companies matching a free-text query
func (s *CompanyService) Search(ctx context.Context, query string, limit int) ([]CompanyResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	companies, err := s.companyRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]CompanyResponse, 0, len(companies))
	for idx := range companies {
		responses = append(responses, ToCompanyResponse(&companies[idx]))
	}
	return responses, nil
}

// Delete removes a company
func (s *CompanyService) Delete(ctx context.Context, id uuid.UUID) error {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil {
		return shared.ErrNotFound
	}
	return s.companyRepo.Delete(ctx, id)
}
