package workforce

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invoicemgr/backend/internal/domain/shared"
	"github.com/invoicemgr/backend/internal/domain/workforce"
)

// WorkerService handles TKA worker and family member operations
type WorkerService struct {
	workerRepo workforce.TkaWorkerRepository
	logger     *zap.Logger
}

// NewWorkerService creates a new WorkerService
func NewWorkerService(workerRepo workforce.TkaWorkerRepository, logger *zap.Logger) *WorkerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkerService{
		workerRepo: workerRepo,
		logger:     logger,
	}
}

// validatePassport collects passport duplicate problems
func (s *WorkerService) validatePassport(ctx context.Context, passport string, excludeID uuid.UUID) (*shared.ValidationResult, error) {
	result := &shared.ValidationResult{}
	taken, err := s.workerRepo.ExistsByPassport(ctx, passport, excludeID)
	if err != nil {
		return nil, err
	}
	if taken {
		result.AddError("passport", "duplicate_passport", "Passport number already registered")
	}
	return result, nil
}

// Create creates a new worker after checking passport uniqueness
func (s *WorkerService) Create(ctx context.Context, req CreateWorkerRequest) (*WorkerResponse, *shared.ValidationResult, error) {
	validation, err := s.validatePassport(ctx, req.Passport, uuid.Nil)
	if err != nil {
		return nil, nil, err
	}
	if !validation.IsValid() {
		return nil, validation, nil
	}

	worker, err := workforce.NewTkaWorker(req.Nama, req.Passport, req.Divisi, workforce.Gender(req.JenisKelamin))
	if err != nil {
		return nil, nil, err
	}

	if err := s.workerRepo.Save(ctx, worker); err != nil {
		return nil, nil, err
	}

	s.logger.Info("worker created",
		zap.String("worker_id", worker.ID.String()),
		zap.String("passport", worker.Passport))

	response := ToWorkerResponse(worker)
	return &response, validation, nil
}

// Update updates an existing worker
func (s *WorkerService) Update(ctx context.Context, id uuid.UUID, req UpdateWorkerRequest) (*WorkerResponse, *shared.ValidationResult, error) {
	worker, err := s.workerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if worker == nil {
		return nil, nil, shared.ErrNotFound
	}

	validation, err := s.validatePassport(ctx, req.Passport, id)
	if err != nil {
		return nil, nil, err
	}
	if !validation.IsValid() {
		return nil, validation, nil
	}

	if err := worker.Update(req.Nama, req.Passport, req.Divisi, workforce.Gender(req.JenisKelamin)); err != nil {
		return nil, nil, err
	}
	if req.IsActive != nil {
		if *req.IsActive {
			worker.Activate()
		} else {
			worker.Deactivate()
		}
	}

	if err := s.workerRepo.Save(ctx, worker); err != nil {
		return nil, nil, err
	}

	response := ToWorkerResponse(worker)
	return &response, validation, nil
}

// GetByID retrieves a worker by ID
func (s *WorkerService) GetByID(ctx context.Context, id uuid.UUID) (*WorkerResponse, error) {
	worker, err := s.workerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, shared.ErrNotFound
	}
	response := ToWorkerResponse(worker)
	return &response, nil
}

// List retrieves workers with pagination
func (s *WorkerService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[WorkerResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	workers, err := s.workerRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[WorkerResponse]{}, err
	}
	total, err := s.workerRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[WorkerResponse]{}, err
	}

	responses := make([]WorkerResponse, 0, len(workers))
	for idx := range workers {
		responses = append(responses, ToWorkerResponse(&workers[idx]))
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

// Search finds workers matching a free-text query
func (s *WorkerService) Search(ctx context.Context, query string, limit int) ([]WorkerResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	workers, err := s.workerRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]WorkerResponse, 0, len(workers))
	for idx := range workers {
		responses = append(responses, ToWorkerResponse(&workers[idx]))
	}
	return responses, nil
}

// Delete removes a worker and their family members
func (s *WorkerService) Delete(ctx context.Context, id uuid.UUID) error {
	worker, err := s.workerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if worker == nil {
		return shared.ErrNotFound
	}
	return s.workerRepo.Delete(ctx, id)
}

// AddFamilyMember attaches a family member to a worker
func (s *WorkerService) AddFamilyMember(ctx context.Context, workerID uuid.UUID, req CreateFamilyMemberRequest) (*FamilyMemberResponse, *shared.ValidationResult, error) {
	worker, err := s.workerRepo.FindByID(ctx, workerID)
	if err != nil {
		return nil, nil, err
	}
	if worker == nil {
		return nil, nil, shared.ErrNotFound
	}

	validation, err := s.validatePassport(ctx, req.Passport, uuid.Nil)
	if err != nil {
		return nil, nil, err
	}
	if !validation.IsValid() {
		return nil, validation, nil
	}

	member, err := workforce.NewTkaFamilyMember(workerID, req.Nama, req.Passport, workforce.Gender(req.JenisKelamin), workforce.FamilyRelationship(req.Relationship))
	if err != nil {
		return nil, nil, err
	}

	if err := s.workerRepo.SaveFamilyMember(ctx, member); err != nil {
		return nil, nil, err
	}

	response := ToFamilyMemberResponse(member)
	return &response, validation, nil
}

// ListFamilyMembers lists the family members of a worker
func (s *WorkerService) ListFamilyMembers(ctx context.Context, workerID uuid.UUID) ([]FamilyMemberResponse, error) {
	members, err := s.workerRepo.FindFamilyMembers(ctx, workerID)
	if err != nil {
		return nil, err
	}
	responses := make([]FamilyMemberResponse, 0, len(members))
	for idx := range members {
		responses = append(responses, ToFamilyMemberResponse(&members[idx]))
	}
	return responses, nil
}

// RemoveFamilyMember deletes a family member
func (s *WorkerService) RemoveFamilyMember(ctx context.Context, memberID uuid.UUID) error {
	return s.workerRepo.DeleteFamilyMember(ctx, memberID)
}
