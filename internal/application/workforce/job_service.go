package workforce

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invoicemgr/backend/internal/domain/shared"
	"github.com/invoicemgr/backend/internal/domain/workforce"
)

// JobService handles job description master data operations
type JobService struct {
	jobRepo workforce.JobDescriptionRepository
	logger  *zap.Logger
}

// NewJobService creates a new JobService
func NewJobService(jobRepo workforce.JobDescriptionRepository, logger *zap.Logger) *JobService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobService{
		jobRepo: jobRepo,
		logger:  logger,
	}
}

// Create creates a new job for a company
func (s *JobService) Create(ctx context.Context, req CreateJobRequest) (*JobResponse, error) {
	job, err := workforce.NewJobDescription(req.CompanyID, req.JobName, req.JobDescription, req.Price)
	if err != nil {
		return nil, err
	}
	job.SortOrder = req.SortOrder

	if err := s.jobRepo.Save(ctx, job); err != nil {
		return nil, err
	}

	response := ToJobResponse(job)
	return &response, nil
}

// Update updates an existing job
func (s *JobService) Update(ctx context.Context, id uuid.UUID, req UpdateJobRequest) (*JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, shared.ErrNotFound
	}

	if err := job.Update(req.JobName, req.JobDescription, req.Price, req.SortOrder); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Save(ctx, job); err != nil {
		return nil, err
	}

	response := ToJobResponse(job)
	return &response, nil
}

// ListByCompany lists active jobs for a company
func (s *JobService) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]JobResponse, error) {
	jobs, err := s.jobRepo.FindByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	responses := make([]JobResponse, 0, len(jobs))
	for idx := range jobs {
		responses = append(responses, ToJobResponse(&jobs[idx]))
	}
	return responses, nil
}

// Delete removes a job
func (s *JobService) Delete(ctx context.Context, id uuid.UUID) error {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if job == nil {
		return shared.ErrNotFound
	}
	return s.jobRepo.Delete(ctx, id)
}
