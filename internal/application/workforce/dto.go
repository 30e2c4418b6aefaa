package workforce

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicemgr/backend/internal/domain/workforce"
)

// CreateWorkerRequest represents a request to create a TKA worker
type CreateWorkerRequest struct {
	Nama         string `json:"nama" binding:"required,min=1,max=100"`
	Passport     string `json:"passport" binding:"required,min=1,max=20"`
	Divisi       string `json:"divisi" binding:"max=100"`
	JenisKelamin string `json:"jenis_kelamin" binding:"omitempty,oneof=Laki-laki Perempuan"`
}

// UpdateWorkerRequest represents a request to update a TKA worker
type UpdateWorkerRequest struct {
	Nama         string `json:"nama" binding:"required,min=1,max=100"`
	Passport     string `json:"passport" binding:"required,min=1,max=20"`
	Divisi       string `json:"divisi" binding:"max=100"`
	JenisKelamin string `json:"jenis_kelamin" binding:"required,oneof=Laki-laki Perempuan"`
	IsActive     *bool  `json:"is_active"`
}

// CreateFamilyMemberRequest represents a request to add a family member
type CreateFamilyMemberRequest struct {
	Nama         string `json:"nama" binding:"required,min=1,max=100"`
	Passport     string `json:"passport" binding:"required,min=1,max=20"`
	JenisKelamin string `json:"jenis_kelamin" binding:"omitempty,oneof=Laki-laki Perempuan"`
	Relationship string `json:"relationship" binding:"omitempty,oneof=spouse parent child"`
}

// WorkerResponse represents a worker in API responses
type WorkerResponse struct {
	ID           uuid.UUID `json:"id"`
	Nama         string    `json:"nama"`
	Passport     string    `json:"passport"`
	Divisi       string    `json:"divisi,omitempty"`
	JenisKelamin string    `json:"jenis_kelamin"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// FamilyMemberResponse represents a family member in API responses
type FamilyMemberResponse struct {
	ID           uuid.UUID `json:"id"`
	TkaWorkerID  uuid.UUID `json:"tka_worker_id"`
	Nama         string    `json:"nama"`
	Passport     string    `json:"passport"`
	JenisKelamin string    `json:"jenis_kelamin"`
	Relationship string    `json:"relationship"`
	IsActive     bool      `json:"is_active"`
}

// CreateJobRequest represents a request to create a job description
type CreateJobRequest struct {
	CompanyID      uuid.UUID       `json:"company_id" binding:"required"`
	JobName        string          `json:"job_name" binding:"required,min=1,max=200"`
	JobDescription string          `json:"job_description" binding:"required"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	SortOrder      int             `json:"sort_order"`
}

// UpdateJobRequest represents a request to update a job description
type UpdateJobRequest struct {
	JobName        string          `json:"job_name" binding:"required,min=1,max=200"`
	JobDescription string          `json:"job_description" binding:"required"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	SortOrder      int             `json:"sort_order"`
}

// JobResponse represents a job description in API responses
type JobResponse struct {
	ID             uuid.UUID       `json:"id"`
	CompanyID      uuid.UUID       `json:"company_id"`
	JobName        string          `json:"job_name"`
	JobDescription string          `json:"job_description"`
	Price          decimal.Decimal `json:"price"`
	IsActive       bool            `json:"is_active"`
	SortOrder      int             `json:"sort_order"`
}

// ToWorkerResponse converts a domain worker to its response shape
func ToWorkerResponse(w *workforce.TkaWorker) WorkerResponse {
	return WorkerResponse{
		ID:           w.ID,
		Nama:         w.Nama,
		Passport:     w.Passport,
		Divisi:       w.Divisi,
		JenisKelamin: string(w.JenisKelamin),
		IsActive:     w.IsActive,
		CreatedAt:    w.CreatedAt,
	}
}

// ToFamilyMemberResponse converts a domain family member to its response shape
func ToFamilyMemberResponse(m *workforce.TkaFamilyMember) FamilyMemberResponse {
	return FamilyMemberResponse{
		ID:           m.ID,
		TkaWorkerID:  m.TkaWorkerID,
		Nama:         m.Nama,
		Passport:     m.Passport,
		JenisKelamin: string(m.JenisKelamin),
		Relationship: string(m.Relationship),
		IsActive:     m.IsActive,
	}
}

// ToJobResponse converts a domain job to its response shape
func ToJobResponse(j *workforce.JobDescription) JobResponse {
	return JobResponse{
		ID:             j.ID,
		CompanyID:      j.CompanyID,
		JobName:        j.JobName,
		JobDescription: j.JobDescription,
		Price:          j.Price,
		IsActive:       j.IsActive,
		SortOrder:      j.SortOrder,
	}
}
