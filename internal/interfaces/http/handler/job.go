package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/invoicemgr/backend/internal/application/workforce"
	"github.com/invoicemgr/backend/internal/interfaces/http/dto"
)

// JobHandler handles job description endpoints
type JobHandler struct {
	BaseHandler
	jobService *workforce.JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobService *workforce.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

func (h *JobHandler) bindJobID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid job ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return uuid.Nil, false
	}
	return id, true
}

// Create creates a new job description
func (h *JobHandler) Create(c *gin.Context) {
	var req workforce.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	job, err := h.jobService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, job)
}

// ListByCompany lists a company's job descriptions in sort order
func (h *JobHandler) ListByCompany(c *gin.Context) {
	companyID, err := uuid.Parse(c.Query("company_id"))
	if err != nil {
		h.BadRequest(c, "company_id is required")
		return
	}

	jobs, err := h.jobService.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, jobs)
}

// Update updates a job description
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := h.bindJobID(c)
	if !ok {
		return
	}

	var req workforce.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	job, err := h.jobService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, job)
}

// Delete removes a job description
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := h.bindJobID(c)
	if !ok {
		return
	}

	if err := h.jobService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
