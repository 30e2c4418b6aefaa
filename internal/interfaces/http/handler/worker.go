package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/invoicemgr/backend/internal/application/workforce"
	"github.com/invoicemgr/backend/internal/interfaces/http/dto"
)

// WorkerHandler handles TKA worker endpoints
type WorkerHandler struct {
	BaseHandler
	workerService *workforce.WorkerService
}

// NewWorkerHandler creates a new worker handler
func NewWorkerHandler(workerService *workforce.WorkerService) *WorkerHandler {
	return &WorkerHandler{workerService: workerService}
}

func (h *WorkerHandler) bindWorkerID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid worker ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid worker ID")
		return uuid.Nil, false
	}
	return id, true
}

// Create creates a new TKA worker
func (h *WorkerHandler) Create(c *gin.Context) {
	var req workforce.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	worker, validation, err := h.workerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if validation != nil && !validation.IsValid() {
		h.ValidationFailed(c, validation)
		return
	}

	h.Created(c, worker)
}

// Get returns a single worker
func (h *WorkerHandler) Get(c *gin.Context) {
	id, ok := h.bindWorkerID(c)
	if !ok {
		return
	}

	worker, err := h.workerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, worker)
}

// List returns a filtered, paginated worker list
func (h *WorkerHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := toFilter(req)
	if divisi := c.Query("divisi"); divisi != "" {
		filter.Filters["divisi"] = divisi
	}
	if isActive := c.Query("is_active"); isActive != "" {
		if v, err := strconv.ParseBool(isActive); err == nil {
			filter.Filters["is_active"] = v
		}
	}

	result, err := h.workerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(&h.BaseHandler, c, result)
}

// Search returns active workers matching a name or passport fragment
func (h *WorkerHandler) Search(c *gin.Context) {
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	workers, err := h.workerService.Search(c.Request.Context(), query, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, workers)
}

// Update updates a worker
func (h *WorkerHandler) Update(c *gin.Context) {
	id, ok := h.bindWorkerID(c)
	if !ok {
		return
	}

	var req workforce.UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	worker, validation, err := h.workerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if validation != nil && !validation.IsValid() {
		h.ValidationFailed(c, validation)
		return
	}

	h.Success(c, worker)
}

// Delete deactivates or removes a worker
func (h *WorkerHandler) Delete(c *gin.Context) {
	id, ok := h.bindWorkerID(c)
	if !ok {
		return
	}

	if err := h.workerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddFamilyMember registers a family member under a worker
func (h *WorkerHandler) AddFamilyMember(c *gin.Context) {
	id, ok := h.bindWorkerID(c)
	if !ok {
		return
	}

	var req workforce.CreateFamilyMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	member, validation, err := h.workerService.AddFamilyMember(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if validation != nil && !validation.IsValid() {
		h.ValidationFailed(c, validation)
		return
	}

	h.Created(c, member)
}

// ListFamilyMembers lists a worker's family members
func (h *WorkerHandler) ListFamilyMembers(c *gin.Context) {
	id, ok := h.bindWorkerID(c)
	if !ok {
		return
	}

	members, err := h.workerService.ListFamilyMembers(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, members)
}

// RemoveFamilyMember removes a family member
func (h *WorkerHandler) RemoveFamilyMember(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		h.BadRequest(c, "Invalid family member ID")
		return
	}

	if err := h.workerService.RemoveFamilyMember(c.Request.Context(), memberID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
