package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/invoicemgr/backend/internal/application/partner"
	"github.com/invoicemgr/backend/internal/interfaces/http/dto"
)

// CompanyHandler handles company endpoints
type CompanyHandler struct {
	BaseHandler
	companyService *partner.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *partner.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

func (h *CompanyHandler) bindCompanyID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid company ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return uuid.Nil, false
	}
	return id, true
}

// Create creates a new company
func (h *CompanyHandler) Create(c *gin.Context) {
	var req partner.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	company, validation, err := h.companyService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if validation != nil && !validation.IsValid() {
		h.ValidationFailed(c, validation)
		return
	}

	h.Created(c, company)
}

// Get returns a single company
func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := h.bindCompanyID(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, company)
}

// List returns a filtered, paginated company list
func (h *CompanyHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := toFilter(req)
	if isActive := c.Query("is_active"); isActive != "" {
		if v, err := strconv.ParseBool(isActive); err == nil {
			filter.Filters["is_active"] = v
		}
	}

	result, err := h.companyService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(&h.BaseHandler, c, result)
}

// Search returns active companies matching a name or NPWP fragment
func (h *CompanyHandler) Search(c *gin.Context) {
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	companies, err := h.companyService.Search(c.Request.Context(), query, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, companies)
}

// Update updates a company
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := h.bindCompanyID(c)
	if !ok {
		return
	}

	var req partner.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	company, validation, err := h.companyService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if validation != nil && !validation.IsValid() {
		h.ValidationFailed(c, validation)
		return
	}

	h.Success(c, company)
}

// Delete deactivates or removes a company
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := h.bindCompanyID(c)
	if !ok {
		return
	}

	if err := h.companyService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
