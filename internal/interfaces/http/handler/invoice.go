package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/invoicemgr/backend/internal/application/invoicing"
	domaininvoicing "github.com/invoicemgr/backend/internal/domain/invoicing"
	"github.com/invoicemgr/backend/internal/interfaces/http/dto"
)

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *invoicing.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *invoicing.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// bindInvoiceID binds the :id path parameter
func (h *InvoiceHandler) bindInvoiceID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return uuid.Nil, false
	}
	return id, true
}

// Create creates a new invoice, allocating its number atomically
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req invoicing.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	createdBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), req, createdBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// Get returns a single invoice with its lines
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := h.bindInvoiceID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// GetByNumber returns an invoice looked up by its number
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Invoice number is required")
		return
	}

	invoice, err := h.invoiceService.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List returns a filtered, paginated invoice list
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter invoicing.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(&h.BaseHandler, c, result)
}

// Update updates header fields of a draft or finalized invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := h.bindInvoiceID(c)
	if !ok {
		return
	}

	var req invoicing.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// AddLine appends a line to an editable invoice
func (h *InvoiceHandler) AddLine(c *gin.Context) {
	id, ok := h.bindInvoiceID(c)
	if !ok {
		return
	}

	var req invoicing.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	invoice, err := h.invoiceService.AddLine(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// UpdateLine changes the quantity or unit price of a line
func (h *InvoiceHandler) UpdateLine(c *gin.Context) {
	id, ok := h.bindInvoiceID(c)
	if !ok {
		return
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID")
		return
	}

	var req invoicing.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	invoice, err := h.invoiceService.UpdateLine(c.Request.Context(), id, lineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// RemoveLine removes a line from an editable invoice
func (h *InvoiceHandler) RemoveLine(c *gin.Context) {
	id, ok := h.bindInvoiceID(c)
	if !ok {
		return
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID")
		return
	}

	invoice, err := h.invoiceService.RemoveLine(c.Request.Context(), id, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Transition moves an invoice to a new lifecycle status
func (h *InvoiceHandler) Transition(c *gin.Context) {
	id, ok := h.bindInvoiceID(c)
	if !ok {
		return
	}

	var req invoicing.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	invoice, err := h.invoiceService.Transition(c.Request.Context(), id, domaininvoicing.InvoiceStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// RecordPrint increments the print counter
func (h *InvoiceHandler) RecordPrint(c *gin.Context) {
	id, ok := h.bindInvoiceID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.RecordPrint(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Delete removes a draft invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := h.bindInvoiceID(c)
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Clone creates a new draft copying the lines of an existing invoice
func (h *InvoiceHandler) Clone(c *gin.Context) {
	id, ok := h.bindInvoiceID(c)
	if !ok {
		return
	}

	createdBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoice, err := h.invoiceService.Clone(c.Request.Context(), id, createdBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// Preview computes totals for prospective lines without persisting
func (h *InvoiceHandler) Preview(c *gin.Context) {
	var req invoicing.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	preview, err := h.invoiceService.Preview(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, preview)
}

// StatusSummary aggregates invoice counts and totals by status
func (h *InvoiceHandler) StatusSummary(c *gin.Context) {
	summary, err := h.invoiceService.StatusSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
