package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/invoicemgr/backend/internal/application/partner"
	"github.com/invoicemgr/backend/internal/interfaces/http/dto"
)

// BankAccountHandler handles bank account endpoints
type BankAccountHandler struct {
	BaseHandler
	bankAccountService *partner.BankAccountService
}

// NewBankAccountHandler creates a new bank account handler
func NewBankAccountHandler(bankAccountService *partner.BankAccountService) *BankAccountHandler {
	return &BankAccountHandler{bankAccountService: bankAccountService}
}

func (h *BankAccountHandler) bindAccountID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid bank account ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid bank account ID")
		return uuid.Nil, false
	}
	return id, true
}

// Create creates a new bank account
func (h *BankAccountHandler) Create(c *gin.Context) {
	var req partner.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	account, err := h.bankAccountService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// List returns all active bank accounts
func (h *BankAccountHandler) List(c *gin.Context) {
	accounts, err := h.bankAccountService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, accounts)
}

// SetDefault marks one account as the default, clearing the previous one
func (h *BankAccountHandler) SetDefault(c *gin.Context) {
	id, ok := h.bindAccountID(c)
	if !ok {
		return
	}

	if err := h.bankAccountService.SetDefault(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Default bank account updated"})
}

// Delete removes a bank account
func (h *BankAccountHandler) Delete(c *gin.Context) {
	id, ok := h.bindAccountID(c)
	if !ok {
		return
	}

	if err := h.bankAccountService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
