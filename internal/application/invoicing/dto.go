package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicemgr/backend/internal/domain/invoicing"
	"github.com/invoicemgr/backend/internal/domain/shared/valueobject"
)

// formatIDR renders an amount in Indonesian display format
func formatIDR(amount decimal.Decimal) string {
	return valueobject.NewMoneyIDR(amount).FormatIDR()
}

// CreateInvoiceLineInput represents one line in a create or preview request
type CreateInvoiceLineInput struct {
	TkaWorkerID      uuid.UUID        `json:"tka_worker_id" binding:"required"`
	JobDescriptionID uuid.UUID        `json:"job_description_id" binding:"required"`
	CustomJobName    string           `json:"custom_job_name"`
	CustomJobDesc    string           `json:"custom_job_description"`
	CustomPrice      *decimal.Decimal `json:"custom_price"`
	Quantity         int              `json:"quantity" binding:"required,min=1"`
	Baris            int              `json:"baris"`
}

// CreateInvoiceRequest represents a request to create an invoice.
// ImportBatchID is set by the CSV importer, never by API clients.
type CreateInvoiceRequest struct {
	CompanyID     uuid.UUID                `json:"company_id" binding:"required"`
	InvoiceDate   time.Time                `json:"invoice_date"`
	VATPercentage *decimal.Decimal         `json:"vat_percentage"`
	Notes         string                   `json:"notes"`
	BankAccountID *uuid.UUID               `json:"bank_account_id"`
	Lines         []CreateInvoiceLineInput `json:"lines"`
	ImportBatchID *string                  `json:"-"`
}

// UpdateInvoiceRequest represents a request to update invoice header fields
type UpdateInvoiceRequest struct {
	InvoiceDate   *time.Time       `json:"invoice_date"`
	VATPercentage *decimal.Decimal `json:"vat_percentage"`
	Notes         *string          `json:"notes"`
	BankAccountID *uuid.UUID       `json:"bank_account_id"`
}

// AddLineRequest represents a request to add a line to an invoice
type AddLineRequest struct {
	TkaWorkerID      uuid.UUID        `json:"tka_worker_id" binding:"required"`
	JobDescriptionID uuid.UUID        `json:"job_description_id" binding:"required"`
	CustomJobName    string           `json:"custom_job_name"`
	CustomJobDesc    string           `json:"custom_job_description"`
	CustomPrice      *decimal.Decimal `json:"custom_price"`
	Quantity         int              `json:"quantity" binding:"required,min=1"`
	Baris            int              `json:"baris"`
}

// UpdateLineRequest represents a request to update an existing line
type UpdateLineRequest struct {
	Quantity  *int             `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// TransitionRequest represents a status transition request
type TransitionRequest struct {
	Status string `json:"status" binding:"required,oneof=FINALIZED PAID CANCELLED"`
}

// InvoiceListFilter represents filter options for the invoice list
type InvoiceListFilter struct {
	Search    string     `form:"search"`
	CompanyID *uuid.UUID `form:"company_id"`
	Status    string     `form:"status"`
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InvoiceLineResponse represents an invoice line in API responses
type InvoiceLineResponse struct {
	ID               uuid.UUID        `json:"id"`
	Baris            int              `json:"baris"`
	LineOrder        int              `json:"line_order"`
	TkaWorkerID      uuid.UUID        `json:"tka_worker_id"`
	JobDescriptionID uuid.UUID        `json:"job_description_id"`
	CustomJobName    *string          `json:"custom_job_name,omitempty"`
	CustomJobDesc    *string          `json:"custom_job_description,omitempty"`
	CustomPrice      *decimal.Decimal `json:"custom_price,omitempty"`
	Quantity         int              `json:"quantity"`
	UnitPrice        decimal.Decimal  `json:"unit_price"`
	LineTotal        decimal.Decimal  `json:"line_total"`
}

// InvoiceResponse represents a full invoice in API responses
type InvoiceResponse struct {
	ID             uuid.UUID             `json:"id"`
	InvoiceNumber  string                `json:"invoice_number"`
	CompanyID      uuid.UUID             `json:"company_id"`
	InvoiceDate    time.Time             `json:"invoice_date"`
	Status         string                `json:"status"`
	Lines          []InvoiceLineResponse `json:"lines"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	VATPercentage  decimal.Decimal       `json:"vat_percentage"`
	VATAmount      decimal.Decimal       `json:"vat_amount"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	TotalFormatted string                `json:"total_formatted"`
	Notes          string                `json:"notes,omitempty"`
	BankAccountID  *uuid.UUID            `json:"bank_account_id,omitempty"`
	PrintedCount   int                   `json:"printed_count"`
	LastPrintedAt  *time.Time            `json:"last_printed_at,omitempty"`
	CanEdit        bool                  `json:"can_edit"`
	CanDelete      bool                  `json:"can_delete"`
	Version        int                   `json:"version"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// InvoiceListItemResponse is the compact invoice shape used in lists
type InvoiceListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CompanyID     uuid.UUID       `json:"company_id"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	Status        string          `json:"status"`
	LineCount     int             `json:"line_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PrintedCount  int             `json:"printed_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PreviewRequest asks for totals to be computed without persisting
type PreviewRequest struct {
	VATPercentage *decimal.Decimal         `json:"vat_percentage"`
	Lines         []CreateInvoiceLineInput `json:"lines" binding:"required,min=1"`
}

// PreviewResponse carries computed totals for a prospective invoice
type PreviewResponse struct {
	Subtotal          decimal.Decimal `json:"subtotal"`
	VATPercentage     decimal.Decimal `json:"vat_percentage"`
	VATAmount         decimal.Decimal `json:"vat_amount"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	SubtotalFormatted string          `json:"subtotal_formatted"`
	VATFormatted      string          `json:"vat_formatted"`
	TotalFormatted    string          `json:"total_formatted"`
	LineCount         int             `json:"line_count"`
}

// StatusSummaryResponse aggregates invoice counts and amounts by status
type StatusSummaryResponse struct {
	ByStatus    []invoicing.StatusCount `json:"by_status"`
	TotalCount  int64                   `json:"total_count"`
	TotalAmount decimal.Decimal         `json:"total_amount"`
}

// ToInvoiceLineResponse converts a domain line to its response shape
func ToInvoiceLineResponse(line *invoicing.InvoiceLine) InvoiceLineResponse {
	return InvoiceLineResponse{
		ID:               line.ID,
		Baris:            line.Baris,
		LineOrder:        line.LineOrder,
		TkaWorkerID:      line.TkaWorkerID,
		JobDescriptionID: line.JobDescriptionID,
		CustomJobName:    line.CustomJobName,
		CustomJobDesc:    line.CustomJobDesc,
		CustomPrice:      line.CustomPrice,
		Quantity:         line.Quantity,
		UnitPrice:        line.UnitPrice,
		LineTotal:        line.LineTotal,
	}
}

// ToInvoiceResponse converts a domain invoice to its response shape
func ToInvoiceResponse(inv *invoicing.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, 0, len(inv.Lines))
	for idx := range inv.Lines {
		lines = append(lines, ToInvoiceLineResponse(&inv.Lines[idx]))
	}

	return InvoiceResponse{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		CompanyID:      inv.CompanyID,
		InvoiceDate:    inv.InvoiceDate,
		Status:         inv.Status.String(),
		Lines:          lines,
		Subtotal:       inv.Subtotal,
		VATPercentage:  inv.VATPercentage,
		VATAmount:      inv.VATAmount,
		TotalAmount:    inv.TotalAmount,
		TotalFormatted: inv.GetTotalAmountMoney().FormatIDR(),
		Notes:          inv.Notes,
		BankAccountID:  inv.BankAccountID,
		PrintedCount:   inv.PrintedCount,
		LastPrintedAt:  inv.LastPrintedAt,
		CanEdit:        inv.CanEdit(),
		CanDelete:      inv.CanDelete(),
		Version:        inv.Version,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

// ToInvoiceListItemResponse converts a domain invoice to its list shape
func ToInvoiceListItemResponse(inv *invoicing.Invoice) InvoiceListItemResponse {
	return InvoiceListItemResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CompanyID:     inv.CompanyID,
		InvoiceDate:   inv.InvoiceDate,
		Status:        inv.Status.String(),
		LineCount:     inv.LineCount(),
		TotalAmount:   inv.TotalAmount,
		PrintedCount:  inv.PrintedCount,
		CreatedAt:     inv.CreatedAt,
	}
}

// ToInvoiceListItemResponses converts a slice of invoices to list shapes
func ToInvoiceListItemResponses(invoices []invoicing.Invoice) []InvoiceListItemResponse {
	responses := make([]InvoiceListItemResponse, 0, len(invoices))
	for idx := range invoices {
		responses = append(responses, ToInvoiceListItemResponse(&invoices[idx]))
	}
	return responses
}
