package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"invoice_date":   true,
	"company_id":     true,
	"status":         true,
	"subtotal":       true,
	"total_amount":   true,
	"paid_at":        true,
}

// CompanySortFields contains allowed sort fields for companies
var CompanySortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"company_name": true,
	"npwp":         true,
	"idtku":        true,
	"is_active":    true,
}

// TkaWorkerSortFields contains allowed sort fields for TKA workers
var TkaWorkerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"nama":       true,
	"passport":   true,
	"divisi":     true,
	"is_active":  true,
}

// JobDescriptionSortFields contains allowed sort fields for job descriptions
var JobDescriptionSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"job_name":   true,
	"price":      true,
	"sort_order": true,
	"is_active":  true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"full_name":     true,
	"role":          true,
	"last_login_at": true,
}
