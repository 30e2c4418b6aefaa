package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder("ASC"))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
	assert.Equal(t, "DESC", ValidateSortOrder("ascending; DROP TABLE invoices"))
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "invoice_number", ValidateSortField("invoice_number", InvoiceSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", InvoiceSortFields, "created_at"))

	// Unknown fields fall back to the default instead of reaching the query
	assert.Equal(t, "created_at", ValidateSortField("total_amount; --", InvoiceSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("nonexistent", InvoiceSortFields, "created_at"))
}
