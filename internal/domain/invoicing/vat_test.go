package invoicing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundVAT(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"fraction at .49 rounds down", "18000.49", "18000"},
		{"fraction at .50 rounds up", "18000.50", "18001"},
		{"fraction below .49 rounds half-up", "18000.30", "18000"},
		{"fraction above .50 rounds up", "18000.70", "18001"},
		{"fraction at .51 rounds up", "18000.51", "18001"},
		{"fraction at .99 rounds up", "18000.99", "18001"},
		{"fraction slightly under .49 within tolerance", "18000.4895", "18000"},
		{"fraction slightly over .49 within tolerance", "18000.4905", "18000"},
		{"fraction at .48 outside tolerance rounds half-up", "18000.48", "18000"},
		{"whole number unchanged", "18000", "18000"},
		{"fraction at .01", "1250.01", "1250"},
		{"small amount at .49", "0.49", "0"},
		{"small amount at .50", "0.50", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := decimal.NewFromString(tt.raw)
			assert.NoError(t, err)
			expected, err := decimal.NewFromString(tt.expected)
			assert.NoError(t, err)

			result := RoundVAT(raw)
			assert.True(t, expected.Equal(result), "RoundVAT(%s) = %s, want %s", tt.raw, result, tt.expected)
		})
	}
}

func TestCalculateVAT(t *testing.T) {
	t.Run("standard 11 percent on 13 million", func(t *testing.T) {
		base := decimal.NewFromInt(13000000)
		rate := decimal.NewFromInt(11)

		vat := CalculateVAT(base, rate)

		assert.True(t, decimal.NewFromInt(1430000).Equal(vat))
	})

	t.Run("rate producing a .49 fraction rounds down", func(t *testing.T) {
		// 163640.81 * 11% = 18000.4891
		base, _ := decimal.NewFromString("163640.81")
		vat := CalculateVAT(base, decimal.NewFromInt(11))

		assert.True(t, decimal.NewFromInt(18000).Equal(vat))
	})

	t.Run("zero rate yields zero VAT", func(t *testing.T) {
		vat := CalculateVAT(decimal.NewFromInt(5000000), decimal.Zero)
		assert.True(t, vat.IsZero())
	})

	t.Run("zero base yields zero VAT", func(t *testing.T) {
		vat := CalculateVAT(decimal.Zero, decimal.NewFromInt(11))
		assert.True(t, vat.IsZero())
	})
}
