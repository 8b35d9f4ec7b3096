package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/parts-be/internal/core/domain"
)

func TestPart_Validate(t *testing.T) {
	tests := []struct {
		name      string
		part      *domain.Part
		wantError bool
		field     string
	}{
		{
			name: "valid_part",
			part: &domain.Part{Name: "Brake Pad", Price: decimal.NewFromInt(30), Quantity: 3},
		},
		{
			name: "zero_price_and_quantity_allowed",
			part: &domain.Part{Name: "Washer"},
		},
		{
			name:      "missing_name",
			part:      &domain.Part{Price: decimal.NewFromInt(1)},
			wantError: true,
			field:     "name",
		},
		{
			name:      "whitespace_name",
			part:      &domain.Part{Name: "   "},
			wantError: true,
			field:     "name",
		},
		{
			name:      "name_too_long",
			part:      &domain.Part{Name: strings.Repeat("x", 256)},
			wantError: true,
			field:     "name",
		},
		{
			name:      "negative_price",
			part:      &domain.Part{Name: "Bolt", Price: decimal.NewFromInt(-1)},
			wantError: true,
			field:     "price",
		},
		{
			name:      "negative_quantity",
			part:      &domain.Part{Name: "Bolt", Quantity: -2},
			wantError: true,
			field:     "quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.part.Validate()
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestPart_ValidateTrimsName(t *testing.T) {
	p := &domain.Part{Name: "  Gasket  "}
	require.NoError(t, p.Validate())
	assert.Equal(t, "Gasket", p.Name)
}

func TestNormalizePrice(t *testing.T) {
	assert.True(t, domain.NormalizePrice(decimal.RequireFromString("20.005")).Equal(decimal.RequireFromString("20.01")))
	assert.True(t, domain.NormalizePrice(decimal.RequireFromString("20")).Equal(decimal.RequireFromString("20.00")))
}

func TestPartPatch_Apply(t *testing.T) {
	p := &domain.Part{Name: "Filter", Description: "old", Price: decimal.NewFromInt(5), Quantity: 1}

	desc := "new"
	qty := 7
	patch := domain.PartPatch{Description: &desc, Quantity: &qty}
	require.False(t, patch.IsEmpty())

	patch.Apply(p)

	assert.Equal(t, "Filter", p.Name)
	assert.Equal(t, "new", p.Description)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 7, p.Quantity)
	assert.True(t, domain.PartPatch{}.IsEmpty())
}

func TestPart_Value(t *testing.T) {
	p := &domain.Part{Price: decimal.RequireFromString("2.50"), Quantity: 4}
	assert.True(t, p.Value().Equal(decimal.NewFromInt(10)))
}

func TestImportResult_Written(t *testing.T) {
	assert.False(t, domain.ImportResult{Skipped: 3, Total: 3}.Written())
	assert.True(t, domain.ImportResult{Updated: 1, Total: 1}.Written())
}
