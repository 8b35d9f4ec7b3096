// internal/core/domain/part.go
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceScale is the number of decimal places a price is stored with.
const PriceScale = 2

// Part represents a single inventory part
type Part struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Validate performs domain validation on the part
func (p *Part) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if len(p.Name) > 255 {
		return NewValidationError("name", "name must be at most 255 characters")
	}
	if p.Price.IsNegative() {
		return NewValidationError("price", "price cannot be negative")
	}
	if p.Quantity < 0 {
		return NewValidationError("quantity", "quantity cannot be negative")
	}
	return nil
}

// NormalizePrice rounds the price to the stored scale.
func (p *Part) NormalizePrice() {
	p.Price = NormalizePrice(p.Price)
}

// NormalizePrice rounds a price to PriceScale decimal places.
func NormalizePrice(price decimal.Decimal) decimal.Decimal {
	return price.Round(PriceScale)
}

// Value returns price * quantity.
func (p *Part) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// PartPatch carries the fields of a partial update. Nil fields are left untouched.
type PartPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
}

// Apply copies the non-nil fields of the patch onto the part.
func (pp PartPatch) Apply(p *Part) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Quantity != nil {
		p.Quantity = *pp.Quantity
	}
}

// IsEmpty reports whether the patch changes nothing.
func (pp PartPatch) IsEmpty() bool {
	return pp.Name == nil && pp.Description == nil && pp.Price == nil && pp.Quantity == nil
}

// StockStats summarises the current stock.
type StockStats struct {
	TotalParts     int64           `json:"total_parts"`
	TotalQuantity  int64           `json:"total_quantity"`
	BelowMinimum   int64           `json:"below_minimum"`
	Minimum        int             `json:"minimum"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	GeneratedAt    time.Time       `json:"generated_at"`
}
