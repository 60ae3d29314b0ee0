package catalog

import (
	"github.com/shopspring/decimal"
)

// PriceUpdateKind enumerates the ways a bulk operation can recompute a price
type PriceUpdateKind string

const (
	PriceUpdateFixed              PriceUpdateKind = "fixed"
	PriceUpdatePercentageIncrease PriceUpdateKind = "percentage_increase"
	PriceUpdatePercentageDecrease PriceUpdateKind = "percentage_decrease"
	PriceUpdateAmountIncrease     PriceUpdateKind = "amount_increase"
	PriceUpdateAmountDecrease     PriceUpdateKind = "amount_decrease"
)

// IsValid checks whether the kind is a known price update kind
func (k PriceUpdateKind) IsValid() bool {
	switch k {
	case PriceUpdateFixed, PriceUpdatePercentageIncrease, PriceUpdatePercentageDecrease,
		PriceUpdateAmountIncrease, PriceUpdateAmountDecrease:
		return true
	}
	return false
}

// StockUpdateKind enumerates the ways a bulk operation can recompute stock
type StockUpdateKind string

const (
	StockUpdateFixed    StockUpdateKind = "fixed"
	StockUpdateIncrease StockUpdateKind = "increase"
	StockUpdateDecrease StockUpdateKind = "decrease"
)

// IsValid checks whether the kind is a known stock update kind
func (k StockUpdateKind) IsValid() bool {
	switch k {
	case StockUpdateFixed, StockUpdateIncrease, StockUpdateDecrease:
		return true
	}
	return false
}

// PriceUpdate is a declarative directive describing how to recompute a price
type PriceUpdate struct {
	Kind  PriceUpdateKind
	Value decimal.Decimal
}

// Validate checks the directive before it is applied to any product
func (u PriceUpdate) Validate() []string {
	if !u.Kind.IsValid() {
		return []string{"Unknown price update kind."}
	}

	var violations []string
	switch u.Kind {
	case PriceUpdateFixed:
		if !u.Value.IsPositive() {
			violations = append(violations, "Fixed price must be greater than zero.")
		}
	case PriceUpdatePercentageIncrease, PriceUpdatePercentageDecrease:
		if !u.Value.IsPositive() {
			violations = append(violations, "Percentage must be greater than zero.")
		}
		if u.Kind == PriceUpdatePercentageDecrease && u.Value.GreaterThan(decimal.NewFromInt(100)) {
			violations = append(violations, "Percentage decrease cannot exceed 100.")
		}
	case PriceUpdateAmountIncrease, PriceUpdateAmountDecrease:
		if !u.Value.IsPositive() {
			violations = append(violations, "Amount must be greater than zero.")
		}
	}
	return violations
}

// Apply computes the new price from the current one
func (u PriceUpdate) Apply(current decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	switch u.Kind {
	case PriceUpdateFixed:
		return u.Value
	case PriceUpdatePercentageIncrease:
		return current.Mul(decimal.NewFromInt(1).Add(u.Value.Div(hundred)))
	case PriceUpdatePercentageDecrease:
		return current.Mul(decimal.NewFromInt(1).Sub(u.Value.Div(hundred)))
	case PriceUpdateAmountIncrease:
		return current.Add(u.Value)
	case PriceUpdateAmountDecrease:
		return current.Sub(u.Value)
	}
	return current
}

// StockUpdate is a declarative directive describing how to recompute stock
type StockUpdate struct {
	Kind  StockUpdateKind
	Value int
}

// Validate checks the directive before it is applied to any product
func (u StockUpdate) Validate() []string {
	if !u.Kind.IsValid() {
		return []string{"Unknown stock update kind."}
	}

	var violations []string
	switch u.Kind {
	case StockUpdateFixed:
		if u.Value < 0 {
			violations = append(violations, "Fixed stock cannot be negative.")
		}
	case StockUpdateIncrease, StockUpdateDecrease:
		if u.Value <= 0 {
			violations = append(violations, "Stock adjustment must be greater than zero.")
		}
	}
	return violations
}

// Apply computes the new stock quantity from the current one
func (u StockUpdate) Apply(current int) int {
	switch u.Kind {
	case StockUpdateFixed:
		return u.Value
	case StockUpdateIncrease:
		return current + u.Value
	case StockUpdateDecrease:
		return current - u.Value
	}
	return current
}

// Per-item failure reasons for computed results. Rendered verbatim to callers.
const (
	ReasonPriceNotPositive = "resulting price would be zero or negative"
	ReasonStockNegative    = "resulting stock would be negative"
)

// ValidateComputedPrice checks a computed price for validity
func ValidateComputedPrice(price decimal.Decimal) []string {
	if !price.IsPositive() {
		return []string{ReasonPriceNotPositive}
	}
	return nil
}

// ValidateComputedStock checks a computed stock quantity for validity
func ValidateComputedStock(stock int) []string {
	if stock < 0 {
		return []string{ReasonStockNegative}
	}
	return nil
}
