package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Limits holds the configured bounds for product field validation
type Limits struct {
	TitleMinLength       int
	TitleMaxLength       int
	DescriptionMaxLength int
	CategoryMaxLength    int
	MaxWeight            decimal.Decimal // kg
	MaxDimension         decimal.Decimal // cm, applies to length/width/height
	SerializedMaxLength  int             // shipping methods / images strings
}

// DefaultLimits returns the default validation bounds
func DefaultLimits() Limits {
	return Limits{
		TitleMinLength:       3,
		TitleMaxLength:       200,
		DescriptionMaxLength: 2000,
		CategoryMaxLength:    100,
		MaxWeight:            decimal.NewFromInt(1000),
		MaxDimension:         decimal.NewFromInt(1000),
		SerializedMaxLength:  2000,
	}
}

// ValidateTitle checks the required title against the configured bounds
func ValidateTitle(title string, limits Limits) []string {
	var violations []string
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		violations = append(violations, "Title is required.")
		return violations
	}
	if len(trimmed) < limits.TitleMinLength {
		violations = append(violations, fmt.Sprintf("Title must be at least %d characters.", limits.TitleMinLength))
	}
	if len(trimmed) > limits.TitleMaxLength {
		violations = append(violations, fmt.Sprintf("Title cannot exceed %d characters.", limits.TitleMaxLength))
	}
	return violations
}

// ValidatePrice checks that the price is strictly positive
func ValidatePrice(price decimal.Decimal) []string {
	if !price.IsPositive() {
		return []string{"Price must be greater than zero."}
	}
	return nil
}

// ValidateStock checks that the stock quantity is non-negative
func ValidateStock(stock int) []string {
	if stock < 0 {
		return []string{"Stock cannot be negative."}
	}
	return nil
}

// ValidateCategory checks the required category against the configured bounds
func ValidateCategory(category string, limits Limits) []string {
	var violations []string
	if strings.TrimSpace(category) == "" {
		violations = append(violations, "Category is required.")
		return violations
	}
	if len(category) > limits.CategoryMaxLength {
		violations = append(violations, fmt.Sprintf("Category cannot exceed %d characters.", limits.CategoryMaxLength))
	}
	return violations
}

// ValidateCategoryOptional checks the category bounds when the field is set.
// Absence is allowed; the activation gate enforces presence separately.
func ValidateCategoryOptional(category string, limits Limits) []string {
	if category == "" {
		return nil
	}
	if len(category) > limits.CategoryMaxLength {
		return []string{fmt.Sprintf("Category cannot exceed %d characters.", limits.CategoryMaxLength)}
	}
	return nil
}

// ValidateDescription checks the optional description against the configured bounds
func ValidateDescription(description string, limits Limits) []string {
	if description == "" {
		return nil
	}
	if len(description) > limits.DescriptionMaxLength {
		return []string{fmt.Sprintf("Description cannot exceed %d characters.", limits.DescriptionMaxLength)}
	}
	return nil
}

// ValidateDimensions checks the optional physical attributes. Each attribute
// must be non-negative and within the configured maximum when present.
func ValidateDimensions(weight, length, width, height *decimal.Decimal, limits Limits) []string {
	var violations []string
	violations = append(violations, validateMeasure("Weight", weight, limits.MaxWeight)...)
	violations = append(violations, validateMeasure("Length", length, limits.MaxDimension)...)
	violations = append(violations, validateMeasure("Width", width, limits.MaxDimension)...)
	violations = append(violations, validateMeasure("Height", height, limits.MaxDimension)...)
	return violations
}

func validateMeasure(name string, value *decimal.Decimal, max decimal.Decimal) []string {
	if value == nil {
		return nil
	}
	var violations []string
	if value.IsNegative() {
		violations = append(violations, fmt.Sprintf("%s cannot be negative.", name))
	}
	if value.GreaterThan(max) {
		violations = append(violations, fmt.Sprintf("%s cannot exceed %s.", name, max.String()))
	}
	return violations
}

// ValidateSerialized checks a serialized list string (shipping methods,
// images) against the configured maximum length when present.
func ValidateSerialized(name, value string, limits Limits) []string {
	if value == "" {
		return nil
	}
	if len(value) > limits.SerializedMaxLength {
		return []string{fmt.Sprintf("%s cannot exceed %d characters.", name, limits.SerializedMaxLength)}
	}
	return nil
}

// ValidateProduct accumulates every applicable field violation for a product.
// Rules are independent and never short-circuit, so callers always see the
// complete list.
func ValidateProduct(product *Product, limits Limits) []string {
	var violations []string
	violations = append(violations, ValidateTitle(product.Title, limits)...)
	violations = append(violations, ValidatePrice(product.Price)...)
	violations = append(violations, ValidateStock(product.Stock)...)
	violations = append(violations, ValidateCategoryOptional(product.Category, limits)...)
	violations = append(violations, ValidateDescription(product.Description, limits)...)
	violations = append(violations, ValidateDimensions(product.Weight, product.Length, product.Width, product.Height, limits)...)
	violations = append(violations, ValidateSerialized("Shipping methods", product.ShippingMethods, limits)...)
	violations = append(violations, ValidateSerialized("Images", product.Images, limits)...)
	return violations
}
