package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTitle(t *testing.T) {
	limits := DefaultLimits()

	assert.Empty(t, ValidateTitle("Blue Ceramic Mug", limits))
	assert.NotEmpty(t, ValidateTitle("", limits))
	assert.NotEmpty(t, ValidateTitle("   ", limits))
	assert.NotEmpty(t, ValidateTitle("ab", limits))
	assert.NotEmpty(t, ValidateTitle(strings.Repeat("x", limits.TitleMaxLength+1), limits))
}

func TestValidatePriceAndStock(t *testing.T) {
	assert.Empty(t, ValidatePrice(decimal.NewFromFloat(0.01)))
	assert.NotEmpty(t, ValidatePrice(decimal.Zero))
	assert.NotEmpty(t, ValidatePrice(decimal.NewFromInt(-1)))

	assert.Empty(t, ValidateStock(0))
	assert.NotEmpty(t, ValidateStock(-1))
}

func TestValidateCategory(t *testing.T) {
	limits := DefaultLimits()

	assert.Empty(t, ValidateCategory("kitchenware", limits))
	assert.NotEmpty(t, ValidateCategory("", limits))
	assert.NotEmpty(t, ValidateCategory(strings.Repeat("x", limits.CategoryMaxLength+1), limits))

	// The optional variant allows absence.
	assert.Empty(t, ValidateCategoryOptional("", limits))
	assert.NotEmpty(t, ValidateCategoryOptional(strings.Repeat("x", limits.CategoryMaxLength+1), limits))
}

func TestValidateDescription(t *testing.T) {
	limits := DefaultLimits()

	assert.Empty(t, ValidateDescription("", limits))
	assert.Empty(t, ValidateDescription("short", limits))
	assert.NotEmpty(t, ValidateDescription(strings.Repeat("x", limits.DescriptionMaxLength+1), limits))
}

func TestValidateDimensions(t *testing.T) {
	limits := DefaultLimits()
	ptr := func(v float64) *decimal.Decimal {
		d := decimal.NewFromFloat(v)
		return &d
	}

	t.Run("absent attributes pass", func(t *testing.T) {
		assert.Empty(t, ValidateDimensions(nil, nil, nil, nil, limits))
	})

	t.Run("valid attributes pass", func(t *testing.T) {
		assert.Empty(t, ValidateDimensions(ptr(1.5), ptr(30), ptr(20), ptr(10), limits))
	})

	t.Run("negative attribute fails", func(t *testing.T) {
		violations := ValidateDimensions(ptr(-1), nil, nil, nil, limits)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0], "Weight")
	})

	t.Run("attribute above maximum fails", func(t *testing.T) {
		violations := ValidateDimensions(nil, ptr(1001), nil, nil, limits)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0], "Length")
	})

	t.Run("violations accumulate across attributes", func(t *testing.T) {
		violations := ValidateDimensions(ptr(-1), ptr(1001), ptr(-2), nil, limits)
		assert.Len(t, violations, 3)
	})
}

func TestValidateProductAccumulates(t *testing.T) {
	product := newTestProduct(t)
	product.Title = ""
	product.Price = decimal.Zero
	product.Stock = -1

	violations := ValidateProduct(product, DefaultLimits())
	assert.Len(t, violations, 3)
}
