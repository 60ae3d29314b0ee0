package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a seller's listing in the marketplace catalog.
// It is the aggregate root for all product lifecycle operations.
type Product struct {
	shared.StoreAggregateRoot
	Title           string           `gorm:"type:varchar(200);not null"`
	Description     string           `gorm:"type:text"`
	Category        string           `gorm:"type:varchar(100);index"`
	Price           decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Stock           int              `gorm:"not null;default:0"`
	Weight          *decimal.Decimal `gorm:"type:decimal(10,3)"` // kg
	Length          *decimal.Decimal `gorm:"type:decimal(10,2)"` // cm
	Width           *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Height          *decimal.Decimal `gorm:"type:decimal(10,2)"`
	ShippingMethods string           `gorm:"type:varchar(2000)"`
	Images          string           `gorm:"type:text"` // serialized JSON array of image keys
	Status          ProductStatus    `gorm:"type:varchar(20);not null;default:'draft';index"`
	UpdatedBy       *uuid.UUID       `gorm:"type:uuid"`
	ArchivedAt      *time.Time
	ArchivedBy      *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product in Draft status
func NewProduct(storeID, createdBy uuid.UUID, title string, price decimal.Decimal, stock int) (*Product, error) {
	limits := DefaultLimits()
	if violations := ValidateTitle(title, limits); len(violations) > 0 {
		return nil, shared.NewDomainError("INVALID_TITLE", strings.Join(violations, "; "))
	}
	if violations := ValidatePrice(price); len(violations) > 0 {
		return nil, shared.NewDomainError("INVALID_PRICE", strings.Join(violations, "; "))
	}
	if violations := ValidateStock(stock); len(violations) > 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", strings.Join(violations, "; "))
	}

	product := &Product{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Title:              strings.TrimSpace(title),
		Price:              price,
		Stock:              stock,
		Status:             StatusDraft,
		Images:             "[]",
	}
	actor := createdBy
	product.UpdatedBy = &actor

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's catalog fields. Archived products are frozen.
func (p *Product) Update(title, description, category string, actorID uuid.UUID) error {
	if p.IsArchived() {
		return shared.NewDomainError("ARCHIVED", "Cannot modify an archived product")
	}

	limits := DefaultLimits()
	var violations []string
	violations = append(violations, ValidateTitle(title, limits)...)
	violations = append(violations, ValidateDescription(description, limits)...)
	violations = append(violations, ValidateCategoryOptional(category, limits)...)
	if len(violations) > 0 {
		return shared.NewDomainError("VALIDATION_FAILED", strings.Join(violations, "; "))
	}

	p.Title = strings.TrimSpace(title)
	p.Description = description
	p.Category = category
	p.touch(actorID)

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrice sets the selling price
func (p *Product) SetPrice(price decimal.Decimal, actorID uuid.UUID) error {
	if p.IsArchived() {
		return shared.NewDomainError("ARCHIVED", "Cannot modify an archived product")
	}
	if violations := ValidatePrice(price); len(violations) > 0 {
		return shared.NewDomainError("INVALID_PRICE", strings.Join(violations, "; "))
	}

	oldPrice := p.Price
	p.Price = price
	p.touch(actorID)

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice))

	return nil
}

// SetStock sets the available stock quantity
func (p *Product) SetStock(stock int, actorID uuid.UUID) error {
	if p.IsArchived() {
		return shared.NewDomainError("ARCHIVED", "Cannot modify an archived product")
	}
	if violations := ValidateStock(stock); len(violations) > 0 {
		return shared.NewDomainError("INVALID_STOCK", strings.Join(violations, "; "))
	}

	p.Stock = stock
	p.touch(actorID)

	return nil
}

// SetDimensions sets the optional physical attributes
func (p *Product) SetDimensions(weight, length, width, height *decimal.Decimal, actorID uuid.UUID) error {
	if p.IsArchived() {
		return shared.NewDomainError("ARCHIVED", "Cannot modify an archived product")
	}

	limits := DefaultLimits()
	if violations := ValidateDimensions(weight, length, width, height, limits); len(violations) > 0 {
		return shared.NewDomainError("INVALID_DIMENSIONS", strings.Join(violations, "; "))
	}

	p.Weight = weight
	p.Length = length
	p.Width = width
	p.Height = height
	p.touch(actorID)

	return nil
}

// SetShippingMethods sets the serialized shipping methods string
func (p *Product) SetShippingMethods(methods string, actorID uuid.UUID) error {
	if p.IsArchived() {
		return shared.NewDomainError("ARCHIVED", "Cannot modify an archived product")
	}

	limits := DefaultLimits()
	if violations := ValidateSerialized("Shipping methods", methods, limits); len(violations) > 0 {
		return shared.NewDomainError("INVALID_SHIPPING_METHODS", strings.Join(violations, "; "))
	}

	p.ShippingMethods = methods
	p.touch(actorID)

	return nil
}

// SetImages replaces the serialized image list
func (p *Product) SetImages(images string, actorID uuid.UUID) error {
	if p.IsArchived() {
		return shared.NewDomainError("ARCHIVED", "Cannot modify an archived product")
	}

	limits := DefaultLimits()
	if violations := ValidateSerialized("Images", images, limits); len(violations) > 0 {
		return shared.NewDomainError("INVALID_IMAGES", strings.Join(violations, "; "))
	}
	if images == "" {
		images = "[]"
	}

	p.Images = images
	p.touch(actorID)

	return nil
}

// ApplyMutation applies pre-validated price/stock values computed by a bulk
// directive. Callers must have validated the computed results; this method
// only assigns and stamps. Archived products are frozen.
func (p *Product) ApplyMutation(newPrice *decimal.Decimal, newStock *int, actorID uuid.UUID) error {
	if p.IsArchived() {
		return shared.NewDomainError("ARCHIVED", "Cannot modify an archived product")
	}

	if newPrice != nil {
		oldPrice := p.Price
		p.Price = *newPrice
		p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice))
	}
	if newStock != nil {
		p.Stock = *newStock
	}
	p.touch(actorID)

	return nil
}

// ChangeStatus requests a status transition. On acceptance the status,
// last-updated stamp and (for Archived) the archival stamp are applied.
// On rejection the product is left untouched and the violations returned.
func (p *Product) ChangeStatus(requested ProductStatus, actorID uuid.UUID, adminOverride bool) []string {
	violations := TransitionViolations(p.Status, requested, p, adminOverride)
	if len(violations) > 0 {
		return violations
	}

	// Same-status requests are accepted as a no-op.
	if requested == p.Status {
		return nil
	}

	oldStatus := p.Status
	p.Status = requested
	p.touch(actorID)

	if requested == StatusArchived {
		now := time.Now()
		actor := actorID
		p.ArchivedAt = &now
		p.ArchivedBy = &actor
		p.AddDomainEvent(NewProductArchivedEvent(p))
	}

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, requested))

	return nil
}

// HasImages reports whether the serialized image list is non-empty
func (p *Product) HasImages() bool {
	trimmed := strings.TrimSpace(p.Images)
	return trimmed != "" && trimmed != "[]" && trimmed != "null"
}

// IsActive returns true if the product is publicly visible
func (p *Product) IsActive() bool {
	return p.Status == StatusActive
}

// IsArchived returns true if the product is archived and frozen
func (p *Product) IsArchived() bool {
	return p.Status == StatusArchived
}

// touch stamps the last-updated timestamp and actor
func (p *Product) touch(actorID uuid.UUID) {
	actor := actorID
	p.UpdatedBy = &actor
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
