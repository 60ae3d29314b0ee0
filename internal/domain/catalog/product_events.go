package catalog

import (
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for product lifecycle events
const (
	EventTypeProductCreated       = "catalog.product.created"
	EventTypeProductUpdated       = "catalog.product.updated"
	EventTypeProductPriceChanged  = "catalog.product.price_changed"
	EventTypeProductStatusChanged = "catalog.product.status_changed"
	EventTypeProductArchived      = "catalog.product.archived"
)

const aggregateTypeProduct = "Product"

// ProductCreatedEvent is published when a product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Title  string        `json:"title"`
	Status ProductStatus `json:"status"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, aggregateTypeProduct, product.ID, product.StoreID),
		Title:           product.Title,
		Status:          product.Status,
	}
}

// ProductUpdatedEvent is published when a product's catalog fields change
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	Title string `json:"title"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, aggregateTypeProduct, product.ID, product.StoreID),
		Title:           product.Title,
	}
}

// ProductPriceChangedEvent is published when a product's price changes
type ProductPriceChangedEvent struct {
	shared.BaseDomainEvent
	OldPrice decimal.Decimal `json:"old_price"`
	NewPrice decimal.Decimal `json:"new_price"`
}

// NewProductPriceChangedEvent creates a new ProductPriceChangedEvent
func NewProductPriceChangedEvent(product *Product, oldPrice decimal.Decimal) *ProductPriceChangedEvent {
	return &ProductPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductPriceChanged, aggregateTypeProduct, product.ID, product.StoreID),
		OldPrice:        oldPrice,
		NewPrice:        product.Price,
	}
}

// ProductStatusChangedEvent is published when a product moves between statuses
type ProductStatusChangedEvent struct {
	shared.BaseDomainEvent
	OldStatus ProductStatus `json:"old_status"`
	NewStatus ProductStatus `json:"new_status"`
}

// NewProductStatusChangedEvent creates a new ProductStatusChangedEvent
func NewProductStatusChangedEvent(product *Product, oldStatus, newStatus ProductStatus) *ProductStatusChangedEvent {
	return &ProductStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStatusChanged, aggregateTypeProduct, product.ID, product.StoreID),
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// ProductArchivedEvent is published when a product enters the terminal
// Archived status
type ProductArchivedEvent struct {
	shared.BaseDomainEvent
	Title string `json:"title"`
}

// NewProductArchivedEvent creates a new ProductArchivedEvent
func NewProductArchivedEvent(product *Product) *ProductArchivedEvent {
	return &ProductArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductArchived, aggregateTypeProduct, product.ID, product.StoreID),
		Title:           product.Title,
	}
}
