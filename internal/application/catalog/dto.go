package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Title           string           `json:"title" binding:"required,min=3,max=200"`
	Description     string           `json:"description" binding:"max=2000"`
	Category        string           `json:"category" binding:"max=100"`
	Price           decimal.Decimal  `json:"price" binding:"required"`
	Stock           int              `json:"stock" binding:"min=0"`
	Weight          *decimal.Decimal `json:"weight"`
	Length          *decimal.Decimal `json:"length"`
	Width           *decimal.Decimal `json:"width"`
	Height          *decimal.Decimal `json:"height"`
	ShippingMethods string           `json:"shipping_methods" binding:"max=2000"`
	Images          string           `json:"images" binding:"max=2000"`
}

// UpdateProductRequest represents a request to update a product.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	Title           *string          `json:"title" binding:"omitempty,min=3,max=200"`
	Description     *string          `json:"description" binding:"omitempty,max=2000"`
	Category        *string          `json:"category" binding:"omitempty,max=100"`
	Price           *decimal.Decimal `json:"price"`
	Stock           *int             `json:"stock" binding:"omitempty,min=0"`
	Weight          *decimal.Decimal `json:"weight"`
	Length          *decimal.Decimal `json:"length"`
	Width           *decimal.Decimal `json:"width"`
	Height          *decimal.Decimal `json:"height"`
	ShippingMethods *string          `json:"shipping_methods" binding:"omitempty,max=2000"`
	Images          *string          `json:"images" binding:"omitempty,max=2000"`
}

// ChangeStatusRequest represents a request to move a product to a new status
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft active suspended inactive out_of_stock archived"`
}

// PriceUpdateDirective describes how to recompute prices in a bulk mutation
type PriceUpdateDirective struct {
	Kind  string          `json:"kind" binding:"required,oneof=fixed percentage_increase percentage_decrease amount_increase amount_decrease"`
	Value decimal.Decimal `json:"value" binding:"required"`
}

// StockUpdateDirective describes how to recompute stock in a bulk mutation
type StockUpdateDirective struct {
	Kind  string `json:"kind" binding:"required,oneof=fixed increase decrease"`
	Value int    `json:"value"`
}

// BulkMutationRequest represents a bulk price/stock mutation over a set of
// products. At least one directive must be present.
type BulkMutationRequest struct {
	ProductIDs []uuid.UUID           `json:"product_ids" binding:"required,min=1"`
	Price      *PriceUpdateDirective `json:"price"`
	Stock      *StockUpdateDirective `json:"stock"`
	// RequestKey optionally makes the batch idempotent across retries.
	RequestKey string `json:"request_key" binding:"max=100"`
}

// BulkItemFailure describes one product that could not be mutated
type BulkItemFailure struct {
	ProductID uuid.UUID `json:"product_id"`
	Title     string    `json:"title"`
	Reason    string    `json:"reason"`
}

// BulkMutationResult is the aggregate outcome of a bulk mutation call.
// A mix of successes and failures is a normal, successful response.
type BulkMutationResult struct {
	SuccessCount int               `json:"success_count"`
	Failures     []BulkItemFailure `json:"failures"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=draft active suspended inactive out_of_stock archived"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ExportRequest represents the optional predicates for a catalog export
type ExportRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Status   string `form:"status" binding:"omitempty,oneof=draft active suspended inactive out_of_stock archived"`
}

// ExportResult carries a rendered catalog export
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
	RowCount    int
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uuid.UUID        `json:"id"`
	StoreID         uuid.UUID        `json:"store_id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Category        string           `json:"category"`
	Price           decimal.Decimal  `json:"price"`
	Stock           int              `json:"stock"`
	Weight          *decimal.Decimal `json:"weight,omitempty"`
	Length          *decimal.Decimal `json:"length,omitempty"`
	Width           *decimal.Decimal `json:"width,omitempty"`
	Height          *decimal.Decimal `json:"height,omitempty"`
	ShippingMethods string           `json:"shipping_methods,omitempty"`
	Images          string           `json:"images"`
	Status          string           `json:"status"`
	UpdatedBy       *uuid.UUID       `json:"updated_by,omitempty"`
	ArchivedAt      *time.Time       `json:"archived_at,omitempty"`
	ArchivedBy      *uuid.UUID       `json:"archived_by,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Version         int              `json:"version"`
}

// ProductListResponse represents a list item for products
type ProductListResponse struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		StoreID:         p.StoreID,
		Title:           p.Title,
		Description:     p.Description,
		Category:        p.Category,
		Price:           p.Price,
		Stock:           p.Stock,
		Weight:          p.Weight,
		Length:          p.Length,
		Width:           p.Width,
		Height:          p.Height,
		ShippingMethods: p.ShippingMethods,
		Images:          p.Images,
		Status:          string(p.Status),
		UpdatedBy:       p.UpdatedBy,
		ArchivedAt:      p.ArchivedAt,
		ArchivedBy:      p.ArchivedBy,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Version:         p.Version,
	}
}

// ToProductListResponse converts a domain Product to ProductListResponse
func ToProductListResponse(p *catalog.Product) ProductListResponse {
	return ProductListResponse{
		ID:        p.ID,
		Title:     p.Title,
		Category:  p.Category,
		Price:     p.Price,
		Stock:     p.Stock,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

// ToProductListResponses converts a slice of domain Products to ProductListResponses
func ToProductListResponses(products []catalog.Product) []ProductListResponse {
	responses := make([]ProductListResponse, len(products))
	for i := range products {
		responses[i] = ToProductListResponse(&products[i])
	}
	return responses
}
