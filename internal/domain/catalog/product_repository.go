package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDForStore finds a product by ID within a store
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs. Unknown IDs are
	// silently omitted from the result; ownership is the caller's concern.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAllForStore finds all products for a store matching the filter
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindByStatus finds products by status for a store
	FindByStatus(ctx context.Context, storeID uuid.UUID, status ProductStatus, filter shared.Filter) ([]Product, error)

	// CountForStore counts products for a store matching the filter
	CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByStatus counts products by status for a store
	CountByStatus(ctx context.Context, storeID uuid.UUID, status ProductStatus) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveBatch persists multiple products in a single batch write
	SaveBatch(ctx context.Context, products []*Product) error

	// DeleteForStore deletes a product within a store
	DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error
}
