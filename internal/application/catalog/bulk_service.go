package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BulkCatalogMutator applies a price/stock mutation request to many products
// at once. Partial success is a first-class outcome: each loaded product is
// evaluated independently and all successes are persisted in a single batch
// write, while failures are reported per item.
type BulkCatalogMutator struct {
	productRepo catalog.ProductRepository
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
}

// NewBulkCatalogMutator creates a new BulkCatalogMutator
func NewBulkCatalogMutator(productRepo catalog.ProductRepository) *BulkCatalogMutator {
	return &BulkCatalogMutator{
		productRepo: productRepo,
		idemConfig:  shared.DefaultIdempotencyConfig(),
	}
}

// WithIdempotencyStore enables duplicate-request suppression for batches
// that carry a request key
func (s *BulkCatalogMutator) WithIdempotencyStore(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) *BulkCatalogMutator {
	s.idempotency = store
	s.idemConfig = cfg
	return s
}

// Apply runs the bulk mutation. Request-shape problems reject the whole
// batch before any product is touched; per-item problems are collected in
// the result. The returned error is reserved for infrastructure failures
// and whole-batch rejections.
func (s *BulkCatalogMutator) Apply(ctx context.Context, storeID, actorID uuid.UUID, req BulkMutationRequest) (*BulkMutationResult, error) {
	if err := s.validateRequest(storeID, actorID, req); err != nil {
		return nil, err
	}

	useIdempotency := req.RequestKey != "" && s.idempotency != nil && s.idemConfig.Enabled
	if useIdempotency {
		processed, err := s.idempotency.IsProcessed(ctx, bulkRequestKey(storeID, req.RequestKey))
		if err != nil {
			return nil, err
		}
		if processed {
			return nil, shared.NewDomainError("DUPLICATE_REQUEST", "This bulk mutation was already processed")
		}
	}

	priceUpdate, stockUpdate := toDirectives(req)

	products, err := s.productRepo.FindByIDs(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "No products found")
	}

	result := &BulkMutationResult{Failures: make([]BulkItemFailure, 0)}
	toPersist := make([]*catalog.Product, 0, len(products))

	for i := range products {
		product := &products[i]

		if reason, ok := s.evaluate(product, storeID, priceUpdate, stockUpdate, actorID); !ok {
			result.Failures = append(result.Failures, BulkItemFailure{
				ProductID: product.ID,
				Title:     product.Title,
				Reason:    reason,
			})
			continue
		}

		result.SuccessCount++
		toPersist = append(toPersist, product)
	}

	if len(toPersist) > 0 {
		if err := s.productRepo.SaveBatch(ctx, toPersist); err != nil {
			return nil, err
		}
	}

	// The key is recorded only once the batch is persisted, so a retry
	// after a load or persist failure is not rejected as a duplicate. A
	// failed recording is not surfaced; the mutation already stands, and a
	// retried batch may then be re-applied.
	if useIdempotency {
		_, _ = s.idempotency.MarkProcessed(ctx, bulkRequestKey(storeID, req.RequestKey), s.idemConfig.TTL)
	}

	return result, nil
}

// evaluate runs the per-item pipeline: ownership, archived check, directive
// computation and result validation. On success the product is mutated in
// place and stamped; on failure it is left untouched.
func (s *BulkCatalogMutator) evaluate(product *catalog.Product, storeID uuid.UUID, priceUpdate *catalog.PriceUpdate, stockUpdate *catalog.StockUpdate, actorID uuid.UUID) (string, bool) {
	if !product.BelongsTo(storeID) {
		return "not authorized to modify this product", false
	}
	if product.IsArchived() {
		return "archived products cannot be modified", false
	}

	var newPrice *decimal.Decimal
	if priceUpdate != nil {
		computed := priceUpdate.Apply(product.Price)
		if violations := catalog.ValidateComputedPrice(computed); len(violations) > 0 {
			return violations[0], false
		}
		newPrice = &computed
	}

	var newStock *int
	if stockUpdate != nil {
		computed := stockUpdate.Apply(product.Stock)
		if violations := catalog.ValidateComputedStock(computed); len(violations) > 0 {
			return violations[0], false
		}
		newStock = &computed
	}

	if err := product.ApplyMutation(newPrice, newStock, actorID); err != nil {
		return err.Error(), false
	}

	return "", true
}

// validateRequest checks the request shape before any product is loaded
func (s *BulkCatalogMutator) validateRequest(storeID, actorID uuid.UUID, req BulkMutationRequest) error {
	var violations []string

	if storeID == uuid.Nil {
		violations = append(violations, "Store id is required.")
	}
	if actorID == uuid.Nil {
		violations = append(violations, "Actor id is required.")
	}
	if len(req.ProductIDs) == 0 {
		violations = append(violations, "At least one product id is required.")
	}
	if req.Price == nil && req.Stock == nil {
		violations = append(violations, "At least one of price or stock update must be specified.")
	}

	priceUpdate, stockUpdate := toDirectives(req)
	if priceUpdate != nil {
		violations = append(violations, priceUpdate.Validate()...)
	}
	if stockUpdate != nil {
		violations = append(violations, stockUpdate.Validate()...)
	}

	if len(violations) > 0 {
		return shared.NewDomainError("VALIDATION_FAILED", strings.Join(violations, "; "))
	}
	return nil
}

// toDirectives converts the request DTO directives to domain directives
func toDirectives(req BulkMutationRequest) (*catalog.PriceUpdate, *catalog.StockUpdate) {
	var priceUpdate *catalog.PriceUpdate
	if req.Price != nil {
		priceUpdate = &catalog.PriceUpdate{
			Kind:  catalog.PriceUpdateKind(req.Price.Kind),
			Value: req.Price.Value,
		}
	}

	var stockUpdate *catalog.StockUpdate
	if req.Stock != nil {
		stockUpdate = &catalog.StockUpdate{
			Kind:  catalog.StockUpdateKind(req.Stock.Kind),
			Value: req.Stock.Value,
		}
	}

	return priceUpdate, stockUpdate
}

// bulkRequestKey namespaces an idempotency key by store
func bulkRequestKey(storeID uuid.UUID, key string) string {
	return "bulk_mutation:" + storeID.String() + ":" + key
}
