package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockIdempotencyStore is a mock implementation of shared.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

func bulkFixture(t *testing.T, storeID uuid.UUID, count int) []catalog.Product {
	t.Helper()
	products := make([]catalog.Product, 0, count)
	for i := 0; i < count; i++ {
		products = append(products, *newStoredProduct(t, storeID))
	}
	return products
}

func productIDs(products []catalog.Product) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(products))
	for i := range products {
		ids = append(ids, products[i].ID)
	}
	return ids
}

func TestBulkCatalogMutatorApply(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	actorID := uuid.New()

	t.Run("applies a fixed price to every product", func(t *testing.T) {
		products := bulkFixture(t, storeID, 3)
		repo := new(MockProductRepository)
		repo.On("FindByIDs", ctx, mock.Anything).Return(products, nil)
		repo.On("SaveBatch", ctx, mock.AnythingOfType("[]*catalog.Product")).Return(nil)

		mutator := NewBulkCatalogMutator(repo)
		result, err := mutator.Apply(ctx, storeID, actorID, BulkMutationRequest{
			ProductIDs: productIDs(products),
			Price:      &PriceUpdateDirective{Kind: "fixed", Value: decimal.NewFromInt(250)},
		})

		require.NoError(t, err)
		assert.Equal(t, 3, result.SuccessCount)
		assert.Empty(t, result.Failures)
		for i := range products {
			assert.True(t, products[i].Price.Equal(decimal.NewFromInt(250)))
		}
		repo.AssertExpectations(t)
	})

	t.Run("product from another store fails without blocking the rest", func(t *testing.T) {
		products := bulkFixture(t, storeID, 2)
		foreign := *newStoredProduct(t, uuid.New())
		loaded := append(products, foreign)

		repo := new(MockProductRepository)
		repo.On("FindByIDs", ctx, mock.Anything).Return(loaded, nil)
		repo.On("SaveBatch", ctx, mock.MatchedBy(func(batch []*catalog.Product) bool {
			return len(batch) == 2
		})).Return(nil)

		mutator := NewBulkCatalogMutator(repo)
		result, err := mutator.Apply(ctx, storeID, actorID, BulkMutationRequest{
			ProductIDs: productIDs(loaded),
			Stock:      &StockUpdateDirective{Kind: "increase", Value: 10},
		})

		require.NoError(t, err)
		assert.Equal(t, 2, result.SuccessCount)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, foreign.ID, result.Failures[0].ProductID)
		assert.Equal(t, "not authorized to modify this product", result.Failures[0].Reason)
		repo.AssertExpectations(t)
	})

	t.Run("archived products are skipped with a reason", func(t *testing.T) {
		products := bulkFixture(t, storeID, 2)
		require.Empty(t, products[1].ChangeStatus(catalog.StatusArchived, actorID, false))

		repo := new(MockProductRepository)
		repo.On("FindByIDs", ctx, mock.Anything).Return(products, nil)
		repo.On("SaveBatch", ctx, mock.Anything).Return(nil)

		mutator := NewBulkCatalogMutator(repo)
		result, err := mutator.Apply(ctx, storeID, actorID, BulkMutationRequest{
			ProductIDs: productIDs(products),
			Price:      &PriceUpdateDirective{Kind: "amount_increase", Value: decimal.NewFromInt(5)},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.SuccessCount)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "archived products cannot be modified", result.Failures[0].Reason)
	})

	t.Run("a decrease past zero fails that item only", func(t *testing.T) {
		products := bulkFixture(t, storeID, 2) // both priced at 100
		cheap := &products[0]
		require.NoError(t, cheap.SetPrice(decimal.NewFromInt(30), actorID))

		repo := new(MockProductRepository)
		repo.On("FindByIDs", ctx, mock.Anything).Return(products, nil)
		repo.On("SaveBatch", ctx, mock.Anything).Return(nil)

		mutator := NewBulkCatalogMutator(repo)
		result, err := mutator.Apply(ctx, storeID, actorID, BulkMutationRequest{
			ProductIDs: productIDs(products),
			Price:      &PriceUpdateDirective{Kind: "amount_decrease", Value: decimal.NewFromInt(50)},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.SuccessCount)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, cheap.ID, result.Failures[0].ProductID)
		assert.Equal(t, "resulting price would be zero or negative", result.Failures[0].Reason)
		assert.True(t, cheap.Price.Equal(decimal.NewFromInt(30))) // untouched
	})

	t.Run("stock decrease below zero fails with a reason", func(t *testing.T) {
		products := bulkFixture(t, storeID, 1) // stock 5
		repo := new(MockProductRepository)
		repo.On("FindByIDs", ctx, mock.Anything).Return(products, nil)

		mutator := NewBulkCatalogMutator(repo)
		result, err := mutator.Apply(ctx, storeID, actorID, BulkMutationRequest{
			ProductIDs: productIDs(products),
			Stock:      &StockUpdateDirective{Kind: "decrease", Value: 6},
		})

		require.NoError(t, err)
		assert.Equal(t, 0, result.SuccessCount)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "resulting stock would be negative", result.Failures[0].Reason)
		repo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
	})

	t.Run("price and stock combined must both succeed", func(t *testing.T) {
		products := bulkFixture(t, storeID, 1) // price 100, stock 5
		repo := new(MockProductRepository)
		repo.On("FindByIDs", ctx, mock.Anything).Return(products, nil)

		mutator := NewBulkCatalogMutator(repo)
		result, err := mutator.Apply(ctx, storeID, actorID, BulkMutationRequest{
			ProductIDs: productIDs(products),
			Price:      &PriceUpdateDirective{Kind: "percentage_decrease", Value: decimal.NewFromInt(10)},
			Stock:      &StockUpdateDirective{Kind: "decrease", Value: 10},
		})

		require.NoError(t, err)
		assert.Equal(t, 0, result.SuccessCount)
		require.Len(t, result.Failures, 1)
		assert.True(t, products[0].Price.Equal(decimal.NewFromInt(100))) // price left alone too
	})

	t.Run("malformed directive rejects the whole batch", func(t *testing.T) {
		repo := new(MockProductRepository)

		mutator := NewBulkCatalogMutator(repo)
		result, err := mutator.Apply(ctx, storeID, actorID, BulkMutationRequest{
			ProductIDs: []uuid.UUID{uuid.New()},
			Price:      &PriceUpdateDirective{Kind: "percentage_decrease", Value: decimal.NewFromInt(150)},
		})

		require.Error(t, err)
		assert.Nil(t, result)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		repo.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
	})

	t.Run("missing directives reject the whole batch", func(t *testing.T) {
		repo := new(MockProductRepository)

		mutator := NewBulkCatalogMutator(repo)
		_, err := mutator.Apply(ctx, storeID, actorID, BulkMutationRequest{
			ProductIDs: []uuid.UUID{uuid.New()},
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "At least one of price or stock update must be specified.")
	})

	t.Run("no products loaded is a not-found failure", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{}, nil)

		mutator := NewBulkCatalogMutator(repo)
		_, err := mutator.Apply(ctx, storeID, actorID, BulkMutationRequest{
			ProductIDs: []uuid.UUID{uuid.New()},
			Stock:      &StockUpdateDirective{Kind: "fixed", Value: 0},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("success count plus failures equals loaded products", func(t *testing.T) {
		products := bulkFixture(t, storeID, 5)
		require.Empty(t, products[0].ChangeStatus(catalog.StatusArchived, actorID, false))
		products = append(products, *newStoredProduct(t, uuid.New()))

		repo := new(MockProductRepository)
		repo.On("FindByIDs", ctx, mock.Anything).Return(products, nil)
		repo.On("SaveBatch", ctx, mock.Anything).Return(nil)

		mutator := NewBulkCatalogMutator(repo)
		result, err := mutator.Apply(ctx, storeID, actorID, BulkMutationRequest{
			ProductIDs: productIDs(products),
			Price:      &PriceUpdateDirective{Kind: "percentage_increase", Value: decimal.NewFromInt(10)},
		})

		require.NoError(t, err)
		assert.Equal(t, len(products), result.SuccessCount+len(result.Failures))
	})
}

func TestBulkCatalogMutatorIdempotency(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	actorID := uuid.New()

	t.Run("first request with a key records it after persisting", func(t *testing.T) {
		products := bulkFixture(t, storeID, 1)
		key := "bulk_mutation:" + storeID.String() + ":req-1"
		repo := new(MockProductRepository)
		repo.On("FindByIDs", ctx, mock.Anything).Return(products, nil)
		repo.On("SaveBatch", ctx, mock.Anything).Return(nil)

		store := new(MockIdempotencyStore)
		store.On("IsProcessed", ctx, key).Return(false, nil)
		store.On("MarkProcessed", ctx, key, mock.Anything).Return(true, nil)

		mutator := NewBulkCatalogMutator(repo).
			WithIdempotencyStore(store, shared.DefaultIdempotencyConfig())
		result, err := mutator.Apply(ctx, storeID, actorID, BulkMutationRequest{
			ProductIDs: productIDs(products),
			Stock:      &StockUpdateDirective{Kind: "increase", Value: 1},
			RequestKey: "req-1",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.SuccessCount)
		store.AssertExpectations(t)
	})

	t.Run("replayed request is rejected before loading products", func(t *testing.T) {
		repo := new(MockProductRepository)

		store := new(MockIdempotencyStore)
		store.On("IsProcessed", ctx, mock.Anything).Return(true, nil)

		mutator := NewBulkCatalogMutator(repo).
			WithIdempotencyStore(store, shared.DefaultIdempotencyConfig())
		_, err := mutator.Apply(ctx, storeID, actorID, BulkMutationRequest{
			ProductIDs: []uuid.UUID{uuid.New()},
			Stock:      &StockUpdateDirective{Kind: "increase", Value: 1},
			RequestKey: "req-1",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_REQUEST", domainErr.Code)
		repo.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("requests without a key skip the store", func(t *testing.T) {
		products := bulkFixture(t, storeID, 1)
		repo := new(MockProductRepository)
		repo.On("FindByIDs", ctx, mock.Anything).Return(products, nil)
		repo.On("SaveBatch", ctx, mock.Anything).Return(nil)

		store := new(MockIdempotencyStore)

		mutator := NewBulkCatalogMutator(repo).
			WithIdempotencyStore(store, shared.DefaultIdempotencyConfig())
		_, err := mutator.Apply(ctx, storeID, actorID, BulkMutationRequest{
			ProductIDs: productIDs(products),
			Stock:      &StockUpdateDirective{Kind: "increase", Value: 1},
		})

		require.NoError(t, err)
		store.AssertNotCalled(t, "IsProcessed", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("retry after a persist failure applies the batch", func(t *testing.T) {
		products := bulkFixture(t, storeID, 1)
		key := "bulk_mutation:" + storeID.String() + ":retry-me"
		repo := new(MockProductRepository)
		repo.On("FindByIDs", ctx, mock.Anything).Return(products, nil)
		repo.On("SaveBatch", ctx, mock.Anything).Return(errors.New("connection reset by peer")).Once()
		repo.On("SaveBatch", ctx, mock.Anything).Return(nil).Once()

		store := new(MockIdempotencyStore)
		store.On("IsProcessed", ctx, key).Return(false, nil)
		store.On("MarkProcessed", ctx, key, mock.Anything).Return(true, nil)

		mutator := NewBulkCatalogMutator(repo).
			WithIdempotencyStore(store, shared.DefaultIdempotencyConfig())
		req := BulkMutationRequest{
			ProductIDs: productIDs(products),
			Stock:      &StockUpdateDirective{Kind: "increase", Value: 1},
			RequestKey: "retry-me",
		}

		_, err := mutator.Apply(ctx, storeID, actorID, req)
		require.Error(t, err)
		store.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)

		result, err := mutator.Apply(ctx, storeID, actorID, req)
		require.NoError(t, err)
		assert.Equal(t, 1, result.SuccessCount)
		store.AssertExpectations(t)
	})
}
