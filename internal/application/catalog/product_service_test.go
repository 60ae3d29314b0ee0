package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, storeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByStatus(ctx context.Context, storeID uuid.UUID, status catalog.ProductStatus, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, storeID, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByStatus(ctx context.Context, storeID uuid.UUID, status catalog.ProductStatus) (int64, error) {
	args := m.Called(ctx, storeID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveBatch(ctx context.Context, products []*catalog.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	args := m.Called(ctx, storeID, id)
	return args.Error(0)
}

// newStoredProduct builds a draft product owned by storeID
func newStoredProduct(t *testing.T, storeID uuid.UUID) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(storeID, uuid.New(), "Blue Ceramic Mug", decimal.NewFromInt(100), 5)
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

// newListedProduct builds a product that passes the activation gate
func newListedProduct(t *testing.T, storeID uuid.UUID) *catalog.Product {
	t.Helper()
	product := newStoredProduct(t, storeID)
	actor := uuid.New()
	require.NoError(t, product.Update(product.Title, "A glazed mug.", "kitchenware", actor))
	require.NoError(t, product.SetImages(`["img/mug.jpg"]`, actor))
	return product
}

func TestProductLifecycleServiceCreate(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	actorID := uuid.New()

	t.Run("creates a draft product", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		service := NewProductLifecycleService(repo)
		response, violations, err := service.Create(ctx, storeID, actorID, CreateProductRequest{
			Title: "Blue Ceramic Mug",
			Price: decimal.NewFromInt(100),
			Stock: 5,
		})

		require.NoError(t, err)
		require.Empty(t, violations)
		require.NotNil(t, response)
		assert.Equal(t, string(catalog.StatusDraft), response.Status)
		assert.Equal(t, storeID, response.StoreID)
		repo.AssertExpectations(t)
	})

	t.Run("collects every field violation without saving", func(t *testing.T) {
		repo := new(MockProductRepository)

		service := NewProductLifecycleService(repo)
		response, violations, err := service.Create(ctx, storeID, actorID, CreateProductRequest{
			Title: "",
			Price: decimal.Zero,
			Stock: -1,
		})

		require.NoError(t, err)
		assert.Nil(t, response)
		assert.Len(t, violations, 3)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductLifecycleServiceUpdate(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	actorID := uuid.New()

	t.Run("updates fields and persists", func(t *testing.T) {
		product := newStoredProduct(t, storeID)
		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Save", ctx, product).Return(nil)

		service := NewProductLifecycleService(repo)
		newTitle := "Red Ceramic Mug"
		response, violations, err := service.Update(ctx, storeID, actorID, product.ID, UpdateProductRequest{
			Title: &newTitle,
		}, false)

		require.NoError(t, err)
		require.Empty(t, violations)
		assert.Equal(t, "Red Ceramic Mug", response.Title)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a store mismatch as unauthorized", func(t *testing.T) {
		product := newStoredProduct(t, uuid.New()) // different owner
		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		service := NewProductLifecycleService(repo)
		newTitle := "Red Ceramic Mug"
		_, _, err := service.Update(ctx, storeID, actorID, product.ID, UpdateProductRequest{Title: &newTitle}, false)

		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("admin override crosses store boundaries", func(t *testing.T) {
		product := newStoredProduct(t, uuid.New())
		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Save", ctx, product).Return(nil)

		service := NewProductLifecycleService(repo)
		newTitle := "Moderated Title"
		_, violations, err := service.Update(ctx, storeID, actorID, product.ID, UpdateProductRequest{Title: &newTitle}, true)

		require.NoError(t, err)
		assert.Empty(t, violations)
		repo.AssertExpectations(t)
	})

	t.Run("rejects mutation of an archived product", func(t *testing.T) {
		product := newStoredProduct(t, storeID)
		require.Empty(t, product.ChangeStatus(catalog.StatusArchived, actorID, false))

		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		service := NewProductLifecycleService(repo)
		newTitle := "Too Late"
		_, _, err := service.Update(ctx, storeID, actorID, product.ID, UpdateProductRequest{Title: &newTitle}, false)

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("re-checks the activation gate for active products", func(t *testing.T) {
		product := newListedProduct(t, storeID)
		require.Empty(t, product.ChangeStatus(catalog.StatusActive, actorID, false))

		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		service := NewProductLifecycleService(repo)
		empty := ""
		_, violations, err := service.Update(ctx, storeID, actorID, product.ID, UpdateProductRequest{
			Description: &empty,
		}, false)

		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "Description is required to set product to Active.", violations[0])
		assert.Equal(t, "A glazed mug.", product.Description) // untouched
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductLifecycleServiceChangeStatus(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	actorID := uuid.New()

	t.Run("activates a complete product", func(t *testing.T) {
		product := newListedProduct(t, storeID)
		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Save", ctx, product).Return(nil)

		service := NewProductLifecycleService(repo)
		response, violations, err := service.ChangeStatus(ctx, storeID, actorID, product.ID, catalog.StatusActive, false)

		require.NoError(t, err)
		require.Empty(t, violations)
		assert.Equal(t, string(catalog.StatusActive), response.Status)
		repo.AssertExpectations(t)
	})

	t.Run("returns gate violations and leaves the product in draft", func(t *testing.T) {
		product := newStoredProduct(t, storeID) // incomplete
		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		service := NewProductLifecycleService(repo)
		response, violations, err := service.ChangeStatus(ctx, storeID, actorID, product.ID, catalog.StatusActive, false)

		require.NoError(t, err)
		assert.Nil(t, response)
		assert.Contains(t, violations, "Description is required to set product to Active.")
		assert.Equal(t, catalog.StatusDraft, product.Status)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("same-status request is accepted without persisting", func(t *testing.T) {
		product := newStoredProduct(t, storeID)
		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		service := NewProductLifecycleService(repo)
		response, violations, err := service.ChangeStatus(ctx, storeID, actorID, product.ID, catalog.StatusDraft, false)

		require.NoError(t, err)
		assert.Empty(t, violations)
		require.NotNil(t, response)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("not found propagates as a typed failure", func(t *testing.T) {
		missing := uuid.New()
		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

		service := NewProductLifecycleService(repo)
		_, _, err := service.ChangeStatus(ctx, storeID, actorID, missing, catalog.StatusArchived, false)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductLifecycleServiceArchive(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	actorID := uuid.New()

	product := newStoredProduct(t, storeID)
	repo := new(MockProductRepository)
	repo.On("FindByID", ctx, product.ID).Return(product, nil)
	repo.On("Save", ctx, product).Return(nil)

	service := NewProductLifecycleService(repo)
	response, violations, err := service.Archive(ctx, storeID, actorID, product.ID, false)

	require.NoError(t, err)
	require.Empty(t, violations)
	assert.Equal(t, string(catalog.StatusArchived), response.Status)
	require.NotNil(t, response.ArchivedAt)
	require.NotNil(t, response.ArchivedBy)
	assert.Equal(t, actorID, *response.ArchivedBy)
}

func TestProductLifecycleServiceList(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	t.Run("without filters loads the full catalog page", func(t *testing.T) {
		products := []catalog.Product{*newStoredProduct(t, storeID), *newListedProduct(t, storeID)}

		repo := new(MockProductRepository)
		repo.On("FindAllForStore", ctx, storeID, mock.AnythingOfType("shared.Filter")).Return(products, nil)
		repo.On("CountForStore", ctx, storeID, mock.AnythingOfType("shared.Filter")).Return(int64(2), nil)

		service := NewProductLifecycleService(repo)
		responses, total, err := service.List(ctx, storeID, ProductListFilter{})

		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, responses, 2)

		// Defaults are applied to the repository filter.
		filter := repo.Calls[0].Arguments.Get(2).(shared.Filter)
		assert.Equal(t, 1, filter.Page)
		assert.Equal(t, 20, filter.PageSize)
		repo.AssertNotCalled(t, "FindByStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("status filter loads through the status lookup", func(t *testing.T) {
		products := []catalog.Product{*newStoredProduct(t, storeID)}

		repo := new(MockProductRepository)
		repo.On("FindByStatus", ctx, storeID, catalog.StatusDraft, mock.AnythingOfType("shared.Filter")).Return(products, nil)
		repo.On("CountForStore", ctx, storeID, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

		service := NewProductLifecycleService(repo)
		responses, total, err := service.List(ctx, storeID, ProductListFilter{Status: "draft"})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, responses, 1)

		// The count query carries the same status predicate.
		countFilter := repo.Calls[1].Arguments.Get(2).(shared.Filter)
		assert.Equal(t, "draft", countFilter.Filters["status"])
		repo.AssertNotCalled(t, "FindAllForStore", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductLifecycleServiceCountByStatus(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	repo := new(MockProductRepository)
	for _, status := range catalog.AllStatuses() {
		count := int64(0)
		if status == catalog.StatusActive {
			count = 3
		}
		if status == catalog.StatusDraft {
			count = 2
		}
		repo.On("CountByStatus", ctx, storeID, status).Return(count, nil)
	}

	service := NewProductLifecycleService(repo)
	counts, err := service.CountByStatus(ctx, storeID)

	require.NoError(t, err)
	assert.Equal(t, int64(3), counts["active"])
	assert.Equal(t, int64(2), counts["draft"])
	assert.Equal(t, int64(0), counts["archived"])
	assert.Equal(t, int64(5), counts["total"])
}

func TestProductLifecycleServiceDelete(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	t.Run("removes a draft product", func(t *testing.T) {
		product := newStoredProduct(t, storeID)

		repo := new(MockProductRepository)
		repo.On("FindByIDForStore", ctx, storeID, product.ID).Return(product, nil)
		repo.On("DeleteForStore", ctx, storeID, product.ID).Return(nil)

		service := NewProductLifecycleService(repo)
		err := service.Delete(ctx, storeID, product.ID)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects deleting an active product", func(t *testing.T) {
		product := newListedProduct(t, storeID)
		require.Empty(t, product.ChangeStatus(catalog.StatusActive, uuid.New(), false))

		repo := new(MockProductRepository)
		repo.On("FindByIDForStore", ctx, storeID, product.ID).Return(product, nil)

		service := NewProductLifecycleService(repo)
		err := service.Delete(ctx, storeID, product.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
		repo.AssertNotCalled(t, "DeleteForStore", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("FindByIDForStore", ctx, storeID, mock.Anything).Return(nil, shared.ErrNotFound)

		service := NewProductLifecycleService(repo)
		err := service.Delete(ctx, storeID, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
