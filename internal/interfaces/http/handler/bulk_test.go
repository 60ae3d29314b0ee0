package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	catalogapp "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBulkMutationHandler_Apply(t *testing.T) {
	t.Run("partial failure still returns 200", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		mine := newTestProduct(t, testStoreID)
		foreign := newTestProduct(t, uuid.New())

		productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*mine, *foreign}, nil)
		productRepo.On("SaveBatch", mock.Anything, mock.Anything).Return(nil)

		router := setupTestRouter(false)
		handler := NewBulkMutationHandler(catalogapp.NewBulkCatalogMutator(productRepo))
		router.POST("/bulk", handler.Apply)

		w := performJSON(router, http.MethodPost, "/bulk", catalogapp.BulkMutationRequest{
			ProductIDs: []uuid.UUID{mine.ID, foreign.ID},
			Price: &catalogapp.PriceUpdateDirective{
				Kind:  "fixed",
				Value: decimal.NewFromInt(50),
			},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Success bool                          `json:"success"`
			Data    catalogapp.BulkMutationResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Data.SuccessCount)
		require.Len(t, resp.Data.Failures, 1)
		assert.Equal(t, foreign.ID, resp.Data.Failures[0].ProductID)
	})

	t.Run("missing directives return 400", func(t *testing.T) {
		productRepo := new(MockProductRepository)

		router := setupTestRouter(false)
		handler := NewBulkMutationHandler(catalogapp.NewBulkCatalogMutator(productRepo))
		router.POST("/bulk", handler.Apply)

		w := performJSON(router, http.MethodPost, "/bulk", catalogapp.BulkMutationRequest{
			ProductIDs: []uuid.UUID{uuid.New()},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		productRepo.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
	})

	t.Run("empty load returns 404", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{}, nil)

		router := setupTestRouter(false)
		handler := NewBulkMutationHandler(catalogapp.NewBulkCatalogMutator(productRepo))
		router.POST("/bulk", handler.Apply)

		w := performJSON(router, http.MethodPost, "/bulk", catalogapp.BulkMutationRequest{
			ProductIDs: []uuid.UUID{uuid.New()},
			Stock: &catalogapp.StockUpdateDirective{
				Kind:  "fixed",
				Value: 10,
			},
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
