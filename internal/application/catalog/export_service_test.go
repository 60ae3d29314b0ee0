package catalog

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func exportFixture(t *testing.T, storeID uuid.UUID) []catalog.Product {
	t.Helper()
	actor := uuid.New()

	mug := *newStoredProduct(t, storeID)
	require.NoError(t, mug.Update("Blue Ceramic Mug", "A glazed blue mug.", "kitchenware", actor))

	vase := *newStoredProduct(t, storeID)
	require.NoError(t, vase.Update("Tall Vase", "Glass, tinted blue.", "decor", actor))

	lamp := *newStoredProduct(t, storeID)
	require.NoError(t, lamp.Update("Desk Lamp", "Brushed steel.", "decor", actor))
	require.NoError(t, lamp.SetImages(`["img/lamp.jpg"]`, actor))
	require.Empty(t, lamp.ChangeStatus(catalog.StatusActive, actor, false))

	return []catalog.Product{mug, vase, lamp}
}

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCatalogExportServiceExport(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	t.Run("no predicates exports the whole catalog", func(t *testing.T) {
		products := exportFixture(t, storeID)
		repo := new(MockProductRepository)
		repo.On("FindAllForStore", ctx, storeID, mock.AnythingOfType("shared.Filter")).Return(products, nil)

		service := NewCatalogExportService(repo)
		result, err := service.Export(ctx, storeID, ExportRequest{})

		require.NoError(t, err)
		assert.Equal(t, 3, result.RowCount)
		assert.Equal(t, "text/csv", result.ContentType)
		assert.True(t, strings.HasPrefix(result.FileName, "catalog-"))
		assert.True(t, strings.HasSuffix(result.FileName, ".csv"))

		records := parseCSV(t, result.Data)
		require.Len(t, records, 4) // header + 3 rows
		assert.Equal(t, exportHeader, records[0])
		assert.Equal(t, "Blue Ceramic Mug", records[1][1])
	})

	t.Run("search matches titles and descriptions", func(t *testing.T) {
		products := exportFixture(t, storeID)
		repo := new(MockProductRepository)
		repo.On("FindAllForStore", ctx, storeID, mock.Anything).Return(products, nil)

		service := NewCatalogExportService(repo)
		result, err := service.Export(ctx, storeID, ExportRequest{Search: "blue"})

		require.NoError(t, err)
		assert.Equal(t, 2, result.RowCount) // mug by title, vase by description

		records := parseCSV(t, result.Data)
		assert.Equal(t, "Blue Ceramic Mug", records[1][1])
		assert.Equal(t, "Tall Vase", records[2][1])
	})

	t.Run("predicates compose conjunctively", func(t *testing.T) {
		products := exportFixture(t, storeID)
		repo := new(MockProductRepository)
		repo.On("FindAllForStore", ctx, storeID, mock.Anything).Return(products, nil)

		service := NewCatalogExportService(repo)
		result, err := service.Export(ctx, storeID, ExportRequest{Search: "blue", Category: "decor"})

		require.NoError(t, err)
		assert.Equal(t, 1, result.RowCount)
		records := parseCSV(t, result.Data)
		assert.Equal(t, "Tall Vase", records[1][1])
	})

	t.Run("status predicate filters exactly", func(t *testing.T) {
		products := exportFixture(t, storeID)
		repo := new(MockProductRepository)
		repo.On("FindAllForStore", ctx, storeID, mock.Anything).Return(products, nil)

		service := NewCatalogExportService(repo)
		result, err := service.Export(ctx, storeID, ExportRequest{Status: "active"})

		require.NoError(t, err)
		assert.Equal(t, 1, result.RowCount)
		records := parseCSV(t, result.Data)
		assert.Equal(t, "Desk Lamp", records[1][1])
		assert.Equal(t, "active", records[1][6])
	})

	t.Run("unknown status rejects the request", func(t *testing.T) {
		repo := new(MockProductRepository)

		service := NewCatalogExportService(repo)
		_, err := service.Export(ctx, storeID, ExportRequest{Status: "retired"})

		require.Error(t, err)
		repo.AssertNotCalled(t, "FindAllForStore", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("max rows caps the export after filtering", func(t *testing.T) {
		products := exportFixture(t, storeID)
		repo := new(MockProductRepository)
		repo.On("FindAllForStore", ctx, storeID, mock.Anything).Return(products, nil)

		service := NewCatalogExportService(repo).WithMaxRows(2)
		result, err := service.Export(ctx, storeID, ExportRequest{})

		require.NoError(t, err)
		assert.Equal(t, 2, result.RowCount)
		records := parseCSV(t, result.Data)
		require.Len(t, records, 3) // header + capped rows
	})

	t.Run("empty result still renders the header", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("FindAllForStore", ctx, storeID, mock.Anything).Return([]catalog.Product{}, nil)

		service := NewCatalogExportService(repo)
		result, err := service.Export(ctx, storeID, ExportRequest{})

		require.NoError(t, err)
		assert.Equal(t, 0, result.RowCount)
		records := parseCSV(t, result.Data)
		require.Len(t, records, 1)
		assert.Equal(t, exportHeader, records[0])
	})
}
