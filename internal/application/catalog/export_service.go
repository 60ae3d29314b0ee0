package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// CatalogExportService renders a store's catalog as CSV after applying the
// optional export predicates.
type CatalogExportService struct {
	productRepo catalog.ProductRepository
	maxRows     int
}

// NewCatalogExportService creates a new CatalogExportService
func NewCatalogExportService(productRepo catalog.ProductRepository) *CatalogExportService {
	return &CatalogExportService{productRepo: productRepo}
}

// WithMaxRows caps the number of rows an export may contain. Zero means
// unlimited.
func (s *CatalogExportService) WithMaxRows(maxRows int) *CatalogExportService {
	s.maxRows = maxRows
	return s
}

// Export loads the store's products, filters them and renders CSV
func (s *CatalogExportService) Export(ctx context.Context, storeID uuid.UUID, req ExportRequest) (*ExportResult, error) {
	filter, err := toExportFilter(req)
	if err != nil {
		return nil, err
	}

	// A zero PageSize disables pagination in the repository; exports always
	// cover the whole catalog.
	products, err := s.productRepo.FindAllForStore(ctx, storeID, shared.Filter{
		OrderBy:  "created_at",
		OrderDir: "asc",
	})
	if err != nil {
		return nil, err
	}

	filtered := filter.Apply(products)
	if s.maxRows > 0 && len(filtered) > s.maxRows {
		filtered = filtered[:s.maxRows]
	}

	data, err := renderCSV(filtered)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		FileName:    fmt.Sprintf("catalog-%s.csv", time.Now().Format("20060102-150405")),
		ContentType: "text/csv",
		Data:        data,
		RowCount:    len(filtered),
	}, nil
}

// toExportFilter converts the request DTO to the domain filter
func toExportFilter(req ExportRequest) (catalog.ExportFilter, error) {
	filter := catalog.ExportFilter{
		Search:   req.Search,
		Category: req.Category,
	}
	if req.Status != "" {
		status, err := catalog.ParseStatus(req.Status)
		if err != nil {
			return catalog.ExportFilter{}, shared.NewDomainError("INVALID_STATUS", "Unknown product status")
		}
		filter.Status = status
	}
	return filter, nil
}

var exportHeader = []string{
	"id", "title", "description", "category", "price", "stock", "status", "created_at", "updated_at",
}

// renderCSV writes the filtered products as CSV
func renderCSV(products []catalog.Product) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeader); err != nil {
		return nil, err
	}

	for i := range products {
		p := &products[i]
		record := []string{
			p.ID.String(),
			p.Title,
			p.Description,
			p.Category,
			p.Price.String(),
			strconv.Itoa(p.Stock),
			string(p.Status),
			p.CreatedAt.Format(time.RFC3339),
			p.UpdatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
