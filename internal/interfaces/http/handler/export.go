package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/marketplace/backend/internal/application/catalog"
)

// ExportHandler handles catalog export endpoints
type ExportHandler struct {
	BaseHandler
	exportService *catalogapp.CatalogExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *catalogapp.CatalogExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Export handles GET /catalog/export. The filtered catalog is streamed back
// as a CSV attachment.
func (h *ExportHandler) Export(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store identification required")
		return
	}

	var req catalogapp.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.exportService.Export(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Header("X-Row-Count", fmt.Sprintf("%d", result.RowCount))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// RegisterRoutes registers export routes on the given router group
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog/export", h.Export)
}
