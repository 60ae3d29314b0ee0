package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/marketplace/backend/internal/application/catalog"
)

// BulkMutationHandler handles bulk price/stock mutation endpoints
type BulkMutationHandler struct {
	BaseHandler
	bulkService *catalogapp.BulkCatalogMutator
}

// NewBulkMutationHandler creates a new BulkMutationHandler
func NewBulkMutationHandler(bulkService *catalogapp.BulkCatalogMutator) *BulkMutationHandler {
	return &BulkMutationHandler{
		bulkService: bulkService,
	}
}

// Apply handles POST /catalog/products/bulk.
// A 200 response may still carry per-item failures; callers must inspect
// the failures list.
func (h *BulkMutationHandler) Apply(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store identification required")
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User identification required")
		return
	}

	var req catalogapp.BulkMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.RequestKey == "" {
		req.RequestKey = c.GetHeader("Idempotency-Key")
	}

	result, err := h.bulkService.Apply(c.Request.Context(), storeID, actorID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers bulk mutation routes on the given router group
func (h *BulkMutationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/catalog/products/bulk", h.Apply)
}
