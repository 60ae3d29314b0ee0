package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/marketplace/backend/internal/application/catalog"
)

// ImageHandler handles product image endpoints
type ImageHandler struct {
	BaseHandler
	imageService *catalogapp.ProductImageService
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(imageService *catalogapp.ProductImageService) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
	}
}

// RequestUploadURLRequest represents a request for a presigned upload URL
type RequestUploadURLRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// ConfirmUploadRequest confirms a completed upload by storage key
type ConfirmUploadRequest struct {
	StorageKey string `json:"storage_key" binding:"required,max=500"`
}

// RequestUploadURL handles POST /catalog/products/:id/images/upload-url
func (h *ImageHandler) RequestUploadURL(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store identification required")
		return
	}

	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req RequestUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	upload, err := h.imageService.RequestUploadURL(c.Request.Context(), storeID, productID, req.ContentType)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, upload)
}

// ConfirmUpload handles POST /catalog/products/:id/images
func (h *ImageHandler) ConfirmUpload(c *gin.Context) {
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

	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.imageService.ConfirmUpload(c.Request.Context(), storeID, actorID, productID, req.StorageKey); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListImages handles GET /catalog/products/:id/images
func (h *ImageHandler) ListImages(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store identification required")
		return
	}

	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	images, err := h.imageService.ListImages(c.Request.Context(), storeID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, images)
}

// RemoveImage handles DELETE /catalog/products/:id/images
func (h *ImageHandler) RemoveImage(c *gin.Context) {
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

	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.imageService.RemoveImage(c.Request.Context(), storeID, actorID, productID, req.StorageKey); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers image routes on the given router group
func (h *ImageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	images := rg.Group("/catalog/products/:id/images")
	{
		images.POST("/upload-url", h.RequestUploadURL)
		images.POST("", h.ConfirmUpload)
		images.GET("", h.ListImages)
		images.DELETE("", h.RemoveImage)
	}
}
