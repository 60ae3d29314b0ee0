package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ObjectStorageService abstracts the object storage backend used for
// product images. The concrete implementation lives in the
// infrastructure layer (S3-compatible storage or a stub).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ImageServiceConfig holds configuration for the product image service
type ImageServiceConfig struct {
	UploadURLExpiry     time.Duration
	DownloadURLExpiry   time.Duration
	MaxImagesPerProduct int
}

// DefaultImageServiceConfig returns the default configuration
func DefaultImageServiceConfig() ImageServiceConfig {
	return ImageServiceConfig{
		UploadURLExpiry:     15 * time.Minute,
		DownloadURLExpiry:   1 * time.Hour,
		MaxImagesPerProduct: 20,
	}
}

// allowedImageContentTypes maps accepted content types to file extensions
var allowedImageContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadURLResponse carries a presigned upload URL for a product image
type UploadURLResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ImageResponse carries a product image key with a presigned download URL
type ImageResponse struct {
	StorageKey  string    `json:"storage_key"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ProductImageService manages the image list of a product backed by
// object storage. Image keys are stored on the product itself as a
// serialized list; the binary content lives in the storage backend.
type ProductImageService struct {
	productRepo catalog.ProductRepository
	storage     ObjectStorageService
	config      ImageServiceConfig
}

// NewProductImageService creates a new ProductImageService
func NewProductImageService(productRepo catalog.ProductRepository, storage ObjectStorageService, cfg ImageServiceConfig) *ProductImageService {
	return &ProductImageService{
		productRepo: productRepo,
		storage:     storage,
		config:      cfg,
	}
}

// RequestUploadURL issues a presigned upload URL for a new product image.
// The image is not attached to the product until ConfirmUpload is called.
func (s *ProductImageService) RequestUploadURL(ctx context.Context, storeID, productID uuid.UUID, contentType string) (*UploadURLResponse, error) {
	ext, ok := allowedImageContentTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, shared.NewDomainError("UNSUPPORTED_CONTENT_TYPE", fmt.Sprintf("Content type %s is not supported for product images", contentType))
	}

	product, err := s.productRepo.FindByIDForStore(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	if product.IsArchived() {
		return nil, shared.NewDomainError("ARCHIVED", "Cannot modify an archived product")
	}

	storageKey := path.Join("products", storeID.String(), productID.String(), uuid.New().String()+ext)

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, contentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	return &UploadURLResponse{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmUpload verifies the object landed in storage and attaches the
// key to the product's image list.
func (s *ProductImageService) ConfirmUpload(ctx context.Context, storeID, actorID, productID uuid.UUID, storageKey string) error {
	if !strings.HasPrefix(storageKey, path.Join("products", storeID.String(), productID.String())+"/") {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key does not belong to this product")
	}

	exists, err := s.storage.ObjectExists(ctx, storageKey)
	if err != nil {
		return fmt.Errorf("failed to check object existence: %w", err)
	}
	if !exists {
		return shared.NewDomainError("UPLOAD_NOT_FOUND", "Uploaded object was not found in storage")
	}

	product, err := s.productRepo.FindByIDForStore(ctx, storeID, productID)
	if err != nil {
		return err
	}

	keys, err := decodeImageKeys(product.Images)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if k == storageKey {
			return nil // already attached
		}
	}
	if len(keys) >= s.config.MaxImagesPerProduct {
		return shared.NewDomainError("TOO_MANY_IMAGES", fmt.Sprintf("A product can have at most %d images", s.config.MaxImagesPerProduct))
	}

	keys = append(keys, storageKey)
	serialized, err := encodeImageKeys(keys)
	if err != nil {
		return err
	}
	if err := product.SetImages(serialized, actorID); err != nil {
		return err
	}

	return s.productRepo.Save(ctx, product)
}

// ListImages returns the product's image keys with presigned download URLs
func (s *ProductImageService) ListImages(ctx context.Context, storeID, productID uuid.UUID) ([]ImageResponse, error) {
	product, err := s.productRepo.FindByIDForStore(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}

	keys, err := decodeImageKeys(product.Images)
	if err != nil {
		return nil, err
	}

	images := make([]ImageResponse, 0, len(keys))
	for _, key := range keys {
		url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, key, s.config.DownloadURLExpiry)
		if err != nil {
			return nil, fmt.Errorf("failed to generate download URL: %w", err)
		}
		images = append(images, ImageResponse{
			StorageKey:  key,
			DownloadURL: url,
			ExpiresAt:   expiresAt,
		})
	}

	return images, nil
}

// RemoveImage detaches an image key from the product and deletes the
// object from storage.
func (s *ProductImageService) RemoveImage(ctx context.Context, storeID, actorID, productID uuid.UUID, storageKey string) error {
	product, err := s.productRepo.FindByIDForStore(ctx, storeID, productID)
	if err != nil {
		return err
	}

	keys, err := decodeImageKeys(product.Images)
	if err != nil {
		return err
	}

	remaining := make([]string, 0, len(keys))
	found := false
	for _, k := range keys {
		if k == storageKey {
			found = true
			continue
		}
		remaining = append(remaining, k)
	}
	if !found {
		return shared.ErrNotFound
	}

	serialized, err := encodeImageKeys(remaining)
	if err != nil {
		return err
	}
	if err := product.SetImages(serialized, actorID); err != nil {
		return err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return err
	}

	if err := s.storage.DeleteObject(ctx, storageKey); err != nil {
		// The product no longer references the object; an orphan in
		// storage is preferable to a dangling reference.
		return fmt.Errorf("image detached but storage delete failed: %w", err)
	}
	return nil
}

// decodeImageKeys parses the serialized image list stored on a product
func decodeImageKeys(serialized string) ([]string, error) {
	if serialized == "" || serialized == "[]" || serialized == "null" {
		return []string{}, nil
	}
	var keys []string
	if err := json.Unmarshal([]byte(serialized), &keys); err != nil {
		return nil, fmt.Errorf("corrupt image list: %w", err)
	}
	return keys, nil
}

// encodeImageKeys serializes the image key list for storage on a product
func encodeImageKeys(keys []string) (string, error) {
	data, err := json.Marshal(keys)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
