package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Store context keys
const (
	StoreIDKey     = "store_id"
	StoreHeaderKey = "X-Store-ID"
)

// StoreMiddlewareConfig holds configuration for store middleware
type StoreMiddlewareConfig struct {
	// HeaderEnabled enables X-Store-ID header extraction. Admin users rely on
	// this to act on behalf of a store; merchant tokens are always scoped to
	// their own store.
	HeaderEnabled bool
	// JWTEnabled enables JWT claim extraction (requires JWT middleware to run first)
	JWTEnabled bool
	// SkipPaths are paths that don't require store context (e.g. health check)
	SkipPaths []string
	// Required determines if store context is mandatory
	Required bool
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultStoreConfig returns default store middleware configuration
func DefaultStoreConfig() StoreMiddlewareConfig {
	return StoreMiddlewareConfig{
		HeaderEnabled: true,
		JWTEnabled:    true,
		SkipPaths:     []string{"/health", "/healthz", "/ready", "/api/v1/health"},
		Required:      true,
		Logger:        nil,
	}
}

// StoreMiddleware extracts store identity from the request.
// Extraction order: X-Store-ID header (admin override) > JWT claims.
func StoreMiddleware() gin.HandlerFunc {
	return StoreMiddlewareWithConfig(DefaultStoreConfig())
}

// StoreMiddlewareWithConfig returns store middleware with custom configuration
func StoreMiddlewareWithConfig(cfg StoreMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		var storeID string
		var extractionMethod string

		// The header only wins for admin tokens; a merchant cannot point the
		// request at another store.
		if cfg.HeaderEnabled && IsAdmin(c) {
			if headerStoreID := c.GetHeader(StoreHeaderKey); headerStoreID != "" {
				storeID = headerStoreID
				extractionMethod = "header"
			}
		}

		if storeID == "" && cfg.JWTEnabled {
			if jwtStoreID := GetJWTStoreID(c); jwtStoreID != "" {
				storeID = jwtStoreID
				extractionMethod = "jwt"
			}
		}

		if storeID != "" {
			if _, err := uuid.Parse(storeID); err != nil {
				respondUnauthorized(c, "Invalid store ID format")
				return
			}
		}

		if storeID == "" && cfg.Required {
			respondUnauthorized(c, "Store identification required")
			return
		}

		if storeID != "" {
			c.Set(StoreIDKey, storeID)

			ctx := c.Request.Context()
			log := logger.FromContext(ctx)
			ctx, _ = logger.WithStoreID(ctx, log, storeID)
			c.Request = c.Request.WithContext(ctx)

			if cfg.Logger != nil {
				cfg.Logger.Debug("Store identified",
					zap.String("store_id", storeID),
					zap.String("method", extractionMethod),
				)
			}
		}

		c.Next()
	}
}

// respondUnauthorized sends an unauthorized response
func respondUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}

// GetStoreID retrieves the store ID from gin.Context
func GetStoreID(c *gin.Context) string {
	if storeID, exists := c.Get(StoreIDKey); exists {
		if sid, ok := storeID.(string); ok {
			return sid
		}
	}
	return ""
}

// GetStoreUUID retrieves the store ID as UUID from gin.Context
func GetStoreUUID(c *gin.Context) (uuid.UUID, error) {
	storeID := GetStoreID(c)
	if storeID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(storeID)
}

// OptionalStoreMiddleware creates middleware that doesn't require a store
func OptionalStoreMiddleware() gin.HandlerFunc {
	cfg := DefaultStoreConfig()
	cfg.Required = false
	return StoreMiddlewareWithConfig(cfg)
}
