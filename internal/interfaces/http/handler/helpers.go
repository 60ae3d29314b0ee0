package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
)

// parseUUIDParam parses a UUID path parameter
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// respondViolations sends a 422 response carrying rule violations.
// Create, update and status-change endpoints all use this shape.
func respondViolations(c *gin.Context, violations []string) {
	details := make([]dto.ValidationDetail, len(violations))
	for i, v := range violations {
		details[i] = dto.ValidationDetail{Message: v}
	}
	requestID := c.GetString(RequestIDKey)
	c.JSON(http.StatusUnprocessableEntity, dto.Response{
		Success: false,
		Error: &dto.ErrorInfo{
			Code:      dto.ErrCodeBusinessRule,
			Message:   "Product validation failed",
			RequestID: requestID,
			Details:   details,
		},
	})
}
