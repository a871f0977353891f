package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"anoa.com/swetter/pkg/apperror"
	"anoa.com/swetter/pkg/ratelimiter"
	"github.com/gin-gonic/gin"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uint, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return 0, apperror.ErrUnauthorized
	}

	s, ok := userIDStr.(string)
	if !ok {
		return 0, apperror.ErrUnauthorized
	}

	userID, err := strconv.ParseUint(s, 10, 64)
	if err != nil || userID == 0 {
		return 0, apperror.ErrUnauthorized
	}

	return uint(userID), nil
}

// ParamID parses a positive numeric path parameter.
func ParamID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.New(http.StatusBadRequest, "invalid "+name, apperror.ErrBadRequest)
	}
	return uint(id), nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}

	var rateLimitErr *ratelimiter.RateLimitError
	if errors.As(err, &rateLimitErr) {
		c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
	}

	c.JSON(code, gin.H{"error": err.Error(), "kind": apperror.Kind(err)})
}
