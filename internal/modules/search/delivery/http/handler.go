package handler

import (
	"log/slog"
	"net/http"

	"anoa.com/swetter/internal/modules/search/service"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	service service.MeiliSearchService
	host    string
}

func NewSearchHandler(service service.MeiliSearchService, host string) *SearchHandler {
	return &SearchHandler{service: service, host: host}
}

// GetSearchToken hands clients a short-lived token for querying the posts index directly.
func (h *SearchHandler) GetSearchToken(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search is disabled", "kind": "service_unavailable"})
		return
	}

	token, err := h.service.GenerateSearchToken()
	if err != nil {
		slog.Warn("failed to generate search token", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search is unavailable", "kind": "service_unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "host": h.host, "index": "posts"})
}
