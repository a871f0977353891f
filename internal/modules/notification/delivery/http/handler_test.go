package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"anoa.com/swetter/internal/modules/notification/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestWebSocketWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewNotificationHandler(service.NewNotificationService(nil))

	router := gin.New()
	router.GET("/ws", func(c *gin.Context) { c.Set("user_id", "3") }, h.HandleWebSocket)
	router.GET("/anon", h.HandleWebSocket)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/anon", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
