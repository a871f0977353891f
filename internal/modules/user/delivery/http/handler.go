package handler

import (
	"net/http"

	"anoa.com/swetter/internal/modules/user/dto"
	"anoa.com/swetter/internal/modules/user/service"
	"anoa.com/swetter/pkg/response"
	"anoa.com/swetter/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err), "kind": "bad_request"})
		return
	}

	if err := h.authService.Register(c.Request.Context(), input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err), "kind": "bad_request"})
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
