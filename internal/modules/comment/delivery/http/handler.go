package handler

import (
	"net/http"

	"anoa.com/swetter/internal/modules/comment/dto"
	"anoa.com/swetter/internal/modules/comment/service"
	"anoa.com/swetter/pkg/response"
	"anoa.com/swetter/pkg/validator"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err), "kind": "bad_request"})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	commentID, err := response.ParamID(c, "comment_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	comment, err := h.service.GetComment(c.Request.Context(), commentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) GetPostComments(c *gin.Context) {
	postID, err := response.ParamID(c, "post_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	comments, err := h.service.GetPostComments(c.Request.Context(), postID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) GetUserComments(c *gin.Context) {
	userID, err := response.ParamID(c, "user_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	comments, err := h.service.GetUserComments(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, err := response.ParamID(c, "comment_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err), "kind": "bad_request"})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	comment, err := h.service.UpdateComment(c.Request.Context(), userID, commentID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, err := response.ParamID(c, "comment_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted successfully"})
}
