package handler

import (
	"net/http"

	"anoa.com/swetter/internal/modules/reply/dto"
	"anoa.com/swetter/internal/modules/reply/service"
	"anoa.com/swetter/pkg/response"
	"anoa.com/swetter/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ReplyHandler struct {
	service service.ReplyService
}

func NewReplyHandler(service service.ReplyService) *ReplyHandler {
	return &ReplyHandler{service: service}
}

func (h *ReplyHandler) CreateReply(c *gin.Context) {
	var req dto.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err), "kind": "bad_request"})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	reply, err := h.service.CreateReply(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

func (h *ReplyHandler) GetReply(c *gin.Context) {
	replyID, err := response.ParamID(c, "reply_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	reply, err := h.service.GetReply(c.Request.Context(), replyID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

func (h *ReplyHandler) GetCommentReplies(c *gin.Context) {
	commentID, err := response.ParamID(c, "comment_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	replies, err := h.service.GetCommentReplies(c.Request.Context(), commentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, replies)
}

func (h *ReplyHandler) UpdateReply(c *gin.Context) {
	replyID, err := response.ParamID(c, "reply_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err), "kind": "bad_request"})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	reply, err := h.service.UpdateReply(c.Request.Context(), userID, replyID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

func (h *ReplyHandler) DeleteReply(c *gin.Context) {
	replyID, err := response.ParamID(c, "reply_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteReply(c.Request.Context(), userID, replyID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reply deleted successfully"})
}
