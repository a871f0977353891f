package dto

import (
	"time"

	"anoa.com/swetter/internal/entity"
)

type CreateReplyRequest struct {
	CommentID uint   `json:"comment_id" binding:"required,gt=0"`
	Content   string `json:"reply_content" binding:"required,max=5000"`
}

type UpdateReplyRequest struct {
	Content string `json:"reply_content" binding:"required,max=5000"`
}

type ReplyResponse struct {
	ID        uint      `json:"reply_id"`
	CommentID uint      `json:"comment_id"`
	UserID    uint      `json:"user_id"`
	Content   string    `json:"reply_content"`
	CreatedAt time.Time `json:"reply_created_at"`
}

func ToReplyResponse(reply *entity.Reply) *ReplyResponse {
	return &ReplyResponse{
		ID:        reply.ID,
		CommentID: reply.CommentID,
		UserID:    reply.UserID,
		Content:   reply.Content,
		CreatedAt: reply.CreatedAt,
	}
}

func ToReplyResponses(replies []*entity.Reply) []*ReplyResponse {
	res := make([]*ReplyResponse, 0, len(replies))
	for _, r := range replies {
		res = append(res, ToReplyResponse(r))
	}
	return res
}
