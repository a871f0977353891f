package dto

import (
	"time"

	"anoa.com/swetter/internal/entity"
)

type CreateCommentRequest struct {
	PostID  uint   `json:"post_id" binding:"required,gt=0"`
	Content string `json:"comment_content" binding:"required,max=5000"`
}

type UpdateCommentRequest struct {
	Content string `json:"comment_content" binding:"required,max=5000"`
}

type CommentResponse struct {
	ID        uint      `json:"comment_id"`
	PostID    uint      `json:"post_id"`
	UserID    uint      `json:"user_id"`
	Content   string    `json:"comment_content"`
	CreatedAt time.Time `json:"comment_created_at"`
}

func ToCommentResponse(comment *entity.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

func ToCommentResponses(comments []*entity.Comment) []*CommentResponse {
	res := make([]*CommentResponse, 0, len(comments))
	for _, c := range comments {
		res = append(res, ToCommentResponse(c))
	}
	return res
}
