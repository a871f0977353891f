package dto

import "time"

const (
	TypeNewComment = "new_comment"
	TypeNewReply   = "new_reply"
	TypeAutoReply  = "auto_reply"
)

// Notification is pushed to the recipient's live channel. It is never persisted.
type Notification struct {
	Type      string    `json:"type"`
	UserID    uint      `json:"user_id"`
	ActorID   uint      `json:"actor_id"`
	PostID    uint      `json:"post_id,omitempty"`
	CommentID uint      `json:"comment_id,omitempty"`
	ReplyID   uint      `json:"reply_id,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
