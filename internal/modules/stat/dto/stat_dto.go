package dto

type StatsResponse struct {
	TotalUsers         int64 `json:"total_users"`
	TotalPosts         int64 `json:"total_posts"`
	TotalComments      int64 `json:"total_comments"`
	TotalReplies       int64 `json:"total_replies"`
	PendingAutoReplies int   `json:"pending_auto_replies"`
}
