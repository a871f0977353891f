package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"anoa.com/swetter/internal/entity"
)

// MaxDelay bounds post_delay; the clock format cannot express a full day.
const MaxDelay = 24 * time.Hour

// Delay is a reply delay carried on the wire as "HH:MM:SS".
// Input also accepts Go duration syntax such as "90s".
type Delay time.Duration

func ParseDelay(s string) (Delay, error) {
	s = strings.TrimSpace(s)

	var d time.Duration
	if parts := strings.Split(s, ":"); len(parts) == 3 {
		var units [3]int
		for i, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n < 0 {
				return 0, fmt.Errorf("invalid post_delay %q", s)
			}
			units[i] = n
		}
		if units[1] > 59 || units[2] > 59 {
			return 0, fmt.Errorf("invalid post_delay %q", s)
		}
		d = time.Duration(units[0])*time.Hour + time.Duration(units[1])*time.Minute + time.Duration(units[2])*time.Second
	} else {
		var err error
		if d, err = time.ParseDuration(s); err != nil {
			return 0, fmt.Errorf("invalid post_delay %q", s)
		}
	}

	if d < 0 || d >= MaxDelay {
		return 0, fmt.Errorf("post_delay must be between 00:00:00 and 23:59:59")
	}
	return Delay(d), nil
}

func (d Delay) Duration() time.Duration {
	return time.Duration(d)
}

func (d Delay) String() string {
	total := int64(time.Duration(d) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}

func (d Delay) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Delay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("post_delay must be a string like \"00:01:00\"")
	}
	parsed, err := ParseDelay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type CreatePostRequest struct {
	Title      string `json:"post_title" binding:"required,max=255"`
	Content    string `json:"post_content" binding:"required,max=10000"`
	AutoAnswer bool   `json:"post_auto_answer"`
	// nil means the default delay
	Delay *Delay `json:"post_delay"`
}

// UpdatePostRequest carries only the fields to change.
type UpdatePostRequest struct {
	Title      *string `json:"post_title" binding:"omitempty,min=1,max=255"`
	Content    *string `json:"post_content" binding:"omitempty,min=1,max=10000"`
	AutoAnswer *bool   `json:"post_auto_answer"`
	Delay      *Delay  `json:"post_delay"`
}

// TouchesText reports whether the update changes anything the classifier judges.
func (r UpdatePostRequest) TouchesText() bool {
	return r.Title != nil || r.Content != nil
}

type PostResponse struct {
	ID         uint      `json:"post_id"`
	UserID     uint      `json:"user_id"`
	Title      string    `json:"post_title"`
	Content    string    `json:"post_content"`
	AutoAnswer bool      `json:"post_auto_answer"`
	Delay      Delay     `json:"post_delay"`
	CreatedAt  time.Time `json:"post_created_at"`
}

func ToPostResponse(post *entity.Post) *PostResponse {
	return &PostResponse{
		ID:         post.ID,
		UserID:     post.UserID,
		Title:      post.Title,
		Content:    post.Content,
		AutoAnswer: post.AutoAnswer,
		Delay:      Delay(post.ReplyDelay()),
		CreatedAt:  post.CreatedAt,
	}
}

func ToPostResponses(posts []*entity.Post) []*PostResponse {
	res := make([]*PostResponse, 0, len(posts))
	for _, p := range posts {
		res = append(res, ToPostResponse(p))
	}
	return res
}
