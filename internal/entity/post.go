package entity

import (
	"time"
)

type Post struct {
	ID         uint          `gorm:"primaryKey"`
	UserID     uint          `gorm:"not null;index"`
	User       User          `gorm:"constraint:OnDelete:CASCADE"`
	Title      string        `gorm:"size:255;not null"`
	Content    string        `gorm:"type:text;not null"`
	AutoAnswer bool          `gorm:"not null"`
	Delay      time.Duration `gorm:"not null"`
	CreatedAt  time.Time     `gorm:"autoCreateTime;index"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime"`
	Moderation
}

type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	PostID    uint      `gorm:"not null;index"`
	Post      Post      `gorm:"constraint:OnDelete:CASCADE"`
	UserID    uint      `gorm:"not null;index"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	Moderation
}

type Reply struct {
	ID        uint      `gorm:"primaryKey"`
	CommentID uint      `gorm:"not null;index"`
	Comment   Comment   `gorm:"constraint:OnDelete:CASCADE"`
	UserID    uint      `gorm:"not null;index"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	Moderation
}

// ReplyDelay is how long after a comment the post owner's automatic reply fires.
func (p *Post) ReplyDelay() time.Duration {
	if p.Delay < 0 {
		return DefaultPostDelay
	}
	return p.Delay
}
