package bootstrap

import (
	"log/slog"
	"time"

	"anoa.com/swetter/internal/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Post{},
		&entity.Comment{},
		&entity.Reply{},
	)
}

// SeedAdmin creates the admin account with a sample auto-answer thread.
// Nothing is written when the admin already exists.
func SeedAdmin(db *gorm.DB, password string) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("username = ?", "admin").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := entity.User{
			Username:     "admin",
			PasswordHash: string(hashedPasswordBytes),
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		post := entity.Post{
			UserID:     admin.ID,
			Title:      "Welcome",
			Content:    "This is the first post. Leave a comment and the author will answer.",
			AutoAnswer: true,
			Delay:      entity.DefaultPostDelay,
		}
		if err := tx.Omit("User").Create(&post).Error; err != nil {
			return err
		}

		comment := entity.Comment{
			PostID:  post.ID,
			UserID:  admin.ID,
			Content: "First comment!",
		}
		if err := tx.Omit("Post", "User").Create(&comment).Error; err != nil {
			return err
		}

		reply := entity.Reply{
			CommentID: comment.ID,
			UserID:    admin.ID,
			Content:   "First reply.",
		}
		if err := tx.Omit("Comment", "User").Create(&reply).Error; err != nil {
			return err
		}

		slog.Info("admin user seeded", "username", admin.Username, "post_id", post.ID, "seeded_at", time.Now().Format(time.RFC3339))
		return nil
	})
}
