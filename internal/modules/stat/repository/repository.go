package repository

import (
	"context"

	"anoa.com/swetter/internal/entity"
	"gorm.io/gorm"
)

// StatRepository counts visible content. Blocked rows are never counted.
type StatRepository interface {
	CountPosts(ctx context.Context) (int64, error)
	CountComments(ctx context.Context) (int64, error)
	CountReplies(ctx context.Context) (int64, error)
}

type statRepository struct {
	db *gorm.DB
}

func NewStatRepository(db *gorm.DB) StatRepository {
	return &statRepository{db: db}
}

func (r *statRepository) countVisible(ctx context.Context, model any) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(model).Where("blocked = ?", false).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *statRepository) CountPosts(ctx context.Context) (int64, error) {
	return r.countVisible(ctx, &entity.Post{})
}

func (r *statRepository) CountComments(ctx context.Context) (int64, error) {
	return r.countVisible(ctx, &entity.Comment{})
}

func (r *statRepository) CountReplies(ctx context.Context) (int64, error) {
	return r.countVisible(ctx, &entity.Reply{})
}
