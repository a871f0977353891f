package repository

import (
	"context"

	"anoa.com/swetter/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	FindByID(ctx context.Context, id uint) (*entity.Post, error)
	FindAll(ctx context.Context) ([]*entity.Post, error)
	FindByUserID(ctx context.Context, userID uint) ([]*entity.Post, error)
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

// FindByID returns blocked posts too; visibility is decided by the caller.
func (r *postRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	var post entity.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindAll(ctx context.Context) ([]*entity.Post, error) {
	var posts []*entity.Post

	err := r.db.WithContext(ctx).
		Where("blocked = ?", false).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error

	return posts, err
}

func (r *postRepository) FindByUserID(ctx context.Context, userID uint) ([]*entity.Post, error) {
	var posts []*entity.Post

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND blocked = ?", userID, false).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error

	return posts, err
}

func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Post{}, id).Error
}
