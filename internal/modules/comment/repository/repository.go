package repository

import (
	"context"

	"anoa.com/swetter/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByID(ctx context.Context, id uint) (*entity.Comment, error)
	FindByPostID(ctx context.Context, postID uint) ([]*entity.Comment, error)
	FindByUserID(ctx context.Context, userID uint) ([]*entity.Comment, error)
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id uint) (*entity.Comment, error) {
	var comment entity.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindByPostID(ctx context.Context, postID uint) ([]*entity.Comment, error) {
	var comments []*entity.Comment

	err := r.db.WithContext(ctx).
		Where("post_id = ? AND blocked = ?", postID, false).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error

	return comments, err
}

// FindByUserID lists the user's visible comments, newest first.
func (r *commentRepository) FindByUserID(ctx context.Context, userID uint) ([]*entity.Comment, error) {
	var comments []*entity.Comment

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND blocked = ?", userID, false).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error

	return comments, err
}

func (r *commentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Comment{}, id).Error
}
