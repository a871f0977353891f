package repository

import (
	"context"

	"anoa.com/swetter/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReplyRepository interface {
	Create(ctx context.Context, reply *entity.Reply) error
	FindByID(ctx context.Context, id uint) (*entity.Reply, error)
	FindByCommentID(ctx context.Context, commentID uint) ([]*entity.Reply, error)
	Update(ctx context.Context, reply *entity.Reply) error
	Delete(ctx context.Context, id uint) error
}

type replyRepository struct {
	db *gorm.DB
}

func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) Create(ctx context.Context, reply *entity.Reply) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(reply).Error
}

func (r *replyRepository) FindByID(ctx context.Context, id uint) (*entity.Reply, error) {
	var reply entity.Reply
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reply).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *replyRepository) FindByCommentID(ctx context.Context, commentID uint) ([]*entity.Reply, error) {
	var replies []*entity.Reply

	err := r.db.WithContext(ctx).
		Where("comment_id = ? AND blocked = ?", commentID, false).
		Order("created_at ASC").
		Order("id ASC").
		Find(&replies).Error

	return replies, err
}

func (r *replyRepository) Update(ctx context.Context, reply *entity.Reply) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(reply).Error
}

func (r *replyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Reply{}, id).Error
}
