package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"anoa.com/swetter/internal/entity"
	"anoa.com/swetter/internal/modules/comment/dto"
	"anoa.com/swetter/internal/modules/comment/repository"
	moderation "anoa.com/swetter/internal/modules/moderation/service"
	notifDto "anoa.com/swetter/internal/modules/notification/dto"
	notifService "anoa.com/swetter/internal/modules/notification/service"
	postRepo "anoa.com/swetter/internal/modules/post/repository"
	post "anoa.com/swetter/internal/modules/post/service"
	"anoa.com/swetter/pkg/apperror"
	"anoa.com/swetter/pkg/ratelimiter"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound   = apperror.Wrap(apperror.ErrNotFound, "Comment with this id not found")
	ErrCommentBlocked    = apperror.Wrap(apperror.ErrBlocked, "Comment is blocked")
	ErrCommentProhibited = apperror.Wrap(apperror.ErrProhibitedContent, "Comment contains prohibited content. Comment was blocked")
	ErrNotCommentOwner   = apperror.Wrap(apperror.ErrForbidden, "You can only change your own comments")
	ErrBlankComment      = apperror.Wrap(apperror.ErrBadRequest, "comment_content must not be blank")
)

// AutoReplier answers a comment later on behalf of the post owner.
type AutoReplier interface {
	ScheduleReply(post *entity.Post, comment *entity.Comment) (uuid.UUID, error)
}

type CommentService interface {
	CreateComment(ctx context.Context, userID uint, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	GetComment(ctx context.Context, commentID uint) (*dto.CommentResponse, error)
	GetPostComments(ctx context.Context, postID uint) ([]*dto.CommentResponse, error)
	GetUserComments(ctx context.Context, userID uint) ([]*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, userID, commentID uint, req dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, userID, commentID uint) error
}

type commentService struct {
	commentRepo         repository.CommentRepository
	postRepo            postRepo.PostRepository
	moderation          moderation.ModerationService
	limiter             *ratelimiter.Limiter
	notificationService notifService.NotificationService
	autoReplier         AutoReplier
	logger              *slog.Logger
}

// NewCommentService wires the comment pipeline. limiter, notificationService and autoReplier may be nil.
func NewCommentService(commentRepo repository.CommentRepository, postRepo postRepo.PostRepository, moderationService moderation.ModerationService, limiter *ratelimiter.Limiter, notificationService notifService.NotificationService, autoReplier AutoReplier) CommentService {
	return &commentService{
		commentRepo:         commentRepo,
		postRepo:            postRepo,
		moderation:          moderationService,
		limiter:             limiter,
		notificationService: notificationService,
		autoReplier:         autoReplier,
		logger:              slog.Default().With("component", "comment"),
	}
}

// FindVisibleComment loads a comment and rejects it when missing or blocked.
func FindVisibleComment(ctx context.Context, repo repository.CommentRepository, commentID uint) (*entity.Comment, error) {
	comment, err := repo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.IsBlocked() {
		return nil, ErrCommentBlocked
	}
	return comment, nil
}

func (s *commentService) CreateComment(ctx context.Context, userID uint, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrBlankComment
	}

	if err := s.limiter.Allow(ctx, userID, post.RateLimitAction); err != nil {
		return nil, err
	}
	persisted := false
	defer func() {
		if !persisted {
			s.limiter.Release(ctx, userID, post.RateLimitAction)
		}
	}()

	parent, err := post.FindVisiblePost(ctx, s.postRepo, req.PostID)
	if err != nil {
		return nil, err
	}

	blocked, err := moderation.Screen(ctx, s.moderation, moderation.CommentSubject(req.Content))
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		PostID:  parent.ID,
		UserID:  userID,
		Content: req.Content,
	}
	if blocked {
		comment.Block(time.Now())
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	persisted = true

	if blocked {
		s.logger.Info("comment blocked", "comment_id", comment.ID, "user_id", userID)
		return nil, ErrCommentProhibited
	}

	if parent.AutoAnswer && s.autoReplier != nil {
		if _, err := s.autoReplier.ScheduleReply(parent, comment); err != nil {
			s.logger.Error("failed to schedule auto reply", "comment_id", comment.ID, "error", err)
		}
	}

	if s.notificationService != nil {
		go s.notificationService.Notify(context.Background(), notifDto.Notification{
			Type:      notifDto.TypeNewComment,
			UserID:    parent.UserID,
			ActorID:   userID,
			PostID:    parent.ID,
			CommentID: comment.ID,
			Message:   fmt.Sprintf("Someone commented on your post '%s'", parent.Title),
			CreatedAt: comment.CreatedAt,
		})
	}

	return dto.ToCommentResponse(comment), nil
}

func (s *commentService) GetComment(ctx context.Context, commentID uint) (*dto.CommentResponse, error) {
	comment, err := FindVisibleComment(ctx, s.commentRepo, commentID)
	if err != nil {
		return nil, err
	}
	return dto.ToCommentResponse(comment), nil
}

func (s *commentService) GetPostComments(ctx context.Context, postID uint) ([]*dto.CommentResponse, error) {
	if _, err := post.FindVisiblePost(ctx, s.postRepo, postID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) || errors.Is(err, apperror.ErrBlocked) {
			return []*dto.CommentResponse{}, nil
		}
		return nil, err
	}

	comments, err := s.commentRepo.FindByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return dto.ToCommentResponses(comments), nil
}

func (s *commentService) GetUserComments(ctx context.Context, userID uint) ([]*dto.CommentResponse, error) {
	comments, err := s.commentRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.ToCommentResponses(comments), nil
}

func (s *commentService) UpdateComment(ctx context.Context, userID, commentID uint, req dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := FindVisibleComment(ctx, s.commentRepo, commentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != userID {
		return nil, ErrNotCommentOwner
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrBlankComment
	}

	blocked, err := moderation.Screen(ctx, s.moderation, moderation.CommentSubject(req.Content))
	if err != nil {
		return nil, err
	}

	comment.Content = req.Content
	if blocked {
		comment.Block(time.Now())
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	if blocked {
		s.logger.Info("comment blocked on update", "comment_id", comment.ID, "user_id", userID)
		return nil, ErrCommentProhibited
	}

	return dto.ToCommentResponse(comment), nil
}

func (s *commentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := FindVisibleComment(ctx, s.commentRepo, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		return ErrNotCommentOwner
	}

	return s.commentRepo.Delete(ctx, commentID)
}
