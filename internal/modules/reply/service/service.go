package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"anoa.com/swetter/internal/entity"
	commentRepo "anoa.com/swetter/internal/modules/comment/repository"
	comment "anoa.com/swetter/internal/modules/comment/service"
	moderation "anoa.com/swetter/internal/modules/moderation/service"
	notifDto "anoa.com/swetter/internal/modules/notification/dto"
	notifService "anoa.com/swetter/internal/modules/notification/service"
	post "anoa.com/swetter/internal/modules/post/service"
	"anoa.com/swetter/internal/modules/reply/dto"
	"anoa.com/swetter/internal/modules/reply/repository"
	"anoa.com/swetter/pkg/apperror"
	"anoa.com/swetter/pkg/ratelimiter"
	"gorm.io/gorm"
)

var (
	ErrReplyNotFound   = apperror.Wrap(apperror.ErrNotFound, "Comment reply with this id not found")
	ErrReplyBlocked    = apperror.Wrap(apperror.ErrBlocked, "Comment reply is blocked")
	ErrReplyProhibited = apperror.Wrap(apperror.ErrProhibitedContent, "Comment reply contains prohibited content. Comment reply was blocked")
	ErrNotReplyOwner   = apperror.Wrap(apperror.ErrForbidden, "You can only change your own replies")
	ErrBlankReply      = apperror.Wrap(apperror.ErrBadRequest, "reply_content must not be blank")
)

type ReplyService interface {
	CreateReply(ctx context.Context, userID uint, req dto.CreateReplyRequest) (*dto.ReplyResponse, error)
	// CreateGeneratedReply stores a model-written reply as the post owner.
	// It skips classification and the parent check.
	CreateGeneratedReply(ctx context.Context, commentID, ownerID uint, content string) (*entity.Reply, error)
	GetReply(ctx context.Context, replyID uint) (*dto.ReplyResponse, error)
	GetCommentReplies(ctx context.Context, commentID uint) ([]*dto.ReplyResponse, error)
	UpdateReply(ctx context.Context, userID, replyID uint, req dto.UpdateReplyRequest) (*dto.ReplyResponse, error)
	DeleteReply(ctx context.Context, userID, replyID uint) error
}

type replyService struct {
	replyRepo           repository.ReplyRepository
	commentRepo         commentRepo.CommentRepository
	moderation          moderation.ModerationService
	limiter             *ratelimiter.Limiter
	notificationService notifService.NotificationService
	logger              *slog.Logger
}

func NewReplyService(replyRepo repository.ReplyRepository, commentRepo commentRepo.CommentRepository, moderationService moderation.ModerationService, limiter *ratelimiter.Limiter, notificationService notifService.NotificationService) ReplyService {
	return &replyService{
		replyRepo:           replyRepo,
		commentRepo:         commentRepo,
		moderation:          moderationService,
		limiter:             limiter,
		notificationService: notificationService,
		logger:              slog.Default().With("component", "reply"),
	}
}

func (s *replyService) findVisible(ctx context.Context, replyID uint) (*entity.Reply, error) {
	reply, err := s.replyRepo.FindByID(ctx, replyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReplyNotFound
		}
		return nil, err
	}
	if reply.IsBlocked() {
		return nil, ErrReplyBlocked
	}
	return reply, nil
}

func (s *replyService) CreateReply(ctx context.Context, userID uint, req dto.CreateReplyRequest) (*dto.ReplyResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrBlankReply
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

	parent, err := comment.FindVisibleComment(ctx, s.commentRepo, req.CommentID)
	if err != nil {
		return nil, err
	}

	blocked, err := moderation.Screen(ctx, s.moderation, moderation.ReplySubject(req.Content))
	if err != nil {
		return nil, err
	}

	reply := &entity.Reply{
		CommentID: parent.ID,
		UserID:    userID,
		Content:   req.Content,
	}
	if blocked {
		reply.Block(time.Now())
	}

	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, err
	}
	persisted = true

	if blocked {
		s.logger.Info("reply blocked", "reply_id", reply.ID, "user_id", userID)
		return nil, ErrReplyProhibited
	}

	if s.notificationService != nil {
		go s.notificationService.Notify(context.Background(), notifDto.Notification{
			Type:      notifDto.TypeNewReply,
			UserID:    parent.UserID,
			ActorID:   userID,
			PostID:    parent.PostID,
			CommentID: parent.ID,
			ReplyID:   reply.ID,
			Message:   "Someone replied to your comment",
			CreatedAt: reply.CreatedAt,
		})
	}

	return dto.ToReplyResponse(reply), nil
}

func (s *replyService) CreateGeneratedReply(ctx context.Context, commentID, ownerID uint, content string) (*entity.Reply, error) {
	reply := &entity.Reply{
		CommentID: commentID,
		UserID:    ownerID,
		Content:   content,
	}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *replyService) GetReply(ctx context.Context, replyID uint) (*dto.ReplyResponse, error) {
	reply, err := s.findVisible(ctx, replyID)
	if err != nil {
		return nil, err
	}
	return dto.ToReplyResponse(reply), nil
}

// GetCommentReplies lists visible replies. A hidden or missing comment lists nothing.
func (s *replyService) GetCommentReplies(ctx context.Context, commentID uint) ([]*dto.ReplyResponse, error) {
	if _, err := comment.FindVisibleComment(ctx, s.commentRepo, commentID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) || errors.Is(err, apperror.ErrBlocked) {
			return []*dto.ReplyResponse{}, nil
		}
		return nil, err
	}

	replies, err := s.replyRepo.FindByCommentID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return dto.ToReplyResponses(replies), nil
}

func (s *replyService) UpdateReply(ctx context.Context, userID, replyID uint, req dto.UpdateReplyRequest) (*dto.ReplyResponse, error) {
	reply, err := s.findVisible(ctx, replyID)
	if err != nil {
		return nil, err
	}

	if reply.UserID != userID {
		return nil, ErrNotReplyOwner
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrBlankReply
	}

	blocked, err := moderation.Screen(ctx, s.moderation, moderation.ReplySubject(req.Content))
	if err != nil {
		return nil, err
	}

	reply.Content = req.Content
	if blocked {
		reply.Block(time.Now())
	}

	if err := s.replyRepo.Update(ctx, reply); err != nil {
		return nil, err
	}

	if blocked {
		s.logger.Info("reply blocked on update", "reply_id", reply.ID, "user_id", userID)
		return nil, ErrReplyProhibited
	}

	return dto.ToReplyResponse(reply), nil
}

func (s *replyService) DeleteReply(ctx context.Context, userID, replyID uint) error {
	reply, err := s.findVisible(ctx, replyID)
	if err != nil {
		return err
	}

	if reply.UserID != userID {
		return ErrNotReplyOwner
	}

	return s.replyRepo.Delete(ctx, replyID)
}
