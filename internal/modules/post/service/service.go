package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"anoa.com/swetter/internal/entity"
	moderation "anoa.com/swetter/internal/modules/moderation/service"
	"anoa.com/swetter/internal/modules/post/dto"
	"anoa.com/swetter/internal/modules/post/repository"
	search "anoa.com/swetter/internal/modules/search/service"
	"anoa.com/swetter/pkg/apperror"
	"anoa.com/swetter/pkg/ratelimiter"
	"gorm.io/gorm"
)

// RateLimitAction is the cooldown shared by every kind of submission.
const RateLimitAction = "global"

var (
	ErrPostNotFound   = apperror.Wrap(apperror.ErrNotFound, "Post with this id not found")
	ErrPostBlocked    = apperror.Wrap(apperror.ErrBlocked, "Post is blocked")
	ErrPostProhibited = apperror.Wrap(apperror.ErrProhibitedContent, "Post contains prohibited content. Post was blocked")
	ErrNotPostOwner   = apperror.Wrap(apperror.ErrForbidden, "You can only change your own posts")
	ErrBlankPost      = apperror.Wrap(apperror.ErrBadRequest, "post_title and post_content must not be blank")
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint, req dto.CreatePostRequest) (*dto.PostResponse, error)
	GetPost(ctx context.Context, postID uint) (*dto.PostResponse, error)
	GetAllPosts(ctx context.Context) ([]*dto.PostResponse, error)
	GetUserPosts(ctx context.Context, userID uint) ([]*dto.PostResponse, error)
	UpdatePost(ctx context.Context, userID, postID uint, req dto.UpdatePostRequest) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, userID, postID uint) error
}

type postService struct {
	postRepo   repository.PostRepository
	moderation moderation.ModerationService
	limiter    *ratelimiter.Limiter
	meili      search.MeiliSearchService
	logger     *slog.Logger
}

// NewPostService wires the post pipeline. limiter and meili may be nil.
func NewPostService(postRepo repository.PostRepository, moderationService moderation.ModerationService, limiter *ratelimiter.Limiter, meili search.MeiliSearchService) PostService {
	return &postService{
		postRepo:   postRepo,
		moderation: moderationService,
		limiter:    limiter,
		meili:      meili,
		logger:     slog.Default().With("component", "post"),
	}
}

// FindVisiblePost loads a post and rejects it when missing or blocked.
func FindVisiblePost(ctx context.Context, repo repository.PostRepository, postID uint) (*entity.Post, error) {
	post, err := repo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.IsBlocked() {
		return nil, ErrPostBlocked
	}
	return post, nil
}

func (s *postService) CreatePost(ctx context.Context, userID uint, req dto.CreatePostRequest) (*dto.PostResponse, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, ErrBlankPost
	}

	if err := s.limiter.Allow(ctx, userID, RateLimitAction); err != nil {
		return nil, err
	}
	persisted := false
	defer func() {
		if !persisted {
			s.limiter.Release(ctx, userID, RateLimitAction)
		}
	}()

	blocked, err := moderation.Screen(ctx, s.moderation, moderation.PostSubject(req.Title, req.Content))
	if err != nil {
		return nil, err
	}

	delay := entity.DefaultPostDelay
	if req.Delay != nil {
		delay = req.Delay.Duration()
	}

	post := &entity.Post{
		UserID:     userID,
		Title:      req.Title,
		Content:    req.Content,
		AutoAnswer: req.AutoAnswer,
		Delay:      delay,
	}
	if blocked {
		post.Block(time.Now())
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	persisted = true

	if blocked {
		s.logger.Info("post blocked", "post_id", post.ID, "user_id", userID)
		return nil, ErrPostProhibited
	}

	s.index(ctx, post)
	return dto.ToPostResponse(post), nil
}

func (s *postService) GetPost(ctx context.Context, postID uint) (*dto.PostResponse, error) {
	post, err := FindVisiblePost(ctx, s.postRepo, postID)
	if err != nil {
		return nil, err
	}
	return dto.ToPostResponse(post), nil
}

func (s *postService) GetAllPosts(ctx context.Context) ([]*dto.PostResponse, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToPostResponses(posts), nil
}

func (s *postService) GetUserPosts(ctx context.Context, userID uint) ([]*dto.PostResponse, error) {
	posts, err := s.postRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.ToPostResponses(posts), nil
}

func (s *postService) UpdatePost(ctx context.Context, userID, postID uint, req dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := FindVisiblePost(ctx, s.postRepo, postID)
	if err != nil {
		return nil, err
	}

	if post.UserID != userID {
		return nil, ErrNotPostOwner
	}

	title, content := post.Title, post.Content
	if req.Title != nil {
		title = *req.Title
	}
	if req.Content != nil {
		content = *req.Content
	}

	blocked := false
	if req.TouchesText() {
		if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
			return nil, ErrBlankPost
		}
		blocked, err = moderation.Screen(ctx, s.moderation, moderation.PostSubject(title, content))
		if err != nil {
			return nil, err
		}
	}

	post.Title = title
	post.Content = content
	if req.AutoAnswer != nil {
		post.AutoAnswer = *req.AutoAnswer
	}
	if req.Delay != nil {
		post.Delay = req.Delay.Duration()
	}
	if blocked {
		post.Block(time.Now())
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	if blocked {
		s.logger.Info("post blocked on update", "post_id", post.ID, "user_id", userID)
		s.deindex(post.ID)
		return nil, ErrPostProhibited
	}

	s.index(ctx, post)
	return dto.ToPostResponse(post), nil
}

func (s *postService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := FindVisiblePost(ctx, s.postRepo, postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return ErrNotPostOwner
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	s.deindex(postID)
	return nil
}

func (s *postService) index(ctx context.Context, post *entity.Post) {
	if s.meili == nil {
		return
	}

	author := post.User.Username
	if author == "" {
		if reloaded, err := s.postRepo.FindByID(ctx, post.ID); err == nil {
			author = reloaded.User.Username
		}
	}

	if err := s.meili.IndexPost(post, author); err != nil {
		s.logger.Warn("failed to index post", "post_id", post.ID, "error", err)
	}
}

func (s *postService) deindex(postID uint) {
	if s.meili == nil {
		return
	}
	if err := s.meili.DeletePost(postID); err != nil {
		s.logger.Warn("failed to remove post from index", "post_id", postID, "error", err)
	}
}
