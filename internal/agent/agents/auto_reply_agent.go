package agents

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"anoa.com/swetter/internal/agent"
	"anoa.com/swetter/internal/entity"
	moderation "anoa.com/swetter/internal/modules/moderation/service"
	notifDto "anoa.com/swetter/internal/modules/notification/dto"
	notifService "anoa.com/swetter/internal/modules/notification/service"
	"github.com/google/uuid"
)

// ReplyCreator menyimpan balasan hasil model tanpa moderasi ulang.
type ReplyCreator interface {
	CreateGeneratedReply(ctx context.Context, commentID, ownerID uint, content string) (*entity.Reply, error)
}

// AutoReplyJob adalah snapshot data yang dibutuhkan untuk membalas satu komentar.
// Diambil saat komentar dibuat; perubahan post atau komentar setelahnya tidak terlihat.
type AutoReplyJob struct {
	PostID      uint
	PostTitle   string
	PostContent string
	OwnerID     uint

	CommentID       uint
	CommentContent  string
	CommentAuthorID uint

	FireAt time.Time
}

// AutoReplyAgent menjadwalkan balasan otomatis atas nama pemilik post
// untuk setiap komentar yang lolos moderasi pada post dengan auto answer aktif.
type AutoReplyAgent struct {
	// Dependencies
	scheduler           *agent.Scheduler
	moderation          moderation.ModerationService
	replies             ReplyCreator
	notificationService notifService.NotificationService

	// Configuration
	policy agent.RetryPolicy
	logger *slog.Logger
}

// NewAutoReplyAgent membuat instance AutoReplyAgent baru
func NewAutoReplyAgent(
	scheduler *agent.Scheduler,
	moderationService moderation.ModerationService,
	replies ReplyCreator,
	notificationService notifService.NotificationService,
	policy agent.RetryPolicy,
) *AutoReplyAgent {
	return &AutoReplyAgent{
		scheduler:           scheduler,
		moderation:          moderationService,
		replies:             replies,
		notificationService: notificationService,
		policy:              policy,
		logger:              slog.Default().With("component", "auto_reply_agent"),
	}
}

func (a *AutoReplyAgent) GetName() string {
	return "auto_reply_agent"
}

// ScheduleReply mendaftarkan job balasan pada comment.CreatedAt + delay post.
func (a *AutoReplyAgent) ScheduleReply(post *entity.Post, comment *entity.Comment) (uuid.UUID, error) {
	createdAt := comment.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	job := AutoReplyJob{
		PostID:          post.ID,
		PostTitle:       post.Title,
		PostContent:     post.Content,
		OwnerID:         post.UserID,
		CommentID:       comment.ID,
		CommentContent:  comment.Content,
		CommentAuthorID: comment.UserID,
		FireAt:          createdAt.Add(post.ReplyDelay()),
	}

	return a.scheduler.ScheduleOnce(&autoReplyRun{agent: a, job: job}, job.FireAt)
}

// autoReplyRun mengikat snapshot job dengan agent yang mengeksekusinya.
type autoReplyRun struct {
	agent *AutoReplyAgent
	job   AutoReplyJob
}

func (r *autoReplyRun) GetName() string {
	return r.agent.GetName()
}

func (r *autoReplyRun) Execute(ctx context.Context) error {
	a, j := r.agent, r.job

	text, err := agent.Retry(ctx, a.policy, func(attempt uint) (string, error) {
		return a.moderation.GenerateReply(ctx, j.PostTitle, j.PostContent, j.CommentContent)
	}, func(err error, next time.Duration) {
		a.logger.Warn("reply generation failed, retrying",
			"comment_id", j.CommentID, "retry_in", next, "error", err)
	})
	if err != nil {
		return fmt.Errorf("generate reply for comment %d: %w", j.CommentID, err)
	}

	reply, err := a.replies.CreateGeneratedReply(ctx, j.CommentID, j.OwnerID, text)
	if err != nil {
		return fmt.Errorf("store reply for comment %d: %w", j.CommentID, err)
	}

	a.logger.Info("auto reply posted", "comment_id", j.CommentID, "reply_id", reply.ID, "post_id", j.PostID)

	if a.notificationService != nil {
		a.notificationService.Notify(ctx, notifDto.Notification{
			Type:      notifDto.TypeAutoReply,
			UserID:    j.CommentAuthorID,
			ActorID:   j.OwnerID,
			PostID:    j.PostID,
			CommentID: j.CommentID,
			ReplyID:   reply.ID,
			Message:   fmt.Sprintf("The author of '%s' replied to your comment", j.PostTitle),
			CreatedAt: reply.CreatedAt,
		})
	}

	return nil
}
