package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"anoa.com/swetter/internal/agent/providers"
	"anoa.com/swetter/pkg/apperror"
)

type Kind string

const (
	KindPost    Kind = "post"
	KindComment Kind = "comment"
	KindReply   Kind = "reply"
)

// Subject is the content sent for screening. Posts carry a title and a body,
// comments and replies only a body.
type Subject struct {
	Kind    Kind
	Title   string
	Content string
}

func PostSubject(title, content string) Subject {
	return Subject{Kind: KindPost, Title: title, Content: content}
}

func CommentSubject(content string) Subject {
	return Subject{Kind: KindComment, Content: content}
}

func ReplySubject(content string) Subject {
	return Subject{Kind: KindReply, Content: content}
}

type Verdict int

const (
	Allowed Verdict = iota
	Blocked
	Unavailable
)

func (v Verdict) String() string {
	switch v {
	case Allowed:
		return "allowed"
	case Blocked:
		return "blocked"
	default:
		return "unavailable"
	}
}

var (
	// ErrInvalidSubject means the caller built a Subject with the wrong field set.
	ErrInvalidSubject = apperror.Wrap(apperror.ErrInternal, "moderation: invalid subject")
	// ErrUnavailable means the model did not produce usable text.
	ErrUnavailable = errors.New("moderation: text model unavailable")
)

type ModerationService interface {
	// Classify asks the model whether the subject contains abusive content.
	// The error is non-nil only for an invalid subject; model failures are reported as Unavailable.
	Classify(ctx context.Context, subject Subject) (Verdict, error)

	// GenerateReply writes a reply to a comment on behalf of the post owner.
	GenerateReply(ctx context.Context, postTitle, postContent, commentContent string) (string, error)
}

type moderationService struct {
	llm     providers.LLMProvider
	timeout time.Duration
	logger  *slog.Logger
}

// NewModerationService wraps a text model. A zero timeout leaves calls bounded only by ctx.
func NewModerationService(llm providers.LLMProvider, timeout time.Duration) ModerationService {
	return &moderationService{
		llm:     llm,
		timeout: timeout,
		logger:  slog.Default().With("component", "moderation"),
	}
}

func (s Subject) validate() error {
	switch s.Kind {
	case KindPost:
		if strings.TrimSpace(s.Title) == "" || strings.TrimSpace(s.Content) == "" {
			return fmt.Errorf("%w: post needs both title and content", ErrInvalidSubject)
		}
	case KindComment, KindReply:
		if strings.TrimSpace(s.Content) == "" {
			return fmt.Errorf("%w: %s needs content", ErrInvalidSubject, s.Kind)
		}
		if s.Title != "" {
			return fmt.Errorf("%w: %s has no title", ErrInvalidSubject, s.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidSubject, s.Kind)
	}
	return nil
}

func (s *moderationService) Classify(ctx context.Context, subject Subject) (Verdict, error) {
	if err := subject.validate(); err != nil {
		return Unavailable, err
	}

	text, err := s.generate(ctx, "classify", classifyPrompt(subject))
	verdict := parseVerdict(text, err)
	if err != nil {
		s.logger.Warn("classification failed", "kind", subject.Kind, "error", err)
	}
	classifyCount.WithLabelValues(string(subject.Kind), verdict.String()).Inc()

	return verdict, nil
}

// parseVerdict blocks only when the first token of the answer is exactly "True".
func parseVerdict(text string, err error) Verdict {
	if err != nil {
		return Unavailable
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Unavailable
	}
	if fields[0] == "True" {
		return Blocked
	}
	return Allowed
}

func (s *moderationService) GenerateReply(ctx context.Context, postTitle, postContent, commentContent string) (string, error) {
	text, err := s.generate(ctx, "generate", replyPrompt(postTitle, postContent, commentContent))
	if err != nil {
		generateCount.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	text = strings.NewReplacer("\r", "", "\n", "").Replace(text)
	if strings.TrimSpace(text) == "" {
		generateCount.WithLabelValues("empty").Inc()
		return "", fmt.Errorf("%w: empty answer", ErrUnavailable)
	}

	generateCount.WithLabelValues("ok").Inc()
	return text, nil
}

func (s *moderationService) generate(ctx context.Context, op, prompt string) (text string, err error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// a misbehaving provider must not take the request goroutine down with it
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()

	start := time.Now()
	text, err = s.llm.GenerateText(ctx, prompt)
	llmDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	return text, err
}

// Screen runs Classify and maps the verdict onto pipeline errors.
// It returns blocked=true for prohibited content and ErrServiceUnavailable when no decision could be made.
func Screen(ctx context.Context, svc ModerationService, subject Subject) (bool, error) {
	verdict, err := svc.Classify(ctx, subject)
	if err != nil {
		return false, err
	}

	switch verdict {
	case Blocked:
		return true, nil
	case Allowed:
		return false, nil
	default:
		return false, apperror.Wrap(apperror.ErrServiceUnavailable, "Please, try again later")
	}
}
