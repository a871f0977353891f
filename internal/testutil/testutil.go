package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"anoa.com/swetter/internal/bootstrap"
	"anoa.com/swetter/internal/entity"
	notifDto "anoa.com/swetter/internal/modules/notification/dto"
	"anoa.com/swetter/pkg/database"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite://:memory:")
	require.NoError(t, err)
	require.NoError(t, bootstrap.Migrate(db))

	t.Cleanup(func() {
		if sqldb, err := db.DB(); err == nil {
			_ = sqldb.Close()
		}
	})
	return db
}

// CreateUser inserts a user with a cheap password hash.
func CreateUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{Username: username, PasswordHash: string(hash)}
	require.NoError(t, db.Create(user).Error)
	return user
}

var ErrFakeDown = errors.New("fake llm is down")

// FakeLLM is a scripted text model. Respond decides every answer.
type FakeLLM struct {
	mu      sync.Mutex
	respond func(prompt string) (string, error)
	prompts []string
}

func NewFakeLLM(respond func(prompt string) (string, error)) *FakeLLM {
	return &FakeLLM{respond: respond}
}

// KeywordLLM answers "True" to classification prompts containing any of the
// given words, "False" to the rest, and a canned reply to generation prompts.
func KeywordLLM(blockWords ...string) *FakeLLM {
	return NewFakeLLM(func(prompt string) (string, error) {
		if IsReplyPrompt(prompt) {
			return "Thank you for\n your comment!", nil
		}
		lower := strings.ToLower(prompt)
		for _, w := range blockWords {
			if strings.Contains(lower, strings.ToLower(w)) {
				return "True", nil
			}
		}
		return "False", nil
	})
}

// DownLLM fails every call.
func DownLLM() *FakeLLM {
	return NewFakeLLM(func(string) (string, error) {
		return "", ErrFakeDown
	})
}

func IsReplyPrompt(prompt string) bool {
	return strings.Contains(prompt, "on behalf of the creator of the post")
}

func (f *FakeLLM) GenerateText(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	respond := f.respond
	f.mu.Unlock()

	return respond(prompt)
}

// SetRespond swaps the script, used to bring a fake model back up mid-test.
func (f *FakeLLM) SetRespond(respond func(prompt string) (string, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.respond = respond
}

func (f *FakeLLM) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *FakeLLM) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

func (f *FakeLLM) Close() {}

// Notifier records notifications instead of publishing them.
type Notifier struct {
	mu   sync.Mutex
	sent []notifDto.Notification
}

func (n *Notifier) Notify(ctx context.Context, notification notifDto.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
}

func (n *Notifier) Subscribe(ctx context.Context, userID uint) *redis.PubSub {
	return nil
}

func (n *Notifier) Sent() []notifDto.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifDto.Notification(nil), n.sent...)
}
