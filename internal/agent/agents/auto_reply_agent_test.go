package agents

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"anoa.com/swetter/internal/agent"
	"anoa.com/swetter/internal/entity"
	moderation "anoa.com/swetter/internal/modules/moderation/service"
	notifDto "anoa.com/swetter/internal/modules/notification/dto"
	"anoa.com/swetter/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReplies struct {
	mu      sync.Mutex
	err     error
	created []entity.Reply
}

func (f *fakeReplies) CreateGeneratedReply(ctx context.Context, commentID, ownerID uint, content string) (*entity.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	reply := entity.Reply{ID: uint(len(f.created) + 1), CommentID: commentID, UserID: ownerID, Content: content, CreatedAt: time.Now()}
	f.created = append(f.created, reply)
	return &reply, nil
}

func (f *fakeReplies) Created() []entity.Reply {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Reply(nil), f.created...)
}

type fixture struct {
	scheduler *agent.Scheduler
	llm       *testutil.FakeLLM
	replies   *fakeReplies
	notifier  *testutil.Notifier
	agent     *AutoReplyAgent
}

func newFixture(t *testing.T, llm *testutil.FakeLLM, policy agent.RetryPolicy) *fixture {
	t.Helper()

	f := &fixture{
		scheduler: agent.NewScheduler(),
		llm:       llm,
		replies:   &fakeReplies{},
		notifier:  &testutil.Notifier{},
	}
	f.agent = NewAutoReplyAgent(f.scheduler, moderation.NewModerationService(llm, time.Second), f.replies, f.notifier, policy)
	f.scheduler.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = f.scheduler.Stop(ctx)
	})
	return f
}

func (f *fixture) waitState(t *testing.T, id uuid.UUID, want agent.JobState) {
	t.Helper()
	require.Eventually(t, func() bool {
		st, _ := f.scheduler.State(id)
		return st == want
	}, 3*time.Second, 10*time.Millisecond)
}

func samplePost(delay time.Duration) *entity.Post {
	return &entity.Post{ID: 7, UserID: 1, Title: "Go tips", Content: "Use contexts", AutoAnswer: true, Delay: delay}
}

func sampleComment() *entity.Comment {
	return &entity.Comment{ID: 11, PostID: 7, UserID: 2, Content: "Nice post", CreatedAt: time.Now()}
}

func TestScheduleReplyPostsAsOwner(t *testing.T) {
	f := newFixture(t, testutil.KeywordLLM(), agent.RetryPolicy{Interval: 10 * time.Millisecond, Multiplier: 1})

	id, err := f.agent.ScheduleReply(samplePost(50*time.Millisecond), sampleComment())
	require.NoError(t, err)
	f.waitState(t, id, agent.StateSucceeded)

	created := f.replies.Created()
	require.Len(t, created, 1)
	assert.Equal(t, uint(11), created[0].CommentID)
	assert.Equal(t, uint(1), created[0].UserID)
	assert.Equal(t, "Thank you for your comment!", created[0].Content)

	sent := f.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, notifDto.TypeAutoReply, sent[0].Type)
	assert.Equal(t, uint(2), sent[0].UserID)
	assert.Equal(t, uint(1), sent[0].ActorID)
}

func TestScheduleReplyWaitsForDelay(t *testing.T) {
	f := newFixture(t, testutil.KeywordLLM(), agent.DefaultRetryPolicy())

	id, err := f.agent.ScheduleReply(samplePost(time.Hour), sampleComment())
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	st, ok := f.scheduler.State(id)
	require.True(t, ok)
	assert.Equal(t, agent.StateScheduled, st)
	assert.Empty(t, f.replies.Created())
	assert.Zero(t, f.llm.Calls())
}

func TestReplyRetriesUntilModelRecovers(t *testing.T) {
	llm := testutil.DownLLM()
	f := newFixture(t, llm, agent.RetryPolicy{Interval: 10 * time.Millisecond, Multiplier: 1})

	id, err := f.agent.ScheduleReply(samplePost(0), sampleComment())
	require.NoError(t, err)

	require.Eventually(t, func() bool { return llm.Calls() >= 3 }, 3*time.Second, 5*time.Millisecond)
	st, _ := f.scheduler.State(id)
	assert.Equal(t, agent.StateFiring, st)
	assert.Empty(t, f.replies.Created())

	llm.SetRespond(func(string) (string, error) { return "Glad you liked it", nil })
	f.waitState(t, id, agent.StateSucceeded)

	created := f.replies.Created()
	require.Len(t, created, 1)
	assert.Equal(t, "Glad you liked it", created[0].Content)
}

func TestReplyAbandonedAfterMaxAttempts(t *testing.T) {
	llm := testutil.DownLLM()
	f := newFixture(t, llm, agent.RetryPolicy{Interval: 5 * time.Millisecond, Multiplier: 1, MaxAttempts: 3})

	id, err := f.agent.ScheduleReply(samplePost(0), sampleComment())
	require.NoError(t, err)

	f.waitState(t, id, agent.StateAbandoned)
	assert.Equal(t, 3, llm.Calls())
	assert.Empty(t, f.replies.Created())
	assert.Empty(t, f.notifier.Sent())
}

func TestReplyAbandonedWhenStoreFails(t *testing.T) {
	f := newFixture(t, testutil.KeywordLLM(), agent.DefaultRetryPolicy())
	f.replies.err = errors.New("comment gone")

	id, err := f.agent.ScheduleReply(samplePost(0), sampleComment())
	require.NoError(t, err)

	f.waitState(t, id, agent.StateAbandoned)
	assert.Empty(t, f.notifier.Sent())
}

func TestJobSnapshotIgnoresLaterEdits(t *testing.T) {
	llm := testutil.KeywordLLM()
	f := newFixture(t, llm, agent.DefaultRetryPolicy())

	post := samplePost(50 * time.Millisecond)
	comment := sampleComment()
	id, err := f.agent.ScheduleReply(post, comment)
	require.NoError(t, err)

	post.Title = "Edited"
	comment.Content = "Edited comment"

	f.waitState(t, id, agent.StateSucceeded)
	prompts := llm.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "Go tips")
	assert.Contains(t, prompts[0], "Nice post")
}
