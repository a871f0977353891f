package service

import (
	"context"
	"testing"
	"time"

	"anoa.com/swetter/internal/entity"
	"anoa.com/swetter/internal/modules/stat/repository"
	userRepo "anoa.com/swetter/internal/modules/user/repository"
	"anoa.com/swetter/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedPending int

func (p fixedPending) Pending() int { return int(p) }

func TestGetStatsSkipsBlockedContent(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "alice")

	visible := &entity.Post{UserID: user.ID, Title: "a", Content: "b"}
	require.NoError(t, db.Omit("User").Create(visible).Error)

	hidden := &entity.Post{UserID: user.ID, Title: "c", Content: "d"}
	hidden.Block(time.Now())
	require.NoError(t, db.Omit("User").Create(hidden).Error)

	comment := &entity.Comment{PostID: visible.ID, UserID: user.ID, Content: "hi"}
	require.NoError(t, db.Omit("Post", "User").Create(comment).Error)

	svc := NewStatService(userRepo.NewUserRepository(db), repository.NewStatRepository(db), fixedPending(2))
	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalPosts)
	assert.Equal(t, int64(1), stats.TotalComments)
	assert.Equal(t, int64(0), stats.TotalReplies)
	assert.Equal(t, 2, stats.PendingAutoReplies)
}
