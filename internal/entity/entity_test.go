package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockSetsTimestampOnce(t *testing.T) {
	var c Comment
	assert.False(t, c.IsBlocked())
	assert.Nil(t, c.BlockedAt)

	first := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	c.Block(first)
	require.True(t, c.IsBlocked())
	require.NotNil(t, c.BlockedAt)
	assert.Equal(t, first, *c.BlockedAt)

	c.Block(first.Add(time.Hour))
	assert.Equal(t, first, *c.BlockedAt)
}

func TestReplyDelay(t *testing.T) {
	assert.Equal(t, 5*time.Second, (&Post{Delay: 5 * time.Second}).ReplyDelay())
	assert.Equal(t, time.Duration(0), (&Post{}).ReplyDelay())
	assert.Equal(t, DefaultPostDelay, (&Post{Delay: -time.Second}).ReplyDelay())
}
