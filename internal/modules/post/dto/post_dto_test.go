package dto

import (
	"encoding/json"
	"testing"
	"time"

	"anoa.com/swetter/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDelay(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"00:01:00", time.Minute, true},
		{"01:02:03", time.Hour + 2*time.Minute + 3*time.Second, true},
		{"00:00:00", 0, true},
		{"90s", 90 * time.Second, true},
		{"23:59:59", 24*time.Hour - time.Second, true},
		{"24:00:00", 0, false},
		{"00:60:00", 0, false},
		{"-1s", 0, false},
		{"soon", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDelay(tc.in)
			if !tc.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Duration())
		})
	}
}

func TestDelayJSON(t *testing.T) {
	var req CreatePostRequest
	require.NoError(t, json.Unmarshal([]byte(`{"post_title":"t","post_content":"c","post_delay":"00:00:05"}`), &req))
	require.NotNil(t, req.Delay)
	assert.Equal(t, 5*time.Second, req.Delay.Duration())

	assert.Error(t, json.Unmarshal([]byte(`{"post_delay":5}`), &req))

	body, err := json.Marshal(ToPostResponse(&entity.Post{ID: 1, Title: "t", Delay: 90 * time.Second}))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"post_delay":"00:01:30"`)
}

func TestUpdateTouchesText(t *testing.T) {
	title := "new"
	auto := true

	assert.True(t, UpdatePostRequest{Title: &title}.TouchesText())
	assert.False(t, UpdatePostRequest{AutoAnswer: &auto}.TouchesText())
}
