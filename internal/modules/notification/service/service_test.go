package service

import (
	"context"
	"testing"
	"time"

	"anoa.com/swetter/internal/modules/notification/dto"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNotifyWithoutRedisIsNoop(t *testing.T) {
	svc := NewNotificationService(nil)

	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), dto.Notification{Type: dto.TypeNewComment, UserID: 1, ActorID: 2})
	})
	assert.Nil(t, svc.Subscribe(context.Background(), 1))
}

func TestNotifySwallowsRedisErrors(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	svc := NewNotificationService(rdb)
	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), dto.Notification{Type: dto.TypeNewReply, UserID: 1, ActorID: 2})
	})
}

func TestChannel(t *testing.T) {
	assert.Equal(t, "user_notifications:42", Channel(42))
}
