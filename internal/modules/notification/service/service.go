package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"anoa.com/swetter/internal/modules/notification/dto"
	"github.com/redis/go-redis/v9"
)

type NotificationService interface {
	// Notify publishes to the recipient's channel. Failures are logged, never returned.
	Notify(ctx context.Context, notification dto.Notification)
	// Subscribe opens the recipient's channel. It returns nil when live delivery is off.
	Subscribe(ctx context.Context, userID uint) *redis.PubSub
}

type notificationService struct {
	redisClient *redis.Client
}

func NewNotificationService(redisClient *redis.Client) NotificationService {
	return &notificationService{
		redisClient: redisClient,
	}
}

func Channel(userID uint) string {
	return fmt.Sprintf("user_notifications:%d", userID)
}

func (s *notificationService) Notify(ctx context.Context, notification dto.Notification) {
	// self-notifications are dropped
	if s.redisClient == nil || notification.UserID == 0 || notification.UserID == notification.ActorID {
		return
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		slog.Warn("failed to encode notification", "error", err)
		return
	}

	if err := s.redisClient.Publish(ctx, Channel(notification.UserID), payload).Err(); err != nil {
		slog.Warn("failed to publish notification", "user_id", notification.UserID, "type", notification.Type, "error", err)
	}
}

func (s *notificationService) Subscribe(ctx context.Context, userID uint) *redis.PubSub {
	if s.redisClient == nil {
		return nil
	}
	return s.redisClient.Subscribe(ctx, Channel(userID))
}
