package push

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/internal/utils"
	"github.com/go-redis/redis/v8"
)

// RedisPush publishes notifications to a per-user pub/sub channel. Clients
// subscribe to their own channel for live delivery; the database remains the
// source of truth.
type RedisPush struct {
	client *redis.Client
}

func NewRedisPush() *RedisPush {
	return &RedisPush{
		client: redis.NewClient(&redis.Options{
			Addr:     utils.GetConfig("REDIS_ADDR"),
			Password: utils.GetConfig("REDIS_PASSWORD"),
		}),
	}
}

func (p *RedisPush) Push(ctx context.Context, userID string, notification *domain.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, fmt.Sprintf("user:%s", userID), payload).Err()
}
