package achievement

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// UnlockedChannel is the redis channel unlock events are published on
const UnlockedChannel = "achievements:unlocked"

// Publisher announces newly unlocked achievements
type Publisher interface {
	PublishUnlocked(ctx context.Context, a *Achievement) error
}

// UnlockedEvent is the JSON payload of an unlock announcement
type UnlockedEvent struct {
	UserID     uint      `json:"user_id"`
	Type       Type      `json:"type"`
	Name       string    `json:"name"`
	Icon       string    `json:"icon"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// RedisPublisher publishes unlock events over redis pub/sub
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher creates a publisher on UnlockedChannel
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client, channel: UnlockedChannel}
}

// PublishUnlocked implements Publisher
func (p *RedisPublisher) PublishUnlocked(ctx context.Context, a *Achievement) error {
	payload, err := json.Marshal(UnlockedEvent{
		UserID:     a.UserID,
		Type:       a.AchievementType,
		Name:       a.AchievementName,
		Icon:       a.Icon,
		UnlockedAt: a.UnlockedAt,
	})
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, payload).Err()
}
