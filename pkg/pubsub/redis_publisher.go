package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher publishes over a dedicated Redis connection owned by
// this value. go-redis reconnects on demand, so a broker outage fails
// individual publishes instead of wedging the processor.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(addr, password string) (*RedisPublisher, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("redis addr required")
	}
	return &RedisPublisher{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
	}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload any) error {
	message, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := p.client.Publish(ctx, topic, message).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
