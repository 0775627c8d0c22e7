package live

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultChannel = "barberqueue:queue-changed"
	refreshTimeout = 5 * time.Second
)

// Publisher announces that a barber's waiting list changed.
type Publisher interface {
	Publish(ctx context.Context, barberID uint) error
}

// LocalPublisher refreshes the in-process hub in the background.
type LocalPublisher struct {
	hub *Hub
}

func NewLocalPublisher(hub *Hub) *LocalPublisher {
	return &LocalPublisher{hub: hub}
}

func (p *LocalPublisher) Publish(ctx context.Context, barberID uint) error {
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		p.hub.Refresh(ctx, barberID)
	}()
	return nil
}

// RedisRelay fans change notices out to every API instance. Each instance
// runs Run to refresh its own hub.
type RedisRelay struct {
	client  *redis.Client
	hub     *Hub
	channel string
}

func NewRedisRelay(client *redis.Client, hub *Hub, channel string) *RedisRelay {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisRelay{client: client, hub: hub, channel: channel}
}

func (r *RedisRelay) Publish(ctx context.Context, barberID uint) error {
	if err := r.client.Publish(ctx, r.channel, strconv.FormatUint(uint64(barberID), 10)).Err(); err != nil {
		return fmt.Errorf("publish queue change: %w", err)
	}
	return nil
}

// Run listens until ctx is done.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}
	slog.Info("live relay subscribed", "channel", r.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			id, err := strconv.ParseUint(msg.Payload, 10, 64)
			if err != nil {
				slog.Warn("live relay: bad payload", "payload", msg.Payload)
				continue
			}
			refreshCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
			r.hub.Refresh(refreshCtx, uint(id))
			cancel()
		}
	}
}

// NopPublisher is used where nobody listens, e.g. the CLI.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, uint) error { return nil }

var (
	_ Publisher = (*LocalPublisher)(nil)
	_ Publisher = (*RedisRelay)(nil)
	_ Publisher = NopPublisher{}
)
