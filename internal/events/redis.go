package events

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher is the slice of *redis.Client the bridge needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisBridge mirrors hub events onto a Redis channel so other services
// (a bot worker, a second dashboard) can follow the engine.
type RedisBridge struct {
	Hub     *Hub
	Client  Publisher
	Channel string
	Timeout time.Duration
}

// DialRedis parses url, connects and pings.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// Run forwards domain events until ctx is cancelled. Publish failures are
// logged and the event is dropped.
func (b *RedisBridge) Run(ctx context.Context) {
	ch := b.Hub.Subscribe(TypeJobsScraped, TypeJobAnalyzed, TypeConfigReloaded)
	defer b.Hub.Unsubscribe(ch)

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			pctx, cancel := context.WithTimeout(ctx, timeout)
			err := b.Client.Publish(pctx, b.Channel, msg.Data).Err()
			cancel()
			if err != nil {
				log.Printf("[events] level=warn msg=%q channel=%s type=%s err=%v", "redis publish failed", b.Channel, msg.Type, err)
			}
		}
	}
}
