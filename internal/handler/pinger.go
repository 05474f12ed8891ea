package handler

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisPinger adapts a redis client to Pinger.
type RedisPinger struct {
	Client *redis.Client
}

// PingContext implements Pinger.
func (p RedisPinger) PingContext(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}
