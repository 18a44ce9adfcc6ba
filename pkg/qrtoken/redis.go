package qrtoken

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix   = "qr:"
	mintRetries = 3
)

// RedisIssuer stores token -> booking id pairs in Redis. A zero ttl keeps tokens
// forever; a positive ttl lets them expire, after which Resolve reports
// ErrUnknownToken.
type RedisIssuer struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisIssuer(client *redis.Client, ttl time.Duration) *RedisIssuer {
	return &RedisIssuer{client: client, ttl: ttl}
}

func (i *RedisIssuer) Mint(ctx context.Context, bookingID string) (string, error) {
	for n := 0; n < mintRetries; n++ {
		token := newToken()
		ok, err := i.client.SetNX(ctx, keyPrefix+token, bookingID, i.ttl).Result()
		if err != nil {
			return "", fmt.Errorf("redis setnx: %w", err)
		}
		if ok {
			return token, nil
		}
	}
	return "", errors.New("qr token collision, retries exhausted")
}

func (i *RedisIssuer) Resolve(ctx context.Context, token string) (string, error) {
	id, err := i.client.Get(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrUnknownToken
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return id, nil
}

func (i *RedisIssuer) Revoke(ctx context.Context, token string) error {
	if err := i.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
