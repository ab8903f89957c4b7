package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/notesapp/noteskit/internal/ports"
)

var _ ports.TokenStore = (*Redis)(nil)

// Redis is a durable token store backed by Redis, for deployments where the
// client runs on more than one host and the session must be shared.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis creates a Redis-backed token store.
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

// NewRedisWithPrefix creates a Redis-backed token store with a key prefix.
func NewRedisWithPrefix(client redis.UniversalClient, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) SetAccessToken(ctx context.Context, token string) error {
	return r.set(ctx, accessTokenKey, token)
}

func (r *Redis) GetAccessToken(ctx context.Context) (string, error) {
	return r.get(ctx, accessTokenKey)
}

func (r *Redis) SetRefreshToken(ctx context.Context, token string) error {
	return r.set(ctx, refreshTokenKey, token)
}

func (r *Redis) GetRefreshToken(ctx context.Context) (string, error) {
	return r.get(ctx, refreshTokenKey)
}

func (r *Redis) ClearTokens(ctx context.Context) error {
	if err := r.client.Del(ctx, r.prefix+accessTokenKey, r.prefix+refreshTokenKey).Err(); err != nil {
		return fmt.Errorf("redis del tokens: %w", err)
	}
	return nil
}

func (r *Redis) HasTokens(ctx context.Context) (bool, error) {
	access, err := r.get(ctx, accessTokenKey)
	if err != nil {
		return false, err
	}
	refresh, err := r.get(ctx, refreshTokenKey)
	if err != nil {
		return false, err
	}
	return access != "" && refresh != "", nil
}

func (r *Redis) set(ctx context.Context, key, value string) error {
	full := r.prefix + key
	if value == "" {
		if err := r.client.Del(ctx, full).Err(); err != nil {
			return fmt.Errorf("redis del %s: %w", key, err)
		}
		return nil
	}
	if err := r.client.Set(ctx, full, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}
