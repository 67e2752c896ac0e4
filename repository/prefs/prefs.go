package prefs

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"
	redisclient "github.com/rescueops/admin-console/cmd/redis"
)

// Repository persists small console preferences, currently just the
// display locale under a single key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type redis struct {
}

// NewRepository returns a redis-backed preferences Repository
func NewRepository() Repository {
	return &redis{}
}

// Get retrieves a preference value; a missing client or key yields "".
func (r *redis) Get(ctx context.Context, key string) (string, error) {
	client := redisclient.Get()
	if client == nil {
		return "", nil
	}
	val, err := client.Get(ctx, "pref:"+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores a preference without expiration
func (r *redis) Set(ctx context.Context, key, value string) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Set(ctx, "pref:"+key, value, 0).Err()
}

// Delete removes a preference
func (r *redis) Delete(ctx context.Context, key string) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Del(ctx, "pref:"+key).Err()
}
