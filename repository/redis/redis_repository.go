package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Repository defines the session cache used by the auth layer.
type Repository interface {
	SetSession(ctx context.Context, sessionID string, userID uint64, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (uint64, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type redisRepo struct {
	client *goredis.Client
}

// NewRepository wraps an explicitly constructed Redis client. A nil client is
// tolerated so the service can run without a session cache in tests.
func NewRepository(client *goredis.Client) Repository {
	return &redisRepo{client: client}
}

func (r *redisRepo) SetSession(ctx context.Context, sessionID string, userID uint64, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	return r.client.Set(ctx, "session:"+sessionID, userID, ttl).Err()
}

func (r *redisRepo) GetSession(ctx context.Context, sessionID string) (uint64, error) {
	if r.client == nil {
		return 0, nil
	}
	return r.client.Get(ctx, "session:"+sessionID).Uint64()
}

func (r *redisRepo) DeleteSession(ctx context.Context, sessionID string) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, "session:"+sessionID).Err()
}
