package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
)

const keyPrefix = "shiftreport:session:"

// RedisStore keeps sessions in Redis so they survive restarts and are shared
// between instances. Expiry is delegated to Redis key TTLs.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// DialRedis connects to addr and verifies the connection.
func DialRedis(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return NewRedisStore(client, ttl), nil
}

// Put registers a token for an employee.
func (s *RedisStore) Put(ctx context.Context, token, employeeID string) error {
	if err := s.client.Set(ctx, keyPrefix+token, employeeID, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Get resolves a token to its employee id.
func (s *RedisStore) Get(ctx context.Context, token string) (string, error) {
	employeeID, err := s.client.Get(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: unknown session", models.ErrUnauthorized)
	}
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	return employeeID, nil
}

// Delete removes a token.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
