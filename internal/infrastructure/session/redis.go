package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisPersistence stores one JSON identity record per session ID.
// Key format: session:<sid>, expiring after ttl.
type RedisPersistence struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPersistence wraps the given Redis client. ttl bounds how long a
// session survives without being re-written by a login.
func NewRedisPersistence(client *redis.Client, ttl time.Duration) *RedisPersistence {
	return &RedisPersistence{client: client, ttl: ttl}
}

func (p *RedisPersistence) Load(ctx context.Context, sid string) ([]byte, error) {
	record, err := p.client.Get(ctx, keyPrefix+sid).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return record, nil
}

func (p *RedisPersistence) Save(ctx context.Context, sid string, record []byte) error {
	if err := p.client.Set(ctx, keyPrefix+sid, record, p.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (p *RedisPersistence) Delete(ctx context.Context, sid string) error {
	if err := p.client.Del(ctx, keyPrefix+sid).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
