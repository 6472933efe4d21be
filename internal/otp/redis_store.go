package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore keeps entries in Redis and lets key expiry drop stale codes.
// Failed attempts live in a counter key that expires with the entry.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisStore creates a RedisStore writing keys under keyPrefix.
func NewRedisStore(client *redis.Client, keyPrefix string, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, keyPrefix: keyPrefix, logger: logger}
}

func (s *RedisStore) key(phone string) string {
	return s.keyPrefix + phone
}

func (s *RedisStore) attemptsKey(phone string) string {
	return s.keyPrefix + phone + ":attempts"
}

func (s *RedisStore) Save(ctx context.Context, phone string, entry Entry, ttl time.Duration) error {
	entry.Attempts = 0
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal otp entry: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(phone), data, ttl)
		pipe.Del(ctx, s.attemptsKey(phone))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	s.logger.Debug("Stored otp",
		zap.String("key", s.key(phone)),
		zap.Duration("ttl", ttl),
	)
	return nil
}

func (s *RedisStore) Get(ctx context.Context, phone string) (Entry, error) {
	vals, err := s.client.MGet(ctx, s.key(phone), s.attemptsKey(phone)).Result()
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read otp: %w", err)
	}

	raw, ok := vals[0].(string)
	if !ok {
		return Entry{}, ErrNotFound
	}

	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return Entry{}, fmt.Errorf("failed to unmarshal otp entry: %w", err)
	}

	if count, ok := vals[1].(string); ok {
		entry.Attempts, err = strconv.Atoi(count)
		if err != nil {
			return Entry{}, fmt.Errorf("failed to parse otp attempts: %w", err)
		}
	}
	return entry, nil
}

func (s *RedisStore) RecordFailure(ctx context.Context, phone string) (int, error) {
	ttl, err := s.client.PTTL(ctx, s.key(phone)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read otp ttl: %w", err)
	}
	// PTTL is negative when the key is missing or has no expiry.
	if ttl <= 0 {
		return 0, ErrNotFound
	}

	var incr *redis.IntCmd
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, s.attemptsKey(phone))
		pipe.PExpire(ctx, s.attemptsKey(phone), ttl)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to record otp attempt: %w", err)
	}
	return int(incr.Val()), nil
}

func (s *RedisStore) Delete(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, s.key(phone), s.attemptsKey(phone)).Err(); err != nil {
		return fmt.Errorf("failed to delete otp: %w", err)
	}
	return nil
}
