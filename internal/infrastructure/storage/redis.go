package storage

import (
	"context"
	"errors"
	"fmt"

	domainRepo "patient-registration/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// nextIDScript reads the counter, falls back to the seed when it is missing,
// zero or not a number, and stores the following value in one round trip.
//
// KEYS[1] = counter key, ARGV[1] = seed
var nextIDScript = redis.NewScript(`
	local current = tonumber(redis.call('GET', KEYS[1]))
	if not current or current == 0 then
		current = tonumber(ARGV[1])
	end
	redis.call('SET', KEYS[1], current + 1)
	return current
`)

type redisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage keeps each item as a plain redis string under prefix+key.
func NewRedisStorage(client *redis.Client, prefix string) domainRepo.Storage {
	return &redisStorage{client: client, prefix: prefix}
}

func (s *redisStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (s *redisStorage) SetItem(ctx context.Context, key string, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

type redisIDCounter struct {
	client *redis.Client
	key    string
	seed   int64
}

// NewRedisIDCounter is an IDCounterRepository whose read-and-increment is
// atomic, so several instances sharing one redis never hand out the same id.
func NewRedisIDCounter(client *redis.Client, key string, seed int64) domainRepo.IDCounterRepository {
	return &redisIDCounter{client: client, key: key, seed: seed}
}

func (c *redisIDCounter) Next(ctx context.Context) (int64, error) {
	n, err := nextIDScript.Run(ctx, c.client, []string{c.key}, c.seed).Int64()
	if err != nil {
		return 0, fmt.Errorf("next patient id: %w", err)
	}
	return n, nil
}
