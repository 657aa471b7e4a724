package kv

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists collections in Redis. Enabled when REDIS_ADDR is set
// (see config.InitRedis); values have no TTL, stale carts are swept by the
// cron job instead.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(key string) (string, bool) {
	val, err := s.client.Get(context.Background(), key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (s *RedisStore) Set(key, value string) error {
	return s.client.Set(context.Background(), key, value, 0).Err()
}

func (s *RedisStore) Remove(key string) error {
	return s.client.Del(context.Background(), key).Err()
}
