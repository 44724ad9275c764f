package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// RedisStore shares fixed-window counters between server instances.
type RedisStore struct {
	client rueidis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisStore(client rueidis.Client, prefix string, limit int, window time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (s *RedisStore) Allow(ctx context.Context, key string) (bool, error) {
	slot := s.now().UnixNano() / int64(s.window)
	redisKey := fmt.Sprintf("%s:%s:%d", s.prefix, key, slot)

	count, err := s.client.Do(ctx, s.client.B().Incr().Key(redisKey).Build()).AsInt64()
	if err != nil {
		return false, err
	}

	if count == 1 {
		expire := s.client.B().Expire().Key(redisKey).Seconds(int64(s.window/time.Second) + 1).Build()
		if err := s.client.Do(ctx, expire).Error(); err != nil {
			return false, err
		}
	}

	return count <= int64(s.limit), nil
}
