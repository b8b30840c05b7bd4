package utils

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisClient struct {
	inner *redis.Client
}

func GetRedisClient() *RedisClient {
	return &RedisClient{
		inner: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
			Password: os.Getenv("REDIS_PASSWD"),
			DB:       0, // use default DB
		})}
}

func SeoStatsKey(keyword string) string {
	return fmt.Sprintf("seostats_%s", keyword)
}

// MGetValues fetches multiple keys in one round trip. Missing keys yield ""
// in the returned slice, in the same order as keys.
func (r *RedisClient) MGetValues(ctx context.Context, keys []string) ([]string, error) {
	res, err := r.inner.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(res))
	for _, v := range res {
		if v == nil {
			values = append(values, "")
			continue
		}
		values = append(values, v.(string))
	}
	return values, nil
}

// SetValue stores a single key with expiration.
func (r *RedisClient) SetValue(ctx context.Context, key string, value string, expire time.Duration) error {
	return r.inner.Set(ctx, key, value, expire).Err()
}
