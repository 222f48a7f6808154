package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const PageCacheKeyPrefix = "pagecache:"

// PageCacheRepository keeps rendered listing pages for a short, fixed
// window. Staleness inside the window is accepted; nothing invalidates
// entries on write.
type PageCacheRepository struct{}

func (r *PageCacheRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := Client.Get(ctx, PageCacheKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (r *PageCacheRepository) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	return Client.Set(ctx, PageCacheKeyPrefix+key, body, ttl).Err()
}
