package redissvc

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisService wraps the shared redis client handed to the packages that
// cache through it.
type RedisService struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisService(rdb *redis.Client, ctx context.Context) *RedisService {
	return &RedisService{
		rdb: rdb,
		ctx: ctx,
	}
}

func (s *RedisService) Rdb() *redis.Client {
	return s.rdb
}

func (s *RedisService) Ctx() context.Context {
	return s.ctx
}

// Barcode lookups dominate the cashier terminal's traffic, so resolved
// products are cached briefly. The TTL bounds staleness between explicit
// invalidations on stock writes.
const productCacheTTL = 30 * time.Second

func productKey(barcode string) string {
	return "producto:" + barcode
}

// CachedProduct returns the cached JSON body for a barcode, or "" on a miss.
func (s *RedisService) CachedProduct(barcode string) string {
	v, err := s.rdb.Get(s.ctx, productKey(barcode)).Result()
	if err != nil {
		return ""
	}
	return v
}

// CacheProduct stores the JSON body served for a barcode.
func (s *RedisService) CacheProduct(barcode string, body []byte) {
	_ = s.rdb.Set(s.ctx, productKey(barcode), body, productCacheTTL).Err()
}

// InvalidateProduct drops a barcode from the cache after a stock or price write.
func (s *RedisService) InvalidateProduct(barcode string) {
	_ = s.rdb.Del(s.ctx, productKey(barcode)).Err()
}
