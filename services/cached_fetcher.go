package services

import (
	"context"
	"fmt"
	"time"

	"l1board/models"
)

// CachedFetcher is a read-through cache in front of a MetricsFetcher. Two
// sessions asking for the same address/range/bucket inside the TTL share one
// upstream call's result. Cancellation still flows through: the cache lookup
// and the upstream fetch both take the request context.
type CachedFetcher struct {
	inner MetricsFetcher
	cache *CacheService
	ttl   time.Duration
}

func NewCachedFetcher(inner MetricsFetcher, cache *CacheService, ttl time.Duration) *CachedFetcher {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CachedFetcher{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

func (f *CachedFetcher) FetchMetrics(ctx context.Context, address string, start, end time.Time, bucket models.TimeUnit) (*models.MetricsResult, error) {
	key := fmt.Sprintf("metrics:%s:%d:%d:%s", address, start.UnixMilli(), end.UnixMilli(), bucket)

	var cached models.MetricsResult
	if f.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := f.inner.FetchMetrics(ctx, address, start, end, bucket)
	if err != nil {
		return nil, err
	}

	f.cache.Set(ctx, key, result, f.ttl)
	return result, nil
}
