package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catalog-service/services"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	ProductListCachePrefix = "catalog:products:v:"
	CacheVersionKey        = "catalog:products:version"
)

// CacheManager caches product listing pages in Redis. Keys embed a version
// counter; any catalog mutation bumps the version, implicitly invalidating
// every cached page. A nil manager disables caching.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(redis *redis.Client) *CacheManager {
	return &CacheManager{
		redis: redis,
		ttl:   DefaultCacheTTL,
	}
}

// GetProductList retrieves a cached listing page.
func (cm *CacheManager) GetProductList(ctx context.Context, q string, filters services.ProductFilters, page, limit int) (*services.ProductPage, bool) {
	if cm == nil {
		return nil, false
	}
	version, err := cm.getCacheVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	cacheKey := cm.listCacheKey(version, q, filters, page, limit)
	cachedData, err := cm.redis.Get(ctx, cacheKey).Result()
	if err != nil {
		return nil, false
	}

	var pageData services.ProductPage
	if err := json.Unmarshal([]byte(cachedData), &pageData); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return &pageData, true
}

// SetProductListAsync caches a listing page without blocking the response.
func (cm *CacheManager) SetProductListAsync(q string, filters services.ProductFilters, page, limit int, pageData *services.ProductPage) {
	if cm == nil {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(bgCtx)
		if err != nil || version == 0 {
			return
		}

		cacheKey := cm.listCacheKey(version, q, filters, page, limit)
		jsonBytes, err := json.Marshal(pageData)
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}

		if err := cm.redis.Set(bgCtx, cacheKey, jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// Invalidate invalidates all cached listing pages by bumping the version.
func (cm *CacheManager) Invalidate(ctx context.Context) {
	if cm == nil {
		return
	}
	if _, err := cm.redis.Incr(ctx, CacheVersionKey).Result(); err != nil {
		zap.L().Warn("Failed to invalidate product list cache", zap.Error(err))
	}
}

// getCacheVersion retrieves the current cache version, initializing it on
// first use.
func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	ver, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
	if err == nil && ver > 0 {
		return ver, nil
	}
	if err == redis.Nil {
		if err := cm.redis.Set(ctx, CacheVersionKey, 1, 0).Err(); err == nil {
			return 1, nil
		}
	}
	return 0, fmt.Errorf("failed to get cache version: %w", err)
}

func (cm *CacheManager) listCacheKey(version int64, q string, filters services.ProductFilters, page, limit int) string {
	return fmt.Sprintf(
		"%s%d:q:%s:t:%s:c:%s:p:%s:pg:%d:l:%d",
		ProductListCachePrefix,
		version,
		q,
		filters.TenantID,
		filters.CategoryID,
		filters.IsPublish,
		page,
		limit,
	)
}
