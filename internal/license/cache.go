package license

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/PayAidPayments/PayAid-V3-sub021/internal/domain"
)

// CachedStore is a redis read-through decorator over another Store. A cache
// failure is never a denial on its own: lookups fall through to the inner
// store, which stays authoritative.
type CachedStore struct {
	inner Store
	rdb   *redis.Client
	ttl   time.Duration
}

var _ Store = (*CachedStore)(nil)

// NewCachedStore wraps inner with a redis cache using the given entry TTL.
func NewCachedStore(inner Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{inner: inner, rdb: rdb, ttl: ttl}
}

func tenantKey(tenantID int64) string {
	return fmt.Sprintf("access:tenant:%d", tenantID)
}

func licensesKey(tenantID int64) string {
	return fmt.Sprintf("access:licenses:%d", tenantID)
}

func (s *CachedStore) Tenant(ctx context.Context, tenantID int64) (domain.Tenant, error) {
	key := tenantKey(tenantID)
	if raw, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var tenant domain.Tenant
		if err := json.Unmarshal(raw, &tenant); err == nil {
			return tenant, nil
		}
		zap.L().Warn("corrupt tenant cache entry", zap.String("key", key))
	} else if err != redis.Nil {
		zap.L().Warn("tenant cache read failed", zap.String("key", key), zap.Error(err))
	}

	tenant, err := s.inner.Tenant(ctx, tenantID)
	if err != nil {
		return domain.Tenant{}, err
	}
	s.put(ctx, key, tenant)
	return tenant, nil
}

func (s *CachedStore) ModuleLicenses(ctx context.Context, tenantID int64) ([]domain.ModuleLicense, error) {
	key := licensesKey(tenantID)
	if raw, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var licenses []domain.ModuleLicense
		if err := json.Unmarshal(raw, &licenses); err == nil {
			return licenses, nil
		}
		zap.L().Warn("corrupt license cache entry", zap.String("key", key))
	} else if err != redis.Nil {
		zap.L().Warn("license cache read failed", zap.String("key", key), zap.Error(err))
	}

	licenses, err := s.inner.ModuleLicenses(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	s.put(ctx, key, licenses)
	return licenses, nil
}

// Invalidate drops cached entries for a tenant. Subscription-management
// flows call this after changing plan, status, or license rows.
func (s *CachedStore) Invalidate(ctx context.Context, tenantID int64) error {
	if err := s.rdb.Del(ctx, tenantKey(tenantID), licensesKey(tenantID)).Err(); err != nil {
		return fmt.Errorf("invalidate tenant %d: %w", tenantID, err)
	}
	return nil
}

func (s *CachedStore) put(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		zap.L().Warn("marshal cache entry failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		zap.L().Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
