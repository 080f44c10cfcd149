// internal/criteria/store.go
package criteria

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"adaptive-chassis/internal/common/cache"
	"adaptive-chassis/internal/common/logger"
	"adaptive-chassis/internal/common/metrics"
	"adaptive-chassis/internal/models"
)

// Store is the TTL caching front for a criteria Source. A read inside the
// TTL serves the in-memory snapshot; expiry triggers a synchronous re-fetch
// that blocks the caller until it returns or fails. When Redis is configured
// the last good snapshot is also persisted there, so a restart or a fetch
// failure degrades to recent data instead of an empty set. Redis being down
// is never fatal.
type Store struct {
	source   Source
	ttl      time.Duration
	cache    *cache.RedisClient // nil when caching to Redis is disabled
	cacheKey string
	logger   logger.Logger
	now      func() time.Time

	mu        sync.Mutex
	snapshot  []models.Criterion
	fetchedAt time.Time
}

func NewStore(source Source, ttl time.Duration, redis *cache.RedisClient, keyPrefix string, log logger.Logger) *Store {
	if keyPrefix == "" {
		keyPrefix = "chassis"
	}
	return &Store{
		source:   source,
		ttl:      ttl,
		cache:    redis,
		cacheKey: keyPrefix + ":criteria:snapshot",
		logger:   log.WithFields(map[string]interface{}{"component": "criteria-store"}),
		now:      time.Now,
	}
}

// Load returns the current criteria set, fetching through the source when
// the cached snapshot has expired. The returned slice is a copy; callers may
// not mutate criterion weights.
func (s *Store) Load(ctx context.Context) ([]models.Criterion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot != nil && s.now().Sub(s.fetchedAt) <= s.ttl {
		metrics.SheetCacheHits.Inc()
		return copyCriteria(s.snapshot), nil
	}
	metrics.SheetCacheMisses.Inc()

	criteria, err := s.source.Fetch(ctx)
	if err != nil {
		metrics.SheetFetches.WithLabelValues("error").Inc()
		s.logger.WithError(err).Warn("criteria fetch failed", nil)

		// Stale beats empty: keep serving the previous snapshot.
		if s.snapshot != nil {
			return copyCriteria(s.snapshot), nil
		}
		if restored, ok := s.restore(ctx); ok {
			s.snapshot = restored
			s.fetchedAt = s.now()
			s.logger.Info("criteria restored from snapshot cache", map[string]interface{}{
				"criteria": len(restored),
			})
			return copyCriteria(restored), nil
		}
		return nil, err
	}

	metrics.SheetFetches.WithLabelValues("success").Inc()
	s.snapshot = criteria
	s.fetchedAt = s.now()
	s.persist(ctx, criteria)

	return copyCriteria(criteria), nil
}

// Invalidate drops the in-memory snapshot so the next Load re-fetches.
func (s *Store) Invalidate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = nil
	s.fetchedAt = time.Time{}

	if s.cache != nil {
		if err := s.cache.Del(ctx, s.cacheKey); err != nil {
			s.logger.WithError(err).Warn("failed to drop snapshot cache key", nil)
		}
	}
}

func (s *Store) persist(ctx context.Context, criteria []models.Criterion) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(criteria)
	if err != nil {
		s.logger.WithError(err).Warn("failed to encode criteria snapshot", nil)
		return
	}

	// No expiration: this is the restart/failure fallback, staleness is
	// bounded by the next successful fetch overwriting it.
	if err := s.cache.Set(ctx, s.cacheKey, data, 0); err != nil {
		s.logger.WithError(err).Warn("failed to persist criteria snapshot", nil)
	}
}

func (s *Store) restore(ctx context.Context) ([]models.Criterion, bool) {
	if s.cache == nil {
		return nil, false
	}

	val, err := s.cache.Get(ctx, s.cacheKey)
	if err != nil {
		if !cache.IsNil(err) {
			s.logger.WithError(err).Warn("snapshot cache read failed", nil)
		}
		return nil, false
	}

	var criteria []models.Criterion
	if err := json.Unmarshal([]byte(val), &criteria); err != nil {
		s.logger.WithError(err).Warn("corrupt criteria snapshot in cache", nil)
		return nil, false
	}

	return criteria, true
}

func copyCriteria(in []models.Criterion) []models.Criterion {
	out := make([]models.Criterion, len(in))
	copy(out, in)
	return out
}
