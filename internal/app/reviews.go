package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"ella_estate/internal/domain"
)

const (
	defaultSnapshotKey = "reviews:snapshot"

	// Entries outlive the freshness TTL on purpose: an expired snapshot is
	// still the degraded fallback when a refresh fails.
	staleRetention = 7 * 24 * time.Hour
)

// ReviewsService produces review snapshots for display, keeping remote
// calls to the minimum the freshness window allows and degrading to the
// last known snapshot when the provider is unreachable.
type ReviewsService struct {
	source domain.ReviewSource
	cache  domain.Cache
	ttl    time.Duration
	key    string
	now    func() time.Time
	demo   *domain.ReviewsSnapshot
	group  singleflight.Group
}

type ReviewsOption func(*ReviewsService)

// WithClock substitutes the freshness clock (tests).
func WithClock(now func() time.Time) ReviewsOption {
	return func(s *ReviewsService) { s.now = now }
}

// WithSnapshotKey namespaces the cache entry; the refresher uses one key
// per listing.
func WithSnapshotKey(key string) ReviewsOption {
	return func(s *ReviewsService) { s.key = key }
}

// SnapshotKeyFor derives the cache key for one listing. The API and the
// refresher must agree on it or pre-warmed snapshots are never found.
func SnapshotKeyFor(placeID string) string {
	if placeID == "" {
		return defaultSnapshotKey
	}
	return defaultSnapshotKey + ":" + placeID
}

// WithDemoSnapshot enables explicit demo mode: the given snapshot is served
// only when a fetch fails and nothing was ever fetched successfully.
func WithDemoSnapshot(snap domain.ReviewsSnapshot) ReviewsOption {
	return func(s *ReviewsService) { s.demo = &snap }
}

func NewReviewsService(src domain.ReviewSource, cache domain.Cache, ttl time.Duration, opts ...ReviewsOption) *ReviewsService {
	s := &ReviewsService{
		source: src,
		cache:  cache,
		ttl:    ttl,
		key:    defaultSnapshotKey,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Snapshot returns the current review snapshot. Without forceRefresh a
// cached snapshot younger than the TTL is returned as-is; otherwise one
// remote fetch runs, with concurrent callers coalesced onto it.
func (s *ReviewsService) Snapshot(ctx context.Context, forceRefresh bool) (domain.ReviewsSnapshot, error) {
	if !forceRefresh {
		var cached domain.ReviewsSnapshot
		if ok, _ := s.cache.Get(ctx, s.key, &cached); ok && s.now().Sub(cached.FetchedAt) < s.ttl {
			return cached, nil
		}
	}

	v, err, _ := s.group.Do(s.key, func() (any, error) {
		return s.refresh(ctx)
	})
	if err != nil {
		return domain.ReviewsSnapshot{}, err
	}
	return v.(domain.ReviewsSnapshot), nil
}

// ClearCache drops the stored snapshot; the next call fetches fresh.
func (s *ReviewsService) ClearCache(ctx context.Context) error {
	return s.cache.Del(ctx, s.key)
}

func (s *ReviewsService) refresh(ctx context.Context) (domain.ReviewsSnapshot, error) {
	snap, err := s.source.FetchSnapshot(ctx)
	if err == nil {
		// overwrite whole, never merge
		if cerr := s.cache.Set(ctx, s.key, snap, int(staleRetention.Seconds())); cerr != nil {
			log.Warn().Err(cerr).Msg("snapshot cache write failed")
		}
		return snap, nil
	}

	// A previous snapshot, even past its freshness window, beats an error.
	var prev domain.ReviewsSnapshot
	if ok, _ := s.cache.Get(ctx, s.key, &prev); ok {
		log.Warn().Err(err).Time("fetchedAt", prev.FetchedAt).Msg("review fetch failed, serving previous snapshot")
		prev.Stale = true
		return prev, nil
	}

	if s.demo != nil {
		log.Warn().Err(err).Msg("review fetch failed, demo mode serving seeded snapshot")
		d := *s.demo
		d.FetchedAt = s.now()
		return d, nil
	}

	return domain.ReviewsSnapshot{}, err
}
