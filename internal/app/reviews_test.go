package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ella_estate/internal/app"
	"ella_estate/internal/domain"
)

// ---- fakes ----

type fakeSource struct {
	mu    sync.Mutex
	calls int32
	snap  domain.ReviewsSnapshot
	err   error
	gate  chan struct{} // when set, FetchSnapshot blocks until closed
}

func (f *fakeSource) FetchSnapshot(ctx context.Context) (domain.ReviewsSnapshot, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.ReviewsSnapshot{}, f.err
	}
	return f.snap, nil
}

func (f *fakeSource) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string]domain.ReviewsSnapshot
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	*(dst.(*domain.ReviewsSnapshot)) = v
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string]domain.ReviewsSnapshot{}
	}
	c.store[key] = v.(domain.ReviewsSnapshot)
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func sampleSnap(fetched time.Time) domain.ReviewsSnapshot {
	return domain.ReviewsSnapshot{
		AverageRating: 4.8,
		TotalCount:    127,
		FetchedAt:     fetched,
		Reviews: []domain.Review{
			{ID: "r1", Author: "דני כהן", Rating: 5, CreatedAt: fetched.Add(-24 * time.Hour)},
		},
	}
}

// ---- tests ----

func TestSnapshot_SecondCallWithinTTLHitsCache(t *testing.T) {
	clk := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	src := &fakeSource{snap: sampleSnap(clk.t)}
	svc := app.NewReviewsService(src, &fakeCache{}, 30*time.Minute, app.WithClock(clk.Now))

	first, err := svc.Snapshot(context.Background(), false)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	clk.Advance(29 * time.Minute)
	second, err := svc.Snapshot(context.Background(), false)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if n := atomic.LoadInt32(&src.calls); n != 1 {
		t.Fatalf("expected one remote call, got %d", n)
	}
	if second.TotalCount != first.TotalCount || !second.FetchedAt.Equal(first.FetchedAt) {
		t.Fatalf("cached snapshot differs: %+v vs %+v", second, first)
	}
}

func TestSnapshot_ExpiredTTLRefetches(t *testing.T) {
	clk := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	src := &fakeSource{snap: sampleSnap(clk.t)}
	svc := app.NewReviewsService(src, &fakeCache{}, 30*time.Minute, app.WithClock(clk.Now))

	if _, err := svc.Snapshot(context.Background(), false); err != nil {
		t.Fatalf("err: %v", err)
	}
	clk.Advance(31 * time.Minute)
	if _, err := svc.Snapshot(context.Background(), false); err != nil {
		t.Fatalf("err: %v", err)
	}
	if n := atomic.LoadInt32(&src.calls); n != 2 {
		t.Fatalf("expected refetch after TTL, got %d calls", n)
	}
}

func TestSnapshot_ForceRefreshAlwaysCalls(t *testing.T) {
	clk := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	src := &fakeSource{snap: sampleSnap(clk.t)}
	svc := app.NewReviewsService(src, &fakeCache{}, 30*time.Minute, app.WithClock(clk.Now))

	for i := 0; i < 3; i++ {
		if _, err := svc.Snapshot(context.Background(), true); err != nil {
			t.Fatalf("err: %v", err)
		}
	}
	if n := atomic.LoadInt32(&src.calls); n != 3 {
		t.Fatalf("expected 3 remote calls, got %d", n)
	}
}

func TestSnapshot_StaleServedWhenFetchFails(t *testing.T) {
	clk := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	src := &fakeSource{snap: sampleSnap(clk.t)}
	svc := app.NewReviewsService(src, &fakeCache{}, 30*time.Minute, app.WithClock(clk.Now))

	if _, err := svc.Snapshot(context.Background(), false); err != nil {
		t.Fatalf("err: %v", err)
	}

	src.setErr(fmt.Errorf("boom: %w", domain.ErrNetworkFailure))
	clk.Advance(2 * time.Hour) // well past freshness

	snap, err := svc.Snapshot(context.Background(), false)
	if err != nil {
		t.Fatalf("expected degraded snapshot, got err %v", err)
	}
	if !snap.Stale {
		t.Fatalf("degraded snapshot must be marked stale")
	}
	if snap.TotalCount != 127 {
		t.Fatalf("stale snapshot content lost: %+v", snap)
	}
}

func TestSnapshot_TypedErrorWhenNoCache(t *testing.T) {
	src := &fakeSource{}
	src.setErr(fmt.Errorf("denied: %w", domain.ErrInvalidCredentials))
	svc := app.NewReviewsService(src, &fakeCache{}, 30*time.Minute)

	_, err := svc.Snapshot(context.Background(), false)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestSnapshot_ConcurrentCallersCoalesce(t *testing.T) {
	clk := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	src := &fakeSource{snap: sampleSnap(clk.t), gate: make(chan struct{})}
	svc := app.NewReviewsService(src, &fakeCache{}, 30*time.Minute, app.WithClock(clk.Now))

	const callers = 5
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Snapshot(context.Background(), false)
		}(i)
	}

	// let all callers pile onto the in-flight fetch, then release it
	time.Sleep(50 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d: %v", i, err)
		}
	}
	if n := atomic.LoadInt32(&src.calls); n != 1 {
		t.Fatalf("expected a single coalesced remote call, got %d", n)
	}
}

func TestSnapshot_DemoModeOnlyWithoutPriorFetch(t *testing.T) {
	src := &fakeSource{}
	src.setErr(fmt.Errorf("down: %w", domain.ErrNetworkFailure))
	svc := app.NewReviewsService(src, &fakeCache{}, 30*time.Minute,
		app.WithDemoSnapshot(app.DemoSnapshot()))

	snap, err := svc.Snapshot(context.Background(), false)
	if err != nil {
		t.Fatalf("demo mode should absorb the error: %v", err)
	}
	if len(snap.Reviews) == 0 || snap.AverageRating != 4.8 {
		t.Fatalf("unexpected demo snapshot: %+v", snap)
	}
}

func TestSnapshot_PrewarmedKeyServedWithoutRemoteCall(t *testing.T) {
	cache := &fakeCache{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	key := app.SnapshotKeyFor("place-ella-1")

	// refresher-shaped warm under the derived key
	warmer := &fakeSource{snap: sampleSnap(now)}
	warm := app.NewReviewsService(warmer, cache, 30*time.Minute,
		app.WithSnapshotKey(key),
		app.WithClock(func() time.Time { return now }))
	if _, err := warm.Snapshot(context.Background(), true); err != nil {
		t.Fatalf("warm: %v", err)
	}

	// API-shaped service over the same cache must find the warm entry
	apiSrc := &fakeSource{snap: sampleSnap(now)}
	api := app.NewReviewsService(apiSrc, cache, 30*time.Minute,
		app.WithSnapshotKey(key),
		app.WithClock(func() time.Time { return now.Add(time.Minute) }))

	snap, err := api.Snapshot(context.Background(), false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := atomic.LoadInt32(&apiSrc.calls); got != 0 {
		t.Fatalf("API service fetched upstream %d times despite the warm cache", got)
	}
	if snap.FetchedAt != now {
		t.Fatalf("expected the pre-warmed snapshot, got FetchedAt=%v", snap.FetchedAt)
	}
}

func TestSnapshotKeyFor(t *testing.T) {
	if got := app.SnapshotKeyFor(""); got != "reviews:snapshot" {
		t.Fatalf("empty place id: %q", got)
	}
	if got := app.SnapshotKeyFor("p1"); got != "reviews:snapshot:p1" {
		t.Fatalf("place key: %q", got)
	}
}

func TestClearCache_ForcesNextFetch(t *testing.T) {
	clk := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	src := &fakeSource{snap: sampleSnap(clk.t)}
	svc := app.NewReviewsService(src, &fakeCache{}, 30*time.Minute, app.WithClock(clk.Now))

	if _, err := svc.Snapshot(context.Background(), false); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := svc.ClearCache(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := svc.Snapshot(context.Background(), false); err != nil {
		t.Fatalf("err: %v", err)
	}
	if n := atomic.LoadInt32(&src.calls); n != 2 {
		t.Fatalf("expected refetch after clear, got %d calls", n)
	}
}
