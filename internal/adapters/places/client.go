// Package places implements the API-key review source against the Google
// Places details endpoint. The endpoint caps the returned page at five
// reviews but reports authoritative aggregate rating and total count for
// the whole place; the normalizer must prefer those over recomputing from
// the short page.
package places

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"ella_estate/internal/adapters/observability"
	"ella_estate/internal/domain"
	"ella_estate/internal/domain/rating"
)

const detailsFields = "reviews,rating,user_ratings_total"

type Client struct {
	base    string
	hc      *http.Client
	key     string
	placeID string
	rl      *rate.Limiter
	now     func() time.Time
}

func New(base, key, placeID string, rps int) (*Client, error) {
	if key == "" || placeID == "" {
		return nil, fmt.Errorf("places: %w", domain.ErrCredentialsNotConfigured)
	}
	if base == "" {
		base = "https://maps.googleapis.com"
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:    base,
		hc:      &http.Client{Timeout: 20 * time.Second},
		key:     key,
		placeID: placeID,
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
		now:     time.Now,
	}, nil
}

// PlaceID identifies which listing this client fetches; the refresher uses
// it as the archive key.
func (c *Client) PlaceID() string { return c.placeID }

// detailsResponse mirrors the Places details JSON envelope.
type detailsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Result       struct {
		Rating           float64       `json:"rating"`
		UserRatingsTotal int           `json:"user_ratings_total"`
		Reviews          []placeReview `json:"reviews"`
	} `json:"result"`
}

type placeReview struct {
	AuthorName      string  `json:"author_name"`
	ProfilePhotoURL string  `json:"profile_photo_url"`
	Rating          float64 `json:"rating"`
	Text            string  `json:"text"`
	Time            int64   `json:"time"` // unix seconds
}

func (c *Client) FetchSnapshot(ctx context.Context) (domain.ReviewsSnapshot, error) {
	q := url.Values{}
	q.Set("place_id", c.placeID)
	q.Set("fields", detailsFields)
	q.Set("key", c.key)
	u := c.base + "/maps/api/place/details/json?" + q.Encode()

	var dr detailsResponse
	if err := c.get(ctx, u, &dr); err != nil {
		return domain.ReviewsSnapshot{}, err
	}

	switch dr.Status {
	case "OK":
	case "REQUEST_DENIED":
		return domain.ReviewsSnapshot{}, fmt.Errorf("places: %s: %w", dr.ErrorMessage, domain.ErrInvalidCredentials)
	case "NOT_FOUND", "INVALID_REQUEST", "ZERO_RESULTS":
		return domain.ReviewsSnapshot{}, fmt.Errorf("places: status %s: %w", dr.Status, domain.ErrNotFound)
	case "OVER_QUERY_LIMIT":
		return domain.ReviewsSnapshot{}, fmt.Errorf("places: %w", domain.ErrRateLimited)
	default:
		return domain.ReviewsSnapshot{}, fmt.Errorf("places: status %q: %w", dr.Status, domain.ErrMalformedResponse)
	}

	return c.normalize(dr), nil
}

func (c *Client) normalize(dr detailsResponse) domain.ReviewsSnapshot {
	fetched := c.now()
	snap := domain.ReviewsSnapshot{
		Reviews:   make([]domain.Review, 0, len(dr.Result.Reviews)),
		FetchedAt: fetched,
	}
	for i, pr := range dr.Result.Reviews {
		rv := domain.Review{
			ID:        fmt.Sprintf("places_%d", i),
			Author:    pr.AuthorName,
			Rating:    rating.FromNumeric(pr.Rating),
			CreatedAt: fetched,
		}
		if rv.Author == "" {
			rv.Author = "Anonymous"
		}
		if pr.ProfilePhotoURL != "" {
			rv.AuthorPhotoURL = &dr.Result.Reviews[i].ProfilePhotoURL
		}
		if pr.Text != "" {
			rv.Text = &dr.Result.Reviews[i].Text
		}
		if pr.Time > 0 {
			rv.CreatedAt = time.Unix(pr.Time, 0).UTC()
		}
		snap.Reviews = append(snap.Reviews, rv)
	}
	snap.SortNewestFirst()

	// The details endpoint returns at most 5 reviews but its aggregates cover
	// the whole place. Recomputing from the page would corrupt the stats.
	snap.AverageRating = dr.Result.Rating
	snap.TotalCount = dr.Result.UserRatingsTotal
	if snap.AverageRating == 0 && len(snap.Reviews) > 0 {
		var sum int
		for _, rv := range snap.Reviews {
			sum += rv.Rating
		}
		snap.AverageRating = float64(sum) / float64(len(snap.Reviews))
	}
	if snap.TotalCount == 0 {
		snap.TotalCount = len(snap.Reviews)
	}
	return snap
}

// get performs a GET with client-side rate limiting, retries, and JSON decode
// into out. Retries on 429 and transient 5xx, honoring Retry-After.
func (c *Client) get(ctx context.Context, url string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "ella-estate/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("places: %v: %w", err, domain.ErrNetworkFailure)
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("places", "details", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("places: decode: %v: %w", err, domain.ErrMalformedResponse)
			}
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return fmt.Errorf("places: %w", domain.ErrNotFound)

		case http.StatusUnauthorized, http.StatusForbidden:
			resp.Body.Close()
			return fmt.Errorf("places: http %d: %w", resp.StatusCode, domain.ErrInvalidCredentials)

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			// Prefer server-provided Retry-After; otherwise exponential backoff.
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			if resp.StatusCode == http.StatusTooManyRequests {
				lastErr = fmt.Errorf("places: http 429: %w", domain.ErrRateLimited)
			} else {
				lastErr = fmt.Errorf("places: http %d: %w", resp.StatusCode, domain.ErrNetworkFailure)
			}
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("places: bad status %d: %s: %w",
				resp.StatusCode, strings.TrimSpace(string(b)), domain.ErrMalformedResponse)
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential backoff delay with concurrency-safe jitter.
// i = retry attempt (0,1,2,...). Base doubles each attempt (200ms, 400ms, 800ms...),
// with up to +50% random jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
