// Package gbp implements the OAuth review source against the Google
// Business Profile API: consent, code exchange, account and location
// resolution, then sequential page-token pagination over all reviews.
//
// Unlike the Places path there is no authoritative aggregate here, so the
// snapshot mean and total are computed locally over the full set. Any
// failure mid-flight aborts the whole fetch; retry is a caller action.
package gbp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"ella_estate/internal/adapters/observability"
	"ella_estate/internal/domain"
	"ella_estate/internal/domain/rating"
)

const (
	defaultAPIBase = "https://mybusiness.googleapis.com/v4"
	maxPages       = 50 // runaway-loop protection even if the provider keeps paging
)

type Client struct {
	apiBase   string
	conf      *oauth2.Config
	consent   domain.ConsentFlow
	rl        *rate.Limiter
	pageDelay time.Duration
	pageCap   int
	now       func() time.Time
}

type Option func(*Client)

// WithPageDelay overrides the fixed inter-page pause (1s by default, per
// provider rate-limit guidance). Tests set it to zero.
func WithPageDelay(d time.Duration) Option { return func(c *Client) { c.pageDelay = d } }

func WithPageCap(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageCap = n
		}
	}
}

func New(apiBase string, conf *oauth2.Config, consent domain.ConsentFlow, opts ...Option) (*Client, error) {
	if conf == nil || conf.ClientID == "" || conf.ClientSecret == "" {
		return nil, fmt.Errorf("gbp: %w", domain.ErrCredentialsNotConfigured)
	}
	if consent == nil {
		return nil, errors.New("gbp: consent flow is required")
	}
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	c := &Client{
		apiBase:   strings.TrimRight(apiBase, "/"),
		conf:      conf,
		consent:   consent,
		rl:        rate.NewLimiter(rate.Limit(5), 5),
		pageDelay: time.Second,
		pageCap:   maxPages,
		now:       time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

type accountsResponse struct {
	Accounts []struct {
		Name string `json:"name"` // accounts/{id}
	} `json:"accounts"`
}

type locationsResponse struct {
	Locations []struct {
		Name string `json:"name"` // accounts/{id}/locations/{id}
	} `json:"locations"`
}

type reviewsResponse struct {
	Reviews       []gbpReview `json:"reviews"`
	NextPageToken string      `json:"nextPageToken"`
}

type gbpReview struct {
	ReviewID string `json:"reviewId"`
	Name     string `json:"name"`
	Reviewer struct {
		DisplayName     string `json:"displayName"`
		ProfilePhotoURL string `json:"profilePhotoUrl"`
	} `json:"reviewer"`
	StarRating  string `json:"starRating"`
	Comment     string `json:"comment"`
	CreateTime  string `json:"createTime"`
	ReviewReply *struct {
		Comment    string `json:"comment"`
		UpdateTime string `json:"updateTime"`
	} `json:"reviewReply"`
}

func (c *Client) FetchSnapshot(ctx context.Context) (domain.ReviewsSnapshot, error) {
	grant, err := c.consent.ObtainCode(ctx)
	if err != nil {
		return domain.ReviewsSnapshot{}, err
	}

	// The provider rejects an exchange whose redirect_uri differs from the
	// one the code was authorized against, so echo the grant's URI.
	var exchangeOpts []oauth2.AuthCodeOption
	if grant.RedirectURI != "" {
		exchangeOpts = append(exchangeOpts, oauth2.SetAuthURLParam("redirect_uri", grant.RedirectURI))
	}
	token, err := c.conf.Exchange(ctx, grant.Code, exchangeOpts...)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			return domain.ReviewsSnapshot{}, fmt.Errorf("gbp: token exchange: %v: %w", err, domain.ErrInvalidCredentials)
		}
		return domain.ReviewsSnapshot{}, fmt.Errorf("gbp: token exchange: %v: %w", err, domain.ErrNetworkFailure)
	}

	// conf.Client handles bearer headers and token refresh transparently.
	hc := c.conf.Client(context.WithValue(ctx, oauth2.HTTPClient,
		&http.Client{Timeout: 20 * time.Second}), token)

	accountID, err := c.resolveAccount(ctx, hc)
	if err != nil {
		return domain.ReviewsSnapshot{}, err
	}
	locationID, err := c.resolveLocation(ctx, hc, accountID)
	if err != nil {
		return domain.ReviewsSnapshot{}, err
	}

	reviews, err := c.fetchAllPages(ctx, hc, accountID, locationID)
	if err != nil {
		return domain.ReviewsSnapshot{}, err
	}

	snap := domain.ReviewsSnapshot{
		Reviews:    reviews,
		TotalCount: len(reviews),
		FetchedAt:  c.now(),
	}
	snap.SortNewestFirst()
	if len(reviews) > 0 {
		var sum int
		for _, rv := range reviews {
			sum += rv.Rating
		}
		snap.AverageRating = float64(sum) / float64(len(reviews))
	}
	return snap, nil
}

func (c *Client) resolveAccount(ctx context.Context, hc *http.Client) (string, error) {
	var ar accountsResponse
	if err := c.getJSON(ctx, hc, c.apiBase+"/accounts", "accounts", &ar); err != nil {
		return "", err
	}
	if len(ar.Accounts) == 0 {
		return "", fmt.Errorf("gbp: no business account: %w", domain.ErrNotFound)
	}
	return lastSegment(ar.Accounts[0].Name), nil
}

func (c *Client) resolveLocation(ctx context.Context, hc *http.Client, accountID string) (string, error) {
	var lr locationsResponse
	u := fmt.Sprintf("%s/accounts/%s/locations", c.apiBase, accountID)
	if err := c.getJSON(ctx, hc, u, "locations", &lr); err != nil {
		return "", err
	}
	if len(lr.Locations) == 0 {
		return "", fmt.Errorf("gbp: no business location: %w", domain.ErrNotFound)
	}
	return lastSegment(lr.Locations[0].Name), nil
}

func (c *Client) fetchAllPages(ctx context.Context, hc *http.Client, accountID, locationID string) ([]domain.Review, error) {
	var (
		all       []domain.Review
		pageToken string
	)
	base := fmt.Sprintf("%s/accounts/%s/locations/%s/reviews", c.apiBase, accountID, locationID)

	for page := 1; page <= c.pageCap; page++ {
		u := base
		if pageToken != "" {
			u += "?pageToken=" + url.QueryEscape(pageToken)
		}
		var rr reviewsResponse
		if err := c.getJSON(ctx, hc, u, "reviews", &rr); err != nil {
			return nil, err
		}
		for i := range rr.Reviews {
			all = append(all, c.normalize(rr.Reviews[i]))
		}
		pageToken = rr.NextPageToken
		if pageToken == "" {
			break
		}
		if page < c.pageCap && !sleepCtx(ctx, c.pageDelay) {
			return nil, ctx.Err()
		}
	}
	return all, nil
}

func (c *Client) normalize(in gbpReview) domain.Review {
	rv := domain.Review{
		ID:        in.ReviewID,
		Author:    in.Reviewer.DisplayName,
		Rating:    rating.FromStar(in.StarRating),
		CreatedAt: c.now(),
	}
	if rv.ID == "" {
		rv.ID = lastSegment(in.Name)
	}
	if rv.Author == "" {
		rv.Author = "Anonymous"
	}
	if in.Reviewer.ProfilePhotoURL != "" {
		u := in.Reviewer.ProfilePhotoURL
		rv.AuthorPhotoURL = &u
	}
	if in.Comment != "" {
		s := in.Comment
		rv.Text = &s
	}
	if t, err := time.Parse(time.RFC3339, in.CreateTime); err == nil {
		rv.CreatedAt = t
	}
	if in.ReviewReply != nil {
		reply := &domain.ReviewReply{Text: in.ReviewReply.Comment, UpdatedAt: c.now()}
		if t, err := time.Parse(time.RFC3339, in.ReviewReply.UpdateTime); err == nil {
			reply.UpdatedAt = t
		}
		rv.Reply = reply
	}
	return rv
}

// getJSON performs one authenticated GET. No automatic retry on this path:
// a failure aborts the whole OAuth fetch and the user re-invokes it.
func (c *Client) getJSON(ctx context.Context, hc *http.Client, u, endpoint string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("gbp: %s: %v: %w", endpoint, err, domain.ErrNetworkFailure)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("gbp", endpoint, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("gbp: %s decode: %v: %w", endpoint, err, domain.ErrMalformedResponse)
		}
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("gbp: %s http %d: %w", endpoint, resp.StatusCode, domain.ErrInvalidCredentials)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("gbp: %s: %w", endpoint, domain.ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("gbp: %s: %w", endpoint, domain.ErrRateLimited)
	default:
		return fmt.Errorf("gbp: %s http %d: %w", endpoint, resp.StatusCode, domain.ErrNetworkFailure)
	}
}

func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}

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
