package gbp_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"ella_estate/internal/adapters/gbp"
	"ella_estate/internal/domain"
)

// ---- fakes ----

type fakeConsent struct {
	code     string
	redirect string
	err      error
}

func (f *fakeConsent) ObtainCode(ctx context.Context) (domain.ConsentGrant, error) {
	return domain.ConsentGrant{Code: f.code, RedirectURI: f.redirect}, f.err
}

// fakeGoogle serves token exchange plus the Business Profile endpoints.
type fakeGoogle struct {
	t             *testing.T
	pages         [][]map[string]any
	endless       bool // always return a nextPageToken
	reviewHits    int32
	tokenRedirect string // redirect_uri form field of the last exchange
}

func (g *fakeGoogle) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.Form.Get("code") != "test-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		g.tokenRedirect = r.Form.Get("redirect_uri")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-1","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/v4/accounts", func(w http.ResponseWriter, r *http.Request) {
		g.requireBearer(r)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"accounts": []map[string]any{{"name": "accounts/a1"}},
		})
	})
	mux.HandleFunc("/v4/accounts/a1/locations", func(w http.ResponseWriter, r *http.Request) {
		g.requireBearer(r)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"locations": []map[string]any{{"name": "accounts/a1/locations/l1"}},
		})
	})
	mux.HandleFunc("/v4/accounts/a1/locations/l1/reviews", func(w http.ResponseWriter, r *http.Request) {
		g.requireBearer(r)
		page := atomic.AddInt32(&g.reviewHits, 1)
		if g.endless {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"reviews":       []map[string]any{{"reviewId": fmt.Sprintf("r%d", page), "starRating": "FIVE", "createTime": "2024-01-01T00:00:00Z"}},
				"nextPageToken": fmt.Sprintf("p%d", page),
			})
			return
		}
		idx := int(page) - 1
		resp := map[string]any{"reviews": g.pages[idx]}
		if idx < len(g.pages)-1 {
			resp["nextPageToken"] = fmt.Sprintf("p%d", page)
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	return mux
}

func (g *fakeGoogle) requireBearer(r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer at-1" {
		g.t.Errorf("missing bearer token on %s", r.URL.Path)
	}
}

func newTestClient(t *testing.T, ts *httptest.Server, consent domain.ConsentFlow, opts ...gbp.Option) *gbp.Client {
	t.Helper()
	conf := &oauth2.Config{
		ClientID:     "cid",
		ClientSecret: "secret",
		Endpoint:     oauth2.Endpoint{AuthURL: ts.URL + "/auth", TokenURL: ts.URL + "/token"},
		RedirectURL:  "http://localhost/oauth/callback",
	}
	opts = append([]gbp.Option{gbp.WithPageDelay(0)}, opts...)
	cl, err := gbp.New(ts.URL+"/v4", conf, consent, opts...)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return cl
}

// ---- tests ----

func TestFetchSnapshot_PaginatesAndAggregates(t *testing.T) {
	g := &fakeGoogle{t: t, pages: [][]map[string]any{
		{
			{"reviewId": "r1", "reviewer": map[string]any{"displayName": "דני כהן"}, "starRating": "FIVE",
				"comment": "מקום מדהים", "createTime": "2024-01-15T10:30:00Z",
				"reviewReply": map[string]any{"comment": "תודה רבה!", "updateTime": "2024-01-16T08:00:00Z"}},
			{"reviewId": "r2", "reviewer": map[string]any{"displayName": "Sarah L"}, "starRating": "FOUR",
				"createTime": "2024-01-10T14:20:00Z"},
		},
		{
			{"name": "accounts/a1/locations/l1/reviews/r3", "starRating": "THREE",
				"createTime": "2024-02-01T09:00:00Z"},
		},
	}}
	ts := httptest.NewServer(g.handler())
	defer ts.Close()

	snap, err := newTestClient(t, ts, &fakeConsent{code: "test-code"}).FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(snap.Reviews) != 3 || snap.TotalCount != 3 {
		t.Fatalf("expected 3 reviews, got %d (total %d)", len(snap.Reviews), snap.TotalCount)
	}
	// local mean of 5,4,3
	if snap.AverageRating != 4.0 {
		t.Fatalf("AverageRating = %v, want 4.0", snap.AverageRating)
	}
	// newest-first; r3 (Feb) leads despite arriving on the last page
	if snap.Reviews[0].ID != "r3" {
		t.Fatalf("expected r3 first, got %s", snap.Reviews[0].ID)
	}
	// reviewId fallback to resource name segment
	if snap.Reviews[0].Author != "Anonymous" {
		t.Fatalf("expected Anonymous fallback, got %q", snap.Reviews[0].Author)
	}
	if snap.Reviews[1].ID != "r1" || snap.Reviews[1].Reply == nil || snap.Reviews[1].Reply.Text != "תודה רבה!" {
		t.Fatalf("reply lost in normalization: %+v", snap.Reviews[1])
	}
}

func TestFetchSnapshot_PageCap(t *testing.T) {
	g := &fakeGoogle{t: t, endless: true}
	ts := httptest.NewServer(g.handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snap, err := newTestClient(t, ts, &fakeConsent{code: "test-code"}).FetchSnapshot(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := atomic.LoadInt32(&g.reviewHits); got != 50 {
		t.Fatalf("expected exactly 50 pages fetched, got %d", got)
	}
	if len(snap.Reviews) != 50 {
		t.Fatalf("expected 50 accumulated reviews, got %d", len(snap.Reviews))
	}
}

func TestFetchSnapshot_ConsentErrorsPassThrough(t *testing.T) {
	ts := httptest.NewServer((&fakeGoogle{t: t}).handler())
	defer ts.Close()

	for _, want := range []error{domain.ErrUserCancelled, domain.ErrAuthorizationDenied, domain.ErrNetworkFailure} {
		cl := newTestClient(t, ts, &fakeConsent{err: fmt.Errorf("consent: %w", want)})
		if _, err := cl.FetchSnapshot(context.Background()); !errors.Is(err, want) {
			t.Fatalf("want %v, got %v", want, err)
		}
	}
}

func TestFetchSnapshot_ExchangeRejected(t *testing.T) {
	ts := httptest.NewServer((&fakeGoogle{t: t}).handler())
	defer ts.Close()

	cl := newTestClient(t, ts, &fakeConsent{code: "wrong-code"})
	if _, err := cl.FetchSnapshot(context.Background()); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestFetchSnapshot_ExchangeEchoesGrantRedirectURI(t *testing.T) {
	g := &fakeGoogle{t: t, pages: [][]map[string]any{
		{{"reviewId": "r1", "starRating": "FIVE", "createTime": "2024-01-01T00:00:00Z"}},
	}}
	ts := httptest.NewServer(g.handler())
	defer ts.Close()

	// The loopback flow binds an ephemeral port, so the config alone cannot
	// know the redirect; the grant carries it and the exchange must echo it.
	const redirect = "http://127.0.0.1:41873/oauth/callback"
	_, err := newTestClient(t, ts, &fakeConsent{code: "test-code", redirect: redirect}).
		FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if g.tokenRedirect != redirect {
		t.Fatalf("token exchange redirect_uri = %q, want %q", g.tokenRedirect, redirect)
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	_, err := gbp.New("", &oauth2.Config{}, &fakeConsent{})
	if !errors.Is(err, domain.ErrCredentialsNotConfigured) {
		t.Fatalf("want ErrCredentialsNotConfigured, got %v", err)
	}
}
