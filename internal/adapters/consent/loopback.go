// Package consent obtains an OAuth authorization code through a loopback
// redirect: it serves a one-shot local callback endpoint, hands the operator
// the provider's consent URL, and waits for exactly one terminal outcome
// (code, provider refusal, cancellation, or timeout). The browser-popup
// flow of the original site is the same port with a different adapter.
package consent

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"ella_estate/internal/domain"
)

const callbackPath = "/oauth/callback"

type Loopback struct {
	conf      *oauth2.Config
	addr      string
	timeout   time.Duration
	onAuthURL func(string)
	log       zerolog.Logger
}

type Option func(*Loopback)

// WithAuthURLSink replaces the default log line that tells the operator
// where to grant consent. Tests use it to drive the callback themselves.
func WithAuthURLSink(fn func(string)) Option { return func(l *Loopback) { l.onAuthURL = fn } }

func NewLoopback(conf *oauth2.Config, addr string, timeout time.Duration, log zerolog.Logger, opts ...Option) *Loopback {
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}
	l := &Loopback{conf: conf, addr: addr, timeout: timeout, log: log}
	for _, o := range opts {
		o(l)
	}
	if l.onAuthURL == nil {
		l.onAuthURL = func(u string) {
			l.log.Info().Str("url", u).Msg("open this URL to grant review access")
		}
	}
	return l
}

type outcome struct {
	code string
	err  error
}

func (l *Loopback) ObtainCode(ctx context.Context) (domain.ConsentGrant, error) {
	state, err := newState()
	if err != nil {
		return domain.ConsentGrant{}, err
	}

	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return domain.ConsentGrant{}, fmt.Errorf("consent: listen %s: %w", l.addr, err)
	}

	// Clone the config so the redirect URI matches the bound port even when
	// the configured addr was ":0".
	conf := *l.conf
	conf.RedirectURL = fmt.Sprintf("http://%s%s", ln.Addr().String(), callbackPath)

	results := make(chan outcome, 1)
	// Only the first terminal outcome counts; stray redirects after it must
	// not block their handler goroutines.
	deliver := func(o outcome) {
		select {
		case results <- o:
		default:
		}
	}
	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			// replayed or foreign redirect; keep waiting for the real one
			l.log.Warn().Msg("consent callback with mismatched state ignored")
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		if e := q.Get("error"); e != "" {
			fmt.Fprint(w, "Authorization was not granted. You can close this window.")
			deliver(outcome{err: fmt.Errorf("consent: provider error %q: %w", e, domain.ErrAuthorizationDenied)})
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, "Authorization complete. You can close this window.")
		deliver(outcome{code: code})
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if serr := srv.Serve(ln); serr != nil && serr != http.ErrServerClosed {
			deliver(outcome{err: fmt.Errorf("consent: callback server: %v: %w", serr, domain.ErrNetworkFailure)})
		}
	}()
	// release the listener and handler on every exit path
	defer srv.Close()

	l.onAuthURL(conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	))

	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return domain.ConsentGrant{}, fmt.Errorf("consent abandoned: %v: %w", ctx.Err(), domain.ErrUserCancelled)
	case <-timer.C:
		return domain.ConsentGrant{}, fmt.Errorf("consent timed out after %s: %w", l.timeout, domain.ErrUserCancelled)
	case res := <-results:
		if res.err != nil {
			return domain.ConsentGrant{}, res.err
		}
		return domain.ConsentGrant{Code: res.code, RedirectURI: conf.RedirectURL}, nil
	}
}

func newState() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b[:]), nil
}
