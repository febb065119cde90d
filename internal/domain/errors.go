package domain

import "errors"

// Typed failure causes surfaced by the review sources and the consent flow.
// Wrap with %w so callers can errors.Is across adapter boundaries.
var (
	ErrCredentialsNotConfigured = errors.New("reviews: credentials not configured")
	ErrInvalidCredentials       = errors.New("reviews: invalid credentials")
	ErrNotFound                 = errors.New("reviews: place not found")
	ErrRateLimited              = errors.New("reviews: rate limited")
	ErrMalformedResponse        = errors.New("reviews: malformed response")
	ErrUserCancelled            = errors.New("reviews: user cancelled consent")
	ErrAuthorizationDenied      = errors.New("reviews: authorization denied")
	ErrNetworkFailure           = errors.New("reviews: network failure")
)

// ErrorKey maps a typed failure to the i18n key the UI renders.
// Unknown errors share the network-failure message rather than leaking
// internals to visitors.
func ErrorKey(err error) string {
	switch {
	case errors.Is(err, ErrCredentialsNotConfigured):
		return "reviews.error.not_configured"
	case errors.Is(err, ErrInvalidCredentials):
		return "reviews.error.invalid_credentials"
	case errors.Is(err, ErrNotFound):
		return "reviews.error.not_found"
	case errors.Is(err, ErrRateLimited):
		return "reviews.error.rate_limited"
	case errors.Is(err, ErrMalformedResponse):
		return "reviews.error.malformed"
	case errors.Is(err, ErrUserCancelled):
		return "reviews.error.cancelled"
	case errors.Is(err, ErrAuthorizationDenied):
		return "reviews.error.denied"
	default:
		return "reviews.error.network"
	}
}
