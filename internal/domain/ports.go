package domain

import "context"

// ReviewSource produces a fresh snapshot from a remote provider.
// Implementations: the Places details client (API-key path) and the
// Business Profile client (OAuth path).
type ReviewSource interface {
	FetchSnapshot(ctx context.Context) (ReviewsSnapshot, error)
}

// ConsentGrant is the outcome of a completed consent flow: the one-time
// authorization code and the redirect URI it was issued against. The token
// exchange must echo that exact URI or the provider rejects it.
type ConsentGrant struct {
	Code        string
	RedirectURI string
}

// ConsentFlow obtains an OAuth authorization code from the business owner.
// The browser-popup mechanics of the original site are one adapter; the
// loopback-redirect adapter in this service is another.
type ConsentFlow interface {
	ObtainCode(ctx context.Context) (ConsentGrant, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// EstateRepository persists the pieces of site state that outlive a process:
// contact-form messages and the refresh history of review snapshots.
type EstateRepository interface {
	InsertMessage(ctx context.Context, m ContactMessage) (int64, error)
	ListMessages(ctx context.Context, limit int) ([]ContactMessage, error)
	ArchiveSnapshot(ctx context.Context, placeID string, s ReviewsSnapshot) error
}
