package domain

import (
	"sort"
	"time"
)

// Review is one guest review in canonical form, regardless of which
// provider path produced it.
type Review struct {
	ID             string       `json:"id"`
	Author         string       `json:"author"`
	AuthorPhotoURL *string      `json:"authorPhotoUrl,omitempty"`
	Rating         int          `json:"rating"` // always 1..5
	Text           *string      `json:"text,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	Reply          *ReviewReply `json:"reply,omitempty"`
}

// ReviewReply is the business owner's answer to a review.
type ReviewReply struct {
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewsSnapshot is the aggregate result of one successful fetch.
// Snapshots are replaced whole on refresh, never merged.
type ReviewsSnapshot struct {
	Reviews       []Review  `json:"reviews"` // newest first
	AverageRating float64   `json:"averageRating"`
	TotalCount    int       `json:"totalCount"`
	FetchedAt     time.Time `json:"fetchedAt"`

	// Stale marks a snapshot served from an old cache entry because a
	// fresh fetch failed. Set by the service on the way out, never stored.
	Stale bool `json:"stale,omitempty"`
}

// SortNewestFirst orders the snapshot's reviews by CreatedAt descending.
func (s *ReviewsSnapshot) SortNewestFirst() {
	sort.SliceStable(s.Reviews, func(i, j int) bool {
		return s.Reviews[i].CreatedAt.After(s.Reviews[j].CreatedAt)
	})
}
