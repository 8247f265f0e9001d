package wishlist

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a list entry or its movie does not exist, or
// the entry belongs to someone else.
var ErrNotFound = errors.New("list entry not found")

// Kind names one of a user's personal lists.
type Kind string

const (
	KindWishlist Kind = "wishlist"
	KindWatched  Kind = "watched"
)

// ParseKind validates a list name. The empty string means wishlist.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "", KindWishlist:
		return KindWishlist, nil
	case KindWatched:
		return KindWatched, nil
	default:
		return "", fmt.Errorf("unknown list %q", s)
	}
}

// Label is the human-readable list name.
func (k Kind) Label() string {
	if k == KindWatched {
		return "Watched"
	}
	return "Wishlist"
}

// Item is a list entry joined with the movie it points at.
type Item struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	MovieID     int64     `json:"movie_id"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Language    string    `json:"language"`
	ReleaseYear int       `json:"release_year"`
	Poster      string    `json:"poster"`
	AddedAt     time.Time `json:"added_at"`
}
