// Package ratings stores one 1-5 star rating and optional review per user
// and movie.
package ratings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sivahkrishna/indian-movie-recommender/internal/db"
)

// ErrNotFound is returned when rating a movie that does not exist.
var ErrNotFound = errors.New("movie not found")

// Rating is one user's verdict on a movie.
type Rating struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	MovieID   int64     `json:"movie_id"`
	Username  string    `json:"username"`
	Stars     int       `json:"rating"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Form is the rating form posted from the movie page.
type Form struct {
	Stars  int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review" validate:"max=2000"`
}

// Summary is the aggregate shown next to a movie.
type Summary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Store persists ratings.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Upsert records the user's rating, replacing any earlier one for the movie.
func (s *Store) Upsert(ctx context.Context, userID, movieID int64, stars int, review string) error {
	if stars < 1 || stars > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", stars)
	}

	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies WHERE id = ?`, movieID).Scan(&exists); err != nil {
		return fmt.Errorf("checking movie %d: %w", movieID, err)
	}
	if exists == 0 {
		return ErrNotFound
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ratings (user_id, movie_id, rating, review)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, movie_id) DO UPDATE SET
			rating = excluded.rating,
			review = excluded.review,
			updated_at = datetime('now')`,
		userID, movieID, stars, strings.TrimSpace(review),
	)
	if err != nil {
		return fmt.Errorf("saving rating: %w", err)
	}
	return nil
}

// ListForMovie returns every rating of the movie with the rater's username,
// most recently updated first.
func (s *Store) ListForMovie(ctx context.Context, movieID int64) ([]Rating, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.user_id, r.movie_id, u.username, r.rating, r.review,
			r.created_at, r.updated_at
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		WHERE r.movie_id = ?
		ORDER BY r.updated_at DESC, r.id DESC`, movieID)
	if err != nil {
		return nil, fmt.Errorf("listing ratings: %w", err)
	}
	defer rows.Close()

	out := []Rating{}
	for rows.Next() {
		var (
			r                Rating
			created, updated db.Timestamp
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.MovieID, &r.Username, &r.Stars, &r.Review,
			&created, &updated); err != nil {
			return nil, err
		}
		r.CreatedAt = created.Time
		r.UpdatedAt = updated.Time
		out = append(out, r)
	}
	return out, rows.Err()
}

// ForUser returns the user's rating of the movie, or nil.
func (s *Store) ForUser(ctx context.Context, userID, movieID int64) (*Rating, error) {
	all, err := s.ListForMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].UserID == userID {
			return &all[i], nil
		}
	}
	return nil, nil
}

// Average returns the mean rating rounded to one decimal. ok is false when
// the movie has no ratings.
func (s *Store) Average(ctx context.Context, movieID int64) (sum Summary, ok bool, err error) {
	var (
		total int
		count int
	)
	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(rating), 0), COUNT(*) FROM ratings WHERE movie_id = ?`, movieID,
	).Scan(&total, &count)
	if err != nil {
		return Summary{}, false, fmt.Errorf("averaging ratings: %w", err)
	}
	if count == 0 {
		return Summary{}, false, nil
	}
	return Summary{Average: Round1(float64(total) / float64(count)), Count: count}, true, nil
}

// Round1 rounds to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
