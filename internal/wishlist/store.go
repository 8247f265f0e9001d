package wishlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sivahkrishna/indian-movie-recommender/internal/db"
)

// Store manages per-user wishlist and watched entries.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Add puts the movie on the user's list. added is false when it was already
// there. A missing movie yields ErrNotFound.
func (s *Store) Add(ctx context.Context, userID, movieID int64, kind Kind) (added bool, err error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies WHERE id = ?`, movieID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking movie %d: %w", movieID, err)
	}
	if exists == 0 {
		return false, ErrNotFound
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO wishlist_items (user_id, movie_id, kind) VALUES (?, ?, ?)
		ON CONFLICT(user_id, movie_id, kind) DO NOTHING`,
		userID, movieID, string(kind),
	)
	if err != nil {
		return false, fmt.Errorf("adding to %s: %w", kind, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Remove deletes an entry owned by userID. Entries of other users are
// reported as ErrNotFound and left alone.
func (s *Store) Remove(ctx context.Context, userID, itemID int64) (Kind, error) {
	var kind string
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM wishlist_items WHERE id = ? AND user_id = ? RETURNING kind`,
		itemID, userID,
	).Scan(&kind)
	if err != nil {
		if isNoRows(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("removing list entry %d: %w", itemID, err)
	}
	return Kind(kind), nil
}

// List returns the user's entries of one kind, most recently added first.
func (s *Store) List(ctx context.Context, userID int64, kind Kind) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT w.id, w.user_id, w.movie_id, w.kind, m.title, m.language,
			m.release_year, m.poster, w.created_at
		FROM wishlist_items w
		JOIN movies m ON m.id = w.movie_id
		WHERE w.user_id = ? AND w.kind = ?
		ORDER BY w.created_at DESC, w.id DESC`,
		userID, string(kind),
	)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", kind, err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var (
			it    Item
			k     string
			added db.Timestamp
		)
		if err := rows.Scan(&it.ID, &it.UserID, &it.MovieID, &k, &it.Title, &it.Language,
			&it.ReleaseYear, &it.Poster, &added); err != nil {
			return nil, err
		}
		it.Kind = Kind(k)
		it.AddedAt = added.Time
		items = append(items, it)
	}
	return items, rows.Err()
}

// MovieIDs returns the set of movie IDs on the user's list.
func (s *Store) MovieIDs(ctx context.Context, userID int64, kind Kind) (map[int64]struct{}, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT movie_id FROM wishlist_items WHERE user_id = ? AND kind = ?`,
		userID, string(kind),
	)
	if err != nil {
		return nil, fmt.Errorf("loading %s ids: %w", kind, err)
	}
	defer rows.Close()

	ids := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// Contains reports whether the movie is on the user's list.
func (s *Store) Contains(ctx context.Context, userID, movieID int64, kind Kind) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wishlist_items WHERE user_id = ? AND movie_id = ? AND kind = ?`,
		userID, movieID, string(kind),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", kind, err)
	}
	return n > 0, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
