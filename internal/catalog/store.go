package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sivahkrishna/indian-movie-recommender/internal/db"
)

// Store provides CRUD operations for movies.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

const movieColumns = `id, title, language, genre, description, cast_members, director,
	keywords, release_year, poster, created_at`

// Create inserts a movie and returns it with its assigned ID.
func (s *Store) Create(ctx context.Context, m Movie) (*Movie, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO movies (title, language, genre, description, cast_members,
			director, keywords, release_year, poster)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Title, m.Language, m.Genre, m.Description, m.Cast,
		m.Director, m.Keywords, m.ReleaseYear, m.Poster,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting movie: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading movie id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// CreateMany inserts movies in a single transaction. The callback, if set,
// is called after each insert with the running count.
func (s *Store) CreateMany(ctx context.Context, movies []Movie, progress func(done int)) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting import transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO movies (title, language, genre, description, cast_members,
			director, keywords, release_year, poster)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range movies {
		if _, err := stmt.ExecContext(ctx,
			m.Title, m.Language, m.Genre, m.Description, m.Cast,
			m.Director, m.Keywords, m.ReleaseYear, m.Poster,
		); err != nil {
			return 0, fmt.Errorf("inserting %q: %w", m.Title, err)
		}
		if progress != nil {
			progress(i + 1)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return len(movies), nil
}

// Update overwrites every editable field of the movie with m.ID.
func (s *Store) Update(ctx context.Context, m Movie) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE movies SET title = ?, language = ?, genre = ?, description = ?,
			cast_members = ?, director = ?, keywords = ?, release_year = ?, poster = ?
		WHERE id = ?`,
		m.Title, m.Language, m.Genre, m.Description, m.Cast,
		m.Director, m.Keywords, m.ReleaseYear, m.Poster, m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating movie %d: %w", m.ID, err)
	}
	return requireRow(res)
}

// Delete removes a movie along with its ratings and list entries.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting movie %d: %w", id, err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns the movie, or nil if it does not exist.
func (s *Store) GetByID(ctx context.Context, id int64) (*Movie, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)
	m, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading movie %d: %w", id, err)
	}
	return m, nil
}

// GetByIDs returns the movies with the given IDs in the order requested.
// IDs that no longer exist are skipped.
func (s *Store) GetByIDs(ctx context.Context, ids []int64) ([]Movie, error) {
	if len(ids) == 0 {
		return []Movie{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	found, err := s.query(ctx, `SELECT `+movieColumns+` FROM movies WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]Movie, len(found))
	for _, m := range found {
		byID[m.ID] = m
	}
	out := make([]Movie, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// List returns movies matching the filter, oldest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]Movie, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Search != "" {
		clauses = append(clauses, "title LIKE ?")
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.Language != "" {
		clauses = append(clauses, "language = ?")
		args = append(args, filter.Language)
	}
	if filter.Genre != "" {
		clauses = append(clauses, "genre LIKE ?")
		args = append(args, "%"+filter.Genre+"%")
	}
	if filter.Year != 0 {
		clauses = append(clauses, "release_year = ?")
		args = append(args, filter.Year)
	}

	query := `SELECT ` + movieColumns + ` FROM movies`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	return s.query(ctx, query, args...)
}

// All returns the full catalog in ID order. The recommender needs this
// snapshot; the stable order keeps its tie-breaking reproducible.
func (s *Store) All(ctx context.Context) ([]Movie, error) {
	return s.List(ctx, Filter{})
}

// Count returns the number of movies.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting movies: %w", err)
	}
	return n, nil
}

// Languages returns the distinct languages, alphabetically.
func (s *Store) Languages(ctx context.Context) ([]string, error) {
	return s.distinctStrings(ctx, `SELECT DISTINCT language FROM movies WHERE language != '' ORDER BY language`)
}

// Genres returns the distinct genre strings, alphabetically.
func (s *Store) Genres(ctx context.Context) ([]string, error) {
	return s.distinctStrings(ctx, `SELECT DISTINCT genre FROM movies WHERE genre != '' ORDER BY genre`)
}

// Years returns the distinct release years, newest first.
func (s *Store) Years(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT release_year FROM movies WHERE release_year > 0 ORDER BY release_year DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing years: %w", err)
	}
	defer rows.Close()

	years := []int{}
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

func (s *Store) distinctStrings(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing distinct values: %w", err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Movie, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying movies: %w", err)
	}
	defer rows.Close()

	movies := []Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *m)
	}
	return movies, rows.Err()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(sc scanner) (*Movie, error) {
	var (
		m       Movie
		created db.Timestamp
	)
	err := sc.Scan(
		&m.ID, &m.Title, &m.Language, &m.Genre, &m.Description, &m.Cast,
		&m.Director, &m.Keywords, &m.ReleaseYear, &m.Poster, &created,
	)
	if err != nil {
		return nil, err
	}
	m.CreatedAt = created.Time
	return &m, nil
}
