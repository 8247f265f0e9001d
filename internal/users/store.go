package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sivahkrishna/indian-movie-recommender/internal/db"
)

// Store provides persistence for user accounts.
type Store struct {
	db   *db.DB
	cost int
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// WithHashCost returns a copy of the store that hashes with the given bcrypt
// cost. Tests use bcrypt.MinCost to stay fast.
func (s *Store) WithHashCost(cost int) *Store {
	return &Store{db: s.db, cost: cost}
}

const userColumns = `id, username, email, password_hash, profile_image, is_admin, created_at`

// Create registers a new account. Emails are compared case-insensitively.
func (s *Store) Create(ctx context.Context, username, email, password string) (*User, error) {
	email = strings.TrimSpace(email)

	existing, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, profile_image)
		VALUES (?, ?, ?, ?)`,
		strings.TrimSpace(username), email, hash, DefaultProfileImage,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading user id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// Authenticate returns the user whose email and password match.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if u == nil || !CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetByID returns the user, or nil if it does not exist.
func (s *Store) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByEmail returns the user, or nil if it does not exist.
func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (s *Store) getOne(ctx context.Context, query string, arg any) (*User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return u, nil
}

// List returns every user in registration order.
func (s *Store) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// SetAdmin grants or revokes admin rights for the account with email.
func (s *Store) SetAdmin(ctx context.Context, email string, admin bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET is_admin = ? WHERE email = ?`, admin, strings.TrimSpace(email))
	if err != nil {
		return fmt.Errorf("updating admin flag: %w", err)
	}
	return requireRow(res)
}

// SetAdminByID is SetAdmin keyed by user ID, used by the admin dashboard.
func (s *Store) SetAdminByID(ctx context.Context, id int64, admin bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET is_admin = ? WHERE id = ?`, admin, id)
	if err != nil {
		return fmt.Errorf("updating admin flag: %w", err)
	}
	return requireRow(res)
}

// SetProfileImage records the stored file name of the user's picture.
func (s *Store) SetProfileImage(ctx context.Context, id int64, filename string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET profile_image = ? WHERE id = ?`, filename, id)
	if err != nil {
		return fmt.Errorf("updating profile image: %w", err)
	}
	return requireRow(res)
}

// Count returns the number of registered users.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
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

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(sc scanner) (*User, error) {
	var (
		u       User
		created db.Timestamp
	)
	if err := sc.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.ProfileImage, &u.IsAdmin, &created); err != nil {
		return nil, err
	}
	u.CreatedAt = created.Time
	return &u, nil
}
