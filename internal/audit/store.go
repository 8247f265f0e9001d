package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sivahkrishna/indian-movie-recommender/internal/db"
	"github.com/sivahkrishna/indian-movie-recommender/internal/logging"
)

const defaultLimit = 50

// Store persists audit entries.
type Store struct {
	db  *db.DB
	now func() time.Time
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database, now: time.Now}
}

// Log inserts a new audit entry. An empty ID gets a UUID and a zero
// CreatedAt gets the current time.
func (s *Store) Log(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_entries (id, created_at, actor_id, actor, action, subject, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.CreatedAt.UTC().Format(time.DateTime),
		entry.ActorID,
		entry.Actor,
		string(entry.Action),
		entry.Subject,
		entry.Detail,
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	return nil
}

// Record is Log for callers whose own change has already succeeded: a
// failure is logged and swallowed. A nil Store records nothing.
func (s *Store) Record(ctx context.Context, entry Entry) {
	if s == nil {
		return
	}
	if err := s.Log(ctx, entry); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("action", string(entry.Action)).Msg("audit entry dropped")
	}
}

// QueryFilter controls which audit entries are returned by Query.
type QueryFilter struct {
	ActorID int64
	Action  Action
	Since   *time.Time
	Limit   int
	Offset  int
}

// Query returns entries matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if filter.ActorID != 0 {
		where = append(where, "actor_id = ?")
		args = append(args, filter.ActorID)
	}
	if filter.Action != "" {
		where = append(where, "action = ?")
		args = append(args, string(filter.Action))
	}
	if filter.Since != nil {
		where = append(where, "created_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}

	query := "SELECT id, created_at, actor_id, actor, action, subject, detail FROM audit_entries"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, max(filter.Offset, 0))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e      Entry
			action string
			ts     db.Timestamp
		)
		if err := rows.Scan(&e.ID, &ts, &e.ActorID, &e.Actor, &action, &e.Subject, &e.Detail); err != nil {
			return nil, err
		}
		e.CreatedAt = ts.Time
		e.Action = Action(action)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteBefore removes all audit entries older than the given time.
// Returns the number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM audit_entries WHERE created_at < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old audit entries: %w", err)
	}
	return res.RowsAffected()
}
