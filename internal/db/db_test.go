package db

import (
	"path/filepath"
	"testing"
	"time"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	tables := []string{"users", "movies", "wishlist_items", "ratings", "audit_entries"}
	for _, table := range tables {
		var count int
		if err := d.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "moviedb.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer d.Close()

	if d.Path() != path {
		t.Errorf("Path() = %q, want %q", d.Path(), path)
	}
	if _, err := d.Exec(`INSERT INTO movies (title) VALUES ('Kantara')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	_, err = d.Exec(`INSERT INTO ratings (user_id, movie_id, rating) VALUES (99, 99, 3)`)
	if err == nil {
		t.Error("expected foreign key violation")
	}
}

func TestRatingRangeChecked(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	d.Exec(`INSERT INTO users (username, email, password_hash) VALUES ('u', 'u@example.com', 'x')`)
	d.Exec(`INSERT INTO movies (title) VALUES ('Kantara')`)
	if _, err := d.Exec(`INSERT INTO ratings (user_id, movie_id, rating) VALUES (1, 1, 6)`); err == nil {
		t.Error("expected check constraint violation for rating 6")
	}
}

func TestTimestampScan(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"2024-03-01 10:20:30", "2024-03-01T10:20:30Z"},
		{[]byte("2024-03-01T10:20:30Z"), "2024-03-01T10:20:30Z"},
		{"2024-03-01", "2024-03-01T00:00:00Z"},
	}
	for _, tt := range tests {
		var ts Timestamp
		if err := ts.Scan(tt.in); err != nil {
			t.Errorf("Scan(%v): %v", tt.in, err)
			continue
		}
		if got := ts.Format(time.RFC3339); got != tt.want {
			t.Errorf("Scan(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}

	var ts Timestamp
	if err := ts.Scan("yesterday"); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
	if err := ts.Scan(nil); err != nil || !ts.IsZero() {
		t.Errorf("Scan(nil) = %v, zero=%v", err, ts.IsZero())
	}
}

func TestTimestampFromColumn(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	d.Exec(`INSERT INTO movies (title) VALUES ('Kantara')`)
	var ts Timestamp
	if err := d.QueryRow(`SELECT created_at FROM movies WHERE id = 1`).Scan(&ts); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if time.Since(ts.Time) > time.Hour || ts.IsZero() {
		t.Errorf("unexpected created_at %v", ts.Time)
	}
}
