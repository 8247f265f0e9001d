package wishlist

import (
	"context"
	"errors"
	"testing"

	"github.com/sivahkrishna/indian-movie-recommender/internal/db"
)

type fixture struct {
	store  *Store
	users  []int64
	movies []int64
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	f := &fixture{store: NewStore(database)}
	for _, email := range []string{"a@example.com", "b@example.com"} {
		res, err := database.Exec(`INSERT INTO users (username, email, password_hash) VALUES (?, ?, 'x')`, email, email)
		if err != nil {
			t.Fatalf("insert user: %v", err)
		}
		id, _ := res.LastInsertId()
		f.users = append(f.users, id)
	}
	for _, title := range []string{"Baahubali", "Magadheera", "Eega"} {
		res, err := database.Exec(`INSERT INTO movies (title, language, genre, description, cast_members,
			director, keywords, release_year, poster) VALUES (?, 'Telugu', 'Action', 'd', 'c', 'Rajamouli', 'k', 2015, 'p')`, title)
		if err != nil {
			t.Fatalf("insert movie: %v", err)
		}
		id, _ := res.LastInsertId()
		f.movies = append(f.movies, id)
	}
	return f
}

func TestAddIsIdempotent(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	user, movie := f.users[0], f.movies[0]

	added, err := f.store.Add(ctx, user, movie, KindWishlist)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !added {
		t.Error("expected first add to report added")
	}

	added, err = f.store.Add(ctx, user, movie, KindWishlist)
	if err != nil {
		t.Fatalf("Add again: %v", err)
	}
	if added {
		t.Error("expected duplicate add to be a no-op")
	}

	items, _ := f.store.List(ctx, user, KindWishlist)
	if len(items) != 1 {
		t.Errorf("expected 1 entry, got %d", len(items))
	}

	// The same movie may sit on both lists.
	added, _ = f.store.Add(ctx, user, movie, KindWatched)
	if !added {
		t.Error("expected watched add to be independent of wishlist")
	}
}

func TestAddUnknownMovie(t *testing.T) {
	f := setupFixture(t)
	if _, err := f.store.Add(context.Background(), f.users[0], 9999, KindWishlist); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListJoinsMovies(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	user := f.users[0]
	f.store.Add(ctx, user, f.movies[0], KindWatched)
	f.store.Add(ctx, user, f.movies[2], KindWatched)
	f.store.Add(ctx, f.users[1], f.movies[1], KindWatched)

	items, err := f.store.List(ctx, user, KindWatched)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "Eega" || items[1].Title != "Baahubali" {
		t.Errorf("expected newest first, got %s, %s", items[0].Title, items[1].Title)
	}
	if items[0].Kind != KindWatched || items[0].Language != "Telugu" {
		t.Errorf("unexpected item: %+v", items[0])
	}
	if items[0].AddedAt.IsZero() {
		t.Error("expected added_at to be set")
	}

	wish, _ := f.store.List(ctx, user, KindWishlist)
	if len(wish) != 0 {
		t.Errorf("expected empty wishlist, got %d", len(wish))
	}
}

func TestRemoveOwnerOnly(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	owner, other := f.users[0], f.users[1]
	f.store.Add(ctx, owner, f.movies[0], KindWishlist)
	items, _ := f.store.List(ctx, owner, KindWishlist)
	itemID := items[0].ID

	if _, err := f.store.Remove(ctx, other, itemID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for non-owner, got %v", err)
	}
	if items, _ := f.store.List(ctx, owner, KindWishlist); len(items) != 1 {
		t.Fatal("non-owner removal must not delete the entry")
	}

	kind, err := f.store.Remove(ctx, owner, itemID)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if kind != KindWishlist {
		t.Errorf("expected kind wishlist, got %s", kind)
	}
	if _, err := f.store.Remove(ctx, owner, itemID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestMovieIDsAndContains(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	user := f.users[0]
	f.store.Add(ctx, user, f.movies[0], KindWatched)
	f.store.Add(ctx, user, f.movies[1], KindWatched)
	f.store.Add(ctx, user, f.movies[2], KindWishlist)

	ids, err := f.store.MovieIDs(ctx, user, KindWatched)
	if err != nil {
		t.Fatalf("MovieIDs: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %v", ids)
	}
	if _, ok := ids[f.movies[2]]; ok {
		t.Error("wishlist movie leaked into watched set")
	}

	empty, _ := f.store.MovieIDs(ctx, f.users[1], KindWatched)
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil set, got %v", empty)
	}

	ok, _ := f.store.Contains(ctx, user, f.movies[2], KindWishlist)
	if !ok {
		t.Error("expected Contains to report the wishlist movie")
	}
	ok, _ = f.store.Contains(ctx, user, f.movies[2], KindWatched)
	if ok {
		t.Error("expected Contains false for the other list")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"", KindWishlist, false},
		{"wishlist", KindWishlist, false},
		{"watched", KindWatched, false},
		{"favourites", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
