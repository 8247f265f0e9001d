package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sivahkrishna/indian-movie-recommender/internal/db"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestLogAndQuery(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{ActorID: 1, Actor: "asha", Action: ActionMovieCreated, Subject: "Kaithi", CreatedAt: base},
		{ActorID: 1, Actor: "asha", Action: ActionAdminGranted, Subject: "ravi@example.com", CreatedAt: base.Add(time.Minute)},
		{Actor: ActorCLI, Action: ActionDatasetImported, Subject: "movies.csv", Detail: "120 movies", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	all, err := store.Query(ctx, QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[0].Action != ActionDatasetImported || all[2].Action != ActionMovieCreated {
		t.Errorf("entries not newest first: %v", all)
	}
	if all[0].ID == "" {
		t.Error("expected generated ID")
	}
	if !all[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("CreatedAt = %v", all[0].CreatedAt)
	}
	if all[0].Detail != "120 movies" {
		t.Errorf("Detail = %q", all[0].Detail)
	}

	since := base.Add(30 * time.Second)
	tests := []struct {
		name   string
		filter QueryFilter
		want   int
	}{
		{"by actor", QueryFilter{ActorID: 1}, 2},
		{"by action", QueryFilter{Action: ActionAdminGranted}, 1},
		{"since", QueryFilter{Since: &since}, 2},
		{"limit", QueryFilter{Limit: 1}, 1},
		{"offset", QueryFilter{Offset: 2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Query(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d entries, want %d", len(got), tt.want)
			}
		})
	}
}

func TestDeleteBefore(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	old := time.Now().Add(-48 * time.Hour)
	store.Log(ctx, Entry{Actor: ActorCLI, Action: ActionUserCreated, Subject: "old", CreatedAt: old})
	store.Log(ctx, Entry{Actor: ActorCLI, Action: ActionUserCreated, Subject: "new"})

	n, err := store.DeleteBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}
	rest, _ := store.Query(ctx, QueryFilter{})
	if len(rest) != 1 || rest[0].Subject != "new" {
		t.Errorf("unexpected remaining entries: %v", rest)
	}
}

func TestRecordNilStore(t *testing.T) {
	var store *Store
	// Must not panic.
	store.Record(context.Background(), Entry{Action: ActionMovieDeleted})
}

func TestQueryRoute(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	store.Record(ctx, Entry{ActorID: 2, Actor: "meera", Action: ActionMovieUpdated, Subject: "Drishyam"})
	store.Record(ctx, Entry{ActorID: 3, Actor: "arjun", Action: ActionMovieDeleted, Subject: "Kaaka"})

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest(http.MethodGet, "/api/audit?actor=2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []Entry
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Subject != "Drishyam" || got[0].Action != ActionMovieUpdated {
		t.Errorf("unexpected entries: %+v", got)
	}
}
