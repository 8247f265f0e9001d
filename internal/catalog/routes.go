package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sivahkrishna/indian-movie-recommender/internal/audit"
	"github.com/sivahkrishna/indian-movie-recommender/internal/auth"
	"github.com/sivahkrishna/indian-movie-recommender/internal/logging"
	"github.com/sivahkrishna/indian-movie-recommender/internal/validation"
)

// WatchedLookup returns the requesting user's watched movie IDs, or nil for
// anonymous requests.
type WatchedLookup func(r *http.Request) (map[int64]struct{}, error)

// RouteOptions wires request-scoped collaborators into the JSON API.
type RouteOptions struct {
	Watched   WatchedLookup
	AdminOnly func(http.Handler) http.Handler
	// Audit, if set, records every create, update and delete.
	Audit *audit.Store
}

// RegisterRoutes mounts the movie JSON API under /api/movies.
func RegisterRoutes(r chi.Router, svc *Service, opts RouteOptions) {
	r.Route("/api/movies", func(r chi.Router) {
		r.Get("/", handleList(svc.Store()))
		r.Get("/{id}", handleGet(svc.Store()))
		r.Get("/{id}/related", handleRelated(svc, opts.Watched))

		r.Group(func(r chi.Router) {
			if opts.AdminOnly != nil {
				r.Use(opts.AdminOnly)
			}
			r.Post("/", handleCreate(svc.Store(), opts.Audit))
			r.Put("/{id}", handleUpdate(svc.Store(), opts.Audit))
			r.Delete("/{id}", handleDelete(svc.Store(), opts.Audit))
		})
	})
}

// ParseFilter reads the movie list filter from query parameters.
func ParseFilter(r *http.Request) Filter {
	q := r.URL.Query()
	f := Filter{
		Search:   q.Get("search"),
		Language: q.Get("language"),
		Genre:    q.Get("genre"),
	}
	if n, err := strconv.Atoi(q.Get("year")); err == nil {
		f.Year = n
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		f.Limit = n
	}
	if n, err := strconv.Atoi(q.Get("offset")); err == nil && n > 0 {
		f.Offset = n
	}
	return f
}

func movieID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movies, err := store.List(r.Context(), ParseFilter(r))
		if err != nil {
			serverError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, movies)
	}
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := movieID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid movie id")
			return
		}
		m, err := store.GetByID(r.Context(), id)
		if err != nil {
			serverError(w, r, err)
			return
		}
		if m == nil {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

type relatedResponse struct {
	MovieID int64          `json:"movie_id"`
	Related []relatedMovie `json:"related"`
}

type relatedMovie struct {
	Movie
	Score float64 `json:"score"`
}

func handleRelated(svc *Service, watchedFn WatchedLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := movieID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid movie id")
			return
		}

		m, err := svc.Store().GetByID(r.Context(), id)
		if err != nil {
			serverError(w, r, err)
			return
		}
		if m == nil {
			writeError(w, http.StatusNotFound, "not found")
			return
		}

		var watched map[int64]struct{}
		if watchedFn != nil {
			if watched, err = watchedFn(r); err != nil {
				serverError(w, r, err)
				return
			}
		}

		scored, err := svc.RelatedIDs(r.Context(), id, watched)
		if err != nil {
			serverError(w, r, err)
			return
		}
		ids := make([]int64, len(scored))
		for i, s := range scored {
			ids[i] = s.ID
		}
		movies, err := svc.Store().GetByIDs(r.Context(), ids)
		if err != nil {
			serverError(w, r, err)
			return
		}

		scores := make(map[int64]float64, len(scored))
		for _, s := range scored {
			scores[s.ID] = s.Score
		}
		resp := relatedResponse{MovieID: id, Related: make([]relatedMovie, len(movies))}
		for i, rm := range movies {
			resp.Related[i] = relatedMovie{Movie: rm, Score: scores[rm.ID]}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func decodeMovie(w http.ResponseWriter, r *http.Request) (Movie, bool) {
	var m Movie
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return m, false
	}
	if err := validation.ValidateStruct(&m); err != nil {
		writeJSON(w, http.StatusBadRequest, err)
		return m, false
	}
	return m, true
}

func handleCreate(store *Store, trail *audit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := decodeMovie(w, r)
		if !ok {
			return
		}
		created, err := store.Create(r.Context(), m)
		if err != nil {
			serverError(w, r, err)
			return
		}
		logging.Ctx(r.Context()).Info().Int64("movie_id", created.ID).Str("title", created.Title).Msg("movie created")
		record(r, trail, audit.ActionMovieCreated, created)
		writeJSON(w, http.StatusCreated, created)
	}
}

func handleUpdate(store *Store, trail *audit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := movieID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid movie id")
			return
		}
		m, ok := decodeMovie(w, r)
		if !ok {
			return
		}
		m.ID = id
		if err := store.Update(r.Context(), m); err != nil {
			if errors.Is(err, ErrNotFound) {
				writeError(w, http.StatusNotFound, "not found")
				return
			}
			serverError(w, r, err)
			return
		}
		updated, err := store.GetByID(r.Context(), id)
		if err != nil {
			serverError(w, r, err)
			return
		}
		record(r, trail, audit.ActionMovieUpdated, updated)
		writeJSON(w, http.StatusOK, updated)
	}
}

func handleDelete(store *Store, trail *audit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := movieID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid movie id")
			return
		}
		m, err := store.GetByID(r.Context(), id)
		if err != nil {
			serverError(w, r, err)
			return
		}
		if m == nil {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		if err := store.Delete(r.Context(), id); err != nil {
			if errors.Is(err, ErrNotFound) {
				writeError(w, http.StatusNotFound, "not found")
				return
			}
			serverError(w, r, err)
			return
		}
		record(r, trail, audit.ActionMovieDeleted, m)
		w.WriteHeader(http.StatusNoContent)
	}
}

// record adds an audit entry attributed to the signed-in user.
func record(r *http.Request, trail *audit.Store, action audit.Action, m *Movie) {
	if trail == nil || m == nil {
		return
	}
	e := audit.Entry{Action: action, Subject: m.Title, Detail: fmt.Sprintf("movie %d", m.ID)}
	if u := auth.CurrentUser(r.Context()); u != nil {
		e.ActorID = u.ID
		e.Actor = u.Username
	}
	trail.Record(r.Context(), e)
}

func serverError(w http.ResponseWriter, r *http.Request, err error) {
	logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("movie API error")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
