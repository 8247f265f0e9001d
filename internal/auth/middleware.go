package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/sivahkrishna/indian-movie-recommender/internal/logging"
	"github.com/sivahkrishna/indian-movie-recommender/internal/users"
)

// UserSource resolves the user a session belongs to.
type UserSource interface {
	GetByID(ctx context.Context, id int64) (*users.User, error)
}

type ctxKey struct{}

// WithUser returns ctx carrying u.
func WithUser(ctx context.Context, u *users.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// CurrentUser returns the signed-in user, or nil.
func CurrentUser(ctx context.Context) *users.User {
	u, _ := ctx.Value(ctxKey{}).(*users.User)
	return u
}

// Load attaches the session's user to the request context. Invalid or stale
// sessions are cleared and the request continues anonymously. The user is
// re-read on every request so that admin changes apply immediately.
func (s *Sessions) Load(src UserSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := s.FromRequest(r)
			if errors.Is(err, ErrNoSession) {
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				logging.Ctx(r.Context()).Debug().Err(err).Msg("discarding session")
				s.ClearCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			u, err := src.GetByID(r.Context(), claims.UserID)
			if err != nil {
				logging.Ctx(r.Context()).Error().Err(err).Int64("user_id", claims.UserID).Msg("loading session user")
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if u == nil {
				s.ClearCookie(w)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// RequireUser rejects anonymous requests: API paths get 401, pages are
// redirected to /login with a next parameter.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) == nil {
			unauthenticated(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin is RequireUser plus a 403 for non-admins.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := CurrentUser(r.Context())
		if u == nil {
			unauthenticated(w, r)
			return
		}
		if !u.IsAdmin {
			logging.Ctx(r.Context()).Warn().Int64("user_id", u.ID).Str("path", r.URL.Path).Msg("admin access denied")
			if wantsJSON(r) {
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthenticated(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
}

func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
