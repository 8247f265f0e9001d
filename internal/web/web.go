// Package web serves the HTML site: browsing, movie pages with related
// movies, personal lists, ratings, profile and the admin dashboard.
package web

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/sivahkrishna/indian-movie-recommender/internal/audit"
	"github.com/sivahkrishna/indian-movie-recommender/internal/auth"
	"github.com/sivahkrishna/indian-movie-recommender/internal/catalog"
	"github.com/sivahkrishna/indian-movie-recommender/internal/ratings"
	"github.com/sivahkrishna/indian-movie-recommender/internal/users"
	"github.com/sivahkrishna/indian-movie-recommender/internal/wishlist"
)

// Deps are the collaborators the site needs.
type Deps struct {
	Movies    *catalog.Service
	Users     *users.Store
	Lists     *wishlist.Store
	Ratings   *ratings.Store
	Sessions  *auth.Sessions
	Audit     *audit.Store // optional
	UploadDir string
	// LoginLimiter, if set, wraps the login and registration POST handlers.
	LoginLimiter func(http.Handler) http.Handler
}

// Site holds parsed templates and handler dependencies.
type Site struct {
	Deps
	pages map[string]*template.Template
	md    goldmark.Markdown
}

// New parses the embedded templates and returns a ready Site.
func New(deps Deps) (*Site, error) {
	s := &Site{
		Deps: deps,
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
	pages, err := parsePages(s.funcs())
	if err != nil {
		return nil, err
	}
	s.pages = pages
	return s, nil
}

// RegisterRoutes mounts every page onto r. The router must already run
// Sessions.Load so that handlers see the current user.
func (s *Site) RegisterRoutes(r chi.Router) {
	limit := s.LoginLimiter
	if limit == nil {
		limit = func(h http.Handler) http.Handler { return h }
	}

	r.Get("/", s.handleHome)
	r.Get("/register", s.handleRegisterForm)
	r.Method(http.MethodPost, "/register", limit(http.HandlerFunc(s.handleRegister)))
	r.Get("/login", s.handleLoginForm)
	r.Method(http.MethodPost, "/login", limit(http.HandlerFunc(s.handleLogin)))
	r.Post("/logout", s.handleLogout)

	r.Get("/movies", s.handleMovies)
	r.Get("/movies/{id}", s.handleMovie)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/profile", s.handleProfile)
		r.Post("/profile", s.handleProfileUpload)
		r.Post("/movies/{id}/rate", s.handleRate)
		r.Post("/movies/{id}/lists/{kind}", s.handleAddToList)
		r.Get("/wishlist", s.handleList(wishlist.KindWishlist))
		r.Get("/watched", s.handleList(wishlist.KindWatched))
		r.Post("/lists/{itemID}/remove", s.handleRemoveFromList)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Get("/movies/new", s.handleAddMovieForm)
		r.Post("/movies/new", s.handleAddMovie)
		r.Get("/admin", s.handleAdmin)
		r.Post("/admin/users/{id}/admin", s.handleToggleAdmin)
	})

	if s.UploadDir != "" {
		files := http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.UploadDir)))
		r.Get("/uploads/*", func(w http.ResponseWriter, r *http.Request) {
			// No directory listings.
			if strings.HasSuffix(r.URL.Path, "/") {
				s.notFound(w, r)
				return
			}
			files.ServeHTTP(w, r)
		})
	}
}
