package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sivahkrishna/indian-movie-recommender/internal/audit"
	"github.com/sivahkrishna/indian-movie-recommender/internal/auth"
	"github.com/sivahkrishna/indian-movie-recommender/internal/catalog"
	"github.com/sivahkrishna/indian-movie-recommender/internal/logging"
	"github.com/sivahkrishna/indian-movie-recommender/internal/ratings"
	"github.com/sivahkrishna/indian-movie-recommender/internal/validation"
	"github.com/sivahkrishna/indian-movie-recommender/internal/wishlist"
)

var featured = catalog.Filter{Limit: 12}

type moviesData struct {
	Movies    []catalog.Movie
	Filter    catalog.Filter
	Languages []string
	Genres    []string
	Years     []int
}

func (s *Site) handleMovies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := catalog.ParseFilter(r)
	store := s.Movies.Store()

	movies, err := store.List(ctx, filter)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	data := moviesData{Movies: movies, Filter: filter}
	if data.Languages, err = store.Languages(ctx); err != nil {
		s.serverError(w, r, err)
		return
	}
	if data.Genres, err = store.Genres(ctx); err != nil {
		s.serverError(w, r, err)
		return
	}
	if data.Years, err = store.Years(ctx); err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "movies", "Movies", data)
}

type movieData struct {
	Movie      *catalog.Movie
	Related    []catalog.Movie
	Ratings    []ratings.Rating
	Summary    ratings.Summary
	HasRatings bool
	MyRating   *ratings.Rating
	InWishlist bool
	Watched    bool
}

func pathID(r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	return id, err == nil && id > 0
}

func (s *Site) handleMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(r, "id")
	if !ok {
		s.notFound(w, r)
		return
	}
	m, err := s.Movies.Store().GetByID(ctx, id)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if m == nil {
		s.notFound(w, r)
		return
	}

	data := movieData{Movie: m}

	var watched map[int64]struct{}
	if u := auth.CurrentUser(ctx); u != nil {
		if watched, err = s.Lists.MovieIDs(ctx, u.ID, wishlist.KindWatched); err != nil {
			s.serverError(w, r, err)
			return
		}
		_, data.Watched = watched[m.ID]
		if data.InWishlist, err = s.Lists.Contains(ctx, u.ID, m.ID, wishlist.KindWishlist); err != nil {
			s.serverError(w, r, err)
			return
		}
		if data.MyRating, err = s.Ratings.ForUser(ctx, u.ID, m.ID); err != nil {
			s.serverError(w, r, err)
			return
		}
	}

	if data.Related, err = s.Movies.Related(ctx, m.ID, watched); err != nil {
		s.serverError(w, r, err)
		return
	}
	if data.Ratings, err = s.Ratings.ListForMovie(ctx, m.ID); err != nil {
		s.serverError(w, r, err)
		return
	}
	if data.Summary, data.HasRatings, err = s.Ratings.Average(ctx, m.ID); err != nil {
		s.serverError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "movie", m.Title, data)
}

func (s *Site) handleRate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(r, "id")
	if !ok {
		s.notFound(w, r)
		return
	}
	u := auth.CurrentUser(ctx)
	back := "/movies/" + strconv.FormatInt(id, 10)

	stars, _ := strconv.Atoi(r.PostFormValue("rating"))
	form := ratings.Form{Stars: stars, Review: r.PostFormValue("review")}
	if err := validation.ValidateStruct(&form); err != nil {
		setFlash(w, "danger", "Pick a rating between 1 and 5 stars")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	err := s.Ratings.Upsert(ctx, u.ID, id, form.Stars, form.Review)
	if errors.Is(err, ratings.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	setFlash(w, "success", "Rating & review saved")
	http.Redirect(w, r, back, http.StatusSeeOther)
}

type movieForm struct {
	Movie  catalog.Movie
	Year   string
	Errors map[string]string
}

func (s *Site) handleAddMovieForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "add_movie", "Add movie", movieForm{})
}

func (s *Site) handleAddMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		s.render(w, r, http.StatusBadRequest, "add_movie", "Add movie", movieForm{})
		return
	}
	field := func(name string) string { return strings.TrimSpace(r.PostFormValue(name)) }

	form := movieForm{
		Movie: catalog.Movie{
			Title:       field("title"),
			Language:    field("language"),
			Genre:       field("genre"),
			Description: field("description"),
			Cast:        field("cast"),
			Director:    field("director"),
			Keywords:    field("keywords"),
			Poster:      field("poster"),
		},
		Year: field("release_year"),
	}
	form.Errors = map[string]string{}
	if year, err := strconv.Atoi(form.Year); err == nil {
		form.Movie.ReleaseYear = year
	} else {
		form.Errors["release_year"] = "release_year must be a whole number"
	}
	if err := validation.ValidateStruct(&form.Movie); err != nil {
		var verr *validation.RequestValidationError
		if errors.As(err, &verr) {
			for k, v := range verr.ByField() {
				if _, seen := form.Errors[k]; !seen {
					form.Errors[k] = v
				}
			}
		}
	}
	if len(form.Errors) > 0 {
		s.render(w, r, http.StatusBadRequest, "add_movie", "Add movie", form)
		return
	}

	created, err := s.Movies.Store().Create(ctx, form.Movie)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	logging.Ctx(ctx).Info().Int64("movie_id", created.ID).Str("title", created.Title).Msg("movie added")
	s.record(r, audit.ActionMovieCreated, created.Title, "movie "+strconv.FormatInt(created.ID, 10))
	setFlash(w, "success", "Movie added successfully!")
	http.Redirect(w, r, "/movies/"+strconv.FormatInt(created.ID, 10), http.StatusSeeOther)
}
