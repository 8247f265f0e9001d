package web

import (
	"errors"
	"net/http"

	"github.com/sivahkrishna/indian-movie-recommender/internal/audit"
	"github.com/sivahkrishna/indian-movie-recommender/internal/auth"
	"github.com/sivahkrishna/indian-movie-recommender/internal/catalog"
	"github.com/sivahkrishna/indian-movie-recommender/internal/logging"
	"github.com/sivahkrishna/indian-movie-recommender/internal/users"
)

// recentActivity is how many audit entries the admin dashboard shows.
const recentActivity = 20

type adminData struct {
	Users    []users.User
	Movies   []catalog.Movie
	Activity []audit.Entry
}

func (s *Site) handleAdmin(w http.ResponseWriter, r *http.Request) {
	all, err := s.Users.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	movies, err := s.Movies.Store().All(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	data := adminData{Users: all, Movies: movies}
	if s.Audit != nil {
		if data.Activity, err = s.Audit.Query(r.Context(), audit.QueryFilter{Limit: recentActivity}); err != nil {
			s.serverError(w, r, err)
			return
		}
	}
	s.render(w, r, http.StatusOK, "admin", "Admin dashboard", data)
}

func (s *Site) handleToggleAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		s.notFound(w, r)
		return
	}
	me := auth.CurrentUser(r.Context())
	grant := r.PostFormValue("admin") == "1"

	if id == me.ID && !grant {
		setFlash(w, "warning", "You cannot revoke your own admin rights")
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	target, err := s.Users.GetByID(r.Context(), id)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if target == nil {
		s.notFound(w, r)
		return
	}
	err = s.Users.SetAdminByID(r.Context(), id, grant)
	if errors.Is(err, users.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	action := audit.ActionAdminRevoked
	if grant {
		action = audit.ActionAdminGranted
	}
	s.record(r, action, target.Email, "")
	logging.Ctx(r.Context()).Info().Int64("by", me.ID).Int64("user_id", id).Bool("admin", grant).Msg("admin flag changed")
	setFlash(w, "success", "Admin rights updated")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// record adds an audit entry attributed to the signed-in user.
func (s *Site) record(r *http.Request, action audit.Action, subject, detail string) {
	e := audit.Entry{Action: action, Subject: subject, Detail: detail}
	if u := auth.CurrentUser(r.Context()); u != nil {
		e.ActorID = u.ID
		e.Actor = u.Username
	}
	s.Audit.Record(r.Context(), e)
}
