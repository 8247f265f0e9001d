package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sivahkrishna/indian-movie-recommender/internal/auth"
	"github.com/sivahkrishna/indian-movie-recommender/internal/logging"
	"github.com/sivahkrishna/indian-movie-recommender/internal/users"
	"github.com/sivahkrishna/indian-movie-recommender/internal/validation"
)

type accountForm struct {
	Username string
	Email    string
	Next     string
	Errors   map[string]string
}

func (s *Site) handleHome(w http.ResponseWriter, r *http.Request) {
	latest, err := s.Movies.Store().List(r.Context(), featured)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "home", "Indian Movie Recommender", latest)
}

func (s *Site) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	if auth.CurrentUser(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, "register", "Register", accountForm{})
}

func (s *Site) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, r, http.StatusBadRequest, "register", "Register", accountForm{})
		return
	}
	reg := users.Registration{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	form := accountForm{Username: reg.Username, Email: reg.Email}

	if err := validation.ValidateStruct(&reg); err != nil {
		var verr *validation.RequestValidationError
		if errors.As(err, &verr) {
			form.Errors = verr.ByField()
		}
		s.render(w, r, http.StatusBadRequest, "register", "Register", form)
		return
	}

	u, err := s.Users.Create(r.Context(), reg.Username, reg.Email, reg.Password)
	if errors.Is(err, users.ErrEmailTaken) {
		setFlash(w, "danger", "Email already registered")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("user_id", u.ID).Msg("user registered")
	setFlash(w, "success", "Registration successful! Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Site) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if auth.CurrentUser(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, "login", "Log in", accountForm{Next: r.URL.Query().Get("next")})
}

func (s *Site) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, r, http.StatusBadRequest, "login", "Log in", accountForm{})
		return
	}
	in := users.Login{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	form := accountForm{Email: in.Email, Next: r.PostFormValue("next")}

	if err := validation.ValidateStruct(&in); err != nil {
		var verr *validation.RequestValidationError
		if errors.As(err, &verr) {
			form.Errors = verr.ByField()
		}
		s.render(w, r, http.StatusBadRequest, "login", "Log in", form)
		return
	}

	u, err := s.Users.Authenticate(r.Context(), in.Email, in.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		form.Errors = map[string]string{"form": "Invalid email or password"}
		s.render(w, r, http.StatusUnauthorized, "login", "Log in", form)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	if err := s.Sessions.SetCookie(w, u.ID, u.IsAdmin); err != nil {
		s.serverError(w, r, err)
		return
	}
	setFlash(w, "success", "Login successful")
	http.Redirect(w, r, safeNext(form.Next), http.StatusSeeOther)
}

func (s *Site) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.Sessions.ClearCookie(w)
	setFlash(w, "info", "Logged out successfully")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
