package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sivahkrishna/indian-movie-recommender/internal/auth"
	"github.com/sivahkrishna/indian-movie-recommender/internal/wishlist"
)

type listData struct {
	Kind  wishlist.Kind
	Items []wishlist.Item
}

func (s *Site) handleList(kind wishlist.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := auth.CurrentUser(r.Context())
		items, err := s.Lists.List(r.Context(), u.ID, kind)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		s.render(w, r, http.StatusOK, "list", kind.Label(), listData{Kind: kind, Items: items})
	}
}

func (s *Site) handleAddToList(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		s.notFound(w, r)
		return
	}
	kind, err := wishlist.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.notFound(w, r)
		return
	}
	u := auth.CurrentUser(r.Context())

	added, err := s.Lists.Add(r.Context(), u.ID, id, kind)
	if errors.Is(err, wishlist.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if added {
		setFlash(w, "success", "Added to "+kind.Label())
	} else {
		setFlash(w, "info", "Already in "+kind.Label())
	}
	redirectBack(w, r, "/"+string(kind))
}

func (s *Site) handleRemoveFromList(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(r, "itemID")
	if !ok {
		s.notFound(w, r)
		return
	}
	u := auth.CurrentUser(r.Context())

	kind, err := s.Lists.Remove(r.Context(), u.ID, itemID)
	if errors.Is(err, wishlist.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	setFlash(w, "warning", "Removed from "+kind.Label())
	http.Redirect(w, r, "/"+string(kind), http.StatusSeeOther)
}
