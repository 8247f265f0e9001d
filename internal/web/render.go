package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/sivahkrishna/indian-movie-recommender/internal/auth"
	"github.com/sivahkrishna/indian-movie-recommender/internal/logging"
	"github.com/sivahkrishna/indian-movie-recommender/internal/users"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// page is the data every template receives.
type page struct {
	Title string
	User  *users.User
	Flash *flash
	Data  any
}

func parsePages(funcs template.FuncMap) (map[string]*template.Template, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(f), ".html")
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layoutFile, f)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

func (s *Site) funcs() template.FuncMap {
	return template.FuncMap{
		"markdown": s.markdown,
		"stars": func(n int) string {
			if n < 0 {
				n = 0
			}
			if n > 5 {
				n = 5
			}
			return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
		},
		"seq": func(from, to int) []int {
			var out []int
			for i := from; i <= to; i++ {
				out = append(out, i)
			}
			return out
		},
		"hasCustomImage": func(u *users.User) bool {
			return u != nil && u.ProfileImage != "" && u.ProfileImage != users.DefaultProfileImage
		},
	}
}

// markdown renders user-supplied text. Raw HTML in the input is escaped.
func (s *Site) markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// render executes a page into a buffer first so a template error never
// leaves a half-written response.
func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	t, ok := s.pages[name]
	if !ok {
		s.serverError(w, r, fmt.Errorf("unknown template %q", name))
		return
	}

	p := page{
		Title: title,
		User:  auth.CurrentUser(r.Context()),
		Flash: popFlash(w, r),
		Data:  data,
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("template", name).Msg("rendering page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (s *Site) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "error", "Not found", errorPage{
		Status:  http.StatusNotFound,
		Message: "The page you were looking for does not exist.",
	})
}

func (s *Site) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	if _, ok := s.pages["error"]; !ok {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusInternalServerError, "error", "Error", errorPage{
		Status:  http.StatusInternalServerError,
		Message: "Something went wrong. Please try again.",
	})
}

type errorPage struct {
	Status  int
	Message string
}

// redirectBack sends the user to the Referer when it is a local path.
func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := fallback
	if ref := r.Referer(); ref != "" {
		if i := strings.Index(ref, "://"); i >= 0 {
			rest := ref[i+3:]
			if j := strings.Index(rest, "/"); j >= 0 && strings.HasPrefix(rest, r.Host) {
				target = rest[j:]
			}
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeNext accepts only local absolute paths for post-login redirects.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\") {
		return next
	}
	return "/dashboard"
}
