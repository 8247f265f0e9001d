package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sivahkrishna/indian-movie-recommender/internal/auth"
	"github.com/sivahkrishna/indian-movie-recommender/internal/logging"
	"github.com/sivahkrishna/indian-movie-recommender/internal/users"
	"github.com/sivahkrishna/indian-movie-recommender/internal/wishlist"
)

// MaxUploadBytes caps profile image uploads.
const MaxUploadBytes = 5 << 20

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

type dashboardData struct {
	Wishlist []wishlist.Item
	Watched  []wishlist.Item
}

func (s *Site) handleDashboard(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r.Context())
	wish, err := s.Lists.List(r.Context(), u.ID, wishlist.KindWishlist)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	watched, err := s.Lists.List(r.Context(), u.ID, wishlist.KindWatched)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "dashboard", "Dashboard", dashboardData{Wishlist: wish, Watched: watched})
}

func (s *Site) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "profile", "Profile", nil)
}

func (s *Site) handleProfileUpload(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		setFlash(w, "danger", "Upload too large (max 5 MB)")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		setFlash(w, "warning", "Choose an image to upload")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}
	defer file.Close()

	if header.Size > MaxUploadBytes {
		setFlash(w, "danger", "Upload too large (max 5 MB)")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	name, err := s.saveUpload(file, header.Filename)
	if err != nil {
		if errors.Is(err, errBadImage) {
			setFlash(w, "danger", "Only PNG, JPG and GIF images are allowed")
			http.Redirect(w, r, "/profile", http.StatusSeeOther)
			return
		}
		s.serverError(w, r, err)
		return
	}

	if err := s.Users.SetProfileImage(r.Context(), u.ID, name); err != nil {
		s.removeUpload(r.Context(), name)
		s.serverError(w, r, err)
		return
	}
	if u.ProfileImage != name {
		s.removeUpload(r.Context(), u.ProfileImage)
	}

	setFlash(w, "success", "Profile image updated")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

var errBadImage = errors.New("unsupported image type")

// saveUpload stores the file under a random name that keeps the original
// extension. Both the extension and the sniffed content must be images.
func (s *Site) saveUpload(src io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExts[ext] {
		return "", errBadImage
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	head = head[:n]
	if !strings.HasPrefix(http.DetectContentType(head), "image/") {
		return "", errBadImage
	}

	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}
	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.UploadDir, name))
	if err != nil {
		return "", fmt.Errorf("creating upload: %w", err)
	}
	defer dst.Close()

	if _, err := dst.Write(head); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	return name, nil
}

func (s *Site) removeUpload(ctx context.Context, name string) {
	if name == "" || name == users.DefaultProfileImage || strings.ContainsAny(name, `/\`) || !allowedImageExts[strings.ToLower(filepath.Ext(name))] {
		return
	}
	if err := os.Remove(filepath.Join(s.UploadDir, name)); err != nil && !os.IsNotExist(err) {
		logging.Ctx(ctx).Warn().Err(err).Str("file", name).Msg("removing old profile image")
	}
}
