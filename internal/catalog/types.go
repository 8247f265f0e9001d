package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sivahkrishna/indian-movie-recommender/internal/recommender"
)

// ErrNotFound is returned by mutating operations on a missing movie.
var ErrNotFound = errors.New("movie not found")

// Movie is a catalog entry.
type Movie struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title" validate:"required,max=200"`
	Language    string    `json:"language" validate:"required,max=50"`
	Genre       string    `json:"genre" validate:"required,max=200"`
	Description string    `json:"description" validate:"required"`
	Cast        string    `json:"cast" validate:"required"`
	Director    string    `json:"director" validate:"required,max=100"`
	Keywords    string    `json:"keywords" validate:"required"`
	ReleaseYear int       `json:"release_year" validate:"gte=1888,lte=2100"`
	Poster      string    `json:"poster" validate:"required,max=300"`
	CreatedAt   time.Time `json:"created_at"`
}

// Item converts the movie into the recommender's value record.
func (m Movie) Item() recommender.Item {
	return recommender.Item{
		ID:          m.ID,
		Title:       m.Title,
		Genre:       m.Genre,
		Language:    m.Language,
		Cast:        m.Cast,
		Director:    m.Director,
		Keywords:    m.Keywords,
		Description: m.Description,
	}
}

// Items converts a slice of movies, preserving order.
func Items(movies []Movie) []recommender.Item {
	items := make([]recommender.Item, len(movies))
	for i, m := range movies {
		items[i] = m.Item()
	}
	return items
}

// Filter narrows List results. Empty fields are ignored.
type Filter struct {
	Search   string // case-insensitive title substring
	Language string // exact match
	Genre    string // substring, so "Drama" matches "Crime, Drama"
	Year     int
	Limit    int
	Offset   int
}

// ParseIDSet parses a comma-separated list of movie IDs ("3, 7,12") into a
// set. Blank input yields an empty set.
func ParseIDSet(s string) (map[int64]struct{}, error) {
	set := make(map[int64]struct{})
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid movie id %q", part)
		}
		set[id] = struct{}{}
	}
	return set, nil
}
