// Package dataset imports movie catalogs from CSV files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sivahkrishna/indian-movie-recommender/internal/catalog"
)

// Columns lists the CSV header names an import file must contain. Order in
// the file does not matter and extra columns are ignored.
var Columns = []string{
	"title", "language", "genre", "keywords", "cast",
	"director", "description", "release_year", "poster",
}

// RowError reports a bad record.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Parse reads every movie from a CSV stream with a header row.
func Parse(r io.Reader) ([]catalog.Movie, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		index[h] = i
	}
	var missing []string
	for _, c := range Columns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	var movies []catalog.Movie
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		field := func(name string) string {
			i := index[name]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		if isBlank(rec) {
			continue
		}

		m := catalog.Movie{
			Title:       field("title"),
			Language:    field("language"),
			Genre:       field("genre"),
			Keywords:    field("keywords"),
			Cast:        field("cast"),
			Director:    field("director"),
			Description: field("description"),
			Poster:      field("poster"),
		}
		if m.Title == "" {
			return nil, &RowError{Line: line, Column: "title", Err: errors.New("must not be empty")}
		}
		year, err := strconv.Atoi(field("release_year"))
		if err != nil {
			return nil, &RowError{Line: line, Column: "release_year", Err: fmt.Errorf("not a whole number: %q", field("release_year"))}
		}
		m.ReleaseYear = year

		movies = append(movies, m)
	}
	return movies, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
