package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sivahkrishna/indian-movie-recommender/internal/catalog"
	"github.com/sivahkrishna/indian-movie-recommender/internal/logging"
	"github.com/sivahkrishna/indian-movie-recommender/internal/progress"
)

// Importer loads CSV files into the catalog.
type Importer struct {
	store    *catalog.Store
	reporter progress.Reporter
}

// NewImporter creates an Importer. A nil reporter discards progress.
func NewImporter(store *catalog.Store, reporter progress.Reporter) *Importer {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	return &Importer{store: store, reporter: reporter}
}

// Result summarises an import run.
type Result struct {
	Files  int
	Movies int
}

// ImportFile parses path and inserts all of its movies in one transaction.
// A bad row aborts the file without inserting anything.
func (im *Importer) ImportFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	movies, err := Parse(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	if len(movies) == 0 {
		logging.Warn().Str("file", path).Msg("no movies in file")
		return 0, nil
	}

	im.reporter.Start(len(movies), "Importing "+filepath.Base(path))
	n, err := im.store.CreateMany(ctx, movies, func(done int) {
		im.reporter.Update(done, movies[done-1].Title)
	})
	im.reporter.Finish()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	logging.Info().Str("file", path).Int("movies", n).Msg("dataset imported")
	return n, nil
}

// Import imports each path in order and stops at the first failure. Files
// imported before the failure stay committed.
func (im *Importer) Import(ctx context.Context, paths []string) (Result, error) {
	var res Result
	for _, p := range paths {
		n, err := im.ImportFile(ctx, p)
		if err != nil {
			return res, err
		}
		res.Files++
		res.Movies += n
	}
	return res, nil
}

// ExpandPatterns resolves doublestar glob patterns ("data/**/*.csv") into a
// sorted, de-duplicated list of files. A pattern without glob characters
// must name an existing file.
func ExpandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pat := range patterns {
		pat = filepath.Clean(pat)
		if !doublestar.ValidatePattern(filepath.ToSlash(pat)) {
			return nil, fmt.Errorf("invalid pattern %q", pat)
		}
		matches, err := doublestar.FilepathGlob(pat, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pat, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pat)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}
