package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sivahkrishna/indian-movie-recommender/internal/catalog"
	"github.com/sivahkrishna/indian-movie-recommender/internal/db"
)

const header = "title,language,genre,keywords,cast,director,description,release_year,poster\n"

const sample = header +
	`Dangal,Hindi,"Biography, Drama",wrestling father daughters,Aamir Khan,Nitesh Tiwari,"A former wrestler trains his daughters.",2016,https://example.com/dangal.jpg
Super Deluxe,Tamil,"Crime, Drama",anthology,Vijay Sethupathi,Thiagarajan Kumararaja,Four stories collide.,2019,https://example.com/sd.jpg
`

func TestParse(t *testing.T) {
	movies, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	d := movies[0]
	if d.Title != "Dangal" || d.Genre != "Biography, Drama" || d.ReleaseYear != 2016 {
		t.Errorf("unexpected first movie: %+v", d)
	}
	if movies[1].Director != "Thiagarajan Kumararaja" {
		t.Errorf("unexpected director %q", movies[1].Director)
	}
}

func TestParseColumnOrderAndBOM(t *testing.T) {
	in := "\ufeffRelease_Year,poster,title,language,genre,keywords,cast,director,description,extra\n" +
		"1975,p.jpg,Sholay,Hindi,Action,dacoits,Dharmendra,Ramesh Sippy,Two convicts.,ignored\n"
	movies, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(movies) != 1 || movies[0].Title != "Sholay" || movies[0].ReleaseYear != 1975 {
		t.Errorf("unexpected result: %+v", movies)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "missing header"},
		{"missing columns", "title,language\nA,Hindi\n", "missing columns: genre"},
		{"bad year", header + "A,Hindi,Drama,k,c,d,desc,2016,p\nB,Hindi,Drama,k,c,d,desc,soon,p\n", "line 3: release_year"},
		{"empty title", header + ",Hindi,Drama,k,c,d,desc,2016,p\n", "line 2: title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected %q in %q", tt.wantErr, err.Error())
			}
		})
	}

	_, err := Parse(strings.NewReader(header + "A,Hindi,Drama,k,c,d,desc,20x6,p\n"))
	var rowErr *RowError
	if !errors.As(err, &rowErr) || rowErr.Line != 2 || rowErr.Column != "release_year" {
		t.Errorf("expected RowError at line 2, got %#v", err)
	}
}

func TestParseSkipsBlankLines(t *testing.T) {
	in := header + "A,Hindi,Drama,k,c,d,desc,2016,p\n,,,,,,,,\n"
	movies, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(movies) != 1 {
		t.Errorf("expected 1 movie, got %d", len(movies))
	}
}

func setupStore(t *testing.T) *catalog.Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return catalog.NewStore(database)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

type recordingReporter struct {
	total   int
	updates int
	done    bool
}

func (r *recordingReporter) Start(total int, _ string) { r.total = total }
func (r *recordingReporter) Update(int, string)        { r.updates++ }
func (r *recordingReporter) Finish()                   { r.done = true }

func TestImportFiles(t *testing.T) {
	store := setupStore(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "good.csv")
	writeFile(t, good, sample)

	rep := &recordingReporter{}
	res, err := NewImporter(store, rep).Import(context.Background(), []string{good})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Files != 1 || res.Movies != 2 {
		t.Errorf("unexpected result %+v", res)
	}
	if rep.total != 2 || rep.updates != 2 || !rep.done {
		t.Errorf("unexpected progress %+v", rep)
	}
	if n, _ := store.Count(context.Background()); n != 2 {
		t.Errorf("expected 2 movies stored, got %d", n)
	}
}

func TestImportBadFileInsertsNothing(t *testing.T) {
	store := setupStore(t)
	bad := filepath.Join(t.TempDir(), "bad.csv")
	writeFile(t, bad, header+"A,Hindi,Drama,k,c,d,desc,2016,p\nB,Hindi,Drama,k,c,d,desc,TBD,p\n")

	_, err := NewImporter(store, nil).ImportFile(context.Background(), bad)
	if err == nil || !strings.Contains(err.Error(), "bad.csv") {
		t.Fatalf("expected error naming the file, got %v", err)
	}
	if n, _ := store.Count(context.Background()); n != 0 {
		t.Errorf("expected nothing inserted, got %d", n)
	}
}

func TestExpandPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.csv"), sample)
	writeFile(t, filepath.Join(dir, "nested", "deep", "b.csv"), sample)
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")

	got, err := ExpandPatterns([]string{
		filepath.Join(dir, "**", "*.csv"),
		filepath.Join(dir, "a.csv"),
	})
	if err != nil {
		t.Fatalf("ExpandPatterns: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 files, got %v", got)
	}
	if filepath.Base(got[0]) != "a.csv" || filepath.Base(got[1]) != "b.csv" {
		t.Errorf("unexpected order %v", got)
	}

	if _, err := ExpandPatterns([]string{filepath.Join(dir, "*.json")}); err == nil {
		t.Error("expected error when nothing matches")
	}
}
