package recommender

import (
	"math"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Action, Drama", []string{"action", "drama"}},
		{"A B  C", nil},
		{"Shah Rukh Khan|Kajol", []string{"shah", "rukh", "khan", "kajol"}},
		{"sci-fi 3D", []string{"sci", "fi", "3d"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := Tokenize(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Tokenize(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestTermsDropsStopWordsBeforeBigrams(t *testing.T) {
	got := Terms("the love of my life")
	want := []string{"love", "life", "love life"}
	if len(got) != len(want) {
		t.Fatalf("Terms = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Terms[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestVectorizeVocabularyIsSorted(t *testing.T) {
	vocab, vectors := Vectorize([]string{"zeta alpha", "alpha beta"})
	want := []string{"alpha", "alpha beta", "beta", "zeta", "zeta alpha"}
	if len(vocab.Terms) != len(want) {
		t.Fatalf("vocab = %v, want %v", vocab.Terms, want)
	}
	for i := range want {
		if vocab.Terms[i] != want[i] {
			t.Errorf("vocab[%d] = %q, want %q", i, vocab.Terms[i], want[i])
		}
	}
	if vocab.Column("beta") != 2 {
		t.Errorf("Column(beta) = %d, want 2", vocab.Column("beta"))
	}
	if vocab.Column("missing") != -1 {
		t.Errorf("Column(missing) = %d, want -1", vocab.Column("missing"))
	}
	if len(vectors) != 2 || len(vectors[0]) != 3 || len(vectors[1]) != 3 {
		t.Fatalf("unexpected vectors: %v", vectors)
	}
	for i := 1; i < len(vectors[0]); i++ {
		if vectors[0][i-1].col >= vectors[0][i].col {
			t.Errorf("vector columns not sorted: %v", vectors[0])
		}
	}
}

func TestVectorizeCountsRepeats(t *testing.T) {
	vocab, vectors := Vectorize([]string{"drama drama comedy"})
	col := vocab.Column("drama")
	for _, e := range vectors[0] {
		if e.col == col && e.val != 2 {
			t.Errorf("drama count = %v, want 2", e.val)
		}
	}
}

func TestCosineZeroVector(t *testing.T) {
	_, vectors := Vectorize([]string{"", "drama"})
	if got := Cosine(vectors[0], vectors[1]); got != 0 {
		t.Errorf("Cosine(zero, v) = %v, want 0", got)
	}
	if got := Cosine(vectors[0], vectors[0]); got != 0 {
		t.Errorf("Cosine(zero, zero) = %v, want 0", got)
	}
}

func TestSimilarityMatrix(t *testing.T) {
	_, vectors := Vectorize([]string{
		"action english heist",
		"action english heist",
		"romance french love",
		"",
	})
	m := SimilarityMatrix(vectors)
	for i := range m {
		for j := range m {
			if m[i][j] != m[j][i] {
				t.Errorf("matrix not symmetric at %d,%d", i, j)
			}
			if m[i][j] < 0 || m[i][j] > 1+1e-12 {
				t.Errorf("m[%d][%d] = %v out of range", i, j, m[i][j])
			}
		}
	}
	for i := 0; i < 3; i++ {
		if m[i][i] != 1 {
			t.Errorf("diagonal m[%d][%d] = %v, want 1", i, i, m[i][i])
		}
	}
	if m[3][3] != 0 {
		t.Errorf("empty document diagonal = %v, want 0", m[3][3])
	}
	if math.Abs(m[0][1]-1) > 1e-12 {
		t.Errorf("identical documents similarity = %v", m[0][1])
	}
	if m[0][2] != 0 {
		t.Errorf("disjoint documents similarity = %v", m[0][2])
	}

	row := SimilarityRow(vectors, 0)
	for j := range row {
		if row[j] != m[0][j] {
			t.Errorf("row[%d] = %v, matrix = %v", j, row[j], m[0][j])
		}
	}
}
