package recommender

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// entry is one non-zero column of a sparse document vector.
type entry struct {
	col int
	val float64
}

// Vector is a sparse term-frequency vector. Entries are sorted by column so
// that dot products and norms are summed in a fixed order.
type Vector []entry

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, e := range v {
		sum += e.val * e.val
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of two column-sorted vectors.
func (v Vector) Dot(o Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v) && j < len(o) {
		switch {
		case v[i].col == o[j].col:
			sum += v[i].val * o[j].val
			i++
			j++
		case v[i].col < o[j].col:
			i++
		default:
			j++
		}
	}
	return sum
}

// Vocabulary maps terms to column indexes. Terms are ordered lexicographically.
type Vocabulary struct {
	Terms []string
	index map[string]int
}

// Column returns the column of term, or -1 when the term is unknown.
func (v *Vocabulary) Column(term string) int {
	if c, ok := v.index[term]; ok {
		return c
	}
	return -1
}

// Tokenize lower-cases text and splits it into runs of two or more letters,
// digits or underscores. Single characters are dropped, so initials in cast
// lists ("A B") carry no weight.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Terms returns the unigrams and bigrams of text after stop-word removal.
// Bigrams join adjacent surviving tokens with a single space.
func Terms(text string) []string {
	var words []string
	for _, tok := range Tokenize(text) {
		if !IsStopWord(tok) {
			words = append(words, tok)
		}
	}
	terms := make([]string, 0, 2*len(words))
	terms = append(terms, words...)
	for i := 0; i+1 < len(words); i++ {
		terms = append(terms, words[i]+" "+words[i+1])
	}
	return terms
}

// Vectorize builds a term-frequency encoding of docs over a vocabulary fitted
// to the same docs. The output is deterministic for a given docs slice.
func Vectorize(docs []string) (*Vocabulary, []Vector) {
	counts := make([]map[string]int, len(docs))
	seen := make(map[string]struct{})
	for i, doc := range docs {
		c := make(map[string]int)
		for _, t := range Terms(doc) {
			c[t]++
			seen[t] = struct{}{}
		}
		counts[i] = c
	}

	vocab := &Vocabulary{
		Terms: make([]string, 0, len(seen)),
		index: make(map[string]int, len(seen)),
	}
	for t := range seen {
		vocab.Terms = append(vocab.Terms, t)
	}
	sort.Strings(vocab.Terms)
	for i, t := range vocab.Terms {
		vocab.index[t] = i
	}

	vectors := make([]Vector, len(docs))
	for i, c := range counts {
		v := make(Vector, 0, len(c))
		for t, n := range c {
			v = append(v, entry{col: vocab.index[t], val: float64(n)})
		}
		sort.Slice(v, func(a, b int) bool { return v[a].col < v[b].col })
		vectors[i] = v
	}
	return vocab, vectors
}
