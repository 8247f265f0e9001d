package recommender

// Cosine returns the cosine similarity of a and b. A zero vector is treated
// as dissimilar to everything, itself included.
func Cosine(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}

// SimilarityRow scores every vector against vectors[target]. The target's own
// entry is pinned to exactly 1.0 when its vector is non-zero.
func SimilarityRow(vectors []Vector, target int) []float64 {
	row := make([]float64, len(vectors))
	t := vectors[target]
	tn := t.Norm()
	if tn == 0 {
		return row
	}
	for i, v := range vectors {
		if i == target {
			row[i] = 1
			continue
		}
		vn := v.Norm()
		if vn == 0 {
			continue
		}
		row[i] = t.Dot(v) / (tn * vn)
	}
	return row
}

// SimilarityMatrix computes the full symmetric pairwise cosine matrix.
// Each pair is computed once and mirrored.
func SimilarityMatrix(vectors []Vector) [][]float64 {
	n := len(vectors)
	norms := make([]float64, n)
	for i, v := range vectors {
		norms[i] = v.Norm()
	}
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		if norms[i] == 0 {
			continue
		}
		m[i][i] = 1
		for j := i + 1; j < n; j++ {
			if norms[j] == 0 {
				continue
			}
			s := vectors[i].Dot(vectors[j]) / (norms[i] * norms[j])
			m[i][j] = s
			m[j][i] = s
		}
	}
	return m
}
