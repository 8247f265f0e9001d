// Package recommender ranks catalog items by textual similarity to a target
// item. Every call rebuilds its vector space from the candidates it is given
// and keeps nothing afterwards, so a Recommender is safe for concurrent use.
package recommender

import "sort"

const (
	// DefaultLimit is the maximum number of related items returned.
	DefaultLimit = 5
	// DefaultWatchedBoost is added to the raw score of already-watched items.
	DefaultWatchedBoost = 0.15
)

// Options tunes a Recommender. A zero WatchedBoost disables boosting.
type Options struct {
	Limit              int
	WatchedBoost       float64
	IncludeDescription bool
}

// DefaultOptions returns limit 5, boost 0.15, description excluded.
func DefaultOptions() Options {
	return Options{
		Limit:        DefaultLimit,
		WatchedBoost: DefaultWatchedBoost,
	}
}

// Recommender holds immutable ranking options.
type Recommender struct {
	opts Options
}

// New creates a Recommender. A non-positive limit becomes DefaultLimit and a
// negative boost becomes zero.
func New(opts Options) *Recommender {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.WatchedBoost < 0 {
		opts.WatchedBoost = 0
	}
	return &Recommender{opts: opts}
}

// Options returns the options the Recommender was built with.
func (r *Recommender) Options() Options { return r.opts }

// Recommend returns up to five IDs of the items most similar to targetID
// using the default options. See Recommender.Recommend.
func Recommend(targetID int64, candidates []Item, watched map[int64]struct{}) []int64 {
	return New(DefaultOptions()).Recommend(targetID, candidates, watched)
}

// Recommend returns the IDs of the candidates most similar to targetID, best
// first. The target itself is never included. The result is empty when fewer
// than two candidates are given or the target is not among them.
func (r *Recommender) Recommend(targetID int64, candidates []Item, watched map[int64]struct{}) []int64 {
	ranked := r.Scores(targetID, candidates, watched)
	ids := make([]int64, len(ranked))
	for i, s := range ranked {
		ids[i] = s.ID
	}
	return ids
}

// Scores is Recommend with the ranked scores attached. Watched items carry
// their boosted score; the boost is not clamped to [0,1].
func (r *Recommender) Scores(targetID int64, candidates []Item, watched map[int64]struct{}) []Scored {
	if len(candidates) < 2 {
		return []Scored{}
	}
	target := -1
	for i, c := range candidates {
		if c.ID == targetID {
			target = i
			break
		}
	}
	if target < 0 {
		return []Scored{}
	}

	docs := make([]string, len(candidates))
	for i, c := range candidates {
		docs[i] = c.FeatureDocument(r.opts.IncludeDescription)
	}
	_, vectors := Vectorize(docs)
	row := SimilarityRow(vectors, target)

	scored := make([]Scored, len(candidates))
	for i, c := range candidates {
		score := row[i]
		if _, ok := watched[c.ID]; ok {
			score += r.opts.WatchedBoost
		}
		scored[i] = Scored{ID: c.ID, Score: score}
	}

	// Stable so that equal scores keep candidate order.
	sort.SliceStable(scored, func(a, b int) bool { return scored[a].Score > scored[b].Score })

	out := make([]Scored, 0, r.opts.Limit)
	for _, s := range scored {
		if s.ID == targetID {
			continue
		}
		out = append(out, s)
		if len(out) == r.opts.Limit {
			break
		}
	}
	return out
}
