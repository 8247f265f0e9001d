package recommender

import "strings"

// Item is a read-only snapshot of a catalog record. Callers materialize the
// full candidate list before calling Recommend; nothing here touches storage.
type Item struct {
	ID          int64
	Title       string
	Genre       string
	Language    string
	Cast        string
	Director    string
	Keywords    string
	Description string
}

// FeatureDocument joins the item's text attributes into the single string
// that gets vectorized. Empty attributes contribute nothing.
func (it Item) FeatureDocument(includeDescription bool) string {
	parts := []string{it.Genre, it.Language, it.Cast, it.Director, it.Keywords}
	if includeDescription {
		parts = append(parts, it.Description)
	}
	return strings.Join(parts, " ")
}

// Scored pairs an item ID with its (possibly boosted) similarity to the target.
type Scored struct {
	ID    int64   `json:"id"`
	Score float64 `json:"score"`
}
