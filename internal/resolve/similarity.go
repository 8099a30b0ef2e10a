package resolve

import "github.com/agext/levenshtein"

// Match is one ranked candidate from a similarity search. Dissimilarity is
// on a 0–1 scale where lower is closer.
type Match struct {
	Index         int
	Dissimilarity float64
}

// Scorer searches a candidate set for the closest match to a query. A nil
// Scorer disables the fuzzy tier; the resolver falls through to keyword
// matching instead of failing.
type Scorer interface {
	Best(query string, candidates []string) (Match, bool)
}

// levParams holds the default edit-distance costs, built once.
var levParams = levenshtein.NewParams()

// LevenshteinScorer scores candidates by normalized edit distance.
type LevenshteinScorer struct{}

// Best returns the candidate with the lowest dissimilarity to query.
// Comparison is case-insensitive via the caller lower-casing inputs.
func (LevenshteinScorer) Best(query string, candidates []string) (Match, bool) {
	best := Match{Index: -1, Dissimilarity: 1.0}
	for i, candidate := range candidates {
		d := 1.0 - levenshtein.Similarity(query, candidate, levParams)
		if best.Index < 0 || d < best.Dissimilarity {
			best = Match{Index: i, Dissimilarity: d}
		}
	}
	if best.Index < 0 {
		return Match{}, false
	}
	return best, true
}
