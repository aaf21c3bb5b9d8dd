package matching

import (
	"sort"

	"study-abroad-workers/internal/models"
)

// Match pairs a candidate with its computed score. It only lives for the
// duration of a request.
type Match struct {
	University models.University
	Score      float64
}

// Rank scores candidates and orders them by score, highest first. Equal
// scores keep their candidate order; no secondary key is applied.
func (e *Engine) Rank(candidates []models.University, profile *models.StudentProfile) []Match {
	matches := make([]Match, len(candidates))
	for i, u := range candidates {
		matches[i] = Match{University: u, Score: e.Score(u, profile)}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// Recommend runs filter then rank and drops the scores.
func (e *Engine) Recommend(catalog []models.University, profile *models.StudentProfile, opts FilterOptions) []models.University {
	ranked := e.Rank(e.Filter(catalog, profile, opts), profile)
	out := make([]models.University, len(ranked))
	for i, m := range ranked {
		out[i] = m.University
	}
	return out
}
