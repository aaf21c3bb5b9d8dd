package categorizeuniversity

import "study-abroad-workers/internal/matching"

type Input struct {
	UserID       int64 `json:"userId"`
	UniversityID int64 `json:"universityId"`
}

// Output carries the computed tier. It is advisory and separate from the
// label a student stores when shortlisting.
type Output struct {
	UniversityID int64             `json:"universityId"`
	Category     matching.Category `json:"category"`
	MatchScore   float64           `json:"matchScore"`
}
