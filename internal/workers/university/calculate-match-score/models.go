package calculatematchscore

import "study-abroad-workers/internal/matching"

type Input struct {
	UserID       int64 `json:"userId"`
	UniversityID int64 `json:"universityId"`
}

type Output struct {
	UniversityID int64                   `json:"universityId"`
	MatchScore   float64                 `json:"matchScore"`
	Factors      matching.ScoreBreakdown `json:"factors"`
}
