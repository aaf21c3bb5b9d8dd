package listselections

import "study-abroad-workers/internal/models"

type Input struct {
	UserID int64 `json:"userId"`
}

type Output struct {
	Shortlisted []models.ShortlistedUniversity `json:"shortlisted"`
	Locked      []models.University            `json:"locked"`
}
