package getuniversity

import "study-abroad-workers/internal/models"

type Input struct {
	UserID       int64 `json:"userId"`
	UniversityID int64 `json:"universityId"`
}

type Output struct {
	University models.University `json:"university"`
}
