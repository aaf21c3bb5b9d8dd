package getprofile

import "study-abroad-workers/internal/models"

type Input struct {
	UserID int64 `json:"userId"`
}

type Output struct {
	Profile *models.StudentProfile `json:"profile"`
}
