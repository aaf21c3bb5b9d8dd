package lockuniversity

import "study-abroad-workers/internal/models"

type Input struct {
	UserID       int64 `json:"userId"`
	UniversityID int64 `json:"universityId"`
}

type Output struct {
	Message      string             `json:"message"`
	Entry        models.LockedEntry `json:"entry"`
	CurrentStage string             `json:"currentStage"`
}
