package saveprofile

import "study-abroad-workers/internal/models"

type Input struct {
	UserID  int64               `json:"userId"`
	Profile models.ProfilePatch `json:"profile"`
}

type Output struct {
	Profile      models.StudentProfile `json:"profile"`
	IsOnboarded  bool                  `json:"isOnboarded"`
	CurrentStage string                `json:"currentStage"`
}
