package shortlistuniversity

import "study-abroad-workers/internal/models"

// Input.Category is the student's own label and is stored as given.
type Input struct {
	UserID       int64  `json:"userId"`
	UniversityID int64  `json:"universityId"`
	Category     string `json:"category,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type Output struct {
	Message string                `json:"message"`
	Entry   models.ShortlistEntry `json:"entry"`
}
