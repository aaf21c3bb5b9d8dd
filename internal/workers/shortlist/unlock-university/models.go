package unlockuniversity

type Input struct {
	UserID       int64 `json:"userId"`
	UniversityID int64 `json:"universityId"`
}

type Output struct {
	Message      string `json:"message"`
	UniversityID int64  `json:"universityId"`
}
