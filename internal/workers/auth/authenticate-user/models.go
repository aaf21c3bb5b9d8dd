package authenticateuser

// Input carries the bearer token, with or without the "Bearer " prefix.
type Input struct {
	AccessToken string `json:"accessToken"`
}

type Output struct {
	UserID       int64  `json:"userId"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	IsOnboarded  bool   `json:"isOnboarded"`
	CurrentStage string `json:"currentStage"`
}
