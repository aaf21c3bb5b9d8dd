package registeruser

import "time"

type Input struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type Output struct {
	UserID       int64     `json:"userId"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	IsOnboarded  bool      `json:"isOnboarded"`
	CurrentStage string    `json:"currentStage"`
	CreatedAt    time.Time `json:"createdAt"`
}
