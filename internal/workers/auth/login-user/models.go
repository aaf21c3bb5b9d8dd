package loginuser

import "time"

type Input struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Output struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	UserID      int64     `json:"userId"`
}
