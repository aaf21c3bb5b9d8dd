package analyzeprofile

type Input struct {
	UserID int64 `json:"userId"`
}

type Output struct {
	Analysis    string `json:"analysis"`
	RateLimited bool   `json:"rateLimited"`
}
