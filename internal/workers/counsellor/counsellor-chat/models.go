package counsellorchat

type Input struct {
	UserID  int64  `json:"userId"`
	Message string `json:"message"`
}

// Output.RateLimited is set when Response holds the rate-limit notice
// instead of a model reply.
type Output struct {
	Response    string `json:"response"`
	RateLimited bool   `json:"rateLimited"`
}
