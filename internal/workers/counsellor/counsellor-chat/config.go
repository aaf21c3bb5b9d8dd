package counsellorchat

import "time"

// Config.Timeout covers the whole fallback chain, not a single model call.
type Config struct {
	Timeout         time.Duration
	MaxMessageChars int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:         60 * time.Second,
		MaxMessageChars: 4000,
	}
}
