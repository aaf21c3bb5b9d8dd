package searchuniversities

import "time"

type Config struct {
	Timeout      time.Duration
	DefaultLimit int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      5 * time.Second,
		DefaultLimit: 20,
	}
}
