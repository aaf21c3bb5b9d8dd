// internal/common/config/config.go
package config

import (
	"fmt"

	"study-abroad-workers/internal/matching"
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig               `mapstructure:"app"`
	Camunda  CamundaConfig           `mapstructure:"camunda"`
	Database DatabaseConfig          `mapstructure:"database"`
	Workers  map[string]WorkerConfig `mapstructure:"workers"`
	Auth     AuthConfig              `mapstructure:"auth"`
	APIs     APIsConfig              `mapstructure:"apis"`
	Matching MatchingSection         `mapstructure:"matching"`
	Logging  LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	HealthAddr  string `mapstructure:"health_addr"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses    []string `mapstructure:"addresses"`
	Username     string   `mapstructure:"username"`
	Password     string   `mapstructure:"password"`
	SSLEnabled   bool     `mapstructure:"ssl_enabled"`
	URL          string   `mapstructure:"url"` // Single URL for backwards compatibility
	CatalogIndex string   `mapstructure:"catalog_index"`
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address         string `mapstructure:"address"`
	Password        string `mapstructure:"password"`
	DB              int    `mapstructure:"db"`
	ProfileCacheTTL int    `mapstructure:"profile_cache_ttl"` // seconds
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// --- Specific Configuration Sections ---

// AuthConfig holds settings for the account and session workers.
type AuthConfig struct {
	JWT struct {
		Secret            string `mapstructure:"secret"`
		Issuer            string `mapstructure:"issuer"`
		AccessTokenExpiry int    `mapstructure:"access_token_expire_minutes"`
	} `mapstructure:"jwt"`
}

// APIsConfig holds settings for external API integrations.
type APIsConfig struct {
	GenAI struct {
		APIKey            string   `mapstructure:"api_key"`
		Model             string   `mapstructure:"model"`
		FallbackModels    []string `mapstructure:"fallback_models"`
		Timeout           int      `mapstructure:"timeout"` // milliseconds
		RequestsPerMinute int      `mapstructure:"requests_per_minute"`
	} `mapstructure:"genai"`
}

// MatchingSection mirrors matching.Config in YAML form. Zero values mean
// "use the engine default".
type MatchingSection struct {
	Weights struct {
		Budget     float64 `mapstructure:"budget"`
		GPA        float64 `mapstructure:"gpa"`
		Ranking    float64 `mapstructure:"ranking"`
		Acceptance float64 `mapstructure:"acceptance"`
	} `mapstructure:"weights"`
	Limits struct {
		Filtered int `mapstructure:"filtered"`
		ShowAll  int `mapstructure:"show_all"`
	} `mapstructure:"limits"`
	NeutralScore         float64 `mapstructure:"neutral_score"`
	RankingSpan          float64 `mapstructure:"ranking_span"`
	GPAHeadroom          float64 `mapstructure:"gpa_headroom"`
	DreamAcceptanceBelow float64 `mapstructure:"dream_acceptance_below"`
	SafeAcceptanceFrom   float64 `mapstructure:"safe_acceptance_from"`
	SafeScoreAbove       float64 `mapstructure:"safe_score_above"`
	DefaultAcceptance    float64 `mapstructure:"default_acceptance"`
}

// MatchingConfig converts the matching section into an engine config.
func (c *Config) MatchingConfig() matching.Config {
	m := c.Matching
	out := matching.DefaultConfig()

	// The weights only replace the defaults as a set; a partially written
	// block would otherwise silently mix two weightings.
	w := m.Weights
	if w.Budget != 0 || w.GPA != 0 || w.Ranking != 0 || w.Acceptance != 0 {
		out.Weights = matching.Weights{
			Budget:     w.Budget,
			GPA:        w.GPA,
			Ranking:    w.Ranking,
			Acceptance: w.Acceptance,
		}
	}
	if m.Limits.Filtered != 0 {
		out.Limits.Filtered = m.Limits.Filtered
	}
	if m.Limits.ShowAll != 0 {
		out.Limits.ShowAll = m.Limits.ShowAll
	}
	setIfNonZero(&out.NeutralScore, m.NeutralScore)
	setIfNonZero(&out.RankingSpan, m.RankingSpan)
	setIfNonZero(&out.GPAHeadroom, m.GPAHeadroom)
	setIfNonZero(&out.DreamAcceptanceBelow, m.DreamAcceptanceBelow)
	setIfNonZero(&out.SafeAcceptanceFrom, m.SafeAcceptanceFrom)
	setIfNonZero(&out.SafeScoreAbove, m.SafeScoreAbove)
	setIfNonZero(&out.DefaultAcceptance, m.DefaultAcceptance)
	return out
}

func setIfNonZero(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
