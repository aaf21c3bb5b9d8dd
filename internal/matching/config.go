// Package matching ranks a university catalog against a student profile
// and sorts universities into dream, target and safe tiers.
//
// Everything here is pure: no I/O, no clocks, no shared mutable state.
// An Engine may be shared between goroutines.
package matching

import "fmt"

// Weights scales each partial term of the match score.
type Weights struct {
	Budget     float64
	GPA        float64
	Ranking    float64
	Acceptance float64
}

// Limits caps the size of the candidate set.
type Limits struct {
	Filtered int
	ShowAll  int
}

// Config is passed by value so an Engine never observes later edits.
type Config struct {
	Weights Weights
	Limits  Limits

	// NeutralScore is returned for every university when no profile is known.
	NeutralScore float64
	// RankingSpan is the number of ranks over which the ranking term decays to zero.
	RankingSpan float64
	// GPAHeadroom is added to min_gpa when normalizing the GPA term.
	GPAHeadroom float64

	DreamAcceptanceBelow float64
	SafeAcceptanceFrom   float64
	SafeScoreAbove       float64
	// DefaultAcceptance stands in for a missing acceptance rate when categorizing.
	DefaultAcceptance float64
}

func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Budget:     0.4,
			GPA:        0.2,
			Ranking:    0.2,
			Acceptance: 0.2,
		},
		Limits: Limits{
			Filtered: 50,
			ShowAll:  100,
		},
		NeutralScore:         0.5,
		RankingSpan:          1000,
		GPAHeadroom:          0.5,
		DreamAcceptanceBelow: 0.3,
		SafeAcceptanceFrom:   0.5,
		SafeScoreAbove:       0.6,
		DefaultAcceptance:    0.5,
	}
}

func (c Config) Validate() error {
	w := c.Weights
	if w.Budget < 0 || w.GPA < 0 || w.Ranking < 0 || w.Acceptance < 0 {
		return fmt.Errorf("matching weights must be non-negative: %+v", w)
	}
	if c.Limits.Filtered <= 0 || c.Limits.ShowAll <= 0 {
		return fmt.Errorf("matching limits must be positive: %+v", c.Limits)
	}
	if c.RankingSpan <= 0 {
		return fmt.Errorf("matching ranking span must be positive: %v", c.RankingSpan)
	}
	return nil
}

// Engine applies one Config to filter, score, rank and categorize.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// stated reports a value as present the way the onboarding form records
// it: a nil pointer and an explicit zero both mean "not answered".
func stated(v *float64) (float64, bool) {
	if v == nil || *v == 0 {
		return 0, false
	}
	return *v, true
}

// statedRank treats only a missing or zero rank as unranked. Negative
// ranks are kept and clamp to a full ranking term.
func statedRank(v *int) (int, bool) {
	if v == nil || *v == 0 {
		return 0, false
	}
	return *v, true
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
