package matching

import "study-abroad-workers/internal/models"

// ScoreBreakdown exposes each partial term before weighting. Every term
// and the total lie in [0, 1]. The score is advisory, not a probability.
type ScoreBreakdown struct {
	Budget     float64 `json:"budgetFit"`
	GPA        float64 `json:"gpaFit"`
	Ranking    float64 `json:"rankingFit"`
	Acceptance float64 `json:"acceptanceFit"`
	Total      float64 `json:"matchScore"`
	Neutral    bool    `json:"neutral"`
}

// Score returns the weighted match score of u for profile.
func (e *Engine) Score(u models.University, profile *models.StudentProfile) float64 {
	return e.Breakdown(u, profile).Total
}

func (e *Engine) Breakdown(u models.University, profile *models.StudentProfile) ScoreBreakdown {
	if profile == nil {
		return ScoreBreakdown{Total: clamp01(e.cfg.NeutralScore), Neutral: true}
	}

	b := ScoreBreakdown{
		Budget:     e.budgetTerm(u, profile),
		GPA:        e.gpaTerm(u, profile),
		Ranking:    e.rankingTerm(u),
		Acceptance: acceptanceTerm(u),
	}

	w := e.cfg.Weights
	b.Total = clamp01(b.Budget*w.Budget + b.GPA*w.GPA + b.Ranking*w.Ranking + b.Acceptance*w.Acceptance)
	return b
}

// budgetTerm rewards tuition sitting low inside the student's budget window.
// A missing budget floor is read as zero.
func (e *Engine) budgetTerm(u models.University, p *models.StudentProfile) float64 {
	ceiling, ok := stated(p.BudgetMax)
	if !ok {
		return 0
	}
	tuition, ok := stated(u.TuitionMax)
	if !ok || tuition > ceiling {
		return 0
	}

	floor, _ := stated(p.BudgetMin)
	if ceiling <= floor {
		return 1
	}
	return clamp01(1 - (tuition-floor)/(ceiling-floor))
}

func (e *Engine) gpaTerm(u models.University, p *models.StudentProfile) float64 {
	gpa, ok := stated(p.CurrentGPA)
	if !ok {
		return 0
	}
	floor, ok := stated(u.MinGPA)
	if !ok || gpa < floor {
		return 0
	}
	return clamp01(gpa / (floor + e.cfg.GPAHeadroom))
}

func (e *Engine) rankingTerm(u models.University) float64 {
	rank, ok := statedRank(u.Ranking)
	if !ok {
		return 0
	}
	return clamp01(1 - float64(rank-1)/e.cfg.RankingSpan)
}

func acceptanceTerm(u models.University) float64 {
	rate, ok := stated(u.AcceptanceRate)
	if !ok {
		return 0
	}
	return clamp01(rate)
}
