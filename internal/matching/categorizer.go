package matching

import "study-abroad-workers/internal/models"

// Category is the computed admission risk tier. It is never persisted;
// the label stored with a shortlist entry is chosen by the student.
type Category string

const (
	CategoryDream  Category = "dream"
	CategoryTarget Category = "target"
	CategorySafe   Category = "safe"
)

// Categorize places u into a risk tier for profile. Rules are checked in
// order: unmet GPA or low acceptance is dream, high acceptance with a
// strong score is safe, anything else is target.
func (e *Engine) Categorize(u models.University, profile *models.StudentProfile) Category {
	acceptance, ok := stated(u.AcceptanceRate)
	if !ok {
		acceptance = e.cfg.DefaultAcceptance
	}

	if !meetsGPA(u, profile) || acceptance < e.cfg.DreamAcceptanceBelow {
		return CategoryDream
	}
	if acceptance >= e.cfg.SafeAcceptanceFrom && e.Score(u, profile) > e.cfg.SafeScoreAbove {
		return CategorySafe
	}
	return CategoryTarget
}

func meetsGPA(u models.University, profile *models.StudentProfile) bool {
	if profile == nil {
		return true
	}
	gpa, ok := stated(profile.CurrentGPA)
	if !ok {
		return true
	}
	floor, ok := stated(u.MinGPA)
	if !ok {
		return true
	}
	return gpa >= floor
}
