package matching

import (
	"strings"

	"study-abroad-workers/internal/models"
)

// FilterOptions are the caller-supplied overrides for a catalog query.
// Explicit budget bounds take effect whenever they are non-nil, zero included.
type FilterOptions struct {
	Country   string
	BudgetMin *float64
	BudgetMax *float64
	ShowAll   bool
}

// Filter narrows catalog to the candidate set. Catalog order is preserved
// and the result is truncated after filtering.
func (e *Engine) Filter(catalog []models.University, profile *models.StudentProfile, opts FilterOptions) []models.University {
	if opts.ShowAll {
		return truncate(catalog, e.cfg.Limits.ShowAll)
	}

	limit := e.cfg.Limits.Filtered
	country := strings.ToLower(opts.Country)

	out := make([]models.University, 0, min(len(catalog), limit))
	for _, u := range catalog {
		if len(out) == limit {
			break
		}
		if country != "" && !strings.Contains(strings.ToLower(u.Country), country) {
			continue
		}
		if !withinBudget(u, profile, opts) {
			continue
		}
		if !gpaEligible(u, profile) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// withinBudget uses an overlap test for explicit bounds and a containment
// test when falling back to the profile. A university missing the tuition
// field under comparison never passes.
func withinBudget(u models.University, profile *models.StudentProfile, opts FilterOptions) bool {
	if opts.BudgetMin != nil || opts.BudgetMax != nil {
		if opts.BudgetMin != nil && (u.TuitionMax == nil || *u.TuitionMax < *opts.BudgetMin) {
			return false
		}
		if opts.BudgetMax != nil && (u.TuitionMin == nil || *u.TuitionMin > *opts.BudgetMax) {
			return false
		}
		return true
	}

	if profile == nil {
		return true
	}
	if ceiling, ok := stated(profile.BudgetMax); ok {
		if u.TuitionMax == nil || *u.TuitionMax > ceiling {
			return false
		}
	}
	if floor, ok := stated(profile.BudgetMin); ok {
		if u.TuitionMin == nil || *u.TuitionMin < floor {
			return false
		}
	}
	return true
}

func gpaEligible(u models.University, profile *models.StudentProfile) bool {
	if profile == nil || u.MinGPA == nil {
		return true
	}
	gpa, ok := stated(profile.CurrentGPA)
	if !ok {
		return true
	}
	return *u.MinGPA <= gpa
}

func truncate(catalog []models.University, limit int) []models.University {
	n := min(len(catalog), limit)
	out := make([]models.University, n)
	copy(out, catalog[:n])
	return out
}
