// Package repotest builds sqlmock rows shaped like the repository's
// queries so worker tests can stub storage without repeating column lists.
package repotest

import (
	"database/sql/driver"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var Now = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

var UserColumns = []string{"id", "email", "hashed_password", "full_name", "is_onboarded", "current_stage", "created_at", "updated_at"}

func UserRows(id int64, email, hash string, onboarded bool, stage string) *sqlmock.Rows {
	return sqlmock.NewRows(UserColumns).AddRow(id, email, hash, "Test Student", onboarded, stage, Now, nil)
}

var UniversityColumns = []string{
	"id", "name", "country", "city", "ranking", "acceptance_rate", "programs_offered",
	"tuition_min", "tuition_max", "currency", "living_cost_estimate", "min_gpa",
	"toefl_required", "ielts_required", "gre_required", "gmat_required", "website", "description",
}

// University describes one catalog row; nil pointers become NULL.
type University struct {
	ID             int64
	Name           string
	Country        string
	Ranking        interface{}
	AcceptanceRate interface{}
	TuitionMin     interface{}
	TuitionMax     interface{}
	MinGPA         interface{}
}

func (u University) values() []driver.Value {
	return []driver.Value{
		u.ID, u.Name, u.Country, nil, u.Ranking, u.AcceptanceRate, "{}",
		u.TuitionMin, u.TuitionMax, "USD", nil, u.MinGPA,
		false, false, false, false, nil, nil,
	}
}

func UniversityRows(us ...University) *sqlmock.Rows {
	rows := sqlmock.NewRows(UniversityColumns)
	for _, u := range us {
		rows.AddRow(u.values()...)
	}
	return rows
}

// ShortlistedRows prefixes each university row with its shortlist category.
func ShortlistedRows(categories []string, us ...University) *sqlmock.Rows {
	rows := sqlmock.NewRows(append([]string{"category"}, UniversityColumns...))
	for i, u := range us {
		rows.AddRow(append([]driver.Value{categories[i]}, u.values()...)...)
	}
	return rows
}

var ProfileColumns = []string{
	"user_id", "current_degree", "current_gpa", "current_institution", "field_of_study",
	"graduation_year", "desired_degree", "desired_field", "preferred_countries", "study_start_year",
	"budget_min", "budget_max", "currency", "toefl_score", "ielts_score", "gre_score", "gmat_score",
	"exam_status", "work_experience_years", "research_experience", "publications", "created_at", "updated_at",
}

// ProfileRows returns a profile with the given GPA and budget; pass nil for
// any of them to leave it unanswered.
func ProfileRows(userID int64, gpa, budgetMin, budgetMax interface{}) *sqlmock.Rows {
	return sqlmock.NewRows(ProfileColumns).AddRow(
		userID, "Bachelor's", gpa, "State University", "Computer Science",
		int64(2024), "Master's", "Data Science", "Germany", int64(2026),
		budgetMin, budgetMax, "USD", int64(105), nil, nil, nil,
		"completed", 1, false, 0, Now, nil,
	)
}

var TodoColumns = []string{"id", "user_id", "university_id", "title", "description", "priority", "status",
	"due_date", "created_at", "updated_at", "completed_at"}

// TodoRows returns one todo with no university, due date or completion.
func TodoRows(id, userID int64, title, priority, status string) *sqlmock.Rows {
	return sqlmock.NewRows(TodoColumns).
		AddRow(id, userID, nil, title, "", priority, status, nil, Now, nil, nil)
}
