package recommenduniversities

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "study-abroad-workers/internal/common/errors"
	"study-abroad-workers/internal/common/logger"
	"study-abroad-workers/internal/common/validation"
	"study-abroad-workers/internal/matching"
	"study-abroad-workers/internal/models"
	"study-abroad-workers/internal/repository"
	"study-abroad-workers/internal/repository/repotest"
)

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func setupHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := NewHandler(createTestConfig(),
		matching.NewEngine(matching.DefaultConfig()),
		repository.NewUserStore(db),
		repository.NewProfileStore(db, nil, 0),
		repository.NewUniversityStore(db),
		logger.NewTestLogger(t))
	return h, mock
}

func catalog() *sqlmock.Rows {
	return repotest.UniversityRows(
		repotest.University{ID: 1, Name: "Pricey Tech", Country: "United States", Ranking: int64(5), AcceptanceRate: 0.05, TuitionMin: 50000.0, TuitionMax: 60000.0, MinGPA: 3.8},
		repotest.University{ID: 2, Name: "Mid State", Country: "Germany", Ranking: int64(300), AcceptanceRate: 0.6, TuitionMin: 8000.0, TuitionMax: 15000.0, MinGPA: 3.0},
		repotest.University{ID: 3, Name: "Budget College", Country: "Germany", Ranking: int64(800), AcceptanceRate: 0.8, TuitionMin: 5000.0, TuitionMax: 9000.0},
		repotest.University{ID: 4, Name: "Elite Berlin", Country: "Germany", Ranking: int64(40), AcceptanceRate: 0.2, TuitionMin: 10000.0, TuitionMax: 18000.0, MinGPA: 3.9},
	)
}

func ids(us []models.University) []int64 {
	out := make([]int64, len(us))
	for i, u := range us {
		out[i] = u.ID
	}
	return out
}

func TestExecute_FiltersAndRanksByProfile(t *testing.T) {
	handler, mock := setupHandler(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(repotest.UserRows(7, "a@b.co", "h", true, "dashboard"))
	mock.ExpectQuery("SELECT (.+) FROM user_profiles").
		WillReturnRows(repotest.ProfileRows(7, 3.5, 5000.0, 20000.0))
	mock.ExpectQuery("SELECT (.+) FROM universities ORDER BY id").WillReturnRows(catalog())

	out, err := handler.Execute(context.Background(), &Input{UserID: 7})
	require.NoError(t, err)

	// Pricey Tech fails the budget ceiling and Elite Berlin the GPA floor.
	assert.ElementsMatch(t, []int64{2, 3}, ids(out.Universities))
	assert.Equal(t, 2, out.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_CountryAndExplicitBudget(t *testing.T) {
	handler, mock := setupHandler(t)
	budgetMax := 10000.0

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WillReturnRows(repotest.UserRows(7, "a@b.co", "h", true, "dashboard"))
	mock.ExpectQuery("SELECT (.+) FROM user_profiles").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT (.+) FROM universities").WillReturnRows(catalog())

	out, err := handler.Execute(context.Background(), &Input{UserID: 7, Country: "germ", BudgetMax: &budgetMax})
	require.NoError(t, err)

	// Without a profile every score is neutral, so filter order survives.
	assert.Equal(t, []int64{2, 3, 4}, ids(out.Universities))
}

func TestExecute_ShowAllIgnoresFilters(t *testing.T) {
	handler, mock := setupHandler(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WillReturnRows(repotest.UserRows(7, "a@b.co", "h", true, "dashboard"))
	mock.ExpectQuery("SELECT (.+) FROM user_profiles").
		WillReturnRows(repotest.ProfileRows(7, 2.0, 1000.0, 2000.0))
	mock.ExpectQuery("SELECT (.+) FROM universities").WillReturnRows(catalog())

	out, err := handler.Execute(context.Background(), &Input{UserID: 7, ShowAll: true})
	require.NoError(t, err)
	assert.Len(t, out.Universities, 4)
}

func TestExecute_RequiresOnboarding(t *testing.T) {
	handler, mock := setupHandler(t)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WillReturnRows(repotest.UserRows(7, "a@b.co", "h", false, "onboarding"))

	_, err := handler.Execute(context.Background(), &Input{UserID: 7})
	assert.Equal(t, apperrors.ErrCodeOnboardingRequired, apperrors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInputSchema(t *testing.T) {
	schema := GetInputSchema()

	assert.NoError(t, validation.Validate(`{"userId":7}`, schema))
	assert.NoError(t, validation.Validate(`{"userId":7,"country":"Germany","budgetMin":0,"budgetMax":20000,"showAll":true}`, schema))
	assert.NoError(t, validation.Validate(`{"userId":7,"country":null,"budgetMin":null}`, schema))

	err := validation.Validate(`{"userId":7,"budgetMin":-100}`, schema)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.CodeOf(err))
	assert.Error(t, validation.Validate(`{"userId":0}`, schema))
	assert.Error(t, validation.Validate(`{"userId":7,"showAll":"yes"}`, schema))
	assert.Error(t, validation.Validate(`{"country":"Germany"}`, schema))
}
