package saveprofile

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "study-abroad-workers/internal/common/errors"
	"study-abroad-workers/internal/common/logger"
	"study-abroad-workers/internal/common/validation"
	"study-abroad-workers/internal/models"
	"study-abroad-workers/internal/repository"
	"study-abroad-workers/internal/repository/repotest"
)

type fixture struct {
	handler *Handler
	mock    sqlmock.Sqlmock
	redis   *miniredis.Miniredis
}

func setup(t *testing.T) fixture {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	h := NewHandler(&Config{Timeout: 5 * time.Second}, db,
		repository.NewUserStore(db),
		repository.NewProfileStore(db, cache, time.Minute),
		logger.NewTestLogger(t))
	return fixture{handler: h, mock: mock, redis: mr}
}

func f64(v float64) *float64 { return &v }

const selectForUpdate = "SELECT (.+) FROM user_profiles WHERE user_id = \\$1 FOR UPDATE"

func TestExecute_SavesProfileAndOnboards(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.redis.Set(repository.ProfileCacheKey(7), `{"userId":7}`))

	f.mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(repotest.UserRows(7, "a@b.co", "h", false, "onboarding"))
	f.mock.ExpectBegin()
	f.mock.ExpectQuery(selectForUpdate).WithArgs(int64(7)).WillReturnError(sql.ErrNoRows)
	f.mock.ExpectExec("INSERT INTO user_profiles").WillReturnResult(sqlmock.NewResult(1, 1))
	f.mock.ExpectExec("UPDATE users SET is_onboarded = TRUE").
		WithArgs(int64(7), "dashboard").
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	out, err := f.handler.Execute(context.Background(), &Input{
		UserID:  7,
		Profile: models.ProfilePatch{CurrentGPA: f64(3.4), BudgetMin: f64(10000), BudgetMax: f64(30000)},
	})
	require.NoError(t, err)
	assert.True(t, out.IsOnboarded)
	assert.Equal(t, "dashboard", out.CurrentStage)
	assert.Equal(t, int64(7), out.Profile.UserID)
	assert.Equal(t, "USD", out.Profile.Currency)
	assert.Equal(t, 3.4, *out.Profile.CurrentGPA)
	assert.False(t, f.redis.Exists(repository.ProfileCacheKey(7)))
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestExecute_KeepsAnswersNotResubmitted(t *testing.T) {
	f := setup(t)

	f.mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WillReturnRows(repotest.UserRows(7, "a@b.co", "h", true, "dashboard"))
	f.mock.ExpectBegin()
	f.mock.ExpectQuery(selectForUpdate).WithArgs(int64(7)).
		WillReturnRows(repotest.ProfileRows(7, 3.6, 10000.0, 25000.0))
	f.mock.ExpectExec("INSERT INTO user_profiles").
		WithArgs(int64(7), "Bachelor's", 3.6, "State University", "Computer Science",
			int64(2024), "Master's", "Data Science", "Germany", int64(2026),
			10000.0, 40000.0, "USD", int64(105), nil, nil, nil,
			"completed", 1, false, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectExec("UPDATE users SET is_onboarded = TRUE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	out, err := f.handler.Execute(context.Background(), &Input{
		UserID:  7,
		Profile: models.ProfilePatch{BudgetMax: f64(40000)},
	})
	require.NoError(t, err)
	require.NotNil(t, out.Profile.CurrentGPA)
	assert.Equal(t, 3.6, *out.Profile.CurrentGPA)
	assert.Equal(t, 40000.0, *out.Profile.BudgetMax)
	assert.Equal(t, "Data Science", out.Profile.DesiredField)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestExecute_RollsBackOnFailure(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.redis.Set(repository.ProfileCacheKey(7), `{"userId":7}`))

	f.mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WillReturnRows(repotest.UserRows(7, "a@b.co", "h", false, "onboarding"))
	f.mock.ExpectBegin()
	f.mock.ExpectQuery(selectForUpdate).WillReturnError(sql.ErrNoRows)
	f.mock.ExpectExec("INSERT INTO user_profiles").WillReturnError(errors.New("disk full"))
	f.mock.ExpectRollback()

	_, err := f.handler.Execute(context.Background(), &Input{UserID: 7})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeQueryExecutionFailed, apperrors.CodeOf(err))
	// Nothing was written, so the cached copy is still valid.
	assert.True(t, f.redis.Exists(repository.ProfileCacheKey(7)))
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestExecute_RejectsInvertedBudget(t *testing.T) {
	f := setup(t)
	f.mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WillReturnRows(repotest.UserRows(7, "a@b.co", "h", false, "onboarding"))
	f.mock.ExpectBegin()
	f.mock.ExpectQuery(selectForUpdate).WillReturnError(sql.ErrNoRows)
	f.mock.ExpectRollback()

	_, err := f.handler.Execute(context.Background(), &Input{
		UserID:  7,
		Profile: models.ProfilePatch{BudgetMin: f64(50000), BudgetMax: f64(10000)},
	})
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.CodeOf(err))
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestExecute_RejectsBudgetInvertedAgainstStoredValue(t *testing.T) {
	f := setup(t)
	f.mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WillReturnRows(repotest.UserRows(7, "a@b.co", "h", true, "dashboard"))
	f.mock.ExpectBegin()
	f.mock.ExpectQuery(selectForUpdate).
		WillReturnRows(repotest.ProfileRows(7, 3.6, 10000.0, 25000.0))
	f.mock.ExpectRollback()

	_, err := f.handler.Execute(context.Background(), &Input{
		UserID:  7,
		Profile: models.ProfilePatch{BudgetMin: f64(30000)},
	})
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.CodeOf(err))
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestInputSchema(t *testing.T) {
	schema := GetInputSchema()

	assert.NoError(t, validation.Validate(`{"userId":7,"profile":{"currentGpa":null,"toeflScore":110,"currency":"EUR"}}`, schema))
	assert.Error(t, validation.Validate(`{"userId":7,"profile":{"ieltsScore":12}}`, schema))
	assert.Error(t, validation.Validate(`{"userId":7,"profile":{"examStatus":"maybe"}}`, schema))
	assert.NoError(t, validation.Validate(`{"userId":7,"profile":{"researchExperience":true}}`, schema))
	assert.Error(t, validation.Validate(`{"userId":7,"profile":{"researchExperience":"yes"}}`, schema))
	assert.Error(t, validation.Validate(`{"profile":{}}`, schema))
}
