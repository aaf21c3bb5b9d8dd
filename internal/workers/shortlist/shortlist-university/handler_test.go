package shortlistuniversity

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "study-abroad-workers/internal/common/errors"
	"study-abroad-workers/internal/common/logger"
	"study-abroad-workers/internal/common/validation"
	"study-abroad-workers/internal/repository"
	"study-abroad-workers/internal/repository/repotest"
)

func setupHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := NewHandler(&Config{Timeout: 5 * time.Second},
		repository.NewUserStore(db),
		repository.NewUniversityStore(db),
		repository.NewSelectionStore(db),
		logger.NewTestLogger(t))
	return h, mock
}

func expectUserAndUniversity(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WillReturnRows(repotest.UserRows(7, "a@b.co", "h", true, "dashboard"))
	mock.ExpectQuery("SELECT (.+) FROM universities WHERE id").
		WithArgs(int64(2)).
		WillReturnRows(repotest.UniversityRows(repotest.University{ID: 2, Name: "Mid State", Country: "Germany"}))
}

func expectExists(mock sqlmock.Sqlmock, found bool) {
	mock.ExpectQuery("SELECT EXISTS\\(SELECT 1 FROM shortlisted_universities").
		WithArgs(int64(7), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(found))
}

func TestExecute_StoresCategoryVerbatim(t *testing.T) {
	handler, mock := setupHandler(t)
	expectUserAndUniversity(mock)
	expectExists(mock, false)
	mock.ExpectQuery("INSERT INTO shortlisted_universities").
		WithArgs(int64(7), int64(2), "reach-ish", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), repotest.Now))

	out, err := handler.Execute(context.Background(), &Input{UserID: 7, UniversityID: 2, Category: "reach-ish"})
	require.NoError(t, err)

	assert.Equal(t, "University shortlisted successfully", out.Message)
	assert.Equal(t, int64(11), out.Entry.ID)
	assert.Equal(t, "reach-ish", out.Entry.Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_AlreadyShortlisted(t *testing.T) {
	handler, mock := setupHandler(t)
	expectUserAndUniversity(mock)
	expectExists(mock, true)

	_, err := handler.Execute(context.Background(), &Input{UserID: 7, UniversityID: 2})
	assert.Equal(t, apperrors.ErrCodeAlreadyShortlisted, apperrors.CodeOf(err))
}

func TestExecute_ConcurrentDuplicateInsert(t *testing.T) {
	handler, mock := setupHandler(t)
	expectUserAndUniversity(mock)
	expectExists(mock, false)
	mock.ExpectQuery("INSERT INTO shortlisted_universities").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := handler.Execute(context.Background(), &Input{UserID: 7, UniversityID: 2})
	assert.Equal(t, apperrors.ErrCodeAlreadyShortlisted, apperrors.CodeOf(err))
}

func TestExecute_UnknownUniversity(t *testing.T) {
	handler, mock := setupHandler(t)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WillReturnRows(repotest.UserRows(7, "a@b.co", "h", true, "dashboard"))
	mock.ExpectQuery("SELECT (.+) FROM universities WHERE id").WillReturnError(sql.ErrNoRows)

	_, err := handler.Execute(context.Background(), &Input{UserID: 7, UniversityID: 2})
	assert.Equal(t, apperrors.ErrCodeUniversityNotFound, apperrors.CodeOf(err))
}

func TestInputSchema(t *testing.T) {
	assert.NoError(t, validation.Validate(`{"userId": 7, "universityId": 2, "category": null}`, GetInputSchema()))
	assert.Error(t, validation.Validate(`{"userId": 7, "universityId": 0}`, GetInputSchema()))
}
