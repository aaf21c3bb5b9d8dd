package getuniversity

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
	"study-abroad-workers/internal/repository"
	"study-abroad-workers/internal/repository/repotest"
)

func setupHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := NewHandler(&Config{Timeout: 5 * time.Second},
		repository.NewUserStore(db), repository.NewUniversityStore(db), logger.NewTestLogger(t))
	return h, mock
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name      string
		onboarded bool
		setup     func(sqlmock.Sqlmock)
		code      apperrors.ErrorCode
	}{
		{
			name:      "found",
			onboarded: true,
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery("SELECT (.+) FROM universities WHERE id").
					WithArgs(int64(2)).
					WillReturnRows(repotest.UniversityRows(repotest.University{ID: 2, Name: "Mid State", Country: "Germany"}))
			},
		},
		{
			name:      "missing",
			onboarded: true,
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery("SELECT (.+) FROM universities WHERE id").WillReturnError(sql.ErrNoRows)
			},
			code: apperrors.ErrCodeUniversityNotFound,
		},
		{
			name:  "not onboarded",
			setup: func(sqlmock.Sqlmock) {},
			code:  apperrors.ErrCodeOnboardingRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mock := setupHandler(t)
			mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
				WillReturnRows(repotest.UserRows(7, "a@b.co", "h", tt.onboarded, "dashboard"))
			tt.setup(mock)

			out, err := handler.Execute(context.Background(), &Input{UserID: 7, UniversityID: 2})
			if tt.code != "" {
				assert.Equal(t, tt.code, apperrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Mid State", out.University.Name)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
