package loginuser

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-abroad-workers/internal/common/auth"
	apperrors "study-abroad-workers/internal/common/errors"
	"study-abroad-workers/internal/common/logger"
	"study-abroad-workers/internal/repository"
	"study-abroad-workers/internal/repository/repotest"
)

func setupHandler(t *testing.T) (*Handler, sqlmock.Sqlmock, *auth.TokenIssuer) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	issuer, err := auth.NewTokenIssuer("test-secret", "study-abroad-workers", 30*time.Minute)
	require.NoError(t, err)

	h := NewHandler(&Config{Timeout: 5 * time.Second}, repository.NewUserStore(db), issuer, logger.NewTestLogger(t))
	return h, mock, issuer
}

func TestExecute_IssuesToken(t *testing.T) {
	handler, mock, issuer := setupHandler(t)
	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("sam@example.com").
		WillReturnRows(repotest.UserRows(5, "sam@example.com", hash, true, "dashboard"))

	out, err := handler.Execute(context.Background(), &Input{Email: "sam@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", out.TokenType)
	assert.Equal(t, int64(5), out.UserID)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), out.ExpiresAt, time.Minute)

	claims, err := issuer.Parse(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", claims.Email())
}

func TestExecute_RejectsBadCredentials(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		handler, mock, _ := setupHandler(t)
		mock.ExpectQuery("SELECT (.+) FROM users").WillReturnError(sql.ErrNoRows)

		_, err := handler.Execute(context.Background(), &Input{Email: "ghost@example.com", Password: "x"})
		assert.Equal(t, apperrors.ErrCodeInvalidCredentials, apperrors.CodeOf(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		handler, mock, _ := setupHandler(t)
		hash, err := auth.HashPassword("right")
		require.NoError(t, err)
		mock.ExpectQuery("SELECT (.+) FROM users").
			WillReturnRows(repotest.UserRows(5, "sam@example.com", hash, true, "dashboard"))

		_, err = handler.Execute(context.Background(), &Input{Email: "sam@example.com", Password: "wrong"})
		assert.Equal(t, apperrors.ErrCodeInvalidCredentials, apperrors.CodeOf(err))
		assert.False(t, apperrors.Normalize(err).Retryable)
	})
}
