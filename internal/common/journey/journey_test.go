package journey

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "study-abroad-workers/internal/common/errors"
	"study-abroad-workers/internal/models"
	"study-abroad-workers/internal/repository"
)

type stubUsers struct {
	user *models.User
	err  error
}

func (s stubUsers) GetByID(context.Context, int64) (*models.User, error) {
	return s.user, s.err
}

func TestRequireOnboarded(t *testing.T) {
	tests := []struct {
		name  string
		users stubUsers
		id    int64
		code  apperrors.ErrorCode
	}{
		{"missing id", stubUsers{}, 0, apperrors.ErrCodeInvalidInput},
		{"deleted user", stubUsers{err: repository.ErrNotFound}, 7, apperrors.ErrCodeTokenInvalid},
		{"storage down", stubUsers{err: errors.New("conn reset")}, 7, apperrors.ErrCodeQueryExecutionFailed},
		{"not onboarded", stubUsers{user: &models.User{ID: 7}}, 7, apperrors.ErrCodeOnboardingRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RequireOnboarded(context.Background(), tt.users, tt.id)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperrors.CodeOf(err))
		})
	}

	u, err := RequireOnboarded(context.Background(), stubUsers{user: &models.User{ID: 7, IsOnboarded: true}}, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
}

type stubUniversities struct {
	err error
}

func (s stubUniversities) Get(_ context.Context, id int64) (*models.University, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.University{ID: id, Name: "TU Munich"}, nil
}

func TestLoadUniversity(t *testing.T) {
	_, err := LoadUniversity(context.Background(), stubUniversities{err: repository.ErrNotFound}, 9)
	assert.Equal(t, apperrors.ErrCodeUniversityNotFound, apperrors.CodeOf(err))

	_, err = LoadUniversity(context.Background(), stubUniversities{err: context.DeadlineExceeded}, 9)
	assert.Equal(t, apperrors.ErrCodeQueryTimeout, apperrors.CodeOf(err))

	_, err = LoadUniversity(context.Background(), stubUniversities{}, 0)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.CodeOf(err))

	u, err := LoadUniversity(context.Background(), stubUniversities{}, 9)
	require.NoError(t, err)
	assert.Equal(t, "TU Munich", u.Name)
}
