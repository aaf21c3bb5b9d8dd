// Package journey holds the checks every student-facing worker makes
// before touching the student's data.
package journey

import (
	"context"
	"errors"
	"fmt"

	apperrors "study-abroad-workers/internal/common/errors"
	"study-abroad-workers/internal/models"
	"study-abroad-workers/internal/repository"
)

// UserLoader is the slice of repository.UserStore the checks need.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// LoadUser resolves the authenticated user id. A user that no longer
// exists makes the caller's token invalid.
func LoadUser(ctx context.Context, users UserLoader, userID int64) (*models.User, error) {
	if userID <= 0 {
		return nil, apperrors.NewInvalidInputError("userId is required")
	}
	u, err := users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewTokenInvalidError(fmt.Sprintf("user %d no longer exists", userID))
	}
	if err != nil {
		return nil, apperrors.FromStorage("load user", err)
	}
	return u, nil
}

// RequireOnboarded is LoadUser plus ONBOARDING_REQUIRED for students who
// have not saved a profile yet.
func RequireOnboarded(ctx context.Context, users UserLoader, userID int64) (*models.User, error) {
	u, err := LoadUser(ctx, users, userID)
	if err != nil {
		return nil, err
	}
	if !u.IsOnboarded {
		return nil, apperrors.NewOnboardingRequiredError(userID)
	}
	return u, nil
}

type UniversityLoader interface {
	Get(ctx context.Context, id int64) (*models.University, error)
}

// LoadUniversity fetches a catalog entry, mapping a miss to
// UNIVERSITY_NOT_FOUND.
func LoadUniversity(ctx context.Context, universities UniversityLoader, universityID int64) (*models.University, error) {
	if universityID <= 0 {
		return nil, apperrors.NewInvalidInputError("universityId is required")
	}
	u, err := universities.Get(ctx, universityID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewUniversityNotFoundError(universityID)
	}
	if err != nil {
		return nil, apperrors.FromStorage("load university", err)
	}
	return u, nil
}
