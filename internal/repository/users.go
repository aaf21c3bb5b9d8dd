package repository

import (
	"context"
	"database/sql"
	"fmt"

	"study-abroad-workers/internal/models"
)

type UserStore struct {
	db DBTX
}

func NewUserStore(db DBTX) *UserStore {
	return &UserStore{db: db}
}

// WithTx returns a store bound to tx.
func (s *UserStore) WithTx(tx *sql.Tx) *UserStore {
	return &UserStore{db: tx}
}

const userColumns = `id, email, hashed_password, full_name, is_onboarded, current_stage, created_at, updated_at`

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u       models.User
		stage   string
		updated sql.NullTime
	)
	if err := row.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.FullName,
		&u.IsOnboarded, &stage, &u.CreatedAt, &updated); err != nil {
		return nil, err
	}
	u.CurrentStage = models.Stage(stage)
	u.UpdatedAt = timePtr(updated)
	return &u, nil
}

// Create inserts u and fills in its id and creation time. A second
// account for the same email returns ErrDuplicate.
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	if u.CurrentStage == "" {
		u.CurrentStage = models.StageOnboarding
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, hashed_password, full_name, is_onboarded, current_stage)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		u.Email, u.HashedPassword, u.FullName, u.IsOnboarded, string(u.CurrentStage),
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email %s", ErrDuplicate, u.Email)
		}
		return err
	}
	return nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	return u, notFound(err)
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	return u, notFound(err)
}

// MarkOnboarded flags the user as onboarded and moves them to the dashboard.
func (s *UserStore) MarkOnboarded(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET is_onboarded = TRUE, current_stage = $2, updated_at = NOW()
		WHERE id = $1`, id, string(models.StageDashboard))
	if err != nil {
		return err
	}
	return expectOne(res)
}

func (s *UserStore) SetStage(ctx context.Context, id int64, stage models.Stage) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET current_stage = $2, updated_at = NOW()
		WHERE id = $1`, id, string(stage))
	if err != nil {
		return err
	}
	return expectOne(res)
}
