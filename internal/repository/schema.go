package repository

import (
	"context"
	"database/sql"
	"fmt"

	"study-abroad-workers/internal/common/database"
)

// Schema is applied idempotently at start-up.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              BIGSERIAL PRIMARY KEY,
		email           TEXT NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		full_name       TEXT NOT NULL,
		is_onboarded    BOOLEAN NOT NULL DEFAULT FALSE,
		current_stage   TEXT NOT NULL DEFAULT 'onboarding',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS user_profiles (
		id                    BIGSERIAL PRIMARY KEY,
		user_id               BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		current_degree        TEXT,
		current_gpa           DOUBLE PRECISION,
		current_institution   TEXT,
		field_of_study        TEXT,
		graduation_year       INTEGER,
		desired_degree        TEXT,
		desired_field         TEXT,
		preferred_countries   TEXT,
		study_start_year      INTEGER,
		budget_min            DOUBLE PRECISION,
		budget_max            DOUBLE PRECISION,
		currency              TEXT DEFAULT 'USD',
		toefl_score           INTEGER,
		ielts_score           DOUBLE PRECISION,
		gre_score             INTEGER,
		gmat_score            INTEGER,
		exam_status           TEXT,
		work_experience_years INTEGER NOT NULL DEFAULT 0,
		research_experience   BOOLEAN NOT NULL DEFAULT FALSE,
		publications          INTEGER NOT NULL DEFAULT 0,
		created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at            TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS universities (
		id                   BIGSERIAL PRIMARY KEY,
		name                 TEXT NOT NULL UNIQUE,
		country              TEXT NOT NULL,
		city                 TEXT,
		ranking              INTEGER,
		acceptance_rate      DOUBLE PRECISION,
		programs_offered     TEXT[],
		tuition_min          DOUBLE PRECISION,
		tuition_max          DOUBLE PRECISION,
		currency             TEXT DEFAULT 'USD',
		living_cost_estimate DOUBLE PRECISION,
		min_gpa              DOUBLE PRECISION,
		toefl_required       BOOLEAN NOT NULL DEFAULT FALSE,
		ielts_required       BOOLEAN NOT NULL DEFAULT FALSE,
		gre_required         BOOLEAN NOT NULL DEFAULT FALSE,
		gmat_required        BOOLEAN NOT NULL DEFAULT FALSE,
		website              TEXT,
		description          TEXT,
		created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_universities_country ON universities (country)`,
	`CREATE TABLE IF NOT EXISTS shortlisted_universities (
		id            BIGSERIAL PRIMARY KEY,
		user_id       BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		university_id BIGINT NOT NULL REFERENCES universities(id) ON DELETE CASCADE,
		category      TEXT NOT NULL DEFAULT '',
		notes         TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, university_id)
	)`,
	`CREATE TABLE IF NOT EXISTS locked_universities (
		id            BIGSERIAL PRIMARY KEY,
		user_id       BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		university_id BIGINT NOT NULL REFERENCES universities(id) ON DELETE CASCADE,
		locked_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, university_id)
	)`,
	`CREATE TABLE IF NOT EXISTS todo_tasks (
		id            BIGSERIAL PRIMARY KEY,
		user_id       BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		university_id BIGINT REFERENCES universities(id) ON DELETE SET NULL,
		title         TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		priority      TEXT NOT NULL DEFAULT 'medium',
		status        TEXT NOT NULL DEFAULT 'pending',
		due_date      TIMESTAMPTZ,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ,
		completed_at  TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todo_tasks_user ON todo_tasks (user_id, created_at DESC)`,
}

// EnsureSchema creates every table and index in a single transaction.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	return database.InTx(ctx, db, func(tx *sql.Tx) error {
		for i, stmt := range Schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("schema statement %d: %w", i, err)
			}
		}
		return nil
	})
}
