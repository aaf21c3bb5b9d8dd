package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"study-abroad-workers/internal/common/logger"
	"study-abroad-workers/internal/models"
)

// ProfileStore reads profiles through a Redis cache. A nil cache disables
// caching.
type ProfileStore struct {
	db     DBTX
	cache  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewProfileStore(db DBTX, cache *redis.Client, ttl time.Duration) *ProfileStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProfileStore{db: db, cache: cache, ttl: ttl, logger: logger.NewNoOpLogger()}
}

// WithLogger reports cache write failures to log.
func (s *ProfileStore) WithLogger(log logger.Logger) *ProfileStore {
	return &ProfileStore{db: s.db, cache: s.cache, ttl: s.ttl, logger: log}
}

// WithTx binds the store to tx. Writes made through it leave the cache
// alone; call Invalidate once tx has committed.
func (s *ProfileStore) WithTx(tx *sql.Tx) *ProfileStore {
	return &ProfileStore{db: tx, cache: s.cache, ttl: s.ttl, logger: s.logger}
}

func ProfileCacheKey(userID int64) string {
	return fmt.Sprintf("student:profile:%d", userID)
}

const profileColumns = `user_id, current_degree, current_gpa, current_institution, field_of_study,
	graduation_year, desired_degree, desired_field, preferred_countries, study_start_year,
	budget_min, budget_max, currency, toefl_score, ielts_score, gre_score, gmat_score,
	exam_status, work_experience_years, research_experience, publications, created_at, updated_at`

func scanProfile(row rowScanner) (*models.StudentProfile, error) {
	var p models.StudentProfile
	var degree, institution, field, desiredDeg, desiredField sql.NullString
	var countries, currency, examStatus sql.NullString
	var gpa, budgetMin, budgetMax, ielts sql.NullFloat64
	var gradYear, startYear, toefl, gre, gmat sql.NullInt64
	var created, updated sql.NullTime
	if err := row.Scan(&p.UserID, &degree, &gpa, &institution, &field,
		&gradYear, &desiredDeg, &desiredField, &countries, &startYear,
		&budgetMin, &budgetMax, &currency, &toefl, &ielts, &gre, &gmat,
		&examStatus, &p.WorkExperienceYears, &p.ResearchExperience, &p.Publications,
		&created, &updated); err != nil {
		return nil, err
	}

	p.CurrentDegree = degree.String
	p.CurrentGPA = floatPtr(gpa)
	p.CurrentInstitution = institution.String
	p.FieldOfStudy = field.String
	p.GraduationYear = intPtr(gradYear)
	p.DesiredDegree = desiredDeg.String
	p.DesiredField = desiredField.String
	p.PreferredCountries = countries.String
	p.StudyStartYear = intPtr(startYear)
	p.BudgetMin = floatPtr(budgetMin)
	p.BudgetMax = floatPtr(budgetMax)
	p.Currency = currency.String
	p.TOEFLScore = intPtr(toefl)
	p.IELTSScore = floatPtr(ielts)
	p.GREScore = intPtr(gre)
	p.GMATScore = intPtr(gmat)
	p.ExamStatus = examStatus.String
	p.CreatedAt = timePtr(created)
	p.UpdatedAt = timePtr(updated)
	return &p, nil
}

// Get returns the profile of userID, or ErrNotFound. Cache failures fall
// through to the database.
func (s *ProfileStore) Get(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	key := ProfileCacheKey(userID)
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, key).Result(); err == nil {
			var cached models.StudentProfile
			if json.Unmarshal([]byte(val), &cached) == nil {
				return &cached, nil
			}
		}
	}

	p, err := scanProfile(s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1`, userID))
	if err != nil {
		return nil, notFound(err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(p); err == nil {
			if err := s.cache.Set(ctx, key, data, s.ttl).Err(); err != nil {
				s.logger.Warn("failed to cache profile", map[string]interface{}{
					"userId": userID,
					"error":  err.Error(),
				})
			}
		}
	}
	return p, nil
}

// GetForUpdate reads the stored profile straight from the database and
// locks the row until the surrounding transaction ends.
func (s *ProfileStore) GetForUpdate(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	p, err := scanProfile(s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1 FOR UPDATE`, userID))
	return p, notFound(err)
}

// Find is Get with a missing profile reported as nil rather than an error.
func (s *ProfileStore) Find(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	p, err := s.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return p, err
}

// Upsert writes the whole profile for p.UserID. The cached copy is not
// touched; see Invalidate.
func (s *ProfileStore) Upsert(ctx context.Context, p *models.StudentProfile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_profiles (
			user_id, current_degree, current_gpa, current_institution, field_of_study,
			graduation_year, desired_degree, desired_field, preferred_countries, study_start_year,
			budget_min, budget_max, currency, toefl_score, ielts_score, gre_score, gmat_score,
			exam_status, work_experience_years, research_experience, publications
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (user_id) DO UPDATE SET
			current_degree = EXCLUDED.current_degree,
			current_gpa = EXCLUDED.current_gpa,
			current_institution = EXCLUDED.current_institution,
			field_of_study = EXCLUDED.field_of_study,
			graduation_year = EXCLUDED.graduation_year,
			desired_degree = EXCLUDED.desired_degree,
			desired_field = EXCLUDED.desired_field,
			preferred_countries = EXCLUDED.preferred_countries,
			study_start_year = EXCLUDED.study_start_year,
			budget_min = EXCLUDED.budget_min,
			budget_max = EXCLUDED.budget_max,
			currency = EXCLUDED.currency,
			toefl_score = EXCLUDED.toefl_score,
			ielts_score = EXCLUDED.ielts_score,
			gre_score = EXCLUDED.gre_score,
			gmat_score = EXCLUDED.gmat_score,
			exam_status = EXCLUDED.exam_status,
			work_experience_years = EXCLUDED.work_experience_years,
			research_experience = EXCLUDED.research_experience,
			publications = EXCLUDED.publications,
			updated_at = NOW()`,
		p.UserID, p.CurrentDegree, p.CurrentGPA, p.CurrentInstitution, p.FieldOfStudy,
		p.GraduationYear, p.DesiredDegree, p.DesiredField, p.PreferredCountries, p.StudyStartYear,
		p.BudgetMin, p.BudgetMax, currencyOrDefault(p.Currency), p.TOEFLScore, p.IELTSScore, p.GREScore, p.GMATScore,
		p.ExamStatus, p.WorkExperienceYears, p.ResearchExperience, p.Publications,
	)
	return err
}

// Invalidate drops the cached profile of userID.
func (s *ProfileStore) Invalidate(ctx context.Context, userID int64) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, ProfileCacheKey(userID)).Err()
}

func currencyOrDefault(c string) string {
	if c == "" {
		return "USD"
	}
	return c
}
