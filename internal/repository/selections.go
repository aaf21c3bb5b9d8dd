package repository

import (
	"context"
	"database/sql"
	"fmt"

	"study-abroad-workers/internal/models"
)

// SelectionStore keeps each student's shortlisted and locked universities.
type SelectionStore struct {
	db DBTX
}

func NewSelectionStore(db DBTX) *SelectionStore {
	return &SelectionStore{db: db}
}

func (s *SelectionStore) WithTx(tx *sql.Tx) *SelectionStore {
	return &SelectionStore{db: tx}
}

func (s *SelectionStore) exists(ctx context.Context, table string, userID, universityID int64) (bool, error) {
	var found bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM `+table+` WHERE user_id = $1 AND university_id = $2)`,
		userID, universityID).Scan(&found)
	return found, err
}

// Shortlist stores the entry and fills in its id and creation time.
func (s *SelectionStore) Shortlist(ctx context.Context, e *models.ShortlistEntry) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO shortlisted_universities (user_id, university_id, category, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		e.UserID, e.UniversityID, e.Category, e.Notes,
	).Scan(&e.ID, &e.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: university %d already shortlisted", ErrDuplicate, e.UniversityID)
	}
	return err
}

func (s *SelectionStore) IsShortlisted(ctx context.Context, userID, universityID int64) (bool, error) {
	return s.exists(ctx, "shortlisted_universities", userID, universityID)
}

// ListShortlisted joins the catalog; entries whose university is gone are
// dropped.
func (s *SelectionStore) ListShortlisted(ctx context.Context, userID int64) ([]models.ShortlistedUniversity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sl.category, `+prefixed("u", universityColumns)+`
		FROM shortlisted_universities sl
		JOIN universities u ON u.id = sl.university_id
		WHERE sl.user_id = $1
		ORDER BY sl.created_at, sl.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ShortlistedUniversity
	for rows.Next() {
		var category string
		u, err := scanUniversity(categoryScanner{rows: rows, category: &category})
		if err != nil {
			return nil, err
		}
		out = append(out, models.ShortlistedUniversity{University: *u, Category: category})
	}
	return out, rows.Err()
}

func (s *SelectionStore) Lock(ctx context.Context, e *models.LockedEntry) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO locked_universities (user_id, university_id)
		VALUES ($1, $2)
		RETURNING id, locked_at`,
		e.UserID, e.UniversityID,
	).Scan(&e.ID, &e.LockedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: university %d already locked", ErrDuplicate, e.UniversityID)
	}
	return err
}

func (s *SelectionStore) IsLocked(ctx context.Context, userID, universityID int64) (bool, error) {
	return s.exists(ctx, "locked_universities", userID, universityID)
}

// Unlock removes the lock, or returns ErrNotFound when there is none.
func (s *SelectionStore) Unlock(ctx context.Context, userID, universityID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM locked_universities WHERE user_id = $1 AND university_id = $2`,
		userID, universityID)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func (s *SelectionStore) ListLocked(ctx context.Context, userID int64) ([]models.University, error) {
	store := UniversityStore{db: s.db}
	return store.queryMany(ctx, `
		SELECT `+prefixed("u", universityColumns)+`
		FROM locked_universities l
		JOIN universities u ON u.id = l.university_id
		WHERE l.user_id = $1
		ORDER BY l.locked_at, l.id`, userID)
}

// categoryScanner reads the leading category column before handing the
// rest of the row to scanUniversity.
type categoryScanner struct {
	rows     *sql.Rows
	category *string
}

func (c categoryScanner) Scan(dest ...interface{}) error {
	return c.rows.Scan(append([]interface{}{c.category}, dest...)...)
}
