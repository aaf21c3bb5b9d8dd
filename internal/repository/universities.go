package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"study-abroad-workers/internal/models"
)

type UniversityStore struct {
	db DBTX
}

func NewUniversityStore(db DBTX) *UniversityStore {
	return &UniversityStore{db: db}
}

const universityColumns = `id, name, country, city, ranking, acceptance_rate, programs_offered,
	tuition_min, tuition_max, currency, living_cost_estimate, min_gpa,
	toefl_required, ielts_required, gre_required, gmat_required, website, description`

func scanUniversity(row rowScanner) (*models.University, error) {
	var u models.University
	var city, currency, website, description sql.NullString
	var ranking sql.NullInt64
	var acceptance, tuitionMin, tuitionMax, living, minGPA sql.NullFloat64
	var programs pq.StringArray
	if err := row.Scan(&u.ID, &u.Name, &u.Country, &city, &ranking, &acceptance, &programs,
		&tuitionMin, &tuitionMax, &currency, &living, &minGPA,
		&u.TOEFLRequired, &u.IELTSRequired, &u.GRERequired, &u.GMATRequired,
		&website, &description); err != nil {
		return nil, err
	}
	u.City = city.String
	u.Ranking = intPtr(ranking)
	u.AcceptanceRate = floatPtr(acceptance)
	u.ProgramsOffered = []string(programs)
	u.TuitionMin = floatPtr(tuitionMin)
	u.TuitionMax = floatPtr(tuitionMax)
	u.Currency = currency.String
	u.LivingCostEstimate = floatPtr(living)
	u.MinGPA = floatPtr(minGPA)
	u.Website = website.String
	u.Description = description.String
	return &u, nil
}

func (s *UniversityStore) queryMany(ctx context.Context, query string, args ...interface{}) ([]models.University, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.University
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// List returns the whole catalog ordered by id.
func (s *UniversityStore) List(ctx context.Context) ([]models.University, error) {
	return s.queryMany(ctx, `SELECT `+universityColumns+` FROM universities ORDER BY id`)
}

func (s *UniversityStore) Get(ctx context.Context, id int64) (*models.University, error) {
	u, err := scanUniversity(s.db.QueryRowContext(ctx,
		`SELECT `+universityColumns+` FROM universities WHERE id = $1`, id))
	return u, notFound(err)
}

// GetMany returns the universities for ids in the order given. Unknown ids
// are skipped.
func (s *UniversityStore) GetMany(ctx context.Context, ids []int64) ([]models.University, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := s.queryMany(ctx,
		`SELECT `+universityColumns+` FROM universities WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.University, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}
	out := make([]models.University, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// Upsert inserts u or updates the entry with the same name, and sets u.ID.
func (s *UniversityStore) Upsert(ctx context.Context, u *models.University) error {
	return s.db.QueryRowContext(ctx, `
		INSERT INTO universities (
			name, country, city, ranking, acceptance_rate, programs_offered,
			tuition_min, tuition_max, currency, living_cost_estimate, min_gpa,
			toefl_required, ielts_required, gre_required, gmat_required, website, description
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (name) DO UPDATE SET
			country = EXCLUDED.country,
			city = EXCLUDED.city,
			ranking = EXCLUDED.ranking,
			acceptance_rate = EXCLUDED.acceptance_rate,
			programs_offered = EXCLUDED.programs_offered,
			tuition_min = EXCLUDED.tuition_min,
			tuition_max = EXCLUDED.tuition_max,
			currency = EXCLUDED.currency,
			living_cost_estimate = EXCLUDED.living_cost_estimate,
			min_gpa = EXCLUDED.min_gpa,
			toefl_required = EXCLUDED.toefl_required,
			ielts_required = EXCLUDED.ielts_required,
			gre_required = EXCLUDED.gre_required,
			gmat_required = EXCLUDED.gmat_required,
			website = EXCLUDED.website,
			description = EXCLUDED.description
		RETURNING id`,
		u.Name, u.Country, u.City, u.Ranking, u.AcceptanceRate, pq.Array(u.ProgramsOffered),
		u.TuitionMin, u.TuitionMax, currencyOrDefault(u.Currency), u.LivingCostEstimate, u.MinGPA,
		u.TOEFLRequired, u.IELTSRequired, u.GRERequired, u.GMATRequired, u.Website, u.Description,
	).Scan(&u.ID)
}
