package repository

import (
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

var fixedTime = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

var universityCols = []string{
	"id", "name", "country", "city", "ranking", "acceptance_rate", "programs_offered",
	"tuition_min", "tuition_max", "currency", "living_cost_estimate", "min_gpa",
	"toefl_required", "ielts_required", "gre_required", "gmat_required", "website", "description",
}

func universityRow(id int64, name, country string) []driver.Value {
	return []driver.Value{
		id, name, country, "Munich", int64(50), 0.3, "{Computer Science,Physics}",
		10000.0, 20000.0, "EUR", nil, 3.0,
		true, false, false, false, "https://example.edu", nil,
	}
}
