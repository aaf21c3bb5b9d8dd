package listselections

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-abroad-workers/internal/common/logger"
	"study-abroad-workers/internal/repository"
	"study-abroad-workers/internal/repository/repotest"
)

func setupHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WillReturnRows(repotest.UserRows(7, "a@b.co", "h", true, "application"))

	return NewHandler(&Config{Timeout: 5 * time.Second},
		repository.NewUserStore(db), repository.NewSelectionStore(db), logger.NewTestLogger(t)), mock
}

func TestExecute_ReturnsBothLists(t *testing.T) {
	handler, mock := setupHandler(t)
	tum := repotest.University{ID: 1, Name: "TU Munich", Country: "Germany"}
	eth := repotest.University{ID: 2, Name: "ETH Zurich", Country: "Switzerland"}

	mock.ExpectQuery("SELECT sl.category, (.+) FROM shortlisted_universities sl").
		WithArgs(int64(7)).
		WillReturnRows(repotest.ShortlistedRows([]string{"dream", "target"}, tum, eth))
	mock.ExpectQuery("FROM locked_universities l").
		WithArgs(int64(7)).
		WillReturnRows(repotest.UniversityRows(eth))

	out, err := handler.Execute(context.Background(), &Input{UserID: 7})
	require.NoError(t, err)

	require.Len(t, out.Shortlisted, 2)
	assert.Equal(t, "dream", out.Shortlisted[0].Category)
	assert.Equal(t, "TU Munich", out.Shortlisted[0].Name)
	require.Len(t, out.Locked, 1)
	assert.Equal(t, "ETH Zurich", out.Locked[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_EmptyListsAreNotNull(t *testing.T) {
	handler, mock := setupHandler(t)
	mock.ExpectQuery("FROM shortlisted_universities sl").
		WillReturnRows(sqlmock.NewRows(append([]string{"category"}, repotest.UniversityColumns...)))
	mock.ExpectQuery("FROM locked_universities l").
		WillReturnRows(sqlmock.NewRows(repotest.UniversityColumns))

	out, err := handler.Execute(context.Background(), &Input{UserID: 7})
	require.NoError(t, err)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"shortlisted": [], "locked": []}`, string(raw))
}
