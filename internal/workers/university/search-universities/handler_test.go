package searchuniversities

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "study-abroad-workers/internal/common/errors"
	"study-abroad-workers/internal/common/logger"
	"study-abroad-workers/internal/repository"
	"study-abroad-workers/internal/repository/repotest"
)

type stubSearcher struct {
	err      error
	gotQuery string
	gotLimit int
}

func (s *stubSearcher) Search(_ context.Context, query, _ string, limit int) (*repository.SearchResult, error) {
	s.gotQuery, s.gotLimit = query, limit
	if s.err != nil {
		return nil, s.err
	}
	return &repository.SearchResult{Hits: []repository.SearchHit{}}, nil
}

func setupHandler(t *testing.T, catalog CatalogSearcher) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WillReturnRows(repotest.UserRows(7, "a@b.co", "h", true, "dashboard"))

	cfg := &Config{Timeout: 5 * time.Second, DefaultLimit: 20}
	return NewHandler(cfg, repository.NewUserStore(db), catalog, logger.NewTestLogger(t)), mock
}

func TestExecute_AgainstElasticsearch(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		assert.Equal(t, "/universities/_search", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("size"))
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"took": 2, "hits": {"total": {"value": 1}, "hits": [
			{"_score": 3.1, "_source": {"id": 1, "name": "TU Munich", "country": "Germany"}}]}}`)
	}))
	defer srv.Close()

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	handler, _ := setupHandler(t, repository.NewCatalogIndex(client, ""))
	out, err := handler.Execute(context.Background(), &Input{UserID: 7, Query: " computer science ", Limit: 5})
	require.NoError(t, err)

	require.Len(t, out.Results, 1)
	assert.Equal(t, "TU Munich", out.Results[0].University.Name)
	assert.Equal(t, 3.1, out.Results[0].Score)
	assert.Equal(t, int64(1), out.TotalHits)
	assert.Contains(t, body, "query")
}

func TestExecute_DefaultsLimitAndTrimsQuery(t *testing.T) {
	stub := &stubSearcher{}
	handler, _ := setupHandler(t, stub)

	out, err := handler.Execute(context.Background(), &Input{UserID: 7, Query: "  mba "})
	require.NoError(t, err)
	assert.Equal(t, "mba", stub.gotQuery)
	assert.Equal(t, 20, stub.gotLimit)
	assert.NotNil(t, out.Results)
}

func TestExecute_SearchErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code apperrors.ErrorCode
	}{
		{"cluster error", errors.New("search universities: status 503"), apperrors.ErrCodeSearchQueryFailed},
		{"deadline", context.DeadlineExceeded, apperrors.ErrCodeSearchTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := setupHandler(t, &stubSearcher{err: tt.err})
			_, err := handler.Execute(context.Background(), &Input{UserID: 7, Query: "x"})
			assert.Equal(t, tt.code, apperrors.CodeOf(err))
		})
	}
}
