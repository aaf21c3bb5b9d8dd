package repository

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-abroad-workers/internal/models"
)

type fakeES struct {
	mu          sync.Mutex
	indexExists bool
	created     bool
	bulkLines   []string
	searchBody  map[string]interface{}
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodHead && r.URL.Path == "/universities":
		if f.indexExists {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case r.Method == http.MethodPut && r.URL.Path == "/universities":
		f.created = true
		f.indexExists = true
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	case strings.HasSuffix(r.URL.Path, "/_bulk"):
		scanner := bufio.NewScanner(r.Body)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				f.bulkLines = append(f.bulkLines, line)
			}
		}
		items := make([]map[string]interface{}, 0, len(f.bulkLines)/2)
		for i := 0; i < len(f.bulkLines)/2; i++ {
			items = append(items, map[string]interface{}{"index": map[string]interface{}{"status": 201}})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"errors": false, "items": items})
	case strings.HasSuffix(r.URL.Path, "/_search"):
		_ = json.NewDecoder(r.Body).Decode(&f.searchBody)
		_, _ = io.WriteString(w, `{
			"took": 3,
			"hits": {
				"total": {"value": 1, "relation": "eq"},
				"max_score": 4.2,
				"hits": [{
					"_index": "universities", "_id": "1", "_score": 4.2,
					"_source": {"id": 1, "name": "TU Munich", "country": "Germany", "city": "Munich",
						"programs_offered": ["Computer Science"], "ranking": 50, "tuition_max": 3000}
				}]
			}
		}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"unexpected request"}`)
	}
}

func newCatalogIndex(t *testing.T) (*CatalogIndex, *fakeES) {
	t.Helper()
	fake := &fakeES{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewCatalogIndex(client, ""), fake
}

func TestCatalogIndex_EnsureIndex(t *testing.T) {
	idx, fake := newCatalogIndex(t)

	require.NoError(t, idx.EnsureIndex(context.Background()))
	assert.True(t, fake.created)

	fake.created = false
	require.NoError(t, idx.EnsureIndex(context.Background()))
	assert.False(t, fake.created, "existing index is left alone")
}

func TestCatalogIndex_Index(t *testing.T) {
	idx, fake := newCatalogIndex(t)
	ranking := 50

	n, err := idx.Index(context.Background(), []models.University{
		{ID: 1, Name: "TU Munich", Country: "Germany", Ranking: &ranking, ProgramsOffered: []string{"Physics"}},
		{ID: 2, Name: "University of Toronto", Country: "Canada"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, fake.bulkLines, 4)
	assert.Contains(t, fake.bulkLines[0], `"_id":"1"`)
	assert.Contains(t, fake.bulkLines[1], `"programs_offered":["Physics"]`)
	assert.Contains(t, fake.bulkLines[3], `"name":"University of Toronto"`)
}

func TestCatalogIndex_IndexNothing(t *testing.T) {
	idx, fake := newCatalogIndex(t)
	n, err := idx.Index(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, fake.bulkLines)
}

func TestCatalogIndex_Search(t *testing.T) {
	idx, fake := newCatalogIndex(t)

	res, err := idx.Search(context.Background(), "computer science", "Germany", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.TotalHits)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "TU Munich", res.Hits[0].University.Name)
	assert.Equal(t, 4.2, res.Hits[0].Score)
	assert.Equal(t, 3000.0, *res.Hits[0].University.TuitionMax)

	body, _ := json.Marshal(fake.searchBody)
	assert.Contains(t, string(body), `"multi_match"`)
	assert.Contains(t, string(body), `"name^3"`)
	assert.Contains(t, string(body), `"filter":[{"match":{"country":"Germany"}}]`)
}

func TestBuildSearchQueryWithoutText(t *testing.T) {
	q := buildSearchQuery("  ", "")
	body, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Contains(t, string(body), "match_all")
	assert.NotContains(t, string(body), "filter")
}
