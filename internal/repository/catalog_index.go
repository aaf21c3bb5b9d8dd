package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"study-abroad-workers/internal/models"
)

const catalogMapping = `{
  "mappings": {
    "properties": {
      "id":               {"type": "long"},
      "name":             {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "country":          {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "city":             {"type": "text"},
      "programs_offered": {"type": "text"},
      "description":      {"type": "text"},
      "ranking":          {"type": "integer"},
      "acceptance_rate":  {"type": "float"},
      "tuition_min":      {"type": "float"},
      "tuition_max":      {"type": "float"},
      "min_gpa":          {"type": "float"}
    }
  }
}`

// catalogDoc is the indexed shape of a university.
type catalogDoc struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Country         string   `json:"country"`
	City            string   `json:"city,omitempty"`
	ProgramsOffered []string `json:"programs_offered,omitempty"`
	Description     string   `json:"description,omitempty"`
	Ranking         *int     `json:"ranking,omitempty"`
	AcceptanceRate  *float64 `json:"acceptance_rate,omitempty"`
	TuitionMin      *float64 `json:"tuition_min,omitempty"`
	TuitionMax      *float64 `json:"tuition_max,omitempty"`
	Currency        string   `json:"currency,omitempty"`
	MinGPA          *float64 `json:"min_gpa,omitempty"`
	Website         string   `json:"website,omitempty"`
}

func toDoc(u models.University) catalogDoc {
	return catalogDoc{
		ID: u.ID, Name: u.Name, Country: u.Country, City: u.City,
		ProgramsOffered: u.ProgramsOffered, Description: u.Description,
		Ranking: u.Ranking, AcceptanceRate: u.AcceptanceRate,
		TuitionMin: u.TuitionMin, TuitionMax: u.TuitionMax, Currency: u.Currency,
		MinGPA: u.MinGPA, Website: u.Website,
	}
}

func (d catalogDoc) university() models.University {
	return models.University{
		ID: d.ID, Name: d.Name, Country: d.Country, City: d.City,
		ProgramsOffered: d.ProgramsOffered, Description: d.Description,
		Ranking: d.Ranking, AcceptanceRate: d.AcceptanceRate,
		TuitionMin: d.TuitionMin, TuitionMax: d.TuitionMax, Currency: d.Currency,
		MinGPA: d.MinGPA, Website: d.Website,
	}
}

type SearchHit struct {
	University models.University `json:"university"`
	Score      float64           `json:"score"`
}

type SearchResult struct {
	Hits      []SearchHit `json:"hits"`
	TotalHits int64       `json:"totalHits"`
	Took      int64       `json:"took"`
}

// CatalogIndex is the full-text copy of the catalog in Elasticsearch.
type CatalogIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewCatalogIndex(client *elasticsearch.Client, index string) *CatalogIndex {
	if index == "" {
		index = "universities"
	}
	return &CatalogIndex{client: client, index: index}
}

func (c *CatalogIndex) Name() string { return c.index }

// EnsureIndex creates the index with its mapping when it does not exist.
func (c *CatalogIndex) EnsureIndex(ctx context.Context) error {
	res, err := c.client.Indices.Exists([]string{c.index}, c.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", c.index, err)
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	res, err = c.client.Indices.Create(c.index,
		c.client.Indices.Create.WithContext(ctx),
		c.client.Indices.Create.WithBody(strings.NewReader(catalogMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", c.index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", c.index, res.String())
	}
	return nil
}

// Index bulk-writes universities, keyed by id.
func (c *CatalogIndex) Index(ctx context.Context, universities []models.University) (int, error) {
	if len(universities) == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, u := range universities {
		meta := map[string]interface{}{"index": map[string]interface{}{
			"_index": c.index,
			"_id":    strconv.FormatInt(u.ID, 10),
		}}
		if err := enc.Encode(meta); err != nil {
			return 0, err
		}
		if err := enc.Encode(toDoc(u)); err != nil {
			return 0, err
		}
	}

	res, err := c.client.Bulk(bytes.NewReader(buf.Bytes()),
		c.client.Bulk.WithContext(ctx),
		c.client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return 0, fmt.Errorf("bulk index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, fmt.Errorf("bulk index: %s", res.String())
	}

	var body struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Status int `json:"status"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode bulk response: %w", err)
	}

	indexed := 0
	for _, item := range body.Items {
		for _, op := range item {
			if op.Status >= 200 && op.Status < 300 {
				indexed++
			}
		}
	}
	if body.Errors {
		return indexed, fmt.Errorf("bulk index: %d of %d documents failed", len(universities)-indexed, len(universities))
	}
	return indexed, nil
}

func buildSearchQuery(query, country string) map[string]interface{} {
	must := []interface{}{}
	if strings.TrimSpace(query) != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^3", "city", "country", "programs_offered"},
				"type":   "best_fields",
			},
		})
	} else {
		must = append(must, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery := map[string]interface{}{"must": must}
	if strings.TrimSpace(country) != "" {
		boolQuery["filter"] = []interface{}{
			map[string]interface{}{"match": map[string]interface{}{"country": country}},
		}
	}
	return map[string]interface{}{"query": map[string]interface{}{"bool": boolQuery}}
}

// Search runs a relevance search over the catalog.
func (c *CatalogIndex) Search(ctx context.Context, query, country string, limit int) (*SearchResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	body, err := json.Marshal(buildSearchQuery(query, country))
	if err != nil {
		return nil, err
	}

	res, err := c.client.Search(
		c.client.Search.WithContext(ctx),
		c.client.Search.WithIndex(c.index),
		c.client.Search.WithBody(bytes.NewReader(body)),
		c.client.Search.WithSize(limit),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search %s: status %d: %s", c.index, res.StatusCode, raw)
	}

	var parsed struct {
		Took int64 `json:"took"`
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Score  float64    `json:"_score"`
				Source catalogDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := &SearchResult{TotalHits: parsed.Hits.Total.Value, Took: parsed.Took, Hits: []SearchHit{}}
	for _, h := range parsed.Hits.Hits {
		out.Hits = append(out.Hits, SearchHit{University: h.Source.university(), Score: h.Score})
	}
	return out, nil
}
