package searchuniversities

import "study-abroad-workers/internal/repository"

type Input struct {
	UserID  int64  `json:"userId"`
	Query   string `json:"query"`
	Country string `json:"country,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

type Output struct {
	Results   []repository.SearchHit `json:"results"`
	TotalHits int64                  `json:"totalHits"`
	Took      int64                  `json:"took"`
}
