package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"study-abroad-workers/internal/models"
)

func TestRank_OrdersByScoreDescending(t *testing.T) {
	e := NewEngine(DefaultConfig())
	p := &models.StudentProfile{}

	low := testUniversity(1, "low", "X")
	low.Ranking = i(900)
	high := testUniversity(2, "high", "X")
	high.Ranking = i(1)
	mid := testUniversity(3, "mid", "X")
	mid.Ranking = i(400)

	got := e.Rank([]models.University{low, high, mid}, p)

	assert.Equal(t, int64(2), got[0].University.ID)
	assert.Equal(t, int64(3), got[1].University.ID)
	assert.Equal(t, int64(1), got[2].University.ID)
	assert.GreaterOrEqual(t, got[0].Score, got[1].Score)
}

func TestRank_TiesKeepCandidateOrder(t *testing.T) {
	e := NewEngine(DefaultConfig())
	p := &models.StudentProfile{}

	candidates := []models.University{
		testUniversity(5, "e", "X"),
		testUniversity(3, "c", "X"),
		testUniversity(9, "i", "X"),
		testUniversity(1, "a", "X"),
	}
	best := testUniversity(7, "g", "X")
	best.Ranking = i(10)
	candidates = append(candidates, best)

	got := e.Rank(candidates, p)

	order := make([]int64, len(got))
	for n, m := range got {
		order[n] = m.University.ID
	}
	assert.Equal(t, []int64{7, 5, 3, 9, 1}, order)
}

func TestRank_NilProfileKeepsFilterOrder(t *testing.T) {
	e := NewEngine(DefaultConfig())
	catalog := largeCatalog(5)

	got := e.Recommend(catalog, nil, FilterOptions{})
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(got))
}

func TestRecommend_FiltersThenRanks(t *testing.T) {
	e := NewEngine(DefaultConfig())
	p := exampleProfile()

	outOfBudget := withTuition(testUniversity(1, "too expensive", "Germany"), 40000, 50000)
	okButWeak := withTuition(testUniversity(2, "weak", "Germany"), 19000, 19500)
	best := exampleUniversity()
	best.ID = 3
	elsewhere := exampleUniversity()
	elsewhere.ID = 4
	elsewhere.Country = "France"

	got := e.Recommend([]models.University{outOfBudget, okButWeak, best, elsewhere}, p, FilterOptions{Country: "germany"})

	assert.Equal(t, []int64{3, 2}, ids(got))
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Weights.GPA = -0.1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Limits.ShowAll = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.RankingSpan = 0
	assert.Error(t, cfg.Validate())
}
