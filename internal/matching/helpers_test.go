package matching

import "study-abroad-workers/internal/models"

func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }

func testUniversity(id int64, name, country string) models.University {
	return models.University{ID: id, Name: name, Country: country}
}

func withTuition(u models.University, lo, hi float64) models.University {
	u.TuitionMin, u.TuitionMax = f64(lo), f64(hi)
	return u
}

func ids(us []models.University) []int64 {
	out := make([]int64, len(us))
	for n, u := range us {
		out[n] = u.ID
	}
	return out
}
