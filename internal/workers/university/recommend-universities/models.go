package recommenduniversities

import "study-abroad-workers/internal/models"

// Input mirrors the catalog query a student can make. Explicit budget
// bounds override the profile's budget even when zero.
type Input struct {
	UserID    int64    `json:"userId"`
	Country   string   `json:"country,omitempty"`
	BudgetMin *float64 `json:"budgetMin,omitempty"`
	BudgetMax *float64 `json:"budgetMax,omitempty"`
	ShowAll   bool     `json:"showAll,omitempty"`
}

type Output struct {
	Universities []models.University `json:"universities"`
	Count        int                 `json:"count"`
}
