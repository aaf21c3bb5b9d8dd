package models

// University is one entry of the catalog.
type University struct {
	ID              int64    `json:"id" yaml:"-"`
	Name            string   `json:"name" yaml:"name"`
	Country         string   `json:"country" yaml:"country"`
	City            string   `json:"city,omitempty" yaml:"city"`
	Ranking         *int     `json:"ranking,omitempty" yaml:"ranking"`
	AcceptanceRate  *float64 `json:"acceptanceRate,omitempty" yaml:"acceptance_rate"`
	ProgramsOffered []string `json:"programsOffered,omitempty" yaml:"programs_offered"`

	TuitionMin         *float64 `json:"tuitionMin,omitempty" yaml:"tuition_min"`
	TuitionMax         *float64 `json:"tuitionMax,omitempty" yaml:"tuition_max"`
	Currency           string   `json:"currency,omitempty" yaml:"currency"`
	LivingCostEstimate *float64 `json:"livingCostEstimate,omitempty" yaml:"living_cost_estimate"`

	MinGPA        *float64 `json:"minGpa,omitempty" yaml:"min_gpa"`
	TOEFLRequired bool     `json:"toeflRequired" yaml:"toefl_required"`
	IELTSRequired bool     `json:"ieltsRequired" yaml:"ielts_required"`
	GRERequired   bool     `json:"greRequired" yaml:"gre_required"`
	GMATRequired  bool     `json:"gmatRequired" yaml:"gmat_required"`

	Website     string `json:"website,omitempty" yaml:"website"`
	Description string `json:"description,omitempty" yaml:"description"`
}
