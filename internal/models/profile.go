package models

import "time"

// StudentProfile is the onboarding questionnaire of a student. Optional
// numeric answers are pointers so that "not answered" survives storage.
type StudentProfile struct {
	UserID int64 `json:"userId"`

	CurrentDegree      string   `json:"currentDegree,omitempty"`
	CurrentGPA         *float64 `json:"currentGpa,omitempty"`
	CurrentInstitution string   `json:"currentInstitution,omitempty"`
	FieldOfStudy       string   `json:"fieldOfStudy,omitempty"`
	GraduationYear     *int     `json:"graduationYear,omitempty"`

	DesiredDegree      string `json:"desiredDegree,omitempty"`
	DesiredField       string `json:"desiredField,omitempty"`
	PreferredCountries string `json:"preferredCountries,omitempty"`
	StudyStartYear     *int   `json:"studyStartYear,omitempty"`

	BudgetMin *float64 `json:"budgetMin,omitempty"`
	BudgetMax *float64 `json:"budgetMax,omitempty"`
	Currency  string   `json:"currency,omitempty"`

	TOEFLScore *int     `json:"toeflScore,omitempty"`
	IELTSScore *float64 `json:"ieltsScore,omitempty"`
	GREScore   *int     `json:"greScore,omitempty"`
	GMATScore  *int     `json:"gmatScore,omitempty"`
	ExamStatus string   `json:"examStatus,omitempty"`

	WorkExperienceYears int  `json:"workExperienceYears"`
	ResearchExperience  bool `json:"researchExperience"`
	Publications        int  `json:"publications"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// ProfilePatch carries the answers sent with one save; nil fields keep
// their stored value.
type ProfilePatch struct {
	CurrentDegree      *string  `json:"currentDegree,omitempty"`
	CurrentGPA         *float64 `json:"currentGpa,omitempty"`
	CurrentInstitution *string  `json:"currentInstitution,omitempty"`
	FieldOfStudy       *string  `json:"fieldOfStudy,omitempty"`
	GraduationYear     *int     `json:"graduationYear,omitempty"`

	DesiredDegree      *string `json:"desiredDegree,omitempty"`
	DesiredField       *string `json:"desiredField,omitempty"`
	PreferredCountries *string `json:"preferredCountries,omitempty"`
	StudyStartYear     *int    `json:"studyStartYear,omitempty"`

	BudgetMin *float64 `json:"budgetMin,omitempty"`
	BudgetMax *float64 `json:"budgetMax,omitempty"`
	Currency  *string  `json:"currency,omitempty"`

	TOEFLScore *int     `json:"toeflScore,omitempty"`
	IELTSScore *float64 `json:"ieltsScore,omitempty"`
	GREScore   *int     `json:"greScore,omitempty"`
	GMATScore  *int     `json:"gmatScore,omitempty"`
	ExamStatus *string  `json:"examStatus,omitempty"`

	WorkExperienceYears *int  `json:"workExperienceYears,omitempty"`
	ResearchExperience  *bool `json:"researchExperience,omitempty"`
	Publications        *int  `json:"publications,omitempty"`
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// ApplyTo copies the provided answers onto p.
func (pp ProfilePatch) ApplyTo(p *StudentProfile) {
	setString(&p.CurrentDegree, pp.CurrentDegree)
	if pp.CurrentGPA != nil {
		p.CurrentGPA = pp.CurrentGPA
	}
	setString(&p.CurrentInstitution, pp.CurrentInstitution)
	setString(&p.FieldOfStudy, pp.FieldOfStudy)
	if pp.GraduationYear != nil {
		p.GraduationYear = pp.GraduationYear
	}

	setString(&p.DesiredDegree, pp.DesiredDegree)
	setString(&p.DesiredField, pp.DesiredField)
	setString(&p.PreferredCountries, pp.PreferredCountries)
	if pp.StudyStartYear != nil {
		p.StudyStartYear = pp.StudyStartYear
	}

	if pp.BudgetMin != nil {
		p.BudgetMin = pp.BudgetMin
	}
	if pp.BudgetMax != nil {
		p.BudgetMax = pp.BudgetMax
	}
	setString(&p.Currency, pp.Currency)

	if pp.TOEFLScore != nil {
		p.TOEFLScore = pp.TOEFLScore
	}
	if pp.IELTSScore != nil {
		p.IELTSScore = pp.IELTSScore
	}
	if pp.GREScore != nil {
		p.GREScore = pp.GREScore
	}
	if pp.GMATScore != nil {
		p.GMATScore = pp.GMATScore
	}
	setString(&p.ExamStatus, pp.ExamStatus)

	setInt(&p.WorkExperienceYears, pp.WorkExperienceYears)
	if pp.ResearchExperience != nil {
		p.ResearchExperience = *pp.ResearchExperience
	}
	setInt(&p.Publications, pp.Publications)
}
