package genai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"study-abroad-workers/internal/models"
)

func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }

func TestFormatProfile(t *testing.T) {
	p := &models.StudentProfile{
		CurrentDegree:       "Bachelor's",
		CurrentGPA:          f64(3.5),
		FieldOfStudy:        "Computer Science",
		DesiredDegree:       "Master's",
		PreferredCountries:  "Germany, Canada",
		BudgetMin:           f64(8000),
		BudgetMax:           f64(20000),
		Currency:            "EUR",
		TOEFLScore:          i(105),
		WorkExperienceYears: 2,
		ResearchExperience:  true,
		Publications:        1,
	}
	out := FormatProfile(p)

	for _, want := range []string{
		"- Current Degree: Bachelor's",
		"- Current GPA: 3.5",
		"- Desired Field: Not specified",
		"- Preferred Countries: Germany, Canada",
		"- Budget Range: 8000 - 20000 EUR",
		"- TOEFL Score: 105",
		"- IELTS Score: Not taken",
		"- GRE Score: Not taken",
		"- Work Experience: 2 years",
		"- Research Experience: Yes",
		"- Publications: 1",
	} {
		assert.Contains(t, out, want)
	}
}

func TestFormatProfileDefaults(t *testing.T) {
	out := FormatProfile(&models.StudentProfile{})
	assert.Contains(t, out, "- Current GPA: Not specified")
	assert.Contains(t, out, "- Budget Range: 0 - 0 USD")
	assert.Contains(t, out, "- Research Experience: No")
}

func TestAnalysisPrompt(t *testing.T) {
	out := AnalysisPrompt(&models.StudentProfile{CurrentDegree: "BSc"})
	assert.True(t, strings.HasPrefix(out, "You are an expert study-abroad counsellor."))
	assert.Contains(t, out, "4. Overall assessment")
	assert.Contains(t, out, "- Current Degree: BSc")
}

func TestChatPrompt(t *testing.T) {
	shortlisted := []models.ShortlistedUniversity{
		{University: models.University{Name: "TU Munich"}, Category: "target"},
		{University: models.University{Name: "ETH Zurich"}, Category: "dream"},
	}
	locked := []models.University{{Name: "TU Munich"}}

	out := ChatPrompt("Which one should I pick?", models.StageApplication, &models.StudentProfile{}, shortlisted, locked)

	assert.Contains(t, out, "Current Stage: application")
	assert.Contains(t, out, "Shortlisted Universities: TU Munich (target), ETH Zurich (dream)")
	assert.Contains(t, out, "Locked Universities: TU Munich")
	assert.Contains(t, out, "Student's message: Which one should I pick?")
}

func TestChatPromptWithoutSelections(t *testing.T) {
	out := ChatPrompt("hi", models.StageDashboard, nil, nil, nil)
	assert.Contains(t, out, "Shortlisted Universities: None")
	assert.Contains(t, out, "Locked Universities: None")
}
