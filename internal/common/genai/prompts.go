package genai

import (
	"fmt"
	"strconv"
	"strings"

	"study-abroad-workers/internal/models"
)

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

func floatOr(v *float64, fallback string) string {
	if v == nil || *v == 0 {
		return fallback
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func intOr(v *int, fallback string) string {
	if v == nil || *v == 0 {
		return fallback
	}
	return strconv.Itoa(*v)
}

// FormatProfile renders the profile block shared by every prompt.
func FormatProfile(p *models.StudentProfile) string {
	if p == nil {
		return "User Profile: Not specified\n"
	}
	currency := p.Currency
	if currency == "" {
		currency = "USD"
	}
	research := "No"
	if p.ResearchExperience {
		research = "Yes"
	}

	var b strings.Builder
	b.WriteString("User Profile:\n")
	fmt.Fprintf(&b, "- Current Degree: %s\n", orNotSpecified(p.CurrentDegree))
	fmt.Fprintf(&b, "- Current GPA: %s\n", floatOr(p.CurrentGPA, "Not specified"))
	fmt.Fprintf(&b, "- Field of Study: %s\n", orNotSpecified(p.FieldOfStudy))
	fmt.Fprintf(&b, "- Desired Degree: %s\n", orNotSpecified(p.DesiredDegree))
	fmt.Fprintf(&b, "- Desired Field: %s\n", orNotSpecified(p.DesiredField))
	fmt.Fprintf(&b, "- Preferred Countries: %s\n", orNotSpecified(p.PreferredCountries))
	fmt.Fprintf(&b, "- Budget Range: %s - %s %s\n", floatOr(p.BudgetMin, "0"), floatOr(p.BudgetMax, "0"), currency)
	fmt.Fprintf(&b, "- TOEFL Score: %s\n", intOr(p.TOEFLScore, "Not taken"))
	fmt.Fprintf(&b, "- IELTS Score: %s\n", floatOr(p.IELTSScore, "Not taken"))
	fmt.Fprintf(&b, "- GRE Score: %s\n", intOr(p.GREScore, "Not taken"))
	fmt.Fprintf(&b, "- GMAT Score: %s\n", intOr(p.GMATScore, "Not taken"))
	fmt.Fprintf(&b, "- Work Experience: %d years\n", p.WorkExperienceYears)
	fmt.Fprintf(&b, "- Research Experience: %s\n", research)
	fmt.Fprintf(&b, "- Publications: %d\n", p.Publications)
	return b.String()
}

func AnalysisPrompt(p *models.StudentProfile) string {
	return fmt.Sprintf(`You are an expert study-abroad counsellor. Analyze the following student profile and provide:
1. Profile strengths
2. Profile gaps or weaknesses
3. Recommendations for improvement
4. Overall assessment

%s
Provide a clear, structured analysis that helps the student understand their position.
`, FormatProfile(p))
}

// ChatPrompt gives the model the student's stage, profile and current
// choices ahead of the message itself.
func ChatPrompt(message string, stage models.Stage, p *models.StudentProfile, shortlisted []models.ShortlistedUniversity, locked []models.University) string {
	shortNames := make([]string, 0, len(shortlisted))
	for _, s := range shortlisted {
		shortNames = append(shortNames, fmt.Sprintf("%s (%s)", s.Name, s.Category))
	}
	lockedNames := make([]string, 0, len(locked))
	for _, u := range locked {
		lockedNames = append(lockedNames, u.Name)
	}

	return fmt.Sprintf(`You are an AI Counsellor helping a student with their study-abroad journey.

Current Stage: %s
%s
Shortlisted Universities: %s
Locked Universities: %s

Your role:
- Guide the student through their study-abroad journey
- Explain why universities fit or are risky
- Help with shortlisting decisions
- Provide actionable advice
- Create clarity and direction

Student's message: %s

Respond as a helpful, knowledgeable counsellor. Be specific, actionable, and supportive.
`, stage, FormatProfile(p), joinOrNone(shortNames), joinOrNone(lockedNames), message)
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, ", ")
}
