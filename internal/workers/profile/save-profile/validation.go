package saveprofile

import "study-abroad-workers/internal/common/validation"

func optionalNumber(min, max float64) validation.Property {
	return validation.Property{
		Type:     "number",
		Nullable: true,
		Minimum:  validation.FloatPtr(min),
		Maximum:  validation.FloatPtr(max),
	}
}

func optionalInteger(min, max float64) validation.Property {
	p := optionalNumber(min, max)
	p.Type = "integer"
	return p
}

func optionalText(maxLen int) validation.Property {
	return validation.Property{Type: "string", Nullable: true, MaxLength: validation.IntPtr(maxLen)}
}

// GetInputSchema accepts the onboarding questionnaire. Every answer is
// optional and omitted answers keep their stored value; the bounds only
// reject values no real student could have.
func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		Required:             []string{"userId", "profile"},
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"userId": {Type: "integer", Minimum: validation.FloatPtr(1)},
			"profile": {
				Type: "object",
				Properties: map[string]validation.Property{
					"currentDegree":       optionalText(100),
					"currentGpa":          optionalNumber(0, 10),
					"currentInstitution":  optionalText(200),
					"fieldOfStudy":        optionalText(200),
					"graduationYear":      optionalInteger(1950, 2100),
					"desiredDegree":       optionalText(100),
					"desiredField":        optionalText(200),
					"preferredCountries":  optionalText(500),
					"studyStartYear":      optionalInteger(1950, 2100),
					"budgetMin":           optionalNumber(0, 1e9),
					"budgetMax":           optionalNumber(0, 1e9),
					"currency":            {Type: "string", Nullable: true, Pattern: "^[A-Za-z]{3}$"},
					"toeflScore":          optionalInteger(0, 120),
					"ieltsScore":          optionalNumber(0, 9),
					"greScore":            optionalInteger(0, 340),
					"gmatScore":           optionalInteger(0, 800),
					"examStatus":          {Type: "string", Nullable: true, Enum: []string{"completed", "scheduled", "not_taken"}},
					"workExperienceYears": optionalInteger(0, 60),
					"researchExperience":  {Type: "boolean", Nullable: true},
					"publications":        optionalInteger(0, 1000),
				},
			},
		},
	}
}
