package unlockuniversity

import "study-abroad-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		Required:             []string{"userId", "universityId"},
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"userId":       {Type: "integer", Minimum: validation.FloatPtr(1)},
			"universityId": {Type: "integer", Minimum: validation.FloatPtr(1)},
		},
	}
}
