package searchuniversities

import "study-abroad-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		Required:             []string{"userId"},
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"userId":  {Type: "integer", Minimum: validation.FloatPtr(1)},
			"query":   {Type: "string", MaxLength: validation.IntPtr(200)},
			"country": {Type: "string", MaxLength: validation.IntPtr(100)},
			"limit":   {Type: "integer", Minimum: validation.FloatPtr(1), Maximum: validation.FloatPtr(100)},
		},
	}
}
