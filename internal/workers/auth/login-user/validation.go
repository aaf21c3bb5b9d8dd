package loginuser

import "study-abroad-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		Required:             []string{"email", "password"},
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"email": {
				Type:      "string",
				MinLength: validation.IntPtr(3),
				MaxLength: validation.IntPtr(255),
			},
			"password": {
				Type:      "string",
				MinLength: validation.IntPtr(1),
				MaxLength: validation.IntPtr(256),
			},
		},
	}
}
