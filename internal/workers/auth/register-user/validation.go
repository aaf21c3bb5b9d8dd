package registeruser

import "study-abroad-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		Required:             []string{"email", "password", "fullName"},
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"email": {
				Type:        "string",
				Description: "Login email of the student",
				Format:      "email",
				MaxLength:   validation.IntPtr(255),
			},
			"password": {
				Type:        "string",
				Description: "Plain-text password, hashed before storage",
				MinLength:   validation.IntPtr(6),
				MaxLength:   validation.IntPtr(256),
			},
			"fullName": {
				Type:        "string",
				Description: "Display name",
				MinLength:   validation.IntPtr(1),
				MaxLength:   validation.IntPtr(200),
			},
		},
	}
}
