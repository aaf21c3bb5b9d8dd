package managetodos

import "study-abroad-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		Required:             []string{"userId", "action"},
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"userId": {Type: "integer", Minimum: validation.FloatPtr(1)},
			"action": {Type: "string", Enum: []string{"list", "create", "update", "delete"}},
			"todoId": {Type: "integer", Minimum: validation.FloatPtr(1)},
			"todo": {
				Type: "object",
				Properties: map[string]validation.Property{
					"universityId": {Type: "integer", Nullable: true, Minimum: validation.FloatPtr(1)},
					"title":        {Type: "string", Nullable: true, MinLength: validation.IntPtr(1), MaxLength: validation.IntPtr(255)},
					"description":  {Type: "string", Nullable: true, MaxLength: validation.IntPtr(2000)},
					"priority":     {Type: "string", Nullable: true, Enum: []string{"low", "medium", "high"}},
					"status":       {Type: "string", Nullable: true, Enum: []string{"pending", "in_progress", "completed"}},
					"dueDate":      {Type: "string", Nullable: true, Format: "date-time"},
				},
			},
		},
	}
}
