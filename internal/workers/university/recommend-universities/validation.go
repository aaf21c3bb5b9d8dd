package recommenduniversities

import "study-abroad-workers/internal/common/validation"

// GetInputSchema bounds the catalog query. Budgets may be zero but never
// negative.
func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"userId":    {Type: "integer", Minimum: validation.FloatPtr(1)},
			"country":   {Type: "string", Nullable: true, MaxLength: validation.IntPtr(100)},
			"budgetMin": {Type: "number", Nullable: true, Minimum: validation.FloatPtr(0)},
			"budgetMax": {Type: "number", Nullable: true, Minimum: validation.FloatPtr(0)},
			"showAll":   {Type: "boolean", Nullable: true},
		},
		Required:             []string{"userId"},
		AdditionalProperties: true,
	}
}
