// Package validation checks job variables against JSON Schemas declared in
// each worker's validation.go.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "study-abroad-workers/internal/common/errors"
)

// JSONSchema is the top-level object schema for a job's variables.
type JSONSchema struct {
	Type                 string
	Properties           map[string]Property
	Required             []string
	AdditionalProperties bool
}

// Property describes one field. Nullable widens Type to also accept null,
// which is how optional pointer fields arrive from the process.
type Property struct {
	Type        string
	Nullable    bool
	Description string
	Format      string
	Minimum     *float64
	Maximum     *float64
	Enum        []string
	Pattern     string
	MinLength   *int
	MaxLength   *int
	Items       *Property
	Properties  map[string]Property
	Required    []string
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateJSON validates a raw JSON document, usually job.Variables.
// Process variables outside the schema are tolerated unless the schema
// forbids additional properties.
func ValidateJSON(document string, schema JSONSchema) (*ValidationResult, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema.toMap()),
		gojsonschema.NewStringLoader(document),
	)
	if err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, re := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   re.Field(),
			Message: re.Description(),
			Code:    strings.ToUpper(re.Type()),
		})
	}
	sort.SliceStable(out.Errors, func(i, j int) bool {
		return out.Errors[i].Field < out.Errors[j].Field
	})
	return out, nil
}

// Validate returns an INVALID_INPUT error listing every violation, or nil.
func Validate(document string, schema JSONSchema) error {
	result, err := ValidateJSON(document, schema)
	if err != nil {
		return apperrors.NewInvalidInputError(err.Error())
	}
	if result.Valid {
		return nil
	}
	return apperrors.NewInvalidInputError(FormatValidationErrors(result.Errors))
}

// FormatValidationErrors renders "field: message" pairs separated by "; ".
func FormatValidationErrors(errs []ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// Document returns the schema as a JSON Schema document.
func (s JSONSchema) Document() map[string]interface{} { return s.toMap() }

func (s JSONSchema) toMap() map[string]interface{} {
	typ := s.Type
	if typ == "" {
		typ = "object"
	}
	m := map[string]interface{}{
		"type":                 typ,
		"additionalProperties": s.AdditionalProperties,
	}
	if len(s.Properties) > 0 {
		m["properties"] = propertiesToMap(s.Properties)
	}
	if len(s.Required) > 0 {
		m["required"] = s.Required
	}
	return m
}

func (p Property) toMap() map[string]interface{} {
	m := map[string]interface{}{}
	switch {
	case p.Type == "":
	case p.Nullable:
		m["type"] = []string{p.Type, "null"}
	default:
		m["type"] = p.Type
	}
	if p.Format != "" {
		m["format"] = p.Format
	}
	if p.Minimum != nil {
		m["minimum"] = *p.Minimum
	}
	if p.Maximum != nil {
		m["maximum"] = *p.Maximum
	}
	if len(p.Enum) > 0 {
		enum := make([]interface{}, 0, len(p.Enum)+1)
		for _, v := range p.Enum {
			enum = append(enum, v)
		}
		if p.Nullable {
			enum = append(enum, nil)
		}
		m["enum"] = enum
	}
	if p.Pattern != "" {
		m["pattern"] = p.Pattern
	}
	if p.MinLength != nil {
		m["minLength"] = *p.MinLength
	}
	if p.MaxLength != nil {
		m["maxLength"] = *p.MaxLength
	}
	if p.Items != nil {
		m["items"] = p.Items.toMap()
	}
	if len(p.Properties) > 0 {
		m["properties"] = propertiesToMap(p.Properties)
	}
	if len(p.Required) > 0 {
		m["required"] = p.Required
	}
	return m
}

func propertiesToMap(props map[string]Property) map[string]interface{} {
	out := make(map[string]interface{}, len(props))
	for name, p := range props {
		out[name] = p.toMap()
	}
	return out
}

func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }
