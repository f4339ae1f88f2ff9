package activity

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// recordSchema mirrors the activities table limits. The tracker itself
// never trims or limits values; the sink is where limits apply.
const recordSchema = `{
  "type": "object",
  "required": ["activity_type", "action", "endpoint"],
  "properties": {
    "activity_type": {"type": "string", "minLength": 1, "maxLength": 64},
    "feature":       {"type": ["string", "null"], "maxLength": 255},
    "action":        {"type": "string", "minLength": 1, "maxLength": 255},
    "notes":         {"type": ["string", "null"], "maxLength": 65535},
    "endpoint":      {"type": "string", "maxLength": 2048}
  }
}`

// Validator checks posted activity bodies against the record schema.
type Validator struct {
	schema *gojsonschema.Schema
}

// NewValidator compiles the record schema.
func NewValidator() (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(recordSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile activity schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate returns a ValidationError describing every violation, or nil.
func (v *Validator) Validate(body []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return NewValidationError("invalid JSON body: %v", err)
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return ValidationError{msg: "activity record failed schema validation", Details: details}
}
