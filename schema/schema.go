// Package schema provides JSON Schema compilation and final-answer
// validation.
//
// Use it when a run must produce machine-readable output: attach an
// AnswerValidator to the agent and rejected answers are fed back to the
// model as observation text instead of terminating the run.
//
//	validator := schema.MustNewAnswerValidator("booking", map[string]any{
//	    "type": "object",
//	    "properties": map[string]any{
//	        "flight": map[string]any{"type": "string"},
//	        "seats":  map[string]any{"type": "integer"},
//	    },
//	    "required": []any{"flight", "seats"},
//	})
//
//	agent := reagent.NewAgent(client).WithValidator(validator)
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/yadavanujkumar/reagent"
)

// Schema is a compiled JSON Schema definition.
// It keeps both the raw map representation (for serialization and prompt
// text) and the compiled validator (for runtime validation).
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the underlying map[string]any representation.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate validates the given decoded JSON value against the schema.
// Returns nil if valid, or a ValidationError describing the failure.
func (s *Schema) Validate(data any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	if err := s.compiled.Validate(data); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ValidationError wraps a JSON Schema validation error.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Compile compiles a raw schema map into a Schema with a compiled validator.
// Returns an error if the schema is invalid.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	schemaJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	schemaData, err := jsonschema.UnmarshalJSON(strings.NewReader(string(schemaJSON)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaData); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Schema{
		raw:      raw,
		compiled: compiled,
	}, nil
}

// MustCompile is like Compile but panics on error.
// Use this for schemas defined at init time.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// AnswerValidator validates final answers as JSON documents conforming to a
// schema. It implements reagent.AnswerValidator.
type AnswerValidator struct {
	name   string
	schema *Schema
}

// NewAnswerValidator creates a validator with the given name and raw schema.
func NewAnswerValidator(name string, raw map[string]any) (*AnswerValidator, error) {
	s, err := Compile(raw)
	if err != nil {
		return nil, err
	}
	return &AnswerValidator{name: name, schema: s}, nil
}

// MustNewAnswerValidator is like NewAnswerValidator but panics on error.
func MustNewAnswerValidator(name string, raw map[string]any) *AnswerValidator {
	v, err := NewAnswerValidator(name, raw)
	if err != nil {
		panic(err)
	}
	return v
}

// Name identifies the validator in stats and feedback.
func (v *AnswerValidator) Name() string {
	return v.name
}

// Validate decodes the answer as JSON and validates it against the schema.
// Both a decode failure and a schema violation produce a rejection with
// feedback the model can act on.
func (v *AnswerValidator) Validate(
	_ *reagent.RunContext,
	answer string,
) *reagent.ValidationResult {
	data, err := jsonschema.UnmarshalJSON(strings.NewReader(answer))
	if err != nil {
		return &reagent.ValidationResult{
			Accepted: false,
			Feedback: fmt.Sprintf("the answer must be valid JSON: %v", err),
		}
	}

	if err := v.schema.Validate(data); err != nil {
		return &reagent.ValidationResult{
			Accepted: false,
			Feedback: err.Error(),
		}
	}

	return &reagent.ValidationResult{Accepted: true}
}

// Compile-time check that AnswerValidator implements reagent.AnswerValidator.
var _ reagent.AnswerValidator = (*AnswerValidator)(nil)
