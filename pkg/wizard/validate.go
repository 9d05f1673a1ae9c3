package wizard

import (
	"context"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// CompositeDatePattern is the shape every composite date must match. Calendar
// checks are out of scope; the pattern only guards the format.
const CompositeDatePattern = `^\d{4}-\d{2}-\d{2}$`

// Error types produced by the Validator.
const (
	ErrorTypeRequired = "required"
	ErrorTypeDate     = "date"
)

// Validator checks composite values in a submitted body against per-field
// OpenAPI string schemas.
type Validator struct {
	keys     []string
	schemas  map[string]*openapi3.Schema
	required map[string]bool
}

// NewValidator builds a validator for fields. Fields that implement
// Required() bool are treated as mandatory when it returns true.
func NewValidator(fields ...FieldHooks) *Validator {
	v := &Validator{
		schemas:  make(map[string]*openapi3.Schema, len(fields)),
		required: make(map[string]bool, len(fields)),
	}
	for _, field := range fields {
		if field == nil {
			continue
		}
		key := field.Key()
		if _, exists := v.schemas[key]; exists {
			continue
		}
		v.keys = append(v.keys, key)
		v.schemas[key] = DateSchema()
		if req, ok := field.(interface{ Required() bool }); ok && req.Required() {
			v.required[key] = true
		}
	}
	sort.Strings(v.keys)
	return v
}

// DateSchema returns the OpenAPI schema describing a composite date value.
func DateSchema() *openapi3.Schema {
	schema := openapi3.NewStringSchema()
	schema.Pattern = CompositeDatePattern
	schema.Description = "Composite date built from day, month and year inputs"
	return schema
}

// Schema returns the schema registered for key.
func (v *Validator) Schema(key string) (*openapi3.Schema, bool) {
	if v == nil {
		return nil, false
	}
	schema, ok := v.schemas[key]
	return schema, ok
}

// Validate returns field errors keyed by composite field key. Missing
// optional values are accepted.
func (v *Validator) Validate(body map[string]string) map[string]FieldError {
	if v == nil {
		return nil
	}
	errs := make(map[string]FieldError)
	for _, key := range v.keys {
		value, ok := body[key]
		if !ok || strings.TrimSpace(value) == "" {
			if v.required[key] {
				errs[key] = NewFieldError(ErrorTypeRequired, "Enter a date")
			}
			continue
		}
		if err := v.schemas[key].VisitJSON(value); err != nil {
			errs[key] = NewFieldError(ErrorTypeDate, "Enter a real date")
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Document wraps the field schemas in an OpenAPI components section so the
// contract can be published alongside the host's other forms.
func (v *Validator) Document(ctx context.Context, title string) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: title, Version: "1.0.0"},
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
	}
	if v != nil {
		body := openapi3.NewObjectSchema()
		for _, key := range v.keys {
			body.WithProperty(key, v.schemas[key])
			if v.required[key] {
				body.Required = append(body.Required, key)
			}
		}
		doc.Components.Schemas["DateFields"] = openapi3.NewSchemaRef("", body)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}
