package wizard

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	rendertemplate "github.com/goliatone/go-datefield/pkg/render/template"
)

// Session names shared between the host pipeline and field plugins.
const (
	ErrorValuesKey = "errorValues"
	ErrorsKey      = "errors"
)

// Session is the per-journey key/value store owned by the host. Setting a nil
// value removes the entry.
type Session interface {
	Get(name string) any
	Set(name string, value any)
}

// FieldError describes a validation failure for a single field. A nil Type is
// a soft marker: the field should be styled as erroneous without carrying a
// message of its own.
type FieldError struct {
	Type    *string `json:"type"`
	Message string  `json:"message,omitempty"`
}

// SoftError returns a FieldError with a nil Type.
func SoftError() FieldError {
	return FieldError{}
}

// NewFieldError builds a typed FieldError.
func NewFieldError(typ, message string) FieldError {
	typ = strings.TrimSpace(typ)
	return FieldError{Type: &typ, Message: message}
}

// Soft reports whether the error is a placeholder without a type.
func (e FieldError) Soft() bool {
	return e.Type == nil
}

// TypeName returns the error type or an empty string for soft errors.
func (e FieldError) TypeName() string {
	if e.Type == nil {
		return ""
	}
	return *e.Type
}

// Form carries the request scoped containers hooks operate on. Body holds the
// raw submitted values.
type Form struct {
	Values map[string]string
	Errors map[string]FieldError
	Body   map[string]string
}

// NewForm returns a Form with initialised Values and Errors maps.
func NewForm(body map[string]string) *Form {
	return &Form{
		Values: make(map[string]string),
		Errors: make(map[string]FieldError),
		Body:   body,
	}
}

// Request is the request state handed to every hook.
type Request struct {
	Session Session
	Form    *Form
}

// FieldView is the render metadata entry for a single field.
type FieldView struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
	HTML  string `json:"html,omitempty"`
}

// Response carries the rendering collaborators and the field registry hooks
// attach markup to.
type Response struct {
	Renderer rendertemplate.TemplateRenderer
	Theme    *theme.RendererConfig
	Locals   map[string]any
	Fields   []FieldView
}

// Field returns the index of the field view with the supplied key, or -1.
func (r *Response) Field(key string) int {
	if r == nil {
		return -1
	}
	for idx := range r.Fields {
		if r.Fields[idx].Key == key {
			return idx
		}
	}
	return -1
}

// StringMap coerces a session value into a string map. Unknown shapes yield
// nil. The returned map is always a copy.
func StringMap(value any) map[string]string {
	switch v := value.(type) {
	case nil:
		return nil
	case map[string]string:
		out := make(map[string]string, len(v))
		for key, val := range v {
			out[key] = val
		}
		return out
	case map[string]any:
		out := make(map[string]string, len(v))
		for key, val := range v {
			switch s := val.(type) {
			case nil:
				continue
			case string:
				out[key] = s
			default:
				out[key] = fmt.Sprint(s)
			}
		}
		return out
	default:
		return nil
	}
}

// ErrorMap coerces a session value into a field error map. Entries stored as
// untyped values count as soft errors so their presence is preserved.
func ErrorMap(value any) map[string]FieldError {
	switch v := value.(type) {
	case nil:
		return nil
	case map[string]FieldError:
		out := make(map[string]FieldError, len(v))
		for key, val := range v {
			out[key] = val
		}
		return out
	case map[string]any:
		out := make(map[string]FieldError, len(v))
		for key, val := range v {
			switch fe := val.(type) {
			case FieldError:
				out[key] = fe
			case *FieldError:
				if fe != nil {
					out[key] = *fe
				}
			default:
				out[key] = SoftError()
			}
		}
		return out
	default:
		return nil
	}
}

// SessionString reads a string value from the session.
func SessionString(session Session, name string) string {
	if session == nil {
		return ""
	}
	switch v := session.Get(name).(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
