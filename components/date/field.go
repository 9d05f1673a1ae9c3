package date

import (
	"errors"
	"strings"

	"github.com/goliatone/go-datefield/pkg/wizard"
)

// ErrMissingKey is returned when a field is constructed without a key.
var ErrMissingKey = errors.New("date: key must be passed to date component")

// ErrMissingRenderer is returned by the pre-render hook when the response has
// no template renderer.
var ErrMissingRenderer = errors.New("date: response renderer not configured")

// Field is a date input composed of day, month and year sub-fields. It is
// immutable after construction and safe to share across requests.
type Field struct {
	key       string
	opts      Options
	subFields []SubField
	template  string
}

var _ wizard.FieldHooks = (*Field)(nil)

// New constructs a date field for key.
func New(key string, fns ...OptionFn) (*Field, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrMissingKey
	}
	opts := NewOptions(fns...)
	return &Field{
		key:       key,
		opts:      opts,
		subFields: SubFields(key),
		template:  resolveTemplate(opts),
	}, nil
}

// MustNew mirrors New but panics on error.
func MustNew(key string, fns ...OptionFn) *Field {
	field, err := New(key, fns...)
	if err != nil {
		panic(err)
	}
	return field
}

// Key returns the composite field key.
func (f *Field) Key() string {
	return f.key
}

// SubFields returns a copy of the day, month and year sub-fields.
func (f *Field) SubFields() []SubField {
	return append([]SubField(nil), f.subFields...)
}

// SubFieldKeys returns the sub-field keys in declared order.
func (f *Field) SubFieldKeys() []string {
	keys := make([]string, 0, len(f.subFields))
	for _, sub := range f.subFields {
		keys = append(keys, sub.Key)
	}
	return keys
}

// Options returns a copy of the resolved options.
func (f *Field) Options() Options {
	return NewOptions(func(o *Options) { *o = f.opts })
}

// Template returns the template resolved from options, or DefaultTemplate
// when none was configured.
func (f *Field) Template() string {
	if f.template == "" {
		return DefaultTemplate
	}
	return f.template
}

// Required reports whether host validation should reject a missing value.
func (f *Field) Required() bool {
	return f.opts.Required
}

// Label returns the configured label.
func (f *Field) Label() string {
	return f.opts.Label
}

// View returns the field registry entry for this field.
func (f *Field) View() wizard.FieldView {
	return wizard.FieldView{Key: f.key, Label: f.opts.Label}
}

// Hooks returns the lifecycle callbacks keyed by hook name.
func (f *Field) Hooks() map[wizard.HookName]wizard.HookFunc {
	return wizard.Hooks(f)
}

// Definition is a field's options together with its hooks.
type Definition struct {
	Key     string
	Options Options
	Hooks   map[wizard.HookName]wizard.HookFunc
}

// Definition returns the options merged with the hook map, the shape wizard
// step configuration expects.
func (f *Field) Definition() Definition {
	return Definition{
		Key:     f.key,
		Options: f.Options(),
		Hooks:   f.Hooks(),
	}
}
