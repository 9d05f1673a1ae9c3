// Package datefield is the top-level entry point: it re-exports the date
// component and wizard constructors so simple integrations need a single
// import.
package datefield

import (
	"errors"
	"io/fs"

	"github.com/goliatone/go-datefield/components/date"
	"github.com/goliatone/go-datefield/pkg/render/template/gotemplate"
	"github.com/goliatone/go-datefield/pkg/session"
	"github.com/goliatone/go-datefield/pkg/wizard"
)

// Field aliases the date component so callers can hold fields without
// importing components/date.
type Field = date.Field

// OptionFn aliases date.OptionFn.
type OptionFn = date.OptionFn

// Definition aliases date.Definition.
type Definition = date.Definition

// FieldError aliases wizard.FieldError.
type FieldError = wizard.FieldError

// NewField constructs a date field plugin bound to key.
func NewField(key string, fns ...OptionFn) (*Field, error) {
	return date.New(key, fns...)
}

// NewPipeline registers fields in order and derives their validator.
func NewPipeline(fields ...*Field) *wizard.Pipeline {
	hooks := make([]wizard.FieldHooks, 0, len(fields))
	for _, field := range fields {
		if field == nil {
			continue
		}
		hooks = append(hooks, field)
	}
	return wizard.New(wizard.WithFields(hooks...))
}

// EmbeddedTemplates returns the built-in field and page templates in lookup
// order.
func EmbeddedTemplates() []fs.FS {
	return []fs.FS{date.TemplatesFS(), wizard.TemplatesFS()}
}

// NewRenderer builds a pongo2 renderer. Template sources supplied through
// options are searched before the embedded templates, so files with the same
// name override the defaults. The "hint" global is seeded with
// date.DefaultHint; callers may replace it with gotemplate.WithGlobalData.
func NewRenderer(options ...gotemplate.Option) (*gotemplate.Engine, error) {
	opts := []gotemplate.Option{gotemplate.WithGlobalData(map[string]any{"hint": date.DefaultHint})}
	opts = append(opts, options...)
	for _, files := range EmbeddedTemplates() {
		opts = append(opts, gotemplate.WithFS(files))
	}
	return gotemplate.New(opts...)
}

// NewStep wires a pipeline over fields into an HTTP step handler backed by
// an in-memory session store. Extra options are applied after the defaults.
func NewStep(store *session.Store, renderer *gotemplate.Engine, fields []*Field, options ...wizard.StepOption) (*wizard.Step, error) {
	if renderer == nil {
		return nil, errors.New("datefield: missing renderer")
	}
	if store == nil {
		store = session.NewStore()
	}
	opts := []wizard.StepOption{
		wizard.WithRenderer(renderer),
		wizard.WithSessions(store.Resolver()),
	}
	opts = append(opts, options...)
	return wizard.NewStep(NewPipeline(fields...), opts...)
}
