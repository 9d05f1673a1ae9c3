package wizard

import (
	"context"
	"fmt"
	"strings"
)

// Pipeline runs field hooks in registration order for each lifecycle stage.
type Pipeline struct {
	fields    []FieldHooks
	validator *Validator
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFields registers field plugins. Nil entries are skipped.
func WithFields(fields ...FieldHooks) Option {
	return func(p *Pipeline) {
		for _, field := range fields {
			if field == nil {
				continue
			}
			p.fields = append(p.fields, field)
		}
	}
}

// WithValidator overrides the validator built from the registered fields.
func WithValidator(v *Validator) Option {
	return func(p *Pipeline) {
		p.validator = v
	}
}

// New constructs a pipeline. Unless overridden, the validator is derived from
// the registered fields.
func New(options ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	if p.validator == nil {
		p.validator = NewValidator(p.fields...)
	}
	return p
}

// Fields returns the registered field plugins.
func (p *Pipeline) Fields() []FieldHooks {
	if p == nil {
		return nil
	}
	return append([]FieldHooks(nil), p.fields...)
}

// Views returns a fresh field registry for a response.
func (p *Pipeline) Views() []FieldView {
	if p == nil {
		return nil
	}
	views := make([]FieldView, 0, len(p.fields))
	for _, field := range p.fields {
		if viewer, ok := field.(interface{ View() FieldView }); ok {
			views = append(views, viewer.View())
			continue
		}
		views = append(views, FieldView{Key: field.Key()})
	}
	return views
}

// RunHook invokes the named hook on every field, stopping at the first error.
func (p *Pipeline) RunHook(ctx context.Context, name HookName, req *Request, res *Response) error {
	if p == nil {
		return nil
	}
	for _, field := range p.fields {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := Invoke(ctx, field, name, req, res); err != nil {
			return fmt.Errorf("wizard: %s hook for %q: %w", name, field.Key(), err)
		}
	}
	return nil
}

// Get runs the display stage: error redisplay, value population and
// rendering. Between hooks the pipeline loads session errors, then stored
// values overlaid with any rejected values, into the form.
func (p *Pipeline) Get(ctx context.Context, req *Request, res *Response) error {
	if req == nil || req.Session == nil {
		return fmt.Errorf("wizard: request session is required")
	}
	if req.Form == nil {
		req.Form = NewForm(nil)
	}
	if err := p.RunHook(ctx, HookPreGetErrors, req, res); err != nil {
		return err
	}
	p.loadErrors(req)
	if err := p.RunHook(ctx, HookPostGetErrors, req, res); err != nil {
		return err
	}
	p.loadValues(req)
	if err := p.RunHook(ctx, HookPostGetValues, req, res); err != nil {
		return err
	}
	return p.RunHook(ctx, HookPreRender, req, res)
}

// Process runs the submission stage. Field errors are returned as a map and
// stored in the session together with the rejected values; on success the
// field values are saved and stale errors cleared. The returned error is
// reserved for hook failures.
func (p *Pipeline) Process(ctx context.Context, req *Request, res *Response) (map[string]FieldError, error) {
	if req == nil || req.Session == nil || req.Form == nil {
		return nil, fmt.Errorf("wizard: request session and form are required")
	}
	if req.Form.Body == nil {
		req.Form.Body = make(map[string]string)
	}
	if err := p.RunHook(ctx, HookPreProcess, req, res); err != nil {
		return nil, err
	}

	errs := p.validator.Validate(req.Form.Body)
	if len(errs) > 0 {
		req.Session.Set(ErrorValuesKey, copyStrings(req.Form.Body))
		req.Session.Set(ErrorsKey, errs)
		return errs, nil
	}

	for _, field := range p.fields {
		key := field.Key()
		value, ok := req.Form.Body[key]
		if !ok || strings.TrimSpace(value) == "" {
			req.Session.Set(key, nil)
			continue
		}
		req.Session.Set(key, value)
	}
	req.Session.Set(ErrorValuesKey, nil)
	req.Session.Set(ErrorsKey, nil)
	return nil, nil
}

func (p *Pipeline) loadErrors(req *Request) {
	errs := ErrorMap(req.Session.Get(ErrorsKey))
	if req.Form.Errors == nil {
		req.Form.Errors = make(map[string]FieldError, len(errs))
	}
	for key, value := range errs {
		req.Form.Errors[key] = value
	}
}

func (p *Pipeline) loadValues(req *Request) {
	if req.Form.Values == nil {
		req.Form.Values = make(map[string]string)
	}
	for _, field := range p.fields {
		if value := SessionString(req.Session, field.Key()); value != "" {
			req.Form.Values[field.Key()] = value
		}
	}
	for key, value := range StringMap(req.Session.Get(ErrorValuesKey)) {
		req.Form.Values[key] = value
	}
}

func copyStrings(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
