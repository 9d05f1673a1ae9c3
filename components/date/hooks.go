package date

import (
	"context"
	"fmt"

	"github.com/goliatone/go-datefield/pkg/sanitize"
	"github.com/goliatone/go-datefield/pkg/wizard"
)

// PreGetErrors expands a previously invalid composite value stored under
// errorValues into its sub-field values so each input can be re-populated.
func (f *Field) PreGetErrors(_ context.Context, req *wizard.Request, _ *wizard.Response) error {
	if req == nil || req.Session == nil {
		return nil
	}
	errorValues := wizard.StringMap(req.Session.Get(wizard.ErrorValuesKey))
	if errorValues == nil || errorValues[f.key] == "" {
		return nil
	}
	merged := MergeValues(errorValues, Split(errorValues[f.key], f.subFields))
	req.Session.Set(wizard.ErrorValuesKey, merged)
	return nil
}

// PostGetErrors adds soft error entries for every sub-field when the
// composite field carries an error. The composite entry is left untouched.
func (f *Field) PostGetErrors(_ context.Context, req *wizard.Request, _ *wizard.Response) error {
	if req == nil || req.Session == nil || req.Form == nil {
		return nil
	}
	errs := wizard.ErrorMap(req.Session.Get(wizard.ErrorsKey))
	if _, ok := errs[f.key]; !ok {
		return nil
	}
	if req.Form.Errors == nil {
		req.Form.Errors = make(map[string]wizard.FieldError, len(f.subFields))
	}
	for _, sub := range f.subFields {
		req.Form.Errors[sub.Key] = wizard.SoftError()
	}
	return nil
}

// PostGetValues exposes the stored composite value as sub-field values.
// Session errorValues are merged last so a user's rejected input wins over
// the last saved value.
func (f *Field) PostGetValues(_ context.Context, req *wizard.Request, _ *wizard.Response) error {
	if req == nil || req.Session == nil || req.Form == nil {
		return nil
	}
	stored := wizard.SessionString(req.Session, f.key)
	if stored == "" {
		return nil
	}
	req.Form.Values = MergeValues(
		req.Form.Values,
		Split(stored, f.subFields),
		wizard.StringMap(req.Session.Get(wizard.ErrorValuesKey)),
	)
	return nil
}

// PreRender renders the field fragment and attaches it to the matching
// field view. Render failures are wrapped and returned; the field registry
// is left untouched.
func (f *Field) PreRender(_ context.Context, req *wizard.Request, res *wizard.Response) error {
	if res == nil || res.Renderer == nil {
		return ErrMissingRenderer
	}
	name := f.templateFor(res)
	html, err := res.Renderer.RenderTemplate(name, f.renderContext(req, res))
	if err != nil {
		return fmt.Errorf("date: render %q: %w", name, err)
	}
	if f.opts.Sanitize {
		html = sanitize.Fragment(html)
	}
	if idx := res.Field(f.key); idx >= 0 {
		res.Fields[idx].HTML = html
	}
	return nil
}

// PreProcess folds the submitted sub-fields back into the composite value.
// When every sub-field is blank the body is left alone so an unanswered
// field stays distinguishable from a partial one.
func (f *Field) PreProcess(_ context.Context, req *wizard.Request, _ *wizard.Response) error {
	if req == nil || req.Form == nil || req.Form.Body == nil {
		return nil
	}
	composite, ok := Compose(PartsFromBody(req.Form.Body, f.key), f.opts)
	if !ok {
		return nil
	}
	req.Form.Body[f.key] = composite
	return nil
}

func (f *Field) templateFor(res *wizard.Response) string {
	if f.template != "" {
		return f.template
	}
	if res != nil && res.Theme != nil && res.Theme.Partials != nil {
		if candidate := res.Theme.Partials[f.opts.ThemePartial]; candidate != "" {
			return candidate
		}
	}
	return DefaultTemplate
}

type partView struct {
	Part     Part   `json:"part"`
	Key      string `json:"key"`
	Value    string `json:"value"`
	Error    bool   `json:"error"`
	Optional bool   `json:"optional"`
}

// renderContext builds the template data: response locals first, then the
// field's own values. key always wins.
func (f *Field) renderContext(req *wizard.Request, res *wizard.Response) map[string]any {
	data := make(map[string]any, len(res.Locals)+4)
	for name, value := range res.Locals {
		data[name] = value
	}

	var (
		values map[string]string
		errs   map[string]wizard.FieldError
	)
	if req != nil && req.Form != nil {
		values = req.Form.Values
		errs = req.Form.Errors
	}

	parts := make([]partView, 0, len(f.subFields))
	for _, sub := range f.subFields {
		_, hasErr := errs[sub.Key]
		parts = append(parts, partView{
			Part:     sub.Part,
			Key:      sub.Key,
			Value:    values[sub.Key],
			Error:    hasErr,
			Optional: f.partOptional(sub.Part),
		})
	}
	_, hasErr := errs[f.key]

	data["parts"] = parts
	data["label"] = f.opts.Label
	if f.opts.Hint != "" {
		data["hint"] = f.opts.Hint
	}
	data["error"] = hasErr
	data["key"] = f.key
	return data
}

func (f *Field) partOptional(part Part) bool {
	switch part {
	case PartDay:
		return f.opts.DayOptional
	case PartMonth:
		return f.opts.MonthOptional
	default:
		return false
	}
}
