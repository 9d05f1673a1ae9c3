package date

import (
	"path"
	"path/filepath"
	"strings"
)

const (
	// DefaultTemplate names the embedded fragment template.
	DefaultTemplate = "date"
	// DefaultThemePartial is the go-theme partial key consulted before the
	// default template.
	DefaultThemePartial = "forms.date"
	// DefaultHint is the example text renderers seed as the "hint" global.
	DefaultHint = "For example, 31 3 1980"
)

// Options configures a date field.
type Options struct {
	// Template overrides the fragment template. Relative names resolve against
	// TemplateDir; absolute paths are used as-is.
	Template    string
	TemplateDir string

	// DayOptional defaults an empty day to "01". MonthOptional does the same
	// for the month and forces DayOptional.
	DayOptional   bool
	MonthOptional bool

	// Required marks the composite value as mandatory for host validation.
	Required bool

	Label        string
	Sanitize     bool
	ThemePartial string

	// Hint replaces the renderer's global hint for this field.
	Hint string

	// Extra carries caller options through to Definition untouched.
	Extra map[string]any
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		ThemePartial: DefaultThemePartial,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.MonthOptional {
		opts.DayOptional = true
	}
	opts.Template = strings.TrimSpace(opts.Template)
	opts.TemplateDir = strings.TrimSpace(opts.TemplateDir)
	if strings.TrimSpace(opts.ThemePartial) == "" {
		opts.ThemePartial = DefaultThemePartial
	}
	if opts.Extra != nil {
		opts.Extra = cloneExtra(opts.Extra)
	}
	return opts
}

func WithTemplate(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Template = name
	}
}

func WithTemplateDir(dir string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.TemplateDir = dir
	}
}

func WithDayOptional(optional bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DayOptional = optional
	}
}

func WithMonthOptional(optional bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MonthOptional = optional
	}
}

func WithRequired(required bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Required = required
	}
}

func WithLabel(label string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Label = label
	}
}

func WithHint(hint string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Hint = strings.TrimSpace(hint)
	}
}

// WithSanitize passes rendered fragments through the form markup policy
// before they are attached to the field view.
func WithSanitize(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Sanitize = enabled
	}
}

func WithThemePartial(key string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ThemePartial = key
	}
}

// WithExtra merges arbitrary options into Extra. Later calls win on key
// collisions.
func WithExtra(extra map[string]any) OptionFn {
	return func(o *Options) {
		if o == nil || len(extra) == 0 {
			return
		}
		if o.Extra == nil {
			o.Extra = make(map[string]any, len(extra))
		}
		for key, value := range extra {
			o.Extra[key] = value
		}
	}
}

// resolveTemplate returns the template configured through options, or an
// empty string when the field should fall back to theme or default lookup.
func resolveTemplate(opts Options) string {
	name := opts.Template
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	if opts.TemplateDir == "" {
		return path.Clean(name)
	}
	if filepath.IsAbs(opts.TemplateDir) {
		return filepath.Join(opts.TemplateDir, name)
	}
	return path.Join(opts.TemplateDir, name)
}

func cloneExtra(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
