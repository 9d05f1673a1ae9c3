// Package fieldconfig loads date field definitions from JSON or YAML files so
// wizard steps can be configured without code changes.
//
// A document looks like:
//
//	fields:
//	  dob:
//	    label: Date of birth
//	    required: true
//	  card-expiry:
//	    dayOptional: true
//	    template: overrides/expiry
package fieldconfig

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-datefield/components/date"
)

// FieldConfig is the per-field section of a config document.
type FieldConfig struct {
	Label         string         `json:"label" yaml:"label"`
	Hint          string         `json:"hint" yaml:"hint"`
	Template      string         `json:"template" yaml:"template"`
	DayOptional   bool           `json:"dayOptional" yaml:"dayOptional"`
	MonthOptional bool           `json:"monthOptional" yaml:"monthOptional"`
	Required      bool           `json:"required" yaml:"required"`
	Sanitize      bool           `json:"sanitize" yaml:"sanitize"`
	ThemePartial  string         `json:"themePartial" yaml:"themePartial"`
	Extra         map[string]any `json:"extra" yaml:"extra"`

	// Source is the file the field was declared in.
	Source string `json:"-" yaml:"-"`
}

// OptionFns converts the config into date component options.
func (c FieldConfig) OptionFns() []date.OptionFn {
	fns := []date.OptionFn{
		date.WithLabel(c.Label),
		date.WithHint(c.Hint),
		date.WithTemplate(c.Template),
		date.WithDayOptional(c.DayOptional),
		date.WithMonthOptional(c.MonthOptional),
		date.WithRequired(c.Required),
		date.WithSanitize(c.Sanitize),
		date.WithExtra(c.Extra),
	}
	if strings.TrimSpace(c.ThemePartial) != "" {
		fns = append(fns, date.WithThemePartial(c.ThemePartial))
	}
	return fns
}

// Store holds field configs keyed by field key.
type Store struct {
	fields map[string]FieldConfig
}

type documentFile struct {
	Fields map[string]FieldConfig `json:"fields" yaml:"fields"`
}

// LoadFS walks fsys and parses every JSON/YAML file. A nil fsys yields an
// empty store. Declaring the same key in two files is an error.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{fields: make(map[string]FieldConfig)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isConfigFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("fieldconfig: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		return store.add(doc, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse reads a single document.
func Parse(data []byte, source string) (*Store, error) {
	store := &Store{fields: make(map[string]FieldConfig)}
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}
	if err := store.add(doc, source); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) add(doc documentFile, source string) error {
	for rawKey, cfg := range doc.Fields {
		key := strings.TrimSpace(rawKey)
		if key == "" {
			return fmt.Errorf("fieldconfig: file %s defines an empty field key", source)
		}
		if existing, exists := s.fields[key]; exists {
			return fmt.Errorf("fieldconfig: duplicate field %q (files %s and %s)", key, existing.Source, source)
		}
		cfg.Source = source
		s.fields[key] = cfg
	}
	return nil
}

// Keys returns the configured field keys in sorted order.
func (s *Store) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.fields))
	for key := range s.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Field returns the config for key.
func (s *Store) Field(key string) (FieldConfig, bool) {
	if s == nil {
		return FieldConfig{}, false
	}
	cfg, ok := s.fields[key]
	return cfg, ok
}

// Empty reports whether the store holds any fields.
func (s *Store) Empty() bool {
	return s == nil || len(s.fields) == 0
}

// Build constructs a date field per configured key, in key order. extra
// options are applied after the file options.
func (s *Store) Build(extra ...date.OptionFn) ([]*date.Field, error) {
	keys := s.Keys()
	fields := make([]*date.Field, 0, len(keys))
	for _, key := range keys {
		cfg := s.fields[key]
		fns := append(cfg.OptionFns(), extra...)
		field, err := date.New(key, fns...)
		if err != nil {
			return nil, fmt.Errorf("fieldconfig: build %q: %w", key, err)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("fieldconfig: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("fieldconfig: parse %s: invalid JSON or YAML", source)
}

func isConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
