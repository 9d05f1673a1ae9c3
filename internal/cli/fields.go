package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-datefield/components/date"
	"github.com/goliatone/go-datefield/pkg/fieldconfig"
)

// loadStore reads the field config at path, which may be a single file or a
// directory of files.
func loadStore(path string) (*fieldconfig.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return fieldconfig.LoadFS(nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if info.IsDir() {
		return fieldconfig.LoadFS(os.DirFS(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return fieldconfig.Parse(data, filepath.Base(path))
}

// loadFields builds the configured fields. With no config a single field
// named fallbackKey is returned so commands work without a file.
func loadFields(app *App, fallbackKey string, extra ...date.OptionFn) ([]*date.Field, error) {
	store, err := loadStore(app.Config)
	if err != nil {
		return nil, err
	}
	if store.Empty() {
		field, err := date.New(fallbackKey, extra...)
		if err != nil {
			return nil, err
		}
		return []*date.Field{field}, nil
	}
	return store.Build(extra...)
}

// pickField returns the field matching key, or the only field when key is
// empty.
func pickField(fields []*date.Field, key string) (*date.Field, error) {
	key = strings.TrimSpace(key)
	if key == "" && len(fields) == 1 {
		return fields[0], nil
	}
	for _, field := range fields {
		if field.Key() == key {
			return field, nil
		}
	}
	return nil, fmt.Errorf("unknown field %q", key)
}
