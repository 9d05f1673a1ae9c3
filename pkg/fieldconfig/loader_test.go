package fieldconfig

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestLoadFS_ParsesJSONAndYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"steps/personal.yaml": {Data: []byte(`
fields:
  dob:
    label: Date of birth
    required: true
    extra:
      hint: For example, 31 3 1980
`)},
		"steps/card.json": {Data: []byte(`{"fields": {"card-expiry": {"monthOptional": true, "template": "overrides/expiry"}}}`)},
		"README.md":       {Data: []byte("ignored")},
	}

	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff([]string{"card-expiry", "dob"}, store.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	dob, ok := store.Field("dob")
	if !ok {
		t.Fatalf("expected dob config")
	}
	want := FieldConfig{
		Label:    "Date of birth",
		Required: true,
		Extra:    map[string]any{"hint": "For example, 31 3 1980"},
		Source:   "steps/personal.yaml",
	}
	if diff := cmp.Diff(want, dob); diff != "" {
		t.Fatalf("dob mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_Build(t *testing.T) {
	store, err := Parse([]byte(`
fields:
  card-expiry:
    monthOptional: true
    template: overrides/expiry
  dob:
    required: true
    hint: For example, 12 11 2007
    themePartial: forms.dob
`), "inline.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	fields, err := store.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	expiry := fields[0]
	if expiry.Key() != "card-expiry" {
		t.Fatalf("unexpected first key %q", expiry.Key())
	}
	opts := expiry.Options()
	if !opts.MonthOptional || !opts.DayOptional {
		t.Fatalf("expected month optional to imply day optional, got %+v", opts)
	}
	if expiry.Template() != "overrides/expiry" {
		t.Fatalf("unexpected template %q", expiry.Template())
	}

	dob := fields[1]
	if !dob.Required() {
		t.Fatalf("expected dob required")
	}
	if dob.Options().Hint != "For example, 12 11 2007" {
		t.Fatalf("unexpected hint %q", dob.Options().Hint)
	}
	if dob.Options().ThemePartial != "forms.dob" {
		t.Fatalf("unexpected theme partial %q", dob.Options().ThemePartial)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
		want string
	}{
		{
			name: "duplicate",
			fsys: fstest.MapFS{
				"a.yaml": {Data: []byte("fields:\n  dob: {}\n")},
				"b.json": {Data: []byte(`{"fields": {"dob": {}}}`)},
			},
			want: "duplicate field",
		},
		{
			name: "empty file",
			fsys: fstest.MapFS{"a.yaml": {Data: []byte("   ")}},
			want: "is empty",
		},
		{
			name: "invalid",
			fsys: fstest.MapFS{"a.yaml": {Data: []byte("fields: [")}},
			want: "invalid JSON or YAML",
		},
		{
			name: "blank key",
			fsys: fstest.MapFS{"a.json": {Data: []byte(`{"fields": {" ": {}}}`)}},
			want: "empty field key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFS(tt.fsys)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFS_NilFS(t *testing.T) {
	store, err := LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}
