package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-datefield/pkg/prompt"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fields.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestSplitCmd(t *testing.T) {
	out, err := runCmd(t, "split", "2017-03-04", "--key", "dob")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	want := map[string]string{"dob-day": "04", "dob-month": "03", "dob-year": "2017"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want composeResult
	}{
		{name: "padded", args: []string{"--day", "4", "--month", "3", "--year", "2017"}, want: composeResult{Value: "2017-03-04", Answered: true}},
		{name: "month optional", args: []string{"--year", "2030", "--month-optional"}, want: composeResult{Value: "2030-01-01", Answered: true}},
		{name: "blank", args: nil, want: composeResult{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCmd(t, append([]string{"compose"}, tt.args...)...)
			if err != nil {
				t.Fatalf("compose: %v", err)
			}
			var got composeResult
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("decode %q: %v", out, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderCmd(t *testing.T) {
	cfg := writeConfig(t, "fields:\n  dob:\n    label: Date of birth\n")
	out, err := runCmd(t, "render", "--config", cfg, "--value", "dob=2017-03-04")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Date of birth", `name="dob-day" value="04"`, `name="dob-year" value="2017"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	if _, err := runCmd(t, "render", "--value", "broken"); err == nil {
		t.Fatalf("expected error for malformed --value")
	}
}

func TestRenderCmd_Hint(t *testing.T) {
	out, err := runCmd(t, "render", "--key", "dob")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<span class="form-hint" id="dob-hint">For example, 31 3 1980</span>`) {
		t.Fatalf("expected default hint:\n%s", out)
	}

	out, err = runCmd(t, "render", "--key", "dob", "--hint", "For example, 4 7 2021")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "For example, 4 7 2021") || strings.Contains(out, "31 3 1980") {
		t.Fatalf("expected hint override:\n%s", out)
	}
}

func TestRenderCmd_TemplateExtension(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "date.html"), []byte("html:{{ key }}:{{ hint }}"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	out, err := runCmd(t, "render", "--key", "dob", "--templates", dir, "--template-ext", "html", "--hint", "h")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.TrimSpace(out) != "html:dob:h" {
		t.Fatalf("expected .html override, got %q", out)
	}

	if _, err := runCmd(t, "render", "--key", "dob", "--template-ext", "html"); err == nil {
		t.Fatalf("expected missing template error without an .html source")
	}
}

func TestSchemaCmd(t *testing.T) {
	cfg := writeConfig(t, "fields:\n  dob:\n    required: true\n")
	out, err := runCmd(t, "schema", "--config", cfg)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if !strings.Contains(out, `"DateFields"`) || !strings.Contains(out, `"dob"`) {
		t.Fatalf("unexpected schema output %s", out)
	}
}

func TestLintCmd(t *testing.T) {
	good := writeConfig(t, "fields:\n  dob: {}\n")
	out, err := runCmd(t, "lint", good)
	if err != nil {
		t.Fatalf("lint: %v\n%s", err, out)
	}
	if strings.TrimSpace(out) != "ok" {
		t.Fatalf("unexpected output %q", out)
	}

	bad := writeConfig(t, "fields:\n  dob:\n    template: missing/template\n")
	out, err = runCmd(t, "lint", bad)
	if err == nil {
		t.Fatalf("expected lint failure")
	}
	if !strings.Contains(out, `"field":"dob"`) {
		t.Fatalf("expected violation for dob, got %s", out)
	}
}

type scriptedDriver struct {
	answers []string
}

func (d *scriptedDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	answer := d.answers[0]
	d.answers = d.answers[1:]
	return answer, nil
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func TestRunPrompt(t *testing.T) {
	app := &App{Logger: zap.NewNop()}
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := runPrompt(cmd, app, &scriptedDriver{answers: []string{"4", "3", "2017"}}, "dob"); err != nil {
		t.Fatalf("prompt: %v", err)
	}
	var got map[string]prompt.Result
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if got["dob"].Value != "2017-03-04" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestServeHandler(t *testing.T) {
	app := &App{Logger: zap.NewNop()}
	handler, path, err := buildServeHandler(app, serveOptions{Base: "/apply", Route: "/when", Title: "When?"})
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}
	if path != "/apply/when" {
		t.Fatalf("unexpected path %q", path)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/apply/when", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `name="date-day"`) {
		t.Fatalf("expected date inputs in page:\n%s", rec.Body.String())
	}
}
