package wizard_test

import (
	"fmt"
	"io"
	"testing"

	"github.com/goliatone/go-datefield/components/date"
	"github.com/goliatone/go-datefield/pkg/render/template/gotemplate"
	"github.com/goliatone/go-datefield/pkg/wizard"
)

// recordingRenderer renders "rendered:<key>" for any template.
type recordingRenderer struct {
	names []string
}

func (r *recordingRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

func (r *recordingRenderer) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	r.names = append(r.names, name)
	ctx, _ := data.(map[string]any)
	return fmt.Sprintf("rendered:%v", ctx["key"]), nil
}

func (r *recordingRenderer) RenderString(content string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(content, data, out...)
}

func (r *recordingRenderer) RegisterFilter(string, func(any, any) (any, error)) error { return nil }

func (r *recordingRenderer) GlobalContext(any) error { return nil }

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()
	engine, err := gotemplate.New(
		gotemplate.WithFS(date.TemplatesFS()),
		gotemplate.WithFS(wizard.TemplatesFS()),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
