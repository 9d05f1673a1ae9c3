package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-datefield"
	"github.com/goliatone/go-datefield/components/date"
	"github.com/goliatone/go-datefield/pkg/render/template/gotemplate"
	"github.com/goliatone/go-datefield/pkg/session"
	"github.com/goliatone/go-datefield/pkg/wizard"
)

// templateFlags are the renderer settings shared by render, lint and serve.
type templateFlags struct {
	Dir  string
	Ext  string
	Hint string
}

func (f *templateFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Dir, "templates", "", "Directory searched for template overrides")
	cmd.Flags().StringVar(&f.Ext, "template-ext", "", "Template file extension (default .tpl); applies to every lookup, so the override directory must provide all templates")
	cmd.Flags().StringVar(&f.Hint, "hint", "", "Hint text shown under date legends")
}

func (f templateFlags) renderer() (*gotemplate.Engine, error) {
	var opts []gotemplate.Option
	if dir := strings.TrimSpace(f.Dir); dir != "" {
		opts = append(opts, gotemplate.WithBaseDir(dir))
	}
	if ext := strings.TrimSpace(f.Ext); ext != "" {
		opts = append(opts, gotemplate.WithExtension(ext))
	}
	if hint := strings.TrimSpace(f.Hint); hint != "" {
		opts = append(opts, gotemplate.WithGlobalData(map[string]any{"hint": hint}))
	}
	return datefield.NewRenderer(opts...)
}

func newRenderCmd(app *App) *cobra.Command {
	var (
		key       string
		values    []string
		templates templateFlags
		sanitize  bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render date fields as HTML through the display stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := templates.renderer()
			if err != nil {
				return err
			}
			var extra []date.OptionFn
			if sanitize {
				extra = append(extra, date.WithSanitize(true))
			}
			fields, err := loadFields(app, key, extra...)
			if err != nil {
				return err
			}

			model := session.NewModel("cli")
			for _, raw := range values {
				name, value, ok := strings.Cut(raw, "=")
				if !ok {
					return fmt.Errorf("invalid --value %q, want key=value", raw)
				}
				model.Set(strings.TrimSpace(name), value)
			}

			pipeline := datefield.NewPipeline(fields...)
			req := &wizard.Request{Session: model, Form: wizard.NewForm(nil)}
			res := &wizard.Response{Renderer: engine, Fields: pipeline.Views()}
			if err := pipeline.Get(cmd.Context(), req, res); err != nil {
				return err
			}
			if len(res.Fields) == 0 {
				return errors.New("no fields to render")
			}
			for _, view := range res.Fields {
				app.Logger.Debug("rendered field", zapKey(view.Key))
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), view.HTML); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "date", "Field key when no config is given")
	cmd.Flags().StringArrayVar(&values, "value", nil, "Stored value as key=YYYY-MM-DD (repeatable)")
	templates.bind(cmd)
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "Sanitize rendered HTML")
	return cmd
}
