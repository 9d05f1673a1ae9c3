package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-datefield/components/date"
	rendertemplate "github.com/goliatone/go-datefield/pkg/render/template"
	"github.com/goliatone/go-datefield/pkg/session"
	"github.com/goliatone/go-datefield/pkg/wizard"
)

type violation struct {
	File    string `json:"file"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func newLintCmd(app *App) *cobra.Command {
	var templates templateFlags
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check field config files load and their templates render",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 && app.Config != "" {
				paths = []string{app.Config}
			}
			if len(paths) == 0 {
				return errors.New("lint: no config paths given")
			}
			engine, err := templates.renderer()
			if err != nil {
				return err
			}

			var violations []violation
			for _, path := range paths {
				violations = append(violations, lintPath(cmd, engine, path)...)
			}
			sort.SliceStable(violations, func(i, j int) bool {
				if violations[i].File != violations[j].File {
					return violations[i].File < violations[j].File
				}
				return violations[i].Field < violations[j].Field
			})
			if len(violations) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return err
			}
			if err := writeOut(cmd, app, violations); err != nil {
				return err
			}
			return fmt.Errorf("lint: %d violation(s)", len(violations))
		},
	}
	templates.bind(cmd)
	return cmd
}

func lintPath(cmd *cobra.Command, renderer rendertemplate.TemplateRenderer, path string) []violation {
	store, err := loadStore(path)
	if err != nil {
		return []violation{{File: path, Message: err.Error()}}
	}
	if store.Empty() {
		return []violation{{File: path, Message: "no fields defined"}}
	}

	var out []violation
	for _, key := range store.Keys() {
		cfg, _ := store.Field(key)
		field, err := date.New(key, cfg.OptionFns()...)
		if err != nil {
			out = append(out, violation{File: path, Field: key, Message: err.Error()})
			continue
		}
		req := &wizard.Request{Session: session.NewModel("lint"), Form: wizard.NewForm(nil)}
		res := &wizard.Response{Renderer: renderer, Fields: []wizard.FieldView{field.View()}}
		if err := field.PreRender(cmd.Context(), req, res); err != nil {
			out = append(out, violation{File: path, Field: key, Message: err.Error()})
		}
	}
	return out
}
