package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-datefield/components/date"
	"github.com/goliatone/go-datefield/pkg/prompt"
)

func newPromptCmd(app *App) *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Ask for date fields on the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrompt(cmd, app, prompt.NewSurveyDriver(), key)
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "Only ask for this field")
	return cmd
}

func runPrompt(cmd *cobra.Command, app *App, driver prompt.Driver, key string) error {
	fallback := key
	if fallback == "" {
		fallback = "date"
	}
	fields, err := loadFields(app, fallback)
	if err != nil {
		return err
	}
	if key != "" {
		field, err := pickField(fields, key)
		if err != nil {
			return err
		}
		fields = []*date.Field{field}
	}

	results := make(map[string]prompt.Result, len(fields))
	for _, field := range fields {
		result, err := prompt.CollectParts(cmd.Context(), driver, field, "")
		if err != nil {
			return err
		}
		app.Logger.Debug("collected field", zapKey(field.Key()), zapValue(result.Value))
		results[field.Key()] = result
	}
	return writeOut(cmd, app, results)
}
