package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-datefield/pkg/wizard"
)

func newSchemaCmd(app *App) *cobra.Command {
	var (
		key   string
		title string
	)
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the OpenAPI document describing the stored field values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := loadFields(app, key)
			if err != nil {
				return err
			}
			hooks := make([]wizard.FieldHooks, 0, len(fields))
			for _, field := range fields {
				hooks = append(hooks, field)
			}
			doc, err := wizard.NewValidator(hooks...).Document(cmd.Context(), title)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, doc)
		},
	}
	cmd.Flags().StringVar(&key, "key", "date", "Field key when no config is given")
	cmd.Flags().StringVar(&title, "title", "Date fields", "Document title")
	return cmd
}
