package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-datefield/components/date"
)

type composeResult struct {
	Value    string `json:"value"`
	Answered bool   `json:"answered"`
}

func newSplitCmd(app *App) *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "split <value>",
		Short: "Split a stored value into sub-field values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := date.Split(args[0], date.SubFields(key))
			app.Logger.Debug("split value", zapValue(args[0]), zapKey(key))
			return writeOut(cmd, app, values)
		},
	}
	cmd.Flags().StringVar(&key, "key", "date", "Field key used to name sub-fields")
	return cmd
}

func newComposeCmd(app *App) *cobra.Command {
	var (
		day, month, year           string
		dayOptional, monthOptional bool
	)
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose a stored value from day, month and year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := date.NewOptions(
				date.WithDayOptional(dayOptional),
				date.WithMonthOptional(monthOptional),
			)
			parts := date.Parts{date.PartDay: day, date.PartMonth: month, date.PartYear: year}
			value, answered := date.Compose(parts, opts)
			app.Logger.Debug("composed value", zapValue(value))
			return writeOut(cmd, app, composeResult{Value: value, Answered: answered})
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "Day part")
	cmd.Flags().StringVar(&month, "month", "", "Month part")
	cmd.Flags().StringVar(&year, "year", "", "Year part")
	cmd.Flags().BoolVar(&dayOptional, "day-optional", false, "Default a blank day to 01")
	cmd.Flags().BoolVar(&monthOptional, "month-optional", false, "Default a blank day and month to 01")
	return cmd
}
