// Package cli implements the datefield command line: value conversion,
// rendering, interactive prompts and a demo wizard server.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type App struct {
	Config     string
	Verbose    bool
	PrettyJSON bool

	Logger *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{Logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:          "datefield",
		Short:        "Split, compose, render and serve GOV.UK style date fields",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Break a stored value into its sub-field values
  datefield split 2017-03-04 --key dob

  # Rebuild a stored value from parts
  datefield compose --day 4 --month 3 --year 2017

  # Run a one-step wizard over fields from a config file
  datefield serve --config fields.yaml --addr :8080
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if app.Verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		app.Logger = logger
		return nil
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.Logger != nil {
			_ = app.Logger.Sync()
		}
	}

	cmd.PersistentFlags().StringVar(&app.Config, "config", envOr("DATEFIELD_CONFIG", ""), "Field config file or directory (JSON or YAML)")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newSplitCmd(app))
	cmd.AddCommand(newComposeCmd(app))
	cmd.AddCommand(newRenderCmd(app))
	cmd.AddCommand(newPromptCmd(app))
	cmd.AddCommand(newSchemaCmd(app))
	cmd.AddCommand(newLintCmd(app))
	cmd.AddCommand(newServeCmd(app))

	return cmd
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return writeJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
