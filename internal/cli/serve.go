package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-datefield"
	"github.com/goliatone/go-datefield/pkg/session"
	"github.com/goliatone/go-datefield/pkg/wizard"
)

type serveOptions struct {
	Addr      string
	Base      string
	Route     string
	Title     string
	Next      string
	Templates templateFlags
	Secure    bool
	TTL       time.Duration
	Grace     time.Duration
}

func newServeCmd(app *App) *cobra.Command {
	opts := serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a one-step wizard over the configured date fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, path, err := buildServeHandler(app, opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return listen(ctx, app.Logger, opts, handler, path)
		},
	}
	cmd.Flags().StringVar(&opts.Addr, "addr", envOr("DATEFIELD_ADDR", ":8080"), "Listen address")
	cmd.Flags().StringVar(&opts.Base, "base", "/", "Base path the step is mounted under")
	cmd.Flags().StringVar(&opts.Route, "route", "/when", "Step route")
	cmd.Flags().StringVar(&opts.Title, "title", "When did it happen?", "Page title")
	cmd.Flags().StringVar(&opts.Next, "next", "", "Redirect target after a valid submission")
	opts.Templates.bind(cmd)
	cmd.Flags().BoolVar(&opts.Secure, "secure-cookie", false, "Mark the session cookie Secure")
	cmd.Flags().DurationVar(&opts.TTL, "session-ttl", session.DefaultTTL, "Idle time before a session expires (0 keeps sessions until restart)")
	cmd.Flags().DurationVar(&opts.Grace, "grace", 5*time.Second, "Shutdown grace period")
	return cmd
}

// buildServeHandler assembles the mux with the step mounted, returning the
// mounted path.
func buildServeHandler(app *App, opts serveOptions) (http.Handler, string, error) {
	engine, err := opts.Templates.renderer()
	if err != nil {
		return nil, "", err
	}
	fields, err := loadFields(app, "date")
	if err != nil {
		return nil, "", err
	}
	store := session.NewStore(session.WithSecure(opts.Secure), session.WithTTL(opts.TTL))
	step, err := datefield.NewStep(store, engine, fields,
		wizard.WithTitle(opts.Title),
		wizard.WithNext(opts.Next),
		wizard.WithLogger(app.Logger),
	)
	if err != nil {
		return nil, "", err
	}

	mux := http.NewServeMux()
	path, err := wizard.Mount(mux, opts.Base, opts.Route, step)
	if err != nil {
		return nil, "", err
	}
	return mux, path, nil
}

func listen(ctx context.Context, logger *zap.Logger, opts serveOptions, handler http.Handler, path string) error {
	server := &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving wizard step", zap.String("addr", opts.Addr), zap.String("path", path))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.Grace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
