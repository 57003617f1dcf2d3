package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ledgerlens-server/src/api"
	"ledgerlens-server/src/ingest"
	"ledgerlens-server/src/report"
)

func newServeCommand(flags *globalFlags) *cobra.Command {
	var port, uploadDir, plotsDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if port != "" {
				a.cfg.Port = port
			}
			if uploadDir != "" {
				a.cfg.UploadDir = uploadDir
			}
			if plotsDir != "" {
				a.cfg.PlotsDir = plotsDir
			}
			return runServe(ctx, a)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (default $PORT or 8080)")
	cmd.Flags().StringVar(&uploadDir, "upload-dir", "", "directory for uploaded statements")
	cmd.Flags().StringVar(&plotsDir, "plots-dir", "", "directory for rendered charts")

	return cmd
}

func runServe(ctx context.Context, a *app) error {
	for _, dir := range []string{a.cfg.UploadDir, a.cfg.PlotsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	router := api.NewRouter(api.Deps{
		Store:          a.store,
		Cache:          a.store,
		Ingester:       ingest.NewPipeline(a.rules.Parser(), a.store, a.log),
		Charts:         report.NewGenerator(a.log),
		Rules:          a.rules,
		UploadDir:      a.cfg.UploadDir,
		PlotsDir:       a.cfg.PlotsDir,
		AllowedOrigins: a.cfg.AllowedOrigins,
		Log:            a.log,
	})

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("port", a.cfg.Port).Msg("API server running")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		a.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
