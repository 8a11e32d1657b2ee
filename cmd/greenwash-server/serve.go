package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/greenwash/internal/app"
	"github.com/bobmcallan/greenwash/internal/common"
	"github.com/bobmcallan/greenwash/internal/server"
)

// serveCmd starts the web dashboard
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Long: `Start the web dashboard.

If the dataset cannot be loaded the server still starts and answers every
page with the load error, unless dataset.fail_fast is set, in which case
the process exits with status 1.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := app.NewApp(configPath, datasetPath)
	if err != nil {
		return err
	}

	if !a.Ready() && a.Config.Dataset.FailFast {
		return fmt.Errorf("dataset failed to load: %w", a.LoadErr)
	}

	common.PrintBanner(a.Config, a.Logger, a.CaseCount())

	srv := server.NewServer(a)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(srv.Start)

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info().Msg("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.GetShutdownTimeout())
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
			return err
		}
		return nil
	})

	a.Logger.Info().
		Str("url", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)).
		Msg("Server ready")

	err = g.Wait()
	common.PrintShutdownBanner(a.Logger)
	a.Logger.Info().Msg("Server stopped")
	return err
}
