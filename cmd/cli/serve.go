package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Deepak7704/100xSWE/internal/wire"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the orchestration service",
	Long: `Run the HTTP server and worker pool in the foreground.

Configuration is read from the environment (see .env.example). The process
stops on SIGINT or SIGTERM after draining in-flight requests.`,
	RunE: runServe,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, cleanup, err := wire.InitializeApp(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer cleanup()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(application.Start)
	g.Go(func() error {
		// Runs on the first of: shutdown signal, server failure.
		<-gctx.Done()
		return application.Stop()
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("application exited with error: %w", err)
	}
	return nil
}
