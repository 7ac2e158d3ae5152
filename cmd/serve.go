package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mwarner-dev/postpilot/internal/linkedin"
	"github.com/mwarner-dev/postpilot/internal/observability"
	"github.com/mwarner-dev/postpilot/internal/research"
	"github.com/mwarner-dev/postpilot/internal/server"
)

const shutdownGrace = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for research, drafting, and posting.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger()
		cfg := appConfig

		researchSvc := research.NewService(
			research.NewDuckDuckGoSearcher(cfg.Research, logger),
			research.NewFetcher(cfg.Research, logger),
			cfg.Research,
			logger,
		)
		poster := linkedin.NewPoster(cfg, logger)
		handler := server.NewHandler(researchSvc, poster, logger)
		srv := server.New(cfg.Server, handler, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("HTTP server listening.", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}

		logger.Info("Shutting down.")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
