package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	httpserver "github.com/zoracast/zoracast/internal/interfaces/http"
	"github.com/zoracast/zoracast/internal/interfaces/http/handlers"
)

var (
	serveRetrainInterval time.Duration
	serveSampleLimit     int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the prediction API server",
	Long: `Start the HTTP API. If a database is configured the model is trained
from recorded samples at startup and retrained periodically in the
background; prediction requests are rejected with 503 until the first
training pass publishes a model.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().DurationVar(&serveRetrainInterval, "retrain-interval", 30*time.Minute, "Background retrain period (0 disables)")
	serveCmd.Flags().IntVar(&serveSampleLimit, "sample-limit", 5000, "Maximum training samples pulled from the sink")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial training pass. A failure leaves the predictor not ready;
	// the server still starts and reports 503 until a retrain succeeds.
	if err := a.trainFromSink(ctx, serveSampleLimit); err != nil {
		log.Warn().Err(err).Msg("Initial model training failed, serving without a model")
	}

	if serveRetrainInterval > 0 && a.predictions != nil {
		go retrainLoop(ctx, a)
	}

	h := handlers.NewHandlers(a.predictor, a.provider, a.predictions, a.trades)
	server := httpserver.NewServer(a.cfg.Server, h)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// retrainLoop refreshes the published model on a fixed period. Each
// pass trains a new instance and swaps it in; in-flight predictions
// keep the model they loaded.
func retrainLoop(ctx context.Context, a *app) {
	ticker := time.NewTicker(serveRetrainInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.trainFromSink(ctx, serveSampleLimit); err != nil {
				log.Warn().Err(err).Msg("Background retrain failed, keeping current model")
			}
		}
	}
}
