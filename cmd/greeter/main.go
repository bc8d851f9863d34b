package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/0xReLogic/greeter/internal/config"
	"github.com/0xReLogic/greeter/internal/logging"
	"github.com/0xReLogic/greeter/internal/metrics"
)

func main() {
	cfg, err := config.Load(os.LookupEnv)
	if err != nil {
		logger := logging.L()
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(cfg.Logging)
	logger := logging.L()

	var mc *metrics.Collector
	if cfg.Metrics.Enabled {
		mc = metrics.NewCollector()
	}

	server := createHTTPServer(cfg, buildHandler(cfg, mc))
	metricsServer := setupMetricsServer(cfg, mc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	startHTTPServer(server, serverErrors)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Str("addr", server.Addr).Msg("failed to start http server")
		}
	case <-ctx.Done():
		logger.Info().Msg("termination signal received")
		shutdownGracefully(secondsOr(cfg.Server.Timeouts.Shutdown, defaultShutdownTimeout), server, metricsServer)
	}
}
