package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/0xReLogic/greeter/internal/config"
	"github.com/0xReLogic/greeter/internal/greeting"
	"github.com/0xReLogic/greeter/internal/logging"
	"github.com/0xReLogic/greeter/internal/metrics"
)

const (
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

func secondsOr(seconds int, fallback time.Duration) time.Duration {
	if seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// buildHandler wraps the greeting mux with metrics, access logging and request context
func buildHandler(cfg *config.Config, mc *metrics.Collector) http.Handler {
	var handler http.Handler = greeting.NewMux()
	if mc != nil {
		handler = mc.Middleware(handler)
	}
	handler = logging.AccessLogMiddleware()(handler)
	handler = logging.RequestContextMiddleware(cfg.Logging)(handler)
	return handler
}

// createHTTPServer creates the public HTTP server bound to the resolved host and port
func createHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  secondsOr(cfg.Server.Timeouts.Read, defaultReadTimeout),
		WriteTimeout: secondsOr(cfg.Server.Timeouts.Write, defaultWriteTimeout),
		IdleTimeout:  secondsOr(cfg.Server.Timeouts.Idle, defaultIdleTimeout),
	}
}

// setupMetricsServer starts the metrics HTTP server if enabled in config
func setupMetricsServer(cfg *config.Config, mc *metrics.Collector) *http.Server {
	if !cfg.Metrics.Enabled || mc == nil {
		return nil
	}

	metricsPort := cfg.Metrics.Port
	if metricsPort == 0 {
		metricsPort = 9090
	}

	metricsServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", metricsPort),
		Handler:      mc.NewMux(cfg.Metrics.Path),
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	go func() {
		logger := logging.L()
		logger.Info().Int("port", metricsPort).Str("path", cfg.Metrics.Path).Msg("metrics server starting")
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()

	return metricsServer
}

// startHTTPServer starts the public server in a goroutine and reports its exit on serverErrors
func startHTTPServer(server *http.Server, serverErrors chan<- error) {
	logger := logging.L()
	logger.Info().
		Str("addr", server.Addr).
		Dur("read_timeout", server.ReadTimeout).
		Dur("write_timeout", server.WriteTimeout).
		Dur("idle_timeout", server.IdleTimeout).
		Msg("listening for http")

	go func() {
		serverErrors <- server.ListenAndServe()
	}()
}

// shutdownGracefully drains in-flight requests, then force-closes on timeout
func shutdownGracefully(shutdownTimeout time.Duration, servers ...*http.Server) {
	logger := logging.L()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info().Dur("timeout", shutdownTimeout).Msg("shutting down server gracefully")

	for _, server := range servers {
		if server == nil {
			continue
		}
		if err := server.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Str("addr", server.Addr).Msg("error during server shutdown")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Str("addr", server.Addr).Msg("error closing server")
			}
		}
	}

	logger.Info().Msg("server shutdown complete")
}
