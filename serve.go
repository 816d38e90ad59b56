package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	appLogger "github.com/FACorreiaa/go-gas-station-finder/app/logger"
	"github.com/FACorreiaa/go-gas-station-finder/app/observability/metrics"
	"github.com/FACorreiaa/go-gas-station-finder/app/tracer"
	"github.com/FACorreiaa/go-gas-station-finder/config"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/telegram"
	"github.com/FACorreiaa/go-gas-station-finder/internal/container"
	"github.com/FACorreiaa/go-gas-station-finder/internal/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and, when enabled, the Telegram bot",
	RunE:  runServe,
}

var (
	servePort     string
	serveTelegram bool
)

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "HTTP port (overrides server.HTTPPort)")
	serveCmd.Flags().BoolVar(&serveTelegram, "telegram", false, "Start the Telegram bot even if telegram.enabled is false")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	if servePort != "" {
		cfg.Server.HTTPPort = servePort
	}
	if serveTelegram {
		cfg.Telegram.Enabled = true
		if err := config.Validate(&cfg); err != nil {
			return err
		}
	}

	logger := appLogger.New(cfg.Mode, os.Stdout)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	providers, err := tracer.InitTracingAndMetrics(cfg.Observability.ServiceName)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	metrics.InitAppMetrics()

	c, err := container.NewContainer(&cfg, metrics.Get(), logger)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}
	defer c.Close()

	if cfg.Google.APIKey == "" {
		logger.Warn("google.apiKey is empty, every lookup will fail upstream")
	}

	routerCfg := &router.Config{SearchHandler: c.SearchHandler}
	var metricsSrv *http.Server
	if port := cfg.Observability.MetricsPort; port != "" && port != cfg.Server.HTTPPort {
		metricsSrv = tracer.NewMetricsServer(port)
	} else {
		routerCfg.MetricsHandler = tracer.MetricsHandler()
	}
	mainRouter := router.SetupRouter(routerCfg)

	timeout := cfg.Server.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(timeout))
	mux.Mount("/", mainRouter)

	var bot *telegram.Bot
	if cfg.Telegram.Enabled {
		bot, err = telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.PollTimeout, c.FinderService, logger)
		if err != nil {
			return err
		}
	}

	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: timeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if metricsSrv != nil {
		g.Go(func() error {
			logger.Info("Starting metrics server", slog.String("address", metricsSrv.Addr))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	if bot != nil {
		g.Go(func() error {
			bot.Run(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received, starting graceful shutdown...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
		} else {
			logger.Info("HTTP server gracefully stopped")
		}
		if metricsSrv != nil {
			if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Metrics server shutdown failed", slog.Any("error", err))
			}
		}
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Error("Telemetry shutdown failed", slog.Any("error", err))
		}
		return nil
	})

	err = g.Wait()
	logger.Info("Application shut down complete.")
	return err
}
