package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/kiez/internal/api"
	"github.com/UnknownOlympus/kiez/internal/bot"
	"github.com/UnknownOlympus/kiez/internal/catalog"
	"github.com/UnknownOlympus/kiez/internal/config"
	"github.com/UnknownOlympus/kiez/internal/datasets"
	"github.com/UnknownOlympus/kiez/internal/geocoding"
	"github.com/UnknownOlympus/kiez/internal/metrics"
	"github.com/UnknownOlympus/kiez/internal/service"
	"github.com/UnknownOlympus/kiez/internal/telemetry"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const telegramPollTimeout = 60

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	flush := func(context.Context) error { return nil }
	if cfg.Tracing {
		shutdown, err := telemetry.InitTracer()
		if err != nil {
			logger.ErrorContext(ctx, "Failed to initialize tracing", "error", err)
			stop()
			os.Exit(1)
		}
		flush = shutdown
	}

	err := run(ctx, cfg, logger)
	if flushErr := flush(context.Background()); flushErr != nil {
		logger.Error("Failed to flush traces", "error", flushErr)
	}
	if err != nil {
		logger.ErrorContext(ctx, "Application stopped with error", "error", err)
		stop()
		os.Exit(1)
	}

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// run wires the components and blocks until ctx is canceled or one of them fails.
// Clients that can fail at startup are created before any goroutine starts.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Create a separate registry for metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// The geocoder only resolves demonstration postcodes missing from the built-in table.
	geoProvider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Geocoder.Type),
		APIKey:    cfg.Geocoder.APIKey,
		RateLimit: cfg.Geocoder.RateLimit,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create geocoding provider: %w", err)
	}
	geoProvider = geocoding.Instrumented(geoProvider, cfg.Geocoder.Type, appMetrics)
	logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.Geocoder.Type)

	var botAPI *tgbotapi.BotAPI
	if cfg.TelegramToken != "" {
		botAPI, err = tgbotapi.NewBotAPIWithAPIEndpoint(cfg.TelegramToken, cfg.TelegramAPIEndpoint)
		if err != nil {
			return fmt.Errorf("failed to connect to Telegram: %w", err)
		}
		logger.InfoContext(ctx, "Authorized on Telegram", "account", botAPI.Self.UserName)
	} else {
		logger.WarnContext(ctx, "Telegram token not configured, bot disabled")
	}

	client := datasets.NewHTTPClient(cfg.FetchTimeout)
	sources := []datasets.Source{
		datasets.NewToilets(client, cfg.Sources.ToiletsURL, cfg.Sources.ToiletsSheet, logger),
		datasets.NewFountains(client, cfg.Sources.FountainsPageURL, cfg.Sources.FountainsKMZURL, logger),
		datasets.NewDemonstrations(client, cfg.Sources.DemonstrationsURL, geoProvider, cfg.Location, logger),
	}

	store := catalog.NewStore()
	refresher := service.NewRefreshService(
		logger,
		store,
		sources,
		appMetrics,
		cfg.Workers,
		cfg.FetchTimeout,
		cfg.RefreshInterval,
	)
	finder := service.NewFinder(logger, store, appMetrics)

	handler := api.NewHandler(logger, finder, refresher, store, cfg.ResultLimit)
	server := api.NewServer(logger, cfg.Port, api.NewRouter(handler, reg))

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		refresher.Run(groupCtx)
		return nil
	})
	group.Go(func() error {
		return server.Run(groupCtx)
	})

	if botAPI != nil {
		updateConfig := tgbotapi.NewUpdate(0)
		updateConfig.Timeout = telegramPollTimeout
		updates := botAPI.GetUpdatesChan(updateConfig)

		telegram := bot.New(logger, botAPI, finder, refresher, cfg.ResultLimit, cfg.ButtonLimit)
		group.Go(func() error {
			telegram.Run(groupCtx, updates)
			return nil
		})
		group.Go(func() error {
			<-groupCtx.Done()
			botAPI.StopReceivingUpdates()
			return nil
		})
	}

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	return group.Wait()
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
