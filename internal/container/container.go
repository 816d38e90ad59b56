package container

import (
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/FACorreiaa/go-gas-station-finder/app/observability/metrics"
	"github.com/FACorreiaa/go-gas-station-finder/config"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/cache"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/events"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/finder"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/formatter"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/geocoding"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/location"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/places"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/search"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/stations"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *slog.Logger
	Cache         *cache.ResultCache
	Publisher     events.Publisher
	FinderService *finder.ServiceImpl
	SearchHandler *search.HandlerImpl
}

// NewContainer wires the provider clients, the pipeline and the HTTP handler.
// m may be nil, in which case nothing is recorded.
func NewContainer(cfg *config.Config, m *metrics.AppMetrics, logger *slog.Logger) (*Container, error) {
	clock := clockwork.NewRealClock()
	timeout := cfg.Providers.RequestTimeout

	geocoder := geocoding.NewClient(cfg.Google.APIKey, cfg.Google.GeocodeURL, timeout, m, logger)
	placesClient := places.NewClient(cfg.Google.APIKey, cfg.Google.PlacesURL, timeout, m, logger)

	resolver := location.NewServiceImpl(geocoder, cfg.Google.Country, timeout, logger)
	stationService := stations.NewServiceImpl(placesClient, timeout, cfg.Providers.DetailConcurrency, clock, logger)
	resultCache := cache.New(cfg.Cache.TTL, cfg.Cache.CleanupInterval, clock, m)

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		logger.Info("Publishing search events to Kafka",
			slog.Any("brokers", cfg.Kafka.Brokers),
			slog.String("topic", cfg.Kafka.Topic))
	}

	finderService := finder.NewServiceImpl(
		resolver,
		stationService,
		resultCache,
		publisher,
		m,
		clock,
		SettingsFromConfig(cfg),
		logger,
	)

	return &Container{
		Config:        cfg,
		Logger:        logger,
		Cache:         resultCache,
		Publisher:     publisher,
		FinderService: finderService,
		SearchHandler: search.NewHandlerImpl(finderService, logger),
	}, nil
}

// SettingsFromConfig maps the active finder profile onto pipeline settings.
func SettingsFromConfig(cfg *config.Config) finder.Settings {
	p := cfg.ActiveProfile()
	return finder.Settings{
		Variant:      formatter.Variant(cfg.Finder.Variant),
		RadiusMeters: p.RadiusMeters,
		Limit:        p.Limit,
		Enriched:     p.Enriched,
		Export:       p.Export,
		MaxZipCodes:  cfg.Finder.MaxZipCodes,
	}
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			c.Logger.Error("Failed to close event publisher", slog.Any("error", err))
		}
	}
}
