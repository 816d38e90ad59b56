package finder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-gas-station-finder/app/observability/metrics"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/cache"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/classifier"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/events"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/formatter"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/location"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/stations"
	"github.com/FACorreiaa/go-gas-station-finder/internal/types"

	appMiddleware "github.com/FACorreiaa/go-gas-station-finder/app/middleware"
)

// ResultCache is the memo in front of resolve + search.
type ResultCache interface {
	GetOrLoad(ctx context.Context, key string, load cache.Loader) (types.CacheEntry, bool, error)
}

// ProgressFunc receives each status update as soon as it is produced.
type ProgressFunc func(status string)

// Settings are the variant knobs of the pipeline.
type Settings struct {
	Variant      formatter.Variant
	RadiusMeters int
	Limit        int
	Enriched     bool
	Export       bool
	MaxZipCodes  int
}

var _ Service = (*ServiceImpl)(nil)

// Service turns one chat message into status updates, a reply and an optional export.
type Service interface {
	Handle(ctx context.Context, text string) (*types.HandleResult, error)
	HandleWithProgress(ctx context.Context, text string, progress ProgressFunc) (*types.HandleResult, error)
}

type ServiceImpl struct {
	logger    *slog.Logger
	resolver  location.Service
	stations  stations.Service
	cache     ResultCache
	publisher events.Publisher
	metrics   *metrics.AppMetrics
	clock     clockwork.Clock
	settings  Settings
}

func NewServiceImpl(
	resolver location.Service,
	stationService stations.Service,
	resultCache ResultCache,
	publisher events.Publisher,
	m *metrics.AppMetrics,
	clock clockwork.Clock,
	settings Settings,
	logger *slog.Logger,
) *ServiceImpl {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if settings.Variant == "" {
		settings.Variant = formatter.VariantBulk
	}
	return &ServiceImpl{
		logger:    logger,
		resolver:  resolver,
		stations:  stationService,
		cache:     resultCache,
		publisher: publisher,
		metrics:   m,
		clock:     clock,
		settings:  settings,
	}
}

func (s *ServiceImpl) Handle(ctx context.Context, text string) (*types.HandleResult, error) {
	return s.HandleWithProgress(ctx, text, nil)
}

// HandleWithProgress runs the full pipeline. It never returns an error for user
// input problems; every failure becomes a reply text. A panic anywhere below is
// recovered and answered with a generic "try again" message.
func (s *ServiceImpl) HandleWithProgress(ctx context.Context, text string, progress ProgressFunc) (result *types.HandleResult, err error) {
	started := time.Now()
	ctx, span := otel.Tracer("FinderService").Start(ctx, "Handle", trace.WithAttributes(
		attribute.String("input", text),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Handle"))

	res := &types.HandleResult{}
	emit := func(status string) {
		res.StatusUpdates = append(res.StatusUpdates, status)
		if progress != nil {
			progress(status)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			perr := fmt.Errorf("panic in pipeline: %v", r)
			l.ErrorContext(ctx, "Recovered from pipeline panic", slog.Any("error", perr))
			span.RecordError(perr)
			span.SetStatus(codes.Error, "pipeline panic")
			s.metrics.RecordSearch(ctx, "error", started)
			res.FinalText = formatter.TryAgainText
			res.Export = nil
			result, err = res, nil
		}
	}()

	queries := s.Parse(text)
	if len(queries) == 0 {
		l.InfoContext(ctx, "Input not recognized", slog.String("input", text))
		s.publish(ctx, types.SearchEvent{
			QueryKey: classifier.Classify(text).CacheKey(),
			Kind:     types.QueryKindUnrecognized,
			Outcome:  types.SearchOutcomeUnrecognized,
		})
		s.metrics.RecordSearch(ctx, string(types.SearchOutcomeUnrecognized), started)
		span.SetStatus(codes.Ok, "unrecognized input")
		res.FinalText = formatter.ClassificationHelpText
		return res, nil
	}
	span.SetAttributes(attribute.Int("queries", len(queries)))

	emit(formatter.SearchingText(queries))

	results := make([]types.QueryResult, len(queries))
	for i, q := range queries {
		if len(queries) > 1 {
			emit(formatter.ProgressText(i+1, len(queries), q))
		}
		results[i] = s.Lookup(ctx, q)
	}
	res.Results = results

	total := formatter.TotalStations(results)
	if total == 0 {
		res.FinalText = formatter.NoStationsText(results)
		outcome := types.SearchOutcomeEmpty
		if allNotFound(results) {
			outcome = types.SearchOutcomeNotFound
		}
		s.metrics.RecordSearch(ctx, string(outcome), started)
		span.SetStatus(codes.Ok, "no stations")
		return res, nil
	}

	if s.settings.Export {
		emit(formatter.GeneratingText(total))
		export, exportErr := s.export(queries, results)
		if exportErr != nil {
			l.ErrorContext(ctx, "Failed to build export", slog.Any("error", exportErr))
			span.RecordError(exportErr)
			span.SetStatus(codes.Error, "export failed")
			s.metrics.RecordSearch(ctx, "error", started)
			res.FinalText = formatter.TryAgainText
			return res, nil
		}
		res.Export = export
	}

	res.FinalText = formatter.RenderText(results, s.settings.Variant)

	l.InfoContext(ctx, "Search completed",
		slog.Int("queries", len(queries)),
		slog.Int("stations", total),
		slog.Duration("elapsed", time.Since(started)))
	s.metrics.RecordSearch(ctx, string(types.SearchOutcomeFound), started)
	span.SetStatus(codes.Ok, "stations found")
	return res, nil
}

// Parse classifies text. A recognized single query wins; otherwise every ZIP code
// embedded in the text becomes its own query. Nil means nothing usable was found.
func (s *ServiceImpl) Parse(text string) []types.Query {
	if q := classifier.Classify(text); q.Recognized() {
		return []types.Query{q}
	}
	zips := classifier.ExtractZipCodes(text, s.settings.MaxZipCodes)
	if len(zips) == 0 {
		return nil
	}
	queries := make([]types.Query, len(zips))
	for i, z := range zips {
		queries[i] = classifier.ZipQuery(z)
	}
	return queries
}

// Lookup resolves and searches one query through the cache. Resolution failures
// are reported in the result, never as an error.
func (s *ServiceImpl) Lookup(ctx context.Context, q types.Query) types.QueryResult {
	ctx, span := otel.Tracer("FinderService").Start(ctx, "Lookup", trace.WithAttributes(
		attribute.String("query.key", q.CacheKey()),
	))
	defer span.End()

	result := types.QueryResult{Query: q}

	entry, hit, err := s.cache.GetOrLoad(ctx, q.CacheKey(), func(ctx context.Context) (types.CacheEntry, bool, error) {
		loc, err := s.resolver.Resolve(ctx, q)
		if err != nil {
			return types.CacheEntry{}, false, err
		}
		fallbackZip := loc.PostalCode
		if q.Kind == types.QueryKindZIP {
			fallbackZip = q.Key
		}
		found := s.stations.Search(ctx, loc.Latitude, loc.Longitude, stations.Options{
			RadiusMeters:       s.settings.RadiusMeters,
			Limit:              s.settings.Limit,
			Enriched:           s.settings.Enriched,
			FallbackPostalCode: fallbackZip,
		})
		return types.CacheEntry{Stations: found, LocationLabel: loc.Label()}, len(found) > 0, nil
	})

	outcome := types.SearchOutcomeFound
	switch {
	case err != nil:
		if !errors.Is(err, types.ErrLocationNotFound) {
			s.logger.ErrorContext(ctx, "Lookup failed", slog.String("query", q.CacheKey()), slog.Any("error", err))
		}
		span.RecordError(err)
		result.NotFound = true
		outcome = types.SearchOutcomeNotFound
	case len(entry.Stations) == 0:
		outcome = types.SearchOutcomeEmpty
	}

	result.LocationLabel = entry.LocationLabel
	result.Stations = entry.Stations
	result.CacheHit = hit
	span.SetAttributes(attribute.Bool("cache.hit", hit), attribute.Int("stations", len(entry.Stations)))

	s.publish(ctx, types.SearchEvent{
		QueryKey:     q.CacheKey(),
		Kind:         q.Kind,
		StationCount: len(entry.Stations),
		CacheHit:     hit,
		Outcome:      outcome,
	})
	return result
}

func (s *ServiceImpl) export(queries []types.Query, results []types.QueryResult) (*types.ExportFile, error) {
	keys := make([]string, len(queries))
	for i, q := range queries {
		keys[i] = q.Key
	}
	groups := make([]formatter.Group, 0, len(results))
	for _, r := range results {
		if len(r.Stations) == 0 {
			continue
		}
		groups = append(groups, formatter.Group{Key: r.Query.Key, Stations: r.Stations})
	}
	return formatter.ExportFile(keys, groups)
}

func (s *ServiceImpl) publish(ctx context.Context, event types.SearchEvent) {
	event.ID = uuid.New()
	if id, ok := appMiddleware.GetSearchIDFromContext(ctx); ok {
		event.SearchID = id
	}
	event.OccurredAt = s.clock.Now().UTC()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish search event", slog.String("query", event.QueryKey), slog.Any("error", err))
	}
}

func allNotFound(results []types.QueryResult) bool {
	for _, r := range results {
		if !r.NotFound {
			return false
		}
	}
	return true
}
