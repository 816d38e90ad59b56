package stations

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-gas-station-finder/internal/api/address"
	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

const (
	// Category is the places type searched for.
	Category = "gas_station"

	unknownStation     = "Unknown Station"
	defaultConcurrency = 4
	defaultTimeout     = 10 * time.Second
)

var (
	basicFields    = []string{"formatted_address"}
	enrichedFields = []string{"formatted_address", "formatted_phone_number", "website", "opening_hours", "price_level"}
)

// PlacesProvider is the outbound places collaborator.
type PlacesProvider interface {
	NearbySearch(ctx context.Context, req types.NearbyRequest) ([]types.PlaceSummary, error)
	Details(ctx context.Context, placeID string, fields []string) (types.PlaceDetails, error)
}

// Options are the per-variant search knobs.
type Options struct {
	RadiusMeters int
	Limit        int
	// Enriched also fetches phone, website, opening hours and price level.
	Enriched bool
	// FallbackPostalCode is used when a station address carries no ZIP.
	FallbackPostalCode string
}

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	Search(ctx context.Context, lat, lng float64, opts Options) []types.StationRecord
}

type ServiceImpl struct {
	logger      *slog.Logger
	places      PlacesProvider
	clock       clockwork.Clock
	timeout     time.Duration
	concurrency int
}

func NewServiceImpl(places PlacesProvider, timeout time.Duration, concurrency int, clock clockwork.Clock, logger *slog.Logger) *ServiceImpl {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ServiceImpl{
		logger:      logger,
		places:      places,
		clock:       clock,
		timeout:     timeout,
		concurrency: concurrency,
	}
}

// Search returns at most opts.Limit stations around (lat, lng), best rated first.
// Provider failures degrade to an empty or partially enriched result.
func (s *ServiceImpl) Search(ctx context.Context, lat, lng float64, opts Options) []types.StationRecord {
	ctx, span := otel.Tracer("StationService").Start(ctx, "Search", trace.WithAttributes(
		attribute.Float64("lat", lat),
		attribute.Float64("lng", lng),
		attribute.Int("radius", opts.RadiusMeters),
		attribute.Int("limit", opts.Limit),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Search"))

	searchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	found, err := s.places.NearbySearch(searchCtx, types.NearbyRequest{
		Latitude:     lat,
		Longitude:    lng,
		RadiusMeters: opts.RadiusMeters,
		Category:     Category,
	})
	cancel()
	if err != nil {
		l.WarnContext(ctx, "Nearby search failed", slog.Float64("lat", lat), slog.Float64("lng", lng), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "nearby search failed")
		return []types.StationRecord{}
	}

	selected := Select(found, opts.Limit)
	span.SetAttributes(attribute.Int("candidates", len(found)), attribute.Int("selected", len(selected)))

	records := s.enrich(ctx, selected, opts)

	l.DebugContext(ctx, "Stations found", slog.Int("count", len(records)))
	span.SetStatus(codes.Ok, "stations found")
	return records
}

// enrich looks up details for every selected place concurrently. Results keep the
// ranked order; a failed lookup falls back to the search vicinity.
func (s *ServiceImpl) enrich(ctx context.Context, selected []types.PlaceSummary, opts Options) []types.StationRecord {
	fields := basicFields
	if opts.Enriched {
		fields = enrichedFields
	}

	records := make([]types.StationRecord, len(selected))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, place := range selected {
		g.Go(func() error {
			var details *types.PlaceDetails
			if place.PlaceID != "" {
				callCtx, cancel := context.WithTimeout(gctx, s.timeout)
				d, err := s.places.Details(callCtx, place.PlaceID, fields)
				cancel()
				if err != nil {
					s.logger.WarnContext(ctx, "Place details failed, using vicinity",
						slog.String("place_id", place.PlaceID), slog.Any("error", err))
				} else {
					details = &d
				}
			}
			records[i] = s.buildRecord(place, details, opts)
			return nil
		})
	}
	_ = g.Wait()
	return records
}

func (s *ServiceImpl) buildRecord(place types.PlaceSummary, details *types.PlaceDetails, opts Options) types.StationRecord {
	full := place.Vicinity
	if details != nil && details.FormattedAddress != "" {
		full = details.FormattedAddress
	}
	parts := address.Normalize(full, opts.FallbackPostalCode)
	if strings.TrimSpace(full) == "" {
		full = types.AddressNotAvailable
	}

	name := strings.TrimSpace(place.Name)
	if name == "" {
		name = unknownStation
	}

	rec := types.StationRecord{
		PlaceID:       place.PlaceID,
		Name:          name,
		StreetAddress: parts.Street,
		City:          parts.City,
		State:         parts.State,
		PostalCode:    parts.PostalCode,
		FullAddress:   full,
		Rating:        place.Rating,
		RatingCount:   place.RatingCount,
		PriceLevel:    place.PriceLevel,
	}

	if details != nil && opts.Enriched {
		rec.Phone = details.Phone
		rec.Website = details.Website
		rec.HoursToday = HoursFor(details.WeekdayText, s.clock.Now().Weekday())
		if details.PriceLevel != nil {
			rec.PriceLevel = details.PriceLevel
		}
	}
	return rec
}

// HoursFor picks the line for day out of Monday-first weekday text and strips
// the "Monday: " prefix.
func HoursFor(weekdayText []string, day time.Weekday) string {
	if len(weekdayText) != 7 {
		return ""
	}
	line := weekdayText[(int(day)+6)%7]
	if _, hours, ok := strings.Cut(line, ": "); ok {
		return strings.TrimSpace(hours)
	}
	return strings.TrimSpace(line)
}
