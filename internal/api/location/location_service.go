package location

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-gas-station-finder/internal/api/address"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/classifier"
	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

const (
	statusOK             = "OK"
	defaultCountry       = "US"
	defaultRequestBudget = 10 * time.Second
)

// ", Beverly Hills, CA 90210" or "Houston, TX, USA"
var cityStatePattern = regexp.MustCompile(`([^,]+),\s*([A-Z]{2})\b(?:\s+\d{5})?`)

// Geocoder is the outbound geocoding collaborator.
type Geocoder interface {
	Geocode(ctx context.Context, req types.GeocodeRequest) (types.GeocodeResponse, error)
}

var _ Service = (*ServiceImpl)(nil)

// Service resolves classified queries to coordinates and a place label.
type Service interface {
	Resolve(ctx context.Context, q types.Query) (*types.ResolvedLocation, error)
}

type ServiceImpl struct {
	logger   *slog.Logger
	geocoder Geocoder
	country  string
	timeout  time.Duration
}

func NewServiceImpl(geocoder Geocoder, country string, timeout time.Duration, logger *slog.Logger) *ServiceImpl {
	if country == "" {
		country = defaultCountry
	}
	if timeout <= 0 {
		timeout = defaultRequestBudget
	}
	return &ServiceImpl{
		logger:   logger,
		geocoder: geocoder,
		country:  country,
		timeout:  timeout,
	}
}

// Resolve geocodes q. Every failure (transport error, deadline, non-OK status,
// empty result) is reported as types.ErrLocationNotFound.
func (s *ServiceImpl) Resolve(ctx context.Context, q types.Query) (*types.ResolvedLocation, error) {
	ctx, span := otel.Tracer("LocationService").Start(ctx, "Resolve", trace.WithAttributes(
		attribute.String("query.kind", string(q.Kind)),
		attribute.String("query.key", q.Key),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Resolve"), slog.String("query", q.CacheKey()))

	if !q.Recognized() {
		span.SetStatus(codes.Error, "unrecognized query")
		return nil, types.ErrUnrecognizedQuery
	}

	req := types.GeocodeRequest{Address: GeocodeAddress(q), Country: s.country}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.geocoder.Geocode(callCtx, req)
	if err != nil {
		l.WarnContext(ctx, "Geocoding request failed", slog.String("address", req.Address), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "geocoding request failed")
		return nil, fmt.Errorf("%w: %q: %w", types.ErrLocationNotFound, req.Address, err)
	}

	if resp.Status != statusOK || resp.Result == nil {
		l.WarnContext(ctx, "Geocoder returned no usable result",
			slog.String("address", req.Address),
			slog.String("provider_status", resp.Status))
		span.SetAttributes(attribute.String("provider.status", resp.Status))
		span.SetStatus(codes.Error, "location not found")
		return nil, fmt.Errorf("%w: %q (status %s)", types.ErrLocationNotFound, req.Address, resp.Status)
	}

	loc := buildLocation(*resp.Result)
	if loc.PostalCode == "" && q.Kind == types.QueryKindZIP {
		loc.PostalCode = q.Key
	}

	l.DebugContext(ctx, "Location resolved",
		slog.String("label", loc.Label()),
		slog.Float64("lat", loc.Latitude),
		slog.Float64("lng", loc.Longitude))
	span.SetStatus(codes.Ok, "location resolved")
	return loc, nil
}

// GeocodeAddress rewrites a query into the free-text address sent to the geocoder.
func GeocodeAddress(q types.Query) string {
	switch q.Kind {
	case types.QueryKindZIP:
		return q.Key + ", USA"
	case types.QueryKindState:
		if city, ok := RepresentativeCity(q.State); ok {
			return city + ", " + q.State + ", USA"
		}
		return q.State + ", USA"
	case types.QueryKindCityState:
		return q.City + ", " + q.State + ", USA"
	default:
		return q.Key
	}
}

// buildLocation fills city and state from the structured components first, then
// from the formatted address, then falls back to "Unknown".
func buildLocation(r types.GeocodeResult) *types.ResolvedLocation {
	loc := &types.ResolvedLocation{
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		FormattedAddress: r.FormattedAddress,
	}

	loc.City = componentValue(r.AddressComponents, false, "locality", "postal_town", "sublocality", "administrative_area_level_3")
	loc.State = componentValue(r.AddressComponents, true, "administrative_area_level_1")
	loc.PostalCode = componentValue(r.AddressComponents, false, "postal_code")

	if loc.City == "" || loc.State == "" {
		city, state := cityStateFromFormatted(r.FormattedAddress)
		if loc.City == "" {
			loc.City = city
		}
		if loc.State == "" {
			loc.State = state
		}
	}
	if loc.PostalCode == "" {
		if _, zip, ok := address.ExtractStateZip(r.FormattedAddress); ok {
			loc.PostalCode = zip
		}
	}

	if loc.City == "" {
		loc.City = types.UnknownField
	}
	if loc.State == "" {
		loc.State = types.UnknownField
	}
	return loc
}

func componentValue(components []types.AddressComponent, short bool, wanted ...string) string {
	for _, w := range wanted {
		for _, c := range components {
			for _, t := range c.Types {
				if t != w {
					continue
				}
				if short && c.ShortName != "" {
					return c.ShortName
				}
				return c.LongName
			}
		}
	}
	return ""
}

func cityStateFromFormatted(formatted string) (city, state string) {
	for _, m := range cityStatePattern.FindAllStringSubmatch(formatted, -1) {
		if classifier.IsStateCode(m[2]) {
			return strings.TrimSpace(m[1]), m[2]
		}
	}
	return "", ""
}
