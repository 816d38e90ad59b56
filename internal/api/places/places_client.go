package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/FACorreiaa/go-gas-station-finder/app/observability/metrics"
	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

const (
	providerNearby  = "google_places_nearby"
	providerDetails = "google_places_details"
)

// Client talks to the Google Places Nearby Search and Place Details APIs.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *metrics.AppMetrics
}

// NewClient creates a places client. baseURL is the API root, e.g.
// https://maps.googleapis.com/maps/api/place.
func NewClient(apiKey, baseURL string, timeout time.Duration, m *metrics.AppMetrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
		metrics:    m,
	}
}

// NearbySearch lists places of req.Category around a point in provider order.
// ZERO_RESULTS yields an empty slice; any other non-OK status is an error
// wrapping types.ErrProviderStatus.
func (c *Client) NearbySearch(ctx context.Context, req types.NearbyRequest) ([]types.PlaceSummary, error) {
	started := time.Now()
	params := url.Values{
		"location": {fmt.Sprintf("%.6f,%.6f", req.Latitude, req.Longitude)},
		"radius":   {strconv.Itoa(req.RadiusMeters)},
		"type":     {req.Category},
		"key":      {c.apiKey},
	}

	var payload nearbyResponse
	if err := c.get(ctx, "/nearbysearch/json", params, &payload); err != nil {
		c.metrics.RecordProviderRequest(ctx, providerNearby, "error", started)
		return nil, fmt.Errorf("nearby search: %w", err)
	}

	switch payload.Status {
	case "OK":
		c.metrics.RecordProviderRequest(ctx, providerNearby, "success", started)
		return payload.Results, nil
	case "ZERO_RESULTS":
		c.metrics.RecordProviderRequest(ctx, providerNearby, "empty", started)
		return []types.PlaceSummary{}, nil
	default:
		c.metrics.RecordProviderRequest(ctx, providerNearby, "error", started)
		return nil, fmt.Errorf("nearby search %s: %w: %s", payload.Status, types.ErrProviderStatus, payload.ErrorMessage)
	}
}

// Details fetches the requested fields for one place.
func (c *Client) Details(ctx context.Context, placeID string, fields []string) (types.PlaceDetails, error) {
	started := time.Now()
	params := url.Values{
		"place_id": {placeID},
		"fields":   {strings.Join(fields, ",")},
		"key":      {c.apiKey},
	}

	var payload detailsResponse
	if err := c.get(ctx, "/details/json", params, &payload); err != nil {
		c.metrics.RecordProviderRequest(ctx, providerDetails, "error", started)
		return types.PlaceDetails{}, fmt.Errorf("place details: %w", err)
	}
	if payload.Status != "OK" {
		c.metrics.RecordProviderRequest(ctx, providerDetails, "error", started)
		return types.PlaceDetails{}, fmt.Errorf("place details %s: %w: %s", payload.Status, types.ErrProviderStatus, payload.ErrorMessage)
	}
	c.metrics.RecordProviderRequest(ctx, providerDetails, "success", started)

	r := payload.Result
	details := types.PlaceDetails{
		FormattedAddress: r.FormattedAddress,
		Phone:            r.FormattedPhoneNumber,
		Website:          r.Website,
		PriceLevel:       r.PriceLevel,
	}
	if r.OpeningHours != nil {
		details.WeekdayText = r.OpeningHours.WeekdayText
	}
	return details, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("places API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Google Places API response types.

type nearbyResponse struct {
	Status       string               `json:"status"`
	ErrorMessage string               `json:"error_message,omitempty"`
	Results      []types.PlaceSummary `json:"results"`
}

type detailsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Result       struct {
		FormattedAddress     string `json:"formatted_address"`
		FormattedPhoneNumber string `json:"formatted_phone_number"`
		Website              string `json:"website"`
		PriceLevel           *int   `json:"price_level"`
		OpeningHours         *struct {
			WeekdayText []string `json:"weekday_text"`
		} `json:"opening_hours"`
	} `json:"result"`
}
