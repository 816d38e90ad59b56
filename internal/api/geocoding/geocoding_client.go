package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/FACorreiaa/go-gas-station-finder/app/observability/metrics"
	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

const providerName = "google_geocoding"

// Client talks to the Google Geocoding API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *metrics.AppMetrics
}

// NewClient creates a geocoding client. baseURL is the full JSON endpoint,
// e.g. https://maps.googleapis.com/maps/api/geocode/json.
func NewClient(apiKey, baseURL string, timeout time.Duration, m *metrics.AppMetrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger,
		metrics:    m,
	}
}

// Geocode resolves free text to the first matching result. A non-OK provider
// status is not an error: it is returned in the response for the caller to judge.
func (c *Client) Geocode(ctx context.Context, req types.GeocodeRequest) (types.GeocodeResponse, error) {
	started := time.Now()

	params := url.Values{
		"address": {req.Address},
		"key":     {c.apiKey},
	}
	if req.Country != "" {
		params.Set("components", "country:"+req.Country)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return types.GeocodeResponse{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.RecordProviderRequest(ctx, providerName, "error", started)
		return types.GeocodeResponse{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.RecordProviderRequest(ctx, providerName, "error", started)
		return types.GeocodeResponse{}, fmt.Errorf("geocoding API error: status %d: %s", resp.StatusCode, body)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.RecordProviderRequest(ctx, providerName, "error", started)
		return types.GeocodeResponse{}, fmt.Errorf("decode response: %w", err)
	}

	out := types.GeocodeResponse{Status: payload.Status}
	if len(payload.Results) > 0 {
		r := payload.Results[0]
		out.Result = &types.GeocodeResult{
			Latitude:          r.Geometry.Location.Lat,
			Longitude:         r.Geometry.Location.Lng,
			FormattedAddress:  r.FormattedAddress,
			AddressComponents: r.AddressComponents,
		}
	}

	if payload.Status != "OK" {
		c.logger.WarnContext(ctx, "Geocoding returned non-OK status",
			slog.String("address", req.Address),
			slog.String("status", payload.Status),
			slog.String("error_message", payload.ErrorMessage))
	}
	c.metrics.RecordProviderRequest(ctx, providerName, outcome(payload.Status), started)
	return out, nil
}

func outcome(status string) string {
	switch status {
	case "OK":
		return "success"
	case "ZERO_RESULTS":
		return "empty"
	default:
		return "error"
	}
}

// Google Geocoding API response types.

type response struct {
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message,omitempty"`
	Results      []result `json:"results"`
}

type result struct {
	FormattedAddress  string                   `json:"formatted_address"`
	AddressComponents []types.AddressComponent `json:"address_components"`
	Geometry          struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}
