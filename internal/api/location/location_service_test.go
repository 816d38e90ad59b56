package location

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, req types.GeocodeRequest) (types.GeocodeResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(types.GeocodeResponse), args.Error(1)
}

func setupResolver() (*ServiceImpl, *MockGeocoder) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	geocoder := new(MockGeocoder)
	return NewServiceImpl(geocoder, "US", time.Second, logger), geocoder
}

func TestGeocodeAddress(t *testing.T) {
	tests := []struct {
		name  string
		query types.Query
		want  string
	}{
		{"zip", types.Query{Kind: types.QueryKindZIP, Key: "90210"}, "90210, USA"},
		{"state", types.Query{Kind: types.QueryKindState, Key: "TX", State: "TX"}, "Houston, TX, USA"},
		{"city state", types.Query{Kind: types.QueryKindCityState, Key: "Austin TX", City: "Austin", State: "TX"}, "Austin, TX, USA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GeocodeAddress(tt.query))
		})
	}
}

func TestRepresentativeCityCoversEveryState(t *testing.T) {
	assert.Len(t, representativeCities, 51)
}

func TestResolve_StructuredComponents(t *testing.T) {
	svc, geocoder := setupResolver()
	q := types.Query{Kind: types.QueryKindZIP, Raw: "90210", Key: "90210"}

	geocoder.On("Geocode", mock.Anything, types.GeocodeRequest{Address: "90210, USA", Country: "US"}).
		Return(types.GeocodeResponse{
			Status: "OK",
			Result: &types.GeocodeResult{
				Latitude:         34.09,
				Longitude:        -118.41,
				FormattedAddress: "Beverly Hills, CA 90210, USA",
				AddressComponents: []types.AddressComponent{
					{LongName: "90210", ShortName: "90210", Types: []string{"postal_code"}},
					{LongName: "Beverly Hills", ShortName: "Beverly Hills", Types: []string{"locality", "political"}},
					{LongName: "California", ShortName: "CA", Types: []string{"administrative_area_level_1", "political"}},
				},
			},
		}, nil).Once()

	loc, err := svc.Resolve(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 34.09, loc.Latitude)
	assert.Equal(t, -118.41, loc.Longitude)
	assert.Equal(t, "Beverly Hills", loc.City)
	assert.Equal(t, "CA", loc.State)
	assert.Equal(t, "90210", loc.PostalCode)
	assert.Equal(t, "Beverly Hills, CA", loc.Label())
	geocoder.AssertExpectations(t)
}

func TestResolve_FallsBackToFormattedAddress(t *testing.T) {
	svc, geocoder := setupResolver()
	q := types.Query{Kind: types.QueryKindCityState, Key: "Austin TX", City: "Austin", State: "TX"}

	geocoder.On("Geocode", mock.Anything, mock.Anything).
		Return(types.GeocodeResponse{
			Status: "OK",
			Result: &types.GeocodeResult{FormattedAddress: "Austin, TX 78701, USA"},
		}, nil).Once()

	loc, err := svc.Resolve(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, "Austin", loc.City)
	assert.Equal(t, "TX", loc.State)
	assert.Equal(t, "78701", loc.PostalCode)
}

func TestResolve_UnknownWhenNothingMatches(t *testing.T) {
	svc, geocoder := setupResolver()
	q := types.Query{Kind: types.QueryKindState, Key: "AK", State: "AK"}

	geocoder.On("Geocode", mock.Anything, mock.Anything).
		Return(types.GeocodeResponse{
			Status: "OK",
			Result: &types.GeocodeResult{FormattedAddress: "somewhere remote"},
		}, nil).Once()

	loc, err := svc.Resolve(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, types.UnknownField, loc.City)
	assert.Equal(t, types.UnknownField, loc.State)
	assert.Equal(t, "somewhere remote", loc.Label())
}

func TestResolve_NotFound(t *testing.T) {
	q := types.Query{Kind: types.QueryKindCityState, Key: "Atlantis FL", City: "Atlantis", State: "FL"}

	tests := []struct {
		name string
		resp types.GeocodeResponse
		err  error
	}{
		{"zero results", types.GeocodeResponse{Status: "ZERO_RESULTS"}, nil},
		{"ok without result", types.GeocodeResponse{Status: "OK"}, nil},
		{"request denied", types.GeocodeResponse{Status: "REQUEST_DENIED"}, nil},
		{"transport error", types.GeocodeResponse{}, errors.New("connection refused")},
		{"deadline", types.GeocodeResponse{}, context.DeadlineExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, geocoder := setupResolver()
			geocoder.On("Geocode", mock.Anything, mock.Anything).Return(tt.resp, tt.err).Once()

			loc, err := svc.Resolve(context.Background(), q)
			require.Error(t, err)
			assert.Nil(t, loc)
			assert.True(t, errors.Is(err, types.ErrLocationNotFound))
			geocoder.AssertExpectations(t)
		})
	}
}

func TestResolve_UnrecognizedSkipsGeocoder(t *testing.T) {
	svc, geocoder := setupResolver()

	_, err := svc.Resolve(context.Background(), types.Query{Kind: types.QueryKindUnrecognized, Key: "ZZ"})
	assert.ErrorIs(t, err, types.ErrUnrecognizedQuery)
	geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
}

func TestResolve_AppliesDeadline(t *testing.T) {
	svc, geocoder := setupResolver()
	q := types.Query{Kind: types.QueryKindZIP, Key: "10001"}

	geocoder.On("Geocode", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), mock.Anything).Return(types.GeocodeResponse{Status: "ZERO_RESULTS"}, nil).Once()

	_, err := svc.Resolve(context.Background(), q)
	assert.ErrorIs(t, err, types.ErrLocationNotFound)
	geocoder.AssertExpectations(t)
}
