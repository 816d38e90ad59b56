package router

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appMiddleware "github.com/FACorreiaa/go-gas-station-finder/app/middleware"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/finder"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/search"
	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

type stubFinder struct {
	seen []string
	ids  []uuid.UUID
}

func (s *stubFinder) Handle(ctx context.Context, text string) (*types.HandleResult, error) {
	s.seen = append(s.seen, text)
	if id, ok := appMiddleware.GetSearchIDFromContext(ctx); ok {
		s.ids = append(s.ids, id)
	}
	return &types.HandleResult{FinalText: "ok"}, nil
}

func (s *stubFinder) HandleWithProgress(ctx context.Context, text string, _ finder.ProgressFunc) (*types.HandleResult, error) {
	return s.Handle(ctx, text)
}

func setup() (http.Handler, *stubFinder) {
	svc := &stubFinder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := SetupRouter(&Config{
		SearchHandler: search.NewHandlerImpl(svc, logger),
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		}),
	})
	return r, svc
}

func TestPing(t *testing.T) {
	r, _ := setup()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestMetricsMounted(t *testing.T) {
	r, _ := setup()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# metrics", w.Body.String())
}

func TestSearchRoute_PropagatesSearchID(t *testing.T) {
	r, svc := setup()
	id := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(`{"query":"90210"}`))
	req.Header.Set(appMiddleware.SearchIDHeader, id.String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id.String(), w.Header().Get(appMiddleware.SearchIDHeader))
	assert.Equal(t, []string{"90210"}, svc.seen)
	assert.Equal(t, []uuid.UUID{id}, svc.ids)
}

func TestUnknownRoute(t *testing.T) {
	r, _ := setup()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
