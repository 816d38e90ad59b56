package appMiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchID(t *testing.T) {
	var seen uuid.UUID
	h := SearchID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetSearchIDFromContext(r.Context())
		require.True(t, ok)
		seen = id
	}))

	t.Run("keeps a valid incoming id", func(t *testing.T) {
		want := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(SearchIDHeader, want.String())
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, want, seen)
		assert.Equal(t, want.String(), rec.Header().Get(SearchIDHeader))
	})

	t.Run("generates an id when missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEqual(t, uuid.Nil, seen)
		assert.Equal(t, seen.String(), rec.Header().Get(SearchIDHeader))
	})

	t.Run("replaces a malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(SearchIDHeader, "not-a-uuid")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.NotEqual(t, "not-a-uuid", rec.Header().Get(SearchIDHeader))
	})
}
