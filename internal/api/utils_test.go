package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appMiddleware "github.com/FACorreiaa/go-gas-station-finder/app/middleware"
)

type payload struct {
	Query string `json:"query"`
}

func TestDecodeJSONBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"query":"90210"}`, ""},
		{"empty", ``, "must not be empty"},
		{"syntax", `{"query":}`, "badly-formed"},
		{"unknown field", `{"query":"x","radius":5}`, `unknown key "radius"`},
		{"wrong type", `{"query":5}`, `field "query"`},
		{"two values", `{"query":"a"}{"query":"b"}`, "single JSON value"},
		{"too large", `{"query":"` + strings.Repeat("a", maxBodyBytes) + `"}`, "must not be larger"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var dst payload
			err := DecodeJSONBody(w, r, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "90210", dst.Query)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestErrorResponse_IncludesSearchID(t *testing.T) {
	id := uuid.New()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(appMiddleware.WithSearchID(r.Context(), id))
	w := httptest.NewRecorder()

	ErrorResponse(w, r, http.StatusBadRequest, "bad input")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "bad input", resp.Error)
	assert.Equal(t, id.String(), resp.SearchID)
}

func TestWriteJSONResponse_NoContent(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONResponse(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNoContent, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
