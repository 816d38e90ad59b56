package appMiddleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const SearchIDKey contextKey = "searchID"

// SearchIDHeader lets callers correlate a search across logs and emitted events.
const SearchIDHeader = "X-Search-ID"

// SearchID reads X-Search-ID from the request, generating a UUID when it is
// missing or malformed, stores it in the context and echoes it on the response.
func SearchID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.Header.Get(SearchIDHeader))
		if err != nil {
			id = uuid.New()
		}

		w.Header().Set(SearchIDHeader, id.String())
		ctx := context.WithValue(r.Context(), SearchIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSearchIDFromContext returns the search ID stored by SearchID.
func GetSearchIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(SearchIDKey).(uuid.UUID)
	return id, ok
}

// WithSearchID stores id in ctx; transports without HTTP headers use it directly.
func WithSearchID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, SearchIDKey, id)
}
