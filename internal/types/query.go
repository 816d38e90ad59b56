package types

import "strings"

// QueryKind is the classification bucket assigned to raw user input.
type QueryKind string

const (
	QueryKindZIP          QueryKind = "zip"
	QueryKindState        QueryKind = "state"
	QueryKindCityState    QueryKind = "citystate"
	QueryKindUnrecognized QueryKind = "unrecognized"
)

// Query is a classified location query. It is immutable once built by the classifier.
type Query struct {
	Kind QueryKind `json:"kind"`
	// Raw is the text exactly as the user typed it.
	Raw string `json:"raw"`
	// Key is the case/whitespace-normalized text used for geocoding and caching.
	Key   string `json:"key"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
}

// CacheKey composes the query kind with its normalized text.
func (q Query) CacheKey() string {
	return string(q.Kind) + ":" + q.Key
}

// Recognized reports whether the classifier matched any pattern.
func (q Query) Recognized() bool {
	return q.Kind != "" && q.Kind != QueryKindUnrecognized
}

// DisplayName renders the query for status and preview messages.
func (q Query) DisplayName() string {
	switch q.Kind {
	case QueryKindZIP:
		return "ZIP " + q.Key
	case QueryKindState:
		return "State " + q.Key
	case QueryKindCityState:
		return q.City + ", " + q.State
	default:
		return strings.TrimSpace(q.Raw)
	}
}
