package types

import (
	"time"

	"github.com/google/uuid"
)

// SearchOutcome labels how a single query finished.
type SearchOutcome string

const (
	SearchOutcomeFound        SearchOutcome = "found"
	SearchOutcomeEmpty        SearchOutcome = "empty"
	SearchOutcomeNotFound     SearchOutcome = "not_found"
	SearchOutcomeUnrecognized SearchOutcome = "unrecognized"
)

// SearchEvent is published once per query handled by the finder.
type SearchEvent struct {
	ID           uuid.UUID     `json:"id"`
	SearchID     uuid.UUID     `json:"search_id"`
	QueryKey     string        `json:"query_key"`
	Kind         QueryKind     `json:"kind"`
	StationCount int           `json:"station_count"`
	CacheHit     bool          `json:"cache_hit"`
	Outcome      SearchOutcome `json:"outcome"`
	OccurredAt   time.Time     `json:"occurred_at"`
}
