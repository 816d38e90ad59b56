package types

import "time"

// CacheEntry is a computed result set for one query key. Entries are replaced
// wholesale on refresh and never mutated in place.
type CacheEntry struct {
	Key           string          `json:"key"`
	Stations      []StationRecord `json:"stations"`
	LocationLabel string          `json:"location_label"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Fresh reports whether the entry is still inside its time-to-live at now.
func (e CacheEntry) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.CreatedAt) < ttl
}
