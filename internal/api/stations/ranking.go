package stations

import (
	"sort"

	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

// Dedup drops repeated place ids; the first occurrence wins.
func Dedup(places []types.PlaceSummary) []types.PlaceSummary {
	seen := make(map[string]struct{}, len(places))
	out := make([]types.PlaceSummary, 0, len(places))
	for _, p := range places {
		if p.PlaceID != "" {
			if _, ok := seen[p.PlaceID]; ok {
				continue
			}
			seen[p.PlaceID] = struct{}{}
		}
		out = append(out, p)
	}
	return out
}

// Rank orders places by rating then rating count, both descending, with absent
// values counted as zero. Remaining ties keep provider order.
func Rank(places []types.PlaceSummary) []types.PlaceSummary {
	ranked := make([]types.PlaceSummary, len(places))
	copy(ranked, places)
	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := ratingOf(ranked[i]), ratingOf(ranked[j])
		if ri != rj {
			return ri > rj
		}
		return countOf(ranked[i]) > countOf(ranked[j])
	})
	return ranked
}

// Select dedups, ranks and truncates to limit (no truncation when limit <= 0).
func Select(places []types.PlaceSummary, limit int) []types.PlaceSummary {
	ranked := Rank(Dedup(places))
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func ratingOf(p types.PlaceSummary) float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

func countOf(p types.PlaceSummary) int {
	if p.RatingCount == nil {
		return 0
	}
	return *p.RatingCount
}
