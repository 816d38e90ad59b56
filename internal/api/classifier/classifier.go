// Package classifier turns raw chat text into typed location queries.
// Everything here is a pure function of the input and the static state-code set.
package classifier

import (
	"regexp"
	"strings"

	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

// DefaultMaxZipCodes caps how many ZIP codes a single message may carry.
const DefaultMaxZipCodes = 10

var (
	zipPattern       = regexp.MustCompile(`^\d{5}$`)
	statePattern     = regexp.MustCompile(`^[A-Z]{2}$`)
	cityStatePattern = regexp.MustCompile(`^([A-Z][A-Z.'\-]*(?: [A-Z][A-Z.'\-]*)*),? ([A-Z]{2})$`)
	zipRunPattern    = regexp.MustCompile(`\b\d{5}\b`)
)

// Classify applies the rules in order (ZIP, State, City-State) and returns the
// first match, or an Unrecognized query.
func Classify(text string) types.Query {
	raw := text
	compact := strings.Join(strings.Fields(text), " ")
	upper := strings.ToUpper(compact)

	switch {
	case zipPattern.MatchString(compact):
		return types.Query{Kind: types.QueryKindZIP, Raw: raw, Key: compact}

	case statePattern.MatchString(upper):
		if IsStateCode(upper) {
			return types.Query{Kind: types.QueryKindState, Raw: raw, Key: upper, State: upper}
		}
		return unrecognized(raw, upper)
	}

	if m := cityStatePattern.FindStringSubmatch(upper); m != nil && IsStateCode(m[2]) {
		city := titleCase(m[1])
		state := m[2]
		return types.Query{
			Kind:  types.QueryKindCityState,
			Raw:   raw,
			Key:   city + " " + state,
			City:  city,
			State: state,
		}
	}

	return unrecognized(raw, upper)
}

func unrecognized(raw, upper string) types.Query {
	return types.Query{Kind: types.QueryKindUnrecognized, Raw: raw, Key: upper}
}

// ExtractZipCodes finds every standalone 5-digit run in text, de-duplicates
// them keeping first-seen order and truncates to limit (DefaultMaxZipCodes when
// limit <= 0).
func ExtractZipCodes(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultMaxZipCodes
	}

	matches := zipRunPattern.FindAllString(strings.TrimSpace(text), -1)
	seen := make(map[string]struct{}, len(matches))
	zips := make([]string, 0, len(matches))
	for _, zip := range matches {
		if _, dup := seen[zip]; dup {
			continue
		}
		seen[zip] = struct{}{}
		zips = append(zips, zip)
		if len(zips) == limit {
			break
		}
	}
	return zips
}

// ZipQuery builds a ZIP query for a code already known to be five digits.
func ZipQuery(zip string) types.Query {
	return types.Query{Kind: types.QueryKindZIP, Raw: zip, Key: zip}
}

// titleCase upper-cases the first letter of every word and of every
// hyphen-separated part, lower-casing the rest.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		parts := strings.Split(w, "-")
		for j, p := range parts {
			if p == "" {
				continue
			}
			parts[j] = strings.ToUpper(p[:1]) + p[1:]
		}
		words[i] = strings.Join(parts, "-")
	}
	return strings.Join(words, " ")
}
