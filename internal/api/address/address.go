// Package address decomposes provider-formatted US addresses into postal fields.
package address

import (
	"regexp"
	"strings"

	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

var stateZipPattern = regexp.MustCompile(`([A-Z]{2})\s+(\d{5})`)

// Normalize splits a formatted address ("123 Main St, Springfield, IL 62701, USA")
// into street/city/state/postal fields. It never fails: malformed input yields a
// degraded record with "Unknown" city/state and the fallback postal code.
func Normalize(formatted, fallbackPostalCode string) types.AddressParts {
	formatted = strings.TrimSpace(formatted)
	if formatted == "" {
		return types.AddressParts{
			Street:     types.AddressNotAvailable,
			City:       types.UnknownField,
			State:      types.UnknownField,
			PostalCode: fallbackPostalCode,
		}
	}

	raw := strings.Split(formatted, ",")
	segments := make([]string, len(raw))
	for i, s := range raw {
		segments[i] = strings.TrimSpace(s)
	}
	// Google appends the country; it is not part of the street/city/state layout.
	if n := len(segments); n > 1 && isCountry(segments[n-1]) {
		segments = segments[:n-1]
	}

	if len(segments) < 3 {
		street := segments[0]
		if street == "" {
			street = types.AddressNotAvailable
		}
		return types.AddressParts{
			Street:     street,
			City:       types.UnknownField,
			State:      types.UnknownField,
			PostalCode: fallbackPostalCode,
		}
	}

	parts := types.AddressParts{
		Street: segments[0],
		City:   segments[1],
	}

	last := segments[len(segments)-1]
	if m := stateZipPattern.FindStringSubmatch(last); m != nil {
		parts.State = m[1]
		parts.PostalCode = m[2]
		return parts
	}

	if fields := strings.Fields(last); len(fields) > 0 {
		parts.State = fields[0]
	} else {
		parts.State = types.UnknownField
	}
	parts.PostalCode = fallbackPostalCode
	return parts
}

// Format renders parts back into the provider's formatted-address shape so that
// Normalize(Format(p), "") == p for well-formed parts.
func Format(parts types.AddressParts) string {
	return parts.Street + ", " + parts.City + ", " + parts.State + " " + parts.PostalCode + ", USA"
}

// ExtractStateZip pulls a "ST 12345" pair out of any free-text address.
func ExtractStateZip(formatted string) (state, postalCode string, ok bool) {
	matches := stateZipPattern.FindAllStringSubmatch(formatted, -1)
	if len(matches) == 0 {
		return "", "", false
	}
	m := matches[len(matches)-1]
	return m[1], m[2], true
}

func isCountry(segment string) bool {
	switch strings.ToUpper(segment) {
	case "USA", "US", "UNITED STATES", "UNITED STATES OF AMERICA":
		return true
	}
	return false
}
