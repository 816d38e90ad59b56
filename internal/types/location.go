package types

// UnknownField is the placeholder for address parts the provider did not return.
const UnknownField = "Unknown"

// ResolvedLocation is the outcome of a successful geocode.
type ResolvedLocation struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	PostalCode       string  `json:"postal_code,omitempty"`
	FormattedAddress string  `json:"formatted_address"`
}

// Label is the human-readable place name; it falls back to the formatted address
// when neither city nor state could be determined.
func (l ResolvedLocation) Label() string {
	city, state := l.City, l.State
	if city == "" {
		city = UnknownField
	}
	if state == "" {
		state = UnknownField
	}
	if city == UnknownField && state == UnknownField {
		if l.FormattedAddress != "" {
			return l.FormattedAddress
		}
		return UnknownField
	}
	return city + ", " + state
}

// GeocodeRequest is sent to the geocoding provider.
type GeocodeRequest struct {
	Address string
	Country string
}

// AddressComponent mirrors one structured component of a geocoding result.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// GeocodeResult is the first result of a geocoding response.
type GeocodeResult struct {
	Latitude          float64
	Longitude         float64
	FormattedAddress  string
	AddressComponents []AddressComponent
}

// GeocodeResponse is the provider reply: a status code and at most one result.
type GeocodeResponse struct {
	Status string
	Result *GeocodeResult
}
