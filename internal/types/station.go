package types

// AddressNotAvailable is used when neither search nor details produced an address.
const AddressNotAvailable = "Address not available"

// AddressParts is a formatted address decomposed into US postal fields.
type AddressParts struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// StationRecord is one fuel retailer as presented to the user.
type StationRecord struct {
	PlaceID       string   `json:"place_id"`
	Name          string   `json:"name"`
	StreetAddress string   `json:"street_address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	PostalCode    string   `json:"postal_code"`
	FullAddress   string   `json:"full_address"`
	Rating        *float64 `json:"rating,omitempty"`
	RatingCount   *int     `json:"rating_count,omitempty"`
	PriceLevel    *int     `json:"price_level,omitempty"`
	HoursToday    string   `json:"hours_today,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Website       string   `json:"website,omitempty"`
}

// RatingValue returns the rating, treating an absent rating as zero.
func (s StationRecord) RatingValue() float64 {
	if s.Rating == nil {
		return 0
	}
	return *s.Rating
}

// RatingCountValue returns the number of ratings, treating absence as zero.
func (s StationRecord) RatingCountValue() int {
	if s.RatingCount == nil {
		return 0
	}
	return *s.RatingCount
}

// NearbyRequest asks the places provider for businesses around a point.
type NearbyRequest struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	Category     string
}

// PlaceSummary is one entry of a nearby-search response.
type PlaceSummary struct {
	PlaceID     string   `json:"place_id"`
	Name        string   `json:"name"`
	Rating      *float64 `json:"rating,omitempty"`
	RatingCount *int     `json:"user_ratings_total,omitempty"`
	PriceLevel  *int     `json:"price_level,omitempty"`
	Vicinity    string   `json:"vicinity"`
}

// PlaceDetails is the subset of a place-details response the finder uses.
type PlaceDetails struct {
	FormattedAddress string
	Phone            string
	Website          string
	PriceLevel       *int
	// WeekdayText holds one "Monday: 6:00 AM – 10:00 PM" line per day, Monday first.
	WeekdayText []string
}
