package location

// representativeCities maps each state code to the locality searched when a user
// sends a bare state code. The largest city is used, not the capital.
var representativeCities = map[string]string{
	"AL": "Birmingham", "AK": "Anchorage", "AZ": "Phoenix", "AR": "Little Rock",
	"CA": "Los Angeles", "CO": "Denver", "CT": "Bridgeport", "DE": "Wilmington",
	"DC": "Washington", "FL": "Jacksonville", "GA": "Atlanta", "HI": "Honolulu",
	"ID": "Boise", "IL": "Chicago", "IN": "Indianapolis", "IA": "Des Moines",
	"KS": "Wichita", "KY": "Louisville", "LA": "New Orleans", "ME": "Portland",
	"MD": "Baltimore", "MA": "Boston", "MI": "Detroit", "MN": "Minneapolis",
	"MS": "Jackson", "MO": "Kansas City", "MT": "Billings", "NE": "Omaha",
	"NV": "Las Vegas", "NH": "Manchester", "NJ": "Newark", "NM": "Albuquerque",
	"NY": "New York", "NC": "Charlotte", "ND": "Fargo", "OH": "Columbus",
	"OK": "Oklahoma City", "OR": "Portland", "PA": "Philadelphia", "RI": "Providence",
	"SC": "Charleston", "SD": "Sioux Falls", "TN": "Nashville", "TX": "Houston",
	"UT": "Salt Lake City", "VT": "Burlington", "VA": "Virginia Beach", "WA": "Seattle",
	"WV": "Charleston", "WI": "Milwaukee", "WY": "Cheyenne",
}

// RepresentativeCity returns the locality used for a state-only query.
func RepresentativeCity(state string) (string, bool) {
	city, ok := representativeCities[state]
	return city, ok
}
