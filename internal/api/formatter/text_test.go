package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

func TestStars(t *testing.T) {
	tests := []struct {
		rating float64
		want   int
	}{
		{0, 0}, {0.4, 0}, {2.5, 3}, {4.4, 4}, {4.6, 5}, {5, 5}, {7, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, strings.Count(Stars(tt.rating), "⭐"), "rating %.1f", tt.rating)
	}
}

func TestPriceTier(t *testing.T) {
	assert.Equal(t, "", PriceTier(0))
	assert.Equal(t, "$$", PriceTier(2))
	assert.Equal(t, "$$$$", PriceTier(9))
}

func zipResult(zip, label string, stations ...types.StationRecord) types.QueryResult {
	return types.QueryResult{
		Query:         types.Query{Kind: types.QueryKindZIP, Raw: zip, Key: zip},
		LocationLabel: label,
		Stations:      stations,
	}
}

func TestRenderText_Bulk(t *testing.T) {
	results := []types.QueryResult{
		zipResult("90210", "Beverly Hills, CA",
			types.StationRecord{Name: "Shell", StreetAddress: "1 A St", City: "Beverly Hills", State: "CA", PostalCode: "90210"},
			types.StationRecord{Name: "Mobil", StreetAddress: "2 B St", City: "Beverly Hills", State: "CA", PostalCode: "90210"},
		),
		zipResult("10001", "New York, NY",
			types.StationRecord{Name: "BP", StreetAddress: "3 C St", City: "New York", State: "NY", PostalCode: "10001"},
		),
	}

	text := RenderText(results, VariantBulk)

	assert.Contains(t, text, "Total Stations: 3")
	assert.Contains(t, text, "Locations: 2")
	assert.Contains(t, text, "Beverly Hills, CA")
	assert.Contains(t, text, "1. 🏪 *Shell*")
	assert.Contains(t, text, "2. 🏪 *Mobil*")
	assert.Contains(t, text, "3. 🏪 *BP*", "station numbering runs across sections")
}

func TestRenderText_RankedOptionalFields(t *testing.T) {
	results := []types.QueryResult{zipResult("78701", "Austin, TX",
		types.StationRecord{
			Name:        "Costco Gas",
			FullAddress: "1 Costco Way, Austin, TX 78701, USA",
			Rating:      ptrF(4.6),
			RatingCount: ptrI(1500),
			HoursToday:  "6:00 AM – 9:30 PM",
			Phone:       "(512) 555-0101",
			PriceLevel:  ptrI(2),
		},
		types.StationRecord{Name: "Unrated", FullAddress: "somewhere"},
	)}

	text := RenderText(results, VariantRanked)

	assert.Contains(t, text, "Top gas stations near Austin, TX")
	assert.Contains(t, text, "⭐⭐⭐⭐⭐ 4.6 (1500 reviews)")
	assert.Contains(t, text, "Today: 6:00 AM – 9:30 PM")
	assert.Contains(t, text, "📞 (512) 555-0101")
	assert.Contains(t, text, "💲 $$")
	assert.Contains(t, text, "2. *Unrated*")
	assert.Equal(t, 1, strings.Count(text, "reviews"))
}

func TestRenderText_NoResults(t *testing.T) {
	results := []types.QueryResult{zipResult("99999", "Nowhere, ZZ")}
	for _, v := range []Variant{VariantBulk, VariantRanked} {
		text := RenderText(results, v)
		assert.Contains(t, text, "NO GAS STATIONS FOUND")
		assert.Contains(t, text, "99999")
	}
}

func TestRenderText_SingleNotFound(t *testing.T) {
	q := types.Query{Kind: types.QueryKindCityState, Key: "Atlantis FL", City: "Atlantis", State: "FL"}
	text := RenderText([]types.QueryResult{{Query: q, NotFound: true}}, VariantRanked)
	assert.Contains(t, text, "LOCATION NOT FOUND")
	assert.Contains(t, text, "Atlantis, FL")
}

func TestRenderText_EscapesMarkdown(t *testing.T) {
	results := []types.QueryResult{zipResult("90210", "Beverly Hills, CA",
		types.StationRecord{Name: "Gas_N_Go *24h*", StreetAddress: "1 A St"},
	)}
	text := RenderText(results, VariantBulk)
	assert.Contains(t, text, `Gas\_N\_Go \*24h\*`)
}

func TestStatusTexts(t *testing.T) {
	zip := types.Query{Kind: types.QueryKindZIP, Key: "90210"}
	other := types.Query{Kind: types.QueryKindZIP, Key: "10001"}

	assert.Contains(t, SearchingText([]types.Query{zip}), "SEARCHING ZIP 90210")
	assert.Contains(t, SearchingText([]types.Query{zip, other}), "SEARCHING 2 LOCATIONS")
	assert.Contains(t, ProgressText(2, 3, other), "(2/3)")
	assert.Contains(t, GeneratingText(7), "Found 7 gas stations")
}

func TestExportCaption_TruncatesList(t *testing.T) {
	var qs []types.Query
	for _, z := range []string{"10001", "10002", "10003", "10004", "10005", "10006", "10007"} {
		qs = append(qs, types.Query{Kind: types.QueryKindZIP, Key: z})
	}
	caption := ExportCaption(qs, 30)
	assert.Contains(t, caption, "10005 (+2 more)")
	assert.NotContains(t, caption, "10006")
	assert.Contains(t, caption, "Total Stations:* 30")
}

func TestCommandText(t *testing.T) {
	for _, cmd := range []string{"/start", "/help", "/about", "/example", "/commands"} {
		text, ok := CommandText(cmd)
		assert.True(t, ok, cmd)
		assert.NotEmpty(t, text)
	}
	_, ok := CommandText("/unknown")
	assert.False(t, ok)
}
