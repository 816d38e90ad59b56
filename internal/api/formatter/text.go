// Package formatter renders pipeline results as chat text and CSV exports.
package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

// Variant selects the text layout.
type Variant string

const (
	// VariantBulk is the multi-ZIP preview that accompanies a CSV export.
	VariantBulk Variant = "bulk"
	// VariantRanked lists the top rated stations with ratings, hours and price.
	VariantRanked Variant = "ranked"
)

const (
	divider     = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n"
	thinDivider = "┈┈┈┈┈┈┈┈┈┈┈┈┈┈┈┈┈┈┈┈┈┈┈┈┈┈┈┈┈┈\n\n"
)

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func esc(s string) string { return markdownEscaper.Replace(s) }

// TotalStations counts stations across results.
func TotalStations(results []types.QueryResult) int {
	total := 0
	for _, r := range results {
		total += len(r.Stations)
	}
	return total
}

// RenderText renders the final reply for one message.
func RenderText(results []types.QueryResult, variant Variant) string {
	if TotalStations(results) == 0 {
		return NoStationsText(results)
	}
	if variant == VariantRanked {
		return renderRanked(results)
	}
	return renderBulk(results)
}

func renderBulk(results []types.QueryResult) string {
	var b strings.Builder
	b.WriteString("🎉 *GAS STATIONS FOUND!* 🎉\n\n")
	b.WriteString("📊 *SUMMARY:*\n")
	fmt.Fprintf(&b, "🎯 Locations: %d\n", len(results))
	fmt.Fprintf(&b, "⛽ Total Stations: %d\n", TotalStations(results))
	b.WriteString("💾 CSV Format: Horizontal layout\n\n")
	b.WriteString(divider)

	counter := 1
	for _, r := range results {
		fmt.Fprintf(&b, "📍 *%s* - %s\n", esc(r.Query.DisplayName()), esc(sectionLabel(r)))
		switch {
		case r.NotFound:
			b.WriteString("  ❌ Location not found\n\n")
		case len(r.Stations) == 0:
			b.WriteString("  ⚠️ No gas stations nearby\n\n")
		default:
			for _, s := range r.Stations {
				fmt.Fprintf(&b, "  %d. 🏪 *%s*\n", counter, esc(s.Name))
				fmt.Fprintf(&b, "     📌 %s\n", esc(s.StreetAddress))
				fmt.Fprintf(&b, "     🏙️ %s, %s %s\n\n", esc(s.City), esc(s.State), esc(s.PostalCode))
				counter++
			}
		}
		b.WriteString(thinDivider)
	}

	b.WriteString("💾 *Download the CSV file above for the horizontal format!*\n")
	b.WriteString("🔄 Send more locations to search again!")
	return b.String()
}

func renderRanked(results []types.QueryResult) string {
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString(divider)
		}
		fmt.Fprintf(&b, "⛽ *Top gas stations near %s*\n\n", esc(sectionLabel(r)))
		if r.NotFound {
			b.WriteString("❌ Location not found\n\n")
			continue
		}
		if len(r.Stations) == 0 {
			b.WriteString("⚠️ No gas stations nearby\n\n")
			continue
		}
		for j, s := range r.Stations {
			writeStationBlock(&b, j+1, s)
		}
	}
	b.WriteString("🔄 Send another ZIP, state or city to search again!")
	return b.String()
}

func writeStationBlock(b *strings.Builder, n int, s types.StationRecord) {
	fmt.Fprintf(b, "%d. *%s*\n", n, esc(s.Name))
	fmt.Fprintf(b, "   📌 %s\n", esc(s.FullAddress))
	if s.Rating != nil {
		line := fmt.Sprintf("   %s %.1f", Stars(*s.Rating), *s.Rating)
		if s.RatingCount != nil {
			line += fmt.Sprintf(" (%d reviews)", *s.RatingCount)
		}
		b.WriteString(line + "\n")
	}
	if s.HoursToday != "" {
		fmt.Fprintf(b, "   🕒 Today: %s\n", esc(s.HoursToday))
	}
	if s.Phone != "" {
		fmt.Fprintf(b, "   📞 %s\n", esc(s.Phone))
	}
	if s.PriceLevel != nil && *s.PriceLevel > 0 {
		fmt.Fprintf(b, "   💲 %s\n", PriceTier(*s.PriceLevel))
	}
	b.WriteString("\n")
}

func sectionLabel(r types.QueryResult) string {
	if r.LocationLabel != "" {
		return r.LocationLabel
	}
	return r.Query.DisplayName()
}

// Stars renders min(5, round(rating)) star glyphs.
func Stars(rating float64) string {
	n := int(math.Round(rating))
	n = max(0, min(5, n))
	return strings.Repeat("⭐", n)
}

// PriceTier renders a price level as a run of dollar signs.
func PriceTier(level int) string {
	return strings.Repeat("$", max(0, min(4, level)))
}

func queryNames(queries []types.Query) string {
	names := make([]string, len(queries))
	for i, q := range queries {
		names[i] = q.Key
	}
	return strings.Join(names, ", ")
}

func resultQueries(results []types.QueryResult) []types.Query {
	qs := make([]types.Query, len(results))
	for i, r := range results {
		qs[i] = r.Query
	}
	return qs
}

// NoStationsText is the reply when every query came back empty or unresolved.
func NoStationsText(results []types.QueryResult) string {
	if len(results) == 1 && results[0].NotFound {
		return LocationNotFoundText(results[0].Query)
	}
	return fmt.Sprintf("❌ *NO GAS STATIONS FOUND!*\n\n📍 Searched: %s\n💡 Try a different location", esc(queryNames(resultQueries(results))))
}

// LocationNotFoundText is the reply when the geocoder cannot place a query.
func LocationNotFoundText(q types.Query) string {
	return fmt.Sprintf("❌ *LOCATION NOT FOUND!*\n\n📍 Could not find %s\n💡 Check the spelling or try a ZIP code", esc(q.DisplayName()))
}

// SearchingText is the first status update.
func SearchingText(queries []types.Query) string {
	if len(queries) == 1 {
		return fmt.Sprintf("🔍 *SEARCHING %s...*\n\n⚡ Finding gas stations...", esc(strings.ToUpper(queries[0].DisplayName())))
	}
	return fmt.Sprintf("🔍 *SEARCHING %d LOCATIONS...*\n\n📍 %s\n⚡ Finding gas stations...", len(queries), esc(queryNames(queries)))
}

// ProgressText reports work on the i-th of n queries (1-based).
func ProgressText(i, n int, q types.Query) string {
	return fmt.Sprintf("🔍 *PROCESSING... (%d/%d)*\n\n📍 Current: %s\n⚡ Looking up gas stations...", i, n, esc(q.DisplayName()))
}

// GeneratingText is shown while the export is built.
func GeneratingText(total int) string {
	return fmt.Sprintf("📊 *GENERATING CSV FILE...*\n\n⛽ Found %d gas stations\n💾 Creating horizontal CSV format...", total)
}

// ExportCaption accompanies the CSV document.
func ExportCaption(queries []types.Query, total int) string {
	shown := queries
	if len(shown) > 5 {
		shown = shown[:5]
	}
	list := queryNames(shown)
	if extra := len(queries) - len(shown); extra > 0 {
		list += fmt.Sprintf(" (+%d more)", extra)
	}
	return fmt.Sprintf("⛽ *GAS STATIONS CSV* ⛽\n\n📍 *Locations:* %s\n📊 *Total Stations:* %d\n🎯 *Layout:* Seller Name1, Address1, City1, State1, Zip1, ...",
		esc(list), total)
}

// TryAgainText is the generic reply for unexpected failures.
const TryAgainText = "❌ *Something went wrong while preparing your results.*\n\nPlease try again."

// ClassificationHelpText is the reply for input that matches no location pattern.
const ClassificationHelpText = "❌ *I couldn't read a location in that message.*\n\n" +
	"🎯 *Try one of these:*\n" +
	"• a ZIP code: `90210`\n" +
	"• several ZIP codes: `90210 10001 77001`\n" +
	"• a state code: `TX`\n" +
	"• a city and state: `Austin TX`\n\n" +
	"📝 Up to 10 ZIP codes per message."
