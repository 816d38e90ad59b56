package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"

	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

const (
	ContentTypeCSV = "text/csv; charset=utf-8"
	fieldsPerSlot  = 5
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9-]+`)

// Group is the ordered station list found for one query key.
type Group struct {
	Key      string
	Stations []types.StationRecord
}

// SlotCount is the largest station count across groups.
func SlotCount(groups []Group) int {
	n := 0
	for _, g := range groups {
		n = max(n, len(g.Stations))
	}
	return n
}

// RenderTable writes the horizontal export: one header row of N station slots
// (N = SlotCount) and exactly one data row of the same width. Stations of all
// groups are taken in order until the N slots are filled; unused slots are empty.
func RenderTable(groups []Group) ([]byte, error) {
	slots := SlotCount(groups)

	header := make([]string, 0, slots*fieldsPerSlot)
	for i := 1; i <= slots; i++ {
		header = append(header,
			fmt.Sprintf("Seller Name%d", i),
			fmt.Sprintf("Seller Address%d", i),
			fmt.Sprintf("Seller City%d", i),
			fmt.Sprintf("Seller State%d", i),
			fmt.Sprintf("Seller Zip%d", i),
		)
	}

	var flat []types.StationRecord
	for _, g := range groups {
		flat = append(flat, g.Stations...)
	}

	row := make([]string, 0, len(header))
	for i := 0; i < slots; i++ {
		if i < len(flat) {
			s := flat[i]
			row = append(row, s.Name, s.StreetAddress, s.City, s.State, s.PostalCode)
			continue
		}
		row = append(row, "", "", "", "", "")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := w.Write(row); err != nil {
		return nil, fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename derives the attachment name from the query keys.
func ExportFilename(keys []string) string {
	if len(keys) == 0 {
		return "gas_stations.csv"
	}
	if len(keys) > 3 {
		keys = keys[:3]
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strings.Trim(unsafeFilenameChars.ReplaceAllString(k, "_"), "_")
	}
	return "gas_stations_" + strings.Join(parts, "_") + ".csv"
}

// ExportFile renders groups into a ready-to-send attachment named after keys.
func ExportFile(keys []string, groups []Group) (*types.ExportFile, error) {
	content, err := RenderTable(groups)
	if err != nil {
		return nil, err
	}
	return &types.ExportFile{
		Filename:    ExportFilename(keys),
		ContentType: ContentTypeCSV,
		Content:     content,
	}, nil
}
