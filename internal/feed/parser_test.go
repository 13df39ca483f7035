package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRowsQuotingAndTerminators(t *testing.T) {
	raw := "Name,Type,Locations,Max\r\n" +
		"\"Wheel, Omni\",motion,\"School (4)\",8\r\n" +
		"\n" +
		"Battery,electrical,\"School (2), Barn (1)\",6"

	rows, warnings := ParseRows(raw)

	require.Empty(t, warnings)
	require.Len(t, rows, 3, "blank row dropped, trailing row without terminator kept")
	assert.Equal(t, []string{"Wheel, Omni", "motion", "School (4)", "8"}, rows[1])
	assert.Equal(t, "Battery", rows[2][0])
}

func TestParseRowsEscapedQuotes(t *testing.T) {
	rows, warnings := ParseRows("Name\n\"12\"\" Wheel\"\n")

	require.Empty(t, warnings)
	require.Len(t, rows, 2)
	assert.Equal(t, `12" Wheel`, rows[1][0])
}

func TestBuildCatalogSkipsHeaderAndEmptyNames(t *testing.T) {
	rows := [][]string{
		{"Item"},
		{"  Servo  "},
		{"   "},
		{"Battery"},
	}

	result := BuildCatalog(rows)

	assert.Equal(t, []string{"Servo", "Battery"}, []string(result.Items))
}

func TestBuildSummaryRoundTrip(t *testing.T) {
	rows, warnings := ParseRows("Name,Type,Locations,Max\nWidget,consumable,\"School (5), Barn (2)\",10\n")
	require.Empty(t, warnings)

	result := BuildSummary(rows)

	require.Empty(t, result.Warnings)
	record, ok := result.Stock["Widget"]
	require.True(t, ok)
	assert.Equal(t, "consumable", record.Category)
	assert.Equal(t, 10, record.MaxQuantity)
	assert.Equal(t, map[string]int{"School": 5, "Barn": 2}, record.PerLocation)
}

func TestBuildSummarySegmentGrammar(t *testing.T) {
	tests := []struct {
		name     string
		segment  string
		location string
		quantity int
	}{
		{"parenthesized", "School (5)", "School", 5},
		{"bare", "Barn 2", "Barn", 2},
		{"dashed", "School - 7", "School", 7},
		{"multi word", "My House (3)", "My House", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			location, quantity, ok := parseLocationSegment(tt.segment)
			require.True(t, ok)
			assert.Equal(t, tt.location, location)
			assert.Equal(t, tt.quantity, quantity)
		})
	}
}

func TestBuildSummaryMalformedSegmentResilience(t *testing.T) {
	rows := [][]string{
		{"Name", "Type", "Locations", "Max"},
		{"Widget", "consumable", "School (5), ???, Barn (2)", "10"},
	}

	result := BuildSummary(rows)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "???")
	assert.Equal(t, map[string]int{"School": 5, "Barn": 2}, result.Stock["Widget"].PerLocation)
}

func TestBuildSummaryMalformedRowDoesNotAbortRest(t *testing.T) {
	rows := [][]string{
		{"Name", "Type", "Locations", "Max"},
		{"only-two", "columns"},
		{"Battery", "electrical", "School (1)", "4"},
	}

	result := BuildSummary(rows)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Stock, "Battery")
	assert.NotContains(t, result.Stock, "only-two")
}

func TestBuildSummaryUnparseableMaxDefaultsToZero(t *testing.T) {
	rows := [][]string{
		{"Name", "Type", "Locations", "Max"},
		{"Widget", "consumable", "School (5)", "lots"},
	}

	result := BuildSummary(rows)

	assert.Equal(t, 0, result.Stock["Widget"].MaxQuantity)
	assert.Empty(t, result.Warnings, "bad max is a default, not a warning")
}

func TestBuildDirectoryKeysRowsByLowercasedHeader(t *testing.T) {
	rows := [][]string{
		{"Name", "URL", "Notes"},
		{"CAD Library", "https://example.com/cad", "parts models"},
		{"Wiring Guide", "https://example.com/wiring"},
	}

	result := BuildDirectory(rows)

	require.Len(t, result.Entries, 2)
	assert.Equal(t, "https://example.com/cad", result.Entries[0]["url"])
	assert.Equal(t, "parts models", result.Entries[0]["notes"])
	assert.Equal(t, "Wiring Guide", result.Entries[1]["name"])
	assert.NotContains(t, result.Entries[1], "notes")
}
