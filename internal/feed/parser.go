package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/Mohnish-Sivakumar/FTCInventory/internal/domain/models"
)

// summaryColumns is the layout of the inventory summary feed:
// [name, type, locations, max].
const summaryColumns = 4

// Segment patterns for the per-location quantity encoding inside a single
// summary cell, tried in order; the first match wins. The bare "name qty"
// pattern refuses a trailing dash in the name so "School - 5" resolves via
// the dash pattern instead of keeping the dash as part of the location.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(.*\S)\s*\((\d+)\)$`),
	regexp.MustCompile(`^(.*[^-\s])\s+(\d+)$`),
	regexp.MustCompile(`^(.*\S)\s*-\s*(\d+)$`),
}

// CatalogResult is the best-effort outcome of a catalog parse.
type CatalogResult struct {
	Items    models.Catalog
	Warnings []string
}

// SummaryResult is the best-effort outcome of an inventory summary parse.
type SummaryResult struct {
	Stock    models.StockModel
	Warnings []string
}

// DirectoryResult is the best-effort outcome of a resources directory parse.
type DirectoryResult struct {
	Entries  []models.ResourceEntry
	Warnings []string
}

// ParseRows turns raw delimited text into per-row field vectors. Quoted
// fields may contain the delimiter and doubled quotes; rows end with \n or
// \r\n; a trailing row without a terminator is still emitted; blank rows
// are dropped. Malformed quoting degrades to a naive comma split of the
// offending text rather than failing the whole feed.
func ParseRows(raw string) ([][]string, []string) {
	reader := csv.NewReader(strings.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	var warnings []string

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("unreadable delimited text: %v", err))
			return naiveRows(raw), warnings
		}
		if isBlankRow(record) {
			continue
		}
		rows = append(rows, record)
	}

	return rows, warnings
}

// BuildCatalog interprets rows as the item catalog: a header row followed
// by one item name per row. Empty names are discarded.
func BuildCatalog(rows [][]string) CatalogResult {
	var result CatalogResult

	for _, row := range dataRows(rows) {
		if len(row) == 0 {
			continue
		}
		name := normalizeName(row[0])
		if name == "" {
			continue
		}
		result.Items = append(result.Items, name)
	}

	return result
}

// BuildSummary interprets rows as the inventory summary: a header row
// followed by [name, type, locations, max] rows. Malformed location
// segments and unparseable quantities are skipped with a warning; an
// unparseable max defaults to 0. A malformed row never aborts the rest.
func BuildSummary(rows [][]string) SummaryResult {
	result := SummaryResult{Stock: models.StockModel{}}

	for i, row := range dataRows(rows) {
		if len(row) < summaryColumns {
			result.Warnings = append(result.Warnings, fmt.Sprintf("summary row %d: expected %d columns, got %d", i+2, summaryColumns, len(row)))
			continue
		}

		name := normalizeName(row[0])
		if name == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("summary row %d: empty item name", i+2))
			continue
		}

		record := models.StockRecord{
			Category:    strings.TrimSpace(row[1]),
			PerLocation: map[string]int{},
		}

		if max, err := strconv.Atoi(strings.TrimSpace(row[3])); err == nil && max >= 0 {
			record.MaxQuantity = max
		}

		for _, segment := range strings.Split(row[2], ",") {
			segment = strings.TrimSpace(segment)
			if segment == "" {
				continue
			}

			location, quantity, ok := parseLocationSegment(segment)
			if !ok {
				result.Warnings = append(result.Warnings, fmt.Sprintf("item %q: unparseable location segment %q", name, segment))
				continue
			}
			record.PerLocation[location] = quantity
		}

		result.Stock[name] = record
	}

	return result
}

// BuildDirectory interprets rows as the free-form resources directory:
// the lowercased header names key each subsequent row's fields.
func BuildDirectory(rows [][]string) DirectoryResult {
	var result DirectoryResult

	if len(rows) == 0 {
		return result
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	for _, row := range rows[1:] {
		entry := models.ResourceEntry{}
		for i, field := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			entry[headers[i]] = strings.TrimSpace(field)
		}
		if len(entry) > 0 {
			result.Entries = append(result.Entries, entry)
		}
	}

	return result
}

// parseLocationSegment matches one "<location> (<qty>)" style segment
// against the known encodings.
func parseLocationSegment(segment string) (string, int, bool) {
	for _, pattern := range locationPatterns {
		match := pattern.FindStringSubmatch(segment)
		if match == nil {
			continue
		}

		quantity, err := strconv.Atoi(match[2])
		if err != nil || quantity < 0 {
			// Quantity failed to parse: omit the location entirely
			// rather than fabricating a zero.
			return "", 0, false
		}
		return normalizeName(match[1]), quantity, true
	}
	return "", 0, false
}

// dataRows strips the header row.
func dataRows(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

func normalizeName(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func isBlankRow(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// naiveRows is the degraded path when the csv reader cannot make sense of
// the text at all: split lines and commas without quote handling.
func naiveRows(raw string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, strings.Split(line, ","))
	}
	return rows
}
