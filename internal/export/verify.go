// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Verify reloads exported CSV and JSON artifacts and cross-checks them:
// the CSV header must match the export columns, the CSV row count must
// match the JSON entry count, every CSV row must carry the same field
// values as the JSON entry under its grant ID, and when expect >= 0
// both counts must equal it. A shortfall usually means truncated
// documents were dropped upstream; the parser itself never reports
// that as an error, this does.
func Verify(csvPath, jsonPath string, expect int) error {
	rows, err := loadCSV(csvPath)
	if err != nil {
		return err
	}

	entries, err := loadJSON(jsonPath)
	if err != nil {
		return err
	}

	if len(rows) != len(entries) {
		return fmt.Errorf("verify: CSV has %d record(s) but JSON has %d "+
			"(duplicate or missing grant IDs collapse JSON keys)", len(rows), len(entries))
	}

	if expect >= 0 && len(rows) != expect {
		return fmt.Errorf("verify: expected %d record(s), exports contain %d", expect, len(rows))
	}

	for _, row := range rows {
		id := row[0]
		entry, ok := entries[id]
		if !ok {
			return fmt.Errorf("verify: CSV grant %s has no JSON entry", id)
		}
		if err := compareRecord(id, row, entry); err != nil {
			return err
		}
	}

	return nil
}

// compareRecord checks one CSV row against the JSON entry under the
// same grant ID, rendering the entry's typed fields through the CSV
// column conventions.
func compareRecord(id string, row []string, entry jsonEntry) error {
	want := []string{
		id,
		entry.PatentTitle,
		entry.Kind,
		strconv.Itoa(entry.NumberOfClaims),
		list(entry.Inventors),
		strconv.Itoa(entry.CitationsApplicantCount),
		strconv.Itoa(entry.CitationsExaminerCount),
		list(entry.ClaimsText),
		entry.Abstract,
	}
	for i, w := range want {
		if row[i] != w {
			return fmt.Errorf("verify: grant %s column %s is %q in CSV but %q in JSON",
				id, Columns[i], row[i], w)
		}
	}
	return nil
}

// loadCSV validates the header and returns the data rows.
func loadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("verify: opening CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("verify: reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("verify: CSV %s has no header row", path)
	}

	header := records[0]
	if len(header) != len(Columns) {
		return nil, fmt.Errorf("verify: CSV has %d column(s), want %d", len(header), len(Columns))
	}
	for i, col := range Columns {
		if header[i] != col {
			return nil, fmt.Errorf("verify: CSV column %d is %q, want %q", i, header[i], col)
		}
	}

	return records[1:], nil
}

// loadJSON parses the keyed export object and returns its entries.
func loadJSON(path string) (map[string]jsonEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("verify: opening JSON: %w", err)
	}

	var entries map[string]jsonEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("verify: parsing JSON: %w", err)
	}
	return entries, nil
}
