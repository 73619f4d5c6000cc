// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pdiddy/grant-parser/pkg/types"
)

// jsonEntry is the per-grant value in the JSON export. The grant ID is
// the object key, so it does not repeat inside the value.
type jsonEntry struct {
	PatentTitle             string   `json:"patent_title"`
	Kind                    string   `json:"kind"`
	NumberOfClaims          int      `json:"number_of_claims"`
	Inventors               []string `json:"inventors"`
	CitationsApplicantCount int      `json:"citations_applicant_count"`
	CitationsExaminerCount  int      `json:"citations_examiner_count"`
	ClaimsText              []string `json:"claims_text"`
	Abstract                string   `json:"abstract"`
}

// JSONSink streams records to w as one JSON object keyed by grant ID,
// preserving document order. Close writes the closing brace.
type JSONSink struct {
	w     io.Writer
	strip bool
	wrote bool
}

// NewJSONSink opens the JSON object on w.
func NewJSONSink(w io.Writer, strip bool) (*JSONSink, error) {
	if _, err := io.WriteString(w, "{"); err != nil {
		return nil, fmt.Errorf("writing JSON export: %w", err)
	}
	return &JSONSink{w: w, strip: strip}, nil
}

// Write appends one record under its grant ID. Unidentifiable records
// are keyed "NA", matching the CSV convention.
func (s *JSONSink) Write(rec types.GrantRecord) error {
	entry := jsonEntry{
		PatentTitle:             scalar(rec.Title),
		Kind:                    kindColumn(rec.Kind),
		NumberOfClaims:          rec.NumClaims,
		Inventors:               rec.Inventors,
		CitationsApplicantCount: rec.CitationsApplicantCount,
		CitationsExaminerCount:  rec.CitationsExaminerCount,
		ClaimsText:              rec.ClaimsText,
		Abstract:                scalar(rec.Abstract),
	}
	if s.strip {
		entry.ClaimsText = make([]string, len(rec.ClaimsText))
		for i, c := range rec.ClaimsText {
			entry.ClaimsText[i] = StripMarkup(c)
		}
		if rec.Abstract != nil {
			entry.Abstract = StripMarkup(*rec.Abstract)
		}
	}

	key, err := json.Marshal(scalar(rec.GrantID))
	if err != nil {
		return fmt.Errorf("writing JSON export: %w", err)
	}
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("writing JSON export: %w", err)
	}

	sep := ",\n"
	if !s.wrote {
		sep = "\n"
		s.wrote = true
	}
	if _, err := fmt.Fprintf(s.w, "%s%s: %s", sep, key, value); err != nil {
		return fmt.Errorf("writing JSON export: %w", err)
	}
	return nil
}

// Close terminates the JSON object.
func (s *JSONSink) Close() error {
	if _, err := io.WriteString(s.w, "\n}\n"); err != nil {
		return fmt.Errorf("closing JSON export: %w", err)
	}
	return nil
}
