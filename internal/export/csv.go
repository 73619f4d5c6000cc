// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pdiddy/grant-parser/pkg/types"
)

// CSVSink streams records to w as CSV rows. The header row is written
// before the first record so an empty run still produces a valid file.
type CSVSink struct {
	w     *csv.Writer
	strip bool
}

// NewCSVSink writes the header and returns a sink for the data rows.
func NewCSVSink(w io.Writer, strip bool) (*CSVSink, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	return &CSVSink{w: cw, strip: strip}, nil
}

// Write appends one record as a CSV row.
func (s *CSVSink) Write(rec types.GrantRecord) error {
	if err := s.w.Write(Row(rec, s.strip)); err != nil {
		return fmt.Errorf("writing CSV row: %w", err)
	}
	return nil
}

// Close flushes buffered rows.
func (s *CSVSink) Close() error {
	s.w.Flush()
	return s.w.Error()
}
