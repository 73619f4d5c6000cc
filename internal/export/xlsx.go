// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/grant-parser/pkg/types"
)

const xlsxSheet = "Grants"

// XLSXSink writes records to a spreadsheet. The workbook lives in
// memory until Close, which is how excelize works; prefer the CSV sink
// for very large runs.
type XLSXSink struct {
	w     io.Writer
	f     *excelize.File
	strip bool
	row   int
}

// NewXLSXSink creates the workbook and writes the header row.
func NewXLSXSink(w io.Writer, strip bool) (*XLSXSink, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(xlsxSheet); err != nil {
		return nil, fmt.Errorf("creating XLSX sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default XLSX sheet: %w", err)
	}

	for i, h := range Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("placing XLSX header: %w", err)
		}
		if err := f.SetCellValue(xlsxSheet, cell, h); err != nil {
			return nil, fmt.Errorf("writing XLSX header: %w", err)
		}
	}

	return &XLSXSink{w: w, f: f, strip: strip, row: 2}, nil
}

// Write appends one record as a spreadsheet row.
func (s *XLSXSink) Write(rec types.GrantRecord) error {
	for i, v := range Row(rec, s.strip) {
		cell, err := excelize.CoordinatesToCellName(i+1, s.row)
		if err != nil {
			return fmt.Errorf("placing XLSX cell: %w", err)
		}
		if err := s.f.SetCellValue(xlsxSheet, cell, v); err != nil {
			return fmt.Errorf("writing XLSX cell: %w", err)
		}
	}
	s.row++
	return nil
}

// Close writes the workbook to the underlying writer.
func (s *XLSXSink) Close() error {
	defer s.f.Close()
	if err := s.f.Write(s.w); err != nil {
		return fmt.Errorf("writing XLSX export: %w", err)
	}
	return nil
}
