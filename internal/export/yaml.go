// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/grant-parser/pkg/types"
)

// YAMLSink collects records and marshals them as a YAML sequence on
// Close. Unlike the CSV and JSON sinks it buffers everything, so it is
// meant for working sets, not bulk dumps.
type YAMLSink struct {
	w       io.Writer
	records []types.GrantRecord
}

// NewYAMLSink returns a sink that writes to w on Close.
func NewYAMLSink(w io.Writer) *YAMLSink {
	return &YAMLSink{w: w}
}

// Write buffers one record.
func (s *YAMLSink) Write(rec types.GrantRecord) error {
	s.records = append(s.records, rec)
	return nil
}

// Close marshals the buffered records.
func (s *YAMLSink) Close() error {
	data, err := yaml.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("marshaling YAML export: %w", err)
	}
	if _, err := s.w.Write(data); err != nil {
		return fmt.Errorf("writing YAML export: %w", err)
	}
	return nil
}
