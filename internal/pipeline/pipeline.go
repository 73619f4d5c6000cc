// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives raw grant text through normalization,
// document splitting, and record assembly, fanning each record out to
// the configured sinks. One document is processed to completion before
// the next is read; no state crosses documents except the scan cursor.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/grant-parser/internal/extract"
	"github.com/pdiddy/grant-parser/internal/normalize"
	"github.com/pdiddy/grant-parser/internal/split"
	"github.com/pdiddy/grant-parser/pkg/types"
)

// Sink receives assembled records in document order.
type Sink interface {
	Write(types.GrantRecord) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(types.GrantRecord) error

// Write calls f.
func (f SinkFunc) Write(rec types.GrantRecord) error { return f(rec) }

// Summary holds counts from one pipeline run.
type Summary struct {
	// Documents is the number of records emitted.
	Documents int

	// Skipped is the number of truncated documents the splitter dropped.
	Skipped int
}

// Run streams patent-grant documents from r, assembles one record per
// document, and writes each record to every sink in order. Progress
// and skip notices go to w; a nil w discards them. A document that
// matches no fields still
// produces a record; only read failures, sink failures, and
// cancellation abort the run.
func Run(ctx context.Context, r io.Reader, cfg types.ParserConfig, w io.Writer, sinks ...Sink) (Summary, error) {
	if r == nil {
		return Summary{}, errors.New("pipeline: nil input reader")
	}
	for _, sink := range sinks {
		if sink == nil {
			return Summary{}, errors.New("pipeline: nil sink")
		}
	}
	if w == nil {
		w = io.Discard
	}

	table := normalize.DefaultTable
	if cfg.EntitiesFile != "" {
		t, err := normalize.LoadTable(cfg.EntitiesFile)
		if err != nil {
			return Summary{}, fmt.Errorf("loading entity table: %w", err)
		}
		table = t
	}

	scanner := split.NewScanner(r, normalize.New(table), cfg.BufferSize)
	ex := extract.New()

	var summary Summary
	for {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		span, err := scanner.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("scanning input: %w", err)
		}

		rec := ex.Assemble(span)
		for _, sink := range sinks {
			if err := sink.Write(rec); err != nil {
				return summary, fmt.Errorf("writing record %s: %w", label(rec), err)
			}
		}
		summary.Documents++
	}

	summary.Skipped = scanner.Skipped()
	if summary.Skipped > 0 {
		fmt.Fprintf(w, "skipped %d truncated document(s) at end of input\n", summary.Skipped)
	}
	fmt.Fprintf(w, "parsed %d document(s)\n", summary.Documents)

	return summary, nil
}

// RunFile opens path and runs the pipeline over its contents.
func RunFile(ctx context.Context, path string, cfg types.ParserConfig, w io.Writer, sinks ...Sink) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	return Run(ctx, f, cfg, w, sinks...)
}

// Collect runs the pipeline and gathers every record into a slice.
func Collect(ctx context.Context, r io.Reader, cfg types.ParserConfig, w io.Writer) ([]types.GrantRecord, Summary, error) {
	var records []types.GrantRecord
	summary, err := Run(ctx, r, cfg, w, SinkFunc(func(rec types.GrantRecord) error {
		records = append(records, rec)
		return nil
	}))
	return records, summary, err
}

func label(rec types.GrantRecord) string {
	if rec.GrantID != nil {
		return *rec.GrantID
	}
	return "(no grant id)"
}
