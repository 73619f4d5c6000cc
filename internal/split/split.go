// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package split locates individual patent-grant documents inside a
// loosely-delimited text stream. A document span runs from one
// occurrence of the start marker through the first end marker after
// it, inclusive. Text between documents belongs to no span.
//
// A start marker that appears again before the end marker is treated
// as document text: spans never nest, and the scanner keeps at most
// one open document at a time. A start marker with no end marker by
// the time input runs out is a truncated document; it is dropped, not
// emitted.
package split

import (
	"bytes"
	"io"
	"strings"

	"github.com/pdiddy/grant-parser/internal/normalize"
)

const (
	// StartMarker opens a patent-grant document. The tag carries
	// attributes, so the literal stops at the tag name.
	StartMarker = "<us-patent-grant"

	// EndMarker closes a patent-grant document.
	EndMarker = "</us-patent-grant>"
)

const defaultBufferSize = 64 * 1024

// maxEntityHold bounds how many trailing bytes a read chunk may hold
// back so an entity code split across two reads is still decoded
// whole. Must exceed the longest code in the entity table.
const maxEntityHold = 16

// SplitString returns every document span in an already-normalized
// blob, in left-to-right order. A truncated trailing document is
// omitted. An empty blob yields no spans.
func SplitString(blob string) []string {
	var spans []string
	for {
		i := strings.Index(blob, StartMarker)
		if i < 0 {
			break
		}
		j := strings.Index(blob[i+len(StartMarker):], EndMarker)
		if j < 0 {
			break
		}
		end := i + len(StartMarker) + j + len(EndMarker)
		spans = append(spans, blob[i:end])
		blob = blob[end:]
	}
	return spans
}

// Scanner yields document spans from a reader, normalizing the text as
// it streams. It is a forward-only, single-use iterator: call Next
// until it returns io.EOF. Only the open document is buffered, so
// memory tracks the largest single document rather than the input.
type Scanner struct {
	r    io.Reader
	norm *normalize.Normalizer

	buf     []byte // read chunk
	raw     []byte // bytes read but not yet normalized (possible split entity)
	window  string // normalized text not yet carved into spans
	done    bool   // reader exhausted
	err     error  // sticky read error
	skipped int
}

// NewScanner wraps r in a document scanner. A nil normalizer uses the
// default entity table; bufSize <= 0 uses the default chunk size.
func NewScanner(r io.Reader, norm *normalize.Normalizer, bufSize int) *Scanner {
	if norm == nil {
		norm = normalize.New(nil)
	}
	if bufSize <= 0 {
		bufSize = defaultBufferSize
	}
	return &Scanner{
		r:    r,
		norm: norm,
		buf:  make([]byte, bufSize),
	}
}

// Next returns the next document span. It returns io.EOF once the
// input is exhausted and any other error verbatim if the underlying
// read fails. Spans come back in the order they occur in the input.
func (s *Scanner) Next() (string, error) {
	if s.err != nil {
		return "", s.err
	}

	for {
		if span, ok := s.carve(); ok {
			return span, nil
		}

		if s.done {
			if strings.Contains(s.window, StartMarker) {
				s.skipped++
			}
			s.window = ""
			return "", io.EOF
		}

		if err := s.fill(); err != nil {
			s.err = err
			return "", err
		}
	}
}

// Skipped reports how many truncated documents were dropped. Valid
// once Next has returned io.EOF.
func (s *Scanner) Skipped() int {
	return s.skipped
}

// carve tries to cut one complete span off the front of the window.
// When it cannot, it discards whatever can no longer be part of a
// span, keeping only a possible partial start marker or the open
// document's prefix.
func (s *Scanner) carve() (string, bool) {
	i := strings.Index(s.window, StartMarker)
	if i < 0 {
		if keep := len(StartMarker) - 1; len(s.window) > keep {
			s.window = s.window[len(s.window)-keep:]
		}
		return "", false
	}

	j := strings.Index(s.window[i+len(StartMarker):], EndMarker)
	if j < 0 {
		s.window = s.window[i:]
		return "", false
	}

	end := i + len(StartMarker) + j + len(EndMarker)
	span := s.window[i:end]
	s.window = s.window[end:]
	return span, true
}

// fill reads one chunk, normalizes the part of it that cannot contain
// a split entity code, and appends the result to the window. On EOF it
// flushes everything held back.
func (s *Scanner) fill() error {
	n, err := s.r.Read(s.buf)
	if n > 0 {
		s.raw = append(s.raw, s.buf[:n]...)
		cut := safeCut(s.raw)
		s.window += s.norm.Normalize(string(s.raw[:cut]))
		s.raw = s.raw[:copy(s.raw, s.raw[cut:])]
	}

	if err == io.EOF {
		s.done = true
		if len(s.raw) > 0 {
			s.window += s.norm.Normalize(string(s.raw))
			s.raw = nil
		}
		return nil
	}
	return err
}

// safeCut returns the length of the prefix of b that is safe to
// normalize now. A trailing '&' without its ';' may be the front half
// of an entity code, so it is held back for the next read. A trailing
// "&amp;" with an unterminated remainder is held back for the same
// reason: its decode opens a stacked escape whose inner code may
// continue in the next read, and decoding the halves separately would
// diverge from whole-string normalization.
func safeCut(b []byte) int {
	start := len(b) - maxEntityHold
	if start < 0 {
		start = 0
	}
	for i := len(b) - 1; i >= start; i-- {
		if b[i] != '&' {
			continue
		}
		tail := b[i:]
		if bytes.IndexByte(tail, ';') < 0 {
			return i
		}
		if rest, ok := bytes.CutPrefix(tail, []byte("&amp;")); ok && bytes.IndexByte(rest, ';') < 0 {
			return i
		}
		break
	}
	return len(b)
}
