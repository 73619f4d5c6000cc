// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize prepares raw patent-grant text for splitting and
// extraction. It removes line breaks and other control characters so
// each document becomes one logical line, and decodes a fixed table of
// HTML/XML character entities. Entity codes outside the table pass
// through as literal text; they are a data-quality signal downstream,
// not an error here.
package normalize

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v3"
)

// Table maps entity codes to their literal replacements.
type Table map[string]string

// DefaultTable covers the entities observed in USPTO grant dumps.
// Additional codes can be supplied from a YAML file via LoadTable.
var DefaultTable = Table{
	"&amp;":    "&",
	"&lt;":     "<",
	"&gt;":     ">",
	"&quot;":   `"`,
	"&#39;":    "'",
	"&#x2018;": "‘",
	"&#x2019;": "’",
	"&#xe7;":   "ç",
	"&#x2013;": "–",
	"&#x2014;": "—",
	"&#x201c;": "“",
	"&#x201d;": "”",
}

// entityOrder fixes the decode sequence for the default codes. Decoding
// is sequential, one code at a time, so a replacement can expose a code
// later in the order and still have it decoded: "&amp;lt;" becomes
// "&lt;" on the ampersand pass and "<" on the next. "&amp;" must stay
// first for that to work.
var entityOrder = []string{
	"&amp;",
	"&lt;",
	"&gt;",
	"&quot;",
	"&#39;",
	"&#x2018;",
	"&#x2019;",
	"&#xe7;",
	"&#x2013;",
	"&#x2014;",
	"&#x201c;",
	"&#x201d;",
}

// LoadTable reads entity replacements from a YAML file (a flat mapping
// of code to literal) and merges them over the default table. File
// entries win on conflict.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading entity table %s: %w", path, err)
	}

	var extra Table
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parsing entity table %s: %w", path, err)
	}

	merged := make(Table, len(DefaultTable)+len(extra))
	for code, lit := range DefaultTable {
		merged[code] = lit
	}
	for code, lit := range extra {
		merged[code] = lit
	}
	return merged, nil
}

// Normalizer strips control characters and decodes entities. Construct
// once with New and share freely; it holds no per-document state.
type Normalizer struct {
	codes []string
	lits  []string
}

// New builds a Normalizer from the given table. A nil table uses
// DefaultTable. Codes from entityOrder decode first, in that order;
// any extra codes follow in sorted order so construction is
// deterministic regardless of map iteration.
func New(table Table) *Normalizer {
	if table == nil {
		table = DefaultTable
	}

	n := &Normalizer{
		codes: make([]string, 0, len(table)),
		lits:  make([]string, 0, len(table)),
	}
	for _, code := range entityOrder {
		if lit, ok := table[code]; ok {
			n.codes = append(n.codes, code)
			n.lits = append(n.lits, lit)
		}
	}

	var extra []string
	for code := range table {
		if _, known := DefaultTable[code]; !known {
			extra = append(extra, code)
		}
	}
	sort.Strings(extra)
	for _, code := range extra {
		n.codes = append(n.codes, code)
		n.lits = append(n.lits, table[code])
	}
	return n
}

// Normalize returns s with all control characters removed and all
// table-listed entity codes replaced by their literal characters. Each
// code is replaced in a full pass over the string before the next code
// runs, so stacked escapes like "&amp;lt;" decode all the way down.
func (n *Normalizer) Normalize(s string) string {
	s = stripControl(s)
	for i, code := range n.codes {
		s = strings.ReplaceAll(s, code, n.lits[i])
	}
	return s
}

// stripControl removes newline, carriage-return, and every other
// control character. The common case of an already-clean string
// returns the input without allocating.
func stripControl(s string) string {
	clean := true
	for _, r := range s {
		if unicode.IsControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
