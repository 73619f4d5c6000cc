// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes assembled grant records to tabular file
// formats and verifies the written artifacts. The output conventions
// match the downstream dataset contract: missing scalars become "NA",
// empty lists become "[NA]", and the kind column carries the USPTO
// description rather than the raw code.
package export

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/grant-parser/internal/extract"
	"github.com/pdiddy/grant-parser/pkg/types"
)

// Columns is the export column order.
var Columns = []string{
	"grant_id",
	"patent_title",
	"kind",
	"number_of_claims",
	"inventors",
	"citations_applicant_count",
	"citations_examiner_count",
	"claims_text",
	"abstract",
}

// na substitutes for any absent scalar or empty list element.
const na = "NA"

// markupRe matches residual tags and bare entity codes inside captured
// field text.
var markupRe = regexp.MustCompile(`<[^>]*>|&\w+;`)

// StripMarkup removes residual tags and entity codes from captured
// text. Applied only at export time; records keep the text verbatim.
func StripMarkup(s string) string {
	return markupRe.ReplaceAllString(s, "")
}

// Row renders one record into the export column order. When strip is
// true, claim and abstract text is run through StripMarkup first.
func Row(rec types.GrantRecord, strip bool) []string {
	claims := rec.ClaimsText
	abstract := scalar(rec.Abstract)
	if strip {
		stripped := make([]string, len(claims))
		for i, c := range claims {
			stripped[i] = StripMarkup(c)
		}
		claims = stripped
		if rec.Abstract != nil {
			abstract = StripMarkup(*rec.Abstract)
		}
	}

	return []string{
		scalar(rec.GrantID),
		scalar(rec.Title),
		kindColumn(rec.Kind),
		strconv.Itoa(rec.NumClaims),
		list(rec.Inventors),
		strconv.Itoa(rec.CitationsApplicantCount),
		strconv.Itoa(rec.CitationsExaminerCount),
		list(claims),
		abstract,
	}
}

// scalar renders an optional field, substituting NA for absence.
func scalar(s *string) string {
	if s == nil {
		return na
	}
	return *s
}

// kindColumn maps the kind code to its USPTO description. Unknown and
// missing codes both render as NA.
func kindColumn(code *string) string {
	if code == nil {
		return na
	}
	if desc, ok := extract.DescribeKind(*code); ok {
		return desc
	}
	return na
}

// list renders a multi-value field as "[a,b,c]", or "[NA]" when empty.
func list(values []string) string {
	if len(values) == 0 {
		return "[" + na + "]"
	}
	return "[" + strings.Join(values, ",") + "]"
}
