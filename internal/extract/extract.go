// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls the grant schema out of individual document
// spans. Each field has its own pattern, anchored to the minimal
// enclosing tag pair, and each extractor is independent: a missing
// title never blocks claim extraction. Scalar fields take the first
// match; multi-value fields collect every non-overlapping match in
// document order.
package extract

import (
	"regexp"
	"strings"
)

// Citation category markers. Counted as literal occurrences; the
// documents carry no stated citation totals.
const (
	examinerMarker  = "<category>cited by examiner</category>"
	applicantMarker = "<category>cited by applicant</category>"
)

// Extractor holds the compiled field patterns. Construct once with New
// and pass by reference; it is immutable and safe for concurrent use.
type Extractor struct {
	grantID        *regexp.Regexp
	kind           *regexp.Regexp
	title          *regexp.Regexp
	inventorsBlock *regexp.Regexp
	inventor       *regexp.Regexp
	claimsBlock    *regexp.Regexp
	claimText      *regexp.Regexp
	abstract       *regexp.Regexp
}

// New compiles the field patterns.
func New() *Extractor {
	return &Extractor{
		// The grant ID lives in the root tag's file attribute, e.g.
		// file="US10361423-20190723.XML". Reissue and plant patents
		// carry extra letters after the country code.
		grantID: regexp.MustCompile(`(?s)<us-patent-grant.*?file="([A-Z]{2}(?:[A-Z]{1,2})?\d+).*?\.XML".*?>`),

		kind: regexp.MustCompile(`(?s)<publication-reference>.*?<kind>(\w{1,2})</kind>.*?</publication-reference>`),

		title: regexp.MustCompile(`(?s)<invention-title id=".*?">(.*?)</invention-title>`),

		inventorsBlock: regexp.MustCompile(`(?s)<inventors>.*?</inventors>`),
		inventor:       regexp.MustCompile(`<inventor[^>]*>\s*<addressbook>\s*<last-name>([^<]*)</last-name>\s*<first-name>([^<]*)</first-name>`),

		claimsBlock: regexp.MustCompile(`(?s)<claims id="claims">.*?</claims>`),
		claimText:   regexp.MustCompile(`(?s)<claim-text>(.*?)</claim-text>`),

		abstract: regexp.MustCompile(`(?s)<abstract[^>]*>\s*<p[^>]*>(.*?)</p>\s*</abstract>`),
	}
}

// GrantID returns the grant identifier, or nil when the root tag
// carries no recognizable file attribute.
func (e *Extractor) GrantID(span string) *string {
	return firstGroup(e.grantID, span)
}

// Kind returns the USPTO kind code from the publication reference.
func (e *Extractor) Kind(span string) *string {
	return firstGroup(e.kind, span)
}

// Title returns the invention title. Markup that survived
// normalization passes through verbatim.
func (e *Extractor) Title(span string) *string {
	return firstGroup(e.title, span)
}

// Abstract returns the abstract paragraph text.
func (e *Extractor) Abstract(span string) *string {
	return firstGroup(e.abstract, span)
}

// Inventors returns inventor names as "First Last", in document order.
// Missing inventors yield an empty list, never nil.
func (e *Extractor) Inventors(span string) []string {
	names := []string{}
	block := e.inventorsBlock.FindString(span)
	if block == "" {
		return names
	}
	for _, m := range e.inventor.FindAllStringSubmatch(block, -1) {
		names = append(names, m[2]+" "+m[1])
	}
	return names
}

// Claims returns the text of each claim, in document order. The claim
// matcher only looks inside the claims block, so abstract or
// description text can never leak in.
func (e *Extractor) Claims(span string) []string {
	claims := []string{}
	block := e.claimsBlock.FindString(span)
	if block == "" {
		return claims
	}
	for _, m := range e.claimText.FindAllStringSubmatch(block, -1) {
		claims = append(claims, m[1])
	}
	return claims
}

// CitationCounts returns how many citations the examiner and the
// applicant made, as counts of their literal category markers.
func (e *Extractor) CitationCounts(span string) (examiner, applicant int) {
	return strings.Count(span, examinerMarker), strings.Count(span, applicantMarker)
}

// firstGroup returns the first capture of the first match, or nil.
func firstGroup(re *regexp.Regexp, span string) *string {
	m := re.FindStringSubmatch(span)
	if m == nil {
		return nil
	}
	return &m[1]
}
