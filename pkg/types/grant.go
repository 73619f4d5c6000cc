// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// GrantRecord is the structured output for one patent-grant document.
// Scalar fields are pointers so a missing field stays distinguishable
// from an empty one; multi-value fields are empty slices, never nil.
// A record is assembled once and not mutated afterwards.
type GrantRecord struct {
	// GrantID is the grant identifier from the root tag's file attribute
	// (e.g. "US10361423"). Nil when the document carries no recognizable
	// identifier; the record is still emitted.
	GrantID *string `json:"grant_id" yaml:"grant_id"`

	// Kind is the USPTO kind code (e.g. "B2").
	Kind *string `json:"kind" yaml:"kind"`

	// Title is the invention title.
	Title *string `json:"title" yaml:"title"`

	// NumClaims is the number of claim texts extracted. Always equal to
	// len(ClaimsText); the document's own stated count is never read, so
	// the two cannot drift apart.
	NumClaims int `json:"num_claims" yaml:"num_claims"`

	// ClaimsText holds one entry per claim, in document order.
	ClaimsText []string `json:"claims_text" yaml:"claims_text"`

	// NumCitations is the total number of citation category markers in
	// the document. Equals CitationsExaminerCount + CitationsApplicantCount.
	NumCitations int `json:"num_citations" yaml:"num_citations"`

	// CitationsExaminerCount counts citations made by the examiner.
	CitationsExaminerCount int `json:"citations_examiner_count" yaml:"citations_examiner_count"`

	// CitationsApplicantCount counts citations made by the applicant.
	CitationsApplicantCount int `json:"citations_applicant_count" yaml:"citations_applicant_count"`

	// Inventors lists inventor names as "First Last", in document order.
	Inventors []string `json:"inventors" yaml:"inventors"`

	// Abstract is the patent abstract text.
	Abstract *string `json:"abstract" yaml:"abstract"`
}
