// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"github.com/pdiddy/grant-parser/pkg/types"
)

// Assemble runs every field extractor against one document span and
// merges the results into a GrantRecord. It never fails: a span that
// matches nothing yields a record with nil scalars and empty lists, so
// input spans and output records stay strictly 1:1.
func (e *Extractor) Assemble(span string) types.GrantRecord {
	claims := e.Claims(span)
	examiner, applicant := e.CitationCounts(span)

	return types.GrantRecord{
		GrantID:                 e.GrantID(span),
		Kind:                    e.Kind(span),
		Title:                   e.Title(span),
		NumClaims:               len(claims),
		ClaimsText:              claims,
		NumCitations:            examiner + applicant,
		CitationsExaminerCount:  examiner,
		CitationsApplicantCount: applicant,
		Inventors:               e.Inventors(span),
		Abstract:                e.Abstract(span),
	}
}
