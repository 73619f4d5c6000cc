// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/grant-parser/pkg/types"
)

// QueryOptions holds parameters for archive queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string, matched against
	// titles, abstracts, and claim text.
	Query string

	// Kind filters by USPTO kind code.
	Kind string

	// Inventor filters by exact inventor name ("First Last").
	Inventor string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Kind == "" && q.Inventor == ""
}

// Retrieve queries the archive with optional full-text search and
// structured filters. Full-text queries are ranked by relevance;
// structured-only queries come back in insertion order, which is
// document order.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]types.GrantRecord, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT g.grant_id, g.kind, g.title, g.num_claims, g.claims,
				g.num_citations, g.citations_examiner, g.citations_applicant,
				g.inventors, g.abstract
			FROM grants_fts
			JOIN grants g ON g.rowid = grants_fts.rowid
			WHERE grants_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT g.grant_id, g.kind, g.title, g.num_claims, g.claims,
				g.num_citations, g.citations_examiner, g.citations_applicant,
				g.inventors, g.abstract
			FROM grants g
			WHERE 1=1`)
	}

	if opts.Kind != "" {
		qb.WriteString(` AND g.kind = ?`)
		args = append(args, opts.Kind)
	}

	if opts.Inventor != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(g.inventors) WHERE value = ?)`)
		args = append(args, opts.Inventor)
	}

	if useFTS {
		qb.WriteString(` ORDER BY grants_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY g.rowid`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var results []types.GrantRecord
	for rows.Next() {
		var (
			rec           types.GrantRecord
			grantID       sql.NullString
			kind          sql.NullString
			title         sql.NullString
			abstract      sql.NullString
			claimsJSON    string
			inventorsJSON string
		)

		if err := rows.Scan(
			&grantID, &kind, &title, &rec.NumClaims, &claimsJSON,
			&rec.NumCitations, &rec.CitationsExaminerCount, &rec.CitationsApplicantCount,
			&inventorsJSON, &abstract,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		rec.GrantID = fromNull(grantID)
		rec.Kind = fromNull(kind)
		rec.Title = fromNull(title)
		rec.Abstract = fromNull(abstract)

		rec.ClaimsText = []string{}
		if err := json.Unmarshal([]byte(claimsJSON), &rec.ClaimsText); err != nil {
			return nil, fmt.Errorf("decoding stored claims for %s: %w", label(rec), err)
		}
		rec.Inventors = []string{}
		if err := json.Unmarshal([]byte(inventorsJSON), &rec.Inventors); err != nil {
			return nil, fmt.Errorf("decoding stored inventors for %s: %w", label(rec), err)
		}

		results = append(results, rec)
	}

	return results, rows.Err()
}

// label names a record for error messages.
func label(rec types.GrantRecord) string {
	if rec.GrantID != nil {
		return *rec.GrantID
	}
	return "(no grant id)"
}

// fromNull converts a driver-level NULL back to an optional field.
func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
