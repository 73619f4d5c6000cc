// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists parsed grant records in SQLite and builds a
// full-text retrieval index over titles, abstracts, and claims.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/grant-parser/pkg/types"
)

const defaultMaxResults = 20

// Store manages the grant archive database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the archive at cfg.DBPath and creates the
// schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = "grants.db"
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS grants (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			grant_id TEXT,
			kind TEXT,
			title TEXT,
			num_claims INTEGER NOT NULL,
			claims TEXT NOT NULL,
			num_citations INTEGER NOT NULL,
			citations_examiner INTEGER NOT NULL,
			citations_applicant INTEGER NOT NULL,
			inventors TEXT NOT NULL,
			abstract TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_grants_grant_id ON grants(grant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_grants_kind ON grants(kind)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='grants_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE grants_fts USING fts5(title, abstract, claims, content=grants, content_rowid=rowid)`,
			`CREATE TRIGGER grants_ai AFTER INSERT ON grants BEGIN
				INSERT INTO grants_fts(rowid, title, abstract, claims)
				VALUES (new.rowid, new.title, new.abstract, new.claims);
			END`,
			`CREATE TRIGGER grants_ad AFTER DELETE ON grants BEGIN
				INSERT INTO grants_fts(grants_fts, rowid, title, abstract, claims)
				VALUES('delete', old.rowid, old.title, old.abstract, old.claims);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Insert archives one record. Records with duplicate or missing grant
// IDs are all kept; the archive mirrors the parse output 1:1.
func (s *Store) Insert(ctx context.Context, rec types.GrantRecord) error {
	claimsJSON, _ := json.Marshal(rec.ClaimsText)
	inventorsJSON, _ := json.Marshal(rec.Inventors)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO grants (grant_id, kind, title, num_claims, claims,
			num_citations, citations_examiner, citations_applicant, inventors, abstract)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullable(rec.GrantID), nullable(rec.Kind), nullable(rec.Title),
		rec.NumClaims, string(claimsJSON),
		rec.NumCitations, rec.CitationsExaminerCount, rec.CitationsApplicantCount,
		string(inventorsJSON), nullable(rec.Abstract),
	)
	if err != nil {
		return fmt.Errorf("inserting grant: %w", err)
	}
	return nil
}

// Count returns the number of archived records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM grants`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting grants: %w", err)
	}
	return n, nil
}

// nullable converts an optional field to a driver-level NULL.
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
