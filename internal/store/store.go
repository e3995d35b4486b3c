// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store archives harvested records in a SQLite database so past
// digests can be listed and exported without re-harvesting. The harvest path
// never reads from the archive; it is an output, not a cache.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "digest.db"
)

// Store manages the record archive database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the archive at digestDir/index/digest.db and
// creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DigestDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
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
		`CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			url TEXT,
			title TEXT,
			abstract TEXT,
			categories TEXT,
			created TEXT,
			updated TEXT,
			doi TEXT,
			authors TEXT,
			affiliations TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_created ON records(created)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Upsert writes records into the archive, replacing rows that share an
// identifier. It returns the number of rows written.
func (s *Store) Upsert(ctx context.Context, records []types.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (id, url, title, abstract, categories, created, updated, doi, authors, affiliations)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			url=excluded.url, title=excluded.title, abstract=excluded.abstract,
			categories=excluded.categories, created=excluded.created,
			updated=excluded.updated, doi=excluded.doi,
			authors=excluded.authors, affiliations=excluded.affiliations`)
	if err != nil {
		return 0, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, rec := range records {
		if rec.Identifier == "" {
			continue
		}
		authorsJSON, _ := json.Marshal(rec.Authors)
		affJSON, _ := json.Marshal(rec.Affiliations)
		if _, err := stmt.ExecContext(ctx,
			rec.Identifier, rec.URL, rec.Title, rec.Abstract, rec.Categories,
			rec.Created, rec.Updated, rec.DOI, string(authorsJSON), string(affJSON),
		); err != nil {
			return written, fmt.Errorf("upserting record %s: %w", rec.Identifier, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return written, fmt.Errorf("committing: %w", err)
	}
	return written, nil
}

// List returns up to limit archived records, newest created date first. A
// non-positive limit falls back to the configured default.
func (s *Store) List(ctx context.Context, limit int) ([]types.Record, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, url, title, abstract, categories, created, updated, doi, authors, affiliations
		 FROM records ORDER BY created DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var rec types.Record
		var authorsJSON, affJSON string
		if err := rows.Scan(&rec.Identifier, &rec.URL, &rec.Title, &rec.Abstract,
			&rec.Categories, &rec.Created, &rec.Updated, &rec.DOI,
			&authorsJSON, &affJSON); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		json.Unmarshal([]byte(authorsJSON), &rec.Authors)
		json.Unmarshal([]byte(affJSON), &rec.Affiliations)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of archived records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// ExportYAML writes every archived record to a YAML file at path.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	count, err := s.Count(ctx)
	if err != nil {
		return err
	}
	records, err := s.List(ctx, count)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
