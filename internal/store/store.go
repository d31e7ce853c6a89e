// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists keywords, concepts and tags in a SQL database.
// SQLite, MySQL and Postgres are supported; the schema is created on open.
//
// Concept IDs are allocated as max(id)+1 without a reservation, so a Store
// must have a single writer of concepts at a time.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/concept-engine/internal/ideas"
	"github.com/pdiddy/concept-engine/pkg/types"
)

var _ ideas.Store = (*Store)(nil)

// Store implements ideas.Store over database/sql.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// Open connects to the database described by cfg and creates the schema if
// it does not exist. The caller owns the Store and must Close it.
func Open(ctx context.Context, cfg types.DatabaseConfig) (*Store, error) {
	d, ok := dialects[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported database type %q: use sqlite3, mysql or postgres", cfg.Type)
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	if cfg.Type == types.DatabaseSQLite {
		if err := ensureSQLiteDir(cfg.DSN); err != nil {
			return nil, err
		}
	}

	dsn, err := d.normalizeDSN(cfg.DSN)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{db: db, dialect: d}
	if err := s.createSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema(ctx context.Context) error {
	for _, stmt := range s.dialect.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// FetchKeywords selects up to count distinct keywords at random, weighting
// keywords with a lower use count higher.
func (s *Store) FetchKeywords(ctx context.Context, count int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.fetchKeywords, count)
	if err != nil {
		return nil, &ideas.PersistenceError{Op: "fetch keywords", Err: err}
	}
	defer rows.Close()

	var keywords []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, &ideas.PersistenceError{Op: "fetch keywords", Err: fmt.Errorf("scanning keyword: %w", err)}
		}
		keywords = append(keywords, k)
	}
	if err := rows.Err(); err != nil {
		return nil, &ideas.PersistenceError{Op: "fetch keywords", Err: err}
	}
	return keywords, nil
}

// MarkKeywordsUsed increments use_count of every listed keyword, for all
// models, in one statement. An empty list is a no-op.
func (s *Store) MarkKeywordsUsed(ctx context.Context, keywords []string) error {
	if len(keywords) == 0 {
		return nil
	}

	args := make([]any, len(keywords))
	for i, k := range keywords {
		args[i] = k
	}
	query := s.dialect.rebind(
		`UPDATE concept_keywords SET use_count = use_count + 1 WHERE keyword IN (` + placeholders(len(keywords)) + `)`)

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return &ideas.PersistenceError{Op: "mark keywords used", Err: err}
	}
	return nil
}

// AllocateConceptBaseID returns max(id)+1, or 1 for an empty table.
func (s *Store) AllocateConceptBaseID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM concepts`).Scan(&id)
	if err != nil {
		return 0, &ideas.PersistenceError{Op: "allocate concept id", Err: err}
	}
	return id, nil
}

// UpsertKeyword inserts kw, or increments create_count of the existing
// (keyword, model_name) row. use_count is never touched.
func (s *Store) UpsertKeyword(ctx context.Context, kw types.Keyword) error {
	_, err := s.db.ExecContext(ctx, s.dialect.upsertKeyword, kw.Text, kw.ModelName, kw.CreateCount, kw.UseCount)
	if err != nil {
		return &ideas.PersistenceError{Op: "upsert keyword", Err: err}
	}
	return nil
}

// InsertConcept stores c under its preassigned ID.
func (s *Store) InsertConcept(ctx context.Context, c types.Concept) error {
	query := s.dialect.rebind(`INSERT INTO concepts (id, name_en, name_jp, description, model_name, entry_date)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query, c.ID, c.NameEn, c.NameJp, c.Description, c.ModelName, c.EntryDate)
	if err != nil {
		return &ideas.PersistenceError{Op: "insert concept", Err: err}
	}
	return nil
}

// InsertTag stores one tag of a concept.
func (s *Store) InsertTag(ctx context.Context, t types.Tag) error {
	query := s.dialect.rebind(`INSERT INTO concept_tags (concept_id, tag) VALUES (?, ?)`)
	if _, err := s.db.ExecContext(ctx, query, t.ConceptID, t.Text); err != nil {
		return &ideas.PersistenceError{Op: "insert tag", Err: err}
	}
	return nil
}

// ensureSQLiteDir creates the parent directory of a file-backed SQLite DSN.
func ensureSQLiteDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	return nil
}
