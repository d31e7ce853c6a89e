// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"

	"github.com/pdiddy/concept-engine/internal/ideas"
	"github.com/pdiddy/concept-engine/pkg/types"
)

// ListConcepts returns up to limit concepts, newest first, each with its
// tags in insertion order. A limit of zero or less returns every concept.
func (s *Store) ListConcepts(ctx context.Context, limit int) ([]types.ConceptWithTags, error) {
	query := `SELECT id, name_en, name_jp, description, model_name, entry_date
		FROM concepts ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(query), args...)
	if err != nil {
		return nil, &ideas.PersistenceError{Op: "list concepts", Err: err}
	}
	defer rows.Close()

	var out []types.ConceptWithTags
	index := make(map[int64]int)
	for rows.Next() {
		var c types.Concept
		if err := rows.Scan(&c.ID, &c.NameEn, &c.NameJp, &c.Description, &c.ModelName, &c.EntryDate); err != nil {
			return nil, &ideas.PersistenceError{Op: "list concepts", Err: fmt.Errorf("scanning concept: %w", err)}
		}
		index[c.ID] = len(out)
		out = append(out, types.ConceptWithTags{Concept: c})
	}
	if err := rows.Err(); err != nil {
		return nil, &ideas.PersistenceError{Op: "list concepts", Err: err}
	}
	if len(out) == 0 {
		return out, nil
	}

	if err := s.attachTags(ctx, out, index); err != nil {
		return nil, &ideas.PersistenceError{Op: "list concepts", Err: err}
	}
	return out, nil
}

// tagChunk bounds the number of ids bound in one tag query, below the
// parameter limits of SQLite and Postgres.
const tagChunk = 500

func (s *Store) attachTags(ctx context.Context, out []types.ConceptWithTags, index map[int64]int) error {
	for start := 0; start < len(out); start += tagChunk {
		end := min(start+tagChunk, len(out))
		if err := s.attachTagChunk(ctx, out, out[start:end], index); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) attachTagChunk(ctx context.Context, out, chunk []types.ConceptWithTags, index map[int64]int) error {
	args := make([]any, len(chunk))
	for i, c := range chunk {
		args[i] = c.ID
	}
	query := s.dialect.rebind(`SELECT concept_id, tag FROM concept_tags
		WHERE concept_id IN (` + placeholders(len(args)) + `) ORDER BY concept_id, id`)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t types.Tag
		if err := rows.Scan(&t.ConceptID, &t.Text); err != nil {
			return fmt.Errorf("scanning tag: %w", err)
		}
		if i, ok := index[t.ConceptID]; ok {
			out[i].Tags = append(out[i].Tags, t.Text)
		}
	}
	return rows.Err()
}
