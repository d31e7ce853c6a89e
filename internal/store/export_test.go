// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/concept-engine/pkg/types"
)

func TestExport(t *testing.T) {
	s := testSetup(t)
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	insertConcept(t, s, 1, "one", at, "a")
	insertConcept(t, s, 2, "two", at, "b", "c")

	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "out", "concepts.json")
		n, err := s.Export(context.Background(), path, ExportJSON)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got []types.ConceptWithTags
		require.NoError(t, json.Unmarshal(data, &got))
		require.Len(t, got, 2)
		assert.Equal(t, "two", got[0].NameEn)
		assert.Equal(t, []string{"b", "c"}, got[0].Tags)
	})

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "concepts.yaml")
		_, err := s.Export(context.Background(), path, ExportYAML)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got []map[string]any
		require.NoError(t, yaml.Unmarshal(data, &got))
		require.Len(t, got, 2)
		assert.Equal(t, "one", got[1]["name_en"])
		assert.Equal(t, []any{"a"}, got[1]["tags"])
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := s.Export(context.Background(), filepath.Join(dir, "x.csv"), "csv")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported export format")
	})
}
