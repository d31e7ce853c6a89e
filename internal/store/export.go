// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportFormat selects the file encoding of Export.
type ExportFormat string

const (
	ExportYAML ExportFormat = "yaml"
	ExportJSON ExportFormat = "json"
)

// Export writes every stored concept with its tags to path, newest first.
// It returns the number of concepts written.
func (s *Store) Export(ctx context.Context, path string, format ExportFormat) (int, error) {
	concepts, err := s.ListConcepts(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("querying for export: %w", err)
	}

	var data []byte
	switch format {
	case ExportYAML:
		data, err = yaml.Marshal(concepts)
		if err != nil {
			return 0, fmt.Errorf("marshaling YAML: %w", err)
		}
	case ExportJSON:
		data, err = json.MarshalIndent(concepts, "", "  ")
		if err != nil {
			return 0, fmt.Errorf("marshaling JSON: %w", err)
		}
	default:
		return 0, fmt.Errorf("unsupported export format %q: use yaml or json", format)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("writing export: %w", err)
	}
	return len(concepts), nil
}
