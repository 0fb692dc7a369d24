// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package study

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportEntry holds a flashcard with document context for export.
type ExportEntry struct {
	ID            string   `json:"id" yaml:"id"`
	Type          string   `json:"type" yaml:"type"`
	Keyword       string   `json:"keyword" yaml:"keyword"`
	Question      string   `json:"question" yaml:"question"`
	Answer        string   `json:"answer" yaml:"answer"`
	Difficulty    string   `json:"difficulty" yaml:"difficulty"`
	Category      string   `json:"category" yaml:"category"`
	Hint          string   `json:"hint,omitempty" yaml:"hint,omitempty"`
	RelatedTerms  []string `json:"related_terms,omitempty" yaml:"related_terms,omitempty"`
	DocumentID    string   `json:"document_id" yaml:"document_id"`
	DocumentLabel string   `json:"document_label,omitempty" yaml:"document_label,omitempty"`
}

const exportLimit = 100000

// ExportYAML writes the card index to studyDir/index/export.yaml. It
// supports the same filters as Retrieve.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.studyDir, indexDir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the card index to studyDir/index/export.json. It
// supports the same filters as Retrieve.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.studyDir, indexDir, "export.json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	opts.MaxResults = exportLimit
	results, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(results))
	for i, r := range results {
		entries[i] = ExportEntry{
			ID:            r.ID,
			Type:          string(r.Type),
			Keyword:       r.Keyword,
			Question:      r.Question,
			Answer:        r.Answer,
			Difficulty:    string(r.Difficulty),
			Category:      r.Category,
			Hint:          r.Hint,
			RelatedTerms:  r.RelatedTerms,
			DocumentID:    r.DocumentID,
			DocumentLabel: r.DocumentLabel,
		}
	}

	return entries, nil
}
