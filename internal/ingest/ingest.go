// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest turns source documents into study result files. It decodes
// plain text, Markdown, and PDF documents, runs each through the study
// pipeline, and writes one YAML result per document. Batch runs skip
// documents whose results are already up to date.
package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/mindmesh/study-engine/internal/pipeline"
	"github.com/mindmesh/study-engine/pkg/types"
)

// resultsDir is the subdirectory under the study base for result files.
const resultsDir = "results"

// BatchSummary holds counts from a batch ingestion run.
type BatchSummary struct {
	Processed int
	Skipped   int
	Failed    int
}

// Total returns the number of documents considered.
func (s BatchSummary) Total() int {
	return s.Processed + s.Skipped + s.Failed
}

// HasFailures reports whether any documents failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// ResultPath returns where the study result for a document is written.
func ResultPath(studyDir, docID string) string {
	return filepath.Join(studyDir, resultsDir, docID+"-study.yaml")
}

// DocID derives the document identifier from a source path: the base name
// without its extension.
func DocID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IngestFile decodes one document, runs the pipeline, and writes the study
// result under studyDir. It returns the in-memory result as well.
func IngestFile(p *pipeline.Pipeline, path, studyDir string) (types.StudyResult, error) {
	text, err := DecodeFile(path)
	if err != nil {
		return types.StudyResult{}, err
	}

	docID := DocID(path)
	result := p.Process(text, docID)

	if err := writeResult(ResultPath(studyDir, docID), result); err != nil {
		return types.StudyResult{}, err
	}
	return result, nil
}

// IngestAll processes every supported document in the documents directory,
// writing one result file per document and per-file progress to w. A
// document is skipped when its result file is newer than the source.
func IngestAll(p *pipeline.Pipeline, cfg types.IngestConfig, w io.Writer) (BatchSummary, error) {
	if err := os.MkdirAll(filepath.Join(cfg.StudyDir, resultsDir), 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating results directory: %w", err)
	}

	entries, err := os.ReadDir(cfg.DocumentsDir)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("reading documents directory %s: %w", cfg.DocumentsDir, err)
	}

	var summary BatchSummary

	for _, entry := range entries {
		if entry.IsDir() || !Supported(entry.Name()) {
			continue
		}

		docID := DocID(entry.Name())
		srcPath := filepath.Join(cfg.DocumentsDir, entry.Name())
		outPath := ResultPath(cfg.StudyDir, docID)

		changed, err := hasChanged(srcPath, outPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}
		if !changed {
			fmt.Fprintf(w, "skipped %s\n", docID)
			summary.Skipped++
			continue
		}

		result, err := IngestFile(p, srcPath, cfg.StudyDir)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "processed %s (%d keywords, %d cards)\n",
			docID, len(result.Keywords), len(result.Flashcards))
		summary.Processed++
	}

	fmt.Fprintf(w, "\nBatch summary: %d processed, %d skipped, %d failed (total: %d)\n",
		summary.Processed, summary.Skipped, summary.Failed, summary.Total())
	return summary, nil
}

// hasChanged reports whether the source document is newer than its result
// file. A missing result file counts as changed.
func hasChanged(srcPath, outPath string) (bool, error) {
	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		return false, fmt.Errorf("stat document %s: %w", srcPath, err)
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat result %s: %w", outPath, err)
	}

	return srcInfo.ModTime().After(outInfo.ModTime()), nil
}

// writeResult marshals the study result to a YAML file, creating the
// results directory if needed.
func writeResult(path string, result types.StudyResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating results directory: %w", err)
	}
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
