// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/mindmesh/study-engine/internal/pipeline"
	"github.com/mindmesh/study-engine/pkg/types"
)

const sampleText = "Machine learning is a subset of artificial intelligence. " +
	"Machine learning uses neural networks."

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// --- decoding ---

func TestDecodeFilePlainText(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "notes.txt", sampleText)

	text, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleText, text)
}

func TestDecodeFileUnsupported(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "image.png", "not text")

	_, err := DecodeFile(path)
	assert.Error(t, err)
}

func TestDecodeMarkdownStripsSyntax(t *testing.T) {
	md := "# Neural Networks\n" +
		"\n" +
		"A **neural network** has `layers` of nodes.\n" +
		"- first item\n" +
		"* second item\n" +
		"\n" +
		"```go\n" +
		"func ignored() {}\n" +
		"```\n" +
		"\n" +
		"See [the paper](https://example.org/paper.pdf) for details.\n" +
		"![diagram](img/net.png)\n"

	text, err := decodeMarkdown([]byte(md))
	require.NoError(t, err)

	for _, want := range []string{
		"Neural Networks",
		"A neural network has layers of nodes.",
		"first item",
		"second item",
		"See the paper for details.",
		"diagram",
	} {
		assert.Contains(t, text, want)
	}
	for _, gone := range []string{"#", "**", "`", "](", "func ignored"} {
		assert.NotContains(t, text, gone)
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"doc.txt", true},
		{"doc.md", true},
		{"doc.pdf", true},
		{"doc.PDF", true},
		{"doc.png", false},
		{"doc", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Supported(tt.path), "Supported(%q)", tt.path)
	}
}

func TestDocID(t *testing.T) {
	assert.Equal(t, "lecture-3", DocID("/docs/lecture-3.txt"))
	assert.Equal(t, "plain", DocID("plain"))
}

// --- batch ingestion ---

func TestIngestAll(t *testing.T) {
	docsDir := t.TempDir()
	studyDir := t.TempDir()
	writeDoc(t, docsDir, "ml.txt", sampleText)
	writeDoc(t, docsDir, "plants.txt", "Photosynthesis is the process plants use to make food.")
	writeDoc(t, docsDir, "ignored.png", "binary")

	p := pipeline.New(types.PipelineConfig{})
	var out bytes.Buffer

	summary, err := IngestAll(p, types.IngestConfig{DocumentsDir: docsDir, StudyDir: studyDir}, &out)
	require.NoError(t, err)
	assert.Equal(t, BatchSummary{Processed: 2}, summary)
	assert.False(t, summary.HasFailures())
	assert.Contains(t, out.String(), "processed ml")

	data, err := os.ReadFile(ResultPath(studyDir, "ml"))
	require.NoError(t, err)
	var result types.StudyResult
	require.NoError(t, yaml.Unmarshal(data, &result))
	assert.Equal(t, "ml", result.SourceLabel)
	assert.NotEmpty(t, result.Keywords)
}

func TestIngestAllSkipsUnchanged(t *testing.T) {
	docsDir := t.TempDir()
	studyDir := t.TempDir()
	writeDoc(t, docsDir, "ml.txt", sampleText)

	p := pipeline.New(types.PipelineConfig{})
	cfg := types.IngestConfig{DocumentsDir: docsDir, StudyDir: studyDir}

	_, err := IngestAll(p, cfg, &bytes.Buffer{})
	require.NoError(t, err)

	var out bytes.Buffer
	summary, err := IngestAll(p, cfg, &out)
	require.NoError(t, err)
	assert.Equal(t, BatchSummary{Skipped: 1}, summary)
	assert.Contains(t, out.String(), "skipped ml")
}

func TestIngestAllMissingDocumentsDir(t *testing.T) {
	p := pipeline.New(types.PipelineConfig{})
	cfg := types.IngestConfig{
		DocumentsDir: filepath.Join(t.TempDir(), "no-such-dir"),
		StudyDir:     t.TempDir(),
	}
	_, err := IngestAll(p, cfg, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestIngestFileWritesResult(t *testing.T) {
	docsDir := t.TempDir()
	studyDir := t.TempDir()
	path := writeDoc(t, docsDir, "ml.txt", sampleText)

	p := pipeline.New(types.PipelineConfig{})
	result, err := IngestFile(p, path, studyDir)
	require.NoError(t, err)
	assert.Equal(t, "ml", result.SourceLabel)

	_, err = os.Stat(ResultPath(studyDir, "ml"))
	assert.NoError(t, err)
}
