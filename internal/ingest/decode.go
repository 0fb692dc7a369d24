// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// supportedExtensions maps file extensions to their decoders.
var supportedExtensions = map[string]func([]byte) (string, error){
	".txt": decodePlain,
	".md":  decodeMarkdown,
	".pdf": decodePDF,
}

// Supported reports whether the file at path has a decodable extension.
func Supported(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// DecodeFile reads a document and returns its plain text. The decoder is
// chosen by file extension; unsupported extensions are an error.
func DecodeFile(path string) (string, error) {
	decode, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", fmt.Errorf("unsupported document type %q", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading document %s: %w", path, err)
	}
	return decode(data)
}

func decodePlain(data []byte) (string, error) {
	return string(data), nil
}

// markdown link and image patterns, kept at package level so they compile once.
var (
	mdImage = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	mdLink  = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
)

// decodeMarkdown strips Markdown syntax down to the prose it marks up.
// Heading and list text survives; fenced code blocks are dropped whole.
func decodeMarkdown(data []byte) (string, error) {
	var out []string
	inFence := false

	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		trimmed = strings.TrimLeft(trimmed, "#")
		for _, prefix := range []string{"- ", "* ", "+ ", "> "} {
			trimmed = strings.TrimPrefix(trimmed, prefix)
		}

		trimmed = mdImage.ReplaceAllString(trimmed, "$1")
		trimmed = mdLink.ReplaceAllString(trimmed, "$1")
		trimmed = strings.NewReplacer("**", "", "__", "", "`", "").Replace(trimmed)

		out = append(out, strings.TrimSpace(trimmed))
	}
	return strings.Join(out, "\n"), nil
}

// decodePDF extracts the plain text stream from a PDF document.
func decodePDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}

	text, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}
	return string(text), nil
}
