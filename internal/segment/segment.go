// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment provides text cleaning and segmentation shared by the
// study pipeline stages: sentence and paragraph splitting, tokenization,
// and structural statistics.
package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mindmesh/study-engine/pkg/types"
)

// maxCleanLen caps cleaned text length to bound downstream work.
const maxCleanLen = 10000

// minSentenceLen filters fragments left over by terminator splitting.
const minSentenceLen = 10

// Clean normalizes raw document text: collapses whitespace runs, drops
// characters outside letters, digits, and basic punctuation, and truncates
// to a fixed cap. A whitespace run collapses to a single space, a single
// newline, or a blank line, so paragraph boundaries survive cleaning.
func Clean(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	newlines := 0
	inRun := false
	flushRun := func() {
		if !inRun || b.Len() == 0 {
			inRun = false
			newlines = 0
			return
		}
		switch {
		case newlines >= 2:
			b.WriteString("\n\n")
		case newlines == 1:
			b.WriteByte('\n')
		default:
			b.WriteByte(' ')
		}
		inRun = false
		newlines = 0
	}

	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			inRun = true
			if r == '\n' {
				newlines++
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r) || isBasicPunct(r):
			flushRun()
			b.WriteRune(r)
		}
	}

	return Truncate(strings.TrimSpace(b.String()), maxCleanLen)
}

// Truncate shortens s to at most n bytes without splitting a multi-byte
// rune, backing off to the previous rune boundary when the cut would land
// inside one. The result is always valid UTF-8 when s is.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isBasicPunct(r rune) bool {
	switch r {
	case '.', ',', '!', '?', ';', ':', '(', ')', '-', '\'':
		return true
	}
	return false
}

// Sentences splits text on sentence terminators (. ! ?) and returns trimmed
// sentences longer than a minimum length. Text containing no terminators is
// returned whole as a single sentence.
func Sentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var sentences []string
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if len(s) > minSentenceLen {
			sentences = append(sentences, s)
		}
	}

	if len(sentences) == 0 {
		if s := strings.TrimSpace(text); s != "" {
			return []string{s}
		}
	}
	return sentences
}

// Paragraphs splits text on blank lines. When no blank line is present the
// whole trimmed text is one paragraph.
func Paragraphs(text string) []string {
	var paragraphs []string
	var current []string

	flush := func() {
		joined := strings.TrimSpace(strings.Join(current, "\n"))
		if joined != "" {
			paragraphs = append(paragraphs, joined)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return paragraphs
}

// Tokens lowercases text and returns its alphanumeric token runs, dropping
// all punctuation.
func Tokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Stats reports structural counts for a document: words, sentences,
// paragraphs, and detected headings.
func Stats(text string) types.DocumentStats {
	stats := types.DocumentStats{
		WordCount:      len(strings.Fields(text)),
		SentenceCount:  len(Sentences(text)),
		ParagraphCount: len(Paragraphs(text)),
	}

	for _, line := range strings.Split(text, "\n") {
		if IsHeading(strings.TrimSpace(line)) {
			stats.HeadingCount++
		}
	}
	return stats
}

// IsHeading reports whether a line looks like a document heading: a Markdown
// heading marker, or a short all-caps line.
func IsHeading(line string) bool {
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, "#") {
		return true
	}

	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter && len(strings.Fields(line)) <= 10
}

// IsListItem reports whether a line is a bulleted or numbered list entry.
func IsListItem(line string) bool {
	for _, prefix := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}

	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return i > 0 && i+1 < len(line) && line[i] == '.' && line[i+1] == ' '
}
