// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cards

import (
	"fmt"
	"regexp"
	"strings"
)

// minDefinitionLen is the shortest captured text accepted as a definition.
const minDefinitionLen = 10

// definitionPattern pairs a name with a regex template into which the
// quoted keyword is substituted. Patterns are evaluated in order; adding a
// new extraction form means appending to the table, not branching.
type definitionPattern struct {
	name     string
	template string // %s is the quoted keyword
}

// definitionPatterns is the ordered extraction table. The first pattern
// whose capture exceeds the minimum length wins.
var definitionPatterns = []definitionPattern{
	{"is", `(?i)%s\s+is\s+(.+)`},
	{"refers-to", `(?i)%s\s+refers\s+to\s+(.+)`},
	{"means", `(?i)%s\s+means\s+(.+)`},
	{"appositive", `(?i)%s[,:]\s*(.+)`},
	{"defined-as", `(?i)%s\s+(?:can\s+be|is)\s+defined\s+as\s+(.+)`},
	{"represents", `(?i)%s\s+represents\s+(.+)`},
	{"involves", `(?i)%s\s+involves\s+(.+)`},
	{"includes", `(?i)%s\s+includes\s+(.+)`},
}

// keywordContext holds the sentences mentioning a keyword and the best
// definition extracted from them.
type keywordContext struct {
	// sentences lists every sentence containing the keyword, in document
	// order.
	sentences []string

	// definition is the extracted definition text, or the first matching
	// sentence when no pattern applied. Empty only when sentences is empty.
	definition string

	// extracted reports whether definition came from a pattern rather than
	// the whole-sentence fallback.
	extracted bool
}

// extractContext finds every sentence containing the keyword and runs the
// definition pattern table against them. Missing context is not an error;
// the caller degrades to generic card text.
func extractContext(keyword string, sentences []string) keywordContext {
	lower := strings.ToLower(keyword)

	var ctx keywordContext
	for _, s := range sentences {
		if strings.Contains(strings.ToLower(s), lower) {
			ctx.sentences = append(ctx.sentences, s)
		}
	}
	if len(ctx.sentences) == 0 {
		return ctx
	}

	quoted := regexp.QuoteMeta(keyword)
	for _, pat := range definitionPatterns {
		re, err := regexp.Compile(fmt.Sprintf(pat.template, quoted))
		if err != nil {
			continue
		}
		for _, s := range ctx.sentences {
			m := re.FindStringSubmatch(s)
			if m == nil {
				continue
			}
			captured := strings.TrimSpace(m[1])
			if len(captured) > minDefinitionLen {
				ctx.definition = captured
				ctx.extracted = true
				return ctx
			}
		}
	}

	ctx.definition = ctx.sentences[0]
	return ctx
}

// blankOut replaces every whole-word occurrence of the keyword in the
// sentence with a blank marker, case-insensitively.
func blankOut(sentence, keyword string) string {
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
	if err != nil {
		return sentence
	}
	return re.ReplaceAllString(sentence, blankMarker)
}

// blankMarker is the placeholder substituted for the keyword in
// fill-in-blank questions.
const blankMarker = "_____"

// sentenceWithBoth returns the first sentence containing both terms,
// case-insensitively, or empty when none does.
func sentenceWithBoth(sentences []string, a, b string) string {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	for _, s := range sentences {
		ls := strings.ToLower(s)
		if strings.Contains(ls, la) && strings.Contains(ls, lb) {
			return s
		}
	}
	return ""
}
