// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"sort"
	"strings"

	"github.com/mindmesh/study-engine/internal/segment"
)

// defaultSummarySentences is how many sentences the extractive summary keeps.
const defaultSummarySentences = 3

// minSummaryWordLen filters short function words out of frequency counting.
const minSummaryWordLen = 4

// summarize builds an extractive summary: sentences are scored by the mean
// document frequency of their words, and the top few are returned in their
// original order.
func summarize(sentences []string, maxSentences int) string {
	if len(sentences) == 0 {
		return ""
	}
	if len(sentences) <= maxSentences {
		return strings.Join(sentences, ". ") + "."
	}

	freq := make(map[string]int)
	for _, s := range sentences {
		for _, tok := range segment.Tokens(s) {
			if len(tok) >= minSummaryWordLen {
				freq[tok]++
			}
		}
	}

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, 0, len(sentences))
	for i, s := range sentences {
		toks := segment.Tokens(s)
		sum := 0
		for _, tok := range toks {
			sum += freq[tok]
		}
		ranked = append(ranked, scored{index: i, score: float64(sum) / float64(len(toks)+1)})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})
	ranked = ranked[:maxSentences]

	// Restore document order for readability.
	sort.Slice(ranked, func(a, b int) bool {
		return ranked[a].index < ranked[b].index
	})

	picked := make([]string, 0, maxSentences)
	for _, r := range ranked {
		picked = append(picked, sentences[r.index])
	}
	return strings.Join(picked, ". ") + "."
}
