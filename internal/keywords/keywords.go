// Package keywords extracts a ranked keyword list from document text.
// Single words are weighted by TF-IDF over the document's paragraphs;
// multi-word phrases are mined separately by raw frequency and deliberately
// weighted above single words. See docs/ARCHITECTURE § Keyword Scoring.
package keywords

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mindmesh/study-engine/internal/segment"
	"github.com/mindmesh/study-engine/pkg/types"
)

const (
	defaultTopN = 20

	// minWordLen is the minimum length for a single-word keyword.
	minWordLen = 4

	// minBigramLen and minTrigramLen filter out short, low-information
	// phrase candidates.
	minBigramLen  = 9
	minTrigramLen = 13

	// phraseBoost weights mined phrases above single words.
	phraseBoost = 2.0

	// categoryWindow is the character span scanned on each side of a term's
	// first occurrence when assigning a category.
	categoryWindow = 50
)

// categoryTrigger maps a set of cue words to the category they signal.
// Triggers are checked in order; the first hit wins.
type categoryTrigger struct {
	category types.KeywordCategory
	cues     []string
}

// defaultTriggers is the immutable cue table for categorization.
var defaultTriggers = []categoryTrigger{
	{types.CategoryDefinition, []string{"define", "defined", "definition", "means", "refers"}},
	{types.CategoryImportant, []string{"important", "key", "critical", "essential"}},
	{types.CategoryExample, []string{"example", "such as", "for instance"}},
	{types.CategoryProcess, []string{"process", "method", "technique", "procedure"}},
	{types.CategoryStructure, []string{"chapter", "section", "part"}},
}

// Scorer extracts ranked keywords from raw text. The stopword set and
// category trigger table are fixed at construction.
type Scorer struct {
	topN      int
	stopwords map[string]bool
	triggers  []categoryTrigger
}

// NewScorer returns a Scorer configured from cfg. A non-positive TopN falls
// back to the default of 20.
func NewScorer(cfg types.ScoringConfig) *Scorer {
	topN := cfg.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	return &Scorer{
		topN:      topN,
		stopwords: stopwordSet(),
		triggers:  defaultTriggers,
	}
}

// Extract returns the merged, ranked keyword list for text, descending by
// score and capped at the configured top N. Empty or whitespace-only input
// yields an empty list.
func (s *Scorer) Extract(text string) []types.Keyword {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lower := strings.ToLower(text)

	phrases := s.minePhrases(text, lower)
	words := s.scoreWords(text, phrases)

	merged := make(map[string]float64, len(phrases)+len(words))
	for p, score := range phrases {
		merged[p] = score
	}
	for w, score := range words {
		merged[w] = score
	}

	ranked := make([]types.Keyword, 0, len(merged))
	for term, score := range merged {
		ranked = append(ranked, types.Keyword{
			Text:     term,
			Score:    score,
			Category: s.categorize(term, lower),
		})
	}

	// Descending by score; ties broken by text so runs are reproducible.
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Text < ranked[j].Text
	})

	if len(ranked) > s.topN {
		ranked = ranked[:s.topN]
	}
	return ranked
}

// minePhrases collects bigram and trigram candidates from each sentence and
// scores them by doubled raw frequency in the full text. Candidates that
// never occur verbatim (their source tokens were separated by punctuation)
// are dropped.
func (s *Scorer) minePhrases(text, lower string) map[string]float64 {
	candidates := make(map[string]bool)

	for _, sentence := range segment.Sentences(text) {
		tokens := s.contentTokens(sentence)

		for i := 0; i+1 < len(tokens); i++ {
			bigram := tokens[i] + " " + tokens[i+1]
			if len(bigram) >= minBigramLen {
				candidates[bigram] = true
			}
			if i+2 < len(tokens) {
				trigram := bigram + " " + tokens[i+2]
				if len(trigram) >= minTrigramLen {
					candidates[trigram] = true
				}
			}
		}
	}

	scores := make(map[string]float64, len(candidates))
	for phrase := range candidates {
		if n := strings.Count(lower, phrase); n > 0 {
			scores[phrase] = float64(n) * phraseBoost
		}
	}
	return scores
}

// contentTokens returns a sentence's lowercased tokens with stopwords and
// very short tokens removed.
func (s *Scorer) contentTokens(sentence string) []string {
	var out []string
	for _, tok := range segment.Tokens(sentence) {
		if len(tok) <= 2 || s.stopwords[tok] {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// scoreWords computes mean TF-IDF weights over the document's paragraphs for
// single-word terms, skipping stopwords, numerics, short terms, and words
// already covered by a mined phrase.
func (s *Scorer) scoreWords(text string, phrases map[string]float64) map[string]float64 {
	paragraphs := segment.Paragraphs(text)
	if len(paragraphs) == 0 {
		paragraphs = []string{text}
	}

	// Term frequency per paragraph and document frequency across paragraphs.
	perParagraph := make([]map[string]int, len(paragraphs))
	lengths := make([]int, len(paragraphs))
	df := make(map[string]int)

	for i, para := range paragraphs {
		counts := make(map[string]int)
		for _, tok := range segment.Tokens(para) {
			counts[tok]++
		}
		perParagraph[i] = counts
		for _, n := range counts {
			lengths[i] += n
		}
		for term := range counts {
			df[term]++
		}
	}

	nParagraphs := float64(len(paragraphs))
	out := make(map[string]float64)
	for term, docFreq := range df {
		if len(term) < minWordLen || s.stopwords[term] || isNumeric(term) {
			continue
		}
		if coveredByPhrase(term, phrases) {
			continue
		}

		idf := math.Log(1 + nParagraphs/float64(docFreq))
		var sum float64
		for i, counts := range perParagraph {
			if lengths[i] == 0 {
				continue
			}
			tf := float64(counts[term]) / float64(lengths[i])
			sum += tf * idf
		}
		out[term] = sum / nParagraphs
	}
	return out
}

// coveredByPhrase reports whether the term already appears inside a chosen
// phrase, in which case the phrase carries its weight.
func coveredByPhrase(term string, phrases map[string]float64) bool {
	for phrase := range phrases {
		if strings.Contains(phrase, term) {
			return true
		}
	}
	return false
}

func isNumeric(term string) bool {
	_, err := strconv.ParseFloat(term, 64)
	return err == nil
}

// categorize scans a fixed window around the term's first occurrence for
// category cue words. Matching is best-effort substring work; terms with no
// cue nearby default to concept.
func (s *Scorer) categorize(term, lower string) types.KeywordCategory {
	idx := strings.Index(lower, term)
	if idx < 0 {
		return types.CategoryConcept
	}

	start := idx - categoryWindow
	if start < 0 {
		start = 0
	}
	end := idx + len(term) + categoryWindow
	if end > len(lower) {
		end = len(lower)
	}
	window := lower[start:end]

	for _, trig := range s.triggers {
		for _, cue := range trig.cues {
			if strings.Contains(window, cue) {
				return trig.category
			}
		}
	}
	return types.CategoryConcept
}
