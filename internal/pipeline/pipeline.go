// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the full study-artifact pipeline on raw document
// text: keyword extraction, hierarchy construction, graph projection,
// flashcard generation, and extractive summarization. The stages are pure
// transformations, so a result is fully determined by the input text and
// configuration.
package pipeline

import (
	"strings"

	"github.com/mindmesh/study-engine/internal/cards"
	"github.com/mindmesh/study-engine/internal/graph"
	"github.com/mindmesh/study-engine/internal/hierarchy"
	"github.com/mindmesh/study-engine/internal/keywords"
	"github.com/mindmesh/study-engine/internal/segment"
	"github.com/mindmesh/study-engine/pkg/types"
)

// maxConcepts caps the flat concept view of the keyword list.
const maxConcepts = 10

// Pipeline ties the study stages together behind one entry point.
type Pipeline struct {
	scorer    *keywords.Scorer
	generator *cards.Generator
}

// New builds a pipeline from configuration. Zero-valued configuration
// yields the default stage settings.
func New(cfg types.PipelineConfig) *Pipeline {
	return &Pipeline{
		scorer:    keywords.NewScorer(cfg.Scoring),
		generator: cards.NewGenerator(cfg.Cards),
	}
}

// Process runs every stage on the raw text and assembles the study result.
// It is total: any input, including empty or pathological text, produces a
// well-formed result. Whitespace-only input yields a bare result whose
// hierarchy is a lone root and whose graph has a single node.
func (p *Pipeline) Process(rawText, sourceLabel string) types.StudyResult {
	cleaned := segment.Clean(rawText)

	result := types.StudyResult{SourceLabel: sourceLabel}
	if cleaned == "" {
		result.Hierarchy = types.HierarchyNode{
			ID:    "root",
			Label: "Document",
			Level: 0,
			Type:  types.NodeRoot,
		}
		result.Graph = graph.Project(result.Hierarchy)
		return result
	}

	extracted := p.scorer.Extract(cleaned)
	root, enriched := hierarchy.Build(extracted, cleaned)
	sentences := segment.Sentences(cleaned)

	result.Keywords = enriched
	result.Hierarchy = root
	result.Concepts = concepts(enriched, sentences)
	result.Flashcards = p.generator.Generate(enriched, root, cleaned)
	result.Graph = graph.Project(root)
	result.Summary = summarize(sentences, defaultSummarySentences)
	result.Stats = segment.Stats(cleaned)
	return result
}

// concepts flattens the top keywords into term/description pairs. The
// description is the first sentence mentioning the term.
func concepts(kws []types.Keyword, sentences []string) []types.Concept {
	n := len(kws)
	if n > maxConcepts {
		n = maxConcepts
	}
	if n == 0 {
		return nil
	}

	out := make([]types.Concept, 0, n)
	for _, kw := range kws[:n] {
		out = append(out, types.Concept{
			Term:        kw.Text,
			Score:       kw.Score,
			Category:    kw.Category,
			Description: firstMention(kw.Text, sentences),
		})
	}
	return out
}

func firstMention(term string, sentences []string) string {
	lower := strings.ToLower(term)
	for _, s := range sentences {
		if strings.Contains(strings.ToLower(s), lower) {
			return s
		}
	}
	return ""
}
