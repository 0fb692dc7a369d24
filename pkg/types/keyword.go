// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// KeywordCategory labels the role a keyword plays in the source document.
// Categories are assigned heuristically from the text surrounding the
// keyword's first occurrence.
type KeywordCategory string

const (
	CategoryStructure  KeywordCategory = "structure"
	CategoryDefinition KeywordCategory = "definition"
	CategoryImportant  KeywordCategory = "important"
	CategoryExample    KeywordCategory = "example"
	CategoryProcess    KeywordCategory = "process"
	CategoryConcept    KeywordCategory = "concept"
)

// Keyword is a scored term or phrase extracted from a document. Keywords are
// unique by lowercase Text within one extraction run.
type Keyword struct {
	// Text is the term or multi-word phrase, lowercased.
	Text string `json:"text" yaml:"text"`

	// Score is the term's weight: mean TF-IDF for single words, doubled raw
	// frequency for mined phrases. Always finite and non-negative.
	Score float64 `json:"score" yaml:"score"`

	// Category is the heuristic role label for the term.
	Category KeywordCategory `json:"category" yaml:"category"`

	// RelatedTerms lists up to three other keywords that co-occur in the
	// same sentences, strongest association first. Populated during
	// hierarchy construction.
	RelatedTerms []string `json:"related_terms,omitempty" yaml:"related_terms,omitempty"`
}

// Concept pairs a top-ranked keyword with a human-readable description for
// consumers that want a flatter view than the hierarchy tree.
type Concept struct {
	// Term is the keyword text.
	Term string `json:"term" yaml:"term"`

	// Score is the keyword's extraction score.
	Score float64 `json:"score" yaml:"score"`

	// Category is the keyword's category label.
	Category KeywordCategory `json:"category" yaml:"category"`

	// Description is the first sentence of the document that mentions the
	// term, or empty when no sentence does.
	Description string `json:"description" yaml:"description"`
}
