// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DocumentStats holds the structural counts reported alongside a study
// result.
type DocumentStats struct {
	// WordCount is the whitespace-delimited token count of the cleaned text.
	WordCount int `json:"word_count" yaml:"word_count"`

	// SentenceCount is the number of sentences found in the text.
	SentenceCount int `json:"sentence_count" yaml:"sentence_count"`

	// ParagraphCount is the number of blank-line-delimited paragraphs.
	ParagraphCount int `json:"paragraph_count" yaml:"paragraph_count"`

	// HeadingCount is the number of lines detected as headings.
	HeadingCount int `json:"heading_count" yaml:"heading_count"`
}

// StudyResult bundles the five linked study artifacts produced from one
// document, plus the extractive summary and structural statistics. All fields
// are plain data and serialize to JSON or YAML without loss.
type StudyResult struct {
	// SourceLabel names the document the result was built from.
	SourceLabel string `json:"source_label" yaml:"source_label"`

	// Keywords is the ranked keyword list, descending by score.
	Keywords []Keyword `json:"keywords" yaml:"keywords"`

	// Hierarchy is the knowledge tree rooted at a single root node.
	Hierarchy HierarchyNode `json:"hierarchy" yaml:"hierarchy"`

	// Concepts is the flat top-10 keyword view with descriptions.
	Concepts []Concept `json:"concepts" yaml:"concepts"`

	// Flashcards is the generated card deck with review schedules.
	Flashcards []Flashcard `json:"flashcards" yaml:"flashcards"`

	// Graph is the positioned node/edge projection of the hierarchy.
	Graph Graph `json:"graph" yaml:"graph"`

	// Summary is a short extractive summary of the document.
	Summary string `json:"summary" yaml:"summary"`

	// Stats holds structural counts for the document.
	Stats DocumentStats `json:"stats" yaml:"stats"`
}
