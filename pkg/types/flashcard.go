// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// CardType identifies the question template family a flashcard was built from.
type CardType string

const (
	CardDefinition  CardType = "definition"
	CardFillInBlank CardType = "fill-in-blank"
	CardRelation    CardType = "relationship"
	CardRecall      CardType = "recall"
)

// Difficulty grades a flashcard and selects its review interval table.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ReviewEntry is one step of a flashcard's spaced-repetition schedule.
// Entries are ordered and due dates strictly increase within a card.
type ReviewEntry struct {
	// ReviewNumber counts reviews starting at 1.
	ReviewNumber int `json:"review_number" yaml:"review_number"`

	// DueDate is when the review becomes due.
	DueDate time.Time `json:"due_date" yaml:"due_date"`

	// Completed records whether the review has been done.
	Completed bool `json:"completed" yaml:"completed"`
}

// Flashcard is a generated question/answer pair with its review schedule.
// Cards are immutable once generated; review state lives in the study store.
type Flashcard struct {
	// ID is a stable identifier derived from the card's keyword, type, and
	// question, consistent across re-runs on unchanged text.
	ID string `json:"id" yaml:"id"`

	// Type identifies the template family used to build the card.
	Type CardType `json:"type" yaml:"type"`

	// Keyword is the extracted keyword the card was generated for.
	Keyword string `json:"keyword" yaml:"keyword"`

	// Question is the prompt side of the card.
	Question string `json:"question" yaml:"question"`

	// Answer is the response side of the card.
	Answer string `json:"answer" yaml:"answer"`

	// Difficulty grades the card and keys its review interval table.
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`

	// Category is the keyword's category label.
	Category string `json:"category" yaml:"category"`

	// RelatedTerms carries the keyword's co-occurrence associations.
	RelatedTerms []string `json:"related_terms,omitempty" yaml:"related_terms,omitempty"`

	// Hint is optional recall help shown before the answer.
	Hint string `json:"hint,omitempty" yaml:"hint,omitempty"`

	// Schedule is the card's spaced-repetition review plan, one entry per
	// interval in the difficulty's table.
	Schedule []ReviewEntry `json:"schedule" yaml:"schedule"`
}
