// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cards turns ranked keywords into spaced-repetition flashcards.
// Four card families are produced: definition cards built from extracted
// definition sentences, fill-in-blank cards, relationship cards for
// co-occurring term pairs, and recall cards that quiz whole categories.
// Generation is deterministic for a given input unless random template
// selection is enabled.
package cards

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/mindmesh/study-engine/internal/segment"
	"github.com/mindmesh/study-engine/pkg/types"
)

const (
	defaultMaxKeywords  = 15
	defaultMaxRelations = 5
)

// timeNow is stubbed in tests to pin review schedules.
var timeNow = time.Now

// Selector picks a question template index for a keyword. n is the number
// of templates available and is always at least 1.
type Selector func(keyword string, n int) int

// hashSelect derives the template index from an FNV-32a hash of the
// keyword, so the same keyword always gets the same phrasing.
func hashSelect(keyword string, n int) int {
	h := fnv.New32a()
	h.Write([]byte(keyword))
	return int(h.Sum32() % uint32(n))
}

// randomSelect picks a template uniformly at random.
func randomSelect(_ string, n int) int {
	return rand.IntN(n)
}

var definitionTemplates = []string{
	"What is %s?",
	"Define %s.",
	"Explain the concept of %s.",
	"How would you describe %s?",
}

var relationTemplates = []string{
	"How are %s and %s related?",
	"What connects %s and %s?",
	"Explain the relationship between %s and %s.",
}

// Generator builds flashcards from extracted keywords and document text.
type Generator struct {
	maxKeywords  int
	maxRelations int
	selector     Selector
}

// NewGenerator constructs a Generator from configuration, applying
// defaults for unset limits.
func NewGenerator(cfg types.CardConfig) *Generator {
	g := &Generator{
		maxKeywords:  cfg.MaxKeywords,
		maxRelations: cfg.MaxRelationCards,
		selector:     hashSelect,
	}
	if g.maxKeywords <= 0 {
		g.maxKeywords = defaultMaxKeywords
	}
	if g.maxRelations <= 0 {
		g.maxRelations = defaultMaxRelations
	}
	if cfg.RandomTemplates {
		g.selector = randomSelect
	}
	return g
}

// Generate produces the full card set for a document. Keywords beyond the
// configured maximum are ignored. The hierarchy supplies category grouping
// for recall cards; only its direct category branches are consulted.
func (g *Generator) Generate(keywords []types.Keyword, tree types.HierarchyNode, text string) []types.Flashcard {
	top := keywords
	if len(top) > g.maxKeywords {
		top = top[:g.maxKeywords]
	}
	if len(top) == 0 {
		return nil
	}

	sentences := segment.Sentences(text)
	contexts := make(map[string]keywordContext, len(top))
	for _, kw := range top {
		contexts[kw.Text] = extractContext(kw.Text, sentences)
	}

	createdAt := timeNow()

	var out []types.Flashcard
	for _, kw := range top {
		out = append(out, g.definitionCard(kw, contexts[kw.Text], createdAt))
	}
	for _, kw := range top {
		if card, ok := g.fillInBlankCard(kw, contexts[kw.Text], createdAt); ok {
			out = append(out, card)
		}
	}
	out = append(out, g.relationCards(top, contexts, sentences, createdAt)...)
	out = append(out, g.recallCards(tree, createdAt)...)
	return out
}

// definitionCard asks what a keyword is. The answer is the extracted
// definition when one was found and a generic statement otherwise.
func (g *Generator) definitionCard(kw types.Keyword, ctx keywordContext, createdAt time.Time) types.Flashcard {
	template := definitionTemplates[g.selector(kw.Text, len(definitionTemplates))]
	question := fmt.Sprintf(template, kw.Text)

	answer := ctx.definition
	if answer == "" {
		answer = fmt.Sprintf("%s is a %s mentioned in the document.", kw.Text, kw.Category)
	}

	difficulty := difficultyFor(kw.Score)
	return types.Flashcard{
		ID:           cardID(kw.Text, types.CardDefinition, question),
		Type:         types.CardDefinition,
		Keyword:      kw.Text,
		Question:     question,
		Answer:       answer,
		Difficulty:   difficulty,
		Category:     string(kw.Category),
		RelatedTerms: kw.RelatedTerms,
		Schedule:     buildSchedule(difficulty, createdAt),
	}
}

// fillInBlankCard blanks the keyword out of one of its sentences. No card
// is produced when the keyword never appears as a whole word.
func (g *Generator) fillInBlankCard(kw types.Keyword, ctx keywordContext, createdAt time.Time) (types.Flashcard, bool) {
	for _, s := range ctx.sentences {
		question := blankOut(s, kw.Text)
		if !strings.Contains(question, blankMarker) {
			continue
		}
		return types.Flashcard{
			ID:         cardID(kw.Text, types.CardFillInBlank, question),
			Type:       types.CardFillInBlank,
			Keyword:    kw.Text,
			Question:   question,
			Answer:     kw.Text,
			Difficulty: types.DifficultyMedium,
			Category:   string(kw.Category),
			Hint:       fmt.Sprintf("This is a %s term", kw.Category),
			Schedule:   buildSchedule(types.DifficultyMedium, createdAt),
		}, true
	}
	return types.Flashcard{}, false
}

// relationCards pairs each keyword with its strongest related term, up to
// the configured maximum. Pairs are deduplicated regardless of order.
func (g *Generator) relationCards(top []types.Keyword, contexts map[string]keywordContext, sentences []string, createdAt time.Time) []types.Flashcard {
	var out []types.Flashcard
	seen := make(map[string]bool)

	for _, kw := range top {
		if len(out) >= g.maxRelations {
			break
		}
		if len(kw.RelatedTerms) == 0 {
			continue
		}
		other := kw.RelatedTerms[0]
		key := pairKey(kw.Text, other)
		if seen[key] {
			continue
		}
		seen[key] = true

		template := relationTemplates[g.selector(kw.Text+other, len(relationTemplates))]
		question := fmt.Sprintf(template, kw.Text, other)

		answer := sentenceWithBoth(sentences, kw.Text, other)
		if answer == "" {
			answer = jointDefinition(kw.Text, other, contexts)
		}

		out = append(out, types.Flashcard{
			ID:           cardID(kw.Text, types.CardRelation, question),
			Type:         types.CardRelation,
			Keyword:      kw.Text,
			Question:     question,
			Answer:       answer,
			Difficulty:   types.DifficultyHard,
			Category:     string(kw.Category),
			RelatedTerms: kw.RelatedTerms,
			Schedule:     buildSchedule(types.DifficultyHard, createdAt),
		})
	}
	return out
}

// jointDefinition concatenates the definitions of both terms, falling back
// to a generic statement when neither has one.
func jointDefinition(a, b string, contexts map[string]keywordContext) string {
	var parts []string
	if ctx, ok := contexts[a]; ok && ctx.definition != "" {
		parts = append(parts, ctx.definition)
	}
	if ctx, ok := contexts[b]; ok && ctx.definition != "" {
		parts = append(parts, ctx.definition)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%s and %s appear together in this document.", a, b)
	}
	return strings.Join(parts, " ")
}

// recallCards quizzes each category branch of the hierarchy that holds at
// least two terms. The answer lists the branch's terms in rank order.
func (g *Generator) recallCards(tree types.HierarchyNode, createdAt time.Time) []types.Flashcard {
	var out []types.Flashcard
	for _, branch := range tree.Children {
		if branch.Type != types.NodeCategory {
			continue
		}
		terms := make([]string, 0, len(branch.Children))
		for _, leaf := range branch.Children {
			terms = append(terms, leaf.Label)
		}
		if len(terms) < 2 {
			continue
		}
		if len(terms) > 5 {
			terms = terms[:5]
		}

		category := string(branch.Category)
		question := fmt.Sprintf("List at least 3 %s terms from the document.", category)
		out = append(out, types.Flashcard{
			ID:         cardID(category, types.CardRecall, question),
			Type:       types.CardRecall,
			Keyword:    category,
			Question:   question,
			Answer:     strings.Join(terms, ", "),
			Difficulty: types.DifficultyMedium,
			Category:   category,
			Schedule:   buildSchedule(types.DifficultyMedium, createdAt),
		})
	}
	return out
}

// cardID derives a stable identifier from the card's defining fields, so
// re-running the pipeline on unchanged text yields identical IDs.
func cardID(keyword string, cardType types.CardType, question string) string {
	sum := sha256.Sum256([]byte(keyword + "|" + string(cardType) + "|" + question))
	return hex.EncodeToString(sum[:])[:12]
}

// pairKey builds an order-insensitive dedup key for a term pair.
func pairKey(a, b string) string {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la > lb {
		la, lb = lb, la
	}
	return la + "|" + lb
}
