// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hierarchy assembles extracted keywords into a fixed-shape
// knowledge tree: a root with summary, topics, an optional workflow branch,
// and one branch per keyword category. See docs/ARCHITECTURE § Knowledge
// Hierarchy.
package hierarchy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mindmesh/study-engine/internal/segment"
	"github.com/mindmesh/study-engine/pkg/types"
)

const (
	// maxTopics caps the leaves of the topics branch.
	maxTopics = 5

	// maxWorkflowKeywords and maxWorkflowSteps cap the workflow branch.
	maxWorkflowKeywords = 3
	maxWorkflowSteps    = 3

	// maxCategoryLeaves caps keyword leaves per category branch.
	maxCategoryLeaves = 5

	// maxRelated caps co-occurrence associations per keyword.
	maxRelated = 3

	// stepLabelLen truncates workflow step labels.
	stepLabelLen = 50
)

// sequenceMarkers flag sentences that describe ordered steps.
var sequenceMarkers = []string{"first", "second", "then", "next", "finally", "step"}

// Build constructs the knowledge tree for the ranked keywords and source
// text. It returns the immutable root node and a copy of the keywords
// enriched with co-occurrence related terms; the input slice is not
// modified.
func Build(keywords []types.Keyword, text string) (types.HierarchyNode, []types.Keyword) {
	sentences := segment.Sentences(text)
	enriched := Relate(keywords, sentences)

	root := types.HierarchyNode{
		ID:    "root",
		Label: "Document",
		Level: 0,
		Type:  types.NodeRoot,
	}

	root.Children = append(root.Children, summaryBranch(enriched, len(sentences)))

	if topics := topicsBranch(enriched); len(topics.Children) > 0 {
		root.Children = append(root.Children, topics)
	}

	if workflow, ok := workflowBranch(enriched, sentences); ok {
		root.Children = append(root.Children, workflow)
	}

	root.Children = append(root.Children, categoryBranches(enriched)...)

	return root, enriched
}

// Relate computes co-occurrence related terms for each keyword: across all
// sentences containing the keyword, other keywords appearing in the same
// sentences are counted, and the top three become the keyword's related
// terms. Ties are broken by original keyword rank.
func Relate(keywords []types.Keyword, sentences []string) []types.Keyword {
	lowered := make([]string, len(sentences))
	for i, s := range sentences {
		lowered[i] = strings.ToLower(s)
	}

	// occurs[i] lists the sentences mentioning keyword i.
	occurs := make([][]int, len(keywords))
	for i, kw := range keywords {
		for j, s := range lowered {
			if strings.Contains(s, kw.Text) {
				occurs[i] = append(occurs[i], j)
			}
		}
	}

	enriched := make([]types.Keyword, len(keywords))
	copy(enriched, keywords)

	for i := range keywords {
		counts := make([]int, len(keywords))
		for _, sentIdx := range occurs[i] {
			for j, kw := range keywords {
				if j == i {
					continue
				}
				if strings.Contains(lowered[sentIdx], kw.Text) {
					counts[j]++
				}
			}
		}

		// Rank order is the natural order of the slice, so a stable sort by
		// count alone preserves it for ties.
		order := make([]int, 0, len(keywords))
		for j, n := range counts {
			if n > 0 {
				order = append(order, j)
			}
		}
		sort.SliceStable(order, func(a, b int) bool {
			return counts[order[a]] > counts[order[b]]
		})

		if len(order) > maxRelated {
			order = order[:maxRelated]
		}
		var related []string
		for _, j := range order {
			related = append(related, keywords[j].Text)
		}
		enriched[i].RelatedTerms = related
	}

	return enriched
}

// summaryBranch reports the top keyword, sentence count, and keyword count
// as fixed info leaves. With no keywords the main topic falls back to
// "General".
func summaryBranch(keywords []types.Keyword, sentenceCount int) types.HierarchyNode {
	topic := "General"
	if len(keywords) > 0 {
		topic = keywords[0].Text
	}

	branch := types.HierarchyNode{
		ID:    "summary",
		Label: "Summary",
		Level: 1,
		Type:  types.NodeSummary,
	}

	infos := []string{
		fmt.Sprintf("Main topic: %s", topic),
		fmt.Sprintf("%d sentences", sentenceCount),
		fmt.Sprintf("%d keywords", len(keywords)),
	}
	for i, label := range infos {
		branch.Children = append(branch.Children, types.HierarchyNode{
			ID:    fmt.Sprintf("info-%d", i+1),
			Label: label,
			Level: 2,
			Type:  types.NodeInfo,
		})
	}
	return branch
}

// topicsBranch lists the top keywords verbatim, numbered by rank.
func topicsBranch(keywords []types.Keyword) types.HierarchyNode {
	branch := types.HierarchyNode{
		ID:    "topics",
		Label: "Top Topics",
		Level: 1,
		Type:  types.NodeTopics,
	}

	n := len(keywords)
	if n > maxTopics {
		n = maxTopics
	}
	for i := 0; i < n; i++ {
		kw := keywords[i]
		score := kw.Score
		branch.Children = append(branch.Children, types.HierarchyNode{
			ID:    fmt.Sprintf("topic-%d", i+1),
			Label: fmt.Sprintf("%d. %s", i+1, kw.Text),
			Level: 2,
			Type:  types.NodeTopic,
			Score: &score,
		})
	}
	return branch
}

// workflowBranch collects process-category keywords and sequence-marker
// sentences. The branch is omitted entirely when both sources are empty.
func workflowBranch(keywords []types.Keyword, sentences []string) (types.HierarchyNode, bool) {
	branch := types.HierarchyNode{
		ID:    "workflow",
		Label: "Workflow",
		Level: 1,
		Type:  types.NodeWorkflow,
	}

	count := 0
	for _, kw := range keywords {
		if kw.Category != types.CategoryProcess {
			continue
		}
		score := kw.Score
		branch.Children = append(branch.Children, types.HierarchyNode{
			ID:       fmt.Sprintf("process-%d", count+1),
			Label:    kw.Text,
			Level:    2,
			Type:     types.NodeProcess,
			Score:    &score,
			Category: kw.Category,
		})
		count++
		if count == maxWorkflowKeywords {
			break
		}
	}

	steps := 0
	for _, sentence := range sentences {
		if !hasSequenceMarker(sentence) {
			continue
		}
		label := segment.Truncate(sentence, stepLabelLen)
		branch.Children = append(branch.Children, types.HierarchyNode{
			ID:    fmt.Sprintf("step-%d", steps+1),
			Label: label,
			Level: 2,
			Type:  types.NodeStep,
		})
		steps++
		if steps == maxWorkflowSteps {
			break
		}
	}

	return branch, len(branch.Children) > 0
}

func hasSequenceMarker(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, marker := range sequenceMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// categoryBranches builds one branch per distinct category, in order of
// first appearance in the ranked list, each holding up to five keyword
// leaves.
func categoryBranches(keywords []types.Keyword) []types.HierarchyNode {
	grouped := make(map[types.KeywordCategory][]types.Keyword)
	var order []types.KeywordCategory
	for _, kw := range keywords {
		if _, seen := grouped[kw.Category]; !seen {
			order = append(order, kw.Category)
		}
		grouped[kw.Category] = append(grouped[kw.Category], kw)
	}

	var branches []types.HierarchyNode
	for _, cat := range order {
		branch := types.HierarchyNode{
			ID:       fmt.Sprintf("category-%s", cat),
			Label:    titleCase(string(cat)),
			Level:    1,
			Type:     types.NodeCategory,
			Category: cat,
		}

		members := grouped[cat]
		if len(members) > maxCategoryLeaves {
			members = members[:maxCategoryLeaves]
		}
		for i, kw := range members {
			score := kw.Score
			branch.Children = append(branch.Children, types.HierarchyNode{
				ID:           fmt.Sprintf("keyword-%s-%d", cat, i+1),
				Label:        kw.Text,
				Level:        2,
				Type:         types.NodeKeyword,
				Score:        &score,
				Category:     kw.Category,
				RelatedTerms: kw.RelatedTerms,
			})
		}
		branches = append(branches, branch)
	}
	return branches
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
