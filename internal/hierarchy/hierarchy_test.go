package hierarchy

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mindmesh/study-engine/pkg/types"
)

func kw(text string, score float64, cat types.KeywordCategory) types.Keyword {
	return types.Keyword{Text: text, Score: score, Category: cat}
}

func sampleKeywords() []types.Keyword {
	return []types.Keyword{
		kw("machine learning", 4.0, types.CategoryConcept),
		kw("neural networks", 2.0, types.CategoryConcept),
		kw("training", 1.5, types.CategoryProcess),
		kw("gradient", 1.0, types.CategoryDefinition),
		kw("backpropagation", 0.8, types.CategoryProcess),
		kw("dataset", 0.5, types.CategoryConcept),
	}
}

const sampleText = `Machine learning relies on neural networks. Training adjusts the gradient at every layer.
First the dataset is shuffled. Then training begins with backpropagation. Finally the model converges.`

// --- tree shape tests ---

func TestBuildLevels(t *testing.T) {
	root, _ := Build(sampleKeywords(), sampleText)

	if root.Level != 0 || root.Type != types.NodeRoot {
		t.Fatalf("root = level %d type %s, want level 0 type root", root.Level, root.Type)
	}

	var walk func(n types.HierarchyNode)
	walk = func(n types.HierarchyNode) {
		for _, c := range n.Children {
			if c.Level != n.Level+1 {
				t.Errorf("node %s level = %d, parent %s level = %d", c.ID, c.Level, n.ID, n.Level)
			}
			walk(c)
		}
	}
	walk(root)
}

func TestBuildUniqueIDs(t *testing.T) {
	root, _ := Build(sampleKeywords(), sampleText)

	seen := map[string]bool{}
	var walk func(n types.HierarchyNode)
	walk = func(n types.HierarchyNode) {
		if seen[n.ID] {
			t.Errorf("duplicate node ID %q", n.ID)
		}
		seen[n.ID] = true
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
}

func TestBuildBranchOrder(t *testing.T) {
	root, _ := Build(sampleKeywords(), sampleText)

	if len(root.Children) < 2 {
		t.Fatalf("root has %d children, want summary plus topics at minimum", len(root.Children))
	}
	if root.Children[0].Type != types.NodeSummary {
		t.Errorf("first branch = %s, want summary", root.Children[0].Type)
	}
	if root.Children[1].Type != types.NodeTopics {
		t.Errorf("second branch = %s, want topics", root.Children[1].Type)
	}
}

// --- summary tests ---

func TestSummaryBranch(t *testing.T) {
	root, _ := Build(sampleKeywords(), sampleText)

	summary := root.Children[0]
	if len(summary.Children) != 3 {
		t.Fatalf("summary has %d info leaves, want 3", len(summary.Children))
	}
	if !strings.Contains(summary.Children[0].Label, "machine learning") {
		t.Errorf("main topic leaf = %q, want top keyword", summary.Children[0].Label)
	}
	if !strings.Contains(summary.Children[2].Label, "6 keywords") {
		t.Errorf("keyword count leaf = %q, want 6 keywords", summary.Children[2].Label)
	}
}

func TestSummaryFallsBackToGeneral(t *testing.T) {
	root, _ := Build(nil, "Some text that produced no keywords at all.")

	summary := root.Children[0]
	if !strings.Contains(summary.Children[0].Label, "General") {
		t.Errorf("main topic leaf = %q, want General fallback", summary.Children[0].Label)
	}
}

func TestNoKeywordsOmitsTopicsAndCategories(t *testing.T) {
	root, _ := Build(nil, "Some text that produced no keywords at all.")

	for _, c := range root.Children {
		if c.Type == types.NodeTopics || c.Type == types.NodeCategory {
			t.Errorf("branch %s should be omitted without keywords", c.Type)
		}
	}
}

// --- topics tests ---

func TestTopicsNumberedByRank(t *testing.T) {
	root, _ := Build(sampleKeywords(), sampleText)

	topics := root.Children[1]
	if len(topics.Children) != 5 {
		t.Fatalf("topics has %d leaves, want 5", len(topics.Children))
	}
	for i, leaf := range topics.Children {
		wantPrefix := fmt.Sprintf("%d. ", i+1)
		if !strings.HasPrefix(leaf.Label, wantPrefix) {
			t.Errorf("topic leaf %d label = %q, want prefix %q", i, leaf.Label, wantPrefix)
		}
		if leaf.Score == nil {
			t.Errorf("topic leaf %d missing score", i)
		}
	}
}

// --- workflow tests ---

func TestWorkflowBranch(t *testing.T) {
	root, _ := Build(sampleKeywords(), sampleText)

	var workflow *types.HierarchyNode
	for i := range root.Children {
		if root.Children[i].Type == types.NodeWorkflow {
			workflow = &root.Children[i]
		}
	}
	if workflow == nil {
		t.Fatal("workflow branch missing")
	}

	var processes, steps int
	for _, c := range workflow.Children {
		switch c.Type {
		case types.NodeProcess:
			processes++
		case types.NodeStep:
			if len(c.Label) > stepLabelLen {
				t.Errorf("step label %q exceeds %d chars", c.Label, stepLabelLen)
			}
			steps++
		}
	}
	if processes != 2 {
		t.Errorf("process leaves = %d, want 2 (training, backpropagation)", processes)
	}
	if steps == 0 || steps > maxWorkflowSteps {
		t.Errorf("step leaves = %d, want 1..%d", steps, maxWorkflowSteps)
	}
}

func TestWorkflowStepLabelRuneBoundary(t *testing.T) {
	// The accented rune straddles the 50-byte label cut.
	root, _ := Build(nil, "First we mix the batter carefully in the bigg café bowl today")

	var step *types.HierarchyNode
	for i := range root.Children {
		if root.Children[i].Type != types.NodeWorkflow {
			continue
		}
		for j := range root.Children[i].Children {
			if root.Children[i].Children[j].Type == types.NodeStep {
				step = &root.Children[i].Children[j]
			}
		}
	}
	if step == nil {
		t.Fatal("workflow step missing")
	}
	if !utf8.ValidString(step.Label) {
		t.Fatalf("step label is not valid UTF-8: %q", step.Label)
	}
	if !strings.HasSuffix(step.Label, "caf") {
		t.Errorf("step label = %q, want the partial rune dropped", step.Label)
	}
}

func TestWorkflowOmittedWhenEmpty(t *testing.T) {
	kws := []types.Keyword{kw("gravity", 1.0, types.CategoryConcept)}
	root, _ := Build(kws, "Gravity bends spacetime around massive objects everywhere.")

	for _, c := range root.Children {
		if c.Type == types.NodeWorkflow {
			t.Error("workflow branch should be omitted with no processes or steps")
		}
	}
}

// --- category branch tests ---

func TestCategoryBranches(t *testing.T) {
	root, _ := Build(sampleKeywords(), sampleText)

	got := map[string]int{}
	for _, c := range root.Children {
		if c.Type == types.NodeCategory {
			got[c.Label] = len(c.Children)
		}
	}

	want := map[string]int{"Concept": 3, "Process": 2, "Definition": 1}
	for label, n := range want {
		if got[label] != n {
			t.Errorf("category %s has %d leaves, want %d", label, got[label], n)
		}
	}
}

func TestCategoryLeavesCapped(t *testing.T) {
	var kws []types.Keyword
	for i := 0; i < 9; i++ {
		kws = append(kws, kw(fmt.Sprintf("term%d", i), float64(9-i), types.CategoryConcept))
	}
	root, _ := Build(kws, "irrelevant text for this test case entirely.")

	for _, c := range root.Children {
		if c.Type == types.NodeCategory && len(c.Children) > maxCategoryLeaves {
			t.Errorf("category %s has %d leaves, want <= %d", c.Label, len(c.Children), maxCategoryLeaves)
		}
	}
}

// --- relatedness tests ---

func TestRelate(t *testing.T) {
	kws := []types.Keyword{
		kw("alpha", 3, types.CategoryConcept),
		kw("beta", 2, types.CategoryConcept),
		kw("gamma", 1, types.CategoryConcept),
		kw("delta", 0.5, types.CategoryConcept),
	}
	sentences := []string{
		"alpha and beta appear together here",
		"alpha with beta and gamma in one place",
		"delta stands alone in this sentence",
	}

	enriched := Relate(kws, sentences)

	related := enriched[0].RelatedTerms
	if len(related) != 2 {
		t.Fatalf("alpha related = %v, want beta and gamma", related)
	}
	// beta co-occurs twice, gamma once.
	if related[0] != "beta" || related[1] != "gamma" {
		t.Errorf("alpha related = %v, want [beta gamma]", related)
	}

	if len(enriched[3].RelatedTerms) != 0 {
		t.Errorf("delta related = %v, want none", enriched[3].RelatedTerms)
	}
}

func TestRelateTiesBrokenByRank(t *testing.T) {
	kws := []types.Keyword{
		kw("alpha", 3, types.CategoryConcept),
		kw("beta", 2, types.CategoryConcept),
		kw("gamma", 1.5, types.CategoryConcept),
		kw("delta", 1, types.CategoryConcept),
		kw("epsilon", 0.5, types.CategoryConcept),
	}
	sentences := []string{"alpha beta gamma delta epsilon all share this sentence"}

	enriched := Relate(kws, sentences)

	// Every other keyword co-occurs exactly once; rank order decides.
	want := []string{"beta", "gamma", "delta"}
	got := enriched[0].RelatedTerms
	if len(got) != len(want) {
		t.Fatalf("alpha related = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("related[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRelateDoesNotMutateInput(t *testing.T) {
	kws := []types.Keyword{
		kw("alpha", 3, types.CategoryConcept),
		kw("beta", 2, types.CategoryConcept),
	}
	Relate(kws, []string{"alpha and beta share this sentence"})

	for _, k := range kws {
		if k.RelatedTerms != nil {
			t.Errorf("input keyword %q mutated: related = %v", k.Text, k.RelatedTerms)
		}
	}
}
