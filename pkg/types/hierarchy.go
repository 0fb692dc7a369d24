// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// NodeType identifies the role of a node within the knowledge hierarchy.
// The tree has a fixed shape: a root with summary, topics, optional workflow,
// and per-category branches.
type NodeType string

const (
	NodeRoot     NodeType = "root"
	NodeSummary  NodeType = "summary"
	NodeTopics   NodeType = "topics"
	NodeWorkflow NodeType = "workflow"
	NodeCategory NodeType = "category"
	NodeInfo     NodeType = "info"
	NodeTopic    NodeType = "topic"
	NodeProcess  NodeType = "process"
	NodeStep     NodeType = "step"
	NodeKeyword  NodeType = "keyword"
)

// HierarchyNode is one node of the knowledge tree. Nodes form a strict tree
// (single parent, no cycles) and are immutable once the builder returns them.
// A child's Level is always the parent's Level plus one.
type HierarchyNode struct {
	// ID is a tree-local identifier, unique within one built hierarchy.
	ID string `json:"id" yaml:"id"`

	// Label is the display text for the node.
	Label string `json:"label" yaml:"label"`

	// Level is the node's depth; the root is level 0.
	Level int `json:"level" yaml:"level"`

	// Type identifies the node's role in the fixed tree shape.
	Type NodeType `json:"type" yaml:"type"`

	// Score carries the keyword score for keyword and topic nodes. Nil for
	// structural nodes.
	Score *float64 `json:"score,omitempty" yaml:"score,omitempty"`

	// Category carries the keyword category for keyword and category nodes.
	Category KeywordCategory `json:"category,omitempty" yaml:"category,omitempty"`

	// RelatedTerms lists co-occurring keywords for keyword nodes.
	RelatedTerms []string `json:"related_terms,omitempty" yaml:"related_terms,omitempty"`

	// Children holds the node's ordered subtrees.
	Children []HierarchyNode `json:"children,omitempty" yaml:"children,omitempty"`
}
