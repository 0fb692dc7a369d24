// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph projects a knowledge hierarchy into flat node and edge
// lists with deterministic radial coordinates. Children of each node sit
// evenly spaced on a circle around their parent, with radius growing by
// tree depth. The layout is polar rather than force-directed so identical
// input always yields identical positions.
package graph

import (
	"fmt"
	"math"
	"strings"

	"github.com/mindmesh/study-engine/pkg/types"
)

// ringSpacing is the radius increment per tree level.
const ringSpacing = 200.0

// categoryColors maps keyword categories to node colors. Lookups fall back
// to defaultColor for unknown categories.
var categoryColors = map[types.KeywordCategory]string{
	types.CategoryStructure:  "#34495e",
	types.CategoryDefinition: "#2980b9",
	types.CategoryImportant:  "#c0392b",
	types.CategoryExample:    "#27ae60",
	types.CategoryProcess:    "#e67e22",
	types.CategoryConcept:    "#8e44ad",
}

const defaultColor = "#7f8c8d"

// branchColors distinguishes the fixed structural branches.
var branchColors = map[types.NodeType]string{
	types.NodeSummary:  "#3498db",
	types.NodeTopics:   "#9b59b6",
	types.NodeWorkflow: "#e67e22",
}

// Project walks the hierarchy depth-first, assigning sequential integer IDs
// and one edge per parent-child link. A zero-value root produces an empty
// graph.
func Project(root types.HierarchyNode) types.Graph {
	if root.ID == "" && root.Label == "" && len(root.Children) == 0 {
		return types.Graph{}
	}

	p := &projector{}
	p.visit(root, 0, 0)
	return types.Graph{Nodes: p.nodes, Edges: p.edges}
}

type projector struct {
	nodes  []types.GraphNode
	edges  []types.GraphEdge
	nextID int
}

// visit places a node at (x, y), then lays its children out on a circle
// around it and recurses. Returns the node's projection-local ID.
func (p *projector) visit(n types.HierarchyNode, x, y float64) int {
	p.nextID++
	id := p.nextID

	p.nodes = append(p.nodes, types.GraphNode{
		ID:      id,
		Label:   n.Label,
		Tooltip: tooltipFor(n),
		Level:   n.Level,
		X:       x,
		Y:       y,
		Style:   styleFor(n),
	})

	if len(n.Children) == 0 {
		return id
	}

	radius := ringSpacing * float64(n.Level+1)
	step := 2 * math.Pi / float64(len(n.Children))

	for i, child := range n.Children {
		angle := step * float64(i)
		childID := p.visit(child, x+radius*math.Cos(angle), y+radius*math.Sin(angle))

		weight := 1.0
		if child.Score != nil {
			weight = *child.Score
		}
		p.edges = append(p.edges, types.GraphEdge{From: id, To: childID, Weight: weight})
	}
	return id
}

// styleFor derives a node's rendering hints purely from its type, level,
// score, and category.
func styleFor(n types.HierarchyNode) types.VisualStyle {
	switch n.Type {
	case types.NodeRoot:
		return types.VisualStyle{Color: "#2c3e50", Size: 40, Shape: "box", FontSize: 18, FontColor: "#ffffff"}

	case types.NodeSummary, types.NodeTopics, types.NodeWorkflow:
		return types.VisualStyle{Color: branchColors[n.Type], Size: 30, Shape: "box", FontSize: 14, FontColor: "#ffffff"}

	case types.NodeCategory:
		return types.VisualStyle{Color: "#16a085", Size: 25, Shape: "ellipse", FontSize: 13, FontColor: "#ffffff"}

	case types.NodeKeyword, types.NodeTopic, types.NodeProcess:
		size := 20.0
		if n.Score != nil {
			size += *n.Score * 10
		}
		return types.VisualStyle{Color: colorFor(n.Category), Size: size, Shape: "dot", FontSize: 12, FontColor: "#2c3e50"}

	default: // info, step, and any future leaf type
		return types.VisualStyle{Color: "#95a5a6", Size: 15, Shape: "dot", FontSize: 11, FontColor: "#2c3e50"}
	}
}

// colorFor looks up a category color with a defined default so unknown
// categories never break rendering.
func colorFor(cat types.KeywordCategory) string {
	if c, ok := categoryColors[cat]; ok {
		return c
	}
	return defaultColor
}

// tooltipFor derives hover text purely from the node's stored fields.
func tooltipFor(n types.HierarchyNode) string {
	switch n.Type {
	case types.NodeRoot:
		return "Document root"

	case types.NodeSummary, types.NodeTopics, types.NodeWorkflow, types.NodeInfo, types.NodeStep:
		return n.Label

	case types.NodeCategory:
		return fmt.Sprintf("Category: %s", n.Label)

	default:
		var b strings.Builder
		b.WriteString(n.Label)
		if n.Score != nil {
			fmt.Fprintf(&b, " (score %.0f%%)", *n.Score*100)
		}
		if n.Category != "" {
			fmt.Fprintf(&b, " [%s]", n.Category)
		}
		if len(n.RelatedTerms) > 0 {
			fmt.Fprintf(&b, " related: %s", strings.Join(n.RelatedTerms, ", "))
		}
		return b.String()
	}
}
