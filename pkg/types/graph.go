// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// VisualStyle holds per-node rendering hints for graph consumers. Style is a
// pure function of the source node's type, level, and category.
type VisualStyle struct {
	// Color is the node's fill color as a hex string (e.g. "#2c3e50").
	Color string `json:"color" yaml:"color"`

	// Size is the node's diameter in layout units.
	Size float64 `json:"size" yaml:"size"`

	// Shape names the node's outline: box, ellipse, or dot.
	Shape string `json:"shape" yaml:"shape"`

	// FontSize is the label font size in points.
	FontSize int `json:"font_size" yaml:"font_size"`

	// FontColor is the label color as a hex string.
	FontColor string `json:"font_color" yaml:"font_color"`
}

// GraphNode is a positioned node in the projected knowledge graph. Node IDs
// are projection-local sequence numbers, not hierarchy node IDs.
type GraphNode struct {
	// ID is the projection-local sequential identifier, starting at 1.
	ID int `json:"id" yaml:"id"`

	// Label is the display text, taken from the hierarchy node.
	Label string `json:"label" yaml:"label"`

	// Tooltip is descriptive hover text derived from the node's fields.
	Tooltip string `json:"tooltip" yaml:"tooltip"`

	// Level is the hierarchy depth of the source node.
	Level int `json:"level" yaml:"level"`

	// X and Y are radial layout coordinates; the root sits at the origin.
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`

	// Style holds rendering hints for the node.
	Style VisualStyle `json:"style" yaml:"style"`
}

// GraphEdge links a parent node to a child node by projection-local ID.
type GraphEdge struct {
	// From is the parent node's ID.
	From int `json:"from" yaml:"from"`

	// To is the child node's ID.
	To int `json:"to" yaml:"to"`

	// Weight is the child's keyword score, or 1 when the child has none.
	Weight float64 `json:"weight" yaml:"weight"`
}

// Graph is a hierarchy tree re-expressed as flat node and edge lists, one
// edge per parent-child link.
type Graph struct {
	Nodes []GraphNode `json:"nodes" yaml:"nodes"`
	Edges []GraphEdge `json:"edges" yaml:"edges"`
}
