// Package render: JSON renderer.
// Dumps the canonical tree with a small summary header, for inspecting what
// the normalizer made of a design without reading the stylesheet.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/designpipe/core"
)

// TreeSummary counts what a canonical tree contains.
type TreeSummary struct {
	Nodes      int `json:"nodes"`
	TextNodes  int `json:"text_nodes"`
	Positioned int `json:"positioned"`
	AutoLayout int `json:"auto_layout"`
	Gradients  int `json:"gradients"`
	Shadows    int `json:"shadows"`
	MaxDepth   int `json:"max_depth"`
}

// TreeJSON is the complete JSON output for one converted page.
type TreeJSON struct {
	Summary TreeSummary         `json:"summary"`
	Root    *core.CanonicalNode `json:"root"`
}

// JSONRenderer produces the canonical tree as indented JSON.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the summary and tree.
func (r *JSONRenderer) Render(root *core.CanonicalNode) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("rendering JSON: nil tree")
	}
	data, err := json.MarshalIndent(TreeJSON{Summary: Summarize(root), Root: root}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// Summarize counts node kinds and properties in the tree.
func Summarize(root *core.CanonicalNode) TreeSummary {
	var s TreeSummary
	countNodes(root, 1, &s)
	return s
}

func countNodes(n *core.CanonicalNode, depth int, s *TreeSummary) {
	s.Nodes++
	s.MaxDepth = max(s.MaxDepth, depth)
	if n.Type.IsText() {
		s.TextNodes++
	}
	if n.Absolute != nil {
		s.Positioned++
	}
	if n.AutoLayout != nil {
		s.AutoLayout++
	}
	if n.Style.BackgroundGradient != nil {
		s.Gradients++
	}
	if n.Style.BoxShadow != nil {
		s.Shadows++
	}
	for _, c := range n.Children {
		countNodes(c, depth+1, s)
	}
}
