// Package render: stylesheet renderer.
// Emits the page chrome followed by one rule per canonical node, in
// pre-order. Each node is positioned relative to its nearest ancestor's
// bounding box, so every container acts as the origin for its children.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gaurav-prasanna/designpipe/core"
)

const (
	// DefaultTextOffsetMultiplier scales the half-leading that text is
	// lifted by. It is an empirical correction for the gap between the
	// design tool's text metrics and browser line boxes; calibrate it
	// against real output rather than treating it as exact.
	DefaultTextOffsetMultiplier = 5.0

	DefaultViewportWidth  = 393
	DefaultViewportHeight = 852
)

// StyleOptions tunes a StyleRenderer. Zero values select the defaults.
type StyleOptions struct {
	// TextOffsetMultiplier is nil for DefaultTextOffsetMultiplier; a
	// pointer to 0 turns the text lift off.
	TextOffsetMultiplier *float64
	ViewportWidth        float64
	ViewportHeight       float64
}

// StyleRenderer produces the stylesheet for a canonical tree.
type StyleRenderer struct {
	opts       StyleOptions
	multiplier float64
}

// NewStyleRenderer creates a StyleRenderer.
func NewStyleRenderer(opts StyleOptions) *StyleRenderer {
	multiplier := DefaultTextOffsetMultiplier
	if opts.TextOffsetMultiplier != nil {
		multiplier = *opts.TextOffsetMultiplier
	}
	if opts.ViewportWidth <= 0 {
		opts.ViewportWidth = DefaultViewportWidth
	}
	if opts.ViewportHeight <= 0 {
		opts.ViewportHeight = DefaultViewportHeight
	}
	return &StyleRenderer{opts: opts, multiplier: multiplier}
}

// Render returns the chrome rules followed by every node's rule.
func (r *StyleRenderer) Render(root *core.CanonicalNode) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("rendering stylesheet: nil tree")
	}
	var b strings.Builder
	r.writeChrome(&b, root)
	r.walk(&b, root, root.Absolute, true)
	return []byte(b.String()), nil
}

// Extension returns the file extension for stylesheets.
func (r *StyleRenderer) Extension() string {
	return ".css"
}

// walk writes n's rule and then its descendants'. ref is the nearest
// ancestor rectangle; a node without geometry hands ref down unchanged.
func (r *StyleRenderer) walk(b *strings.Builder, n *core.CanonicalNode, ref *core.Rect, isRoot bool) {
	r.writeRule(b, n, ref, isRoot)

	next := ref
	if n.Absolute != nil {
		next = n.Absolute
	}
	for _, c := range n.Children {
		r.walk(b, c, next, false)
	}
}

func (r *StyleRenderer) writeChrome(b *strings.Builder, root *core.CanonicalNode) {
	w, h := r.opts.ViewportWidth, r.opts.ViewportHeight
	if root.Absolute != nil {
		if root.Absolute.Width > 0 {
			w = root.Absolute.Width
		}
		if root.Absolute.Height > 0 {
			h = root.Absolute.Height
		}
	}

	b.WriteString("/* ===== Global page + phone wrapper ===== */\n")
	b.WriteString("body {\n")
	decl(b, "margin", "0")
	decl(b, "background", "#111")
	decl(b, "display", "flex")
	decl(b, "justify-content", "center")
	decl(b, "align-items", "flex-start")
	decl(b, "padding", "40px 0")
	b.WriteString("}\n\n")

	b.WriteString("#" + SimulatorID + " {\n")
	decl(b, "width", px(w))
	decl(b, "height", px(h))
	decl(b, "border-radius", "32px")
	decl(b, "overflow", "hidden")
	decl(b, "background", "#000")
	decl(b, "box-shadow", "0 0 30px rgba(0,0,0,0.4)")
	decl(b, "position", "relative")
	b.WriteString("}\n\n")
}

func (r *StyleRenderer) writeRule(b *strings.Builder, n *core.CanonicalNode, ref *core.Rect, isRoot bool) {
	b.WriteString("." + n.ClassName() + " {\n")

	abs := n.Absolute
	switch {
	case isRoot:
		decl(b, "position", "relative")
		decl(b, "width", "100%")
		decl(b, "height", "100%")
		decl(b, "box-sizing", "border-box")
	case abs != nil:
		left, top := abs.X, abs.Y
		if ref != nil {
			left -= ref.X
			top -= ref.Y
		}
		decl(b, "position", "absolute")
		decl(b, "left", px(left))
		decl(b, "top", px(top))
		decl(b, "width", px(abs.Width))
		decl(b, "height", px(abs.Height))
	case n.AutoLayout != nil:
		al := n.AutoLayout
		dir := "column"
		if al.Axis == core.AxisHorizontal {
			dir = "row"
		}
		p := al.Padding
		decl(b, "display", "flex")
		decl(b, "flex-direction", dir)
		decl(b, "padding", px(p.Top)+" "+px(p.Right)+" "+px(p.Bottom)+" "+px(p.Left))
		decl(b, "gap", px(al.ItemSpacing))
	}

	s := n.Style
	if !n.Type.IsText() {
		if g := s.BackgroundGradient; g != nil {
			decl(b, "background", gradient(g))
		} else if s.BackgroundColor != nil {
			decl(b, "background-color", s.BackgroundColor.String())
		}
	}

	if s.BorderWidth != nil && *s.BorderWidth > 0 {
		color := core.Black
		if s.BorderColor != nil {
			color = *s.BorderColor
		}
		decl(b, "border", px(*s.BorderWidth)+" solid "+color.String())
	}

	if rad := s.BorderRadius; rad != nil {
		if c := rad.Corners; c != nil {
			decl(b, "border-radius", px(c[0])+" "+px(c[1])+" "+px(c[2])+" "+px(c[3]))
		} else {
			decl(b, "border-radius", px(rad.Uniform))
		}
	}

	if t := n.Text; t != nil {
		r.writeText(b, t)
	}

	if s.BoxShadow != nil {
		decl(b, "box-shadow", s.BoxShadow.String())
	}

	b.WriteString("}\n\n")
}

func (r *StyleRenderer) writeText(b *strings.Builder, t *core.Text) {
	lineHeight := t.EffectiveLineHeight()

	family := "sans-serif"
	if t.FontFamily != "" {
		family = t.FontFamily + ", sans-serif"
	}
	decl(b, "font-family", family)
	decl(b, "font-size", px(t.FontSize))
	if t.FontWeight != 0 {
		decl(b, "font-weight", core.FormatNumber(t.FontWeight))
	}
	decl(b, "line-height", px(lineHeight))
	decl(b, "letter-spacing", px(t.LetterSpacing))
	if t.TextAlign != "" {
		decl(b, "text-align", t.TextAlign)
	}
	decl(b, "color", t.Color.String())
	decl(b, "white-space", "pre-wrap")

	// Lift the text by a multiple of its half-leading.
	shift := -r.multiplier * (lineHeight - t.FontSize) / 2
	decl(b, "transform", "translateY("+px(shift)+")")
}

func gradient(g *core.Gradient) string {
	stops := make([]string, len(g.Stops))
	for i, s := range g.Stops {
		stops[i] = fmt.Sprintf("%s %s%%", s.Color, core.FormatNumber(roundPercent(s.Position)))
	}
	return fmt.Sprintf("linear-gradient(%sdeg, %s)", core.FormatNumber(g.AngleDeg), strings.Join(stops, ", "))
}

// roundPercent converts a unit-interval stop position to a whole percent.
func roundPercent(p float64) float64 {
	return math.Round(p * 100)
}

func decl(b *strings.Builder, prop, value string) {
	b.WriteString("  " + prop + ": " + value + ";\n")
}

func px(v float64) string {
	return core.FormatNumber(v) + "px"
}
