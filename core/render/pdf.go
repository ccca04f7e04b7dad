// Package render: wireframe PDF renderer.
// Draws every positioned node as a rectangle at its design coordinates,
// filled with its background and labelled with its text, on a page the size
// of the root frame. It is a proof sheet, not a faithful rendering: radii,
// shadows and letter spacing are ignored and gradients keep their end stops.
package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/designpipe/core"
)

// outline is the gray used for nodes that have no fill or border.
var outline = core.RGBA{R: 200, G: 200, B: 200, A: 1}

// PDFRenderer renders a wireframe of the canonical tree.
type PDFRenderer struct {
	width, height float64
}

// NewPDFRenderer creates a PDFRenderer whose page falls back to the given
// viewport size when the root has no geometry.
func NewPDFRenderer(viewportWidth, viewportHeight float64) *PDFRenderer {
	if viewportWidth <= 0 {
		viewportWidth = DefaultViewportWidth
	}
	if viewportHeight <= 0 {
		viewportHeight = DefaultViewportHeight
	}
	return &PDFRenderer{width: viewportWidth, height: viewportHeight}
}

// Render draws the tree and returns PDF bytes.
func (r *PDFRenderer) Render(root *core.CanonicalNode) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("rendering PDF: nil tree")
	}
	w, h := r.width, r.height
	var origin core.Rect
	if abs := root.Absolute; abs != nil {
		origin = *abs
		if abs.Width > 0 && abs.Height > 0 {
			w, h = abs.Width, abs.Height
		}
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	if root.Name != "" {
		pdf.SetTitle(root.Name, true)
	}

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	root.Walk(func(n *core.CanonicalNode) bool {
		if n.Absolute != nil {
			drawNode(pdf, n, origin, tr)
		}
		// Text children are not rendered anywhere else either.
		return !n.Type.IsText()
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func drawNode(pdf *gofpdf.Fpdf, n *core.CanonicalNode, origin core.Rect, tr func(string) string) {
	x, y := n.Absolute.X-origin.X, n.Absolute.Y-origin.Y
	w, h := n.Absolute.Width, n.Absolute.Height
	s := n.Style

	filled := false
	if !n.Type.IsText() {
		switch {
		case s.BackgroundGradient != nil && len(s.BackgroundGradient.Stops) > 0:
			drawGradient(pdf, s.BackgroundGradient, x, y, w, h)
			filled = true
		case s.BackgroundColor != nil:
			setAlpha(pdf, s.BackgroundColor.A)
			pdf.SetFillColor(int(s.BackgroundColor.R), int(s.BackgroundColor.G), int(s.BackgroundColor.B))
			pdf.Rect(x, y, w, h, "F")
			setAlpha(pdf, 1)
			filled = true
		}
	}

	switch {
	case s.BorderWidth != nil && *s.BorderWidth > 0:
		c := core.Black
		if s.BorderColor != nil {
			c = *s.BorderColor
		}
		pdf.SetLineWidth(*s.BorderWidth)
		pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
		pdf.Rect(x, y, w, h, "D")
	case !filled && !n.Type.IsText():
		pdf.SetLineWidth(0.5)
		pdf.SetDrawColor(int(outline.R), int(outline.G), int(outline.B))
		pdf.Rect(x, y, w, h, "D")
	}

	if t := n.Text; t != nil && t.Content != "" {
		size := t.FontSize
		if size <= 0 {
			size = 12
		}
		style := ""
		if t.FontWeight >= 600 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, size)
		pdf.SetTextColor(int(t.Color.R), int(t.Color.G), int(t.Color.B))
		pdf.SetXY(x, y)
		pdf.MultiCell(w, t.EffectiveLineHeight(), tr(t.Content), "", alignment(t.TextAlign), false)
	}
}

// drawGradient fills the rectangle from the first to the last stop along
// the gradient angle. PDF space has y pointing up, so the vector is flipped.
func drawGradient(pdf *gofpdf.Fpdf, g *core.Gradient, x, y, w, h float64) {
	first, last := g.Stops[0].Color, g.Stops[len(g.Stops)-1].Color
	rad := g.AngleDeg * math.Pi / 180
	dx, dy := math.Cos(rad)/2, math.Sin(rad)/2
	pdf.LinearGradient(x, y, w, h,
		int(first.R), int(first.G), int(first.B),
		int(last.R), int(last.G), int(last.B),
		0.5-dx, 0.5+dy, 0.5+dx, 0.5-dy)
}

func setAlpha(pdf *gofpdf.Fpdf, a float64) {
	pdf.SetAlpha(math.Max(0, math.Min(1, a)), "Normal")
}

func alignment(textAlign string) string {
	switch textAlign {
	case "center":
		return "C"
	case "right":
		return "R"
	case "justified":
		return "J"
	default:
		return "L"
	}
}
