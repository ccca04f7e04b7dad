// Package render provides output renderers for the designpipe pipeline.
// This file implements the markup renderer: one element per canonical node,
// nested exactly like the tree. Text content is emitted verbatim.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/designpipe/core"
)

// SimulatorID is the id of the fixed-size viewport wrapping the design.
const SimulatorID = "phone-simulator"

// DefaultStylesheet is the stylesheet file the page shell links to.
const DefaultStylesheet = "styles.css"

// MarkupRenderer renders the canonical tree as nested elements.
type MarkupRenderer struct{}

// NewMarkupRenderer creates a MarkupRenderer.
func NewMarkupRenderer() *MarkupRenderer {
	return &MarkupRenderer{}
}

// Render returns the element markup for root and its descendants.
func (r *MarkupRenderer) Render(root *core.CanonicalNode) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("rendering markup: nil tree")
	}
	var b strings.Builder
	writeElement(&b, root)
	return []byte(b.String()), nil
}

// Extension returns the file extension for markup output.
func (r *MarkupRenderer) Extension() string {
	return ".html"
}

// writeElement emits a <p> for text nodes and a <div> around the children
// for everything else. Children of a text node are not visited.
func writeElement(b *strings.Builder, n *core.CanonicalNode) {
	class := n.ClassName()
	if n.Type.IsText() {
		content := ""
		if n.Text != nil {
			content = n.Text.Content
		}
		b.WriteString(`<p class="` + class + `">` + content + `</p>`)
		return
	}

	b.WriteString(`<div class="` + class + `">`)
	for _, c := range n.Children {
		writeElement(b, c)
	}
	b.WriteString(`</div>`)
}

// PageRenderer wraps the markup of a tree in a complete HTML document that
// links to the stylesheet and places the design inside the viewport chrome.
type PageRenderer struct {
	markup     *MarkupRenderer
	stylesheet string
	title      string
}

// NewPageRenderer creates a PageRenderer linking to stylesheet. An empty
// stylesheet selects DefaultStylesheet.
func NewPageRenderer(stylesheet, title string) *PageRenderer {
	if stylesheet == "" {
		stylesheet = DefaultStylesheet
	}
	return &PageRenderer{markup: NewMarkupRenderer(), stylesheet: stylesheet, title: title}
}

// Render returns the full HTML document.
func (r *PageRenderer) Render(root *core.CanonicalNode) ([]byte, error) {
	inner, err := r.markup.Render(root)
	if err != nil {
		return nil, err
	}
	return []byte(Page(string(inner), r.stylesheet, r.title)), nil
}

// Extension returns the file extension for HTML pages.
func (r *PageRenderer) Extension() string {
	return ".html"
}

// Page embeds body markup in the HTML shell.
func Page(body, stylesheet, title string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\" />\n")
	if title != "" {
		b.WriteString("  <title>" + escapeText(title) + "</title>\n")
	}
	b.WriteString("  <link rel=\"stylesheet\" href=\"" + stylesheet + "\" />\n")
	b.WriteString("</head>\n<body>\n\n")
	b.WriteString("<div id=\"" + SimulatorID + "\">\n  " + body + "\n</div>\n\n")
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeText escapes the document title, which comes from the file name
// rather than from design content.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}
