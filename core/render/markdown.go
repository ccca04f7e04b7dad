// Package render: Markdown copy renderer.
// Converts the rendered markup to Markdown so the text of a design can be
// reviewed or diffed without the layout around it.
package render

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/gaurav-prasanna/designpipe/core"
)

// MarkdownRenderer extracts the copy of a design as Markdown.
type MarkdownRenderer struct {
	markup *MarkupRenderer
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{markup: NewMarkupRenderer()}
}

// Render converts the tree's markup into Markdown, headed by the root's name.
func (r *MarkdownRenderer) Render(root *core.CanonicalNode) ([]byte, error) {
	html, err := r.markup.Render(root)
	if err != nil {
		return nil, err
	}
	markdown, err := htmltomarkdown.ConvertString(string(html))
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}

	var b strings.Builder
	if title := headingText(root.Name); title != "" {
		b.WriteString("# " + title + "\n\n")
	}
	b.WriteString(strings.TrimSpace(markdown))
	b.WriteString("\n")
	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "#", `\#`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`,
)

// headingText folds a node name onto one line and escapes Markdown
// punctuation so it cannot change the heading's structure.
func headingText(name string) string {
	return markdownEscaper.Replace(strings.Join(strings.Fields(name), " "))
}
