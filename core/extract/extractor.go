// Package extract implements the Extractor interface.
// It isolates the page to convert from a full Figma document: the first
// page by default, or the page whose name or id matches the request.
package extract

import (
	"strings"

	"github.com/gaurav-prasanna/designpipe/core/errors"
	"github.com/gaurav-prasanna/designpipe/core/figma"
)

// PageExtractor selects a page (canvas) from a document.
type PageExtractor struct{}

// New creates a PageExtractor.
func New() *PageExtractor {
	return &PageExtractor{}
}

// Extract returns the requested page node. An empty page selects the first
// non-null page. Names are matched case-insensitively; ids exactly.
func (e *PageExtractor) Extract(file *figma.File, page string) (*figma.Node, error) {
	if file == nil || file.Document == nil {
		return nil, errors.New(errors.ErrCodeMalformedInput, "document is empty")
	}
	pages := file.Document.Children
	if len(pages) == 0 {
		return nil, errors.New(errors.ErrCodeMalformedInput, "document has no pages")
	}
	if page == "" {
		for _, p := range pages {
			if p != nil {
				return p, nil
			}
		}
		return nil, errors.New(errors.ErrCodeMalformedInput, "document has no pages")
	}

	for _, p := range pages {
		if p == nil {
			continue
		}
		if (p.ID != nil && *p.ID == page) || strings.EqualFold(p.Name, page) {
			return p, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "page %q not found (have %s)", page, strings.Join(PageNames(file), ", "))
}

// PageNames lists the document's page names in order.
func PageNames(file *figma.File) []string {
	if file == nil || file.Document == nil {
		return nil
	}
	names := make([]string, 0, len(file.Document.Children))
	for _, p := range file.Document.Children {
		if p != nil {
			names = append(names, p.Name)
		}
	}
	return names
}
