package crawl

import (
	"github.com/gaurav-prasanna/designpipe/core"
	"github.com/gaurav-prasanna/designpipe/core/errors"
	"github.com/gaurav-prasanna/designpipe/core/extract"
	"github.com/gaurav-prasanna/designpipe/core/figma"
)

var extractor core.Extractor = extract.New()

// PageRef is one page selected for conversion.
type PageRef struct {
	Name string
	Slug string
	Node *figma.Node
}

// DiscoverPages selects the pages to convert. Without all it returns the
// single page chosen by the extractor (the first page when page is empty).
// With all it returns every page in document order, skipping separator
// pages, each with a unique slug.
func DiscoverPages(file *figma.File, page string, all bool) ([]PageRef, error) {
	slugs := NewSlugger()
	if !all {
		node, err := extractor.Extract(file, page)
		if err != nil {
			return nil, err
		}
		return []PageRef{{Name: node.Name, Slug: slugs.Next(node.Name), Node: node}}, nil
	}

	if file == nil || file.Document == nil {
		return nil, errors.New(errors.ErrCodeMalformedInput, "document is empty")
	}
	var refs []PageRef
	for _, p := range file.Document.Children {
		if p == nil || IsSeparatorPage(p.Name) {
			continue
		}
		refs = append(refs, PageRef{Name: p.Name, Slug: slugs.Next(p.Name), Node: p})
	}
	if len(refs) == 0 {
		return nil, errors.New(errors.ErrCodeMalformedInput, "document has no pages")
	}
	return refs, nil
}
