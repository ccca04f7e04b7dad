// Package core defines the pipeline interfaces for designpipe.
// Each stage of the pipeline is a clean, testable interface:
// fetch → extract → normalize → render → write.
package core

import (
	"context"

	"github.com/gaurav-prasanna/designpipe/core/figma"
)

// FetchResult holds the decoded design document and response metadata.
type FetchResult struct {
	FileKey    string
	StatusCode int
	Cached     bool
	Document   *figma.File
}

// Fetcher retrieves a design document by file key.
type Fetcher interface {
	Fetch(ctx context.Context, fileKey string) (*FetchResult, error)
}

// Extractor picks the page to convert out of a fetched document.
type Extractor interface {
	Extract(file *figma.File, page string) (*figma.Node, error)
}

// Normalizer converts a raw design node tree into the canonical tree.
type Normalizer interface {
	Normalize(raw *figma.Node) (*CanonicalNode, error)
}

// Renderer converts the canonical tree into one output artefact.
// Renderers never mutate the tree they are given.
type Renderer interface {
	Render(root *CanonicalNode) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".css", ".pdf").
	Extension() string
}
