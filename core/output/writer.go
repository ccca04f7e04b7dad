// Package output writes conversion artefacts to disk.
// A single-page run writes straight into the output directory; --all mode
// writes each page into its own slug subdirectory.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Standard artefact names.
const (
	IndexFile    = "index.html"
	JSONFile     = "design.json"
	MarkdownFile = "copy.md"
	PDFFile      = "wireframe.pdf"
)

// Artifact is one named file produced for a page.
type Artifact struct {
	Name string
	Data []byte
}

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to ./output.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		outputDir = "output"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{OutputDir: outputDir}, nil
}

// Dir returns the directory for a page; an empty slug is the output root.
func (w *Writer) Dir(slug string) string {
	if slug == "" {
		return w.OutputDir
	}
	return filepath.Join(w.OutputDir, sanitize(slug))
}

// Write stores one artefact for the page and returns its path.
func (w *Writer) Write(slug string, a Artifact) (string, error) {
	name := sanitize(a.Name)
	if name == "" {
		return "", fmt.Errorf("invalid artifact name %q", a.Name)
	}
	dir := w.Dir(slug)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, a.Data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteAll stores the artefacts in order and returns their paths. It stops
// at the first failure.
func (w *Writer) WriteAll(slug string, artifacts []Artifact) ([]string, error) {
	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		p, err := w.Write(slug, a)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// FileName returns the name an artefact called name is written under.
// Links to a written artefact must use this name.
func FileName(name string) string {
	return sanitize(name)
}

// sanitize reduces a name to a single safe path element: separators and
// characters outside [A-Za-z0-9._-] become underscores.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	if s == "." || s == ".." {
		return ""
	}
	var b strings.Builder
	for _, ch := range s {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9',
			ch == '.', ch == '-', ch == '_':
			b.WriteRune(ch)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
