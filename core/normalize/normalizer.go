// Package normalize implements the Normalizer interface.
// It converts a raw Figma node tree into the canonical tree, which serves
// as the intermediate format for all downstream renderers.
package normalize

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/gaurav-prasanna/designpipe/core"
	"github.com/gaurav-prasanna/designpipe/core/errors"
	"github.com/gaurav-prasanna/designpipe/core/figma"
)

// Options tunes a TreeNormalizer.
type Options struct {
	// Workers bounds how many of the root's direct subtrees are normalized
	// concurrently. Values below 2 keep normalization sequential.
	Workers int
	Logger  *log.Logger
}

// TreeNormalizer maps raw design nodes to canonical nodes.
type TreeNormalizer struct {
	workers int
	log     *log.Logger
}

// New creates a TreeNormalizer.
func New(opts Options) *TreeNormalizer {
	l := opts.Logger
	if l == nil {
		l = log.New(io.Discard)
	}
	return &TreeNormalizer{workers: opts.Workers, log: l}
}

// Normalize converts raw into a canonical tree of identical shape.
// It fails only when a node lacks an id; the whole conversion is then
// abandoned and no partial tree is returned.
func (n *TreeNormalizer) Normalize(raw *figma.Node) (*core.CanonicalNode, error) {
	if raw == nil {
		return nil, errors.New(errors.ErrCodeMalformedInput, "empty design tree")
	}
	if n.workers < 2 || len(raw.Children) < 2 {
		return n.node(raw, "")
	}

	root, err := n.shallow(raw, "")
	if err != nil {
		return nil, err
	}
	path := root.ID

	// Subtrees share nothing, so each one is normalized on its own goroutine;
	// results land in their input slot to keep document order.
	children := make([]*core.CanonicalNode, len(raw.Children))
	errs := make([]error, len(raw.Children))
	var g errgroup.Group
	g.SetLimit(n.workers)
	for i, c := range raw.Children {
		g.Go(func() error {
			children[i], errs[i] = n.node(c, childPath(path, i))
			return nil
		})
	}
	_ = g.Wait()

	// Report the first failure in document order, not the first to finish.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	root.Children = children
	return root, nil
}

// node normalizes raw and its descendants sequentially.
func (n *TreeNormalizer) node(raw *figma.Node, parent string) (*core.CanonicalNode, error) {
	out, err := n.shallow(raw, parent)
	if err != nil {
		return nil, err
	}
	out.Children = make([]*core.CanonicalNode, 0, len(raw.Children))
	for i, c := range raw.Children {
		child, err := n.node(c, childPath(out.ID, i))
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, child)
	}
	return out, nil
}

// shallow normalizes raw without its children.
func (n *TreeNormalizer) shallow(raw *figma.Node, path string) (*core.CanonicalNode, error) {
	if raw == nil {
		return nil, errors.New(errors.ErrCodeMalformedInput, "null node at %s", pathOrRoot(path))
	}
	if raw.ID == nil || *raw.ID == "" {
		return nil, errors.New(errors.ErrCodeMalformedInput, "node %q at %s has no id", raw.Name, pathOrRoot(path))
	}

	out := &core.CanonicalNode{
		ID:         *raw.ID,
		Type:       core.NodeType(raw.Type),
		Name:       raw.Name,
		Absolute:   extractRect(raw.AbsoluteBoundingBox),
		AutoLayout: ExtractAutoLayout(raw),
		Style:      ExtractStyle(raw),
		Text:       ExtractText(raw),
	}
	if dropped := countDropShadows(raw.Effects) - 1; dropped > 0 {
		n.log.Debug("extra drop shadows ignored", "node", out.ID, "dropped", dropped)
	}
	if raw.Type == figma.TypeText && len(raw.Children) > 0 {
		n.log.Debug("text node children will not be rendered", "node", out.ID, "children", len(raw.Children))
	}
	return out, nil
}

func extractRect(r *figma.Rectangle) *core.Rect {
	if r == nil {
		return nil
	}
	return &core.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func childPath(parent string, i int) string {
	return parent + "/" + strconv.Itoa(i)
}

func pathOrRoot(p string) string {
	if p == "" {
		return "root"
	}
	return fmt.Sprintf("child %s", p)
}
