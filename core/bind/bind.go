// Package bind verifies that rendered markup and stylesheet agree on class
// names. The two renderers never see each other's output; this check reads
// both back and reports elements without a rule and rules without an element.
package bind

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/gaurav-prasanna/designpipe/core"
)

// Report is the outcome of one check. Class lists are sorted.
type Report struct {
	Elements     int      // classed node elements in the markup
	Rules        int      // node rules in the stylesheet
	MissingRules []string // classes used in markup but never styled
	OrphanRules  []string // classes styled but absent from markup
}

// OK reports whether every element has a rule and every rule an element.
func (r *Report) OK() bool {
	return len(r.MissingRules) == 0 && len(r.OrphanRules) == 0
}

// Err returns nil for a clean report and a descriptive error otherwise.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("class binding mismatch: %d element(s) without rule %v, %d rule(s) without element %v",
		len(r.MissingRules), r.MissingRules, len(r.OrphanRules), r.OrphanRules)
}

// Checker compares markup against a stylesheet.
type Checker struct {
	log *log.Logger
}

// New creates a Checker. A nil logger discards debug output.
func New(l *log.Logger) *Checker {
	if l == nil {
		l = log.New(io.Discard)
	}
	return &Checker{log: l}
}

// Check parses both documents and compares their node classes.
func (c *Checker) Check(markup, stylesheet []byte) (*Report, error) {
	used, err := markupClasses(markup)
	if err != nil {
		return nil, err
	}
	styled := c.stylesheetClasses(stylesheet)

	r := &Report{Elements: len(used), Rules: len(styled)}
	for class := range used {
		if !styled[class] {
			r.MissingRules = append(r.MissingRules, class)
		}
	}
	for class := range styled {
		if !used[class] {
			r.OrphanRules = append(r.OrphanRules, class)
		}
	}
	slices.Sort(r.MissingRules)
	slices.Sort(r.OrphanRules)
	return r, nil
}

// CheckTree is Check for markup and stylesheet rendered from root. Text
// elements are rendered as leaves, so rules for descendants of TEXT nodes
// have no element by construction and are not reported as orphans.
func (c *Checker) CheckTree(root *core.CanonicalNode, markup, stylesheet []byte) (*Report, error) {
	r, err := c.Check(markup, stylesheet)
	if err != nil {
		return nil, err
	}
	hidden := textDescendants(root)
	if len(hidden) == 0 {
		return r, nil
	}
	var orphans []string
	for _, class := range r.OrphanRules {
		if !hidden[class] {
			orphans = append(orphans, class)
		}
	}
	c.log.Debug("Ignoring rules under text nodes", "count", len(r.OrphanRules)-len(orphans))
	r.OrphanRules = orphans
	return r, nil
}

func textDescendants(root *core.CanonicalNode) map[string]bool {
	hidden := make(map[string]bool)
	root.Walk(func(n *core.CanonicalNode) bool {
		if !n.Type.IsText() {
			return true
		}
		for _, child := range n.Children {
			child.Walk(func(d *core.CanonicalNode) bool {
				hidden[d.ClassName()] = true
				return true
			})
		}
		return false
	})
	return hidden
}

func markupClasses(markup []byte) (map[string]bool, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}
	classes := make(map[string]bool)
	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		attr, _ := s.Attr("class")
		for _, class := range strings.Fields(attr) {
			if strings.HasPrefix(class, core.ClassPrefix) {
				classes[class] = true
			}
		}
	})
	return classes, nil
}

// stylesheetClasses collects the class of every simple ".node-*" selector.
func (c *Checker) stylesheetClasses(stylesheet []byte) map[string]bool {
	classes := make(map[string]bool)
	p := css.NewParser(parse.NewInput(bytes.NewReader(stylesheet)), false)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && err != io.EOF {
				c.log.Debug("stylesheet parse error", "err", err)
			}
			return classes
		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar:
			var sb strings.Builder
			sb.Write(data)
			for _, v := range p.Values() {
				sb.Write(v.Data)
			}
			for sel := range strings.SplitSeq(sb.String(), ",") {
				sel = strings.TrimSpace(sel)
				if class, ok := strings.CutPrefix(sel, "."); ok && strings.HasPrefix(class, core.ClassPrefix) {
					classes[class] = true
				}
			}
		}
	}
}
