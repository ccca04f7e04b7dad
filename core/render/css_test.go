package render

import (
	"strings"
	"testing"

	"github.com/gaurav-prasanna/designpipe/core"
)

func f64(v float64) *float64 { return &v }

// ruleFor returns the declarations of the rule for class, or "" if absent.
func ruleFor(t *testing.T, css, class string) string {
	t.Helper()
	head := "." + class + " {\n"
	start := strings.Index(css, head)
	if start < 0 {
		return ""
	}
	body := css[start+len(head):]
	return body[:strings.Index(body, "}\n")]
}

func renderCSS(t *testing.T, root *core.CanonicalNode, opts StyleOptions) string {
	t.Helper()
	out, err := NewStyleRenderer(opts).Render(root)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return string(out)
}

func sampleTree() *core.CanonicalNode {
	return &core.CanonicalNode{
		ID:       "1:2",
		Type:     "FRAME",
		Absolute: &core.Rect{X: 100, Y: 100, Width: 200, Height: 300},
		Style:    core.Style{BackgroundColor: &core.RGBA{R: 255, G: 255, B: 255, A: 1}},
		Children: []*core.CanonicalNode{
			{
				ID:       "1:3",
				Type:     "RECTANGLE",
				Absolute: &core.Rect{X: 120, Y: 110, Width: 50, Height: 50},
			},
			{
				ID:   "1:4",
				Type: "GROUP",
				Children: []*core.CanonicalNode{
					{ID: "1:5", Type: "ELLIPSE", Absolute: &core.Rect{X: 150, Y: 160, Width: 10, Height: 10}},
				},
			},
			{
				ID:       "1:6",
				Type:     "FRAME",
				Absolute: &core.Rect{X: 110, Y: 300, Width: 100, Height: 80},
				Children: []*core.CanonicalNode{
					{
						ID:       "1:7",
						Type:     core.TypeText,
						Absolute: &core.Rect{X: 115, Y: 310, Width: 90, Height: 20},
						Text:     &core.Text{FontFamily: "Inter", FontSize: 16, Content: "Hello"},
					},
				},
			},
		},
	}
}

func TestStyleRendererPositioning(t *testing.T) {
	css := renderCSS(t, sampleTree(), StyleOptions{})

	tests := []struct {
		name  string
		class string
		want  []string
	}{
		{"root fills container", "node-1-2", []string{"position: relative;", "width: 100%;", "height: 100%;", "box-sizing: border-box;"}},
		{"child relative to root", "node-1-3", []string{"position: absolute;", "left: 20px;", "top: 10px;", "width: 50px;", "height: 50px;"}},
		{"through ungeometried group", "node-1-5", []string{"left: 50px;", "top: 60px;"}},
		{"grandchild relative to parent", "node-1-7", []string{"left: 5px;", "top: 10px;"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := ruleFor(t, css, tt.class)
			for _, w := range tt.want {
				if !strings.Contains(rule, w) {
					t.Errorf("rule .%s missing %q:\n%s", tt.class, w, rule)
				}
			}
		})
	}

	root := ruleFor(t, css, "node-1-2")
	if strings.Contains(root, "left:") || strings.Contains(root, "top:") {
		t.Errorf("root must not be offset:\n%s", root)
	}
	if group := ruleFor(t, css, "node-1-4"); strings.Contains(group, "position") {
		t.Errorf("node without geometry or layout must not be positioned:\n%s", group)
	}
}

func TestStyleRendererPreOrder(t *testing.T) {
	css := renderCSS(t, sampleTree(), StyleOptions{})
	order := []string{"#phone-simulator {", "body {"}
	if strings.Index(css, order[1]) > strings.Index(css, order[0]) {
		t.Error("body reset should precede the simulator rule")
	}

	last := strings.Index(css, "#phone-simulator {")
	for _, id := range []string{"1-2", "1-3", "1-4", "1-5", "1-6", "1-7"} {
		idx := strings.Index(css, ".node-"+id+" {")
		if idx < last {
			t.Fatalf("rule for %s out of pre-order", id)
		}
		last = idx
	}
}

func TestStyleRendererChrome(t *testing.T) {
	css := renderCSS(t, sampleTree(), StyleOptions{})
	sim := css[strings.Index(css, "#phone-simulator {"):]
	if !strings.Contains(sim, "width: 200px;") || !strings.Contains(sim, "height: 300px;") {
		t.Errorf("simulator not sized to root:\n%s", sim[:200])
	}

	bare := renderCSS(t, &core.CanonicalNode{ID: "0:1"}, StyleOptions{})
	if !strings.Contains(bare, "width: 393px;") || !strings.Contains(bare, "height: 852px;") {
		t.Error("simulator should fall back to 393x852")
	}

	custom := renderCSS(t, &core.CanonicalNode{ID: "0:1"}, StyleOptions{ViewportWidth: 1440, ViewportHeight: 900})
	if !strings.Contains(custom, "width: 1440px;") {
		t.Error("custom viewport ignored")
	}
}

func TestStyleRendererAutoLayoutFallback(t *testing.T) {
	root := &core.CanonicalNode{
		ID: "0:1",
		Children: []*core.CanonicalNode{{
			ID: "0:2",
			AutoLayout: &core.AutoLayout{
				Axis:        core.AxisHorizontal,
				ItemSpacing: 8,
				Padding:     core.Padding{Top: 1, Right: 2, Bottom: 3, Left: 4},
			},
		}, {
			ID:         "0:3",
			AutoLayout: &core.AutoLayout{Axis: core.AxisVertical},
			Absolute:   &core.Rect{X: 5, Y: 5, Width: 10, Height: 10},
		}},
	}
	css := renderCSS(t, root, StyleOptions{})

	flow := ruleFor(t, css, "node-0-2")
	for _, w := range []string{"display: flex;", "flex-direction: row;", "padding: 1px 2px 3px 4px;", "gap: 8px;"} {
		if !strings.Contains(flow, w) {
			t.Errorf("flow rule missing %q:\n%s", w, flow)
		}
	}
	if geo := ruleFor(t, css, "node-0-3"); strings.Contains(geo, "display: flex") {
		t.Errorf("geometry must win over auto-layout:\n%s", geo)
	}
}

func TestStyleRendererVisuals(t *testing.T) {
	shadowColor := core.RGBA{A: 0.25}
	root := &core.CanonicalNode{
		ID: "0:1",
		Children: []*core.CanonicalNode{
			{ID: "g", Style: core.Style{
				BackgroundGradient: &core.Gradient{AngleDeg: 90, Stops: []core.GradientStop{
					{Color: core.RGBA{R: 255, A: 1}, Position: 0},
					{Color: core.RGBA{B: 255, A: 1}, Position: 0.333},
				}},
				BackgroundColor: &core.RGBA{G: 255, A: 1},
			}},
			{ID: "zero-border", Style: core.Style{BorderColor: &core.RGBA{R: 1, A: 1}, BorderWidth: f64(0)}},
			{ID: "border", Style: core.Style{BorderColor: &core.RGBA{R: 10, G: 20, B: 30, A: 1}, BorderWidth: f64(1.5)}},
			{ID: "corners", Style: core.Style{BorderRadius: &core.Radius{Corners: &[4]float64{1, 2, 3, 4}}}},
			{ID: "uniform", Style: core.Style{BorderRadius: &core.Radius{Uniform: 12}}},
			{ID: "shadow", Style: core.Style{BoxShadow: &core.Shadow{OffsetY: 4, Blur: 12, Color: &shadowColor}}},
			{ID: "empty"},
		},
	}
	css := renderCSS(t, root, StyleOptions{})

	tests := []struct {
		class   string
		want    string
		wantNot string
	}{
		{"node-g", "background: linear-gradient(90deg, rgba(255, 0, 0, 1) 0%, rgba(0, 0, 255, 1) 33%);", "background-color"},
		{"node-zero-border", "", "border"},
		{"node-border", "border: 1.5px solid rgba(10, 20, 30, 1);", ""},
		{"node-corners", "border-radius: 1px 2px 3px 4px;", ""},
		{"node-uniform", "border-radius: 12px;", ""},
		{"node-shadow", "box-shadow: 0px 4px 12px rgba(0, 0, 0, 0.25);", ""},
		{"node-empty", "", ":"},
	}
	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			rule := ruleFor(t, css, tt.class)
			if tt.want != "" && !strings.Contains(rule, tt.want) {
				t.Errorf("missing %q in:\n%s", tt.want, rule)
			}
			if tt.wantNot != "" && strings.Contains(rule, tt.wantNot) {
				t.Errorf("unexpected %q in:\n%s", tt.wantNot, rule)
			}
		})
	}
}

func TestStyleRendererText(t *testing.T) {
	text := &core.CanonicalNode{
		ID:   "t",
		Type: core.TypeText,
		Style: core.Style{
			BackgroundColor: &core.RGBA{R: 255, A: 1},
		},
		Text: &core.Text{
			FontFamily:    "Roboto",
			FontSize:      16,
			FontWeight:    700,
			LetterSpacing: 0.2,
			TextAlign:     "center",
			Color:         core.RGBA{R: 17, G: 17, B: 17, A: 1},
		},
	}
	css := renderCSS(t, &core.CanonicalNode{ID: "r", Children: []*core.CanonicalNode{text}}, StyleOptions{})
	rule := ruleFor(t, css, "node-t")

	for _, w := range []string{
		"font-family: Roboto, sans-serif;",
		"font-size: 16px;",
		"font-weight: 700;",
		"line-height: 16px;",
		"letter-spacing: 0.2px;",
		"text-align: center;",
		"color: rgba(17, 17, 17, 1);",
		"white-space: pre-wrap;",
		"transform: translateY(0px);",
	} {
		if !strings.Contains(rule, w) {
			t.Errorf("text rule missing %q:\n%s", w, rule)
		}
	}
	if strings.Contains(rule, "background") {
		t.Errorf("text nodes must not get a background:\n%s", rule)
	}
}

func TestStyleRendererTextOffset(t *testing.T) {
	node := func() *core.CanonicalNode {
		return &core.CanonicalNode{ID: "r", Children: []*core.CanonicalNode{{
			ID:   "t",
			Type: core.TypeText,
			Text: &core.Text{FontSize: 16, LineHeight: f64(24)},
		}}}
	}

	tests := []struct {
		name       string
		multiplier *float64
		want       string
	}{
		{"default five times half leading", nil, "translateY(-20px)"},
		{"calibrated", f64(2), "translateY(-8px)"},
		{"correction disabled", f64(0), "translateY(0px)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := ruleFor(t, renderCSS(t, node(), StyleOptions{TextOffsetMultiplier: tt.multiplier}), "node-t")
			if !strings.Contains(rule, tt.want) {
				t.Errorf("missing %q in:\n%s", tt.want, rule)
			}
			if !strings.Contains(rule, "line-height: 24px;") {
				t.Errorf("explicit line height lost:\n%s", rule)
			}
		})
	}
}

func TestStyleRendererIdempotent(t *testing.T) {
	r := NewStyleRenderer(StyleOptions{})
	tree := sampleTree()
	a, _ := r.Render(tree)
	b, _ := r.Render(tree)
	if string(a) != string(b) {
		t.Error("rendering the same tree twice must be byte-identical")
	}
}

func TestStyleRendererNil(t *testing.T) {
	if _, err := NewStyleRenderer(StyleOptions{}).Render(nil); err == nil {
		t.Error("expected error for nil tree")
	}
}
