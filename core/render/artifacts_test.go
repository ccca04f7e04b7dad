package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/designpipe/core"
)

func copyTree() *core.CanonicalNode {
	return &core.CanonicalNode{
		ID:       "1:1",
		Name:     "Welcome",
		Type:     "FRAME",
		Absolute: &core.Rect{X: 0, Y: 0, Width: 320, Height: 480},
		Style: core.Style{BackgroundGradient: &core.Gradient{AngleDeg: 45, Stops: []core.GradientStop{
			{Color: core.RGBA{R: 255, A: 1}}, {Color: core.RGBA{B: 255, A: 1}, Position: 1},
		}}},
		Children: []*core.CanonicalNode{
			{ID: "1:2", Type: core.TypeText, Absolute: &core.Rect{X: 10, Y: 10, Width: 300, Height: 24},
				Text: &core.Text{FontSize: 20, FontWeight: 700, Content: "Café opening"}},
			{ID: "1:3", Type: "FRAME", Absolute: &core.Rect{X: 10, Y: 50, Width: 300, Height: 100},
				Style: core.Style{BorderWidth: f64(1), BoxShadow: &core.Shadow{Blur: 2}},
				Children: []*core.CanonicalNode{
					{ID: "1:4", Type: core.TypeText, Absolute: &core.Rect{X: 20, Y: 60, Width: 200, Height: 20},
						Text: &core.Text{FontSize: 14, Content: "Sign in", TextAlign: "center"}},
				}},
			{ID: "1:5", Type: "FRAME", AutoLayout: &core.AutoLayout{Axis: core.AxisVertical}},
		},
	}
}

func TestJSONRenderer(t *testing.T) {
	data, err := NewJSONRenderer().Render(copyTree())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var out struct {
		Summary TreeSummary `json:"summary"`
		Root    struct {
			ID       string `json:"id"`
			Style    struct {
				BackgroundGradient struct {
					Stops []struct {
						Color string `json:"color"`
					} `json:"stops"`
				} `json:"backgroundGradient"`
			} `json:"style"`
			Children []json.RawMessage `json:"children"`
		} `json:"root"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := TreeSummary{Nodes: 5, TextNodes: 2, Positioned: 4, AutoLayout: 1, Gradients: 1, Shadows: 1, MaxDepth: 3}
	if out.Summary != want {
		t.Errorf("Summary = %+v, want %+v", out.Summary, want)
	}
	if out.Root.ID != "1:1" || len(out.Root.Children) != 3 {
		t.Errorf("Root = %+v", out.Root)
	}
	if got := out.Root.Style.BackgroundGradient.Stops[0].Color; got != "rgba(255, 0, 0, 1)" {
		t.Errorf("stop color serialized as %q", got)
	}
}

func TestJSONRendererKeepsZeroRadius(t *testing.T) {
	root := &core.CanonicalNode{ID: "1:1", Style: core.Style{BorderRadius: &core.Radius{}}}
	data, err := NewJSONRenderer().Render(root)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var out struct {
		Root struct {
			Style struct {
				BorderRadius map[string]any `json:"borderRadius"`
			} `json:"style"`
		} `json:"root"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v, ok := out.Root.Style.BorderRadius["uniform"]; !ok || v != 0.0 {
		t.Errorf("borderRadius = %v, want uniform 0", out.Root.Style.BorderRadius)
	}
}

func TestMarkdownRenderer(t *testing.T) {
	data, err := NewMarkdownRenderer().Render(copyTree())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	md := string(data)
	if !strings.HasPrefix(md, "# Welcome\n\n") {
		t.Errorf("missing title heading:\n%s", md)
	}
	first, second := strings.Index(md, "Café opening"), strings.Index(md, "Sign in")
	if first < 0 || second < 0 || first > second {
		t.Errorf("copy missing or out of order:\n%s", md)
	}
}

func TestMarkdownHeadingEscaped(t *testing.T) {
	root := &core.CanonicalNode{ID: "1:1", Name: "#1 *Pick*\nof the week"}
	data, err := NewMarkdownRenderer().Render(root)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "# \\#1 \\*Pick\\* of the week\n\n"
	if !strings.HasPrefix(string(data), want) {
		t.Errorf("heading = %q, want prefix %q", data, want)
	}
}

func TestPDFRenderer(t *testing.T) {
	r := NewPDFRenderer(0, 0)
	data, err := r.Render(copyTree())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", data[:min(len(data), 16)])
	}

	if _, err := r.Render(&core.CanonicalNode{ID: "0:1"}); err != nil {
		t.Errorf("Render without geometry: %v", err)
	}
	if r.Extension() != ".pdf" {
		t.Errorf("Extension = %q", r.Extension())
	}
}
