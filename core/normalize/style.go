package normalize

import (
	"strings"

	"github.com/gaurav-prasanna/designpipe/core"
	"github.com/gaurav-prasanna/designpipe/core/figma"
)

// ExtractStyle collects background, border, radius and shadow properties.
// Every property is independently optional.
func ExtractStyle(raw *figma.Node) core.Style {
	var style core.Style

	if fill := ExtractFill(raw); fill != nil {
		switch fill.Type {
		case figma.PaintSolid:
			style.BackgroundColor = PaintToRGBA(fill)
		case figma.PaintGradientLinear:
			style.BackgroundGradient = extractGradient(fill)
		}
	}

	if len(raw.Strokes) > 0 {
		style.BorderColor = PaintToRGBA(&raw.Strokes[0])
		width := 0.0
		if raw.StrokeWeight != nil {
			width = *raw.StrokeWeight
		}
		style.BorderWidth = &width
	}

	switch {
	case len(raw.RectangleCornerRadii) == 4:
		var corners [4]float64
		copy(corners[:], raw.RectangleCornerRadii)
		style.BorderRadius = &core.Radius{Corners: &corners}
	case raw.CornerRadius != nil:
		style.BorderRadius = &core.Radius{Uniform: *raw.CornerRadius}
	}

	if e := firstDropShadow(raw.Effects); e != nil {
		s := &core.Shadow{Blur: e.Radius, Color: colorToRGBA(e.Color, 1)}
		if e.Offset != nil {
			s.OffsetX, s.OffsetY = e.Offset.X, e.Offset.Y
		}
		style.BoxShadow = s
	}

	return style
}

func extractGradient(fill *figma.Paint) *core.Gradient {
	g := &core.Gradient{
		AngleDeg: GradientAngle(fill.GradientHandlePositions),
		Stops:    make([]core.GradientStop, 0, len(fill.GradientStops)),
	}
	for _, s := range fill.GradientStops {
		// Stops ignore the paint opacity; a stop without color is transparent.
		c := core.RGBA{}
		if rgba := colorToRGBA(s.Color, 1); rgba != nil {
			c = *rgba
		}
		g.Stops = append(g.Stops, core.GradientStop{Color: c, Position: s.Position})
	}
	return g
}

// firstDropShadow returns the first drop shadow; later ones are ignored.
func firstDropShadow(effects []figma.Effect) *figma.Effect {
	for i := range effects {
		if effects[i].Type == figma.EffectDropShadow {
			return &effects[i]
		}
	}
	return nil
}

func countDropShadows(effects []figma.Effect) int {
	n := 0
	for _, e := range effects {
		if e.Type == figma.EffectDropShadow {
			n++
		}
	}
	return n
}

// ExtractText returns typography for TEXT nodes that carry a style block,
// and nil otherwise. Only a solid first fill colors the text; anything else
// falls back to opaque black.
func ExtractText(raw *figma.Node) *core.Text {
	if raw.Type != figma.TypeText || raw.Style == nil {
		return nil
	}
	s := raw.Style

	color := core.Black
	if len(raw.Fills) > 0 && raw.Fills[0].Type == figma.PaintSolid {
		if c := PaintToRGBA(&raw.Fills[0]); c != nil {
			color = *c
		}
	}

	var lineHeight *float64
	if s.LineHeightPx != nil {
		lh := *s.LineHeightPx
		lineHeight = &lh
	}

	return &core.Text{
		FontFamily:    s.FontFamily,
		FontSize:      s.FontSize,
		FontWeight:    s.FontWeight,
		LineHeight:    lineHeight,
		LetterSpacing: s.LetterSpacing,
		TextAlign:     strings.ToLower(s.TextAlignHorizontal),
		Color:         color,
		Content:       raw.Characters,
	}
}

// ExtractAutoLayout returns the flow layout of a node whose layout mode is
// set and not NONE. Missing spacing and padding default to 0.
func ExtractAutoLayout(raw *figma.Node) *core.AutoLayout {
	if raw.LayoutMode == nil || *raw.LayoutMode == "" || *raw.LayoutMode == figma.LayoutNone {
		return nil
	}
	return &core.AutoLayout{
		Axis:        core.Axis(*raw.LayoutMode),
		ItemSpacing: orZero(raw.ItemSpacing),
		Padding: core.Padding{
			Top:    orZero(raw.PaddingTop),
			Right:  orZero(raw.PaddingRight),
			Bottom: orZero(raw.PaddingBottom),
			Left:   orZero(raw.PaddingLeft),
		},
		PrimaryAxisAlign: raw.PrimaryAxisAlignItems,
		CounterAxisAlign: raw.CounterAxisAlignItems,
	}
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
