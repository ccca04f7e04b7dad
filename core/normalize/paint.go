package normalize

import (
	"math"

	"github.com/gaurav-prasanna/designpipe/core"
	"github.com/gaurav-prasanna/designpipe/core/figma"
)

// defaultGradientAngle is used when a gradient has fewer than two handles.
const defaultGradientAngle = 90

// ExtractFill picks the paint that styles a node's background: the first
// fill, else the first legacy background entry, else the flat background
// color promoted to a solid paint. Sources are never merged.
func ExtractFill(raw *figma.Node) *figma.Paint {
	switch {
	case len(raw.Fills) > 0:
		return &raw.Fills[0]
	case len(raw.Background) > 0:
		return &raw.Background[0]
	case raw.BackgroundColor != nil:
		one := 1.0
		return &figma.Paint{Type: figma.PaintSolid, Color: raw.BackgroundColor, Opacity: &one}
	}
	return nil
}

// PaintToRGBA converts a paint's unit-interval color to 8-bit channels.
// The alpha is the product of the color's own alpha and the paint opacity,
// each defaulting to 1. It returns nil when there is no color to convert.
func PaintToRGBA(p *figma.Paint) *core.RGBA {
	if p == nil || p.Color == nil {
		return nil
	}
	opacity := 1.0
	if p.Opacity != nil {
		opacity = *p.Opacity
	}
	return colorToRGBA(p.Color, opacity)
}

func colorToRGBA(c *figma.Color, opacity float64) *core.RGBA {
	if c == nil {
		return nil
	}
	a := 1.0
	if c.A != nil {
		a = *c.A
	}
	return &core.RGBA{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: a * opacity,
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// GradientAngle derives a CSS linear-gradient angle in [0, 360) from the
// first two gradient handle positions.
func GradientAngle(handles []figma.Vector) float64 {
	if len(handles) < 2 {
		return defaultGradientAngle
	}
	p0, p1 := handles[0], handles[1]
	deg := math.Atan2(p1.Y-p0.Y, p1.X-p0.X) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}
