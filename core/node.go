package core

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeType is the kind of a canonical node. Only TEXT changes rendering;
// every other design-tool type is carried through for diagnostics.
type NodeType string

// TypeText marks a text run.
const TypeText NodeType = "TEXT"

// ClassPrefix is prepended to every node class name.
const ClassPrefix = "node-"

// IsText reports whether the node type is TEXT.
func (t NodeType) IsText() bool { return t == TypeText }

// CanonicalNode is the renderer-agnostic representation of one design node.
// A tree is built once by the normalizer and only read afterwards.
type CanonicalNode struct {
	ID         string           `json:"id"`
	Type       NodeType         `json:"type"`
	Name       string           `json:"name,omitempty"`
	Absolute   *Rect            `json:"absolute,omitempty"`
	AutoLayout *AutoLayout      `json:"autoLayout,omitempty"`
	Style      Style            `json:"style"`
	Text       *Text            `json:"text,omitempty"`
	Children   []*CanonicalNode `json:"children"`
}

// ClassName returns the class shared by the node's markup element and its
// stylesheet rule.
func (n *CanonicalNode) ClassName() string { return ClassName(n.ID) }

// ClassName derives a class name from a node identifier.
func ClassName(id string) string {
	return ClassPrefix + strings.ReplaceAll(id, ":", "-")
}

// Walk visits n and its descendants in pre-order, stopping early when fn
// returns false for a node (its subtree is skipped).
func (n *CanonicalNode) Walk(fn func(*CanonicalNode) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Rect is an axis-aligned rectangle in the document's global coordinate space.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Axis is the flow direction of an auto-layout container.
type Axis string

const (
	AxisHorizontal Axis = "HORIZONTAL"
	AxisVertical   Axis = "VERTICAL"
)

// Padding holds per-side inner spacing in pixels.
type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// AutoLayout describes flow-based child arrangement.
type AutoLayout struct {
	Axis             Axis    `json:"axis"`
	ItemSpacing      float64 `json:"itemSpacing"`
	Padding          Padding `json:"padding"`
	PrimaryAxisAlign string  `json:"primaryAxisAlign,omitempty"`
	CounterAxisAlign string  `json:"counterAxisAlign,omitempty"`
}

// RGBA is an 8-bit-per-channel color with a fractional alpha.
type RGBA struct {
	R, G, B uint8
	A       float64
}

// String formats the color as a CSS rgba() value.
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, FormatNumber(c.A))
}

// MarshalText lets RGBA appear as its CSS form in JSON output.
func (c RGBA) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Black is the fallback text color.
var Black = RGBA{A: 1}

// GradientStop is one color stop; Position is in the unit interval.
type GradientStop struct {
	Color    RGBA    `json:"color"`
	Position float64 `json:"position"`
}

// Gradient is a linear gradient with a CSS angle in degrees.
type Gradient struct {
	AngleDeg float64        `json:"angleDeg"`
	Stops    []GradientStop `json:"stops"`
}

// Radius is either a uniform corner radius or four independent corners in
// top-left, top-right, bottom-right, bottom-left order.
type Radius struct {
	Uniform float64     `json:"uniform"`
	Corners *[4]float64 `json:"corners,omitempty"`
}

// Shadow is a single drop shadow. Color is nil when the source had none.
type Shadow struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	Blur    float64 `json:"blur"`
	Color   *RGBA   `json:"color,omitempty"`
}

// String formats the shadow as a CSS box-shadow value.
func (s Shadow) String() string {
	v := FormatNumber(s.OffsetX) + "px " + FormatNumber(s.OffsetY) + "px " + FormatNumber(s.Blur) + "px"
	if s.Color != nil {
		v += " " + s.Color.String()
	}
	return v
}

// Style holds independently optional visual properties.
// A nil field means the property is not emitted.
type Style struct {
	BackgroundColor    *RGBA     `json:"backgroundColor,omitempty"`
	BackgroundGradient *Gradient `json:"backgroundGradient,omitempty"`
	BorderColor        *RGBA     `json:"borderColor,omitempty"`
	BorderWidth        *float64  `json:"borderWidth,omitempty"`
	BorderRadius       *Radius   `json:"borderRadius,omitempty"`
	BoxShadow          *Shadow   `json:"boxShadow,omitempty"`
}

// Text holds typography for TEXT nodes.
type Text struct {
	FontFamily    string   `json:"fontFamily"`
	FontSize      float64  `json:"fontSize"`
	FontWeight    float64  `json:"fontWeight"`
	LineHeight    *float64 `json:"lineHeight,omitempty"`
	LetterSpacing float64  `json:"letterSpacing"`
	TextAlign     string   `json:"textAlign,omitempty"`
	Color         RGBA     `json:"color"`
	Content       string   `json:"content"`
}

// EffectiveLineHeight returns the line height, falling back to the font
// size when unspecified or zero.
func (t *Text) EffectiveLineHeight() float64 {
	if t.LineHeight == nil || *t.LineHeight == 0 {
		return t.FontSize
	}
	return *t.LineHeight
}

// FormatNumber prints a float the shortest way that round-trips, so 20
// prints as "20" and 0.5 as "0.5".
func FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
