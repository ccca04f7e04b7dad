// Package figma holds the raw document shapes returned by the Figma REST API.
// Every field is optional: the API omits properties a node does not use, and
// callers must treat a nil pointer as "no such property".
package figma

import (
	"encoding/json"
	"fmt"
	"io"
)

// File is the response body of GET /v1/files/:key.
type File struct {
	Name         string `json:"name"`
	LastModified string `json:"lastModified,omitempty"`
	Version      string `json:"version,omitempty"`
	Document     *Node  `json:"document"`
}

// Node is one raw design node.
type Node struct {
	ID   *string `json:"id"`
	Name string  `json:"name,omitempty"`
	Type string  `json:"type,omitempty"`

	AbsoluteBoundingBox *Rectangle `json:"absoluteBoundingBox,omitempty"`

	LayoutMode            *string  `json:"layoutMode,omitempty"`
	PrimaryAxisAlignItems string   `json:"primaryAxisAlignItems,omitempty"`
	CounterAxisAlignItems string   `json:"counterAxisAlignItems,omitempty"`
	ItemSpacing           *float64 `json:"itemSpacing,omitempty"`
	PaddingTop            *float64 `json:"paddingTop,omitempty"`
	PaddingRight          *float64 `json:"paddingRight,omitempty"`
	PaddingBottom         *float64 `json:"paddingBottom,omitempty"`
	PaddingLeft           *float64 `json:"paddingLeft,omitempty"`

	Fills           []Paint `json:"fills,omitempty"`
	Background      []Paint `json:"background,omitempty"`
	BackgroundColor *Color  `json:"backgroundColor,omitempty"`

	Strokes      []Paint  `json:"strokes,omitempty"`
	StrokeWeight *float64 `json:"strokeWeight,omitempty"`

	CornerRadius         *float64  `json:"cornerRadius,omitempty"`
	RectangleCornerRadii []float64 `json:"rectangleCornerRadii,omitempty"`

	Effects []Effect `json:"effects,omitempty"`

	Style      *TypeStyle `json:"style,omitempty"`
	Characters string     `json:"characters,omitempty"`

	Children []*Node `json:"children,omitempty"`
}

// Rectangle is a bounding box in absolute canvas coordinates.
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Color has unit-interval channels. A is optional and defaults to 1.
type Color struct {
	R float64  `json:"r"`
	G float64  `json:"g"`
	B float64  `json:"b"`
	A *float64 `json:"a,omitempty"`
}

// Vector is a 2D point in a node's local unit space.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ColorStop is one stop of a gradient paint.
type ColorStop struct {
	Position float64 `json:"position"`
	Color    *Color  `json:"color,omitempty"`
}

// Paint kinds the normalizer understands.
const (
	PaintSolid          = "SOLID"
	PaintGradientLinear = "GRADIENT_LINEAR"
)

// Paint is a fill, stroke or background entry.
type Paint struct {
	Type                    string      `json:"type"`
	Opacity                 *float64    `json:"opacity,omitempty"`
	Color                   *Color      `json:"color,omitempty"`
	GradientHandlePositions []Vector    `json:"gradientHandlePositions,omitempty"`
	GradientStops           []ColorStop `json:"gradientStops,omitempty"`
}

// EffectDropShadow is the only effect kind that is rendered.
const EffectDropShadow = "DROP_SHADOW"

// Effect is a visual effect such as a shadow or blur.
type Effect struct {
	Type   string  `json:"type"`
	Offset *Vector `json:"offset,omitempty"`
	Radius float64 `json:"radius"`
	Color  *Color  `json:"color,omitempty"`
}

// TypeStyle is the text style block of a TEXT node.
type TypeStyle struct {
	FontFamily          string   `json:"fontFamily,omitempty"`
	FontSize            float64  `json:"fontSize"`
	FontWeight          float64  `json:"fontWeight"`
	LineHeightPx        *float64 `json:"lineHeightPx,omitempty"`
	LetterSpacing       float64  `json:"letterSpacing"`
	TextAlignHorizontal string   `json:"textAlignHorizontal,omitempty"`
}

// LayoutNone disables auto-layout.
const LayoutNone = "NONE"

// TypeText is the raw type tag of a text node.
const TypeText = "TEXT"

// Decode reads a file document from r.
func Decode(r io.Reader) (*File, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding figma file: %w", err)
	}
	return &f, nil
}
