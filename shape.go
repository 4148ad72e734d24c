package scenepack

import "fmt"

// Kind identifies the geometric family of a shape. It is a closed
// enumeration: a Kind outside the declared set never resolves to an
// attribute template and is rejected with a ConstructionError wherever
// it shows up, instead of being silently replaced by a fallback shape.
type Kind string

const (
	Rectangle Kind = "rectangle"
	Circle    Kind = "circle"
	Text      Kind = "text"
	Star      Kind = "star"
	Triangle  Kind = "triangle"
	Hexagon   Kind = "hexagon"
)

// Kinds returns the closed shape enumeration in canonical order.
func Kinds() []Kind {
	return []Kind{Rectangle, Circle, Text, Star, Triangle, Hexagon}
}

// Valid reports whether k belongs to the closed enumeration.
func (k Kind) Valid() bool {
	switch k {
	case Rectangle, Circle, Text, Star, Triangle, Hexagon:
		return true
	}
	return false
}

// Attrs holds the kind specific attributes of a shape. Only the fields
// relevant to the owning kind are populated; the zero fields are omitted
// from the serialized form. Width/Height describe a rectangle, Radius a
// circle or a regular polygon (together with the structural Sides count),
// NumPoints/InnerRadius/OuterRadius a star and Text/FontSize a text label.
type Attrs struct {
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Radius      float64 `json:"radius,omitempty"`
	Sides       int     `json:"sides,omitempty"`
	NumPoints   int     `json:"numPoints,omitempty"`
	InnerRadius float64 `json:"innerRadius,omitempty"`
	OuterRadius float64 `json:"outerRadius,omitempty"`
	Text        string  `json:"text,omitempty"`
	FontSize    float64 `json:"fontSize,omitempty"`
}

// Scale returns a copy of the attributes with every magnitude field
// multiplied by factor. Structural counts (Sides, NumPoints) and the text
// content are not magnitudes: scaling a side count would produce a
// non-integral polygon definition, so they are copied through unchanged.
func (a Attrs) Scale(factor float64) Attrs {
	a.Width *= factor
	a.Height *= factor
	a.Radius *= factor
	a.InnerRadius *= factor
	a.OuterRadius *= factor
	a.FontSize *= factor
	return a
}

// Shape is a single drawable entity. The concrete attribute values are
// computed once, at generation time; nothing is re-derived from nested
// defaults afterwards, except intentionally by the lossy decode paths of
// the optimized and compressed strategies.
type Shape struct {
	ID         string  `json:"id"`
	Kind       Kind    `json:"kind"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Fill       string  `json:"fill"`
	Rotation   float64 `json:"rotation"`
	Opacity    float64 `json:"opacity"`
	ShadowBlur float64 `json:"shadowBlur"`
	Attrs      Attrs   `json:"attrs"`
}

// Collection is an ordered sequence of shapes making up one scene.
// The order is meaningful only to the compressed strategy, which encodes
// each position as the delta from the preceding shape.
type Collection []Shape

// CommonStyle carries the style attributes shared by every shape the
// generator produces. Individual shapes may still override them; the
// compact strategies factor the shared pair out into the payload header.
type CommonStyle struct {
	Opacity    float64 `json:"opacity"`
	ShadowBlur float64 `json:"shadowBlur"`
}

// StyleDefaults maps each kind to its attribute template holding the
// nominal, 100%-scale values.
type StyleDefaults map[Kind]Attrs

// Template returns the nominal attribute template registered for the kind.
func (sd StyleDefaults) Template(k Kind) (Attrs, error) {
	tpl, ok := sd[k]
	if !ok {
		return Attrs{}, &ConstructionError{Kind: k}
	}
	return tpl, nil
}

// DefaultStyle returns the attribute templates the demo scene is built
// from. The returned map is a fresh copy and can be freely adjusted.
func DefaultStyle() StyleDefaults {
	return StyleDefaults{
		Rectangle: {Width: 100, Height: 80},
		Circle:    {Radius: 50},
		Text:      {Text: "Hello", FontSize: 24},
		Star:      {NumPoints: 5, InnerRadius: 25, OuterRadius: 50},
		Triangle:  {Sides: 3, Radius: 55},
		Hexagon:   {Sides: 6, Radius: 55},
	}
}

// DefaultCommonStyle returns the shared style values applied to every
// generated shape.
func DefaultCommonStyle() CommonStyle {
	return CommonStyle{Opacity: 0.8, ShadowBlur: 5}
}

// DefaultPalette returns the six fill tokens the generator picks from.
// A shape's fill is not restricted to the palette: any string survives
// the encode/decode round trip verbatim.
func DefaultPalette() []string {
	return []string{"red", "orange", "yellow", "green", "blue", "purple"}
}

// ConstructionError reports a shape kind which does not resolve to a known
// attribute template.
type ConstructionError struct {
	Kind Kind
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("unknown shape kind %q", string(e.Kind))
}
