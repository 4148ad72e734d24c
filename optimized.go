package scenepack

import (
	"encoding/json"
	"fmt"
)

// kindTags maps every shape kind to its payload tag. Tags are as short as
// the kind set allows: one character where the initial is unique, two
// where "text" and "triangle" would otherwise collide on "t".
var kindTags = map[Kind]string{
	Rectangle: "r",
	Circle:    "c",
	Star:      "s",
	Hexagon:   "h",
	Text:      "tx",
	Triangle:  "tr",
}

// ambiguousTags lists the legacy single-character tags that match more
// than one kind, with the kinds they match in canonical order.
var ambiguousTags = map[string][]Kind{
	"t": {Text, Triangle},
}

// tagKind resolves a payload tag back to its shape kind.
func tagKind(tag string) (Kind, error) {
	for k, t := range kindTags {
		if t == tag {
			return k, nil
		}
	}
	if kinds, ok := ambiguousTags[tag]; ok {
		return "", &TagAmbiguityError{Tag: tag, Kinds: kinds}
	}
	return "", &ConstructionError{Kind: Kind(tag)}
}

// compactPayload is the document written by the optimized and compressed
// strategies: a layout version, the style shared by every shape, the
// nominal attribute templates and the per-shape residue.
type compactPayload struct {
	Version        int            `json:"version"`
	CommonStyle    CommonStyle    `json:"commonStyle"`
	StyleTemplates map[Kind]Attrs `json:"styleTemplates"`
	Shapes         []compactShape `json:"shapes"`
}

// compactShape keeps only what varies between shapes. Single-letter keys
// buy most of the size reduction; the kind collapses to its tag.
type compactShape struct {
	ID       string  `json:"i"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Fill     string  `json:"f"`
	Rotation float64 `json:"r"`
	Tag      string  `json:"t"`
}

// OptimizedCodec strips per-shape style and sizing down to shared tables.
// The trade is deliberate: scaled geometry and per-shape opacity do not
// survive the trip, decoded shapes get the nominal template back.
type OptimizedCodec struct {
	// Defaults supplies the attribute templates restored on decode when
	// the payload carries none for a kind.
	Defaults StyleDefaults

	// Common is the style written for an empty collection, where there is
	// no first shape to lift it from.
	Common CommonStyle
}

var _ Codec = (*OptimizedCodec)(nil)

// NewOptimizedCodec returns an optimized codec with the stock templates
// and common style.
func NewOptimizedCodec() *OptimizedCodec {
	return &OptimizedCodec{
		Defaults: DefaultStyle(),
		Common:   DefaultCommonStyle(),
	}
}

func (oc *OptimizedCodec) Encode(c Collection) ([]byte, error) {
	payload, err := oc.buildPayload(c)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding scene: %w", err)
	}
	return data, nil
}

func (oc *OptimizedCodec) Decode(data []byte) (Collection, error) {
	var payload compactPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	if payload.Version != payloadVersion {
		return nil, &UnsupportedVersionError{Version: payload.Version}
	}
	return oc.restore(&payload)
}

// buildPayload factors the collection into the compact document. The
// common style is lifted from the first shape; the template table carries
// one entry per kind present in the collection.
func (oc *OptimizedCodec) buildPayload(c Collection) (*compactPayload, error) {
	if err := validateKinds(c); err != nil {
		return nil, err
	}
	defaults := oc.Defaults
	if defaults == nil {
		defaults = DefaultStyle()
	}

	common := oc.Common
	if len(c) > 0 {
		common = CommonStyle{Opacity: c[0].Opacity, ShadowBlur: c[0].ShadowBlur}
	}

	templates := make(map[Kind]Attrs)
	shapes := make([]compactShape, len(c))
	for i, s := range c {
		if _, ok := templates[s.Kind]; !ok {
			tpl, err := defaults.Template(s.Kind)
			if err != nil {
				return nil, err
			}
			templates[s.Kind] = tpl
		}
		shapes[i] = compactShape{
			ID:       s.ID,
			X:        s.X,
			Y:        s.Y,
			Fill:     s.Fill,
			Rotation: s.Rotation,
			Tag:      kindTags[s.Kind],
		}
	}

	return &compactPayload{
		Version:        payloadVersion,
		CommonStyle:    common,
		StyleTemplates: templates,
		Shapes:         shapes,
	}, nil
}

// restore rebuilds full shape records from the compact document. Styling
// comes from the shared tables, which is where the strategy loses the
// per-shape values the encoder dropped.
func (oc *OptimizedCodec) restore(payload *compactPayload) (Collection, error) {
	defaults := oc.Defaults
	if defaults == nil {
		defaults = DefaultStyle()
	}

	out := make(Collection, len(payload.Shapes))
	for i, cs := range payload.Shapes {
		kind, err := tagKind(cs.Tag)
		if err != nil {
			return nil, err
		}
		attrs, ok := payload.StyleTemplates[kind]
		if !ok {
			attrs, err = defaults.Template(kind)
			if err != nil {
				return nil, err
			}
		}
		out[i] = Shape{
			ID:         cs.ID,
			Kind:       kind,
			X:          cs.X,
			Y:          cs.Y,
			Fill:       cs.Fill,
			Rotation:   cs.Rotation,
			Opacity:    payload.CommonStyle.Opacity,
			ShadowBlur: payload.CommonStyle.ShadowBlur,
			Attrs:      attrs,
		}
	}
	return out, nil
}
