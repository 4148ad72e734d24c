package scenepack

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CompressedCodec is the optimized strategy with positions stored as
// deltas: each shape records its offset from the previous one, the first
// from the origin. Scenes with local clustering shed digits; decoding is
// a running sum over a single forward pass of the stream.
type CompressedCodec struct {
	// Defaults supplies the attribute templates restored on decode when
	// the payload carries none for a kind.
	Defaults StyleDefaults

	// Common is the style written for an empty collection.
	Common CommonStyle
}

var _ Codec = (*CompressedCodec)(nil)

// NewCompressedCodec returns a compressed codec with the stock templates
// and common style.
func NewCompressedCodec() *CompressedCodec {
	return &CompressedCodec{
		Defaults: DefaultStyle(),
		Common:   DefaultCommonStyle(),
	}
}

func (cc *CompressedCodec) Encode(c Collection) ([]byte, error) {
	oc := &OptimizedCodec{Defaults: cc.Defaults, Common: cc.Common}
	payload, err := oc.buildPayload(c)
	if err != nil {
		return nil, err
	}

	var prevX, prevY float64
	for i := range payload.Shapes {
		x, y := payload.Shapes[i].X, payload.Shapes[i].Y
		payload.Shapes[i].X = x - prevX
		payload.Shapes[i].Y = y - prevY
		prevX, prevY = x, y
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding scene: %w", err)
	}
	return data, nil
}

// Decode replays the payload as a token stream. Deltas are summed back
// into absolute positions as each shape arrives, so the shapes array is
// never buffered. The version must precede the shapes; a stream that
// breaks off or bends the structure surfaces as a MalformedStreamError
// carrying the byte offset where the replay stopped.
func (cc *CompressedCodec) Decode(data []byte) (Collection, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, streamErr(dec, "reading document start", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, streamErr(dec, "document is not a JSON object", nil)
	}

	var (
		versionSeen bool
		common      CommonStyle
		templates   map[Kind]Attrs
		shapes      Collection
		prevX       float64
		prevY       float64
	)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, streamErr(dec, "reading object key", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, streamErr(dec, "object key is not a string", nil)
		}

		switch key {
		case "version":
			var v int
			if err := dec.Decode(&v); err != nil {
				return nil, streamErr(dec, "reading version", err)
			}
			if v != payloadVersion {
				return nil, &UnsupportedVersionError{Version: v}
			}
			versionSeen = true
		case "commonStyle":
			if err := dec.Decode(&common); err != nil {
				return nil, streamErr(dec, "reading common style", err)
			}
		case "styleTemplates":
			if err := dec.Decode(&templates); err != nil {
				return nil, streamErr(dec, "reading style templates", err)
			}
		case "shapes":
			if !versionSeen {
				return nil, streamErr(dec, `"shapes" arrived before "version"`, nil)
			}
			tok, err := dec.Token()
			if err != nil {
				return nil, streamErr(dec, "reading shapes start", err)
			}
			if delim, ok := tok.(json.Delim); !ok || delim != '[' {
				return nil, streamErr(dec, `"shapes" is not an array`, nil)
			}
			shapes = Collection{}
			for dec.More() {
				var cs compactShape
				if err := dec.Decode(&cs); err != nil {
					return nil, streamErr(dec, "reading shape", err)
				}
				kind, err := tagKind(cs.Tag)
				if err != nil {
					return nil, err
				}
				prevX += cs.X
				prevY += cs.Y
				shapes = append(shapes, Shape{
					ID:       cs.ID,
					Kind:     kind,
					X:        prevX,
					Y:        prevY,
					Fill:     cs.Fill,
					Rotation: cs.Rotation,
				})
			}
			if _, err := dec.Token(); err != nil {
				return nil, streamErr(dec, "reading shapes end", err)
			}
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, streamErr(dec, fmt.Sprintf("skipping %q", key), err)
			}
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, streamErr(dec, "reading document end", err)
	}
	if !versionSeen {
		return nil, &UnsupportedVersionError{Version: 0}
	}

	defaults := cc.Defaults
	if defaults == nil {
		defaults = DefaultStyle()
	}
	for i := range shapes {
		attrs, ok := templates[shapes[i].Kind]
		if !ok {
			attrs, err = defaults.Template(shapes[i].Kind)
			if err != nil {
				return nil, err
			}
		}
		shapes[i].Opacity = common.Opacity
		shapes[i].ShadowBlur = common.ShadowBlur
		shapes[i].Attrs = attrs
	}
	if shapes == nil {
		shapes = Collection{}
	}
	return shapes, nil
}

func streamErr(dec *json.Decoder, reason string, err error) *MalformedStreamError {
	return &MalformedStreamError{Offset: dec.InputOffset(), Reason: reason, Err: err}
}
