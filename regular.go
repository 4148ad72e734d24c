package scenepack

import (
	"encoding/json"
	"fmt"
)

// sceneDocument is the verbose payload shared by the regular and minified
// strategies: the full shape records under a single top-level key.
type sceneDocument struct {
	Shapes Collection `json:"shapes"`
}

// RegularCodec writes the complete shape records as indented JSON. It is
// the human-readable baseline every other strategy is measured against.
type RegularCodec struct{}

// MinifiedCodec writes the same document as the regular strategy with all
// insignificant whitespace removed. Same fields, same values, smaller
// payload.
type MinifiedCodec struct{}

var (
	_ Codec = (*RegularCodec)(nil)
	_ Codec = (*MinifiedCodec)(nil)
)

func (rc *RegularCodec) Encode(c Collection) ([]byte, error) {
	doc, err := newSceneDocument(c)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding scene: %w", err)
	}
	return data, nil
}

func (rc *RegularCodec) Decode(data []byte) (Collection, error) {
	return decodeSceneDocument(data)
}

func (mc *MinifiedCodec) Encode(c Collection) ([]byte, error) {
	doc, err := newSceneDocument(c)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding scene: %w", err)
	}
	return data, nil
}

func (mc *MinifiedCodec) Decode(data []byte) (Collection, error) {
	return decodeSceneDocument(data)
}

func newSceneDocument(c Collection) (*sceneDocument, error) {
	if err := validateKinds(c); err != nil {
		return nil, err
	}
	if c == nil {
		c = Collection{}
	}
	return &sceneDocument{Shapes: c}, nil
}

func decodeSceneDocument(data []byte) (Collection, error) {
	var doc sceneDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	if err := validateKinds(doc.Shapes); err != nil {
		return nil, err
	}
	if doc.Shapes == nil {
		doc.Shapes = Collection{}
	}
	return doc.Shapes, nil
}
