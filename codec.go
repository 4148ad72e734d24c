package scenepack

import (
	"fmt"
	"strings"
)

// Strategy selects one of the four encoding policies. Selection is always
// explicit: a payload is decoded with the strategy it was encoded with,
// never sniffed from the content.
type Strategy string

const (
	Regular    Strategy = "regular"
	Minified   Strategy = "minified"
	Optimized  Strategy = "optimized"
	Compressed Strategy = "compressed"
)

// Strategies returns every strategy in canonical order, from the most
// verbose to the most compact.
func Strategies() []Strategy {
	return []Strategy{Regular, Minified, Optimized, Compressed}
}

// payloadVersion is the field layout revision stamped into the optimized
// and compressed payloads. Decoders reject any other value instead of
// guessing a layout.
const payloadVersion = 1

// Codec turns a shape collection into a byte payload and back. Encode
// never mutates the collection; Decode either returns a complete
// collection or an error, never a partially populated one.
type Codec interface {
	Encode(Collection) ([]byte, error)
	Decode([]byte) (Collection, error)
}

// NewCodec returns the codec implementing the given strategy.
func NewCodec(s Strategy) (Codec, error) {
	switch s {
	case Regular:
		return &RegularCodec{}, nil
	case Minified:
		return &MinifiedCodec{}, nil
	case Optimized:
		return NewOptimizedCodec(), nil
	case Compressed:
		return NewCompressedCodec(), nil
	}
	return nil, fmt.Errorf("unknown encoding strategy %q", string(s))
}

// Encode serializes the collection with the given strategy.
func Encode(s Strategy, c Collection) ([]byte, error) {
	codec, err := NewCodec(s)
	if err != nil {
		return nil, err
	}
	return codec.Encode(c)
}

// Decode reconstructs a collection from a payload produced by the given
// strategy.
func Decode(s Strategy, data []byte) (Collection, error) {
	codec, err := NewCodec(s)
	if err != nil {
		return nil, err
	}
	return codec.Decode(data)
}

// validateKinds rejects a collection containing a shape whose kind falls
// outside the closed enumeration. Every encoder runs it before touching
// the payload so a construction error never yields a half-written blob.
func validateKinds(c Collection) error {
	for i := range c {
		if !c[i].Kind.Valid() {
			return &ConstructionError{Kind: c[i].Kind}
		}
	}
	return nil
}

// UnsupportedVersionError reports a compact payload stamped with a field
// layout revision this package does not know how to read.
type UnsupportedVersionError struct {
	Version int
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported payload version %d", e.Version)
}

// TagAmbiguityError reports a shape tag which matches more than one kind.
// The historic single-character scheme abbreviated both "text" and
// "triangle" to "t"; decoding such a payload surfaces the ambiguity
// instead of guessing one of the two.
type TagAmbiguityError struct {
	Tag   string
	Kinds []Kind
}

func (e *TagAmbiguityError) Error() string {
	names := make([]string, len(e.Kinds))
	for i, k := range e.Kinds {
		names[i] = string(k)
	}
	return fmt.Sprintf("shape tag %q is ambiguous: matches %s", e.Tag, strings.Join(names, ", "))
}

// MalformedStreamError reports a compressed stream which cannot be
// replayed sequentially: truncated input, structurally broken JSON or
// fields arriving in an order the single-pass decoder cannot honor.
type MalformedStreamError struct {
	Offset int64
	Reason string
	Err    error
}

func (e *MalformedStreamError) Error() string {
	return fmt.Sprintf("malformed compressed stream at byte %d: %s", e.Offset, e.Reason)
}

func (e *MalformedStreamError) Unwrap() error {
	return e.Err
}
