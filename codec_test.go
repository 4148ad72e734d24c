package scenepack

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCodec(t *testing.T) {
	for _, s := range Strategies() {
		codec, err := NewCodec(s)
		assert.NoError(t, err)
		assert.NotNil(t, codec)
	}

	_, err := NewCodec(Strategy("gzip"))
	assert.Error(t, err)
}

func TestStrategies_CanonicalOrder(t *testing.T) {
	expected := []Strategy{Regular, Minified, Optimized, Compressed}
	assert.Equal(t, expected, Strategies())
}

func TestCodec_RegularRoundTrip(t *testing.T) {
	scene := testScene()

	data, err := Encode(Regular, scene)
	assert.NoError(t, err)

	decoded, err := Decode(Regular, data)
	assert.NoError(t, err)
	assert.Equal(t, scene, decoded)
}

func TestCodec_MinifiedRoundTrip(t *testing.T) {
	scene := testScene()

	data, err := Encode(Minified, scene)
	assert.NoError(t, err)
	assert.False(t, bytes.ContainsRune(data, '\n'))

	decoded, err := Decode(Minified, data)
	assert.NoError(t, err)
	assert.Equal(t, scene, decoded)
}

// The minified strategy only strips formatting, so the regular decoder
// reads both payloads to the same collection.
func TestCodec_MinifiedIdempotence(t *testing.T) {
	scene := testScene()

	regular, err := Encode(Regular, scene)
	assert.NoError(t, err)
	minified, err := Encode(Minified, scene)
	assert.NoError(t, err)

	fromRegular, err := Decode(Regular, regular)
	assert.NoError(t, err)
	fromMinified, err := Decode(Regular, minified)
	assert.NoError(t, err)

	assert.Equal(t, fromRegular, fromMinified)
}

func TestCodec_SizeOrdering(t *testing.T) {
	scene, err := seededGenerator(7).Generate(40, 1280, 720)
	assert.NoError(t, err)

	exports := map[Strategy]int{}
	for _, s := range Strategies() {
		data, err := Encode(s, scene)
		assert.NoError(t, err)
		exports[s] = len(data)
	}

	assert.LessOrEqual(t, exports[Minified], exports[Regular])
	assert.LessOrEqual(t, exports[Optimized], exports[Minified])
}

func TestCodec_EncodeRejectsUnknownKind(t *testing.T) {
	scene := testScene()
	scene[2].Kind = "blob"

	for _, s := range Strategies() {
		_, err := Encode(s, scene)
		assert.Error(t, err)

		var cerr *ConstructionError
		assert.ErrorAs(t, err, &cerr)
		assert.Equal(t, Kind("blob"), cerr.Kind)
	}
}

func TestCodec_EncodeDoesNotMutateInput(t *testing.T) {
	scene := testScene()
	snapshot := make(Collection, len(scene))
	copy(snapshot, scene)

	for _, s := range Strategies() {
		_, err := Encode(s, scene)
		assert.NoError(t, err)
		assert.Equal(t, snapshot, scene)
	}
}

func TestCodec_EmptyCollection(t *testing.T) {
	for _, s := range Strategies() {
		data, err := Encode(s, Collection{})
		assert.NoError(t, err)

		decoded, err := Decode(s, data)
		assert.NoError(t, err)
		assert.NotNil(t, decoded)
		assert.Len(t, decoded, 0)
	}
}

func TestCodec_NilCollection(t *testing.T) {
	for _, s := range Strategies() {
		data, err := Encode(s, nil)
		assert.NoError(t, err)

		decoded, err := Decode(s, data)
		assert.NoError(t, err)
		assert.Len(t, decoded, 0)
	}
}
