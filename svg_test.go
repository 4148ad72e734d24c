package scenepack

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteSVG(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	err := NewRenderer().WriteSVG(&buf, testScene(), 800, 600)
	assert.NoError(err)

	out := buf.String()
	assert.Contains(out, "<svg")
	assert.Contains(out, `width="800"`)
	assert.Contains(out, `height="600"`)

	// One element per kind: the stage rect plus the shape rect.
	assert.Equal(2, strings.Count(out, "<rect"))
	assert.Contains(out, "<circle")
	assert.Contains(out, "<polygon")
	assert.Contains(out, ">Hello</text>")
	assert.Contains(out, "</svg>")

	// Fills resolve through the palette, opacity rides along.
	assert.Contains(out, "fill:#f44336")
	assert.Contains(out, "fill-opacity:0.80")

	// Rotated shapes sit inside a rotation group around their anchor.
	assert.Contains(out, `rotate(45,120,80)`)
	assert.Contains(out, "</g>")
}

func TestWriteSVG_Labels(t *testing.T) {
	scene := Collection{
		{ID: "42", Kind: Circle, X: 100, Y: 75, Fill: "blue", Opacity: 0.8, Attrs: Attrs{Radius: 40}},
	}

	var buf bytes.Buffer
	r := NewRenderer()
	r.ShowLabels = true
	err := r.WriteSVG(&buf, scene, 200, 150)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), ">42</text>")
}

func TestWriteSVG_Background(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{Background: "#222222"}
	err := r.WriteSVG(&buf, Collection{}, 100, 100)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "fill:#222222")
}

func TestWriteSVG_InvalidInput(t *testing.T) {
	var buf bytes.Buffer

	err := NewRenderer().WriteSVG(&buf, testScene(), 0, 100)
	assert.Error(t, err)

	bad := testScene()
	bad[0].Kind = "blob"
	err = NewRenderer().WriteSVG(&buf, bad, 100, 100)
	assert.Error(t, err)
}
