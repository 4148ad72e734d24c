package scenepack

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pixelAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestRenderer_Render(t *testing.T) {
	scene := Collection{
		{ID: "0", Kind: Rectangle, X: 100, Y: 75, Fill: "#ff0000", Opacity: 1, Attrs: Attrs{Width: 60, Height: 40}},
	}

	img, err := NewRenderer().Render(scene, 200, 150)
	assert.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 150), img.Bounds())

	// The rectangle interior is solid red, the empty stage stays white.
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, pixelAt(img, 100, 75))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, pixelAt(img, 2, 2))
}

func TestRenderer_Opacity(t *testing.T) {
	scene := Collection{
		{ID: "0", Kind: Rectangle, X: 100, Y: 75, Fill: "#ff0000", Opacity: 0.5, Attrs: Attrs{Width: 60, Height: 40}},
	}

	img, err := NewRenderer().Render(scene, 200, 150)
	assert.NoError(t, err)

	// Half-covered red over the white stage.
	assert.Equal(t, color.NRGBA{R: 255, G: 127, B: 127, A: 255}, pixelAt(img, 100, 75))
}

func TestRenderer_ShadowLayer(t *testing.T) {
	scene := Collection{
		{ID: "0", Kind: Rectangle, X: 100, Y: 75, Fill: "#ff0000", Opacity: 1, ShadowBlur: 10, Attrs: Attrs{Width: 60, Height: 40}},
	}

	img, err := NewRenderer().Render(scene, 200, 150)
	assert.NoError(t, err)

	// Just outside the right edge the blurred silhouette dims the stage.
	halo := pixelAt(img, 134, 75)
	assert.Less(t, halo.G, uint8(250))
	assert.Equal(t, uint8(255), halo.A)

	// Far away the stage is untouched.
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, pixelAt(img, 2, 2))
}

func TestRenderer_UnknownFillFallsBack(t *testing.T) {
	scene := Collection{
		{ID: "0", Kind: Circle, X: 100, Y: 75, Fill: "nosuchcolor", Opacity: 1, Attrs: Attrs{Radius: 40}},
	}

	img, err := NewRenderer().Render(scene, 200, 150)
	assert.NoError(t, err)

	// The neutral gray stands in for the unknown fill.
	assert.Equal(t, color.NRGBA{R: 158, G: 158, B: 158, A: 255}, pixelAt(img, 100, 75))
}

func TestRenderer_BlendMode(t *testing.T) {
	scene := Collection{
		{ID: "0", Kind: Rectangle, X: 100, Y: 75, Fill: "#ff0000", Opacity: 1, Attrs: Attrs{Width: 60, Height: 40}},
	}
	r := &Renderer{Background: "#808080", BlendMode: "multiply"}

	img, err := r.Render(scene, 200, 150)
	assert.NoError(t, err)

	// Red multiplied with the gray stage keeps only half the red channel.
	assert.Equal(t, color.NRGBA{R: 128, A: 255}, pixelAt(img, 100, 75))
}

func TestRenderer_Labels(t *testing.T) {
	scene := Collection{
		{ID: "7", Kind: Rectangle, X: 100, Y: 75, Fill: "#ff0000", Opacity: 1, Attrs: Attrs{Width: 60, Height: 40}},
	}

	plain, err := NewRenderer().Render(scene, 200, 150)
	assert.NoError(t, err)

	r := NewRenderer()
	r.ShowLabels = true
	labeled, err := r.Render(scene, 200, 150)
	assert.NoError(t, err)
	assert.Equal(t, plain.Bounds(), labeled.Bounds())

	// The stamped id must leave a visible mark at the anchor.
	assert.NotEqual(t, imgToNRGBA(plain).Pix, imgToNRGBA(labeled).Pix)
}

func TestRenderer_AllKinds(t *testing.T) {
	img, err := NewRenderer().Render(testScene(), 800, 600)
	assert.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 800, 600), img.Bounds())
}

func TestRenderer_InvalidInput(t *testing.T) {
	scene := testScene()

	_, err := NewRenderer().Render(scene, 0, 150)
	assert.Error(t, err)

	_, err = NewRenderer().Render(scene, 200, -1)
	assert.Error(t, err)

	r := &Renderer{BlendMode: "poster"}
	_, err = r.Render(scene, 200, 150)
	assert.Error(t, err)

	r = &Renderer{Background: "#zzzzzz"}
	_, err = r.Render(scene, 200, 150)
	assert.Error(t, err)

	bad := testScene()
	bad[1].Kind = "blob"
	_, err = NewRenderer().Render(bad, 200, 150)
	assert.Error(t, err)

	var cerr *ConstructionError
	assert.ErrorAs(t, err, &cerr)
}
