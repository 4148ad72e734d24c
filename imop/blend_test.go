package imop

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlend_SetGet(t *testing.T) {
	assert := assert.New(t)

	bl := NewBlend()
	assert.Equal(Normal, bl.Get())
	assert.Equal([]string{Normal, Darken, Lighten, Multiply, Screen, Overlay}, bl.Modes())

	err := bl.Set("blend_mode_not_supported")
	assert.Error(err)
	assert.Equal(Normal, bl.Get())

	assert.NoError(bl.Set(Screen))
	assert.Equal(Screen, bl.Get())
}

func TestBlend_Modes(t *testing.T) {
	// The expected values follow the separable blend mode formulas from
	// the CSS compositing spec, rounded to the nearest channel value.
	assert := assert.New(t)

	pinkFront := color.NRGBA{R: 214, G: 20, B: 65, A: 255}
	orangeBack := color.NRGBA{R: 250, G: 121, B: 17, A: 255}

	tests := []struct {
		mode     string
		expected []uint8
	}{
		{Darken, []uint8{214, 20, 17, 255}},
		{Lighten, []uint8{250, 121, 65, 255}},
		{Multiply, []uint8{210, 9, 4, 255}},
		{Screen, []uint8{254, 132, 78, 255}},
		{Overlay, []uint8{253, 19, 9, 255}},
	}

	rect := image.Rect(0, 0, 1, 1)
	source := image.NewNRGBA(rect)
	backdrop := image.NewNRGBA(rect)
	draw.Draw(source, rect, &image.Uniform{pinkFront}, image.Point{}, draw.Src)
	draw.Draw(backdrop, rect, &image.Uniform{orangeBack}, image.Point{}, draw.Src)

	op := InitOp()
	blend := NewBlend()

	for _, tt := range tests {
		assert.NoError(blend.Set(tt.mode))

		bmp := NewBitmap(rect)
		op.Draw(bmp, source, backdrop, blend)
		assert.EqualValues(tt.expected, bmp.Img.Pix, "mode: %s", tt.mode)
	}
}

func TestBlend_NormalPassthrough(t *testing.T) {
	assert := assert.New(t)

	rect := image.Rect(0, 0, 3, 3)
	source := image.NewNRGBA(rect)
	backdrop := image.NewNRGBA(rect)
	draw.Draw(source, rect, &image.Uniform{color.NRGBA{R: 214, G: 20, B: 65, A: 128}}, image.Point{}, draw.Src)
	draw.Draw(backdrop, rect, &image.Uniform{color.NRGBA{R: 250, G: 121, B: 17, A: 255}}, image.Point{}, draw.Src)

	op := InitOp()

	plain := NewBitmap(rect)
	op.Draw(plain, source, backdrop, nil)

	blended := NewBitmap(rect)
	op.Draw(blended, source, backdrop, NewBlend())

	assert.Equal(plain.Img.Pix, blended.Img.Pix)
}
