package scenepack

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = 0xf4
		img.Pix[i+1] = 0x43
		img.Pix[i+2] = 0x36
		img.Pix[i+3] = 0xff
	}
	return img
}

func TestSaveImage_Formats(t *testing.T) {
	dir := t.TempDir()
	img := testImage(16, 16)

	for _, name := range []string{"scene.png", "scene.jpg", "scene.jpeg", "scene.bmp"} {
		path := filepath.Join(dir, name)
		assert.NoError(t, SaveImage(path, img))

		fi, err := os.Stat(path)
		assert.NoError(t, err)
		assert.Greater(t, fi.Size(), int64(0))
	}
}

func TestSaveImage_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.gif")
	assert.Error(t, SaveImage(path, testImage(8, 8)))
}

func TestEncodeImg_DefaultsToPNG(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, encodeImg(&buf, testImage(8, 8)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestThumbnail(t *testing.T) {
	img := testImage(400, 300)

	thumb := Thumbnail(img, 100)
	assert.Equal(t, 100, thumb.Bounds().Dx())
	assert.Equal(t, 75, thumb.Bounds().Dy())

	// Zero width keeps the original.
	assert.Equal(t, image.Image(img), Thumbnail(img, 0))
}

func TestImgToNRGBA(t *testing.T) {
	// Premultiplied pixels come back straight.
	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	rgba.SetRGBA(0, 0, color.RGBA{R: 128, A: 128})

	out := imgToNRGBA(rgba)
	assert.Equal(t, color.NRGBA{R: 255, A: 128}, out.NRGBAAt(0, 0))

	// A zero-origin NRGBA image passes through untouched.
	src := testImage(4, 4)
	assert.Equal(t, src, imgToNRGBA(src))

	// Other models run through the generic conversion.
	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	gray.SetGray(0, 0, color.Gray{Y: 200})
	out = imgToNRGBA(gray)
	assert.Equal(t, color.NRGBA{R: 200, G: 200, B: 200, A: 255}, out.NRGBAAt(0, 0))
}
