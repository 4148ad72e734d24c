package scenepack

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// encodeImg encodes an image to a destination of type io.Writer. Files
// pick their encoder from the extension; any other writer gets PNG.
func encodeImg(w io.Writer, img image.Image) error {
	switch w := w.(type) {
	case *os.File:
		ext := filepath.Ext(w.Name())
		switch ext {
		case "", ".png":
			return png.Encode(w, img)
		case ".jpg", ".jpeg":
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
		case ".bmp":
			return bmp.Encode(w, img)
		default:
			return fmt.Errorf("unsupported image format %q", ext)
		}
	default:
		return png.Encode(w, img)
	}
}

// SaveImage writes the image to path, choosing the format by extension.
// Supported formats are png, jpg and bmp.
func SaveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create the image file: %w", err)
	}
	if err := encodeImg(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Thumbnail scales the image down to the given width, keeping the aspect
// ratio. Width values of zero or less return the original image.
func Thumbnail(img image.Image, width int) image.Image {
	if width <= 0 {
		return img
	}
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.RGBA:
		// The rasterizer hands back premultiplied pixels.
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				a := src.Pix[si+3]
				if a == 0 {
					di += 4
					si += 4
					continue
				}
				dst.Pix[di+0] = uint8(uint32(src.Pix[si+0]) * 0xff / uint32(a))
				dst.Pix[di+1] = uint8(uint32(src.Pix[si+1]) * 0xff / uint32(a))
				dst.Pix[di+2] = uint8(uint32(src.Pix[si+2]) * 0xff / uint32(a))
				dst.Pix[di+3] = a
				di += 4
				si += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}

	return dst
}
