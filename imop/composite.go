// Package imop implements the Porter-Duff composition operations
// used for mixing a graphic element with its backdrop.
// Porter and Duff presented in their paper 12 different composition operation,
// but the image/draw core package implements only the source-over-destination and source.
// This package is aimed to overcome the missing composite operations.
//
// The scene renderer draws the blurred shadow silhouettes and the shape
// fills as separate layers and merges them through these operations,
// optionally pushing the top layer through a blend mode first.
package imop

import (
	"fmt"
	"image"
	"image/color"

	"github.com/esimov/scenepack/utils"
)

const (
	Copy    = "copy"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// Bitmap receives the outcome of a composition pass.
type Bitmap struct {
	Img *image.NRGBA
}

// Composite holds the currently active composition operation.
type Composite struct {
	current string
	ops     []string
}

func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// InitOp initializes a new Composite with source-over as the active
// operation, which is how the renderer stacks its layers.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			Copy,
			SrcOver,
			DstOver,
			SrcIn,
			DstIn,
			SrcOut,
			DstOut,
			SrcAtop,
			DstAtop,
			Xor,
		},
	}
}

// Set activates one of the supported composition operations.
func (op *Composite) Set(cop string) error {
	if !utils.Contains(op.ops, cop) {
		return fmt.Errorf("unsupported composition operation: %q", cop)
	}
	op.current = cop
	return nil
}

// Get returns the currently active composition operation.
func (op *Composite) Get() string {
	return op.current
}

// Draw composes src over backdrop into the bitmap using the active
// operation. When a blend mode is set, the source color is pushed
// through it against the backdrop before composition. The inputs are
// left untouched; both must share the bitmap's bounds.
func (op *Composite) Draw(bitmap *Bitmap, src, backdrop *image.NRGBA, blend *Blend) {
	if bitmap == nil || src == nil || backdrop == nil {
		return
	}
	dx, dy := bitmap.Img.Bounds().Dx(), bitmap.Img.Bounds().Dy()

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			rs, gs, bs, as := channels(src.NRGBAAt(x, y))
			rb, gb, bb, ab := channels(backdrop.NRGBAAt(x, y))

			// Mix the source color with the blended one in proportion
			// to the backdrop coverage.
			if blend != nil && blend.Get() != Normal {
				rs = (1-ab)*rs + ab*blend.apply(rb, rs)
				gs = (1-ab)*gs + ab*blend.apply(gb, gs)
				bs = (1-ab)*bs + ab*blend.apply(bb, bs)
			}

			// The composition formulas operate on premultiplied values.
			rs, gs, bs = rs*as, gs*as, bs*as
			rb, gb, bb = rb*ab, gb*ab, bb*ab

			var rn, gn, bn, an float64
			switch op.current {
			case Copy:
				rn, gn, bn, an = rs, gs, bs, as
			case SrcOver:
				rn = rs + rb*(1-as)
				gn = gs + gb*(1-as)
				bn = bs + bb*(1-as)
				an = as + ab*(1-as)
			case DstOver:
				rn = rb + rs*(1-ab)
				gn = gb + gs*(1-ab)
				bn = bb + bs*(1-ab)
				an = ab + as*(1-ab)
			case SrcIn:
				rn, gn, bn, an = rs*ab, gs*ab, bs*ab, as*ab
			case DstIn:
				rn, gn, bn, an = rb*as, gb*as, bb*as, ab*as
			case SrcOut:
				rn, gn, bn, an = rs*(1-ab), gs*(1-ab), bs*(1-ab), as*(1-ab)
			case DstOut:
				rn, gn, bn, an = rb*(1-as), gb*(1-as), bb*(1-as), ab*(1-as)
			case SrcAtop:
				rn = rs*ab + rb*(1-as)
				gn = gs*ab + gb*(1-as)
				bn = bs*ab + bb*(1-as)
				an = ab
			case DstAtop:
				rn = rb*as + rs*(1-ab)
				gn = gb*as + gs*(1-ab)
				bn = bb*as + bs*(1-ab)
				an = as
			case Xor:
				rn = rs*(1-ab) + rb*(1-as)
				gn = gs*(1-ab) + gb*(1-as)
				bn = bs*(1-ab) + bb*(1-as)
				an = as*(1-ab) + ab*(1-as)
			}

			bitmap.Img.SetNRGBA(x, y, unmultiply(rn, gn, bn, an))
		}
	}
}

// channels splits a pixel into normalized straight-alpha channels.
func channels(c color.NRGBA) (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

// unmultiply converts a premultiplied result back to a straight-alpha
// pixel, rounding to the nearest channel value.
func unmultiply(r, g, b, a float64) color.NRGBA {
	if a <= 0 {
		return color.NRGBA{}
	}
	return color.NRGBA{
		R: uint8(r/a*255 + 0.5),
		G: uint8(g/a*255 + 0.5),
		B: uint8(b/a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}
