package scenepack

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/esimov/scenepack/imop"
	"github.com/esimov/scenepack/utils"
)

// fillColors maps the symbolic palette names to stage colors. A fill
// outside the table and not in hex notation falls back to a neutral
// gray, the renderer stays permissive where the codecs stay verbatim.
var fillColors = map[string]string{
	"red":    "#f44336",
	"orange": "#ff9800",
	"yellow": "#ffeb3b",
	"green":  "#4caf50",
	"blue":   "#2196f3",
	"purple": "#9c27b0",
}

const neutralFill = "#9e9e9e"

// Renderer rasterizes a shape collection into a stage snapshot. The
// zero value renders on a white stage with no labels and no blending.
type Renderer struct {
	// Background is the stage color in hex notation. Empty means white.
	Background string

	// ShowLabels draws each shape id at its anchor point.
	ShowLabels bool

	// BlendMode pushes the shape layer through the given blend mode
	// while merging it over the shadowed stage. Empty means a plain
	// source-over composition.
	BlendMode string
}

// NewRenderer returns a renderer with the stock stage setup.
func NewRenderer() *Renderer {
	return &Renderer{Background: "#ffffff"}
}

// Render draws the collection onto a stage of the given size. Shapes
// are drawn in collection order; every shadow silhouette lands on one
// layer which is blurred once and merged under the fills.
func (r *Renderer) Render(c Collection, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid stage size %dx%d", width, height)
	}
	if err := validateKinds(c); err != nil {
		return nil, err
	}
	start := time.Now()

	bg := r.Background
	if bg == "" {
		bg = "#ffffff"
	}
	bgColor, err := utils.HexToNRGBA(bg)
	if err != nil {
		return nil, err
	}

	var blend *imop.Blend
	if r.BlendMode != "" {
		blend = imop.NewBlend()
		if err := blend.Set(r.BlendMode); err != nil {
			return nil, err
		}
	}

	bounds := image.Rect(0, 0, width, height)
	stage := image.NewNRGBA(bounds)
	for i := 0; i < len(stage.Pix); i += 4 {
		stage.Pix[i+0] = bgColor.R
		stage.Pix[i+1] = bgColor.G
		stage.Pix[i+2] = bgColor.B
		stage.Pix[i+3] = bgColor.A
	}

	op := imop.InitOp()

	if shadow, ok := r.shadowLayer(c, width, height); ok {
		merged := imop.NewBitmap(bounds)
		op.Draw(merged, shadow, stage, nil)
		stage = merged.Img
	}

	shapes := gg.NewContext(width, height)
	for _, s := range c {
		r.drawShape(shapes, s)
	}
	final := imop.NewBitmap(bounds)
	op.Draw(final, imgToNRGBA(shapes.Image()), stage, blend)

	out := image.Image(final.Img)
	if r.ShowLabels {
		out = r.drawLabels(out, c)
	}

	Logger().Debug("snapshot rendered",
		"shapes", len(c),
		"stage", fmt.Sprintf("%dx%d", width, height),
		"elapsed", time.Since(start),
	)
	return out, nil
}

// shadowLayer draws every shadowed silhouette onto one transparent
// layer and blurs it in a single pass, sized by the strongest shadow
// in the collection. Reports false when nothing casts a shadow.
func (r *Renderer) shadowLayer(c Collection, width, height int) (*image.NRGBA, bool) {
	var radius float64
	for _, s := range c {
		radius = utils.Max(radius, s.ShadowBlur)
	}
	if radius <= 0 {
		return nil, false
	}

	dc := gg.NewContext(width, height)
	for _, s := range c {
		if s.ShadowBlur <= 0 {
			continue
		}
		sil := s
		sil.Fill = "#000000"
		sil.Opacity = s.Opacity * 0.5
		r.drawShape(dc, sil)
	}

	return imaging.Blur(dc.Image(), radius/2), true
}

// drawShape fills one shape onto the context, rotated about its anchor.
func (r *Renderer) drawShape(dc *gg.Context, s Shape) {
	dc.Push()
	defer dc.Pop()

	dc.RotateAbout(gg.Radians(s.Rotation), s.X, s.Y)
	dc.SetColor(fillColor(s.Fill, s.Opacity))

	switch s.Kind {
	case Rectangle:
		dc.DrawRectangle(s.X-s.Attrs.Width/2, s.Y-s.Attrs.Height/2, s.Attrs.Width, s.Attrs.Height)
	case Circle:
		dc.DrawCircle(s.X, s.Y, s.Attrs.Radius)
	case Triangle, Hexagon:
		dc.DrawRegularPolygon(polygonSides(s), s.X, s.Y, s.Attrs.Radius, 0)
	case Star:
		starPath(dc, s.X, s.Y, s.Attrs.NumPoints, s.Attrs.InnerRadius, s.Attrs.OuterRadius)
	case Text:
		// The raster face is fixed size; the nominal font size only
		// matters to the SVG writer.
		dc.SetFontFace(basicfont.Face7x13)
		dc.DrawStringAnchored(s.Attrs.Text, s.X, s.Y, 0.5, 0.5)
		return
	}
	dc.Fill()
}

// drawLabels stamps each shape id at its anchor, on top of the
// composed stage.
func (r *Renderer) drawLabels(img image.Image, c Collection) image.Image {
	dc := gg.NewContextForImage(img)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB255(33, 33, 33)
	for _, s := range c {
		dc.DrawStringAnchored(s.ID, s.X, s.Y, 0.5, 0.5)
	}
	return dc.Image()
}

// starPath traces a pointed star, one spike at a time, starting from
// the top and alternating between the outer and inner radius.
func starPath(dc *gg.Context, x, y float64, points int, inner, outer float64) {
	if points < 2 {
		points = 5
	}
	dc.NewSubPath()
	for i := 0; i < points*2; i++ {
		r := outer
		if i%2 != 0 {
			r = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/float64(points)
		dc.LineTo(x+math.Cos(a)*r, y+math.Sin(a)*r)
	}
	dc.ClosePath()
}

// polygonSides resolves the vertex count of a regular polygon shape,
// falling back to the kind's natural count when the record has none.
func polygonSides(s Shape) int {
	if s.Attrs.Sides > 1 {
		return s.Attrs.Sides
	}
	if s.Kind == Hexagon {
		return 6
	}
	return 3
}

// fillHex resolves a fill to hex notation, through the palette table
// for symbolic names.
func fillHex(fill string) string {
	if strings.HasPrefix(fill, "#") {
		return fill
	}
	if hex, ok := fillColors[fill]; ok {
		return hex
	}
	return neutralFill
}

// fillColor resolves a fill to a stage color with the shape opacity
// baked into the alpha channel.
func fillColor(fill string, opacity float64) color.NRGBA {
	c, err := utils.HexToNRGBA(fillHex(fill))
	if err != nil {
		c, _ = utils.HexToNRGBA(neutralFill)
	}
	c.A = uint8(utils.Clamp(opacity, 0, 1)*255 + 0.5)
	return c
}
