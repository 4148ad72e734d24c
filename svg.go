package scenepack

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/esimov/scenepack/utils"
)

// WriteSVG writes the collection as a scalable vector document on the
// same stage the raster renderer uses. Geometry, fills, opacity and
// rotation carry over; shadows are a raster concern and stay out.
func (r *Renderer) WriteSVG(w io.Writer, c Collection, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid stage size %dx%d", width, height)
	}
	if err := validateKinds(c); err != nil {
		return err
	}

	bg := r.Background
	if bg == "" {
		bg = "#ffffff"
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+bg)
	for _, s := range c {
		writeShape(canvas, s)
	}
	if r.ShowLabels {
		for _, s := range c {
			canvas.Text(round(s.X), round(s.Y), s.ID,
				"font-size:13px;fill:#212121;text-anchor:middle")
		}
	}
	canvas.End()
	return nil
}

// writeShape emits one shape element, wrapped in a rotation group when
// the record carries an angle.
func writeShape(canvas *svg.SVG, s Shape) {
	style := fmt.Sprintf("fill:%s;fill-opacity:%.2f", fillHex(s.Fill), utils.Clamp(s.Opacity, 0, 1))

	rotated := s.Rotation != 0
	if rotated {
		canvas.Gtransform(fmt.Sprintf("rotate(%g,%d,%d)", s.Rotation, round(s.X), round(s.Y)))
	}

	switch s.Kind {
	case Rectangle:
		canvas.Rect(round(s.X-s.Attrs.Width/2), round(s.Y-s.Attrs.Height/2),
			round(s.Attrs.Width), round(s.Attrs.Height), style)
	case Circle:
		canvas.Circle(round(s.X), round(s.Y), round(s.Attrs.Radius), style)
	case Triangle, Hexagon:
		xs, ys := polygonPoints(s.X, s.Y, polygonSides(s), s.Attrs.Radius)
		canvas.Polygon(xs, ys, style)
	case Star:
		xs, ys := starPoints(s.X, s.Y, s.Attrs.NumPoints, s.Attrs.InnerRadius, s.Attrs.OuterRadius)
		canvas.Polygon(xs, ys, style)
	case Text:
		size := s.Attrs.FontSize
		if size <= 0 {
			size = 13
		}
		canvas.Text(round(s.X), round(s.Y), s.Attrs.Text,
			fmt.Sprintf("%s;font-size:%dpx;text-anchor:middle;dominant-baseline:middle", style, round(size)))
	}

	if rotated {
		canvas.Gend()
	}
}

// polygonPoints lays out the vertices of a regular polygon the same way
// the rasterizer does, first vertex up, even counts shifted half a step.
func polygonPoints(x, y float64, n int, r float64) ([]int, []int) {
	angle := 2 * math.Pi / float64(n)
	rotation := -math.Pi / 2
	if n%2 == 0 {
		rotation += angle / 2
	}
	xs := make([]int, n)
	ys := make([]int, n)
	for i := 0; i < n; i++ {
		a := rotation + angle*float64(i)
		xs[i] = round(x + r*math.Cos(a))
		ys[i] = round(y + r*math.Sin(a))
	}
	return xs, ys
}

// starPoints lays out the spikes of a pointed star, alternating between
// the outer and inner radius.
func starPoints(x, y float64, points int, inner, outer float64) ([]int, []int) {
	if points < 2 {
		points = 5
	}
	xs := make([]int, points*2)
	ys := make([]int, points*2)
	for i := 0; i < points*2; i++ {
		r := outer
		if i%2 != 0 {
			r = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/float64(points)
		xs[i] = round(x + math.Cos(a)*r)
		ys[i] = round(y + math.Sin(a)*r)
	}
	return xs, ys
}

func round(v float64) int {
	return int(math.Round(v))
}
