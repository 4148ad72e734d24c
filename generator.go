package scenepack

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// Generator produces randomized shape collections. The exported fields
// form the configuration surface: swap the templates, the palette, the
// shared style or the scale range before calling Generate. A nil Rand is
// replaced by a time-seeded source on first use; inject a deterministic
// source to make the output reproducible.
type Generator struct {
	Defaults StyleDefaults
	Palette  []string
	Common   CommonStyle
	MinScale int // smallest size factor, in percent
	MaxScale int // largest size factor, in percent
	Rand     *rand.Rand
}

// NewGenerator returns a generator wired with the package defaults:
// the demo templates, the six-color palette and a 50-150% size range.
func NewGenerator() *Generator {
	return &Generator{
		Defaults: DefaultStyle(),
		Palette:  DefaultPalette(),
		Common:   DefaultCommonStyle(),
		MinScale: 50,
		MaxScale: 150,
	}
}

// Generate produces count shapes scattered over a stage of the given
// dimensions. Each shape draws its kind uniformly from the closed
// enumeration, its position from the inclusive [0,stageWidth]×[0,stageHeight]
// integer grid, its rotation from [0,360] degrees and its fill from the
// palette. A per-shape size factor from [MinScale,MaxScale] percent scales
// the magnitude fields of the kind's template; the concrete values are
// stored on the shape so nothing needs the templates afterwards.
//
// The shape ID is its ordinal position in the collection, stringified and
// zero-based, which guarantees uniqueness within one call. Generate has no
// side effects beyond the returned collection.
func (g *Generator) Generate(count, stageWidth, stageHeight int) (Collection, error) {
	if count <= 0 {
		return nil, fmt.Errorf("shape count must be positive, got %d", count)
	}
	if stageWidth <= 0 || stageHeight <= 0 {
		return nil, fmt.Errorf("stage dimensions must be positive, got %dx%d", stageWidth, stageHeight)
	}
	if g.MinScale <= 0 || g.MaxScale < g.MinScale {
		return nil, fmt.Errorf("invalid scale range %d-%d%%", g.MinScale, g.MaxScale)
	}
	if len(g.Palette) == 0 {
		return nil, fmt.Errorf("the fill palette is empty")
	}

	if g.Rand == nil {
		g.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var (
		start  = time.Now()
		kinds  = Kinds()
		shapes = make(Collection, 0, count)
	)

	for i := 0; i < count; i++ {
		kind := kinds[g.Rand.Intn(len(kinds))]
		tpl, err := g.Defaults.Template(kind)
		if err != nil {
			return nil, err
		}
		factor := float64(g.MinScale+g.Rand.Intn(g.MaxScale-g.MinScale+1)) / 100

		shapes = append(shapes, Shape{
			ID:         strconv.Itoa(i),
			Kind:       kind,
			X:          float64(g.Rand.Intn(stageWidth + 1)),
			Y:          float64(g.Rand.Intn(stageHeight + 1)),
			Fill:       g.Palette[g.Rand.Intn(len(g.Palette))],
			Rotation:   float64(g.Rand.Intn(361)),
			Opacity:    g.Common.Opacity,
			ShadowBlur: g.Common.ShadowBlur,
			Attrs:      tpl.Scale(factor),
		})
	}

	Logger().Debug("scene generated",
		"count", count,
		"stage", fmt.Sprintf("%dx%d", stageWidth, stageHeight),
		"elapsed", time.Since(start),
	)

	return shapes, nil
}
