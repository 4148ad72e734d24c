package imop

import (
	"fmt"

	"github.com/esimov/scenepack/utils"
)

const (
	Normal   = "normal"
	Darken   = "darken"
	Lighten  = "lighten"
	Multiply = "multiply"
	Screen   = "screen"
	Overlay  = "overlay"
)

// Blend holds the currently active blend mode.
type Blend struct {
	opType string
	modes  []string
}

// NewBlend initializes a new Blend with the normal mode, which leaves
// the source color untouched.
func NewBlend() *Blend {
	return &Blend{
		opType: Normal,
		modes:  []string{Normal, Darken, Lighten, Multiply, Screen, Overlay},
	}
}

// Modes returns the supported blend modes.
func (o *Blend) Modes() []string {
	out := make([]string, len(o.modes))
	copy(out, o.modes)
	return out
}

// Set activates one of the supported blend modes.
func (o *Blend) Set(opType string) error {
	if !utils.Contains(o.modes, opType) {
		return fmt.Errorf("unsupported blend mode: %q", opType)
	}
	o.opType = opType
	return nil
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	return o.opType
}

// apply mixes one normalized channel of the backdrop and source colors
// according to the active mode.
func (o *Blend) apply(cb, cs float64) float64 {
	switch o.opType {
	case Darken:
		if cb < cs {
			return cb
		}
		return cs
	case Lighten:
		if cb > cs {
			return cb
		}
		return cs
	case Multiply:
		return cb * cs
	case Screen:
		return cb + cs - cb*cs
	case Overlay:
		if cb <= 0.5 {
			return 2 * cb * cs
		}
		return 1 - 2*(1-cb)*(1-cs)
	}
	return cs
}
