package raster

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Colormap maps [0, 1] onto evenly spaced color stops.
type Colormap []colorful.Color

// Viridis is matplotlib's default sequential colormap, sampled at ten stops.
var Viridis = Colormap(mustHex(
	"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
))

// Tab10 is matplotlib's default line color cycle.
var Tab10 = mustHex(
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
)

// At returns the interpolated color at t, clamped to [0, 1].
func (c Colormap) At(t float64) colorful.Color {
	if math.IsNaN(t) || t <= 0 {
		return c[0]
	}
	if t >= 1 {
		return c[len(c)-1]
	}
	pos := t * float64(len(c)-1)
	i := int(pos)
	return c[i].BlendRgb(c[i+1], pos-float64(i)).Clamped()
}

// Normalize maps v from [lo, hi] to [0, 1]. A flat range maps to 0.
func Normalize(v, lo, hi float64) float64 {
	if hi-lo < 1e-12 {
		return 0
	}
	return (v - lo) / (hi - lo)
}

// Cycle returns the i-th color of the line cycle.
func Cycle(i int) colorful.Color {
	return Tab10[i%len(Tab10)]
}

func mustHex(hexes ...string) []colorful.Color {
	out := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}
