package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ratgrav/internal/sim"
)

// DisplacementSeries returns, per frame, how far the named body has moved
// from where it was in the first frame. The squared displacement is exact;
// only the final root is taken in floating point. Frames without the body
// are skipped.
func DisplacementSeries(frames []sim.Frame, body string) []float64 {
	out := make([]float64, 0, len(frames))
	var (
		origin sim.BodyState
		found  bool
	)
	for _, f := range frames {
		for _, b := range f.Bodies {
			if b.Name != body {
				continue
			}
			if !found {
				origin, found = b, true
			}
			d2 := b.Position.Sub(origin.Position).SquaredNorm()
			out = append(out, math.Sqrt(d2.Float64()))
		}
	}
	return out
}

// PlotDisplacement charts DisplacementSeries. It returns "" when there is
// nothing to draw.
func PlotDisplacement(frames []sim.Frame, body string, width, height int) string {
	data := DisplacementSeries(frames, body)
	if len(data) < 2 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(body+" displacement from start"),
	)
}
