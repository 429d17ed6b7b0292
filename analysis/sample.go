package analysis

import (
	"math"

	"github.com/funcscope/funcscope/symbolic"
)

// Fixed plotting window. 400 points for the line plot, a 100×100 lattice
// for the surface.
const (
	sampleLo    = -10.0
	sampleHi    = 10.0
	lineSamples = 400
	gridSamples = 100
)

func sampleAxis(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = sampleLo + (sampleHi-sampleLo)*float64(i)/float64(n-1)
	}
	return out
}

func finite(v float64, ok bool) bool {
	return ok && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// sampleLine evaluates f across the window. Failed or non-finite
// evaluations become explicit gaps, never a default value.
func sampleLine(f symbolic.Expr) []SamplePoint {
	xs := sampleAxis(lineSamples)
	pts := make([]SamplePoint, len(xs))
	for i, x := range xs {
		v, ok := symbolic.EvalAt(f, map[string]float64{"x": x})
		if finite(v, ok) {
			pts[i] = SamplePoint{X: x, Value: v, Defined: true}
		} else {
			pts[i] = SamplePoint{X: x}
		}
	}
	return pts
}

// sampleSurface evaluates f over the lattice; Values[i][j] pairs with
// (Xs[i], Ys[j]).
func sampleSurface(f symbolic.Expr) *SurfaceGrid {
	g := &SurfaceGrid{
		Xs:      sampleAxis(gridSamples),
		Ys:      sampleAxis(gridSamples),
		Values:  make([][]float64, gridSamples),
		Defined: make([][]bool, gridSamples),
	}
	vars := map[string]float64{}
	for i, x := range g.Xs {
		g.Values[i] = make([]float64, gridSamples)
		g.Defined[i] = make([]bool, gridSamples)
		for j, y := range g.Ys {
			vars["x"], vars["y"] = x, y
			v, ok := symbolic.EvalAt(f, vars)
			if finite(v, ok) {
				g.Values[i][j] = v
				g.Defined[i][j] = true
			}
		}
	}
	return g
}
