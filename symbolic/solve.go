package symbolic

import (
	"math"
	"sort"
)

// Root-finding tolerances. rootMergeTol controls deduplication of nearby
// numeric roots from different Newton seeds.
const (
	rootTol      = 1e-10
	rootMergeTol = 1e-6
	newtonRange  = 100.0
	newtonSeeds  = 200
	newtonIters  = 80
)

// Roots returns the real roots of expr = 0 in the named variable, sorted
// ascending and deduplicated. ok is false when the equation shape cannot be
// handled (symbolic coefficients, identically-zero expression, or a
// transcendental form the numeric scan finds no handle on is still ok=true
// with zero roots).
func Roots(expr Expr, name string) ([]float64, bool) {
	expr = expr.Simplify()
	if !DependsOn(expr, name) {
		// Constant: either no roots or identically zero. The latter has no
		// discrete root set to report.
		if n, okEval := expr.Eval(); okEval && n.IsZero() {
			return nil, false
		}
		return nil, true
	}
	if IsPolynomial(expr, name) {
		if coeffs, okNum := NumericCoeffs(expr, name); okNum {
			return polyRoots(coeffs)
		}
		return nil, false
	}
	return newtonScan(expr, name), true
}

func polyRoots(coeffs map[int]float64) ([]float64, bool) {
	deg := 0
	for d, c := range coeffs {
		if c != 0 && d > deg {
			deg = d
		}
	}
	a := func(d int) float64 { return coeffs[d] }
	switch deg {
	case 0:
		return nil, true
	case 1:
		return []float64{-a(0) / a(1)}, true
	case 2:
		return quadraticRoots(a(2), a(1), a(0)), true
	case 3:
		return cubicRoots(a(3), a(2), a(1), a(0)), true
	}
	// Higher degree: Newton scan over the rebuilt polynomial.
	terms := []Expr{}
	for d, c := range coeffs {
		if c == 0 {
			continue
		}
		terms = append(terms, MulOf(NFloat(c), PowOf(S("t"), N(int64(d)))))
	}
	return newtonScan(AddOf(terms...), "t"), true
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	switch {
	case disc < 0:
		return nil
	case disc == 0:
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(disc)
	return sortedUnique([]float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)})
}

// cubicRoots solves a*t^3+b*t^2+c*t+d = 0 by depressed-cubic reduction
// (Cardano / trigonometric method), real roots only.
func cubicRoots(a, b, c, d float64) []float64 {
	if a == 0 {
		return quadraticRoots(b, c, d)
	}
	p := (3*a*c - b*b) / (3 * a * a)
	q := (2*b*b*b - 9*a*b*c + 27*a*a*d) / (27 * a * a * a)
	offset := b / (3 * a)
	disc := -(4*p*p*p + 27*q*q)

	var roots []float64
	switch {
	case disc > 0:
		m := 2 * math.Sqrt(-p/3)
		theta := math.Acos(3*q/(p*m)) / 3
		for k := 0; k < 3; k++ {
			roots = append(roots, m*math.Cos(theta-2*math.Pi*float64(k)/3)-offset)
		}
	case disc == 0:
		if q == 0 {
			roots = []float64{-offset}
		} else {
			roots = []float64{3*q/p - offset, -3 * q / (2 * p) - offset}
		}
	default:
		u := math.Cbrt(-q/2 + math.Sqrt(q*q/4+p*p*p/27))
		v := 0.0
		if u != 0 {
			v = -p / (3 * u)
		}
		roots = []float64{u + v - offset}
	}
	return sortedUnique(roots)
}

// newtonScan sweeps seed points across [-newtonRange, newtonRange] and runs
// Newton iteration from each, collecting distinct converged roots.
func newtonScan(expr Expr, name string) []float64 {
	deriv := expr.Diff(name)
	f := func(t float64) (float64, bool) { return EvalAt(expr, map[string]float64{name: t}) }
	df := func(t float64) (float64, bool) { return EvalAt(deriv, map[string]float64{name: t}) }

	var roots []float64
	for i := 0; i <= newtonSeeds; i++ {
		t := -newtonRange + 2*newtonRange*float64(i)/newtonSeeds
		for iter := 0; iter < newtonIters; iter++ {
			ft, ok := f(t)
			if !ok || math.IsInf(ft, 0) {
				break
			}
			if math.Abs(ft) < rootTol {
				roots = append(roots, t)
				break
			}
			dft, ok := df(t)
			if !ok || math.Abs(dft) < 1e-14 {
				break
			}
			t -= ft / dft
			if math.Abs(t) > newtonRange*10 {
				break
			}
		}
	}
	return sortedUnique(roots)
}

func sortedUnique(vals []float64) []float64 {
	sort.Float64s(vals)
	out := vals[:0]
	for _, v := range vals {
		v = snap(v)
		if len(out) == 0 || math.Abs(v-out[len(out)-1]) > rootMergeTol {
			out = append(out, v)
		}
	}
	return out
}

// snap rounds values within solver noise of an integer.
func snap(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) < 1e-9 {
		return r
	}
	return v
}

// SolveSystem2 finds real solutions of the simultaneous system
// fx = 0, fy = 0 in variables xName and yName. Separable systems (fx free
// of y, fy free of x) solve as a cross product of 1-D root sets; otherwise
// a damped 2-D Newton iteration runs from a coarse seed grid. Solutions are
// sorted lexicographically.
func SolveSystem2(fx, fy Expr, xName, yName string) ([][2]float64, bool) {
	fx, fy = fx.Simplify(), fy.Simplify()

	if !DependsOn(fx, yName) && !DependsOn(fy, xName) {
		xs, okX := Roots(fx, xName)
		ys, okY := Roots(fy, yName)
		if !okX || !okY {
			return nil, false
		}
		// A gradient component that vanishes identically leaves a whole
		// curve of solutions; that is not an enumerable point set.
		if !DependsOn(fx, xName) || !DependsOn(fy, yName) {
			if n, okEval := fx.Eval(); okEval && !n.IsZero() {
				return nil, true
			}
			if n, okEval := fy.Eval(); okEval && !n.IsZero() {
				return nil, true
			}
			return nil, false
		}
		out := [][2]float64{}
		for _, x := range xs {
			for _, y := range ys {
				out = append(out, [2]float64{x, y})
			}
		}
		return sortPairs(out), true
	}
	return newtonSystem2(fx, fy, xName, yName), true
}

func newtonSystem2(fx, fy Expr, xName, yName string) [][2]float64 {
	fxx := fx.Diff(xName)
	fxy := fx.Diff(yName)
	fyx := fy.Diff(xName)
	fyy := fy.Diff(yName)

	eval := func(e Expr, x, y float64) (float64, bool) {
		return EvalAt(e, map[string]float64{xName: x, yName: y})
	}

	var sols [][2]float64
	seeds := []float64{-5, -3.6, -2.2, -1, -0.3, 0.3, 1, 2.2, 3.6, 5}
	for _, sx := range seeds {
		for _, sy := range seeds {
			x, y := sx, sy
			for iter := 0; iter < newtonIters; iter++ {
				vx, ok1 := eval(fx, x, y)
				vy, ok2 := eval(fy, x, y)
				if !ok1 || !ok2 {
					break
				}
				if math.Abs(vx) < rootTol && math.Abs(vy) < rootTol {
					sols = append(sols, [2]float64{snap(x), snap(y)})
					break
				}
				a, okA := eval(fxx, x, y)
				b, okB := eval(fxy, x, y)
				c, okC := eval(fyx, x, y)
				d, okD := eval(fyy, x, y)
				if !okA || !okB || !okC || !okD {
					break
				}
				det := a*d - b*c
				if math.Abs(det) < 1e-14 {
					break
				}
				dx := (vx*d - vy*b) / det
				dy := (vy*a - vx*c) / det
				x -= dx
				y -= dy
				if math.Abs(x) > newtonRange || math.Abs(y) > newtonRange {
					break
				}
			}
		}
	}
	return dedupePairs(sols)
}

func sortPairs(pairs [][2]float64) [][2]float64 {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return pairs
}

func dedupePairs(pairs [][2]float64) [][2]float64 {
	sortPairs(pairs)
	out := pairs[:0]
	for _, p := range pairs {
		dup := false
		for _, q := range out {
			if math.Abs(p[0]-q[0]) < rootMergeTol && math.Abs(p[1]-q[1]) < rootMergeTol {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}
