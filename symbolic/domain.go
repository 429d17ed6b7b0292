package symbolic

import (
	"fmt"
	"math"
	"strings"
)

// PeriodicPoles is an infinite family of excluded points offset + k*period,
// produced by tan with a linear argument.
type PeriodicPoles struct {
	Offset, Period float64
}

func (p PeriodicPoles) Describe(name string) string {
	if math.Abs(p.Period-math.Pi) < 1e-9 && math.Abs(p.Offset-math.Pi/2) < 1e-9 {
		return name + " = pi/2 + k*pi"
	}
	return fmt.Sprintf("%s = %s + k*%s", name, fmtFloat(p.Offset), fmtFloat(p.Period))
}

// Domain is the maximal set of real values of one variable on which an
// expression is defined. Exact is false when some construct resisted
// analysis (e.g. an even root of a transcendental argument); callers must
// then treat continuity as undetermined rather than asserting a verdict.
type Domain struct {
	Allowed  Set
	Periodic []PeriodicPoles
	Exact    bool
}

func (d Domain) Excluded() Set { return d.Allowed.Complement() }

func (d Domain) IsEntire() bool {
	return d.Allowed.IsEntire() && len(d.Periodic) == 0
}

// DescribeExcluded renders the excluded set for display, e.g.
// "x = 0" or "x in (-inf, 0] U x = pi/2 + k*pi".
func (d Domain) DescribeExcluded(name string) string {
	parts := []string{}
	for _, iv := range d.Excluded().Intervals() {
		if iv.IsPoint() {
			parts = append(parts, fmt.Sprintf("%s = %s", name, fmtEndpoint(iv.Lo)))
		} else {
			parts = append(parts, fmt.Sprintf("%s in %s", name, iv.String()))
		}
	}
	for _, p := range d.Periodic {
		parts = append(parts, p.Describe(name))
	}
	return strings.Join(parts, ", ")
}

// RealDomain computes the domain of e with respect to the named variable,
// treating all other symbols as unconstrained parameters.
func RealDomain(e Expr, name string) Domain {
	d := Domain{Allowed: EntireSet(), Exact: true}
	collectConstraints(e.Simplify(), name, &d)
	return d
}

func collectConstraints(e Expr, name string, d *Domain) {
	switch v := e.(type) {
	case *Add:
		for _, t := range v.terms {
			collectConstraints(t, name, d)
		}
	case *Mul:
		for _, f := range v.factors {
			collectConstraints(f, name, d)
		}
	case *Pow:
		collectConstraints(v.base, name, d)
		collectConstraints(v.exp, name, d)
		constrainPow(v, name, d)
	case *Func:
		collectConstraints(v.arg, name, d)
		constrainFunc(v, name, d)
	}
}

func constrainPow(p *Pow, name string, d *Domain) {
	if !DependsOn(p.base, name) {
		return
	}
	en, expIsNum := p.exp.(*Num)
	switch {
	case expIsNum && en.IsInteger() && en.IsNegative():
		// Denominator: exclude zeros of the base.
		excludeZeros(p.base, name, d)
	case expIsNum && !en.IsInteger():
		// Even-root semantics over the reals: base must be non-negative,
		// strictly positive when the power also divides.
		strict := en.IsNegative()
		requireSign(p.base, name, d, strict)
	case !expIsNum:
		// Variable exponent needs a positive base.
		requireSign(p.base, name, d, true)
	}
}

func constrainFunc(f *Func, name string, d *Domain) {
	if !DependsOn(f.arg, name) {
		return
	}
	switch f.name {
	case "log":
		requireSign(f.arg, name, d, true)
	case "tan":
		constrainTan(f.arg, name, d)
	case "asin", "acos":
		// Need -1 <= arg <= 1: 1-arg >= 0 and arg+1 >= 0.
		requireSign(Subtract(N(1), f.arg), name, d, false)
		requireSign(AddOf(f.arg, N(1)), name, d, false)
	}
}

// excludeZeros removes the root set of base from the allowed domain.
func excludeZeros(base Expr, name string, d *Domain) {
	if IsPolynomial(base, name) {
		coeffs, ok := NumericCoeffs(base, name)
		if !ok {
			d.Exact = false
			return
		}
		roots, ok := polyRoots(coeffs)
		if !ok {
			d.Exact = false
			return
		}
		for _, r := range roots {
			d.Allowed = d.Allowed.Intersect(SetOf(Point(r)).Complement())
		}
		return
	}
	// sin/cos denominators with a linear argument have periodic zero sets.
	if fn, ok := base.(*Func); ok && (fn.name == "sin" || fn.name == "cos") {
		if a, b, linear := linearParts(fn.arg, name); linear && a != 0 {
			offset := -b / a
			if fn.name == "cos" {
				offset = (math.Pi/2 - b) / a
			}
			d.Periodic = append(d.Periodic, PeriodicPoles{
				Offset: offset, Period: math.Pi / math.Abs(a),
			})
			return
		}
	}
	d.Exact = false
}

// requireSign intersects the allowed domain with {arg > 0} (strict) or
// {arg >= 0}.
func requireSign(arg Expr, name string, d *Domain, strict bool) {
	region, ok := polySignRegion(arg, name, strict)
	if !ok {
		d.Exact = false
		return
	}
	d.Allowed = d.Allowed.Intersect(region)
}

// constrainTan excludes tan poles: points where cos(arg) = 0.
func constrainTan(arg Expr, name string, d *Domain) {
	a, b, linear := linearParts(arg, name)
	if !linear || a == 0 {
		d.Exact = false
		return
	}
	d.Periodic = append(d.Periodic, PeriodicPoles{
		Offset: (math.Pi/2 - b) / a,
		Period: math.Pi / math.Abs(a),
	})
}

// linearParts decomposes e as a*name + b with numeric a, b.
func linearParts(e Expr, name string) (a, b float64, ok bool) {
	if !IsPolynomial(e, name) || Degree(e, name) > 1 {
		return 0, 0, false
	}
	coeffs, okNum := NumericCoeffs(e, name)
	if !okNum {
		return 0, 0, false
	}
	return coeffs[1], coeffs[0], true
}

// polySignRegion computes the set where a polynomial is positive (strict)
// or non-negative, by sign sampling between its real roots.
func polySignRegion(p Expr, name string, strict bool) (Set, bool) {
	p = p.Simplify()
	if !DependsOn(p, name) {
		n, ok := p.Eval()
		if !ok {
			return Set{}, false
		}
		v := n.Float64()
		if v > 0 || (v == 0 && !strict) {
			return EntireSet(), true
		}
		return EmptySet(), true
	}
	if !IsPolynomial(p, name) {
		return Set{}, false
	}
	coeffs, ok := NumericCoeffs(p, name)
	if !ok {
		return Set{}, false
	}
	roots, ok := polyRoots(coeffs)
	if !ok {
		return Set{}, false
	}

	sample := func(t float64) float64 {
		v, okEval := EvalAt(p, map[string]float64{name: t})
		if !okEval {
			return math.NaN()
		}
		return v
	}

	bounds := append([]float64{}, roots...)
	var ivs []Interval
	probePoints := samplePoints(bounds)
	for i, t := range probePoints {
		if v := sample(t); v > 0 {
			ivs = append(ivs, regionInterval(bounds, i))
		}
	}
	if !strict {
		for _, r := range roots {
			ivs = append(ivs, Point(r))
		}
	}
	return SetOf(ivs...), true
}

// samplePoints picks one probe point inside each interval delimited by the
// sorted bounds, including the two unbounded ends.
func samplePoints(bounds []float64) []float64 {
	if len(bounds) == 0 {
		return []float64{0}
	}
	pts := []float64{bounds[0] - 1}
	for i := 0; i+1 < len(bounds); i++ {
		pts = append(pts, (bounds[i]+bounds[i+1])/2)
	}
	pts = append(pts, bounds[len(bounds)-1]+1)
	return pts
}

// regionInterval returns the i-th open region delimited by the sorted
// bounds; root membership is decided separately by the caller.
func regionInterval(bounds []float64, i int) Interval {
	lo, hi := math.Inf(-1), math.Inf(1)
	if i > 0 {
		lo = bounds[i-1]
	}
	if i < len(bounds) {
		hi = bounds[i]
	}
	return Interval{Lo: lo, LoOpen: true, Hi: hi, HiOpen: true}
}
