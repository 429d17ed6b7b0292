package symbolic

import "math"

// LimitKind tags the outcome of a limit computation.
type LimitKind int

const (
	LimitUndetermined LimitKind = iota
	LimitFinite
	LimitPosInf
	LimitNegInf
)

func (k LimitKind) String() string {
	switch k {
	case LimitFinite:
		return "finite"
	case LimitPosInf:
		return "+inf"
	case LimitNegInf:
		return "-inf"
	}
	return "undetermined"
}

// InfLimit is the value of a limit at an infinite endpoint. Value is set
// only for LimitFinite.
type InfLimit struct {
	Kind  LimitKind
	Value float64
}

func finiteLimit(v float64) InfLimit { return InfLimit{Kind: LimitFinite, Value: snap(v)} }

func signedInf(sign int) InfLimit {
	if sign >= 0 {
		return InfLimit{Kind: LimitPosInf}
	}
	return InfLimit{Kind: LimitNegInf}
}

// LimitAtInfinity computes lim expr as the named variable goes to +∞
// (dir > 0) or −∞ (dir < 0). Polynomial and rational shapes resolve
// exactly by dominant-degree analysis; everything else falls back to a
// bounded numeric probe ladder. Oscillation and evaluation failure yield
// LimitUndetermined, never an error.
func LimitAtInfinity(expr Expr, name string, dir int) InfLimit {
	expr = expr.Simplify()
	if !DependsOn(expr, name) {
		if n, ok := expr.Eval(); ok {
			return finiteLimit(n.Float64())
		}
		return InfLimit{Kind: LimitUndetermined}
	}
	if lim, ok := dominantTermLimit(expr, name, dir); ok {
		return lim
	}
	return probeLimit(expr, name, dir)
}

// dominantTermLimit handles polynomial and rational-function shapes exactly.
func dominantTermLimit(expr Expr, name string, dir int) (InfLimit, bool) {
	if IsPolynomial(expr, name) {
		coeffs, ok := NumericCoeffs(expr, name)
		if !ok {
			return InfLimit{}, false
		}
		deg, lead := leadingTerm(coeffs)
		if deg == 0 {
			return finiteLimit(lead), true
		}
		sign := 1
		if lead < 0 {
			sign = -1
		}
		if dir < 0 && deg%2 == 1 {
			sign = -sign
		}
		return signedInf(sign), true
	}

	num, den, ok := splitQuotient(expr)
	if !ok || !IsPolynomial(num, name) || !IsPolynomial(den, name) {
		return InfLimit{}, false
	}
	nc, okN := NumericCoeffs(num, name)
	dc, okD := NumericCoeffs(den, name)
	if !okN || !okD {
		return InfLimit{}, false
	}
	nDeg, nLead := leadingTerm(nc)
	dDeg, dLead := leadingTerm(dc)
	if dLead == 0 {
		return InfLimit{}, false
	}
	switch {
	case nDeg < dDeg:
		return finiteLimit(0), true
	case nDeg == dDeg:
		return finiteLimit(nLead / dLead), true
	default:
		ratio := nLead / dLead
		sign := 1
		if ratio < 0 {
			sign = -1
		}
		if dir < 0 && (nDeg-dDeg)%2 == 1 {
			sign = -sign
		}
		return signedInf(sign), true
	}
}

// coeffFloor treats coefficients below this magnitude as zero; substituted
// trig constants leave femto-scale residue that must not pick the degree.
const coeffFloor = 1e-12

func leadingTerm(coeffs map[int]float64) (int, float64) {
	deg := 0
	for d, c := range coeffs {
		if math.Abs(c) > coeffFloor && d > deg {
			deg = d
		}
	}
	return deg, coeffs[deg]
}

// splitQuotient separates a product into numerator and denominator parts,
// treating negative-integer powers as denominator factors.
func splitQuotient(e Expr) (num, den Expr, ok bool) {
	m, isMul := e.(*Mul)
	if !isMul {
		if p, isPow := e.(*Pow); isPow {
			if n, isNum := p.exp.(*Num); isNum && n.IsNegative() && n.IsInteger() {
				return N(1), PowOf(p.base, numNeg(n)), true
			}
		}
		return nil, nil, false
	}
	var numFactors, denFactors []Expr
	for _, f := range m.factors {
		if p, isPow := f.(*Pow); isPow {
			if n, isNum := p.exp.(*Num); isNum && n.IsNegative() && n.IsInteger() {
				denFactors = append(denFactors, PowOf(p.base, numNeg(n)))
				continue
			}
		}
		numFactors = append(numFactors, f)
	}
	if len(denFactors) == 0 {
		return nil, nil, false
	}
	build := func(fs []Expr) Expr {
		switch len(fs) {
		case 0:
			return N(1)
		case 1:
			return fs[0]
		}
		return MulOf(fs...)
	}
	return build(numFactors), build(denFactors), true
}

// Probe ladder magnitudes. Values past probeDivergence count as divergence;
// successive values within probeConvTol (relative) count as convergence.
var probeMagnitudes = []float64{1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8}

const (
	probeDivergence = 1e12
	probeConvTol    = 1e-6
)

func probeLimit(expr Expr, name string, dir int) InfLimit {
	vals := make([]float64, 0, len(probeMagnitudes))
	for _, mag := range probeMagnitudes {
		t := mag
		if dir < 0 {
			t = -mag
		}
		v, ok := EvalAt(expr, map[string]float64{name: t})
		if !ok {
			return InfLimit{Kind: LimitUndetermined}
		}
		vals = append(vals, v)
	}
	return classifyProbes(vals)
}

func classifyProbes(vals []float64) InfLimit {
	n := len(vals)
	last, prev, prev2 := vals[n-1], vals[n-2], vals[n-3]

	// Divergence: strictly growing magnitude with stable sign at the tail.
	if math.IsInf(last, 1) || (last > probeDivergence && last > prev && prev > prev2 && prev > 0) {
		return signedInf(1)
	}
	if math.IsInf(last, -1) || (last < -probeDivergence && last < prev && prev < prev2 && prev < 0) {
		return signedInf(-1)
	}
	if math.IsInf(last, 0) || math.IsNaN(last) {
		return InfLimit{Kind: LimitUndetermined}
	}

	// Convergence: final steps agree to within tolerance.
	scale := math.Max(1, math.Abs(last))
	if math.Abs(last-prev) <= probeConvTol*scale && math.Abs(prev-prev2) <= probeConvTol*scale {
		return finiteLimit(last)
	}
	return InfLimit{Kind: LimitUndetermined}
}
