package symbolic

import "sort"

// FreeSymbols returns the set of variable names occurring in e.
func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectSymbols(e, out)
	return out
}

// FreeSymbolNames returns the free symbols sorted by name.
func FreeSymbolNames(e Expr) []string {
	syms := FreeSymbols(e)
	names := make([]string, 0, len(syms))
	for n := range syms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	}
}

// DependsOn reports whether e contains the named symbol.
func DependsOn(e Expr, name string) bool {
	_, ok := FreeSymbols(e)[name]
	return ok
}

// IsPolynomial reports whether e is a polynomial in name with coefficients
// free of name: sums and products of numeric powers of the variable, with no
// function applications of it.
func IsPolynomial(e Expr, name string) bool {
	switch v := e.(type) {
	case *Num:
		return true
	case *Sym:
		return true
	case *Add:
		for _, t := range v.terms {
			if !IsPolynomial(t, name) {
				return false
			}
		}
		return true
	case *Mul:
		for _, f := range v.factors {
			if !IsPolynomial(f, name) {
				return false
			}
		}
		return true
	case *Pow:
		if DependsOn(v.exp, name) {
			return false
		}
		if !DependsOn(v.base, name) {
			return true
		}
		n, ok := v.exp.(*Num)
		if !ok || !n.IsInteger() || n.IsNegative() {
			return false
		}
		return IsPolynomial(v.base, name)
	case *Func:
		return !DependsOn(v.arg, name)
	}
	return false
}

// Degree returns the polynomial degree of e in name; 0 for expressions free
// of the variable. Callers check IsPolynomial first.
func Degree(e Expr, name string) int {
	switch v := e.(type) {
	case *Num:
		return 0
	case *Sym:
		if v.name == name {
			return 1
		}
		return 0
	case *Pow:
		if !DependsOn(v.base, name) {
			return 0
		}
		if n, ok := v.exp.(*Num); ok && n.IsInteger() {
			return Degree(v.base, name) * int(n.val.Num().Int64())
		}
		return 0
	case *Add:
		maxDeg := 0
		for _, t := range v.terms {
			if d := Degree(t, name); d > maxDeg {
				maxDeg = d
			}
		}
		return maxDeg
	case *Mul:
		total := 0
		for _, f := range v.factors {
			total += Degree(f, name)
		}
		return total
	}
	return 0
}

// polyExpandCap bounds integer-power expansion by repeated convolution.
const polyExpandCap = 24

// PolyCoeffs extracts coefficients by degree for a polynomial in name.
// Coefficients may themselves be expressions when other symbols appear.
func PolyCoeffs(e Expr, name string) map[int]Expr {
	out := coeffMap(e.Simplify(), name)
	for deg, c := range out {
		if n, ok := c.(*Num); ok && n.IsZero() {
			delete(out, deg)
		}
	}
	if len(out) == 0 {
		out[0] = N(0)
	}
	return out
}

// coeffMap builds the coefficient-by-degree map recursively: sums merge their
// term maps, products convolve their factor maps, and integer powers of a
// variable-dependent base expand by repeated convolution, so composite shapes
// like 2*(x+1) keep every term. Shapes it cannot represent (oversized or
// non-integer exponents) file the subtree as a degree-0 entry, whose numeric
// resolution then fails.
func coeffMap(e Expr, name string) map[int]Expr {
	switch v := e.(type) {
	case *Num:
		return map[int]Expr{0: v}
	case *Sym:
		if v.name == name {
			return map[int]Expr{1: N(1)}
		}
		return map[int]Expr{0: v}
	case *Add:
		out := map[int]Expr{}
		for _, t := range v.terms {
			for deg, c := range coeffMap(t, name) {
				addCoeff(out, deg, c)
			}
		}
		return out
	case *Mul:
		out := map[int]Expr{0: N(1)}
		for _, f := range v.factors {
			out = convolveCoeffs(out, coeffMap(f, name))
		}
		return out
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.IsInteger() && n.IsPositive() && DependsOn(v.base, name) {
			if p := int(n.val.Num().Int64()); p <= polyExpandCap {
				base := coeffMap(v.base, name)
				out := map[int]Expr{0: N(1)}
				for i := 0; i < p; i++ {
					out = convolveCoeffs(out, base)
				}
				return out
			}
		}
		return map[int]Expr{0: e}
	}
	return map[int]Expr{0: e}
}

func convolveCoeffs(a, b map[int]Expr) map[int]Expr {
	out := make(map[int]Expr, len(a)+len(b))
	for da, ca := range a {
		for db, cb := range b {
			addCoeff(out, da+db, MulOf(ca, cb))
		}
	}
	return out
}

func addCoeff(out map[int]Expr, deg int, val Expr) {
	if existing, ok := out[deg]; ok {
		out[deg] = AddOf(existing, val)
	} else {
		out[deg] = val.Simplify()
	}
}

// NumericCoeffs resolves polynomial coefficients to floats, failing when any
// coefficient is symbolic.
func NumericCoeffs(e Expr, name string) (map[int]float64, bool) {
	coeffs := PolyCoeffs(e, name)
	out := make(map[int]float64, len(coeffs))
	for deg, c := range coeffs {
		n, ok := c.Eval()
		if !ok {
			return nil, false
		}
		out[deg] = n.Float64()
	}
	return out, true
}
