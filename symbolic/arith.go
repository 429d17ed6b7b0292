package symbolic

import (
	"math"
	"sort"
	"strings"
)

// ============================================================
// Add — sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// Sub subtracts b from a.
func Subtract(a, b Expr) Expr { return AddOf(a, MulOf(N(-1), b)) }

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	// Fold numeric terms and collect like terms by their non-numeric part.
	numAccum := N(0)
	type bucket struct {
		coeff *Num
		rest  Expr
	}
	order := []string{}
	buckets := map[string]*bucket{}
	for _, t := range flat {
		if v, ok := t.(*Num); ok {
			numAccum = numAdd(numAccum, v)
			continue
		}
		coeff, rest := splitCoefficient(t)
		key := rest.String()
		b, seen := buckets[key]
		if !seen {
			b = &bucket{coeff: N(0), rest: rest}
			buckets[key] = b
			order = append(order, key)
		}
		b.coeff = numAdd(b.coeff, coeff)
	}

	sort.Strings(order)
	result := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		b := buckets[key]
		switch {
		case b.coeff.IsZero():
		case b.coeff.IsOne():
			result = append(result, b.rest)
		default:
			result = append(result, MulOf(b.coeff, b.rest))
		}
	}
	if !numAccum.IsZero() {
		result = append(result, numAccum)
	}

	if len(result) == 0 {
		return N(0)
	}
	if len(result) == 1 {
		return result[0]
	}
	return &Add{terms: result}
}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) Sub(name string, value Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Sub(name, value)
	}
	return AddOf(out...)
}

func (a *Add) Diff(name string) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Diff(name)
	}
	return AddOf(out...)
}

func (a *Add) Eval() (*Num, bool) {
	acc := N(0)
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = numAdd(acc, v)
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }

func (a *Add) evalAt(vars map[string]float64) (float64, bool) {
	acc := 0.0
	for _, t := range a.terms {
		v, ok := t.evalAt(vars)
		if !ok {
			return 0, false
		}
		acc += v
	}
	return acc, true
}

// splitCoefficient splits an expression into a leading numeric coefficient
// and the remaining symbolic part.
func splitCoefficient(e Expr) (*Num, Expr) {
	if m, ok := e.(*Mul); ok && len(m.factors) >= 2 {
		if coeff, ok2 := m.factors[0].(*Num); ok2 {
			rest := m.factors[1:]
			if len(rest) == 1 {
				return coeff, rest[0]
			}
			return coeff, &Mul{factors: rest}
		}
	}
	return N(1), e
}

// ============================================================
// Mul — product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// Div builds a/b as a * b^-1.
func Div(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	coeff := N(1)
	others := []Expr{}
	for _, f := range flat {
		if v, ok := f.(*Num); ok {
			coeff = numMul(coeff, v)
		} else {
			others = append(others, f)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}
	if len(others) == 0 {
		return coeff
	}

	// Stable factor order keyed on rendered form.
	type keyed struct {
		e   Expr
		key string
	}
	ks := make([]keyed, len(others))
	for i, e := range others {
		ks[i] = keyed{e: e, key: e.String()}
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i].key < ks[j].key })

	// Merge identical adjacent bases into powers: x*x -> x^2.
	merged := []Expr{}
	for i := 0; i < len(ks); {
		j := i
		for j < len(ks) && ks[j].key == ks[i].key {
			j++
		}
		if n := j - i; n > 1 {
			merged = append(merged, PowOf(ks[i].e, N(int64(n))))
		} else {
			merged = append(merged, ks[i].e)
		}
		i = j
	}
	others = merged

	if coeff.IsOne() {
		if len(others) == 1 {
			return others[0]
		}
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{coeff}, others...)}
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

func (m *Mul) Sub(name string, value Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Sub(name, value)
	}
	return MulOf(out...)
}

// Diff applies the product rule across all factors.
func (m *Mul) Diff(name string) Expr {
	terms := make([]Expr, len(m.factors))
	for i, fi := range m.factors {
		dfi := fi.Diff(name)
		rest := make([]Expr, 0, len(m.factors)-1)
		for j, fj := range m.factors {
			if j != i {
				rest = append(rest, fj)
			}
		}
		if len(rest) == 0 {
			terms[i] = dfi
		} else {
			terms[i] = MulOf(append([]Expr{dfi}, rest...)...)
		}
	}
	return AddOf(terms...)
}

func (m *Mul) Eval() (*Num, bool) {
	acc := N(1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, v)
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }

func (m *Mul) evalAt(vars map[string]float64) (float64, bool) {
	acc := 1.0
	for _, f := range m.factors {
		v, ok := f.evalAt(vars)
		if !ok {
			return 0, false
		}
		acc *= v
	}
	return acc, true
}

// ============================================================
// Pow — base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func SqrtOf(arg Expr) Expr { return PowOf(arg, Frac(1, 2)) }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok {
		if en.IsZero() {
			return N(1)
		}
		if en.IsOne() {
			return base
		}
	}
	if bn, ok := base.(*Num); ok {
		if bn.IsZero() {
			if en, ok2 := exp.(*Num); ok2 && (en.IsZero() || en.IsNegative()) {
				// 0^0 and 0^negative stay unevaluated.
				return &Pow{base: base, exp: exp}
			}
			return N(0)
		}
		if bn.IsOne() {
			return N(1)
		}
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			e := en.val.Num().Int64()
			if e >= -24 && e <= 24 && e != 0 {
				abs := e
				if abs < 0 {
					abs = -abs
				}
				result := N(1)
				for i := int64(0); i < abs; i++ {
					result = numMul(result, bn)
				}
				if e < 0 {
					return numRecip(result)
				}
				return result
			}
		}
	}
	if inner, ok := base.(*Pow); ok {
		return PowOf(inner.base, MulOf(inner.exp, exp))
	}
	// (a*b)^n = a^n * b^n for integer n.
	if m, ok := base.(*Mul); ok {
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			out := make([]Expr, len(m.factors))
			for i, f := range m.factors {
				out[i] = PowOf(f, en)
			}
			return MulOf(out...)
		}
	}
	return &Pow{base: base, exp: exp}
}

func (p *Pow) String() string {
	baseStr := p.base.String()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "(" + baseStr + ")"
	case *Num:
		if n := p.base.(*Num); n.IsNegative() || !n.IsInteger() {
			baseStr = "(" + baseStr + ")"
		}
	}
	expStr := p.exp.String()
	switch p.exp.(type) {
	case *Add, *Mul, *Pow:
		expStr = "(" + expStr + ")"
	case *Num:
		if n := p.exp.(*Num); n.IsNegative() || !n.IsInteger() {
			expStr = "(" + expStr + ")"
		}
	}
	return baseStr + "^" + expStr
}

func (p *Pow) Sub(name string, value Expr) Expr {
	return PowOf(p.base.Sub(name, value), p.exp.Sub(name, value))
}

func (p *Pow) Diff(name string) Expr {
	du := p.base.Diff(name)
	dv := p.exp.Diff(name)
	if _, expIsNum := p.exp.(*Num); expIsNum {
		// Power rule: d(u^c) = c*u^(c-1)*du.
		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, N(-1))), du)
	}
	if _, baseIsNum := p.base.(*Num); baseIsNum {
		// Exponential rule: d(c^v) = c^v * log(c) * dv.
		return MulOf(PowOf(p.base, p.exp), LogOf(p.base), dv)
	}
	// General case via logarithmic differentiation.
	logTerm := MulOf(dv, LogOf(p.base))
	divTerm := MulOf(p.exp, du, PowOf(p.base, N(-1)))
	return MulOf(PowOf(p.base, p.exp), AddOf(logTerm, divTerm))
}

func (p *Pow) Eval() (*Num, bool) {
	b, ok1 := p.base.Eval()
	e, ok2 := p.exp.Eval()
	if !ok1 || !ok2 {
		return nil, false
	}
	v, ok := powFloat(b.Float64(), e.Float64())
	if !ok || math.IsInf(v, 0) {
		return nil, false
	}
	return NFloat(v), true
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) Base() Expr     { return p.base }
func (p *Pow) Exponent() Expr { return p.exp }

func (p *Pow) evalAt(vars map[string]float64) (float64, bool) {
	b, ok := p.base.evalAt(vars)
	if !ok {
		return 0, false
	}
	e, ok := p.exp.evalAt(vars)
	if !ok {
		return 0, false
	}
	return powFloat(b, e)
}

// powFloat computes b^e over the reals: negative bases are allowed only for
// integer exponents, and division by zero fails rather than yielding ±Inf.
func powFloat(b, e float64) (float64, bool) {
	if b == 0 && e <= 0 {
		return 0, false
	}
	if b < 0 && e != math.Trunc(e) {
		return 0, false
	}
	v := math.Pow(b, e)
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
