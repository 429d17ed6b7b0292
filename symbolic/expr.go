// Package symbolic is a small deterministic computer-algebra kernel:
// exact rational arithmetic over math/big.Rat, stable simplification,
// differentiation, substitution, equation solving, real-domain analysis,
// and limits at infinity. It is the symbolic-math capability behind the
// analysis package; it knows nothing about requests or rendering.
package symbolic

import (
	"fmt"
	"math"
	"math/big"
)

// Expr is an immutable symbolic expression node. Constructors simplify
// eagerly, so two expressions built from the same input render identically.
type Expr interface {
	Simplify() Expr
	String() string
	Sub(name string, value Expr) Expr
	Diff(name string) Expr
	Eval() (*Num, bool)
	Equal(other Expr) bool
	evalAt(vars map[string]float64) (float64, bool)
}

// EvalAt evaluates an expression numerically with the given variable
// bindings. ok is false when the expression hits a real-domain failure
// (log of a non-positive, even root of a negative, division by zero) or
// still contains an unbound symbol.
func EvalAt(e Expr, vars map[string]float64) (float64, bool) {
	return e.evalAt(vars)
}

// ============================================================
// Num — exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

func Frac(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// NFloat builds a Num from a float64. Infinities and NaN are not
// representable and panic; callers screen values first.
func NFloat(f float64) *Num {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic(fmt.Sprintf("symbolic: non-finite literal %v", f))
	}
	return &Num{val: new(big.Rat).SetFloat64(f)}
}

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr      { return N(0) }
func (n *Num) Eval() (*Num, bool)    { return n, true }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }

func (n *Num) Float64() float64 { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool     { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool      { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsNegOne() bool   { return n.val.Cmp(ratNegOne) == 0 }
func (n *Num) IsInteger() bool  { return n.val.IsInt() }
func (n *Num) IsPositive() bool { return n.val.Sign() > 0 }
func (n *Num) IsNegative() bool { return n.val.Sign() < 0 }
func (n *Num) Rat() *big.Rat    { return new(big.Rat).Set(n.val) }

var (
	ratOne    = new(big.Rat).SetInt64(1)
	ratNegOne = new(big.Rat).SetInt64(-1)
)

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	// Decimal literals parse into dyadic rationals with unwieldy
	// denominators; render those as floats for readability.
	if n.val.Denom().BitLen() > 12 {
		f, _ := n.val.Float64()
		return fmt.Sprintf("%g", f)
	}
	return n.val.RatString()
}

func (n *Num) evalAt(map[string]float64) (float64, bool) {
	f, _ := n.val.Float64()
	return f, true
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numSub(a, b *Num) *Num { return &Num{val: new(big.Rat).Sub(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numCmp(a, b *Num) int  { return a.val.Cmp(b.val) }

func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("symbolic: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}

func numDiv(a, b *Num) *Num { return numMul(a, numRecip(b)) }

// ============================================================
// Sym — symbolic variable
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Simplify() Expr    { return s }
func (s *Sym) String() string    { return s.name }
func (s *Sym) Name() string      { return s.name }
func (s *Sym) Eval() (*Num, bool) { return nil, false }

func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && s.name == o.name
}

func (s *Sym) Sub(name string, value Expr) Expr {
	if s.name == name {
		return value
	}
	return s
}

func (s *Sym) Diff(name string) Expr {
	if s.name == name {
		return N(1)
	}
	return N(0)
}

func (s *Sym) evalAt(vars map[string]float64) (float64, bool) {
	v, ok := vars[s.name]
	return v, ok
}
