package symbolic

import "math"

// ============================================================
// Func — named function applications
// ============================================================

type Func struct {
	name string
	arg  Expr
}

func funcOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

func SinOf(arg Expr) Expr  { return funcOf("sin", arg).Simplify() }
func CosOf(arg Expr) Expr  { return funcOf("cos", arg).Simplify() }
func TanOf(arg Expr) Expr  { return funcOf("tan", arg).Simplify() }
func ExpOf(arg Expr) Expr  { return funcOf("exp", arg).Simplify() }
func LogOf(arg Expr) Expr  { return funcOf("log", arg).Simplify() }
func AbsOf(arg Expr) Expr  { return funcOf("abs", arg).Simplify() }
func AsinOf(arg Expr) Expr { return funcOf("asin", arg).Simplify() }
func AcosOf(arg Expr) Expr { return funcOf("acos", arg).Simplify() }
func AtanOf(arg Expr) Expr { return funcOf("atan", arg).Simplify() }
func SinhOf(arg Expr) Expr { return funcOf("sinh", arg).Simplify() }
func CoshOf(arg Expr) Expr { return funcOf("cosh", arg).Simplify() }
func TanhOf(arg Expr) Expr { return funcOf("tanh", arg).Simplify() }

// knownFuncs is the function alphabet the parser accepts. sqrt and ln are
// handled there as rewrites (x^(1/2) and log).
var knownFuncs = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"asin": true, "acos": true, "atan": true,
	"sinh": true, "cosh": true, "tanh": true,
	"exp": true, "log": true, "abs": true,
}

func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	if n, ok := arg.(*Num); ok {
		switch f.name {
		case "sin":
			if n.IsZero() {
				return N(0)
			}
		case "cos":
			if n.IsZero() {
				return N(1)
			}
		case "exp":
			if n.IsZero() {
				return N(1)
			}
		case "log":
			if n.IsOne() {
				return N(0)
			}
		case "abs":
			if n.IsNegative() {
				return numNeg(n)
			}
			return n
		}
		return &Func{name: f.name, arg: arg}
	}
	switch f.name {
	case "log":
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.arg
		}
	case "exp":
		if inner, ok := arg.(*Func); ok && inner.name == "log" {
			return inner.arg
		}
	case "abs":
		// abs(-u) = abs(u)
		if m, ok := arg.(*Mul); ok && len(m.factors) >= 2 {
			if coeff, ok2 := m.factors[0].(*Num); ok2 && coeff.IsNegative() {
				rest := append([]Expr{numNeg(coeff)}, m.factors[1:]...)
				return AbsOf(MulOf(rest...))
			}
		}
	}
	return &Func{name: f.name, arg: arg}
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) Sub(name string, value Expr) Expr {
	return funcOf(f.name, f.arg.Sub(name, value)).Simplify()
}

func (f *Func) Diff(name string) Expr {
	du := f.arg.Diff(name)
	var outer Expr
	switch f.name {
	case "sin":
		outer = CosOf(f.arg)
	case "cos":
		outer = MulOf(N(-1), SinOf(f.arg))
	case "tan":
		outer = AddOf(N(1), PowOf(TanOf(f.arg), N(2)))
	case "exp":
		outer = ExpOf(f.arg)
	case "log":
		outer = PowOf(f.arg, N(-1))
	case "asin":
		outer = PowOf(Subtract(N(1), PowOf(f.arg, N(2))), Frac(-1, 2))
	case "acos":
		outer = MulOf(N(-1), PowOf(Subtract(N(1), PowOf(f.arg, N(2))), Frac(-1, 2)))
	case "atan":
		outer = PowOf(AddOf(N(1), PowOf(f.arg, N(2))), N(-1))
	case "sinh":
		outer = CoshOf(f.arg)
	case "cosh":
		outer = SinhOf(f.arg)
	case "tanh":
		outer = Subtract(N(1), PowOf(TanhOf(f.arg), N(2)))
	case "abs":
		// d|u| = u/|u| * du; undefined at u=0, which domain analysis reports.
		outer = MulOf(f.arg, PowOf(AbsOf(f.arg), N(-1)))
	default:
		panic("symbolic: unknown function " + f.name)
	}
	return MulOf(outer, du).Simplify()
}

func (f *Func) Eval() (*Num, bool) {
	n, ok := f.arg.Eval()
	if !ok {
		return nil, false
	}
	v, ok := applyFloat(f.name, n.Float64())
	if !ok || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, false
	}
	return NFloat(v), true
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }

func (f *Func) evalAt(vars map[string]float64) (float64, bool) {
	v, ok := f.arg.evalAt(vars)
	if !ok {
		return 0, false
	}
	return applyFloat(f.name, v)
}

// applyFloat applies a named function over float64, failing on real-domain
// violations instead of returning NaN.
func applyFloat(name string, v float64) (float64, bool) {
	switch name {
	case "sin":
		return math.Sin(v), true
	case "cos":
		return math.Cos(v), true
	case "tan":
		return math.Tan(v), true
	case "exp":
		return math.Exp(v), true
	case "log":
		if v <= 0 {
			return 0, false
		}
		return math.Log(v), true
	case "abs":
		return math.Abs(v), true
	case "asin":
		if v < -1 || v > 1 {
			return 0, false
		}
		return math.Asin(v), true
	case "acos":
		if v < -1 || v > 1 {
			return 0, false
		}
		return math.Acos(v), true
	case "atan":
		return math.Atan(v), true
	case "sinh":
		return math.Sinh(v), true
	case "cosh":
		return math.Cosh(v), true
	case "tanh":
		return math.Tanh(v), true
	}
	return 0, false
}
