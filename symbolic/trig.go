package symbolic

// TrigSimplify applies the Pythagorean identity c*sin(u)^2 + c*cos(u)^2 = c
// throughout an expression, for any shared coefficient c.
func TrigSimplify(e Expr) Expr {
	return trigSimplifyExpr(e.Simplify()).Simplify()
}

func trigSimplifyExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = trigSimplifyExpr(t)
		}
		return trigFindPythagorean(AddOf(newTerms...))
	case *Mul:
		newFactors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			newFactors[i] = trigSimplifyExpr(f)
		}
		return MulOf(newFactors...)
	case *Pow:
		return PowOf(trigSimplifyExpr(v.base), trigSimplifyExpr(v.exp))
	case *Func:
		return (&Func{name: v.name, arg: trigSimplifyExpr(v.arg)}).Simplify()
	}
	return e
}

func trigFindPythagorean(e Expr) Expr {
	add, ok := e.(*Add)
	if !ok {
		return e
	}
	type trigTerm struct {
		funcName string
		argStr   string
		coeff    Expr
		coeffStr string
		idx      int
	}
	var trigTerms []trigTerm
	for idx, t := range add.terms {
		coeff, fn, ok2 := splitTrigSquare(t)
		if ok2 {
			trigTerms = append(trigTerms, trigTerm{
				funcName: fn.name,
				argStr:   fn.arg.String(),
				coeff:    coeff,
				coeffStr: coeff.String(),
				idx:      idx,
			})
		}
	}
	for i := 0; i < len(trigTerms); i++ {
		for j := i + 1; j < len(trigTerms); j++ {
			ti, tj := trigTerms[i], trigTerms[j]
			if ti.argStr == tj.argStr && ti.funcName != tj.funcName && ti.coeffStr == tj.coeffStr {
				newTerms := []Expr{}
				for idx, t := range add.terms {
					if idx != ti.idx && idx != tj.idx {
						newTerms = append(newTerms, t)
					}
				}
				newTerms = append(newTerms, ti.coeff)
				return AddOf(newTerms...).Simplify()
			}
		}
	}
	return e
}

// splitTrigSquare recognizes terms of the form c * sin(u)^2 or c * cos(u)^2
// and returns the coefficient c and the inner trig call.
func splitTrigSquare(t Expr) (Expr, *Func, bool) {
	factors := []Expr{t}
	if m, ok := t.(*Mul); ok {
		factors = m.factors
	}
	for i, f := range factors {
		p, ok := f.(*Pow)
		if !ok {
			continue
		}
		fn, ok := p.base.(*Func)
		if !ok || (fn.name != "sin" && fn.name != "cos") {
			continue
		}
		en, ok := p.exp.(*Num)
		if !ok || numCmp(en, N(2)) != 0 {
			continue
		}
		rest := make([]Expr, 0, len(factors)-1)
		rest = append(rest, factors[:i]...)
		rest = append(rest, factors[i+1:]...)
		if len(rest) == 0 {
			return N(1), fn, true
		}
		return MulOf(rest...), fn, true
	}
	return nil, nil, false
}

// DeepSimplify applies repeated simplification and trig passes until the
// rendering stabilizes.
func DeepSimplify(e Expr) Expr {
	prev := ""
	curr := e.Simplify()
	for i := 0; i < 10; i++ {
		str := curr.String()
		if str == prev {
			break
		}
		prev = str
		curr = TrigSimplify(curr).Simplify()
	}
	return curr
}
