package analysis

import (
	"context"
	"math"

	"github.com/funcscope/funcscope/symbolic"
)

// classifyEps treats second-derivative values this close to zero as an
// inconclusive sign test.
const classifyEps = 1e-9

func (a *Analyzer) analyze1D(ctx context.Context, res *Result, f symbolic.Expr) {
	// Continuity from the maximal real domain.
	if d, ok := runStep(ctx, a, "continuity", func() symbolic.Domain {
		return symbolic.RealDomain(f, "x")
	}); ok {
		res.Continuity = continuityReport(d, "x", false)
	} else {
		res.Continuity = Continuity{Verdict: VerdictUndetermined}
	}

	// Symbolic derivative. Later steps need it, so its failure degrades
	// them too.
	deriv, derivOK := runStep(ctx, a, "derivative", func() symbolic.Expr {
		return f.Diff("x").Simplify()
	})
	if derivOK {
		res.Derivative = &Formula{Text: deriv.String()}
	} else {
		res.Derivative = &Formula{Undetermined: true}
	}

	// Differentiability: the derivative's own domain.
	res.Differentiability = Differentiability{Verdict: VerdictUndetermined}
	if derivOK {
		if d, ok := runStep(ctx, a, "differentiability", func() symbolic.Domain {
			return symbolic.RealDomain(deriv, "x")
		}); ok {
			res.Differentiability = differentiabilityReport(d, "x", false)
		}
	}

	// Behavior at the two infinite ends.
	res.LimitPosInf = undeterminedLimit()
	res.LimitNegInf = undeterminedLimit()
	if lim, ok := runStep(ctx, a, "limit_pos_inf", func() symbolic.InfLimit {
		return symbolic.LimitAtInfinity(f, "x", 1)
	}); ok {
		res.LimitPosInf = limitValue(lim)
	}
	if lim, ok := runStep(ctx, a, "limit_neg_inf", func() symbolic.InfLimit {
		return symbolic.LimitAtInfinity(f, "x", -1)
	}); ok {
		res.LimitNegInf = limitValue(lim)
	}

	// Extrema via the second-derivative sign test.
	res.GlobalMin = &Extremum{Status: ExtremumUndetermined}
	res.GlobalMax = &Extremum{Status: ExtremumUndetermined}
	if derivOK {
		if ext, ok := runStep(ctx, a, "extrema", func() extremaResult {
			return findExtrema1D(f, deriv)
		}); ok {
			res.CriticalPoints = ext.points
			res.GlobalMin = ext.min
			res.GlobalMax = ext.max
		}
	}

	res.Samples = sampleLine(f)
}

func differentiabilityReport(d symbolic.Domain, name string, approximate bool) Differentiability {
	switch {
	case !d.Exact:
		return Differentiability{Verdict: VerdictUndetermined, Approximate: approximate}
	case d.IsEntire():
		return Differentiability{Verdict: VerdictDifferentiable, Approximate: approximate}
	}
	return Differentiability{
		Verdict:     VerdictNotDifferentiable,
		Excluded:    d.DescribeExcluded(name),
		Approximate: approximate,
	}
}

type extremaResult struct {
	points   []CriticalPoint
	min, max *Extremum
}

// findExtrema1D solves f' = 0 and classifies each root with the sign of
// f'' there. Roots where the test is inconclusive or evaluation fails stay
// in the critical-point list but never become extremum candidates.
func findExtrema1D(f, deriv symbolic.Expr) extremaResult {
	roots, ok := symbolic.Roots(deriv, "x")
	if !ok {
		return extremaResult{
			min: &Extremum{Status: ExtremumUndetermined},
			max: &Extremum{Status: ExtremumUndetermined},
		}
	}
	second := deriv.Diff("x").Simplify()

	out := extremaResult{
		min: &Extremum{Status: ExtremumNone},
		max: &Extremum{Status: ExtremumNone},
	}
	for _, r := range roots {
		cp := CriticalPoint{X: r, Class: ClassInconclusive}
		fv, fOK := symbolic.EvalAt(f, map[string]float64{"x": r})
		if fOK && !math.IsInf(fv, 0) && !math.IsNaN(fv) {
			v := fv
			cp.Value = &v
		} else {
			fOK = false
		}
		d2, d2OK := symbolic.EvalAt(second, map[string]float64{"x": r})
		switch {
		case !d2OK:
			cp.Class = ClassUnclassifiable
		case d2 > classifyEps:
			cp.Class = ClassMinimum
			if fOK && (out.min.Status != ExtremumFound || fv < out.min.Value) {
				out.min = &Extremum{Status: ExtremumFound, X: r, Value: fv}
			}
		case d2 < -classifyEps:
			cp.Class = ClassMaximum
			if fOK && (out.max.Status != ExtremumFound || fv > out.max.Value) {
				out.max = &Extremum{Status: ExtremumFound, X: r, Value: fv}
			}
		}
		out.points = append(out.points, cp)
	}
	return out
}
