package analysis

import (
	"context"
	"math"

	"github.com/funcscope/funcscope/symbolic"
)

// rayCount is the number of directions probed when a radial limit still
// depends on the angle after simplification.
const rayCount = 16

type axisDomains struct{ dx, dy symbolic.Domain }

func (a *Analyzer) analyze2D(ctx context.Context, res *Result, f symbolic.Expr) {
	// Per-axis continuity: the x-domain and y-domain each holding the other
	// variable implicit. This approximates joint continuity and is flagged
	// as such.
	if d, ok := runStep(ctx, a, "continuity", func() axisDomains {
		return axisDomains{
			dx: symbolic.RealDomain(f, "x"),
			dy: symbolic.RealDomain(f, "y"),
		}
	}); ok {
		res.Continuity = axisContinuity(d.dx, d.dy)
	} else {
		res.Continuity = Continuity{Verdict: VerdictUndetermined, Approximate: true}
	}

	// Partial derivatives.
	fx, fxOK := runStep(ctx, a, "partial_x", func() symbolic.Expr {
		return f.Diff("x").Simplify()
	})
	fy, fyOK := runStep(ctx, a, "partial_y", func() symbolic.Expr {
		return f.Diff("y").Simplify()
	})
	res.PartialX = &Formula{Undetermined: true}
	res.PartialY = &Formula{Undetermined: true}
	if fxOK {
		res.PartialX = &Formula{Text: fx.String()}
	}
	if fyOK {
		res.PartialY = &Formula{Text: fy.String()}
	}

	// Differentiable only if both partials are defined along their axes.
	res.Differentiability = Differentiability{Verdict: VerdictUndetermined, Approximate: true}
	if fxOK && fyOK {
		if d, ok := runStep(ctx, a, "differentiability", func() axisDomains {
			return axisDomains{
				dx: symbolic.RealDomain(fx, "x"),
				dy: symbolic.RealDomain(fy, "y"),
			}
		}); ok {
			res.Differentiability = axisDifferentiability(d.dx, d.dy)
		}
	}

	// Growth along rays from the origin.
	res.RadialLimit = undeterminedLimit()
	if lim, ok := runStep(ctx, a, "radial_limit", func() symbolic.InfLimit {
		return radialLimit(f)
	}); ok {
		res.RadialLimit = limitValue(lim)
	}

	// Critical points of the gradient system, classified by the Hessian
	// determinant.
	if fxOK && fyOK {
		if pts, ok := runStep(ctx, a, "critical_points", func() []CriticalPoint {
			return classifyCriticalPoints(f, fx, fy)
		}); ok {
			res.CriticalPoints = pts
		}
	}

	res.Surface = sampleSurface(f)
}

func axisContinuity(dx, dy symbolic.Domain) Continuity {
	if !dx.Exact || !dy.Exact {
		return Continuity{Verdict: VerdictUndetermined, Approximate: true}
	}
	if dx.IsEntire() && dy.IsEntire() {
		return Continuity{Verdict: VerdictContinuous, Approximate: true}
	}
	return Continuity{
		Verdict:     VerdictDiscontinuous,
		Excluded:    joinExcluded(dx.DescribeExcluded("x"), dy.DescribeExcluded("y")),
		Approximate: true,
	}
}

func axisDifferentiability(dx, dy symbolic.Domain) Differentiability {
	if !dx.Exact || !dy.Exact {
		return Differentiability{Verdict: VerdictUndetermined, Approximate: true}
	}
	if dx.IsEntire() && dy.IsEntire() {
		return Differentiability{Verdict: VerdictDifferentiable, Approximate: true}
	}
	return Differentiability{
		Verdict:     VerdictNotDifferentiable,
		Excluded:    joinExcluded(dx.DescribeExcluded("x"), dy.DescribeExcluded("y")),
		Approximate: true,
	}
}

// radialLimit substitutes x = r·cos(t), y = r·sin(t) and takes r → ∞.
// When the angle cancels (sum-of-squares shapes), the limit is exact in r;
// otherwise a fan of fixed rays is probed and must agree.
func radialLimit(f symbolic.Expr) symbolic.InfLimit {
	r, t := symbolic.S("r"), symbolic.S("t")
	radial := symbolic.DeepSimplify(f.
		Sub("x", symbolic.MulOf(r, symbolic.CosOf(t))).
		Sub("y", symbolic.MulOf(r, symbolic.SinOf(t))))

	if !symbolic.DependsOn(radial, "t") {
		return symbolic.LimitAtInfinity(radial, "r", 1)
	}

	var agreed symbolic.InfLimit
	for k := 0; k < rayCount; k++ {
		theta := 2 * math.Pi * float64(k) / rayCount
		ray := radial.Sub("t", symbolic.NFloat(theta)).Simplify()
		lim := symbolic.LimitAtInfinity(ray, "r", 1)
		if lim.Kind == symbolic.LimitUndetermined {
			return lim
		}
		if k == 0 {
			agreed = lim
			continue
		}
		if lim.Kind != agreed.Kind {
			return symbolic.InfLimit{Kind: symbolic.LimitUndetermined}
		}
		if lim.Kind == symbolic.LimitFinite && math.Abs(lim.Value-agreed.Value) > 1e-6 {
			return symbolic.InfLimit{Kind: symbolic.LimitUndetermined}
		}
	}
	return agreed
}

// classifyCriticalPoints solves the gradient system and applies the
// second-derivative test: D > 0 with fxx > 0 is a minimum, D > 0 with
// fxx <= 0 a maximum, D < 0 a saddle, D near zero inconclusive. A point
// whose evaluation fails is kept as unclassifiable and the rest continue.
func classifyCriticalPoints(f, fx, fy symbolic.Expr) []CriticalPoint {
	sols, ok := symbolic.SolveSystem2(fx, fy, "x", "y")
	if !ok {
		return nil
	}
	h := symbolic.Hessian(f, []string{"x", "y"})
	det := h.Det()
	fxx := h.Get(0, 0)

	pts := make([]CriticalPoint, 0, len(sols))
	for _, s := range sols {
		x, y := s[0], s[1]
		yv := y
		cp := CriticalPoint{X: x, Y: &yv}
		vars := map[string]float64{"x": x, "y": y}
		if fv, okv := symbolic.EvalAt(f, vars); okv && !math.IsInf(fv, 0) && !math.IsNaN(fv) {
			v := fv
			cp.Value = &v
		}
		d, okD := symbolic.EvalAt(det, vars)
		xx, okXX := symbolic.EvalAt(fxx, vars)
		switch {
		case !okD || !okXX:
			cp.Class = ClassUnclassifiable
		case math.Abs(d) <= classifyEps:
			cp.Class = ClassInconclusive
		case d < 0:
			cp.Class = ClassSaddle
		case xx > 0:
			cp.Class = ClassMinimum
		default:
			cp.Class = ClassMaximum
		}
		pts = append(pts, cp)
	}
	return pts
}
