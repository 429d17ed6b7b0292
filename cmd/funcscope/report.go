package main

import (
	"fmt"
	"io"

	"github.com/funcscope/funcscope/analysis"
)

// writeReport renders one analysis result as a plain text report.
func writeReport(w io.Writer, res *analysis.Result) {
	fmt.Fprintf(w, "Expression: %s\n", res.Expression)
	switch res.Branch {
	case analysis.Branch1D:
		fmt.Fprintf(w, "Variables:  %s (one-variable analysis)\n", res.Variables[0])
	case analysis.Branch2D:
		fmt.Fprintln(w, "Variables:  x, y (two-variable analysis)")
	}
	fmt.Fprintln(w)

	writeVerdict(w, "Continuity", res.Continuity.Verdict, res.Continuity.Excluded, res.Continuity.Approximate)
	writeVerdict(w, "Differentiability", res.Differentiability.Verdict, res.Differentiability.Excluded, res.Differentiability.Approximate)

	if res.Branch == analysis.Branch1D {
		writeFormula(w, "Derivative", res.Derivative)
		writeLimit(w, "Limit as x -> +inf", res.LimitPosInf)
		writeLimit(w, "Limit as x -> -inf", res.LimitNegInf)
	} else {
		writeFormula(w, "d/dx", res.PartialX)
		writeFormula(w, "d/dy", res.PartialY)
		writeLimit(w, "Limit as r -> inf", res.RadialLimit)
	}

	writeCriticalPoints(w, res)
	if res.Branch == analysis.Branch1D {
		writeExtremum(w, "Global minimum", res.GlobalMin)
		writeExtremum(w, "Global maximum", res.GlobalMax)
		writeSampleSummary(w, res)
	} else {
		writeSurfaceSummary(w, res)
	}
}

func writeVerdict(w io.Writer, label string, v analysis.Verdict, excluded string, approx bool) {
	line := string(v)
	if excluded != "" {
		line += " (undefined at " + excluded + ")"
	}
	if approx {
		line += " [per-axis approximation]"
	}
	fmt.Fprintf(w, "%s: %s\n", label, line)
}

func writeFormula(w io.Writer, label string, f *analysis.Formula) {
	if f == nil {
		return
	}
	if f.Undetermined {
		fmt.Fprintf(w, "%s: undetermined\n", label)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", label, f.Text)
}

func writeLimit(w io.Writer, label string, l *analysis.LimitValue) {
	if l == nil {
		return
	}
	if l.Kind == "finite" && l.Value != nil {
		fmt.Fprintf(w, "%s: %g\n", label, *l.Value)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", label, l.Kind)
}

func writeCriticalPoints(w io.Writer, res *analysis.Result) {
	if len(res.CriticalPoints) == 0 {
		return
	}
	fmt.Fprintln(w, "Critical points:")
	for _, p := range res.CriticalPoints {
		loc := fmt.Sprintf("x = %g", p.X)
		if p.Y != nil {
			loc = fmt.Sprintf("(%g, %g)", p.X, *p.Y)
		}
		if p.Value != nil {
			fmt.Fprintf(w, "  %s: %s, f = %g\n", loc, p.Class, *p.Value)
		} else {
			fmt.Fprintf(w, "  %s: %s\n", loc, p.Class)
		}
	}
}

func writeExtremum(w io.Writer, label string, e *analysis.Extremum) {
	if e == nil {
		return
	}
	switch e.Status {
	case analysis.ExtremumFound:
		fmt.Fprintf(w, "%s: f(%g) = %g\n", label, e.X, e.Value)
	case analysis.ExtremumNone:
		fmt.Fprintf(w, "%s: none among critical points\n", label)
	default:
		fmt.Fprintf(w, "%s: undetermined\n", label)
	}
}

func writeSampleSummary(w io.Writer, res *analysis.Result) {
	if len(res.Samples) == 0 {
		return
	}
	gaps := 0
	for _, s := range res.Samples {
		if !s.Defined {
			gaps++
		}
	}
	lo := res.Samples[0].X
	hi := res.Samples[len(res.Samples)-1].X
	fmt.Fprintf(w, "Samples: %d points on [%g, %g], %d undefined\n", len(res.Samples), lo, hi, gaps)
}

func writeSurfaceSummary(w io.Writer, res *analysis.Result) {
	if res.Surface == nil || len(res.Surface.Xs) == 0 {
		return
	}
	gaps := 0
	for _, row := range res.Surface.Defined {
		for _, ok := range row {
			if !ok {
				gaps++
			}
		}
	}
	fmt.Fprintf(w, "Surface: %dx%d grid on [%g, %g]^2, %d undefined\n",
		len(res.Surface.Xs), len(res.Surface.Ys),
		res.Surface.Xs[0], res.Surface.Xs[len(res.Surface.Xs)-1], gaps)
}
