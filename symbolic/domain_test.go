package symbolic_test

import (
	"math"
	"testing"

	"github.com/funcscope/funcscope/symbolic"
)

func TestRealDomain_PolynomialIsEntire(t *testing.T) {
	d := symbolic.RealDomain(mustParse(t, "x**3 - 2*x + 1"), "x")
	if !d.IsEntire() || !d.Exact {
		t.Errorf("polynomial domain should be all reals, got %s", d.Allowed.String())
	}
}

func TestRealDomain_ReciprocalExcludesPole(t *testing.T) {
	d := symbolic.RealDomain(mustParse(t, "1/x"), "x")
	if !d.Exact {
		t.Fatal("1/x domain should be exact")
	}
	if d.Allowed.Contains(0) {
		t.Error("0 should be excluded")
	}
	if !d.Allowed.Contains(1) || !d.Allowed.Contains(-1) {
		t.Error("nonzero points should be included")
	}
	if got := d.DescribeExcluded("x"); got != "x = 0" {
		t.Errorf("want x = 0, got %q", got)
	}
}

func TestRealDomain_RationalExcludesBothPoles(t *testing.T) {
	d := symbolic.RealDomain(mustParse(t, "1/(x**2 - 1)"), "x")
	if d.Allowed.Contains(1) || d.Allowed.Contains(-1) {
		t.Error("poles at ±1 should be excluded")
	}
	if !d.Allowed.Contains(0) {
		t.Error("0 should be included")
	}
}

func TestRealDomain_LogNeedsPositiveArgument(t *testing.T) {
	d := symbolic.RealDomain(mustParse(t, "log(x)"), "x")
	if d.Allowed.Contains(0) || d.Allowed.Contains(-3) {
		t.Error("log(x) should exclude x <= 0")
	}
	if !d.Allowed.Contains(0.5) {
		t.Error("positive points should be included")
	}
	if got := d.DescribeExcluded("x"); got != "x in (-inf, 0]" {
		t.Errorf("want x in (-inf, 0], got %q", got)
	}
}

func TestRealDomain_SqrtNeedsNonNegative(t *testing.T) {
	d := symbolic.RealDomain(mustParse(t, "sqrt(x)"), "x")
	if !d.Allowed.Contains(0) {
		t.Error("sqrt(0) is defined")
	}
	if d.Allowed.Contains(-1) {
		t.Error("sqrt(-1) is not real")
	}
}

func TestRealDomain_SqrtOfSumOfSquaresIsEntire(t *testing.T) {
	d := symbolic.RealDomain(mustParse(t, "sqrt(x**2 + 1)"), "x")
	if !d.IsEntire() || !d.Exact {
		t.Errorf("want all reals, got %s", d.Allowed.String())
	}
}

func TestRealDomain_TanHasPeriodicPoles(t *testing.T) {
	d := symbolic.RealDomain(mustParse(t, "tan(x)"), "x")
	if !d.Exact || len(d.Periodic) != 1 {
		t.Fatalf("want one periodic pole family, got %+v", d.Periodic)
	}
	p := d.Periodic[0]
	if math.Abs(p.Offset-math.Pi/2) > 1e-9 || math.Abs(p.Period-math.Pi) > 1e-9 {
		t.Errorf("want poles at pi/2 + k*pi, got %+v", p)
	}
	if got := d.DescribeExcluded("x"); got != "x = pi/2 + k*pi" {
		t.Errorf("want x = pi/2 + k*pi, got %q", got)
	}
}

func TestRealDomain_AsinClampsToUnitInterval(t *testing.T) {
	d := symbolic.RealDomain(mustParse(t, "asin(x)"), "x")
	if !d.Allowed.Contains(-1) || !d.Allowed.Contains(1) || !d.Allowed.Contains(0) {
		t.Error("[-1, 1] should be included")
	}
	if d.Allowed.Contains(1.5) || d.Allowed.Contains(-1.5) {
		t.Error("values outside [-1, 1] should be excluded")
	}
}

func TestRealDomain_TranscendentalRootIsInexact(t *testing.T) {
	d := symbolic.RealDomain(mustParse(t, "sqrt(sin(x))"), "x")
	if d.Exact {
		t.Error("sqrt(sin(x)) should not claim an exact domain")
	}
}

func TestRealDomain_OtherVariableUnconstrained(t *testing.T) {
	d := symbolic.RealDomain(mustParse(t, "1/y"), "x")
	if !d.IsEntire() {
		t.Errorf("1/y places no constraint on x, got %s", d.Allowed.String())
	}
}

// ============================================================
// Interval sets
// ============================================================

func TestSet_UnionMergesOverlap(t *testing.T) {
	s := symbolic.SetOf(
		symbolic.Interval{Lo: 0, Hi: 2},
		symbolic.Interval{Lo: 1, Hi: 3},
	)
	if got := s.String(); got != "[0, 3]" {
		t.Errorf("want [0, 3], got %q", got)
	}
}

func TestSet_ComplementOfPoint(t *testing.T) {
	s := symbolic.SetOf(symbolic.Point(0)).Complement()
	if got := s.String(); got != "(-inf, 0) U (0, inf)" {
		t.Errorf("want (-inf, 0) U (0, inf), got %q", got)
	}
}

func TestSet_ComplementRoundTrip(t *testing.T) {
	s := symbolic.SetOf(symbolic.Interval{Lo: -1, Hi: 1, LoOpen: true, HiOpen: false})
	back := s.Complement().Complement()
	if back.String() != s.String() {
		t.Errorf("want %q, got %q", s.String(), back.String())
	}
}

func TestSet_IntersectDisjointIsEmpty(t *testing.T) {
	a := symbolic.SetOf(symbolic.Interval{Lo: 0, Hi: 1})
	b := symbolic.SetOf(symbolic.Interval{Lo: 2, Hi: 3})
	if !a.Intersect(b).IsEmpty() {
		t.Error("disjoint intervals should intersect to the empty set")
	}
}

func TestSet_ContainsRespectsOpenEndpoints(t *testing.T) {
	s := symbolic.SetOf(symbolic.Interval{Lo: 0, Hi: 1, LoOpen: true})
	if s.Contains(0) {
		t.Error("open endpoint should be excluded")
	}
	if !s.Contains(1) {
		t.Error("closed endpoint should be included")
	}
}

func TestSet_PointAbutsInterval(t *testing.T) {
	s := symbolic.SetOf(
		symbolic.Point(0),
		symbolic.Interval{Lo: 0, Hi: math.Inf(1), LoOpen: true, HiOpen: true},
	)
	if got := s.String(); got != "[0, inf)" {
		t.Errorf("want [0, inf), got %q", got)
	}
}
