package symbolic_test

import (
	"math"
	"testing"

	"github.com/funcscope/funcscope/symbolic"
)

func approxEqual(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestRoots_Linear(t *testing.T) {
	roots, ok := symbolic.Roots(mustParse(t, "2*x - 6"), "x")
	if !ok || len(roots) != 1 || !approxEqual(roots[0], 3) {
		t.Errorf("want [3], got %v (ok=%v)", roots, ok)
	}
}

func TestRoots_Quadratic(t *testing.T) {
	roots, ok := symbolic.Roots(mustParse(t, "x**2 - 4"), "x")
	if !ok || len(roots) != 2 || !approxEqual(roots[0], -2) || !approxEqual(roots[1], 2) {
		t.Errorf("want [-2 2], got %v (ok=%v)", roots, ok)
	}
}

func TestRoots_QuadraticNoRealRoots(t *testing.T) {
	roots, ok := symbolic.Roots(mustParse(t, "x**2 + 1"), "x")
	if !ok || len(roots) != 0 {
		t.Errorf("want no roots, got %v (ok=%v)", roots, ok)
	}
}

func TestRoots_Cubic(t *testing.T) {
	roots, ok := symbolic.Roots(mustParse(t, "x**3 - x"), "x")
	if !ok || len(roots) != 3 {
		t.Fatalf("want 3 roots, got %v (ok=%v)", roots, ok)
	}
	want := []float64{-1, 0, 1}
	for i, w := range want {
		if !approxEqual(roots[i], w) {
			t.Errorf("root %d: want %v, got %v", i, w, roots[i])
		}
	}
}

func TestRoots_FactoredDerivative(t *testing.T) {
	// d/dx (x+1)^2 = 2*(x+1); the constant term of the composite factor
	// must survive coefficient extraction.
	f := mustParse(t, "(x+1)**2")
	roots, ok := symbolic.Roots(f.Diff("x").Simplify(), "x")
	if !ok || len(roots) != 1 || !approxEqual(roots[0], -1) {
		t.Errorf("want [-1], got %v (ok=%v)", roots, ok)
	}
}

func TestRoots_FactoredCubicDerivative(t *testing.T) {
	// d/dx (x+1)^3 = 3*(x+1)^2, a quadratic with a double root at -1.
	f := mustParse(t, "(x+1)**3")
	roots, ok := symbolic.Roots(f.Diff("x").Simplify(), "x")
	if !ok || len(roots) != 1 || !approxEqual(roots[0], -1) {
		t.Errorf("want [-1], got %v (ok=%v)", roots, ok)
	}
}

func TestNumericCoeffs_CompositeProduct(t *testing.T) {
	coeffs, ok := symbolic.NumericCoeffs(mustParse(t, "2*(x+1)"), "x")
	if !ok {
		t.Fatal("coefficients should resolve numerically")
	}
	if !approxEqual(coeffs[0], 2) || !approxEqual(coeffs[1], 2) {
		t.Errorf("want {0:2, 1:2}, got %v", coeffs)
	}
}

func TestNumericCoeffs_PowerOfSum(t *testing.T) {
	coeffs, ok := symbolic.NumericCoeffs(mustParse(t, "(x+1)**2"), "x")
	if !ok {
		t.Fatal("coefficients should resolve numerically")
	}
	if !approxEqual(coeffs[0], 1) || !approxEqual(coeffs[1], 2) || !approxEqual(coeffs[2], 1) {
		t.Errorf("want {0:1, 1:2, 2:1}, got %v", coeffs)
	}
}

func TestRoots_Transcendental(t *testing.T) {
	roots, ok := symbolic.Roots(mustParse(t, "exp(x) - 1"), "x")
	if !ok {
		t.Fatal("root search should not be undetermined")
	}
	found := false
	for _, r := range roots {
		if approxEqual(r, 0) {
			found = true
		}
	}
	if !found {
		t.Errorf("want a root at 0, got %v", roots)
	}
}

func TestRoots_NonzeroConstant(t *testing.T) {
	roots, ok := symbolic.Roots(symbolic.N(5), "x")
	if !ok || len(roots) != 0 {
		t.Errorf("constant 5 has no roots, got %v (ok=%v)", roots, ok)
	}
}

func TestRoots_IdenticallyZero(t *testing.T) {
	if _, ok := symbolic.Roots(symbolic.N(0), "x"); ok {
		t.Error("identically zero expression should be undetermined")
	}
}

func TestSolveSystem2_Separable(t *testing.T) {
	fx := mustParse(t, "2*x")
	fy := mustParse(t, "2*y")
	sols, ok := symbolic.SolveSystem2(fx, fy, "x", "y")
	if !ok || len(sols) != 1 {
		t.Fatalf("want one solution, got %v (ok=%v)", sols, ok)
	}
	if !approxEqual(sols[0][0], 0) || !approxEqual(sols[0][1], 0) {
		t.Errorf("want (0,0), got %v", sols[0])
	}
}

func TestSolveSystem2_SeparableShifted(t *testing.T) {
	// Gradient of (x-1)^2 + y^2 with the x component left factored.
	fx := mustParse(t, "2*(x - 1)")
	fy := mustParse(t, "2*y")
	sols, ok := symbolic.SolveSystem2(fx, fy, "x", "y")
	if !ok || len(sols) != 1 {
		t.Fatalf("want one solution, got %v (ok=%v)", sols, ok)
	}
	if !approxEqual(sols[0][0], 1) || !approxEqual(sols[0][1], 0) {
		t.Errorf("want (1,0), got %v", sols[0])
	}
}

func TestSolveSystem2_SeparableCrossProduct(t *testing.T) {
	fx := mustParse(t, "x**2 - 1")
	fy := mustParse(t, "y - 2")
	sols, ok := symbolic.SolveSystem2(fx, fy, "x", "y")
	if !ok || len(sols) != 2 {
		t.Fatalf("want two solutions, got %v (ok=%v)", sols, ok)
	}
	if !approxEqual(sols[0][0], -1) || !approxEqual(sols[0][1], 2) {
		t.Errorf("want (-1,2) first, got %v", sols[0])
	}
	if !approxEqual(sols[1][0], 1) || !approxEqual(sols[1][1], 2) {
		t.Errorf("want (1,2) second, got %v", sols[1])
	}
}

func TestSolveSystem2_Coupled(t *testing.T) {
	// Gradient of x^2 + y^2 + x*y: minimum at the origin.
	fx := mustParse(t, "2*x + y")
	fy := mustParse(t, "2*y + x")
	sols, ok := symbolic.SolveSystem2(fx, fy, "x", "y")
	if !ok || len(sols) != 1 {
		t.Fatalf("want one solution, got %v (ok=%v)", sols, ok)
	}
	if !approxEqual(sols[0][0], 0) || !approxEqual(sols[0][1], 0) {
		t.Errorf("want (0,0), got %v", sols[0])
	}
}
