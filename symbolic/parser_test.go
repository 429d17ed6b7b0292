package symbolic_test

import (
	"errors"
	"testing"

	"github.com/funcscope/funcscope/symbolic"
)

func mustParse(t *testing.T, input string) symbolic.Expr {
	t.Helper()
	e, err := symbolic.Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	return e
}

func TestParse_Polynomial(t *testing.T) {
	e := mustParse(t, "x**2 + y**2")
	if e.String() != "x^2 + y^2" {
		t.Errorf("want x^2 + y^2, got %s", e.String())
	}
}

func TestParse_CaretPower(t *testing.T) {
	e := mustParse(t, "x^3")
	if e.String() != "x^3" {
		t.Errorf("want x^3, got %s", e.String())
	}
}

func TestParse_PowerRightAssociative(t *testing.T) {
	e := mustParse(t, "2**3**2")
	n, ok := e.Eval()
	if !ok || n.String() != "512" {
		t.Errorf("2**3**2 should be 512, got %v", n)
	}
}

func TestParse_NegativeExponent(t *testing.T) {
	e := mustParse(t, "x**-2")
	if e.String() != "x^(-2)" {
		t.Errorf("want x^(-2), got %s", e.String())
	}
}

func TestParse_UnaryMinus(t *testing.T) {
	e := mustParse(t, "-x")
	if e.String() != "-1*x" {
		t.Errorf("want -1*x, got %s", e.String())
	}
}

func TestParse_Division(t *testing.T) {
	e := mustParse(t, "1/x")
	if e.String() != "x^(-1)" {
		t.Errorf("want x^(-1), got %s", e.String())
	}
}

func TestParse_SqrtRewrite(t *testing.T) {
	e := mustParse(t, "sqrt(x)")
	if e.String() != "x^(1/2)" {
		t.Errorf("want x^(1/2), got %s", e.String())
	}
}

func TestParse_LnRewrite(t *testing.T) {
	e := mustParse(t, "ln(x)")
	if e.String() != "log(x)" {
		t.Errorf("want log(x), got %s", e.String())
	}
}

func TestParse_NestedCalls(t *testing.T) {
	e := mustParse(t, "sin(cos(x))")
	if e.String() != "sin(cos(x))" {
		t.Errorf("want sin(cos(x)), got %s", e.String())
	}
}

func TestParse_DecimalLiteral(t *testing.T) {
	e := mustParse(t, "0.5*x")
	v, ok := symbolic.EvalAt(e, map[string]float64{"x": 4})
	if !ok || v != 2 {
		t.Errorf("want 2, got %v", v)
	}
}

func TestParse_Whitespace(t *testing.T) {
	a := mustParse(t, "x  +   2*y")
	b := mustParse(t, "x+2*y")
	if a.String() != b.String() {
		t.Errorf("whitespace should not matter: %q vs %q", a.String(), b.String())
	}
}

func TestParse_ErrorAdjacentOperators(t *testing.T) {
	_, err := symbolic.Parse("x +* 2")
	var pe *symbolic.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want ParseError, got %v", err)
	}
}

func TestParse_ErrorEmpty(t *testing.T) {
	if _, err := symbolic.Parse("   "); err == nil {
		t.Error("empty input should be rejected")
	}
}

func TestParse_ErrorUnknownFunction(t *testing.T) {
	_, err := symbolic.Parse("foo(x)")
	var pe *symbolic.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want ParseError for unknown function, got %v", err)
	}
}

func TestParse_ErrorUnbalancedParens(t *testing.T) {
	if _, err := symbolic.Parse("sin(x"); err == nil {
		t.Error("unbalanced parens should be rejected")
	}
}

func TestParse_ErrorMalformedNumber(t *testing.T) {
	if _, err := symbolic.Parse("1.2.3"); err == nil {
		t.Error("1.2.3 should be rejected")
	}
}

func TestParse_ErrorTrailingToken(t *testing.T) {
	if _, err := symbolic.Parse("x + 2 y"); err == nil {
		t.Error("trailing token should be rejected")
	}
}

func TestParse_ErrorPositionReported(t *testing.T) {
	_, err := symbolic.Parse("x + @")
	var pe *symbolic.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want ParseError, got %v", err)
	}
	if pe.Pos != 4 {
		t.Errorf("want position 4, got %d", pe.Pos)
	}
}

func TestParse_ArbitrarySymbolsAllowed(t *testing.T) {
	e := mustParse(t, "a + b")
	names := symbolic.FreeSymbolNames(e)
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("want [a b], got %v", names)
	}
}
