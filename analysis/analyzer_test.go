package analysis_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funcscope/funcscope/analysis"
	"github.com/funcscope/funcscope/symbolic"
)

func newAnalyzer() *analysis.Analyzer {
	return analysis.NewAnalyzer(
		analysis.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func analyze(t *testing.T, input string) *analysis.Result {
	t.Helper()
	res, err := newAnalyzer().Analyze(context.Background(), input)
	require.NoError(t, err)
	return res
}

// ============================================================
// Variable gate
// ============================================================

func TestAnalyze_ParseErrorHalts(t *testing.T) {
	_, err := newAnalyzer().Analyze(context.Background(), "x +* 2")
	var pe *symbolic.ParseError
	require.ErrorAs(t, err, &pe)
}

func TestAnalyze_RejectsForeignSymbol(t *testing.T) {
	_, err := newAnalyzer().Analyze(context.Background(), "x + z")
	var ve *analysis.VariableError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"z"}, ve.Names)
}

func TestAnalyze_RejectsConstant(t *testing.T) {
	_, err := newAnalyzer().Analyze(context.Background(), "5")
	require.ErrorIs(t, err, analysis.ErrNoVariables)
}

func TestAnalyze_RejectsYOnly(t *testing.T) {
	_, err := newAnalyzer().Analyze(context.Background(), "y**2")
	require.ErrorIs(t, err, analysis.ErrNeedsX)
}

func TestAnalyze_GateIsConsistentAcrossRuns(t *testing.T) {
	a := newAnalyzer()
	for i := 0; i < 3; i++ {
		_, err := a.Analyze(context.Background(), "x + z")
		var ve *analysis.VariableError
		require.ErrorAs(t, err, &ve)
	}
}

// ============================================================
// 1-D branch
// ============================================================

func TestAnalyze1D_Polynomial(t *testing.T) {
	res := analyze(t, "x**2")
	assert.Equal(t, analysis.Branch1D, res.Branch)
	assert.Equal(t, analysis.VerdictContinuous, res.Continuity.Verdict)
	assert.Equal(t, analysis.VerdictDifferentiable, res.Differentiability.Verdict)
	require.NotNil(t, res.Derivative)
	assert.Equal(t, "2*x", res.Derivative.Text)

	assert.Equal(t, "+inf", res.LimitPosInf.Kind)
	assert.Equal(t, "+inf", res.LimitNegInf.Kind)

	require.Equal(t, analysis.ExtremumFound, res.GlobalMin.Status)
	assert.InDelta(t, 0, res.GlobalMin.X, 1e-9)
	assert.InDelta(t, 0, res.GlobalMin.Value, 1e-9)
	assert.Equal(t, analysis.ExtremumNone, res.GlobalMax.Status)
}

func TestAnalyze1D_NegatedParabola(t *testing.T) {
	res := analyze(t, "-x**2")
	require.Equal(t, analysis.ExtremumFound, res.GlobalMax.Status)
	assert.InDelta(t, 0, res.GlobalMax.X, 1e-9)
	assert.InDelta(t, 0, res.GlobalMax.Value, 1e-9)
	assert.Equal(t, analysis.ExtremumNone, res.GlobalMin.Status)
	assert.Equal(t, "-inf", res.LimitPosInf.Kind)
}

func TestAnalyze1D_Reciprocal(t *testing.T) {
	res := analyze(t, "1/x")
	assert.Equal(t, analysis.VerdictDiscontinuous, res.Continuity.Verdict)
	assert.Equal(t, "x = 0", res.Continuity.Excluded)
	require.NotNil(t, res.Derivative)
	assert.Equal(t, "-1*x^(-2)", res.Derivative.Text)
	assert.Equal(t, analysis.VerdictNotDifferentiable, res.Differentiability.Verdict)
	assert.Equal(t, "x = 0", res.Differentiability.Excluded)

	require.Equal(t, "finite", res.LimitPosInf.Kind)
	assert.InDelta(t, 0, *res.LimitPosInf.Value, 1e-9)
}

func TestAnalyze1D_InflectionIsNotAnExtremum(t *testing.T) {
	res := analyze(t, "x**3")
	assert.Equal(t, analysis.ExtremumNone, res.GlobalMin.Status)
	assert.Equal(t, analysis.ExtremumNone, res.GlobalMax.Status)
	require.Len(t, res.CriticalPoints, 1)
	assert.Equal(t, analysis.ClassInconclusive, res.CriticalPoints[0].Class)
}

func TestAnalyze1D_MultipleExtrema(t *testing.T) {
	// f' = 3x^2 - 3 vanishes at ±1; max at -1 (f=2), min at 1 (f=-2).
	res := analyze(t, "x**3 - 3*x")
	require.Equal(t, analysis.ExtremumFound, res.GlobalMin.Status)
	assert.InDelta(t, 1, res.GlobalMin.X, 1e-6)
	assert.InDelta(t, -2, res.GlobalMin.Value, 1e-6)
	require.Equal(t, analysis.ExtremumFound, res.GlobalMax.Status)
	assert.InDelta(t, -1, res.GlobalMax.X, 1e-6)
	assert.InDelta(t, 2, res.GlobalMax.Value, 1e-6)
}

func TestAnalyze1D_FactoredShiftedMinimum(t *testing.T) {
	// f' = 2*(x+1) stays factored after differentiation; the minimum must
	// land at -1, not at the origin.
	res := analyze(t, "(x+1)**2")
	require.Len(t, res.CriticalPoints, 1)
	cp := res.CriticalPoints[0]
	assert.Equal(t, analysis.ClassMinimum, cp.Class)
	assert.InDelta(t, -1, cp.X, 1e-6)
	require.Equal(t, analysis.ExtremumFound, res.GlobalMin.Status)
	assert.InDelta(t, -1, res.GlobalMin.X, 1e-6)
	assert.InDelta(t, 0, res.GlobalMin.Value, 1e-9)
	assert.Equal(t, analysis.ExtremumNone, res.GlobalMax.Status)
}

func TestAnalyze1D_SamplingGaps(t *testing.T) {
	res := analyze(t, "sqrt(x)")
	require.Len(t, res.Samples, 400)
	assert.False(t, res.Samples[0].Defined, "sqrt(-10) must be a gap")
	last := res.Samples[len(res.Samples)-1]
	assert.True(t, last.Defined)
	assert.InDelta(t, 10, last.X, 1e-9)
}

func TestAnalyze1D_SamplesNeverDefaultToZero(t *testing.T) {
	res := analyze(t, "log(x)")
	for _, p := range res.Samples {
		if p.X < 0 {
			assert.False(t, p.Defined, "log(%v) must be a gap, not a value", p.X)
		}
	}
}

// ============================================================
// 2-D branch
// ============================================================

func TestAnalyze2D_Paraboloid(t *testing.T) {
	res := analyze(t, "x**2 + y**2")
	assert.Equal(t, analysis.Branch2D, res.Branch)
	assert.Equal(t, analysis.VerdictContinuous, res.Continuity.Verdict)
	assert.True(t, res.Continuity.Approximate)
	require.NotNil(t, res.PartialX)
	assert.Equal(t, "2*x", res.PartialX.Text)
	assert.Equal(t, "2*y", res.PartialY.Text)

	assert.Equal(t, "+inf", res.RadialLimit.Kind)

	require.Len(t, res.CriticalPoints, 1)
	cp := res.CriticalPoints[0]
	assert.Equal(t, analysis.ClassMinimum, cp.Class)
	assert.InDelta(t, 0, cp.X, 1e-6)
	require.NotNil(t, cp.Y)
	assert.InDelta(t, 0, *cp.Y, 1e-6)
}

func TestAnalyze2D_ShiftedParaboloid(t *testing.T) {
	// Gradient component d/dx = 2*(x-1) stays factored; the minimum must
	// land at (1, 0).
	res := analyze(t, "(x-1)**2 + y**2")
	require.Len(t, res.CriticalPoints, 1)
	cp := res.CriticalPoints[0]
	assert.Equal(t, analysis.ClassMinimum, cp.Class)
	assert.InDelta(t, 1, cp.X, 1e-6)
	require.NotNil(t, cp.Y)
	assert.InDelta(t, 0, *cp.Y, 1e-6)
	assert.Equal(t, "+inf", res.RadialLimit.Kind)
}

func TestAnalyze2D_Saddle(t *testing.T) {
	res := analyze(t, "x**2 - y**2")
	require.Len(t, res.CriticalPoints, 1)
	assert.Equal(t, analysis.ClassSaddle, res.CriticalPoints[0].Class)
	assert.Equal(t, "undetermined", res.RadialLimit.Kind)
}

func TestAnalyze2D_CoupledSaddle(t *testing.T) {
	res := analyze(t, "x*y")
	require.Len(t, res.CriticalPoints, 1)
	assert.Equal(t, analysis.ClassSaddle, res.CriticalPoints[0].Class)
}

func TestAnalyze2D_InvertedParaboloidMaximum(t *testing.T) {
	res := analyze(t, "-x**2 - y**2")
	require.Len(t, res.CriticalPoints, 1)
	assert.Equal(t, analysis.ClassMaximum, res.CriticalPoints[0].Class)
	assert.Equal(t, "-inf", res.RadialLimit.Kind)
}

func TestAnalyze2D_PerAxisDiscontinuity(t *testing.T) {
	res := analyze(t, "1/x + 1/y")
	assert.Equal(t, analysis.VerdictDiscontinuous, res.Continuity.Verdict)
	assert.Contains(t, res.Continuity.Excluded, "x = 0")
	assert.Contains(t, res.Continuity.Excluded, "y = 0")
}

func TestAnalyze2D_SurfaceGaps(t *testing.T) {
	res := analyze(t, "sqrt(x + y)")
	require.NotNil(t, res.Surface)
	require.Len(t, res.Surface.Xs, 100)
	require.Len(t, res.Surface.Values, 100)
	assert.False(t, res.Surface.Defined[0][0], "sqrt(-20) must be a gap")
	assert.True(t, res.Surface.Defined[99][99])
}

// ============================================================
// Result invariants
// ============================================================

func TestAnalyze_ResultEchoesInput(t *testing.T) {
	res := analyze(t, "x**2 + 1")
	assert.Equal(t, "x**2 + 1", res.Input)
	assert.Equal(t, "x^2 + 1", res.Expression)
	assert.Equal(t, []string{"x"}, res.Variables)
}

func TestAnalyze_Idempotent(t *testing.T) {
	a := newAnalyzer()
	first, err := a.Analyze(context.Background(), "sin(x)/x + x**2")
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), "sin(x)/x + x**2")
	require.NoError(t, err)

	j1, err := json.Marshal(first)
	require.NoError(t, err)
	j2, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(j1), string(j2))
}

func TestAnalyze_AbandonedRequestDegrades(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // the caller gave up before any step ran
	res, err := newAnalyzer().Analyze(ctx, "x**2")
	require.NoError(t, err)
	assert.Equal(t, analysis.VerdictUndetermined, res.Continuity.Verdict)
	assert.True(t, res.Derivative.Undetermined)
	assert.Equal(t, "undetermined", res.LimitPosInf.Kind)
	assert.Equal(t, analysis.ExtremumUndetermined, res.GlobalMin.Status)
	// Sampling is bounded work and still runs.
	assert.Len(t, res.Samples, 400)
}

func TestVariableError_Message(t *testing.T) {
	err := &analysis.VariableError{Names: []string{"z", "w"}}
	assert.Equal(t, "analysis: unsupported variables: z, w", err.Error())
	var target *analysis.VariableError
	assert.True(t, errors.As(err, &target))
}
