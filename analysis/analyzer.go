package analysis

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/funcscope/funcscope/symbolic"
)

// DefaultStepTimeout bounds each symbolic step (derivative, limit, solve).
// Solving transcendental equations can take superlinear time on adversarial
// input; a step that runs past its deadline degrades to Undetermined
// instead of hanging the request.
const DefaultStepTimeout = 2 * time.Second

var (
	// ErrNoVariables rejects constant expressions: there is nothing to
	// analyze.
	ErrNoVariables = errors.New("analysis: expression has no free variables")

	// ErrNeedsX rejects single-variable input in y alone; the 1-D branch
	// analyzes x.
	ErrNeedsX = errors.New("analysis: single-variable analysis requires x")
)

// VariableError rejects expressions whose free symbols stray outside the
// {x, y} alphabet.
type VariableError struct {
	Names []string
}

func (e *VariableError) Error() string {
	return "analysis: unsupported variables: " + strings.Join(e.Names, ", ")
}

// Analyzer runs one full analysis pass per call. It holds no per-request
// state, so a single Analyzer is safe for concurrent use.
type Analyzer struct {
	stepTimeout time.Duration
	logger      *slog.Logger
}

type Option func(*Analyzer)

func WithStepTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.stepTimeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		stepTimeout: DefaultStepTimeout,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze parses the input and runs the branch its variables select.
// Parse failures and variable-gate failures return an error with no
// partial result; step failures inside a branch degrade single fields.
func (a *Analyzer) Analyze(ctx context.Context, input string) (*Result, error) {
	expr, err := symbolic.Parse(input)
	if err != nil {
		return nil, err
	}
	vars := symbolic.FreeSymbolNames(expr)
	branch, err := selectBranch(vars)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Input:      input,
		Expression: expr.String(),
		Variables:  vars,
		Branch:     branch,
	}
	start := time.Now()
	switch branch {
	case Branch1D:
		a.analyze1D(ctx, res, expr)
	case Branch2D:
		a.analyze2D(ctx, res, expr)
	}
	a.logger.InfoContext(ctx, "analysis complete",
		"expression", res.Expression,
		"branch", string(branch),
		"duration", time.Since(start))
	return res, nil
}

// selectBranch applies the variable gate: x alone runs the 1-D branch,
// {x, y} the 2-D branch, anything else is rejected explicitly.
func selectBranch(vars []string) (Branch, error) {
	hasX, hasY := false, false
	var extra []string
	for _, v := range vars {
		switch v {
		case "x":
			hasX = true
		case "y":
			hasY = true
		default:
			extra = append(extra, v)
		}
	}
	if len(extra) > 0 {
		return "", &VariableError{Names: extra}
	}
	switch {
	case hasX && hasY:
		return Branch2D, nil
	case hasX:
		return Branch1D, nil
	case hasY:
		return "", ErrNeedsX
	}
	return "", ErrNoVariables
}

// runStep executes fn under the analyzer's step deadline, recovering
// panics. The computed value crosses back over a channel, so a timed-out
// computation can never write into a result another step is reading.
func runStep[T any](ctx context.Context, a *Analyzer, name string, fn func() T) (T, bool) {
	ctx, cancel := context.WithTimeout(ctx, a.stepTimeout)
	defer cancel()

	type outcome struct {
		v  T
		ok bool
	}
	// A request abandoned before this step starts is not worth computing.
	select {
	case <-ctx.Done():
		a.logger.DebugContext(ctx, "analysis step",
			"step", name, "duration", time.Duration(0), "degraded", true)
		var zero T
		return zero, false
	default:
	}
	ch := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{ok: false}
			}
		}()
		ch <- outcome{v: fn(), ok: true}
	}()

	start := time.Now()
	var out outcome
	select {
	case out = <-ch:
	case <-ctx.Done():
	}
	a.logger.DebugContext(ctx, "analysis step",
		"step", name,
		"duration", time.Since(start),
		"degraded", !out.ok)
	if !out.ok {
		var zero T
		return zero, false
	}
	return out.v, true
}

// limitValue converts a symbolic limit into its result form.
func limitValue(lim symbolic.InfLimit) *LimitValue {
	switch lim.Kind {
	case symbolic.LimitFinite:
		v := lim.Value
		return &LimitValue{Kind: lim.Kind.String(), Value: &v}
	case symbolic.LimitPosInf, symbolic.LimitNegInf:
		return &LimitValue{Kind: lim.Kind.String()}
	}
	return undeterminedLimit()
}

// continuityReport maps a computed domain to a verdict. An inexact domain
// means the analysis could not decide, not that the function is fine.
func continuityReport(d symbolic.Domain, name string, approximate bool) Continuity {
	switch {
	case !d.Exact:
		return Continuity{Verdict: VerdictUndetermined, Approximate: approximate}
	case d.IsEntire():
		return Continuity{Verdict: VerdictContinuous, Approximate: approximate}
	}
	return Continuity{
		Verdict:     VerdictDiscontinuous,
		Excluded:    d.DescribeExcluded(name),
		Approximate: approximate,
	}
}
