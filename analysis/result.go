// Package analysis classifies properties of a function of one or two real
// variables: continuity, differentiability, derivatives, behavior at
// infinity, and extrema. Each analysis step is isolated; a step that fails
// or times out degrades its own field to an undetermined marker while the
// remaining steps still run.
package analysis

import "strings"

// Branch selects which analysis ran.
type Branch string

const (
	Branch1D Branch = "1d"
	Branch2D Branch = "2d"
)

// Verdict is the outcome of a continuity or differentiability check.
type Verdict string

const (
	VerdictContinuous        Verdict = "continuous"
	VerdictDiscontinuous     Verdict = "discontinuous"
	VerdictDifferentiable    Verdict = "differentiable"
	VerdictNotDifferentiable Verdict = "not_differentiable"
	VerdictUndetermined      Verdict = "undetermined"
)

// Continuity reports where the function is defined. Approximate is set on
// the 2-D branch, where per-axis domains stand in for joint continuity.
type Continuity struct {
	Verdict     Verdict `json:"verdict"`
	Excluded    string  `json:"excluded,omitempty"`
	Approximate bool    `json:"approximate,omitempty"`
}

// Differentiability reports where the derivative(s) are defined.
type Differentiability struct {
	Verdict     Verdict `json:"verdict"`
	Excluded    string  `json:"excluded,omitempty"`
	Approximate bool    `json:"approximate,omitempty"`
}

// Formula is a symbolic rendering, or an undetermined marker when its
// computation failed.
type Formula struct {
	Text         string `json:"text,omitempty"`
	Undetermined bool   `json:"undetermined,omitempty"`
}

// LimitValue is a limit at an infinite endpoint.
// Kind is one of "finite", "+inf", "-inf", "undetermined".
type LimitValue struct {
	Kind  string   `json:"kind"`
	Value *float64 `json:"value,omitempty"`
}

// PointClass tags a critical point.
type PointClass string

const (
	ClassMinimum        PointClass = "minimum"
	ClassMaximum        PointClass = "maximum"
	ClassSaddle         PointClass = "saddle"
	ClassInconclusive   PointClass = "inconclusive"
	ClassUnclassifiable PointClass = "unclassifiable"
)

// CriticalPoint is a location where the first derivative(s) vanish. Y is
// set only on the 2-D branch; Value is the function value when it could be
// evaluated.
type CriticalPoint struct {
	X     float64    `json:"x"`
	Y     *float64   `json:"y,omitempty"`
	Value *float64   `json:"value,omitempty"`
	Class PointClass `json:"class"`
}

// Extremum statuses distinguish "no extremum of this kind exists among the
// candidates" from "the search itself failed".
const (
	ExtremumFound        = "found"
	ExtremumNone         = "none"
	ExtremumUndetermined = "undetermined"
)

// Extremum is a global minimum or maximum candidate selected among the
// classified critical points.
type Extremum struct {
	Status string  `json:"status"`
	X      float64 `json:"x,omitempty"`
	Value  float64 `json:"value,omitempty"`
}

// SamplePoint is one numeric evaluation for the 1-D plot. Defined=false
// marks a gap (domain error, overflow); Value is meaningless there.
type SamplePoint struct {
	X       float64 `json:"x"`
	Value   float64 `json:"value"`
	Defined bool    `json:"defined"`
}

// SurfaceGrid is the 2-D sample lattice: Values[i][j] and Defined[i][j]
// correspond to the point (Xs[i], Ys[j]).
type SurfaceGrid struct {
	Xs      []float64   `json:"xs"`
	Ys      []float64   `json:"ys"`
	Values  [][]float64 `json:"values"`
	Defined [][]bool    `json:"defined"`
}

// Result aggregates one full analysis pass. It echoes the input string so a
// renderer can never pair these fields with a different expression, and is
// not mutated after Analyze returns.
type Result struct {
	Input      string   `json:"input"`
	Expression string   `json:"expression"`
	Variables  []string `json:"variables"`
	Branch     Branch   `json:"branch"`

	Continuity        Continuity        `json:"continuity"`
	Differentiability Differentiability `json:"differentiability"`

	// 1-D branch.
	Derivative  *Formula      `json:"derivative,omitempty"`
	LimitPosInf *LimitValue   `json:"limit_pos_inf,omitempty"`
	LimitNegInf *LimitValue   `json:"limit_neg_inf,omitempty"`
	GlobalMin   *Extremum     `json:"global_min,omitempty"`
	GlobalMax   *Extremum     `json:"global_max,omitempty"`
	Samples     []SamplePoint `json:"samples,omitempty"`

	// 2-D branch.
	PartialX       *Formula        `json:"partial_x,omitempty"`
	PartialY       *Formula        `json:"partial_y,omitempty"`
	RadialLimit    *LimitValue     `json:"radial_limit,omitempty"`
	CriticalPoints []CriticalPoint `json:"critical_points,omitempty"`
	Surface        *SurfaceGrid    `json:"surface,omitempty"`
}

func undeterminedLimit() *LimitValue { return &LimitValue{Kind: "undetermined"} }

func joinExcluded(parts ...string) string {
	nonEmpty := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "; ")
}
