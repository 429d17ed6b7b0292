package symbolic

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Interval is a connected subset of the extended real line. Lo/Hi may be
// ±Inf (always open at an infinite endpoint). A degenerate closed interval
// [a, a] represents a single point.
type Interval struct {
	Lo, Hi         float64
	LoOpen, HiOpen bool
}

func Point(v float64) Interval { return Interval{Lo: v, Hi: v} }

func OpenBelow(hi float64, hiOpen bool) Interval {
	return Interval{Lo: math.Inf(-1), LoOpen: true, Hi: hi, HiOpen: hiOpen}
}

func OpenAbove(lo float64, loOpen bool) Interval {
	return Interval{Lo: lo, LoOpen: loOpen, Hi: math.Inf(1), HiOpen: true}
}

func (iv Interval) IsPoint() bool { return iv.Lo == iv.Hi && !iv.LoOpen && !iv.HiOpen }

func (iv Interval) empty() bool {
	if iv.Lo > iv.Hi {
		return true
	}
	return iv.Lo == iv.Hi && (iv.LoOpen || iv.HiOpen)
}

func (iv Interval) String() string {
	if iv.IsPoint() {
		return fmt.Sprintf("{%s}", fmtEndpoint(iv.Lo))
	}
	lb, rb := "[", "]"
	if iv.LoOpen {
		lb = "("
	}
	if iv.HiOpen {
		rb = ")"
	}
	return fmt.Sprintf("%s%s, %s%s", lb, fmtEndpoint(iv.Lo), fmtEndpoint(iv.Hi), rb)
}

func fmtEndpoint(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return fmtFloat(v)
}

func fmtFloat(v float64) string {
	// Snap near-integers so solver output reads cleanly.
	if r := math.Round(v); math.Abs(v-r) < 1e-9 {
		return fmt.Sprintf("%g", r)
	}
	return fmt.Sprintf("%g", v)
}

// Set is a union of intervals, kept sorted and non-overlapping.
type Set struct{ ivs []Interval }

func EmptySet() Set  { return Set{} }
func EntireSet() Set { return SetOf(Interval{Lo: math.Inf(-1), LoOpen: true, Hi: math.Inf(1), HiOpen: true}) }

func SetOf(ivs ...Interval) Set {
	s := Set{}
	for _, iv := range ivs {
		if !iv.empty() {
			s.ivs = append(s.ivs, iv)
		}
	}
	s.normalize()
	return s
}

func (s *Set) normalize() {
	if len(s.ivs) < 2 {
		return
	}
	sort.Slice(s.ivs, func(i, j int) bool {
		if s.ivs[i].Lo != s.ivs[j].Lo {
			return s.ivs[i].Lo < s.ivs[j].Lo
		}
		return !s.ivs[i].LoOpen && s.ivs[j].LoOpen
	})
	merged := []Interval{s.ivs[0]}
	for _, iv := range s.ivs[1:] {
		last := &merged[len(merged)-1]
		if joinable(*last, iv) {
			if iv.Hi > last.Hi || (iv.Hi == last.Hi && !iv.HiOpen) {
				last.Hi, last.HiOpen = iv.Hi, iv.HiOpen
			}
		} else {
			merged = append(merged, iv)
		}
	}
	s.ivs = merged
}

// joinable reports whether b overlaps or abuts a (assuming a.Lo <= b.Lo).
func joinable(a, b Interval) bool {
	if b.Lo < a.Hi {
		return true
	}
	if b.Lo == a.Hi {
		return !(a.HiOpen && b.LoOpen)
	}
	return false
}

func (s Set) IsEmpty() bool { return len(s.ivs) == 0 }

func (s Set) IsEntire() bool {
	return len(s.ivs) == 1 &&
		math.IsInf(s.ivs[0].Lo, -1) && math.IsInf(s.ivs[0].Hi, 1)
}

func (s Set) Intervals() []Interval { return append([]Interval(nil), s.ivs...) }

func (s Set) Contains(v float64) bool {
	for _, iv := range s.ivs {
		if v < iv.Lo || (v == iv.Lo && iv.LoOpen) {
			continue
		}
		if v > iv.Hi || (v == iv.Hi && iv.HiOpen) {
			continue
		}
		return true
	}
	return false
}

func (s Set) Union(o Set) Set {
	return SetOf(append(s.Intervals(), o.ivs...)...)
}

func (s Set) Intersect(o Set) Set {
	out := []Interval{}
	for _, a := range s.ivs {
		for _, b := range o.ivs {
			iv := intersectIntervals(a, b)
			if !iv.empty() {
				out = append(out, iv)
			}
		}
	}
	return SetOf(out...)
}

func intersectIntervals(a, b Interval) Interval {
	lo, loOpen := a.Lo, a.LoOpen
	if b.Lo > lo || (b.Lo == lo && b.LoOpen) {
		lo, loOpen = b.Lo, b.LoOpen
	}
	hi, hiOpen := a.Hi, a.HiOpen
	if b.Hi < hi || (b.Hi == hi && b.HiOpen) {
		hi, hiOpen = b.Hi, b.HiOpen
	}
	return Interval{Lo: lo, LoOpen: loOpen, Hi: hi, HiOpen: hiOpen}
}

// Complement returns ℝ minus s.
func (s Set) Complement() Set {
	if s.IsEmpty() {
		return EntireSet()
	}
	out := []Interval{}
	cursorLo := math.Inf(-1)
	cursorOpen := true
	for _, iv := range s.ivs {
		gap := Interval{Lo: cursorLo, LoOpen: cursorOpen, Hi: iv.Lo, HiOpen: !iv.LoOpen}
		if !gap.empty() {
			out = append(out, gap)
		}
		cursorLo, cursorOpen = iv.Hi, !iv.HiOpen
	}
	tail := Interval{Lo: cursorLo, LoOpen: cursorOpen, Hi: math.Inf(1), HiOpen: true}
	if !tail.empty() {
		out = append(out, tail)
	}
	return SetOf(out...)
}

func (s Set) String() string {
	if s.IsEmpty() {
		return "{}"
	}
	parts := make([]string, len(s.ivs))
	for i, iv := range s.ivs {
		parts[i] = iv.String()
	}
	return strings.Join(parts, " U ")
}
