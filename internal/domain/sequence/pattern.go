// Package sequence detects the generating law of a short numeric sequence
// and extrapolates it forward.
//
// Detection runs a fixed chain of detectors (arithmetic, geometric,
// quadratic) and reports the first match. Every call is a pure function of
// its input; the package holds no mutable state.
package sequence

// PatternType names a generating law.
type PatternType string

// Known pattern types, in detection priority order.
const (
	Arithmetic PatternType = "arithmetic"
	Geometric  PatternType = "geometric"
	Polynomial PatternType = "polynomial"
)

// PatternTypes lists every pattern type in detection priority order.
func PatternTypes() []PatternType {
	return []PatternType{Arithmetic, Geometric, Polynomial}
}

// FullConfidence is the confidence attached to every accepted pattern.
const FullConfidence = 1.0

// quadraticDegree is the only polynomial degree the engine detects.
const quadraticDegree = 2

// Pattern describes a detected law. Only the parameters of its Type are set;
// the others stay nil so that a zero difference still serialises.
type Pattern struct {
	Type       PatternType `json:"type" msgpack:"type"`
	Confidence float64     `json:"confidence" msgpack:"confidence"`

	// Arithmetic.
	CommonDifference *float64 `json:"commonDifference,omitempty" msgpack:"commonDifference,omitempty"`

	// Geometric.
	CommonRatio *float64 `json:"commonRatio,omitempty" msgpack:"commonRatio,omitempty"`

	// Polynomial: second difference = 2a for y = ax^2 + bx + c.
	Degree             int      `json:"degree,omitempty" msgpack:"degree,omitempty"`
	LeadingCoefficient *float64 `json:"leadingCoefficient,omitempty" msgpack:"leadingCoefficient,omitempty"`
	SecondDifference   *float64 `json:"secondDifference,omitempty" msgpack:"secondDifference,omitempty"`
}

// NewArithmetic returns an arithmetic pattern with common difference d.
func NewArithmetic(d float64) Pattern {
	return Pattern{Type: Arithmetic, Confidence: FullConfidence, CommonDifference: &d}
}

// NewGeometric returns a geometric pattern with common ratio r.
func NewGeometric(r float64) Pattern {
	return Pattern{Type: Geometric, Confidence: FullConfidence, CommonRatio: &r}
}

// NewQuadratic returns a degree-2 polynomial pattern from its constant
// second difference.
func NewQuadratic(secondDiff float64) Pattern {
	a := secondDiff / 2
	return Pattern{
		Type:               Polynomial,
		Confidence:         FullConfidence,
		Degree:             quadraticDegree,
		LeadingCoefficient: &a,
		SecondDifference:   &secondDiff,
	}
}

// Difference returns the common difference, or 0 for non-arithmetic patterns.
func (p Pattern) Difference() float64 { return deref(p.CommonDifference) }

// Ratio returns the common ratio, or 0 for non-geometric patterns.
func (p Pattern) Ratio() float64 { return deref(p.CommonRatio) }

// Leading returns the leading coefficient, or 0 for non-polynomial patterns.
func (p Pattern) Leading() float64 { return deref(p.LeadingCoefficient) }

// SecondDiff returns the constant second difference, or 0 for non-polynomial patterns.
func (p Pattern) SecondDiff() float64 { return deref(p.SecondDifference) }

// Regenerate rebuilds len(seq) terms from the pattern parameters and the
// first element of seq (plus its first difference for polynomials).
func (p Pattern) Regenerate(seq []float64) []float64 {
	if len(seq) == 0 {
		return nil
	}
	out := make([]float64, len(seq))
	out[0] = seq[0]
	switch p.Type {
	case Arithmetic:
		for i := 1; i < len(out); i++ {
			out[i] = out[i-1] + p.Difference()
		}
	case Geometric:
		for i := 1; i < len(out); i++ {
			out[i] = out[i-1] * p.Ratio()
		}
	case Polynomial:
		if len(seq) < 2 {
			return out
		}
		diff := seq[1] - seq[0]
		out[1] = seq[1]
		for i := 2; i < len(out); i++ {
			diff += p.SecondDiff()
			out[i] = out[i-1] + diff
		}
	default:
		copy(out, seq)
	}
	return out
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
