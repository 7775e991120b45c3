package sequence

import "math"

// Tolerances for the floating-point detectors. These are part of the
// classification contract; changing them changes which sequences match.
const (
	RatioTolerance            = 1e-10
	SecondDifferenceTolerance = 1e-10
)

// minQuadraticLength is the shortest sequence that yields two second
// differences.
const minQuadraticLength = 4

// Detector recognises one generating law.
type Detector interface {
	// Type names the law this detector recognises.
	Type() PatternType
	// TryMatch returns the pattern when seq follows the law.
	TryMatch(seq []float64) (Pattern, bool)
}

// DefaultDetectors returns the fixed detection chain in priority order.
func DefaultDetectors() []Detector {
	return []Detector{ArithmeticDetector{}, GeometricDetector{}, QuadraticDetector{}}
}

// ArithmeticDetector matches sequences whose consecutive differences are
// exactly equal.
type ArithmeticDetector struct{}

// Type implements Detector.
func (ArithmeticDetector) Type() PatternType { return Arithmetic }

// TryMatch implements Detector.
func (ArithmeticDetector) TryMatch(seq []float64) (Pattern, bool) {
	if len(seq) < MinLength {
		return Pattern{}, false
	}
	d := seq[1] - seq[0]
	if !isFinite(d) {
		return Pattern{}, false
	}
	for i := 2; i < len(seq); i++ {
		if seq[i]-seq[i-1] != d {
			return Pattern{}, false
		}
	}
	return NewArithmetic(d), true
}

// GeometricDetector matches zero-free sequences whose consecutive ratios
// agree within RatioTolerance.
type GeometricDetector struct{}

// Type implements Detector.
func (GeometricDetector) Type() PatternType { return Geometric }

// TryMatch implements Detector.
func (GeometricDetector) TryMatch(seq []float64) (Pattern, bool) {
	if len(seq) < MinLength {
		return Pattern{}, false
	}
	for _, v := range seq {
		if v == 0 {
			return Pattern{}, false
		}
	}
	r := seq[1] / seq[0]
	if !isFinite(r) {
		return Pattern{}, false
	}
	for i := 2; i < len(seq); i++ {
		if math.Abs(seq[i]/seq[i-1]-r) > RatioTolerance {
			return Pattern{}, false
		}
	}
	return NewGeometric(r), true
}

// QuadraticDetector matches sequences of at least four elements whose second
// differences agree within SecondDifferenceTolerance. It never fits degree
// three or higher.
type QuadraticDetector struct{}

// Type implements Detector.
func (QuadraticDetector) Type() PatternType { return Polynomial }

// TryMatch implements Detector.
func (QuadraticDetector) TryMatch(seq []float64) (Pattern, bool) {
	if len(seq) < minQuadraticLength {
		return Pattern{}, false
	}
	second := secondDifferences(firstDifferences(seq))
	d2 := second[0]
	if !isFinite(d2) {
		return Pattern{}, false
	}
	for _, v := range second {
		if !(math.Abs(v-d2) < SecondDifferenceTolerance) {
			return Pattern{}, false
		}
	}
	return NewQuadratic(d2), true
}

func firstDifferences(seq []float64) []float64 {
	out := make([]float64, len(seq)-1)
	for i := 1; i < len(seq); i++ {
		out[i-1] = seq[i] - seq[i-1]
	}
	return out
}

func secondDifferences(first []float64) []float64 {
	out := make([]float64, len(first)-1)
	for i := 1; i < len(first); i++ {
		out[i-1] = first[i] - first[i-1]
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
