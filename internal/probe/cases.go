package probe

import (
	"strconv"

	"github.com/okian/echochamber/internal/domain/sequence"
)

// Case categories.
const (
	CategoryArithmetic  = "arithmetic"
	CategoryGeometric   = "geometric"
	CategoryPolynomial  = "polynomial"
	CategoryEdge        = "edge"
	CategoryError       = "error"
	CategoryPerformance = "performance"
)

// PerformanceSizes are the lengths of the long arithmetic sequences.
var PerformanceSizes = []int{10, 100, 1000, 10000} //nolint:gochecknoglobals // reference data

// Catalogue returns the reference cases, performance cases included.
func Catalogue() []Case {
	cases := []Case{
		{Name: "Simple +1", Category: CategoryArithmetic, Sequence: []float64{1, 2, 3, 4, 5}, Pattern: sequence.Arithmetic, Next: 6},
		{Name: "Difference of 2", Category: CategoryArithmetic, Sequence: []float64{2, 4, 6, 8, 10}, Pattern: sequence.Arithmetic, Next: 12},
		{Name: "Negative difference", Category: CategoryArithmetic, Sequence: []float64{100, 75, 50, 25, 0}, Pattern: sequence.Arithmetic, Next: -25},
		{Name: "Large numbers", Category: CategoryArithmetic, Sequence: []float64{1e6, 2e6, 3e6}, Pattern: sequence.Arithmetic, Next: 4e6},
		{Name: "Decimal progression", Category: CategoryArithmetic, Sequence: []float64{0.5, 1, 1.5, 2, 2.5}, Pattern: sequence.Arithmetic, Next: 3},
		{Name: "Negative numbers", Category: CategoryArithmetic, Sequence: []float64{-5, -3, -1, 1, 3}, Pattern: sequence.Arithmetic, Next: 5},
		{Name: "Zero difference", Category: CategoryArithmetic, Sequence: []float64{7, 7, 7, 7}, Pattern: sequence.Arithmetic, Next: 7},

		{Name: "Ratio of 2", Category: CategoryGeometric, Sequence: []float64{1, 2, 4, 8, 16}, Pattern: sequence.Geometric, Next: 32},
		{Name: "Ratio of 3", Category: CategoryGeometric, Sequence: []float64{2, 6, 18, 54}, Pattern: sequence.Geometric, Next: 162},
		{Name: "Fractional ratio", Category: CategoryGeometric, Sequence: []float64{16, 8, 4, 2, 1}, Pattern: sequence.Geometric, Next: 0.5},
		{Name: "Negative ratio", Category: CategoryGeometric, Sequence: []float64{1, -2, 4, -8, 16}, Pattern: sequence.Geometric, Next: -32},
		{Name: "Large ratio", Category: CategoryGeometric, Sequence: []float64{1, 10, 100, 1000}, Pattern: sequence.Geometric, Next: 10000},

		{Name: "Perfect squares", Category: CategoryPolynomial, Sequence: []float64{1, 4, 9, 16, 25}, Pattern: sequence.Polynomial, Next: 36},
		{Name: "Triangular numbers", Category: CategoryPolynomial, Sequence: []float64{1, 3, 6, 10, 15}, Pattern: sequence.Polynomial, Next: 21},
		{Name: "Growing gaps", Category: CategoryPolynomial, Sequence: []float64{1, 2, 4, 7, 11}, Pattern: sequence.Polynomial, Next: 16},
		{Name: "Offset squares", Category: CategoryPolynomial, Sequence: []float64{2, 5, 10, 17}, Pattern: sequence.Polynomial, Next: 26},

		{Name: "Minimum length", Category: CategoryEdge, Sequence: []float64{1, 2}, Pattern: sequence.Arithmetic, Next: 3},
		{Name: "Mixed signs", Category: CategoryEdge, Sequence: []float64{-2, 0, 2, 4, 6}, Pattern: sequence.Arithmetic, Next: 8},
		{Name: "Cubes", Category: CategoryEdge, Sequence: []float64{1, 8, 27, 64}, Fail: true},
		{Name: "No law", Category: CategoryEdge, Sequence: []float64{1, 2, 4, 7, 12}, Fail: true},

		{Name: "Single element", Category: CategoryError, Sequence: []float64{5}, Fail: true},
		{Name: "Empty array", Category: CategoryError, Sequence: []float64{}, Fail: true},
		{Name: "Contains non-number", Category: CategoryError, Sequence: []any{1, 2, "three"}, Fail: true},
		{Name: "Null input", Category: CategoryError, Sequence: nil, Fail: true},
		{Name: "String input", Category: CategoryError, Sequence: "not an array", Fail: true},
	}
	return append(cases, performanceCases(PerformanceSizes)...)
}

func performanceCases(sizes []int) []Case {
	out := make([]Case, 0, len(sizes))
	for _, n := range sizes {
		seq := make([]float64, n)
		for i := range seq {
			seq[i] = float64(i + 1)
		}
		out = append(out, Case{
			Name:     "Sequence of " + strconv.Itoa(n) + " elements",
			Category: CategoryPerformance,
			Sequence: seq,
			Pattern:  sequence.Arithmetic,
			Next:     float64(n + 1),
		})
	}
	return out
}
