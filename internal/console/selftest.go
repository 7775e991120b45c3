package console

import (
	"context"
	"math"

	"github.com/okian/echochamber/pkg/logger"
)

// selfTestTolerance bounds the distance between a prediction and its expectation.
const selfTestTolerance = 1e-9

// SelfTestCase is one built-in check.
type SelfTestCase struct {
	Name     string
	Sequence []float64
	Next     float64
	Fail     bool
}

// SelfTestCases returns the built-in checks run by menu choice 6.
func SelfTestCases() []SelfTestCase {
	return []SelfTestCase{
		{Name: "Arithmetic (difference = 1)", Sequence: []float64{1, 2, 3, 4, 5}, Next: 6},
		{Name: "Arithmetic (difference = 2)", Sequence: []float64{2, 4, 6, 8}, Next: 10},
		{Name: "Arithmetic (negative difference)", Sequence: []float64{20, 15, 10, 5}, Next: 0},
		{Name: "Arithmetic (decimal numbers)", Sequence: []float64{1.5, 2.5, 3.5, 4.5}, Next: 5.5},
		{Name: "Arithmetic (difference = 0)", Sequence: []float64{5, 5, 5, 5}, Next: 5},
		{Name: "Geometric (ratio = 2)", Sequence: []float64{1, 2, 4, 8}, Next: 16},
		{Name: "Polynomial (perfect squares)", Sequence: []float64{1, 4, 9, 16}, Next: 25},
		{Name: "Single number (should fail)", Sequence: []float64{5}, Fail: true},
		{Name: "Cubes (should fail)", Sequence: []float64{1, 8, 27, 64}, Fail: true},
	}
}

// SelfTest runs SelfTestCases against the engine without touching the
// history and reports each result. It returns the pass and fail counts.
func (c *Console) SelfTest(ctx context.Context) (passed, failed int) {
	cases := SelfTestCases()
	c.printf("\nRUNNING SELF-TEST:\n\n")

	for i, tc := range cases {
		a, err := c.analyzer.Analyze(tc.Sequence)
		switch {
		case tc.Fail && err != nil:
			c.printf("  PASS %d: %s\n       correctly rejected: %v\n", i+1, tc.Name, err)
			passed++
		case tc.Fail:
			c.printf("  FAIL %d: %s\n       should have failed, got %s\n", i+1, tc.Name, a.Pattern.Type)
			failed++
		case err != nil:
			c.printf("  FAIL %d: %s\n       error: %v\n", i+1, tc.Name, err)
			failed++
		case math.Abs(a.Predicted-tc.Next) > selfTestTolerance:
			c.printf("  FAIL %d: %s\n       got %s, expected %s\n", i+1, tc.Name, formatNumber(a.Predicted), formatNumber(tc.Next))
			failed++
		default:
			c.printf("  PASS %d: %s\n       got %s (%s)\n", i+1, tc.Name, formatNumber(a.Predicted), a.Pattern.Type)
			passed++
		}
	}

	c.printf("\n  Results: %d passed, %d failed out of %d tests\n\n", passed, failed, len(cases))
	c.logger.Debug(ctx, "self-test complete",
		logger.Int("passed", passed),
		logger.Int("failed", failed),
	)
	return passed, failed
}
