package probe

import (
	"fmt"
	"math"
	"net/http"

	"github.com/okian/echochamber/internal/domain/types"
)

// predictionTolerance is how far a prediction may drift from the expected value.
const predictionTolerance = 1e-4

// verify checks one answer against the case's expectation. status is 0 for
// batch elements, which carry no status of their own.
func verify(c Case, status int, res types.AnalysisResult) error {
	if c.Fail {
		if res.Success {
			return fmt.Errorf("expected failure, got %s pattern", patternOf(res))
		}
		if status != 0 && status != http.StatusBadRequest {
			return fmt.Errorf("expected status 400, got %d", status)
		}
		if res.Error == "" {
			return fmt.Errorf("failure carries no error message")
		}
		return nil
	}

	if status != 0 && status != http.StatusOK {
		return fmt.Errorf("expected status 200, got %d: %s", status, res.Error)
	}
	if !res.Success || res.Pattern == nil || res.Predicted == nil {
		return fmt.Errorf("expected success, got error %q", res.Error)
	}
	if res.Pattern.Type != c.Pattern {
		return fmt.Errorf("expected pattern %s, got %s", c.Pattern, res.Pattern.Type)
	}
	if math.Abs(*res.Predicted-c.Next) >= predictionTolerance {
		return fmt.Errorf("expected next %v, got %v", c.Next, *res.Predicted)
	}
	if len(res.NextFive) != 5 || math.Abs(res.NextFive[0]-c.Next) >= predictionTolerance {
		return fmt.Errorf("forecast %v does not start at %v", res.NextFive, c.Next)
	}
	return nil
}

func patternOf(res types.AnalysisResult) string {
	if res.Pattern == nil {
		return ""
	}
	return string(res.Pattern.Type)
}

// outcomeOf builds an Outcome from a verified answer.
func outcomeOf(c Case, endpoint string, status int, res types.AnalysisResult) Outcome {
	o := Outcome{
		Case:      c,
		Endpoint:  endpoint,
		Status:    status,
		Pattern:   patternOf(res),
		Predicted: res.Predicted,
		Error:     res.Error,
	}
	if err := verify(c, status, res); err != nil {
		o.Reason = err.Error()
		return o
	}
	o.Passed = true
	return o
}
