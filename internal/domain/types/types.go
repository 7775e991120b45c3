// Package types contains the wire shapes shared by the HTTP API and its clients.
package types

import (
	"time"

	"github.com/okian/echochamber/internal/domain/sequence"
)

// AnalysisResult is the body of a single analysis, also used per element in
// batch responses. On failure only Success and Error are set.
type AnalysisResult struct {
	Success   bool              `json:"success" msgpack:"success"`
	Pattern   *sequence.Pattern `json:"pattern,omitempty" msgpack:"pattern,omitempty"`
	Predicted *float64          `json:"predicted,omitempty" msgpack:"predicted,omitempty"`
	NextFive  []float64         `json:"nextFive,omitempty" msgpack:"nextFive,omitempty"`
	Error     string            `json:"error,omitempty" msgpack:"error,omitempty"`
}

// FromAnalysis builds a successful result.
func FromAnalysis(a sequence.Analysis) AnalysisResult {
	p := a.Pattern
	predicted := a.Predicted
	return AnalysisResult{
		Success:   true,
		Pattern:   &p,
		Predicted: &predicted,
		NextFive:  a.NextFive,
	}
}

// FromError builds a failed result. Errors that are not analysis failures are
// reported as internal errors so their text never reaches clients.
func FromError(err error) AnalysisResult {
	if sequence.KindOf(err) == "" {
		err = sequence.Internal()
	}
	return AnalysisResult{Error: err.Error()}
}

// AnalyzeRequest is the body of POST /api/analyze. Sequence is left untyped so
// non-array values can be rejected with a precise message.
type AnalyzeRequest struct {
	Sequence any `json:"sequence" msgpack:"sequence"`
}

// BatchRequest is the body of POST /api/analyze-batch.
type BatchRequest struct {
	Sequences any `json:"sequences" msgpack:"sequences"`
}

// BatchResponse holds one result per submitted sequence, in input order.
type BatchResponse struct {
	Results []AnalysisResult `json:"results" msgpack:"results"`
}

// ErrorResponse is the body of transport-level failures.
type ErrorResponse struct {
	Error string `json:"error" msgpack:"error"`
}

// MessageResponse acknowledges a command.
type MessageResponse struct {
	Message string `json:"message" msgpack:"message"`
}

// HealthResponse is the body of GET /api/health. Uptime is in seconds.
type HealthResponse struct {
	Status    string    `json:"status" msgpack:"status"`
	Timestamp time.Time `json:"timestamp" msgpack:"timestamp"`
	Uptime    float64   `json:"uptime" msgpack:"uptime"`
}

// Endpoint describes one route in the documentation catalogue.
type Endpoint struct {
	Path        string `json:"path" msgpack:"path"`
	Description string `json:"description" msgpack:"description"`
	Body        any    `json:"body,omitempty" msgpack:"body,omitempty"`
	Response    any    `json:"response,omitempty" msgpack:"response,omitempty"`
}

// Documentation is the body of GET /api/documentation.
type Documentation struct {
	Title     string     `json:"title" msgpack:"title"`
	Version   string     `json:"version" msgpack:"version"`
	Endpoints []Endpoint `json:"endpoints" msgpack:"endpoints"`
}
