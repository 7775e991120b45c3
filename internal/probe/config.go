// Package probe exercises a running Echo Chamber server over HTTP with a
// catalogue of reference sequences and verifies every answer.
package probe

import (
	"errors"
	"time"

	"github.com/okian/echochamber/internal/domain/sequence"
)

// Sentinel errors reported by Run.
var (
	ErrUnhealthy   = errors.New("service unhealthy")
	ErrCasesFailed = errors.New("probe cases failed")
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Workers    int           // Number of concurrent workers
	Repeat     int           // Times each single-analysis case is submitted
	Timeout    time.Duration // HTTP request timeout
	SkipBatch  bool          // Skip the batch endpoint
	OutputFile string        // Output file for outcomes; empty disables saving
	Verbose    bool          // Log every outcome
}

// Case is one reference sequence with its expected classification.
type Case struct {
	Name     string               `json:"name"`
	Category string               `json:"category"`
	Sequence any                  `json:"sequence"`
	Pattern  sequence.PatternType `json:"expectedPattern,omitempty"`
	Next     float64              `json:"expectedNext,omitempty"`
	Fail     bool                 `json:"shouldFail,omitempty"`
}

// Outcome records how the server answered a case.
type Outcome struct {
	Case      Case          `json:"case"`
	Endpoint  string        `json:"endpoint"`
	Status    int           `json:"status"`
	Passed    bool          `json:"passed"`
	Reason    string        `json:"reason,omitempty"`
	Pattern   string        `json:"pattern,omitempty"`
	Predicted *float64      `json:"predicted,omitempty"`
	Error     string        `json:"error,omitempty"`
	Latency   time.Duration `json:"latency"`
}

// Stats holds run statistics.
type Stats struct {
	CasesSubmitted int           `json:"casesSubmitted"`
	CasesPassed    int           `json:"casesPassed"`
	CasesFailed    int           `json:"casesFailed"`
	BatchResults   int           `json:"batchResults"`
	TotalAnalyzed  int           `json:"totalAnalyzed"`
	StartTime      time.Time     `json:"startTime"`
	EndTime        time.Time     `json:"endTime"`
	Duration       time.Duration `json:"duration"`
}
