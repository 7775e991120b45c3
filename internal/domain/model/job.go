// Package model contains domain models passed between layers.
package model

import "github.com/okian/echochamber/internal/domain/sequence"

// Job is one batch element queued for a worker.
type Job struct {
	BatchID string // batch the job belongs to
	Index   int    // position of the input in the batch
	Input   any    // raw decoded value, coerced by the worker

	// Reply receives exactly one Result. It must be buffered so workers
	// never block on a caller that has gone away.
	Reply chan<- Result
}

// Result is the outcome of a Job. Exactly one of Analysis or Err is meaningful.
type Result struct {
	Index    int
	Analysis sequence.Analysis
	Err      error
}

// OK reports whether the job produced an analysis.
func (r Result) OK() bool { return r.Err == nil }
