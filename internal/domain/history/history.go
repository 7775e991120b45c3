// Package history keeps the in-memory log of successful analyses.
package history

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/echochamber/internal/domain/sequence"
)

// Entry is one recorded analysis. Entries are never mutated after creation.
type Entry struct {
	ID        string               `json:"id" msgpack:"id"`
	Sequence  []float64            `json:"sequence" msgpack:"sequence"`
	Pattern   sequence.PatternType `json:"pattern" msgpack:"pattern"`
	Predicted float64              `json:"predicted" msgpack:"predicted"`
	Timestamp time.Time            `json:"timestamp" msgpack:"timestamp"`
}

// Statistics summarises the log.
type Statistics struct {
	TotalAnalyzed         int                          `json:"totalAnalyzed" msgpack:"totalAnalyzed"`
	PatternBreakdown      map[sequence.PatternType]int `json:"patternBreakdown" msgpack:"patternBreakdown"`
	AverageSequenceLength float64                      `json:"averageSequenceLength" msgpack:"averageSequenceLength"`
	AnalysisHistory       []Entry                      `json:"analysisHistory" msgpack:"analysisHistory"`
}

// Recorder is an append-only, mutex-guarded analysis log.
type Recorder interface {
	// Record appends an entry for a successful analysis and returns it.
	Record(ctx context.Context, seq []float64, p sequence.Pattern, predicted float64) Entry
	// Entries returns a snapshot of the log in insertion order.
	Entries(ctx context.Context) []Entry
	// Statistics returns counts per pattern type plus a snapshot of the log.
	Statistics(ctx context.Context) Statistics
	// Clear empties the log.
	Clear(ctx context.Context)
	// Len returns the number of entries.
	Len() int
}

type inMemoryRecorder struct {
	mu         sync.RWMutex
	entries    []Entry
	maxEntries int // 0 or negative = unbounded
	now        func() time.Time
}

// NewInMemoryRecorder creates a recorder with configuration options.
func NewInMemoryRecorder(opts ...Option) Recorder {
	r := &inMemoryRecorder{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *inMemoryRecorder) Record(_ context.Context, seq []float64, p sequence.Pattern, predicted float64) Entry {
	e := Entry{
		ID:        uuid.NewString(),
		Sequence:  slices.Clone(seq),
		Pattern:   p.Type,
		Predicted: predicted,
		Timestamp: r.now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.maxEntries > 0 && len(r.entries) >= r.maxEntries {
		// Drop the oldest entries to stay within bounds.
		drop := len(r.entries) - r.maxEntries + 1
		r.entries = slices.Delete(r.entries, 0, drop)
	}
	r.entries = append(r.entries, e)
	return e
}

func (r *inMemoryRecorder) Entries(_ context.Context) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.entries)
}

func (r *inMemoryRecorder) Statistics(ctx context.Context) Statistics {
	entries := r.Entries(ctx)

	breakdown := make(map[sequence.PatternType]int, len(sequence.PatternTypes()))
	for _, t := range sequence.PatternTypes() {
		breakdown[t] = 0
	}
	lengths := make([]float64, len(entries))
	for i, e := range entries {
		breakdown[e.Pattern]++
		lengths[i] = float64(len(e.Sequence))
	}

	var avg float64
	if len(lengths) > 0 {
		avg = stat.Mean(lengths, nil)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return Statistics{
		TotalAnalyzed:         len(entries),
		PatternBreakdown:      breakdown,
		AverageSequenceLength: avg,
		AnalysisHistory:       entries,
	}
}

func (r *inMemoryRecorder) Clear(_ context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

func (r *inMemoryRecorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
