package history

import "time"

// Option applies a configuration option to the in-memory recorder.
type Option func(*inMemoryRecorder)

// WithMaxEntries bounds the log. When full, the oldest entry is dropped.
// If maxEntries <= 0 the log is unbounded.
func WithMaxEntries(maxEntries int) Option {
	return func(r *inMemoryRecorder) {
		r.maxEntries = maxEntries
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *inMemoryRecorder) {
		if now != nil {
			r.now = now
		}
	}
}
