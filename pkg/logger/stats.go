package logger

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Statistics summarises the entries written since start-up or the last ResetStats.
type Statistics struct {
	TotalLogs int64       `json:"totalLogs"`
	ByLevel   LevelCounts `json:"byLevel"`
}

// LevelCounts holds per-level entry counts. Fatal entries count as errors.
type LevelCounts struct {
	Debug int64 `json:"debug"`
	Info  int64 `json:"info"`
	Warn  int64 `json:"warn"`
	Error int64 `json:"error"`
}

// levelCounter is a zerolog hook counting emitted entries by level.
type levelCounter struct {
	debug, info, warn, error atomic.Int64
}

var counter = &levelCounter{} //nolint:gochecknoglobals // shared by every logger built by Init

func (c *levelCounter) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	switch level {
	case zerolog.DebugLevel, zerolog.TraceLevel:
		c.debug.Add(1)
	case zerolog.InfoLevel, zerolog.NoLevel:
		c.info.Add(1)
	case zerolog.WarnLevel:
		c.warn.Add(1)
	default:
		c.error.Add(1)
	}
}

// Stats returns the current entry counts.
func Stats() Statistics {
	lc := LevelCounts{
		Debug: counter.debug.Load(),
		Info:  counter.info.Load(),
		Warn:  counter.warn.Load(),
		Error: counter.error.Load(),
	}
	return Statistics{
		TotalLogs: lc.Debug + lc.Info + lc.Warn + lc.Error,
		ByLevel:   lc,
	}
}

// ResetStats zeroes the counters.
func ResetStats() {
	counter.debug.Store(0)
	counter.info.Store(0)
	counter.warn.Store(0)
	counter.error.Store(0)
}
