package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

const (
	nanosecondsPerMillisecond = 1e6
	cpuSampleWindow           = 100 * time.Millisecond
)

// SampleSystem refreshes memory, goroutine, GC and host CPU gauges. It blocks
// for a short CPU sampling window and returns the sampling error, if any.
// Runtime gauges are updated even when CPU sampling fails.
func SampleSystem(ctx context.Context) error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	UpdateSystemMemoryUsage(m.Alloc)
	UpdateSystemGoroutineCount(runtime.NumGoroutine())
	if m.NumGC > 0 {
		RecordSystemGCPauseTime(float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond)
	}

	percent, err := cpu.PercentWithContext(ctx, cpuSampleWindow, false)
	if err != nil {
		return err
	}
	if len(percent) > 0 {
		UpdateSystemCPUPercent(percent[0])
	}
	return nil
}
