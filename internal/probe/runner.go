package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/echochamber/internal/domain/types"
	"github.com/okian/echochamber/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// percentageMultiplier converts a ratio into a percentage.
const percentageMultiplier = 100

// Report is the full result of a probe run.
type Report struct {
	Stats    Stats     `json:"stats"`
	Outcomes []Outcome `json:"outcomes"`
}

// Run executes the complete probe: health, single analyses, batch and
// statistics. It returns ErrCasesFailed when any case did not verify.
func Run(ctx context.Context, config *Config) (*Report, error) {
	log := logger.Get().Named("probe")
	report := &Report{Stats: Stats{StartTime: time.Now()}}

	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Repeat < 1 {
		config.Repeat = 1
	}

	log.Info(ctx, "starting echo chamber probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("workers", config.Workers),
		logger.Int("repeat", config.Repeat),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return nil, err
	}

	// Step 2: Submit single analyses concurrently
	catalogue := Catalogue()
	cases := make([]Case, 0, len(catalogue)*config.Repeat)
	for i := 0; i < config.Repeat; i++ {
		cases = append(cases, catalogue...)
	}
	report.Outcomes = append(report.Outcomes, submitCases(ctx, config, cases)...)

	// Step 3: Submit the catalogue as one batch
	if !config.SkipBatch {
		batch, err := submitBatch(ctx, config, catalogue)
		if err != nil {
			return nil, fmt.Errorf("batch submission failed: %w", err)
		}
		report.Stats.BatchResults = len(batch)
		report.Outcomes = append(report.Outcomes, batch...)
	}

	// Step 4: Read server statistics
	stats, err := fetchStatistics(ctx, config)
	if err != nil {
		log.Warn(ctx, "failed to read statistics", logger.Error(err))
	} else {
		report.Stats.TotalAnalyzed = stats.TotalAnalyzed
	}

	for _, o := range report.Outcomes {
		report.Stats.CasesSubmitted++
		if o.Passed {
			report.Stats.CasesPassed++
		} else {
			report.Stats.CasesFailed++
		}
	}
	report.Stats.EndTime = time.Now()
	report.Stats.Duration = report.Stats.EndTime.Sub(report.Stats.StartTime)

	// Step 5: Save outcomes to file
	if config.OutputFile != "" {
		if err := saveReport(ctx, config.OutputFile, report); err != nil {
			log.Warn(ctx, "failed to save report", logger.Error(err))
		}
	}

	displayFinalStats(ctx, report.Stats)

	if report.Stats.CasesFailed > 0 {
		return report, fmt.Errorf("%w: %d of %d", ErrCasesFailed, report.Stats.CasesFailed, report.Stats.CasesSubmitted)
	}
	log.Info(ctx, "probe completed successfully")
	return report, nil
}

// checkServiceHealth verifies the service reports itself healthy.
func checkServiceHealth(ctx context.Context, config *Config) error {
	log := logger.Get().Named("probe")
	log.Info(ctx, "checking service health")

	var health types.HealthResponse
	if err := newHTTPClient(config.Timeout).getJSON(ctx, config.BaseURL+"/api/health", &health); err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if health.Status != "healthy" {
		return fmt.Errorf("%w: status %q", ErrUnhealthy, health.Status)
	}

	log.Info(ctx, "service is healthy", logger.Float64("uptime", health.Uptime))
	return nil
}

// saveReport writes the report as indented JSON.
func saveReport(ctx context.Context, filename string, report *Report) error {
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger.Get().Named("probe").Info(ctx, "report saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats Stats) {
	var passRate, casesPerSecond float64

	if stats.CasesSubmitted > 0 {
		passRate = float64(stats.CasesPassed) / float64(stats.CasesSubmitted) * percentageMultiplier
	}
	if stats.Duration > 0 {
		casesPerSecond = float64(stats.CasesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Named("probe").Info(ctx, "final statistics",
		logger.Int("casesSubmitted", stats.CasesSubmitted),
		logger.Int("casesPassed", stats.CasesPassed),
		logger.Int("casesFailed", stats.CasesFailed),
		logger.Int("batchResults", stats.BatchResults),
		logger.Int("serverTotalAnalyzed", stats.TotalAnalyzed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("passRate", passRate),
		logger.Float64("casesPerSecond", casesPerSecond))
}
