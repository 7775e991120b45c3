package probe

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/echochamber/pkg/logger"
)

// logFilePermission is used for the optional log file.
const logFilePermission = 0600

// SetupLogging initialises the logger, teeing output to logFile when set.
// The returned function closes the file.
func SetupLogging(logFile, format string) (func(), error) {
	if logFile == "" {
		if err := logger.Init(logger.WithFormat(format)); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		return func() {}, nil
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	out := io.MultiWriter(os.Stdout, file)
	if err := logger.Init(logger.WithFormat(format), logger.WithWriter(out)); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return func() { _ = file.Close() }, nil
}

// ShowHelp prints usage information for the probe.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Echo Chamber Probe
==================

Submits the reference sequence catalogue to a running Echo Chamber server
and verifies every classification and prediction.

Usage:
  echo-probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:3000")
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -repeat int
        Times each case is submitted to /api/analyze (default 1)
  -timeout duration
        HTTP request timeout (default 30s)
  -skip-batch
        Do not exercise /api/analyze-batch
  -output string
        Write a JSON report to this file
  -log string
        Also write logs to this file
  -log-format string
        text, pretty or json (default "text")
  -verbose
        Log every outcome, not only failures
  -help
        Show this help message

Examples:
  echo-probe -url http://localhost:3000
  echo-probe -repeat 50 -workers 16 -output report.json
`)
}
