// Command echo-probe verifies a running Echo Chamber server against the
// reference sequence catalogue.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/echochamber/internal/probe"
	"github.com/okian/echochamber/pkg/logger"
)

// Default configuration constants.
const (
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultRepeat       = 1
	defaultTimeout      = 30 * time.Second
	defaultProbeTimeout = 10 * time.Minute
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		baseURL    = flag.String("url", "http://localhost:3000", "Base URL of the service")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		repeat     = flag.Int("repeat", defaultRepeat, "Times each case is submitted to /api/analyze")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		skipBatch  = flag.Bool("skip-batch", false, "Do not exercise /api/analyze-batch")
		outputFile = flag.String("output", "", "Write a JSON report to this file")
		logFile    = flag.String("log", "", "Also write logs to this file")
		logFormat  = flag.String("log-format", logger.FormatText, "Log format: text, pretty or json")
		verbose    = flag.Bool("verbose", false, "Log every outcome")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp(os.Stdout)
		return 0
	}

	closeLog, err := probe.SetupLogging(*logFile, *logFormat)
	if err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return 1
	}
	defer closeLog()
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultProbeTimeout)
	defer cancel()

	config := &probe.Config{
		BaseURL:    *baseURL,
		Workers:    *workers,
		Repeat:     *repeat,
		Timeout:    *timeout,
		SkipBatch:  *skipBatch,
		OutputFile: *outputFile,
		Verbose:    *verbose,
	}

	if _, err := probe.Run(ctx, config); err != nil {
		_, _ = os.Stderr.WriteString("Probe failed: " + err.Error() + "\n")
		return 1
	}
	return 0
}
