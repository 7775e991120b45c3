// Command echo-console runs the interactive Echo Chamber menu in the terminal.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/echochamber/internal/console"
	"github.com/okian/echochamber/internal/domain/history"
	"github.com/okian/echochamber/pkg/logger"
)

func main() {
	var (
		logLevel     = flag.String("log-level", "warn", "Log level: debug, info, warn or error")
		historyLimit = flag.Int("history-limit", 0, "Maximum echoes kept; 0 keeps everything")
	)
	flag.Parse()

	// Logs go to stderr so they never interleave with the menu.
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		_, _ = os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(*logLevel); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := console.New(os.Stdin, os.Stdout,
		console.WithHistory(history.NewInMemoryRecorder(history.WithMaxEntries(*historyLimit))),
	)
	if err := c.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Get().Error(ctx, "console stopped", logger.Error(err))
		os.Exit(1)
	}
}
