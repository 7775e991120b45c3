// Package console implements the interactive Echo Chamber menu. It runs the
// detection engine in-process and keeps its own history of echoes.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/echochamber/internal/domain/history"
	"github.com/okian/echochamber/internal/domain/sequence"
	"github.com/okian/echochamber/pkg/logger"
)

// Menu choices.
const (
	choiceSample     = "1"
	choiceCustom     = "2"
	choiceEchoes     = "3"
	choiceStatistics = "4"
	choiceClear      = "5"
	choiceSelfTest   = "6"
	choiceExit       = "7"
)

// SampleSequence is the sequence behind menu choice 1.
var SampleSequence = []float64{3, 6, 9, 12} //nolint:gochecknoglobals // reference data

// Console is one interactive session.
type Console struct {
	analyzer *sequence.Analyzer
	history  history.Recorder
	in       *bufio.Scanner
	out      io.Writer
	logger   logger.Logger
}

// Option configures a Console.
type Option func(*Console)

// WithAnalyzer replaces the default detection engine.
func WithAnalyzer(a *sequence.Analyzer) Option {
	return func(c *Console) {
		if a != nil {
			c.analyzer = a
		}
	}
}

// WithHistory replaces the default in-memory recorder.
func WithHistory(r history.Recorder) Option {
	return func(c *Console) {
		if r != nil {
			c.history = r
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a console reading choices from in and writing to out.
func New(in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		in:  bufio.NewScanner(in),
		out: out,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.analyzer == nil {
		c.analyzer = sequence.NewAnalyzer()
	}
	if c.history == nil {
		c.history = history.NewInMemoryRecorder()
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("console")
	}
	return c
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
// End of input is a normal exit.
func (c *Console) Run(ctx context.Context) error {
	c.welcome()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.menu()
		choice, err := c.prompt("Enter your choice (1-7): ")
		if errors.Is(err, io.EOF) {
			c.printf("\nFarewell, seeker.\n")
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case choiceSample:
			c.analyze(ctx, SampleSequence)
		case choiceCustom:
			if err := c.custom(ctx); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		case choiceEchoes:
			c.echoes(ctx)
		case choiceStatistics:
			c.statistics(ctx)
		case choiceClear:
			c.history.Clear(ctx)
			c.printf("\nAll echoes have been cleared from the chamber.\n\n")
		case choiceSelfTest:
			c.SelfTest(ctx)
		case choiceExit:
			c.printf("\nFarewell, seeker. May your sequences ever echo true.\n")
			return nil
		default:
			c.printf("\n  Invalid choice %q. Please enter a number from 1 to 7.\n\n", choice)
		}
	}
}

func (c *Console) welcome() {
	c.printf("\n=== WELCOME TO THE CHAMBER OF ECHOES ===\n\n")
	c.printf("Each sequence follows a hidden law: a constant difference (arithmetic),\n")
	c.printf("a constant ratio (geometric) or a constant second difference (polynomial).\n")
	c.printf("Discover the law, hear the next echo, and every prediction is remembered.\n\n")
}

func (c *Console) menu() {
	c.printf("ECHO CHAMBER MENU:\n")
	c.printf("  1) Test with sample sequence [3, 6, 9, 12]\n")
	c.printf("  2) Test with custom sequence\n")
	c.printf("  3) View all echoes\n")
	c.printf("  4) View echo statistics\n")
	c.printf("  5) Clear all echoes\n")
	c.printf("  6) Run self-test\n")
	c.printf("  7) Exit the chamber\n\n")
}

// prompt writes msg and returns the next trimmed input line.
func (c *Console) prompt(msg string) (string, error) {
	c.printf("%s", msg)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) custom(ctx context.Context) error {
	c.printf("\nEnter a custom sequence, e.g. 2 4 6 8 or 2, 4, 6, 8\n")
	line, err := c.prompt("  Sequence: ")
	if err != nil {
		return err
	}
	seq, err := ParseSequence(line)
	if err != nil {
		c.printf("\n  Invalid input: %v\n\n", err)
		return nil
	}
	c.analyze(ctx, seq)
	return nil
}

// analyze classifies seq, records it on success and reports the result.
func (c *Console) analyze(ctx context.Context, seq []float64) {
	a, err := c.analyzer.Analyze(seq)
	if err != nil {
		c.logger.Debug(ctx, "analysis rejected", logger.Error(err))
		c.printf("\n  ERROR: %v\n\n", err)
		return
	}
	e := c.history.Record(ctx, seq, a.Pattern, a.Predicted)

	c.printf("\n  Pattern recognised: %s\n", a.Pattern.Type)
	c.printf("  Sequence:  [%s]\n", formatSequence(seq))
	c.printf("  Law:       %s\n", describe(a.Pattern))
	c.printf("  Next:      %s\n", formatNumber(a.Predicted))
	c.printf("  Next five: [%s]\n", formatSequence(a.NextFive))
	c.printf("  Echo #%d recorded (%s)\n\n", c.history.Len(), e.ID)
}

func (c *Console) echoes(ctx context.Context) {
	entries := c.history.Entries(ctx)
	c.printf("\nALL ECHOES IN THE CHAMBER:\n")
	if len(entries) == 0 {
		c.printf("  (No echoes yet, the chamber is silent)\n\n")
		return
	}
	for i, e := range entries {
		c.printf("\n  Echo #%d:\n", i+1)
		c.printf("    Sequence:  [%s]\n", formatSequence(e.Sequence))
		c.printf("    Pattern:   %s\n", e.Pattern)
		c.printf("    Predicted: %s\n", formatNumber(e.Predicted))
		c.printf("    Recorded:  %s\n", e.Timestamp.Local().Format("15:04:05"))
	}
	c.printf("\n")
}

func (c *Console) statistics(ctx context.Context) {
	stats := c.history.Statistics(ctx)
	c.printf("\nECHO CHAMBER STATISTICS:\n")
	c.printf("  Total predictions:       %d\n", stats.TotalAnalyzed)
	c.printf("  Average sequence length: %.2f\n", stats.AverageSequenceLength)
	for _, t := range sequence.PatternTypes() {
		c.printf("  %-24s %d\n", string(t)+":", stats.PatternBreakdown[t])
	}
	c.printf("\n")
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

// ParseSequence reads numbers separated by whitespace or commas.
func ParseSequence(line string) ([]float64, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) < sequence.MinLength {
		return nil, fmt.Errorf("please enter at least %d numbers", sequence.MinLength)
	}
	seq := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid number", f)
		}
		seq[i] = v
	}
	return seq, nil
}

func describe(p sequence.Pattern) string {
	switch p.Type {
	case sequence.Arithmetic:
		return "common difference " + formatNumber(p.Difference())
	case sequence.Geometric:
		return "common ratio " + formatNumber(p.Ratio())
	case sequence.Polynomial:
		return "constant second difference " + formatNumber(p.SecondDiff())
	}
	return string(p.Type)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatSequence(seq []float64) string {
	parts := make([]string, len(seq))
	for i, v := range seq {
		parts[i] = formatNumber(v)
	}
	return strings.Join(parts, ", ")
}
