package console

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/echochamber/internal/domain/history"
	"github.com/okian/echochamber/internal/domain/sequence"
	"github.com/okian/echochamber/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// session runs a console over the given input lines and returns its output
// and history.
func session(t *testing.T, lines ...string) (string, history.Recorder, error) {
	t.Helper()
	var out strings.Builder
	rec := history.NewInMemoryRecorder()
	c := New(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, WithHistory(rec))
	err := c.Run(context.Background())
	return out.String(), rec, err
}

func TestConsoleMenu(t *testing.T) {
	convey.Convey("Given an interactive session", t, func() {
		convey.Convey("When the sample sequence is chosen", func() {
			out, rec, err := session(t, "1", "7")

			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "Pattern recognised: arithmetic")
			convey.So(out, convey.ShouldContainSubstring, "common difference 3")
			convey.So(out, convey.ShouldContainSubstring, "Next:      15")
			convey.So(out, convey.ShouldContainSubstring, "Next five: [15, 18, 21, 24, 27]")
			convey.So(out, convey.ShouldContainSubstring, "Echo #1 recorded")
			convey.So(out, convey.ShouldContainSubstring, "Farewell")
			convey.So(rec.Len(), convey.ShouldEqual, 1)
		})

		convey.Convey("When custom sequences are entered", func() {
			out, rec, err := session(t, "2", "1, 4, 9, 16", "2", "1 2 4 8", "2", "1 8 27 64", "7")

			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "Pattern recognised: polynomial")
			convey.So(out, convey.ShouldContainSubstring, "constant second difference 2")
			convey.So(out, convey.ShouldContainSubstring, "common ratio 2")
			convey.So(out, convey.ShouldContainSubstring, "ERROR:")
			convey.So(rec.Len(), convey.ShouldEqual, 2)
		})

		convey.Convey("When a custom sequence cannot be parsed", func() {
			out, rec, err := session(t, "2", "1 two 3", "2", "5", "7")

			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, `"two" is not a valid number`)
			convey.So(out, convey.ShouldContainSubstring, "at least 2 numbers")
			convey.So(rec.Len(), convey.ShouldEqual, 0)
		})

		convey.Convey("When echoes and statistics are listed", func() {
			out, _, err := session(t, "3", "1", "2", "2 4 8 16", "3", "4", "7")

			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "the chamber is silent")
			convey.So(out, convey.ShouldContainSubstring, "Echo #2:")
			convey.So(out, convey.ShouldContainSubstring, "Sequence:  [2, 4, 8, 16]")
			convey.So(out, convey.ShouldContainSubstring, "Total predictions:       2")
			convey.So(out, convey.ShouldContainSubstring, "Average sequence length: 4.00")
			convey.So(out, convey.ShouldContainSubstring, "geometric:")
		})

		convey.Convey("When echoes are cleared", func() {
			out, rec, err := session(t, "1", "5", "5", "7")

			convey.So(err, convey.ShouldBeNil)
			convey.So(strings.Count(out, "All echoes have been cleared"), convey.ShouldEqual, 2)
			convey.So(rec.Len(), convey.ShouldEqual, 0)
		})

		convey.Convey("When the choice is unknown", func() {
			out, _, err := session(t, "9", "7")

			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, `Invalid choice "9"`)
		})

		convey.Convey("When input ends without an exit", func() {
			out, _, err := session(t, "1")

			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "Farewell")
		})

		convey.Convey("When input ends while a sequence is awaited", func() {
			var out strings.Builder
			c := New(strings.NewReader("2\n"), &out)
			convey.So(c.Run(context.Background()), convey.ShouldBeNil)
		})

		convey.Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			var out strings.Builder
			c := New(strings.NewReader("1\n"), &out)
			convey.So(errors.Is(c.Run(ctx), context.Canceled), convey.ShouldBeTrue)
		})
	})
}

func TestSelfTest(t *testing.T) {
	convey.Convey("Given the built-in checks", t, func() {
		var out strings.Builder
		rec := history.NewInMemoryRecorder()
		c := New(strings.NewReader(""), &out, WithHistory(rec))

		passed, failed := c.SelfTest(context.Background())

		convey.Convey("Then every check should pass without touching the history", func() {
			convey.So(failed, convey.ShouldEqual, 0)
			convey.So(passed, convey.ShouldEqual, len(SelfTestCases()))
			convey.So(rec.Len(), convey.ShouldEqual, 0)
			convey.So(out.String(), convey.ShouldContainSubstring, "0 failed")
		})
	})

	convey.Convey("Given an engine that only knows arithmetic", t, func() {
		var out strings.Builder
		c := New(strings.NewReader(""), &out, WithAnalyzer(sequence.NewAnalyzer(sequence.WithDetectors(sequence.ArithmeticDetector{}))))

		passed, failed := c.SelfTest(context.Background())

		convey.Convey("Then the geometric and polynomial checks should fail", func() {
			convey.So(failed, convey.ShouldEqual, 2)
			convey.So(passed, convey.ShouldEqual, len(SelfTestCases())-2)
			convey.So(out.String(), convey.ShouldContainSubstring, "FAIL 6: Geometric")
		})
	})
}

func TestParseSequence(t *testing.T) {
	convey.Convey("Given user input", t, func() {
		seq, err := ParseSequence(" 2, 4\t6  8 ")
		convey.So(err, convey.ShouldBeNil)
		convey.So(seq, convey.ShouldResemble, []float64{2, 4, 6, 8})

		seq, err = ParseSequence("-1.5 1e3")
		convey.So(err, convey.ShouldBeNil)
		convey.So(seq, convey.ShouldResemble, []float64{-1.5, 1000})

		_, err = ParseSequence("")
		convey.So(err, convey.ShouldNotBeNil)

		_, err = ParseSequence("1 x")
		convey.So(err, convey.ShouldNotBeNil)
	})
}
