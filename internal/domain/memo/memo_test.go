package memo_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/okian/echochamber/internal/domain/memo"
	"github.com/okian/echochamber/internal/domain/sequence"
	. "github.com/smartystreets/goconvey/convey"
)

func outcomeFor(seq []float64) memo.Outcome {
	a, err := sequence.NewAnalyzer().Analyze(seq)
	return memo.Outcome{Analysis: a, Err: err}
}

func TestInMemoryCache(t *testing.T) {
	Convey("Given a new in-memory cache", t, func() {
		ctx := context.Background()

		Convey("When created with defaults", func() {
			c := memo.NewInMemoryCache()

			Convey("Then it should be empty", func() {
				So(c, ShouldNotBeNil)
				So(c.Size(), ShouldEqual, 0)
				_, ok := c.Get(ctx, []float64{1, 2})
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When storing outcomes", func() {
			c := memo.NewInMemoryCache(memo.WithMaxSize(10))
			seq := []float64{3, 6, 9, 12}
			c.Put(ctx, seq, outcomeFor(seq))
			bad := []float64{1, 8, 27, 64}
			c.Put(ctx, bad, outcomeFor(bad))

			Convey("Then they should be returned for equal sequences", func() {
				o, ok := c.Get(ctx, []float64{3, 6, 9, 12})
				So(ok, ShouldBeTrue)
				So(o.Err, ShouldBeNil)
				So(o.Analysis.Predicted, ShouldEqual, 15)

				o, ok = c.Get(ctx, bad)
				So(ok, ShouldBeTrue)
				So(errors.Is(o.Err, sequence.ErrNoPatternDetected), ShouldBeTrue)
				So(c.Size(), ShouldEqual, 2)
			})

			Convey("Then different sequences should miss", func() {
				_, ok := c.Get(ctx, []float64{3, 6, 9})
				So(ok, ShouldBeFalse)
			})

			Convey("Then storing the same sequence again should not grow the cache", func() {
				c.Put(ctx, seq, outcomeFor(seq))
				So(c.Size(), ShouldEqual, 2)
			})
		})

		Convey("When the cache is at capacity", func() {
			c := memo.NewInMemoryCache(memo.WithMaxSize(2))
			a, b, d := []float64{1, 2}, []float64{2, 4}, []float64{3, 6}
			c.Put(ctx, a, outcomeFor(a))
			c.Put(ctx, b, outcomeFor(b))
			c.Put(ctx, d, outcomeFor(d))

			Convey("Then the oldest entry should be evicted", func() {
				So(c.Size(), ShouldEqual, 2)
				_, ok := c.Get(ctx, a)
				So(ok, ShouldBeFalse)
				_, ok = c.Get(ctx, b)
				So(ok, ShouldBeTrue)
				_, ok = c.Get(ctx, d)
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When caching is disabled", func() {
			c := memo.NewInMemoryCache(memo.WithMaxSize(0))
			seq := []float64{1, 2}
			c.Put(ctx, seq, outcomeFor(seq))

			Convey("Then nothing should be stored", func() {
				_, ok := c.Get(ctx, seq)
				So(ok, ShouldBeFalse)
				So(c.Size(), ShouldEqual, 0)
			})
		})
	})
}

func TestKey(t *testing.T) {
	Convey("Given sequence keys", t, func() {
		Convey("Then signed zeros should not collide", func() {
			So(memo.Key([]float64{0, 1}), ShouldNotEqual, memo.Key([]float64{math.Copysign(0, -1), 1}))
			So(memo.Key([]float64{1, 2}), ShouldEqual, memo.Key([]float64{1, 2}))
			So(memo.Key([]float64{1, 2}), ShouldNotEqual, memo.Key([]float64{2, 1}))
			So(len(memo.Key([]float64{1, 2, 3})), ShouldEqual, 24)
		})
	})
}

func TestCacheConcurrency(t *testing.T) {
	Convey("Given a cache with concurrent access", t, func() {
		ctx := context.Background()
		c := memo.NewInMemoryCache(memo.WithMaxSize(100))
		const goroutines, perGoroutine = 10, 50

		var wg sync.WaitGroup
		for g := 0; g < goroutines; g++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				for i := 0; i < perGoroutine; i++ {
					seq := []float64{float64(id), float64(i)}
					c.Put(ctx, seq, memo.Outcome{})
					c.Get(ctx, seq)
				}
			}(g)
		}
		wg.Wait()

		Convey("Then the size should never exceed capacity", func() {
			So(c.Size(), ShouldEqual, 100)
			_, ok := c.Get(ctx, []float64{float64(goroutines + 1), 0})
			So(ok, ShouldBeFalse)
		})
	})
}
