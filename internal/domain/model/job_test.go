package model_test

import (
	"testing"

	model "github.com/okian/echochamber/internal/domain/model"
	"github.com/okian/echochamber/internal/domain/sequence"
	"github.com/smartystreets/goconvey/convey"
)

func TestJob(t *testing.T) {
	convey.Convey("Given a Job with a buffered reply channel", t, func() {
		reply := make(chan model.Result, 1)
		job := model.Job{BatchID: "batch-1", Index: 3, Input: []any{1.0, 2.0}, Reply: reply}

		convey.Convey("When a worker replies", func() {
			job.Reply <- model.Result{Index: job.Index, Analysis: sequence.Analysis{Predicted: 3}}

			convey.Convey("Then the caller should receive the result without blocking", func() {
				res := <-reply
				convey.So(res.Index, convey.ShouldEqual, 3)
				convey.So(res.OK(), convey.ShouldBeTrue)
				convey.So(res.Analysis.Predicted, convey.ShouldEqual, 3)
			})
		})
	})
}

func TestResult(t *testing.T) {
	convey.Convey("Given a failed Result", t, func() {
		res := model.Result{Index: 1, Err: sequence.Internal()}

		convey.Convey("Then it should not report success", func() {
			convey.So(res.OK(), convey.ShouldBeFalse)
			convey.So(sequence.KindOf(res.Err), convey.ShouldEqual, sequence.KindInternal)
		})
	})
}
