package types_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/okian/echochamber/internal/domain/sequence"
	types "github.com/okian/echochamber/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFromAnalysis(t *testing.T) {
	Convey("Given a successful analysis", t, func() {
		a, err := sequence.NewAnalyzer().Analyze([]float64{3, 6, 9, 12})
		So(err, ShouldBeNil)

		Convey("When converting it to a wire result", func() {
			res := types.FromAnalysis(a)
			body, err := json.Marshal(res)
			So(err, ShouldBeNil)

			var decoded map[string]any
			So(json.Unmarshal(body, &decoded), ShouldBeNil)

			Convey("Then it should carry the success fields only", func() {
				So(decoded["success"], ShouldEqual, true)
				So(decoded["predicted"], ShouldEqual, 15.0)
				So(decoded["nextFive"], ShouldResemble, []any{15.0, 18.0, 21.0, 24.0, 27.0})
				So(decoded, ShouldNotContainKey, "error")

				pattern := decoded["pattern"].(map[string]any)
				So(pattern["type"], ShouldEqual, "arithmetic")
				So(pattern["commonDifference"], ShouldEqual, 3.0)
				So(pattern, ShouldNotContainKey, "commonRatio")
			})
		})

		Convey("When the predicted value is zero", func() {
			z, err := sequence.NewAnalyzer().Analyze([]float64{2, 1})
			So(err, ShouldBeNil)
			body, _ := json.Marshal(types.FromAnalysis(z))

			Convey("Then it should still be serialised", func() {
				So(string(body), ShouldContainSubstring, `"predicted":0`)
			})
		})
	})
}

func TestFromError(t *testing.T) {
	Convey("Given analysis failures", t, func() {
		Convey("When the failure is a typed analysis error", func() {
			_, err := sequence.NewAnalyzer().Analyze([]float64{1})
			res := types.FromError(err)

			Convey("Then its reason should be reported", func() {
				So(res.Success, ShouldBeFalse)
				So(res.Pattern, ShouldBeNil)
				So(res.Error, ShouldContainSubstring, "at least 2")
			})
		})

		Convey("When the failure is an arbitrary error", func() {
			res := types.FromError(errors.New("db exploded at 0xdeadbeef"))

			Convey("Then its text should be hidden", func() {
				So(res.Error, ShouldEqual, "Internal server error")
			})
		})
	})
}

func TestHealthResponse(t *testing.T) {
	Convey("Given a health response", t, func() {
		body, err := json.Marshal(types.HealthResponse{Status: "healthy", Uptime: 1.5})
		So(err, ShouldBeNil)

		Convey("Then it should use the documented field names", func() {
			So(string(body), ShouldContainSubstring, `"status":"healthy"`)
			So(string(body), ShouldContainSubstring, `"timestamp"`)
			So(string(body), ShouldContainSubstring, `"uptime":1.5`)
		})
	})
}
