package api

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestErrorKinds(t *testing.T) {
	convey.Convey("Given an operation-tagged error", t, func() {
		cause := errors.New("unexpected EOF")
		err := WrapKind("api.analyze", ErrBadRequest, cause)

		convey.Convey("Then both the kind and the cause should match", func() {
			convey.So(errors.Is(err, ErrBadRequest), convey.ShouldBeTrue)
			convey.So(errors.Is(err, cause), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldEqual, "api.analyze: bad request: unexpected EOF")
		})

		convey.Convey("And a nil cause should degrade to NewKind", func() {
			convey.So(WrapKind("op", ErrBatchTooLarge, nil).Error(), convey.ShouldEqual, "op: batch too large")
		})
	})
}

func TestNegotiation(t *testing.T) {
	convey.Convey("Given Accept headers", t, func() {
		cases := map[string]bool{
			"":                                 false,
			"application/json":                 false,
			"application/msgpack":              true,
			"text/html, application/x-msgpack": true,
			"application/msgpack;q=0.9":        true,
		}
		for accept, want := range cases {
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("Accept", accept)
			convey.So(wantsMsgpack(req), convey.ShouldEqual, want)
		}
	})

	convey.Convey("Given a msgpack body with integers", t, func() {
		req := httptest.NewRequest("POST", "/", strings.NewReader("\x81\xa1a\x92\x01\x02"))
		req.Header.Set("Content-Type", "application/msgpack")

		convey.Convey("Then it should decode into a generic slice", func() {
			var v struct {
				A any `msgpack:"a"`
			}
			convey.So(decodeBody(req, &v), convey.ShouldBeNil)
			convey.So(v.A, convey.ShouldResemble, []any{int64(1), int64(2)})
		})
	})

	convey.Convey("Given an error status", t, func() {
		convey.So(getErrorType(404), convey.ShouldEqual, "not_found")
		convey.So(getErrorType(429), convey.ShouldEqual, "rate_limit")
		convey.So(getErrorType(400), convey.ShouldEqual, "client_error")
		convey.So(getErrorType(503), convey.ShouldEqual, "server_error")
	})
}
