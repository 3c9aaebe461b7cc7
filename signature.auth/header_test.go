// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package auth

import (
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseParameters(t *testing.T) {
	valid := []struct {
		serialized   string // meant for http.Header
		deserialized Parameters
	}{
		{`Signature keyID="node1",algorithm="hmac-sha256",signature="TWFyaw=="`,
			Parameters{"keyID": "node1", "algorithm": "hmac-sha256", "signature": "TWFyaw=="},
		},
		{`Signature keyID="node1", algorithm="hmac-sha256",  headers="date",signature="TWFyaw=="`,
			Parameters{"keyID": "node1", " algorithm": "hmac-sha256", "  headers": "date", "signature": "TWFyaw=="},
		},
		{`Signature  keyID="node1"`,
			Parameters{" keyID": "node1"},
		},
		{`Signature keyID="node1",garbage,algorithm=hmac-sha256,="x",signature="TWFyaw=="`,
			Parameters{"keyID": "node1", "signature": "TWFyaw=="},
		},
		{`Signature keyID="node1",keyID="node2"`,
			Parameters{"keyID": "node2"},
		},
		{`Signature keyID="a"b"`,
			Parameters{"keyID": `a"b`},
		},
		{`Signature keyID=""`,
			Parameters{},
		},
		{`Signature `,
			Parameters{},
		},
	}

	Convey("Authorization header parsing", t, func() {
		Convey("works from string to map with valid inputs", func() {
			for _, row := range valid {
				p, ok := ParseParameters(row.serialized)
				So(ok, ShouldBeTrue)
				So(p, ShouldResemble, row.deserialized)
			}
		})

		Convey("is keyed case-sensitively", func() {
			p, ok := ParseParameters(`Signature keyId="node1"`)
			So(ok, ShouldBeTrue)
			So(p, ShouldNotContainKey, ParamKeyID)
		})

		Convey("rejects other schemes", func() {
			for _, row := range valid {
				_, ok := ParseParameters(strings.Replace(row.serialized, "Signature ", "Digest ", 1))
				So(ok, ShouldBeFalse)

				_, ok = ParseParameters(strings.Replace(row.serialized, "Signature ", "Signature,", 1))
				So(ok, ShouldBeFalse)

				_, ok = ParseParameters(strings.Replace(row.serialized, "Signature ", "signature ", 1))
				So(ok, ShouldBeFalse)
			}

			for _, given := range []string{"", "Signature", " Signature keyID=\"node1\"", "Basic dXNlcjpwYXNz"} {
				_, ok := ParseParameters(given)
				So(ok, ShouldBeFalse)
			}
		})
	})
}

func TestSigningString(t *testing.T) {
	Convey("The string to be signed", t, func() {
		Convey("has the method lower-cased and lines separated by LF", func() {
			s := SigningString(Request{
				Method: "GET",
				Path:   "/status",
				Host:   "node1",
				Date:   "Tue, 01 Jan 2030 00:00:00 GMT",
			})
			So(s, ShouldEqual, "(request-target) get /status\nhost: node1\ndate: Tue, 01 Jan 2030 00:00:00 GMT")
		})

		Convey("keeps lines of absent headers", func() {
			s := SigningString(Request{Method: "POST", Path: "/jobs/42"})
			So(s, ShouldEqual, "(request-target) post /jobs/42\nhost: \ndate: ")
		})

		Convey("ignores the Authorization header itself", func() {
			a := Request{Method: "GET", Path: "/", Authorization: "Signature one"}
			b := Request{Method: "GET", Path: "/", Authorization: "Signature two"}
			So(SigningString(a), ShouldEqual, SigningString(b))
		})
	})
}

func TestRequestFromHTTP(t *testing.T) {
	Convey("Extracting from a server-side request", t, func() {
		r := httptest.NewRequest("PUT", "http://node1:8000/results/7?verbose=1", nil)
		r.Header.Set("Authorization", `Signature keyID="node1"`)
		r.Header.Set("Date", "Tue, 01 Jan 2030 00:00:00 GMT")

		got := RequestFromHTTP(r)
		So(got, ShouldResemble, Request{
			Method:        "PUT",
			Path:          "/results/7",
			Authorization: `Signature keyID="node1"`,
			Host:          "node1:8000",
			Date:          "Tue, 01 Jan 2030 00:00:00 GMT",
		})
	})
}
