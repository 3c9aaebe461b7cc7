// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sigauth

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	Convey("NewLogger", t, func() {
		Convey("defaults to info", func() {
			log, err := NewLogger(LogConfig{})
			So(err, ShouldBeNil)
			So(log.Core().Enabled(zap.InfoLevel), ShouldBeTrue)
			So(log.Core().Enabled(zap.DebugLevel), ShouldBeFalse)
		})

		Convey("honours the level", func() {
			log, err := NewLogger(LogConfig{Level: "warn", Encoding: "console"})
			So(err, ShouldBeNil)
			So(log.Core().Enabled(zap.WarnLevel), ShouldBeTrue)
			So(log.Core().Enabled(zap.InfoLevel), ShouldBeFalse)
		})

		Convey("writes to files", func() {
			p := filepath.Join(t.TempDir(), "node.log")
			log, err := NewLogger(LogConfig{Level: "debug", OutputPath: p})
			So(err, ShouldBeNil)
			log.Debug("written")
			log.Sync()

			written, err := os.ReadFile(p)
			So(err, ShouldBeNil)
			So(string(written), ShouldContainSubstring, `"msg":"written"`)
		})

		Convey("rejects unknown levels and encodings", func() {
			_, err := NewLogger(LogConfig{Level: "verbose"})
			So(err, ShouldNotBeNil)

			_, err = NewLogger(LogConfig{Encoding: "xml"})
			So(err, ShouldNotBeNil)
		})
	})
}
