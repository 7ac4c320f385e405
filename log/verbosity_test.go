package log

import (
	"bytes"
	"testing"

	logrus "github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVerbosity(t *testing.T) {
	Convey("ParseVerbosity", t, func() {
		for _, name := range []string{"none", "verbose", "info", "warning", "error", "critical"} {
			v, err := ParseVerbosity(name)
			So(err, ShouldBeNil)
			So(v.String(), ShouldEqual, name)
		}

		_, err := ParseVerbosity("loud")
		So(err, ShouldNotBeNil)
	})

	Convey("Given an enabled logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		logrus.SetOutput(&buf)
		logrus.SetLevel(logrus.TraceLevel)
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		enabled = true
		Reset(func() { enabled = false })

		l := New(map[string]interface{}{"player": "p1"}, VerbosityWarning)

		Convey("Messages below the threshold should be dropped", func() {
			l.Infof("hidden")
			So(buf.String(), ShouldBeEmpty)
		})

		Convey("Messages at the threshold should carry the fields", func() {
			l.Warnf("visible %d", 1)
			So(buf.String(), ShouldContainSubstring, "visible 1")
			So(buf.String(), ShouldContainSubstring, "player=p1")
		})

		Convey("Critical messages should not exit", func() {
			l.Criticalf("boom")
			So(buf.String(), ShouldContainSubstring, "critical: boom")
		})

		Convey("VerbosityNone should silence everything", func() {
			l.SetVerbosity(VerbosityNone)
			l.Criticalf("nothing")
			So(buf.String(), ShouldBeEmpty)
		})

		Convey("With should add a field", func() {
			l.With("backend", "null").Errorf("tagged")
			So(buf.String(), ShouldContainSubstring, "backend=null")
		})
	})
}
