package util

import (
	"testing"

	"github.com/playcore/playcore/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "item", "items"), ShouldEqual, "1 item")
		So(Quantify(2, "item", "items"), ShouldEqual, "2 items")
		So(Quantify(0, "item", "items"), ShouldEqual, "0 items")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestMax(t *testing.T) {
	Convey("Max", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		fs := filesystem.API()

		Convey("Should remove a file", func() {
			lo.Must0(fs.WriteFile("/tmp/util/file", []byte("x"), 0644))
			So(Delete("/tmp/util/file"), ShouldBeNil)
			So(lo.Must(fs.Exists("/tmp/util/file")), ShouldBeFalse)
		})

		Convey("Should remove a directory tree", func() {
			lo.Must0(fs.WriteFile("/tmp/util/dir/a/b", []byte("x"), 0644))
			So(Delete("/tmp/util/dir"), ShouldBeNil)
			So(lo.Must(fs.Exists("/tmp/util/dir")), ShouldBeFalse)
		})

		Convey("Should fail on a missing path", func() {
			So(Delete("/tmp/util/missing"), ShouldNotBeNil)
		})
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]
		s.Push(1)
		s.Push(2)
		So(s.Len(), ShouldEqual, 2)
		So(s.Peek(), ShouldEqual, 2)
		item := s.Pop()
		So(item, ShouldEqual, 2)
		item = s.Pop()
		So(item, ShouldEqual, 1)
		item = s.Pop()
		So(item, ShouldEqual, 0)

		s.Push(3)
		s.Clear()
		So(s.Len(), ShouldEqual, 0)
	})
}
