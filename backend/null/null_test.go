package null

import (
	"sync"
	"testing"
	"time"

	"github.com/playcore/playcore/backend"
	"github.com/playcore/playcore/event"
	"github.com/playcore/playcore/mrl"
	. "github.com/smartystreets/goconvey/convey"
)

type host struct {
	mu     sync.Mutex
	events []event.Code
	done   chan struct{}
}

func newHost() *host {
	return &host{done: make(chan struct{}, 8)}
}

func (h *host) Notify(code event.Code) {
	h.mu.Lock()
	h.events = append(h.events, code)
	h.mu.Unlock()
	h.done <- struct{}{}
}

func (h *host) Options() backend.Options { return backend.Options{} }

func TestNull(t *testing.T) {
	Convey("Given a null engine", t, func() {
		m, _ := mrl.New(mrl.File, &mrl.Local{Location: "/music/a.ogg"})
		h := newHost()

		Convey("A short stream should finish on its own", func() {
			n := New(20 * time.Millisecond)
			So(n.Init(h), ShouldBeNil)
			So(n.Start(m), ShouldBeNil)

			select {
			case <-h.done:
			case <-time.After(time.Second):
				t.Fatal("no finish notification")
			}
			So(h.events, ShouldResemble, []event.Code{event.PlaybackFinished})
			So(n.Stop(), ShouldEqual, backend.ErrNotRunning)
		})

		Convey("A stopped stream should not report", func() {
			n := New(30 * time.Millisecond)
			So(n.Init(h), ShouldBeNil)
			So(n.Start(m), ShouldBeNil)
			So(n.Stop(), ShouldBeNil)

			select {
			case <-h.done:
				t.Fatal("stopped stream finished")
			case <-time.After(80 * time.Millisecond):
			}
		})

		Convey("Seeking should move the position", func() {
			n := New(time.Hour)
			So(n.Init(h), ShouldBeNil)
			So(n.Start(m), ShouldBeNil)
			So(n.Pause(), ShouldBeNil)

			So(n.Seek(90, backend.SeekAbsolute), ShouldBeNil)
			pos, err := n.TimePosition()
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, 90*time.Second)

			So(n.Seek(50, backend.SeekPercent), ShouldBeNil)
			pct, _ := n.PercentPosition()
			So(pct, ShouldEqual, 50)

			So(n.Seek(-7200, backend.SeekRelative), ShouldBeNil)
			pos, _ = n.TimePosition()
			So(pos, ShouldEqual, 0)
			n.Uninit()
		})

		Convey("Metadata should name the file", func() {
			var md mrl.Metadata
			So(New(0).RetrieveMetadata(m, &md), ShouldBeNil)
			So(md.Title, ShouldEqual, "a.ogg")
		})

		Convey("Binding should expose its capabilities", func() {
			ops := backend.Bind(string(Kind), New(0), nil)
			So(ops.Supports(backend.CapStart), ShouldBeTrue)
			So(ops.Supports(backend.CapVolume), ShouldBeTrue)
			So(ops.Supports(backend.CapDVD), ShouldBeFalse)
		})

		Convey("It should be registered", func() {
			_, err := backend.Lookup(Kind)
			So(err, ShouldBeNil)
		})
	})
}
