package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/playcore/playcore/baton"
	. "github.com/smartystreets/goconvey/convey"
)

type recorder struct {
	mu    sync.Mutex
	codes []Code
	got   chan Code
}

func newRecorder() *recorder {
	return &recorder{got: make(chan Code, 16)}
}

func (r *recorder) deliver(_ context.Context, code Code) {
	r.mu.Lock()
	r.codes = append(r.codes, code)
	r.mu.Unlock()
	r.got <- code
}

func (r *recorder) wait(t *testing.T) Code {
	select {
	case c := <-r.got:
		return c
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
		return Unknown
	}
}

func TestCodes(t *testing.T) {
	Convey("Event codes", t, func() {
		So(PlaybackFinished.String(), ShouldEqual, "playback-finished")
		So(Code(42).String(), ShouldEqual, "unknown")
		So(len(Codes()), ShouldEqual, 7)
	})
}

func TestDispatcher(t *testing.T) {
	Convey("Given a started dispatcher", t, func() {
		b := baton.New()
		rec := newRecorder()
		d := NewDispatcher(b, rec.deliver)
		d.Start()
		Reset(func() {
			d.Disable()
			d.Stop()
			d.Free()
		})

		Convey("It should drop events until enabled", func() {
			So(d.Send(PlaybackStart), ShouldBeFalse)

			d.Enable()
			So(d.Send(PlaybackStop), ShouldBeTrue)
			So(rec.wait(t), ShouldEqual, PlaybackStop)
		})

		Convey("It should deliver in send order", func() {
			d.Enable()
			d.Send(PlaybackStart)
			d.Send(PlaybackPause)
			d.Send(PlaybackUnpause)

			So(rec.wait(t), ShouldEqual, PlaybackStart)
			So(rec.wait(t), ShouldEqual, PlaybackPause)
			So(rec.wait(t), ShouldEqual, PlaybackUnpause)
		})

		Convey("It should hold the baton while delivering", func() {
			seen := make(chan bool, 1)
			d.deliver = func(ctx context.Context, _ Code) {
				owner, _ := b.Owner().Get()
				seen <- b.Busy() && owner == d.ID()
			}
			d.Enable()
			d.Send(PlaybackStart)

			select {
			case held := <-seen:
				So(held, ShouldBeTrue)
			case <-time.After(time.Second):
				t.Fatal("no delivery")
			}
		})

		Convey("Delivering should recognise only its own callback context", func() {
			inside := make(chan bool, 1)
			d.deliver = func(ctx context.Context, _ Code) {
				inside <- d.Delivering(ctx)
			}
			d.Enable()
			d.Send(PlaybackStart)

			select {
			case ok := <-inside:
				So(ok, ShouldBeTrue)
			case <-time.After(time.Second):
				t.Fatal("no delivery")
			}
			So(d.Delivering(context.Background()), ShouldBeFalse)
		})

		Convey("Delivering should follow the callback context to other goroutines until delivery ends", func() {
			type sample struct{ during, after bool }
			kept := make(chan context.Context, 1)
			out := make(chan sample, 1)
			d.deliver = func(ctx context.Context, _ Code) {
				child, cancel := context.WithCancel(ctx)
				defer cancel()

				during := make(chan bool, 1)
				go func() { during <- d.Delivering(child) }()
				kept <- ctx
				out <- sample{during: <-during}
			}
			d.Enable()
			d.Send(PlaybackStart)

			var s sample
			select {
			case s = <-out:
			case <-time.After(time.Second):
				t.Fatal("no delivery")
			}
			So(s.during, ShouldBeTrue)

			ctx := <-kept
			So(waitUntil(func() bool { return !d.Delivering(ctx) }), ShouldBeTrue)
		})

		Convey("A panicking callback should not kill the loop", func() {
			calls := 0
			d.deliver = func(ctx context.Context, code Code) {
				calls++
				if calls == 1 {
					panic("frontend bug")
				}
				rec.deliver(ctx, code)
			}
			d.Enable()
			d.Send(PlaybackStart)
			d.Send(PlaybackStop)
			So(rec.wait(t), ShouldEqual, PlaybackStop)
		})
	})
}

func waitUntil(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}
