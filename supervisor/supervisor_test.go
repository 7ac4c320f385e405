package supervisor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/playcore/playcore/baton"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	cmdAdd Command = iota
	cmdGet
	cmdSlow
	cmdFail
	cmdPanic
)

type counter struct {
	value   int
	history []int
	active  int
	overlap bool
}

func handlers() map[Command]Handler[*counter] {
	return map[Command]Handler[*counter]{
		cmdAdd: func(c *counter, in, _ any) error {
			c.active++
			if c.active > 1 {
				c.overlap = true
			}
			c.value += in.(int)
			c.history = append(c.history, c.value)
			c.active--
			return nil
		},
		cmdGet: func(c *counter, _, out any) error {
			if out != nil {
				*out.(*int) = c.value
			}
			return nil
		},
		cmdSlow: func(c *counter, _, _ any) error {
			time.Sleep(100 * time.Millisecond)
			c.value = -1
			return nil
		},
		cmdFail: func(*counter, any, any) error {
			return errors.New("rejected")
		},
		cmdPanic: func(*counter, any, any) error {
			panic("handler bug")
		},
	}
}

func TestSupervisor(t *testing.T) {
	Convey("Given a running supervisor", t, func() {
		state := &counter{}
		b := baton.New()
		sv := New(state, b, handlers())
		sv.Start()
		Reset(sv.Stop)

		ctx := context.Background()

		Convey("WaitForEnd should return the handler output", func() {
			So(sv.Send(ctx, cmdAdd, WaitForEnd, 5, nil), ShouldBeNil)

			var got int
			So(sv.Send(ctx, cmdGet, WaitForEnd, nil, &got), ShouldBeNil)
			So(got, ShouldEqual, 5)
		})

		Convey("Concurrent callers should observe a linearizable history", func() {
			const callers = 16

			var wg sync.WaitGroup
			for i := 0; i < callers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = sv.Send(ctx, cmdAdd, WaitForEnd, 1, nil)
				}()
			}
			wg.Wait()

			var got int
			So(sv.Send(ctx, cmdGet, WaitForEnd, nil, &got), ShouldBeNil)
			So(got, ShouldEqual, callers)
			So(state.overlap, ShouldBeFalse)
			for i, v := range state.history {
				So(v, ShouldEqual, i+1)
			}
		})

		Convey("NoWait should not accept input or output", func() {
			var got int
			err := sv.Send(ctx, cmdGet, NoWait, nil, &got)
			So(errors.Is(err, ErrContract), ShouldBeTrue)

			So(sv.Send(ctx, cmdSlow, NoWait, nil, nil), ShouldBeNil)
		})

		Convey("Unknown commands should be rejected", func() {
			err := sv.Send(ctx, Command(99), WaitForEnd, nil, nil)
			So(errors.Is(err, ErrUnknownCommand), ShouldBeTrue)

			err = sv.Send(ctx, Kill, WaitForEnd, nil, nil)
			So(errors.Is(err, ErrUnknownCommand), ShouldBeTrue)
		})

		Convey("Handler errors should reach WaitForEnd callers", func() {
			So(sv.Send(ctx, cmdFail, WaitForEnd, nil, nil).Error(), ShouldEqual, "rejected")
		})

		Convey("A panicking handler should not stop the loop", func() {
			So(sv.Send(ctx, cmdPanic, WaitForEnd, nil, nil), ShouldNotBeNil)
			So(sv.Send(ctx, cmdAdd, WaitForEnd, 2, nil), ShouldBeNil)
		})

		Convey("Handlers should run while holding the baton", func() {
			held := make(chan bool, 1)
			sv.handlers[cmdGet] = func(*counter, any, any) error {
				held <- b.Busy() && b.Owner().MustGet() == sv.ID()
				return nil
			}
			So(sv.Send(ctx, cmdGet, WaitForEnd, nil, nil), ShouldBeNil)
			So(<-held, ShouldBeTrue)
		})

		Convey("A cancelled wait should return while the job still runs", func() {
			short, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
			defer cancel()

			So(sv.Send(short, cmdSlow, WaitForEnd, nil, nil), ShouldEqual, context.DeadlineExceeded)

			var got int
			So(sv.Send(ctx, cmdGet, WaitForEnd, nil, &got), ShouldBeNil)
			So(got, ShouldEqual, -1)
		})
	})

	Convey("Given a supervisor with a re-entrancy guard", t, func() {
		state := &counter{value: 3}
		type marker struct{}
		guard := func(ctx context.Context) bool { return ctx.Value(marker{}) != nil }

		sv := New(state, baton.New(), handlers(), WithReentrancyGuard[*counter](guard))
		sv.Start()
		Reset(sv.Stop)

		Convey("Guarded WaitForEnd calls should be downgraded and drop their output", func() {
			got := 77
			ctx := context.WithValue(context.Background(), marker{}, true)
			So(sv.Send(ctx, cmdGet, WaitForEnd, nil, &got), ShouldBeNil)
			So(got, ShouldEqual, 77)

			So(sv.Send(ctx, cmdAdd, WaitForEnd, 1, nil), ShouldBeNil)

			var after int
			So(sv.Send(context.Background(), cmdGet, WaitForEnd, nil, &after), ShouldBeNil)
			So(after, ShouldEqual, 4)
		})
	})

	Convey("Given a stopped supervisor", t, func() {
		sv := New(&counter{}, baton.New(), handlers())
		sv.Start()
		sv.Stop()

		Convey("Send should fail", func() {
			So(sv.Send(context.Background(), cmdAdd, WaitForEnd, 1, nil), ShouldEqual, ErrClosed)
		})
	})
}
