package baton

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBaton(t *testing.T) {
	Convey("Given a baton and two parties", t, func() {
		b := New()
		sv, ev := NewID(), NewID()

		Convey("It should start unowned and idle", func() {
			So(b.Owner().IsAbsent(), ShouldBeTrue)
			So(b.Busy(), ShouldBeFalse)
		})

		Convey("Catch should record the owner", func() {
			b.Catch(sv)
			So(b.Busy(), ShouldBeTrue)
			So(b.Owner().MustGet(), ShouldEqual, sv)

			Convey("And the owner may catch again without blocking", func() {
				done := make(chan struct{})
				go func() {
					b.Catch(sv)
					close(done)
				}()
				select {
				case <-done:
				case <-time.After(time.Second):
					t.Fatal("re-entrant catch blocked")
				}
			})
		})

		Convey("A second party should wait until release", func() {
			b.Catch(sv)

			caught := make(chan struct{})
			go func() {
				b.Catch(ev)
				close(caught)
			}()

			select {
			case <-caught:
				t.Fatal("caught a busy baton")
			case <-time.After(50 * time.Millisecond):
			}

			b.Release()

			select {
			case <-caught:
				So(b.Owner().MustGet(), ShouldEqual, ev)
			case <-time.After(time.Second):
				t.Fatal("waiter never woke up")
			}
		})

		Convey("Recatch should run the target before returning", func() {
			var order []string
			orderCh := make(chan string, 4)

			b.Catch(sv)

			go func() {
				b.Catch(ev)
				orderCh <- "dispatcher"
				b.Release()
			}()

			time.Sleep(20 * time.Millisecond)
			b.Recatch(sv, ev)
			orderCh <- "supervisor"

			order = append(order, <-orderCh, <-orderCh)
			So(order, ShouldResemble, []string{"dispatcher", "supervisor"})
			So(b.Owner().MustGet(), ShouldEqual, sv)
			So(b.Busy(), ShouldBeTrue)
			b.Release()
		})

		Convey("Recatch should hand over even if the target arrives late", func() {
			b.Catch(sv)

			back := make(chan struct{})
			go func() {
				b.Recatch(sv, ev)
				close(back)
			}()

			time.Sleep(20 * time.Millisecond)
			select {
			case <-back:
				t.Fatal("recatch returned before the target ran")
			default:
			}

			b.Catch(ev)
			b.Release()

			select {
			case <-back:
			case <-time.After(time.Second):
				t.Fatal("baton never returned to the supervisor")
			}
		})
	})
}
