package fifo

import (
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQueue(t *testing.T) {
	Convey("Given an empty queue", t, func() {
		q := New[string]()

		Convey("Items should come out in push order", func() {
			So(q.Push(1, "a"), ShouldBeNil)
			So(q.Push(2, "b"), ShouldBeNil)
			So(q.Push(3, "c"), ShouldBeNil)
			So(q.Len(), ShouldEqual, 3)

			for _, want := range []struct {
				id      int
				payload string
			}{{1, "a"}, {2, "b"}, {3, "c"}} {
				id, payload, ok := q.Pop()
				So(ok, ShouldBeTrue)
				So(id, ShouldEqual, want.id)
				So(payload, ShouldEqual, want.payload)
			}
			So(q.Len(), ShouldEqual, 0)
		})

		Convey("Pop should block until an item is pushed", func() {
			got := make(chan int, 1)
			go func() {
				id, _, _ := q.Pop()
				got <- id
			}()

			select {
			case <-got:
				t.Fatal("pop returned on an empty queue")
			case <-time.After(50 * time.Millisecond):
			}

			So(q.Push(7, "x"), ShouldBeNil)

			select {
			case id := <-got:
				So(id, ShouldEqual, 7)
			case <-time.After(time.Second):
				t.Fatal("pop did not wake up")
			}
		})

		Convey("Concurrent producers should not lose items", func() {
			const producers, perProducer = 8, 100

			var wg sync.WaitGroup
			for p := 0; p < producers; p++ {
				wg.Add(1)
				go func(p int) {
					defer wg.Done()
					for i := 0; i < perProducer; i++ {
						_ = q.Push(p*perProducer+i, "")
					}
				}(p)
			}
			wg.Wait()

			seen := make(map[int]bool)
			for i := 0; i < producers*perProducer; i++ {
				id, _, ok := q.Pop()
				So(ok, ShouldBeTrue)
				seen[id] = true
			}
			So(len(seen), ShouldEqual, producers*perProducer)
		})

		Convey("Free should release a blocked consumer and reject pushes", func() {
			done := make(chan bool, 1)
			go func() {
				_, _, ok := q.Pop()
				done <- ok
			}()

			time.Sleep(20 * time.Millisecond)
			q.Free()

			select {
			case ok := <-done:
				So(ok, ShouldBeFalse)
			case <-time.After(time.Second):
				t.Fatal("pop still blocked after free")
			}

			So(q.Push(1, "late"), ShouldEqual, ErrFreed)
		})
	})
}
