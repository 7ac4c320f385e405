package event

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/playcore/playcore/baton"
	"github.com/playcore/playcore/fifo"
	"github.com/playcore/playcore/log"
)

// stopID is the reserved queue id that makes the dispatcher loop exit.
const stopID = -1

// DeliverFunc receives every event while the dispatcher holds the baton.
// ctx identifies the dispatcher; calls back into the player must pass it on.
type DeliverFunc func(ctx context.Context, code Code)

type ctxKey struct{}

// Dispatcher delivers event codes on its own goroutine, one at a time.
type Dispatcher struct {
	id      baton.ID
	baton   *baton.Baton
	queue   *fifo.Queue[struct{}]
	deliver DeliverFunc
	ctx     context.Context

	mu      sync.Mutex
	enabled bool

	delivering atomic.Bool
	started    atomic.Bool
	done       chan struct{}
}

// NewDispatcher returns a disabled dispatcher sharing b with the supervisor.
func NewDispatcher(b *baton.Baton, deliver DeliverFunc) *Dispatcher {
	d := &Dispatcher{
		id:      baton.NewID(),
		baton:   b,
		queue:   fifo.New[struct{}](),
		deliver: deliver,
		done:    make(chan struct{}),
	}
	d.ctx = context.WithValue(context.Background(), ctxKey{}, d.id)
	return d
}

// ID returns the identity the dispatcher catches the baton with.
func (d *Dispatcher) ID() baton.ID {
	return d.id
}

// Start launches the dispatcher goroutine.
func (d *Dispatcher) Start() {
	if d.started.Swap(true) {
		return
	}
	go d.run()
}

// Enable opens the gate; events sent before this are dropped.
func (d *Dispatcher) Enable() {
	d.mu.Lock()
	d.enabled = true
	d.mu.Unlock()
}

// Disable closes the gate. Events already queued are popped but not delivered.
func (d *Dispatcher) Disable() {
	d.mu.Lock()
	d.enabled = false
	d.mu.Unlock()
}

// Enabled reports whether events are currently accepted.
func (d *Dispatcher) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

// Send queues code for delivery and reports whether it was accepted.
// A code is accepted only while the dispatcher is enabled; when Send returns true the
// dispatcher is guaranteed to pop the code before its stop item.
func (d *Dispatcher) Send(code Code) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.enabled {
		log.Debugf("event %s dropped: dispatcher disabled", code)
		return false
	}

	if err := d.queue.Push(int(code), struct{}{}); err != nil {
		log.Errorf("event %s dropped: %v", code, err)
		return false
	}
	return true
}

// Delivering reports whether ctx belongs to this dispatcher and the dispatcher is
// currently inside the delivery function. Any goroutine holding ctx, or a context derived
// from it, matches.
func (d *Dispatcher) Delivering(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	id, ok := ctx.Value(ctxKey{}).(baton.ID)
	return ok && id == d.id && d.delivering.Load()
}

// Stop makes the loop exit once everything queued before it has been popped, and waits.
func (d *Dispatcher) Stop() {
	if !d.started.Load() {
		return
	}
	if err := d.queue.Push(stopID, struct{}{}); err != nil {
		log.Errorf("event dispatcher stop: %v", err)
		return
	}
	<-d.done
}

// Free releases the queue. The dispatcher must be stopped.
func (d *Dispatcher) Free() {
	d.queue.Free()
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for {
		id, _, ok := d.queue.Pop()
		if !ok || id == stopID {
			return
		}

		d.baton.Catch(d.id)
		if d.Enabled() {
			d.dispatch(Code(id))
		}
		d.baton.Release()
	}
}

func (d *Dispatcher) dispatch(code Code) {
	d.delivering.Store(true)
	defer d.delivering.Store(false)

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("event %s: delivery panicked: %v", code, r)
		}
	}()

	d.deliver(d.ctx, code)
}
