// Package supervisor runs every command against a piece of state on one dedicated goroutine.
//
// Callers submit commands by id; the supervisor looks the handler up in its own registry and
// runs it while holding the baton it shares with the event dispatcher. Because handlers run
// strictly one at a time, the state they touch needs no further locking.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/playcore/playcore/baton"
	"github.com/playcore/playcore/fifo"
	"github.com/playcore/playcore/log"
)

var (
	ErrUnknownCommand = errors.New("supervisor: unknown command")
	ErrContract       = errors.New("supervisor: NoWait call with input or output")
	ErrClosed         = errors.New("supervisor: closed")
)

// Command identifies a handler in a supervisor registry.
type Command int

// Kill is reserved: it stops the supervisor loop and is only used at teardown.
const Kill Command = -1

// Mode tells Send whether to wait for the handler to run.
type Mode int

const (
	// WaitForEnd blocks the caller until the handler has run.
	WaitForEnd Mode = iota
	// NoWait queues the job and returns immediately. in and out must be nil.
	NoWait
)

func (m Mode) String() string {
	if m == NoWait {
		return "no-wait"
	}
	return "wait-for-end"
}

// Handler runs one command against the supervised state.
type Handler[S any] func(s S, in, out any) error

// Guard reports whether a call is being made from inside the frontend callback.
type Guard func(ctx context.Context) bool

type job struct {
	cmd  Command
	in   any
	out  any
	done chan struct{}
	err  error
}

// Supervisor serializes commands on a single goroutine.
type Supervisor[S any] struct {
	id       baton.ID
	state    S
	handlers map[Command]Handler[S]
	names    map[Command]string
	queue    *fifo.Queue[*job]
	baton    *baton.Baton
	guard    Guard

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// Option configures a Supervisor.
type Option[S any] func(*Supervisor[S])

// WithReentrancyGuard installs the predicate used to downgrade calls issued from the
// frontend callback.
func WithReentrancyGuard[S any](g Guard) Option[S] {
	return func(s *Supervisor[S]) { s.guard = g }
}

// WithNames attaches printable command names used in log messages.
func WithNames[S any](names map[Command]string) Option[S] {
	return func(s *Supervisor[S]) { s.names = names }
}

// New creates a stopped supervisor owning a private copy of handlers.
func New[S any](state S, b *baton.Baton, handlers map[Command]Handler[S], opts ...Option[S]) *Supervisor[S] {
	s := &Supervisor[S]{
		id:       baton.NewID(),
		state:    state,
		handlers: make(map[Command]Handler[S], len(handlers)),
		queue:    fifo.New[*job](),
		baton:    b,
		done:     make(chan struct{}),
	}
	for cmd, h := range handlers {
		if cmd == Kill {
			continue
		}
		s.handlers[cmd] = h
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the identity the supervisor catches the baton with.
func (s *Supervisor[S]) ID() baton.ID {
	return s.id
}

// Start launches the supervisor goroutine.
func (s *Supervisor[S]) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	go s.run()
}

// Send submits cmd.
//
// With WaitForEnd, Send returns once the handler has run, with the handler's error. If ctx
// is done first Send returns ctx.Err(); the job still runs later.
//
// A WaitForEnd call recognised by the re-entrancy guard is silently downgraded to NoWait:
// the handler runs later with a nil out, and the caller gets nil immediately. The caller's
// out is left untouched.
func (s *Supervisor[S]) Send(ctx context.Context, cmd Command, mode Mode, in, out any) error {
	// Kill never has a handler: Stop is the only way to issue it.
	if _, ok := s.handlers[cmd]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownCommand, cmd)
	}

	if mode == NoWait && (in != nil || out != nil) {
		return fmt.Errorf("%w: %s", ErrContract, s.name(cmd))
	}

	if mode == WaitForEnd && s.guard != nil && s.guard(ctx) {
		log.Debugf("supervisor: %s called from the frontend callback, running it without waiting", s.name(cmd))
		mode = NoWait
		out = nil
	}

	j := &job{cmd: cmd, in: in, out: out}
	if mode == WaitForEnd {
		j.done = make(chan struct{})
	}

	if err := s.queue.Push(int(cmd), j); err != nil {
		log.Errorf("supervisor: %s dropped: %v", s.name(cmd), err)
		return ErrClosed
	}

	if j.done == nil {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-j.done:
		return j.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop sends Kill, waits for the loop to exit and frees the queue.
// Jobs queued before Kill still run; waiters on jobs queued after it get ErrClosed.
func (s *Supervisor[S]) Stop() {
	s.mu.Lock()
	running := s.running
	s.running = false
	s.mu.Unlock()

	if running {
		if err := s.queue.Push(int(Kill), &job{cmd: Kill}); err != nil {
			log.Errorf("supervisor: kill dropped: %v", err)
			return
		}
		<-s.done
	}

	for _, j := range s.queue.Free() {
		if j.done != nil {
			j.err = ErrClosed
			close(j.done)
		}
	}
}

func (s *Supervisor[S]) run() {
	defer close(s.done)

	for {
		_, j, ok := s.queue.Pop()
		if !ok || j.cmd == Kill {
			return
		}

		s.baton.Catch(s.id)
		err := s.dispatch(j)
		if j.done != nil {
			j.err = err
			close(j.done)
		} else if err != nil {
			log.Warnf("supervisor: %s: %v", s.name(j.cmd), err)
		}
		s.baton.Release()
	}
}

func (s *Supervisor[S]) dispatch(j *job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("supervisor: %s panicked: %v", s.name(j.cmd), r)
			log.Errorf("%v", err)
		}
	}()

	return s.handlers[j.cmd](s.state, j.in, j.out)
}

func (s *Supervisor[S]) name(cmd Command) string {
	if cmd == Kill {
		return "kill"
	}
	if name, ok := s.names[cmd]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(cmd))
}
