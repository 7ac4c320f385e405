// Package player is the public face of playcore: a handle that owns a playlist and one bound
// playback backend, and serialises every operation on them.
//
// All methods are safe for concurrent use. Each one is turned into a supervisor job; by
// default the caller waits for the job to finish. Events are delivered to the frontend
// callback in the order they were emitted, on a goroutine of their own.
package player

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/playcore/playcore/backend"
	"github.com/playcore/playcore/baton"
	"github.com/playcore/playcore/event"
	"github.com/playcore/playcore/log"
	"github.com/playcore/playcore/playlist"
	"github.com/playcore/playcore/supervisor"
)

var (
	ErrNoCurrent           = errors.New("player: no current mrl")
	ErrClosed              = errors.New("player: closed")
	ErrNilHandle           = errors.New("player: nil handle")
	ErrUnsupportedResource = errors.New("player: resource kind not playable by this backend")
	ErrBadArgument         = errors.New("player: bad argument")
)

// State is the playback state.
type State int

const (
	Idle State = iota
	Paused
	Running
)

func (s State) String() string {
	switch s {
	case Paused:
		return "paused"
	case Running:
		return "running"
	default:
		return "idle"
	}
}

// Mode decides what happens when a stream finishes.
type Mode int

const (
	// Single stops after the current MRL.
	Single Mode = iota
	// Auto advances through the playlist.
	Auto
)

func (m Mode) String() string {
	if m == Auto {
		return "auto"
	}
	return "single"
}

type Options struct {
	AudioOutput string
	VideoOutput string
	Display     string
	Verbosity   log.Verbosity
	Mode        Mode
}

// Callback receives events on the dispatcher goroutine.
//
// A callback may call back into the player, but must pass the ctx it was given. Such calls
// never block: they are queued and the method returns at once with a zero result and a nil
// error, so getters called from a callback return nothing useful.
//
// The downgrade follows the ctx, not the goroutine. A goroutine started by the callback that
// passes on ctx, or a context derived from it, is downgraded too whenever it calls while an
// event is being delivered. Give such goroutines a fresh context when they need results.
type Callback func(ctx context.Context, e event.Code)

type Player struct {
	id       uuid.UUID
	kind     backend.Kind
	log      *log.Logger
	callback Callback
	options  backend.Options

	baton  *baton.Baton
	sv     *supervisor.Supervisor[*Player]
	events *event.Dispatcher
	closed atomic.Bool

	// generation changes whenever a stream starts or stops. ended is the generation a backend
	// last reported finished, so a late end of stream cannot touch the one playing now.
	generation atomic.Uint64
	ended      atomic.Uint64

	// Owned by the supervisor goroutine.
	ops      *backend.Ops
	playlist *playlist.Playlist
	state    State
	mode     Mode
}

// New creates a player on top of the backend registered as kind and initialises it.
// On failure nothing is left running.
func New(kind backend.Kind, opts Options, cb Callback) (*Player, error) {
	factory, err := backend.Lookup(kind)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	p := &Player{
		id:       id,
		kind:     kind,
		log:      log.New(map[string]interface{}{"player": id.String()}, opts.Verbosity),
		callback: cb,
		options: backend.Options{
			AudioOutput: opts.AudioOutput,
			VideoOutput: opts.VideoOutput,
			Display:     opts.Display,
		},
		playlist: playlist.New(),
		mode:     opts.Mode,
	}
	p.ops = backend.Bind(string(kind), factory(), p.log)

	p.baton = baton.New()
	p.events = event.NewDispatcher(p.baton, p.deliver)
	p.sv = supervisor.New(p, p.baton, handlers(),
		supervisor.WithReentrancyGuard[*Player](p.events.Delivering),
		supervisor.WithNames[*Player](names),
	)

	p.events.Start()
	p.sv.Start()

	if err := p.sv.Send(context.Background(), cmdInit, supervisor.WaitForEnd, nil, nil); err != nil {
		p.events.Stop()
		p.sv.Stop()
		p.events.Free()
		return nil, fmt.Errorf("init %s: %w", kind, err)
	}

	p.events.Enable()
	p.log.Infof("player ready on %s", kind)
	return p, nil
}

func (p *Player) ID() uuid.UUID {
	return p.id
}

// Backend returns the kind of the backend the player was created with.
func (p *Player) Backend() backend.Kind {
	return p.kind
}

// Capabilities lists what the bound backend implements.
func (p *Player) Capabilities() []string {
	return p.ops.Capabilities()
}

// Close stops event delivery, uninitialises the backend and frees the player.
//
// Called from the event callback it cannot wait for the dispatcher it runs on, so the
// teardown then finishes in the background.
func (p *Player) Close(ctx context.Context) error {
	if p == nil {
		return ErrNilHandle
	}
	if !p.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	if p.events.Delivering(ctx) {
		go p.teardown()
		return nil
	}
	p.teardown()
	return nil
}

func (p *Player) teardown() {
	p.events.Disable()
	p.events.Stop()

	if err := p.sv.Send(context.Background(), cmdUninit, supervisor.WaitForEnd, nil, nil); err != nil {
		p.log.Errorf("uninit: %v", err)
	}

	p.sv.Stop()
	p.events.Free()
	p.log.Infof("player closed")
}

// Notify implements backend.Host. It is called from backend goroutines and only queues.
func (p *Player) Notify(code event.Code) {
	if code == event.PlaybackFinished {
		p.ended.Store(p.generation.Load())
	}
	p.events.Send(code)
}

// Options implements backend.Host.
func (p *Player) Options() backend.Options {
	return p.options
}

// emit queues code from inside a job and hands the baton to the dispatcher, so the event is
// delivered before the job goes on.
func (p *Player) emit(code event.Code) {
	if p.events.Send(code) {
		p.baton.Recatch(p.sv.ID(), p.events.ID())
	}
}

func (p *Player) deliver(ctx context.Context, code event.Code) {
	if code == event.PlaybackFinished {
		if err := p.sv.Send(ctx, cmdNextPlay, supervisor.NoWait, p.ended.Load(), nil); err != nil {
			p.log.Errorf("queue next play: %v", err)
		}
	}

	if p.callback != nil {
		p.callback(ctx, code)
	}
}

// call runs cmd and waits for it, unless the caller is the event callback.
func (p *Player) call(ctx context.Context, cmd supervisor.Command, in, out any) error {
	if p == nil {
		return ErrNilHandle
	}
	if p.closed.Load() {
		return ErrClosed
	}

	err := p.sv.Send(ctx, cmd, supervisor.WaitForEnd, in, out)
	if errors.Is(err, supervisor.ErrClosed) {
		return ErrClosed
	}
	return err
}

func get[O any](ctx context.Context, p *Player, cmd supervisor.Command, in any) (O, error) {
	var v O
	err := p.call(ctx, cmd, in, &v)
	return v, err
}
