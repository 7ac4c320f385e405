package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/playcore/playcore/backend"
	"github.com/playcore/playcore/event"
	"github.com/playcore/playcore/log"
)

func (p *Player) doInit() error {
	if err := p.ops.Init(p); err != nil {
		return err
	}
	p.ops.SetVerbosity(p.log.Verbosity())
	return nil
}

func (p *Player) doUninit() error {
	if p.state != Idle {
		if err := p.ops.Stop(); err != nil {
			p.log.Warnf("stop on uninit: %v", err)
		}
		p.state = Idle
		p.generation.Add(1)
	}
	p.playlist.RemoveAll()
	p.ops.Uninit()
	return nil
}

// doNextPlay runs after the backend reported the end of the stream of generation gen.
// It does nothing when that stream was already stopped or replaced.
func (p *Player) doNextPlay(gen uint64) error {
	if p.state == Idle || gen != p.generation.Load() {
		p.log.Verbosef("stale end of stream %d ignored", gen)
		return nil
	}

	p.state = Idle
	p.generation.Add(1)
	if p.mode != Auto {
		return nil
	}

	if !p.playlist.Advance() {
		p.log.Infof("playlist finished")
		p.emit(event.PlaylistFinished)
		return nil
	}
	return p.play()
}

// play starts the current MRL, stopping whatever was playing.
func (p *Player) play() error {
	m := p.playlist.Current()
	if m == nil {
		return ErrNoCurrent
	}

	if err := p.halt(); err != nil {
		p.log.Warnf("stop before start: %v", err)
	}

	p.generation.Add(1)
	if err := p.ops.Start(m); err != nil {
		return fmt.Errorf("start %s: %w", m, err)
	}
	p.state = Running
	p.log.Verbosef("playing %s", m)
	p.emit(event.PlaybackStart)
	return nil
}

// halt stops playback if there is any.
func (p *Player) halt() error {
	if p.state == Idle {
		return nil
	}
	err := p.ops.Stop()
	p.state = Idle
	p.generation.Add(1)
	p.emit(event.PlaybackStop)
	// The stream may have ended on its own while the next play job was queued.
	if errors.Is(err, backend.ErrNotRunning) {
		return nil
	}
	return err
}

// SetVerbosity changes the threshold of the player's messages and forwards it to the backend.
func (p *Player) SetVerbosity(ctx context.Context, v log.Verbosity) error {
	if p == nil {
		return ErrNilHandle
	}
	p.log.SetVerbosity(v)
	return p.call(ctx, cmdSetVerbosity, v, nil)
}

// Verbosity does not go through the supervisor.
func (p *Player) Verbosity() log.Verbosity {
	if p == nil {
		return log.VerbosityNone
	}
	return p.log.Verbosity()
}

func (p *Player) doSetVerbosity(v log.Verbosity) error {
	p.ops.SetVerbosity(v)
	return nil
}
