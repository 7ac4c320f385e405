package player

import (
	"context"
	"fmt"
	"time"

	"github.com/playcore/playcore/backend"
	"github.com/playcore/playcore/event"
)

type seekArgs struct {
	value  int
	whence backend.Whence
}

type chapterArgs struct {
	value    int
	absolute bool
}

// Start plays the current MRL from the beginning.
func (p *Player) Start(ctx context.Context) error {
	return p.call(ctx, cmdStart, nil, nil)
}

func (p *Player) doStart() error {
	return p.play()
}

// Stop is a no-op when nothing is playing.
func (p *Player) Stop(ctx context.Context) error {
	return p.call(ctx, cmdStop, nil, nil)
}

func (p *Player) doStop() error {
	return p.halt()
}

// Pause toggles between paused and running.
func (p *Player) Pause(ctx context.Context) error {
	return p.call(ctx, cmdPause, nil, nil)
}

func (p *Player) doPause() error {
	switch p.state {
	case Running:
		if err := p.ops.Pause(); err != nil {
			return err
		}
		p.state = Paused
		p.emit(event.PlaybackPause)
	case Paused:
		if err := p.ops.Pause(); err != nil {
			return err
		}
		p.state = Running
		p.emit(event.PlaybackUnpause)
	default:
		return backend.ErrNotRunning
	}
	return nil
}

// Seek moves within the stream. value is in seconds, or a percentage with SeekPercent.
func (p *Player) Seek(ctx context.Context, value int, whence backend.Whence) error {
	return p.call(ctx, cmdSeek, seekArgs{value: value, whence: whence}, nil)
}

func (p *Player) doSeek(in seekArgs) error {
	if p.state == Idle {
		return backend.ErrNotRunning
	}
	if in.whence == backend.SeekPercent && (in.value < 0 || in.value > 100) {
		return fmt.Errorf("%w: percentage %d", ErrBadArgument, in.value)
	}
	return p.ops.Seek(in.value, in.whence)
}

func (p *Player) SeekChapter(ctx context.Context, value int, absolute bool) error {
	return p.call(ctx, cmdSeekChapter, chapterArgs{value: value, absolute: absolute}, nil)
}

func (p *Player) doSeekChapter(in chapterArgs) error {
	if p.state == Idle {
		return backend.ErrNotRunning
	}
	return p.ops.SeekChapter(in.value, in.absolute)
}

// SetSpeed sets the playback rate; 1 is normal speed.
func (p *Player) SetSpeed(ctx context.Context, speed float64) error {
	return p.call(ctx, cmdSetSpeed, speed, nil)
}

func (p *Player) doSetSpeed(speed float64) error {
	if speed <= 0 {
		return fmt.Errorf("%w: speed %v", ErrBadArgument, speed)
	}
	return p.ops.SetSpeed(speed)
}

func (p *Player) State(ctx context.Context) (State, error) {
	return get[State](ctx, p, cmdState, nil)
}

func (p *Player) doState() (State, error) {
	return p.state, nil
}

func (p *Player) TimePosition(ctx context.Context) (time.Duration, error) {
	return get[time.Duration](ctx, p, cmdTimePosition, nil)
}

func (p *Player) doTimePosition() (time.Duration, error) {
	if p.state == Idle {
		return 0, backend.ErrNotRunning
	}
	return p.ops.TimePosition()
}

func (p *Player) PercentPosition(ctx context.Context) (int, error) {
	return get[int](ctx, p, cmdPercentPosition, nil)
}

func (p *Player) doPercentPosition() (int, error) {
	if p.state == Idle {
		return 0, backend.ErrNotRunning
	}
	return p.ops.PercentPosition()
}
