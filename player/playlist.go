package player

import (
	"context"

	"github.com/playcore/playcore/event"
	"github.com/playcore/playcore/mrl"
	"github.com/playcore/playcore/playlist"
)

// Add says whether an appended MRL waits its turn or plays at once.
type Add int

const (
	AddQueue Add = iota
	AddNow
)

type appendArgs struct {
	m    *mrl.MRL
	when Add
}

type loopArgs struct {
	loop  playlist.Loop
	count int
}

// Status is a snapshot of the playlist policy and cursor.
type Status struct {
	State     State
	Mode      Mode
	Loop      playlist.Loop
	LoopCount int
	Remaining int
	Shuffle   bool
	Position  int
	Len       int
}

// Current returns the current MRL, or nil when the playlist is empty.
func (p *Player) Current(ctx context.Context) (*mrl.MRL, error) {
	return get[*mrl.MRL](ctx, p, cmdCurrent, nil)
}

func (p *Player) doCurrent() (*mrl.MRL, error) {
	return p.playlist.Current(), nil
}

// SetCurrent moves the cursor to m. When m is not part of the playlist it replaces the
// current MRL, which is freed. Playback of the old MRL is stopped.
func (p *Player) SetCurrent(ctx context.Context, m *mrl.MRL) error {
	return p.call(ctx, cmdSetCurrent, mrlRef{m: m}, nil)
}

func (p *Player) doSetCurrent(in mrlRef) error {
	if in.m == nil {
		return ErrNoCurrent
	}
	if in.m != p.playlist.Current() {
		if err := p.halt(); err != nil {
			p.log.Warnf("stop before switching: %v", err)
		}
	}
	return p.playlist.SetCurrent(in.m)
}

// Append adds m at the end of the playlist. With AddNow it also becomes current and starts.
func (p *Player) Append(ctx context.Context, m *mrl.MRL, when Add) error {
	return p.call(ctx, cmdAppend, appendArgs{m: m, when: when}, nil)
}

func (p *Player) doAppend(in appendArgs) error {
	if err := p.playlist.Append(in.m); err != nil {
		return err
	}
	if in.when != AddNow {
		return nil
	}
	if err := p.playlist.SetCurrent(in.m); err != nil {
		return err
	}
	return p.play()
}

// RemoveCurrent stops playback and frees the current MRL.
func (p *Player) RemoveCurrent(ctx context.Context) error {
	return p.call(ctx, cmdRemoveCurrent, nil, nil)
}

func (p *Player) doRemoveCurrent() error {
	if p.playlist.Empty() {
		return ErrNoCurrent
	}
	if err := p.halt(); err != nil {
		p.log.Warnf("stop before remove: %v", err)
	}
	return p.playlist.RemoveCurrent()
}

// RemoveAll stops playback and frees every MRL of the playlist.
func (p *Player) RemoveAll(ctx context.Context) error {
	return p.call(ctx, cmdRemoveAll, nil, nil)
}

func (p *Player) doRemoveAll() error {
	if err := p.halt(); err != nil {
		p.log.Warnf("stop before clear: %v", err)
	}
	p.playlist.RemoveAll()
	return nil
}

// Previous moves one item back and, when something was playing, plays it.
// It reports false at the head of the playlist.
func (p *Player) Previous(ctx context.Context) (bool, error) {
	return get[bool](ctx, p, cmdPrevious, nil)
}

func (p *Player) doPrevious() (bool, error) {
	return p.step(p.playlist.Previous)
}

// Next moves one item forward and, when something was playing, plays it.
// It reports false at the tail of the playlist.
func (p *Player) Next(ctx context.Context) (bool, error) {
	return get[bool](ctx, p, cmdNext, nil)
}

func (p *Player) doNext() (bool, error) {
	return p.step(p.playlist.Next)
}

func (p *Player) step(move func() bool) (bool, error) {
	if !move() {
		return false, nil
	}
	if p.state == Idle {
		return true, nil
	}
	return true, p.play()
}

// Continue advances the way automatic playback would, honouring loop and shuffle, and
// plays the result. It reports false, and stops, when the playlist is over.
func (p *Player) Continue(ctx context.Context) (bool, error) {
	return get[bool](ctx, p, cmdContinue, nil)
}

func (p *Player) doContinue() (bool, error) {
	if !p.playlist.Advance() {
		if err := p.halt(); err != nil {
			p.log.Warnf("stop at end of playlist: %v", err)
		}
		p.emit(event.PlaylistFinished)
		return false, nil
	}
	return true, p.play()
}

// Playlist returns the MRLs in order.
func (p *Player) Playlist(ctx context.Context) ([]*mrl.MRL, error) {
	return get[[]*mrl.MRL](ctx, p, cmdPlaylist, nil)
}

func (p *Player) doPlaylist() ([]*mrl.MRL, error) {
	return p.playlist.Nodes(), nil
}

// SetLoop sets the repeat policy: count extra plays, or forever when negative.
func (p *Player) SetLoop(ctx context.Context, l playlist.Loop, count int) error {
	return p.call(ctx, cmdSetLoop, loopArgs{loop: l, count: count}, nil)
}

func (p *Player) doSetLoop(in loopArgs) error {
	p.playlist.SetLoop(in.loop, in.count)
	return nil
}

func (p *Player) Status(ctx context.Context) (Status, error) {
	return get[Status](ctx, p, cmdStatus, nil)
}

func (p *Player) doStatus() (Status, error) {
	loop, remaining := p.playlist.Loop()
	return Status{
		State:     p.state,
		Mode:      p.mode,
		Loop:      loop,
		LoopCount: p.playlist.LoopCount(),
		Remaining: remaining,
		Shuffle:   p.playlist.Shuffle(),
		Position:  p.playlist.Position(),
		Len:       p.playlist.Len(),
	}, nil
}

func (p *Player) SetShuffle(ctx context.Context, on bool) error {
	return p.call(ctx, cmdSetShuffle, on, nil)
}

func (p *Player) doSetShuffle(on bool) error {
	p.playlist.SetShuffle(on)
	return nil
}

// SetShuffleSeed makes the shuffle order reproducible.
func (p *Player) SetShuffleSeed(ctx context.Context, seed uint64) error {
	return p.call(ctx, cmdSetShuffleSeed, seed, nil)
}

func (p *Player) doSetShuffleSeed(seed uint64) error {
	p.playlist.SetSeed(seed)
	return nil
}

func (p *Player) SetMode(ctx context.Context, m Mode) error {
	return p.call(ctx, cmdSetMode, m, nil)
}

func (p *Player) doSetMode(m Mode) error {
	p.mode = m
	return nil
}

func (p *Player) Mode(ctx context.Context) (Mode, error) {
	return get[Mode](ctx, p, cmdMode, nil)
}

func (p *Player) doMode() (Mode, error) {
	return p.mode, nil
}
