// Package playlist keeps the cursor into a chain of MRLs together with the loop and shuffle
// policy that decides what plays next.
//
// A Playlist is not safe for concurrent use.
package playlist

import (
	"errors"
	"math/rand/v2"

	"github.com/playcore/playcore/mrl"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

var (
	ErrEmpty    = errors.New("playlist: empty")
	ErrNotFound = errors.New("playlist: mrl is not part of this playlist")
)

type Playlist struct {
	current *mrl.MRL

	loop          Loop
	loopInitial   int
	loopRemaining int

	shuffle bool
	seed    mo.Option[uint64]
	rng     *rand.Rand
	perm    []int
	permPos int
}

func New() *Playlist {
	return &Playlist{}
}

// Current returns the current MRL or nil when the playlist is empty.
func (p *Playlist) Current() *mrl.MRL {
	return p.current
}

func (p *Playlist) Empty() bool {
	return p.current == nil
}

func (p *Playlist) Len() int {
	if p.current == nil {
		return 0
	}
	return p.current.Count()
}

// Nodes returns the MRLs in link order.
func (p *Playlist) Nodes() []*mrl.MRL {
	if p.current == nil {
		return nil
	}
	return p.current.Chain()
}

// Position returns the index of the current MRL, or -1.
func (p *Playlist) Position() int {
	if p.current == nil {
		return -1
	}
	return p.current.Position()
}

func (p *Playlist) Contains(m *mrl.MRL) bool {
	return m != nil && lo.Contains(p.Nodes(), m)
}

// SetCurrent moves the cursor to m when m belongs to the playlist. A lone m takes the place of
// the current MRL, which is freed. On an empty playlist m becomes its only item.
func (p *Playlist) SetCurrent(m *mrl.MRL) error {
	switch {
	case m == nil:
		return ErrNotFound
	case m.Freed():
		return mrl.ErrFreed
	case p.current == nil:
		if m.Linked() {
			return mrl.ErrLinked
		}
	case p.Contains(m):
	default:
		old := p.current
		if err := old.Replace(m); err != nil {
			return err
		}
		old.Free()
	}

	p.move(m)
	return nil
}

// Append links m after the last MRL. On an empty playlist m becomes current.
func (p *Playlist) Append(m *mrl.MRL) error {
	if m == nil {
		return ErrNotFound
	}
	if p.current == nil {
		if m.Freed() {
			return mrl.ErrFreed
		}
		if m.Linked() {
			return mrl.ErrLinked
		}
		p.move(m)
		return nil
	}
	return p.current.Append(m)
}

// RemoveCurrent frees the current MRL. The cursor moves to the next MRL, or the previous one
// when the removed MRL was last.
func (p *Playlist) RemoveCurrent() error {
	if p.current == nil {
		return ErrEmpty
	}

	old := p.current
	next := old.Next()
	if next == nil {
		next = old.Prev()
	}
	old.Free()
	p.move(next)
	return nil
}

// Remove frees m, which must belong to the playlist.
func (p *Playlist) Remove(m *mrl.MRL) error {
	if m == p.current {
		return p.RemoveCurrent()
	}
	if !p.Contains(m) {
		return ErrNotFound
	}
	m.Free()
	p.perm = nil
	return nil
}

// RemoveAll frees every MRL.
func (p *Playlist) RemoveAll() {
	for _, m := range p.Nodes() {
		m.Free()
	}
	p.move(nil)
}

// Previous moves the cursor one link back. It reports false at the head.
func (p *Playlist) Previous() bool {
	if p.current == nil || p.current.Prev() == nil {
		return false
	}
	p.move(p.current.Prev())
	return true
}

// Next moves the cursor one link forward. It reports false at the tail.
func (p *Playlist) Next() bool {
	if p.current == nil || p.current.Next() == nil {
		return false
	}
	p.move(p.current.Next())
	return true
}

// First rewinds the cursor to the head.
func (p *Playlist) First() {
	if p.current != nil {
		p.move(p.current.First())
	}
}

// move is every cursor change made outside Advance. It restores the configured loop count and
// starts a new shuffled pass from m.
func (p *Playlist) move(m *mrl.MRL) {
	p.current = m
	p.loopRemaining = p.loopInitial
	p.perm = nil
}

// SetLoop configures the repeat policy. count is the number of extra plays: 0 plays once,
// a negative count repeats forever.
func (p *Playlist) SetLoop(l Loop, count int) {
	p.loop = l
	p.loopInitial = count
	p.loopRemaining = count
}

// Loop returns the active policy and the repeats left.
func (p *Playlist) Loop() (Loop, int) {
	return p.loop, p.loopRemaining
}

// LoopCount returns the configured repeat count.
func (p *Playlist) LoopCount() int {
	return p.loopInitial
}

// SetShuffle toggles shuffled advancement under LoopPlaylist. Enabling it draws a fresh
// permutation in which the current MRL counts as already played.
func (p *Playlist) SetShuffle(on bool) {
	p.shuffle = on
	p.perm = nil
	if on && p.current != nil {
		p.reshuffleFrom(p.current.Position(), p.current.Count())
	}
}

func (p *Playlist) Shuffle() bool {
	return p.shuffle
}

// SetSeed fixes the shuffle seed and restarts the generator from it.
func (p *Playlist) SetSeed(seed uint64) {
	p.seed = mo.Some(seed)
	p.rng = newRand(seed)
	p.perm = nil
}

// Seed returns the seed in use, if one was set or drawn.
func (p *Playlist) Seed() mo.Option[uint64] {
	return p.seed
}

// Advance selects what plays next under automatic playback. It reports false when playback
// must stop.
func (p *Playlist) Advance() bool {
	if p.current == nil {
		return false
	}

	if p.loop == LoopElement {
		switch {
		case p.loopRemaining < 0:
			return true
		case p.loopRemaining > 0:
			p.loopRemaining--
			return true
		}
		p.loop = LoopDisable
	}

	if p.shuffle && p.loop == LoopPlaylist {
		return p.advanceShuffled()
	}

	if next := p.current.Next(); next != nil {
		p.current = next
		return true
	}
	if p.again() {
		p.current = p.current.First()
		return true
	}
	return false
}

func (p *Playlist) advanceShuffled() bool {
	n := p.current.Count()
	if len(p.perm) != n {
		p.reshuffleFrom(p.current.Position(), n)
	}

	if p.permPos >= len(p.perm) {
		if !p.again() {
			return false
		}
		p.reshuffle(n)
	}

	p.current = p.current.At(p.perm[p.permPos])
	p.permPos++
	return true
}

// again applies the playlist loop counter at the end of a pass. Ending the loop resets the mode.
func (p *Playlist) again() bool {
	if p.loop != LoopPlaylist {
		return false
	}
	if p.loopRemaining == 0 {
		p.loop = LoopDisable
		return false
	}
	if p.loopRemaining > 0 {
		p.loopRemaining--
	}
	return true
}
