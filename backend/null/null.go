// Package null is an engine that plays nothing. Playback lasts a configured length and then
// reports that the stream finished, which is enough to drive a player end to end.
package null

import (
	"path"
	"sync"
	"time"

	"github.com/playcore/playcore/backend"
	"github.com/playcore/playcore/event"
	"github.com/playcore/playcore/key"
	"github.com/playcore/playcore/log"
	"github.com/playcore/playcore/mrl"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const Kind backend.Kind = "null"

func init() {
	backend.Register(Kind, func() backend.Backend {
		return New(viper.GetDuration(key.BackendNullLength))
	})
}

// Null is safe for concurrent use: its timer fires on its own goroutine.
type Null struct {
	length time.Duration

	mu        sync.Mutex
	host      backend.Host
	verbosity log.Verbosity
	current   *mrl.MRL
	timer     *time.Timer
	gen       uint64
	started   time.Time
	elapsed   time.Duration
	paused    bool
	volume    int
	muted     bool
	speed     float64

	propertyCalls int
}

// New returns an engine whose every stream lasts length. A zero length never finishes.
func New(length time.Duration) *Null {
	return &Null{length: length, volume: 100, speed: 1}
}

func (n *Null) Init(h backend.Host) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.host = h
	return nil
}

func (n *Null) Uninit() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.halt()
	n.host = nil
}

func (n *Null) SetVerbosity(v log.Verbosity) {
	n.mu.Lock()
	n.verbosity = v
	n.mu.Unlock()
}

func (n *Null) CanPlay(mrl.Kind) bool { return true }

func (n *Null) RetrieveProperties(m *mrl.MRL, p *mrl.Properties) error {
	n.mu.Lock()
	n.propertyCalls++
	n.mu.Unlock()

	p.Seekable = true
	p.Length = n.length
	p.Audio = &mrl.AudioProperties{Codec: "pcm", Bits: 16, Channels: 2, SampleRate: 48000}
	return nil
}

// PropertyCalls counts RetrieveProperties invocations.
func (n *Null) PropertyCalls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.propertyCalls
}

func (n *Null) RetrieveMetadata(m *mrl.MRL, md *mrl.Metadata) error {
	md.Title = path.Base(m.Resource().String())
	return nil
}

func (n *Null) Start(m *mrl.MRL) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.halt()
	n.current = m
	n.elapsed = 0
	n.paused = false
	n.run()
	return nil
}

func (n *Null) Stop() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return backend.ErrNotRunning
	}
	n.halt()
	n.current = nil
	n.elapsed = 0
	return nil
}

func (n *Null) Pause() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return backend.ErrNotRunning
	}

	if n.paused {
		n.paused = false
		n.run()
		return nil
	}
	n.elapsed = n.position()
	n.halt()
	n.paused = true
	return nil
}

func (n *Null) Seek(value int, whence backend.Whence) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return backend.ErrNotRunning
	}

	pos := n.position()
	switch whence {
	case backend.SeekRelative:
		pos += time.Duration(value) * time.Second
	case backend.SeekAbsolute:
		pos = time.Duration(value) * time.Second
	case backend.SeekPercent:
		pos = n.length * time.Duration(value) / 100
	}
	if n.length > 0 {
		pos = lo.Clamp(pos, 0, n.length)
	}

	n.halt()
	n.elapsed = pos
	if !n.paused {
		n.run()
	}
	return nil
}

func (n *Null) TimePosition() (time.Duration, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return 0, backend.ErrNotRunning
	}
	return n.position(), nil
}

func (n *Null) PercentPosition() (int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return 0, backend.ErrNotRunning
	}
	if n.length <= 0 {
		return 0, nil
	}
	return int(n.position() * 100 / n.length), nil
}

func (n *Null) SetSpeed(speed float64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.speed = speed
	return nil
}

func (n *Null) Volume() (int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.volume, nil
}

func (n *Null) SetVolume(v int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.volume = v
	return nil
}

func (n *Null) Mute() (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.muted, nil
}

func (n *Null) SetMute(on bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.muted = on
	return nil
}

// position must be called with mu held.
func (n *Null) position() time.Duration {
	if n.paused || n.started.IsZero() {
		return n.elapsed
	}
	pos := n.elapsed + time.Since(n.started)
	if n.length > 0 && pos > n.length {
		pos = n.length
	}
	return pos
}

// run must be called with mu held.
func (n *Null) run() {
	n.started = time.Now()
	if n.length <= 0 {
		return
	}

	gen := n.gen
	n.timer = time.AfterFunc(n.length-n.elapsed, func() {
		n.finish(gen)
	})
}

// halt must be called with mu held.
func (n *Null) halt() {
	n.gen++
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.started = time.Time{}
}

func (n *Null) finish(gen uint64) {
	n.mu.Lock()
	if gen != n.gen || n.host == nil {
		n.mu.Unlock()
		return
	}
	n.timer = nil
	n.started = time.Time{}
	n.current = nil
	n.elapsed = 0
	host := n.host
	n.mu.Unlock()

	host.Notify(event.PlaybackFinished)
}
