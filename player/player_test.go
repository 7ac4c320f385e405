package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/playcore/playcore/backend"
	"github.com/playcore/playcore/backend/null"
	"github.com/playcore/playcore/event"
	"github.com/playcore/playcore/filesystem"
	"github.com/playcore/playcore/mrl"
	"github.com/playcore/playcore/playlist"
	. "github.com/smartystreets/goconvey/convey"
)

const timeout = 2 * time.Second

type recorder struct {
	mu     sync.Mutex
	codes  []event.Code
	signal chan event.Code
}

func newRecorder() *recorder {
	return &recorder{signal: make(chan event.Code, 64)}
}

func (r *recorder) record(_ context.Context, e event.Code) {
	r.mu.Lock()
	r.codes = append(r.codes, e)
	r.mu.Unlock()

	select {
	case r.signal <- e:
	default:
	}
}

func (r *recorder) events() []event.Code {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.Code(nil), r.codes...)
}

func (r *recorder) waitFor(code event.Code) bool {
	deadline := time.After(timeout)
	for {
		select {
		case e := <-r.signal:
			if e == code {
				return true
			}
		case <-deadline:
			return false
		}
	}
}

// register makes b available under a fresh kind.
func register(b backend.Backend) backend.Kind {
	kind := backend.Kind("test-" + uuid.NewString())
	backend.Register(kind, func() backend.Backend { return b })
	return kind
}

func local(t *testing.T, name string) *mrl.MRL {
	t.Helper()
	m, err := mrl.New(mrl.File, &mrl.Local{Location: "/music/" + name})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

type failing struct{}

func (failing) Init(backend.Host) error { return errors.New("no device") }
func (failing) Uninit()                 {}

// picky only plays local files.
type picky struct{}

func (picky) Init(backend.Host) error    { return nil }
func (picky) Uninit()                    {}
func (picky) CanPlay(kind mrl.Kind) bool { return kind == mrl.File }

// manual plays each stream until the test ends it. Volume can be held to keep the supervisor busy.
type manual struct {
	mu      sync.Mutex
	host    backend.Host
	started []string
	entered chan struct{}
	hold    chan struct{}
}

func newManual() *manual {
	return &manual{entered: make(chan struct{}, 1)}
}

func (b *manual) Init(h backend.Host) error {
	b.host = h
	return nil
}

func (b *manual) Uninit() {}

func (b *manual) Start(m *mrl.MRL) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.started = append(b.started, m.Resource().(*mrl.Local).Location)
	return nil
}

func (b *manual) Stop() error { return nil }

func (b *manual) Volume() (int, error) {
	b.mu.Lock()
	hold := b.hold
	b.mu.Unlock()

	if hold != nil {
		b.entered <- struct{}{}
		<-hold
	}
	return 50, nil
}

func (b *manual) SetVolume(int) error { return nil }

func (b *manual) starts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.started...)
}

// busy keeps the supervisor inside a Volume job and returns the function that lets it go.
func (b *manual) busy(p *Player) func() {
	b.mu.Lock()
	b.hold = make(chan struct{})
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		_, _ = p.Volume(context.Background())
		close(done)
	}()
	<-b.entered

	return func() {
		b.mu.Lock()
		close(b.hold)
		b.hold = nil
		b.mu.Unlock()
		<-done
	}
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Creating a player on an unknown backend should fail", t, func() {
		_, err := New("nope", Options{}, nil)
		So(errors.Is(err, backend.ErrUnknownKind), ShouldBeTrue)
	})

	Convey("A failing backend init should be reported", t, func() {
		_, err := New(register(failing{}), Options{}, nil)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "no device")
	})

	Convey("A nil player should refuse every call", t, func() {
		var p *Player
		So(p.Start(ctx), ShouldEqual, ErrNilHandle)
		So(p.Close(ctx), ShouldEqual, ErrNilHandle)
		_, err := p.Volume(ctx)
		So(err, ShouldEqual, ErrNilHandle)
	})

	Convey("Given a running player", t, func() {
		p, err := New(register(null.New(0)), Options{}, nil)
		So(err, ShouldBeNil)

		So(p.Capabilities(), ShouldContain, backend.CapStart)

		Convey("Closing it twice should report the second call", func() {
			So(p.Close(ctx), ShouldBeNil)
			So(p.Close(ctx), ShouldEqual, ErrClosed)
		})

		Convey("Calls after close should fail", func() {
			So(p.Close(ctx), ShouldBeNil)
			_, err := p.State(ctx)
			So(err, ShouldEqual, ErrClosed)
		})
	})
}

func TestMRLs(t *testing.T) {
	ctx := context.Background()

	Convey("Given a player on the null backend", t, func() {
		engine := null.New(0)
		p, err := New(register(engine), Options{}, nil)
		So(err, ShouldBeNil)
		Reset(func() { _ = p.Close(ctx) })

		m, err := p.NewMRL(ctx, mrl.File, &mrl.Local{Location: "/music/a.ogg"})
		So(err, ShouldBeNil)
		So(p.Append(ctx, m, AddQueue), ShouldBeNil)

		Convey("Properties should be retrieved only once", func() {
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, _ = p.MRLProperties(ctx, m)
				}()
			}
			wg.Wait()

			props, err := p.MRLProperties(ctx, nil)
			So(err, ShouldBeNil)
			So(props.Audio.Channels, ShouldEqual, 2)
			So(engine.PropertyCalls(), ShouldEqual, 1)

			audio, err := p.MRLAudioProperties(ctx, m)
			So(err, ShouldBeNil)
			So(audio.SampleRate, ShouldEqual, 48000)

			video, err := p.MRLVideoProperties(ctx, m)
			So(err, ShouldBeNil)
			So(video, ShouldBeNil)
			So(engine.PropertyCalls(), ShouldEqual, 1)
		})

		Convey("Metadata should come from the backend", func() {
			md, err := p.MRLMetadata(ctx, m)
			So(err, ShouldBeNil)
			So(md.Title, ShouldEqual, "a.ogg")

			_, err = p.MRLCDTrack(ctx, m, 1)
			So(errors.Is(err, ErrBadArgument), ShouldBeTrue)
		})

		Convey("Kind and resource should be readable", func() {
			kind, err := p.MRLKind(ctx, m)
			So(err, ShouldBeNil)
			So(kind, ShouldEqual, mrl.File)

			res, err := p.MRLResource(ctx, m)
			So(err, ShouldBeNil)
			So(res.(*mrl.Local).Location, ShouldEqual, "/music/a.ogg")
		})

		Convey("Unsupported operations should fail softly", func() {
			err := p.MRLSnapshot(ctx, m, backend.Snapshot{Format: backend.ImagePNG, Path: "/tmp/x.png"})
			So(errors.Is(err, backend.ErrUnsupported), ShouldBeTrue)

			err = p.SubtitleNext(ctx)
			So(errors.Is(err, backend.ErrUnsupported), ShouldBeTrue)
		})

		Convey("Subtitles should be checked before they are attached", func() {
			filesystem.SetMemMapFs()
			Reset(filesystem.SetOsFs)

			So(filesystem.API().WriteFile("/subs/a.srt", []byte("1"), 0644), ShouldBeNil)
			So(p.MRLAddSubtitle(ctx, m, "/subs/a.srt"), ShouldBeNil)
			So(p.MRLAddSubtitle(ctx, m, "https://example.org/a.srt"), ShouldBeNil)

			err := p.MRLAddSubtitle(ctx, m, "/subs/missing.srt")
			So(errors.Is(err, ErrBadArgument), ShouldBeTrue)

			d, err := p.MRLDescribe(ctx, m)
			So(err, ShouldBeNil)
			So(d.Subtitles, ShouldResemble, []string{"/subs/a.srt", "https://example.org/a.srt"})
		})

		Convey("Freeing the current MRL should empty the playlist", func() {
			So(p.FreeMRL(ctx, m), ShouldBeNil)
			current, err := p.Current(ctx)
			So(err, ShouldBeNil)
			So(current, ShouldBeNil)

			_, err = p.MRLKind(ctx, nil)
			So(err, ShouldEqual, ErrNoCurrent)
		})
	})

	Convey("A backend that cannot play a kind should refuse the MRL", t, func() {
		p, err := New(register(picky{}), Options{}, nil)
		So(err, ShouldBeNil)
		defer p.Close(ctx)

		_, err = p.NewMRL(ctx, mrl.HTTP, &mrl.Network{URL: "http://example.org/a.ogg"})
		So(errors.Is(err, ErrUnsupportedResource), ShouldBeTrue)

		_, err = p.NewMRL(ctx, mrl.File, &mrl.Local{Location: "/a.ogg"})
		So(err, ShouldBeNil)
	})
}

func TestOrdering(t *testing.T) {
	ctx := context.Background()

	Convey("Given a player recording its events", t, func() {
		rec := newRecorder()
		p, err := New(register(null.New(0)), Options{}, rec.record)
		So(err, ShouldBeNil)
		Reset(func() { _ = p.Close(ctx) })

		Convey("Concurrent appends should all land exactly once", func() {
			items := make([]*mrl.MRL, 20)
			for i := range items {
				items[i] = local(t, fmt.Sprintf("%02d.ogg", i))
			}

			var wg sync.WaitGroup
			for _, m := range items {
				wg.Add(1)
				go func(m *mrl.MRL) {
					defer wg.Done()
					_ = p.Append(ctx, m, AddQueue)
				}(m)
			}
			wg.Wait()

			nodes, err := p.Playlist(ctx)
			So(err, ShouldBeNil)
			So(nodes, ShouldHaveLength, 20)

			seen := make(map[uuid.UUID]bool)
			for _, n := range nodes {
				seen[n.ID()] = true
			}
			So(seen, ShouldHaveLength, 20)
		})

		Convey("Events should be delivered before the call that emitted them returns", func() {
			So(p.Append(ctx, local(t, "a.ogg"), AddNow), ShouldBeNil)
			So(p.Pause(ctx), ShouldBeNil)
			So(p.Pause(ctx), ShouldBeNil)
			So(p.Stop(ctx), ShouldBeNil)

			So(rec.events(), ShouldResemble, []event.Code{
				event.PlaybackStart,
				event.PlaybackPause,
				event.PlaybackUnpause,
				event.PlaybackStop,
			})

			state, err := p.State(ctx)
			So(err, ShouldBeNil)
			So(state, ShouldEqual, Idle)
		})

		Convey("Pausing while idle should fail", func() {
			So(errors.Is(p.Pause(ctx), backend.ErrNotRunning), ShouldBeTrue)
		})

		Convey("Volume should be clamped", func() {
			So(p.SetVolume(ctx, 150), ShouldBeNil)
			v, err := p.Volume(ctx)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 100)

			So(p.SetVolume(ctx, -3), ShouldBeNil)
			v, _ = p.Volume(ctx)
			So(v, ShouldEqual, 0)
		})

		Convey("Continue should honour the loop policy", func() {
			So(p.Append(ctx, local(t, "a.ogg"), AddQueue), ShouldBeNil)
			So(p.SetLoop(ctx, playlist.LoopElement, 1), ShouldBeNil)
			So(p.Start(ctx), ShouldBeNil)

			more, err := p.Continue(ctx)
			So(err, ShouldBeNil)
			So(more, ShouldBeTrue)

			more, err = p.Continue(ctx)
			So(err, ShouldBeNil)
			So(more, ShouldBeFalse)

			So(rec.events(), ShouldResemble, []event.Code{
				event.PlaybackStart,
				event.PlaybackStop,
				event.PlaybackStart,
				event.PlaybackStop,
				event.PlaylistFinished,
			})
		})
	})
}

func TestAutoAdvance(t *testing.T) {
	ctx := context.Background()

	Convey("Given an auto player whose streams are short", t, func() {
		rec := newRecorder()
		p, err := New(register(null.New(20*time.Millisecond)), Options{Mode: Auto}, rec.record)
		So(err, ShouldBeNil)
		Reset(func() { _ = p.Close(ctx) })

		So(p.Append(ctx, local(t, "a.ogg"), AddQueue), ShouldBeNil)
		So(p.Append(ctx, local(t, "b.ogg"), AddQueue), ShouldBeNil)

		Convey("The whole playlist should play through", func() {
			So(p.Start(ctx), ShouldBeNil)
			So(rec.waitFor(event.PlaylistFinished), ShouldBeTrue)

			So(rec.events(), ShouldResemble, []event.Code{
				event.PlaybackStart,
				event.PlaybackFinished,
				event.PlaybackStart,
				event.PlaybackFinished,
				event.PlaylistFinished,
			})

			status, err := p.Status(ctx)
			So(err, ShouldBeNil)
			So(status.State, ShouldEqual, Idle)
			So(status.Position, ShouldEqual, 1)
		})

		Convey("Single mode should stop after one stream", func() {
			So(p.SetMode(ctx, Single), ShouldBeNil)
			So(p.Start(ctx), ShouldBeNil)
			So(rec.waitFor(event.PlaybackFinished), ShouldBeTrue)

			// Let the next play job run.
			mode, err := p.Mode(ctx)
			So(err, ShouldBeNil)
			So(mode, ShouldEqual, Single)

			state, err := p.State(ctx)
			So(err, ShouldBeNil)
			So(state, ShouldEqual, Idle)
			So(rec.events(), ShouldResemble, []event.Code{event.PlaybackStart, event.PlaybackFinished})
		})
	})
}

func TestReentrancy(t *testing.T) {
	ctx := context.Background()

	Convey("Given a player whose callback calls back into it", t, func() {
		type result struct {
			volume int
			state  State
			err    error
		}
		results := make(chan result, 1)

		var p *Player
		rec := newRecorder()
		cb := func(ctx context.Context, e event.Code) {
			rec.record(ctx, e)
			if e != event.PlaybackStart {
				return
			}

			volume, err := p.Volume(ctx)
			state, _ := p.State(ctx)
			_ = p.SetVolume(ctx, 40)
			_ = p.Stop(ctx)
			results <- result{volume: volume, state: state, err: err}
		}

		var err error
		p, err = New(register(null.New(0)), Options{}, cb)
		So(err, ShouldBeNil)
		Reset(func() { _ = p.Close(ctx) })

		Convey("Waiting calls should be queued instead and return at once", func() {
			done := make(chan error, 1)
			go func() { done <- p.Append(ctx, local(t, "a.ogg"), AddNow) }()

			select {
			case err := <-done:
				So(err, ShouldBeNil)
			case <-time.After(timeout):
				So("append did not return", ShouldBeEmpty)
			}

			r := <-results
			So(r.err, ShouldBeNil)
			So(r.volume, ShouldEqual, 0)
			So(r.state, ShouldEqual, Idle)

			So(rec.waitFor(event.PlaybackStop), ShouldBeTrue)

			v, err := p.Volume(ctx)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 40)
		})
	})
}

func TestTeardown(t *testing.T) {
	ctx := context.Background()

	Convey("Given a callback that holds up delivery", t, func() {
		entered := make(chan struct{})
		release := make(chan struct{})
		cb := func(_ context.Context, e event.Code) {
			if e == event.PlaybackStart {
				close(entered)
				<-release
			}
		}

		p, err := New(register(null.New(0)), Options{}, cb)
		So(err, ShouldBeNil)

		appended := make(chan error, 1)
		go func() { appended <- p.Append(ctx, local(t, "a.ogg"), AddNow) }()
		<-entered

		Convey("Close should finish soon after delivery resumes", func() {
			closed := make(chan error, 1)
			go func() { closed <- p.Close(ctx) }()

			time.Sleep(50 * time.Millisecond)
			close(release)

			select {
			case err := <-closed:
				So(err, ShouldBeNil)
			case <-time.After(timeout):
				So("close did not return", ShouldBeEmpty)
			}
			So(<-appended, ShouldBeNil)

			_, err := p.Current(ctx)
			So(err, ShouldEqual, ErrClosed)
		})
	})

	Convey("Closing from the callback should not deadlock", t, func() {
		closed := make(chan error, 1)
		var p *Player
		cb := func(ctx context.Context, e event.Code) {
			if e == event.PlaybackStop {
				closed <- p.Close(ctx)
			}
		}

		var err error
		p, err = New(register(null.New(0)), Options{}, cb)
		So(err, ShouldBeNil)

		So(p.Append(ctx, local(t, "a.ogg"), AddNow), ShouldBeNil)
		So(p.Stop(ctx), ShouldBeNil)

		select {
		case err := <-closed:
			So(err, ShouldBeNil)
		case <-time.After(timeout):
			So("close did not return", ShouldBeEmpty)
		}
		So(p.Start(ctx), ShouldEqual, ErrClosed)
	})
}

func TestLateEndOfStream(t *testing.T) {
	ctx := context.Background()

	Convey("Given an auto player playing the first of three streams", t, func() {
		b := newManual()
		rec := newRecorder()
		p, err := New(register(b), Options{Mode: Auto}, rec.record)
		So(err, ShouldBeNil)
		Reset(func() { _ = p.Close(ctx) })

		for _, name := range []string{"a.ogg", "b.ogg", "c.ogg"} {
			So(p.Append(ctx, local(t, name), AddQueue), ShouldBeNil)
		}
		So(p.Start(ctx), ShouldBeNil)
		So(rec.waitFor(event.PlaybackStart), ShouldBeTrue)

		// queue runs call while the supervisor is busy, then reports the end of the first stream.
		queue := func(call func() error) <-chan error {
			release := b.busy(p)
			result := make(chan error, 1)
			go func() { result <- call() }()
			time.Sleep(50 * time.Millisecond)
			b.host.Notify(event.PlaybackFinished)
			release()
			return result
		}

		Convey("A move made before the end is handled should keep playing the chosen stream", func() {
			result := queue(func() error {
				_, err := p.Next(ctx)
				return err
			})
			So(<-result, ShouldBeNil)
			So(rec.waitFor(event.PlaybackFinished), ShouldBeTrue)

			state, err := p.State(ctx)
			So(err, ShouldBeNil)
			So(state, ShouldEqual, Running)
			So(b.starts(), ShouldResemble, []string{"/music/a.ogg", "/music/b.ogg"})

			status, err := p.Status(ctx)
			So(err, ShouldBeNil)
			So(status.Position, ShouldEqual, 1)
		})

		Convey("A stop made before the end is handled should not resume playback", func() {
			result := queue(func() error { return p.Stop(ctx) })
			So(<-result, ShouldBeNil)
			So(rec.waitFor(event.PlaybackFinished), ShouldBeTrue)

			state, err := p.State(ctx)
			So(err, ShouldBeNil)
			So(state, ShouldEqual, Idle)
			So(b.starts(), ShouldResemble, []string{"/music/a.ogg"})
		})

		Convey("An end that is still current should advance", func() {
			b.host.Notify(event.PlaybackFinished)
			So(rec.waitFor(event.PlaybackStart), ShouldBeTrue)

			state, err := p.State(ctx)
			So(err, ShouldBeNil)
			So(state, ShouldEqual, Running)
			So(b.starts(), ShouldResemble, []string{"/music/a.ogg", "/music/b.ogg"})
		})
	})
}
