// Package backend is the operation table between a player and the engine that decodes and
// renders its media.
//
// An engine adapter implements Backend plus any of the optional capability interfaces below.
// Bind inspects an adapter once and returns an Ops table in which every capability it lacks is
// replaced by a stub that logs a warning and returns ErrUnsupported.
package backend

import (
	"errors"
	"time"

	"github.com/playcore/playcore/event"
	"github.com/playcore/playcore/log"
	"github.com/playcore/playcore/mrl"
)

var (
	ErrUnsupported = errors.New("backend: operation not supported")
	ErrUnknownKind = errors.New("backend: unknown backend")
	ErrNotRunning  = errors.New("backend: nothing is playing")
)

// Options are the output selections made when the player was created.
type Options struct {
	AudioOutput string
	VideoOutput string
	// Display is an engine specific window or screen hint.
	Display string
}

// Host is what the player exposes to its backend.
type Host interface {
	// Notify queues an event for the frontend. It never blocks on delivery and may be called
	// from any goroutine.
	Notify(code event.Code)
	Options() Options
}

// Backend is the one mandatory capability.
type Backend interface {
	Init(h Host) error
	Uninit()
}

type (
	VerbositySetter interface {
		SetVerbosity(v log.Verbosity)
	}

	ResourceChecker interface {
		CanPlay(kind mrl.Kind) bool
	}

	PropertiesRetriever interface {
		RetrieveProperties(m *mrl.MRL, p *mrl.Properties) error
	}

	MetadataRetriever interface {
		RetrieveMetadata(m *mrl.MRL, md *mrl.Metadata) error
	}

	Snapshotter interface {
		Snapshot(m *mrl.MRL, req Snapshot) error
	}

	Starter interface {
		Start(m *mrl.MRL) error
	}

	Stopper interface {
		Stop() error
	}

	Pauser interface {
		// Pause toggles between paused and running.
		Pause() error
	}

	Seeker interface {
		Seek(value int, whence Whence) error
	}

	ChapterSeeker interface {
		SeekChapter(value int, absolute bool) error
	}

	Positioner interface {
		TimePosition() (time.Duration, error)
		PercentPosition() (int, error)
	}

	SpeedSetter interface {
		SetSpeed(speed float64) error
	}

	VolumeController interface {
		Volume() (int, error)
		SetVolume(v int) error
	}

	MuteController interface {
		Mute() (bool, error)
		SetMute(on bool) error
	}

	AudioDelayer interface {
		SetAudioDelay(d time.Duration, absolute bool) error
	}

	AudioSelector interface {
		AudioSelect(id int) error
		AudioPrevious() error
		AudioNext() error
	}

	AspectController interface {
		SetAspect(a Aspect, value int, absolute bool) error
		Aspect(a Aspect) (int, error)
	}

	SubtitleController interface {
		SetSubtitleDelay(d time.Duration, absolute bool) error
		SetSubtitleAlignment(a Alignment) error
		SetSubtitlePosition(pos int) error
		SetSubtitleVisibility(visible bool) error
		SetSubtitleScale(value int, absolute bool) error
		SubtitleSelect(id int) error
		SubtitlePrevious() error
		SubtitleNext() error
	}

	DVDNavigator interface {
		DVDNav(cmd Nav) error
		DVDAngleSelect(angle int) error
		DVDAnglePrevious() error
		DVDAngleNext() error
		DVDTitleSelect(title int) error
		DVDTitlePrevious() error
		DVDTitleNext() error
	}

	TVTuner interface {
		TVChannelSelect(channel string) error
		TVChannelPrevious() error
		TVChannelNext() error
	}

	RadioTuner interface {
		RadioChannelSelect(channel string) error
		RadioChannelPrevious() error
		RadioChannelNext() error
	}

	VDRController interface {
		VDR(cmd VDRKey) error
	}
)
